package outreach

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"ms-storefront/internal/logger"
	"ms-storefront/internal/metrics"
	"ms-storefront/internal/utils"
)

const (
	NewsletterThanks = "Thank you for subscribing to our newsletter!"
	ContactThanks    = "Thank you for your message! We'll get back to you soon."
)

var (
	ErrEmailRequired = errors.New("email is required")
	ErrInvalidEmail  = errors.New("please enter a valid email address")
	ErrMissingFields = errors.New("please fill in all fields")
)

// Publisher is satisfied by the kafka producers.
type Publisher interface {
	Publish(ctx context.Context, topic, key string, payload interface{}) error
}

type Subscription struct {
	Email        string    `json:"email"`
	SubscribedAt time.Time `json:"subscribedAt"`
}

type ContactMessage struct {
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Message    string    `json:"message"`
	ReceivedAt time.Time `json:"receivedAt,omitempty"`
}

type Service struct {
	ContactDelay    time.Duration
	Publisher       Publisher
	NewsletterTopic string
	ContactTopic    string
	Logger          *logger.Logger
	Now             func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

// Subscribe records a newsletter signup.
func (s *Service) Subscribe(ctx context.Context, email string) (Subscription, error) {
	email = strings.TrimSpace(email)
	var err error
	switch {
	case email == "":
		err = ErrEmailRequired
	case !strings.Contains(email, "@"):
		err = ErrInvalidEmail
	}
	metrics.RecordOutreach("newsletter", err)
	if err != nil {
		return Subscription{}, err
	}

	sub := Subscription{Email: email, SubscribedAt: s.now().UTC()}
	s.Logger.Info("OUTREACH", fmt.Sprintf("Newsletter signup: %s", email))
	s.publish(ctx, s.NewsletterTopic, email, sub)
	return sub, nil
}

// Contact validates msg and waits for the simulated delivery.
func (s *Service) Contact(ctx context.Context, msg ContactMessage) (ContactMessage, error) {
	msg.Name = strings.TrimSpace(msg.Name)
	msg.Email = strings.TrimSpace(msg.Email)
	msg.Message = strings.TrimSpace(msg.Message)

	if msg.Name == "" || msg.Email == "" || msg.Message == "" {
		metrics.RecordOutreach("contact", ErrMissingFields)
		return ContactMessage{}, ErrMissingFields
	}

	if err := utils.Sleep(ctx, s.ContactDelay); err != nil {
		return ContactMessage{}, err
	}

	msg.ReceivedAt = s.now().UTC()
	metrics.RecordOutreach("contact", nil)
	s.Logger.Info("OUTREACH", fmt.Sprintf("Contact message from %s <%s>", msg.Name, msg.Email))
	s.publish(ctx, s.ContactTopic, msg.Email, msg)
	return msg, nil
}

func (s *Service) publish(ctx context.Context, topic, key string, payload interface{}) {
	if s.Publisher == nil {
		return
	}
	if err := s.Publisher.Publish(ctx, topic, key, payload); err != nil {
		s.Logger.Warn("OUTREACH", fmt.Sprintf("Failed to publish to %s: %v", topic, err))
	}
}

func IsValidationError(err error) bool {
	return errors.Is(err, ErrEmailRequired) || errors.Is(err, ErrInvalidEmail) || errors.Is(err, ErrMissingFields)
}
