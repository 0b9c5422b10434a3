package auth

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"ms-storefront/internal/models"
	"ms-storefront/internal/utils"
)

const MinPasswordLength = 6

var (
	ErrMissingFields      = errors.New("please fill in all fields")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters long")
	ErrPasswordMismatch   = errors.New("passwords don't match")
	ErrInvalidEmail       = errors.New("please enter a valid email address")
)

// Authenticator accepts any minimally well-formed credentials after a fixed delay.
// Nothing is verified against a user store.
type Authenticator struct {
	LoginDelay  time.Duration
	SignupDelay time.Duration
	Now         func() time.Time
}

func NewAuthenticator(loginDelay, signupDelay time.Duration) *Authenticator {
	return &Authenticator{LoginDelay: loginDelay, SignupDelay: signupDelay, Now: time.Now}
}

// Login checks for empty fields immediately and the password length after the delay.
// The user's name is the part of the email before "@".
func (a *Authenticator) Login(ctx context.Context, email, password string) (models.User, error) {
	if email == "" || password == "" {
		return models.User{}, ErrMissingFields
	}

	if err := utils.Sleep(ctx, a.LoginDelay); err != nil {
		return models.User{}, err
	}

	if utf8.RuneCountInString(password) < MinPasswordLength {
		return models.User{}, ErrInvalidCredentials
	}

	name, _, _ := strings.Cut(email, "@")
	return models.User{ID: "1", Name: name, Email: email}, nil
}

// Signup validates in a fixed order: missing fields, length, mismatch, email shape.
func (a *Authenticator) Signup(ctx context.Context, name, email, password, confirm string) (models.User, error) {
	if err := ValidateSignup(name, email, password, confirm); err != nil {
		return models.User{}, err
	}

	if err := utils.Sleep(ctx, a.SignupDelay); err != nil {
		return models.User{}, err
	}

	return models.User{ID: utils.GenerateUserID(a.now()), Name: name, Email: email}, nil
}

func ValidateSignup(name, email, password, confirm string) error {
	switch {
	case name == "" || email == "" || password == "" || confirm == "":
		return ErrMissingFields
	case utf8.RuneCountInString(password) < MinPasswordLength:
		return ErrPasswordTooShort
	case password != confirm:
		return ErrPasswordMismatch
	case !strings.Contains(email, "@"):
		return ErrInvalidEmail
	}
	return nil
}

// IsValidationError reports whether err is one of the user-facing credential errors.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrMissingFields) ||
		errors.Is(err, ErrInvalidCredentials) ||
		errors.Is(err, ErrPasswordTooShort) ||
		errors.Is(err, ErrPasswordMismatch) ||
		errors.Is(err, ErrInvalidEmail)
}

func (a *Authenticator) now() time.Time {
	if a.Now == nil {
		return time.Now()
	}
	return a.Now()
}
