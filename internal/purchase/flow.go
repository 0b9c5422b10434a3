package purchase

import (
	"errors"
	"fmt"
	"sync"

	"ms-storefront/internal/models"

	"github.com/shopspring/decimal"
)

type Step string

const (
	StepQuantity     Step = "quantity"
	StepDetails      Step = "details"
	StepPayment      Step = "payment"
	StepConfirmation Step = "confirmation"
)

// DefaultMaxQuantity caps every order and stands in for an unknown inventory.
const DefaultMaxQuantity = 10

var (
	ErrNoTicketInfo         = errors.New("event has no ticket information")
	ErrSoldOut              = errors.New("event is sold out")
	ErrProcessing           = errors.New("purchase is being processed")
	ErrWrongStep            = errors.New("action not available in this step")
	ErrCustomerInfoRequired = errors.New("name and email are required")
	ErrBillingInfoRequired  = errors.New("all payment fields are required")
	ErrClosed               = errors.New("purchase flow is closed")
	ErrNotConfirmed         = errors.New("purchase is not confirmed")
)

// MaxQuantity is min(availableTickets, 10). A missing or zero inventory counts as 10.
func MaxQuantity(t *models.TicketInfo) int {
	limit := DefaultMaxQuantity
	if t != nil && t.AvailableTickets != nil && *t.AvailableTickets != 0 && *t.AvailableTickets < limit {
		limit = *t.AvailableTickets
	}
	if limit < 1 {
		limit = 1
	}
	return limit
}

// Action is the purchase button of the event detail screen.
type Action struct {
	Enabled      bool   `json:"enabled"`
	Label        string `json:"label"`
	Availability string `json:"availability,omitempty"`
}

// ActionFor returns nil for events without ticket information.
func ActionFor(e models.Event) *Action {
	t := e.TicketInfo
	if t == nil {
		return nil
	}

	a := &Action{Enabled: true, Label: "Buy Tickets"}
	switch {
	case t.SoldOut():
		a.Enabled = false
		a.Label = "Sold Out"
	case t.IsFree:
		a.Label = "Get Free Tickets"
	}

	if t.AvailableTickets != nil {
		if *t.AvailableTickets > 0 {
			a.Availability = fmt.Sprintf("%d tickets available", *t.AvailableTickets)
		} else {
			a.Availability = "Sold out"
		}
	}
	return a
}

// Flow is one open ticket purchase. It is safe for concurrent use.
type Flow struct {
	id        string
	sessionID string
	event     models.Event
	engine    *Engine

	mu           sync.Mutex
	step         Step
	form         models.PurchaseForm
	processing   bool
	closed       bool
	confirmation *models.Confirmation
	settled      chan struct{}
}

// View is a read-only snapshot of a flow.
type View struct {
	FlowID       string               `json:"flowId"`
	EventID      string               `json:"eventId"`
	EventTitle   string               `json:"eventTitle"`
	Step         Step                 `json:"step"`
	Free         bool                 `json:"free"`
	Quantity     int                  `json:"quantity"`
	MaxQuantity  int                  `json:"maxQuantity"`
	UnitPrice    decimal.Decimal      `json:"unitPrice"`
	Total        decimal.Decimal      `json:"total"`
	Currency     string               `json:"currency,omitempty"`
	CustomerInfo models.CustomerInfo  `json:"customerInfo"`
	BillingInfo  models.BillingInfo   `json:"billingInfo"`
	Processing   bool                 `json:"processing"`
	CanGoBack    bool                 `json:"canGoBack"`
	Closed       bool                 `json:"closed"`
	Confirmation *models.Confirmation `json:"confirmation,omitempty"`
}

func (f *Flow) ID() string { return f.id }

func (f *Flow) EventID() string { return f.event.ID }

func (f *Flow) View() View {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.viewLocked()
}

func (f *Flow) viewLocked() View {
	t := f.event.TicketInfo
	v := View{
		FlowID:       f.id,
		EventID:      f.event.ID,
		EventTitle:   f.event.Title,
		Step:         f.step,
		Free:         t.IsFree,
		Quantity:     f.form.Quantity,
		MaxQuantity:  MaxQuantity(t),
		UnitPrice:    t.UnitPrice(),
		Total:        f.totalLocked(),
		Currency:     t.Currency,
		CustomerInfo: f.form.CustomerInfo,
		BillingInfo:  f.form.BillingInfo,
		Processing:   f.processing,
		CanGoBack:    !f.processing && (f.step == StepDetails || f.step == StepPayment),
		Closed:       f.closed,
	}
	if f.confirmation != nil {
		c := *f.confirmation
		v.Confirmation = &c
	}
	return v
}

// totalLocked is price × quantity, zero when free.
func (f *Flow) totalLocked() decimal.Decimal {
	return f.event.TicketInfo.UnitPrice().Mul(decimal.NewFromInt(int64(f.form.Quantity)))
}

// mutableLocked rejects changes to closed or settling flows.
func (f *Flow) mutableLocked() error {
	if f.closed {
		return ErrClosed
	}
	if f.processing {
		return ErrProcessing
	}
	return nil
}

// SetQuantity clamps n into [1, MaxQuantity].
func (f *Flow) SetQuantity(n int) (View, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.setQuantityLocked(n)
}

// AdjustQuantity moves the stepper by delta, staying within bounds.
func (f *Flow) AdjustQuantity(delta int) (View, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.setQuantityLocked(f.form.Quantity + delta)
}

func (f *Flow) setQuantityLocked(n int) (View, error) {
	if err := f.mutableLocked(); err != nil {
		return f.viewLocked(), err
	}
	if f.step != StepQuantity {
		return f.viewLocked(), ErrWrongStep
	}

	max := MaxQuantity(f.event.TicketInfo)
	switch {
	case n < 1:
		n = 1
	case n > max:
		n = max
	}
	f.form.Quantity = n
	return f.viewLocked(), nil
}

func (f *Flow) UpdateCustomer(info models.CustomerInfo) (View, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.mutableLocked(); err != nil {
		return f.viewLocked(), err
	}
	if f.step != StepDetails {
		return f.viewLocked(), ErrWrongStep
	}
	f.form.CustomerInfo = info
	return f.viewLocked(), nil
}

// UpdateBilling stores info with card, expiry and CVV formatting applied.
func (f *Flow) UpdateBilling(info models.BillingInfo) (View, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.mutableLocked(); err != nil {
		return f.viewLocked(), err
	}
	if f.step != StepPayment {
		return f.viewLocked(), ErrWrongStep
	}
	f.form.BillingInfo = FormatBilling(info)
	return f.viewLocked(), nil
}

// Back goes from details to quantity and from payment to details.
func (f *Flow) Back() (View, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.mutableLocked(); err != nil {
		return f.viewLocked(), err
	}
	switch f.step {
	case StepDetails:
		f.step = StepQuantity
	case StepPayment:
		f.step = StepDetails
	default:
		return f.viewLocked(), ErrWrongStep
	}
	return f.viewLocked(), nil
}

func (f *Flow) validCustomerLocked() bool {
	c := f.form.CustomerInfo
	return !blank(c.Name, c.Email)
}

func (f *Flow) validBillingLocked() bool {
	b := f.form.BillingInfo
	return !blank(b.CardNumber, b.ExpiryDate, b.CVV, b.CardholderName, b.BillingAddress, b.City, b.ZipCode)
}

// Confirmation returns the settled purchase.
func (f *Flow) Confirmation() (models.Confirmation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.confirmation == nil {
		return models.Confirmation{}, ErrNotConfirmed
	}
	return *f.confirmation, nil
}
