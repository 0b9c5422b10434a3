package purchase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ms-storefront/internal/logger"
	"ms-storefront/internal/metrics"
	"ms-storefront/internal/models"
	"ms-storefront/internal/purchase/qr"
	"ms-storefront/internal/utils"

	"github.com/google/uuid"
)

const (
	guardSlack  = 30 * time.Second
	sinkTimeout = 5 * time.Second
)

// Sink receives every settled purchase: the ledger, the publisher, the live broadcast.
type Sink func(ctx context.Context, c models.Confirmation) error

// Engine opens flows and runs their simulated settlements.
type Engine struct {
	FreeDelay  time.Duration
	PaidDelay  time.Duration
	ResetDelay time.Duration
	Guard      Guard
	Sinks      []Sink
	QR         *qr.QRGenerator
	Logger     *logger.Logger
	Now        func() time.Time
}

func (e *Engine) now() time.Time {
	if e.Now == nil {
		return time.Now()
	}
	return e.Now()
}

// Open starts a flow at the quantity step. Events without ticket info or with no tickets left are refused.
func (e *Engine) Open(sessionID string, event models.Event) (*Flow, error) {
	if event.TicketInfo == nil {
		return nil, ErrNoTicketInfo
	}
	if event.TicketInfo.SoldOut() {
		return nil, ErrSoldOut
	}

	f := &Flow{
		id:        uuid.NewString(),
		sessionID: sessionID,
		event:     event,
		engine:    e,
		step:      StepQuantity,
		form:      models.NewPurchaseForm(),
	}
	e.Logger.LogPurchase("OPENED", f.id, fmt.Sprintf("event %s (%s)", event.ID, event.Title))
	return f, nil
}

// Next advances the flow. From details it starts the free settlement or moves to payment;
// from payment it is the same as Pay.
func (f *Flow) Next(ctx context.Context) (View, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.mutableLocked(); err != nil {
		return f.viewLocked(), err
	}

	switch f.step {
	case StepQuantity:
		f.step = StepDetails
	case StepDetails:
		if !f.validCustomerLocked() {
			return f.viewLocked(), ErrCustomerInfoRequired
		}
		if f.event.TicketInfo.IsFree {
			if err := f.startSettlementLocked(ctx); err != nil {
				return f.viewLocked(), err
			}
		} else {
			f.step = StepPayment
		}
	case StepPayment:
		return f.payLocked(ctx)
	default:
		return f.viewLocked(), ErrWrongStep
	}
	return f.viewLocked(), nil
}

// Pay starts the paid settlement once every billing field is filled in.
func (f *Flow) Pay(ctx context.Context) (View, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.mutableLocked(); err != nil {
		return f.viewLocked(), err
	}
	return f.payLocked(ctx)
}

func (f *Flow) payLocked(ctx context.Context) (View, error) {
	if f.step != StepPayment {
		return f.viewLocked(), ErrWrongStep
	}
	if !f.validBillingLocked() {
		return f.viewLocked(), ErrBillingInfoRequired
	}
	if err := f.startSettlementLocked(ctx); err != nil {
		return f.viewLocked(), err
	}
	return f.viewLocked(), nil
}

func (f *Flow) guardKey() string {
	return "settlement:" + f.id
}

func (f *Flow) startSettlementLocked(ctx context.Context) error {
	free := f.event.TicketInfo.IsFree
	delay := f.engine.PaidDelay
	if free {
		delay = f.engine.FreeDelay
	}

	if f.engine.Guard != nil {
		ok, err := f.engine.Guard.Acquire(ctx, f.guardKey(), f.id, delay+guardSlack)
		if err != nil {
			return fmt.Errorf("acquire settlement guard: %w", err)
		}
		if !ok {
			return ErrProcessing
		}
	}

	pending := models.Confirmation{
		SessionID:     f.sessionID,
		EventID:       f.event.ID,
		EventTitle:    f.event.Title,
		Quantity:      f.form.Quantity,
		Total:         f.totalLocked(),
		Currency:      f.event.TicketInfo.Currency,
		Free:          free,
		CustomerName:  f.form.CustomerInfo.Name,
		CustomerEmail: f.form.CustomerInfo.Email,
	}

	f.processing = true
	f.settled = make(chan struct{})
	f.engine.Logger.LogPurchase("PROCESSING", f.id, fmt.Sprintf("%d x %s, settles in %s", pending.Quantity, f.event.Title, delay))

	go f.settle(pending, delay, f.settled)
	return nil
}

// settle runs detached from any request. It cannot fail or be cancelled.
// The flow stays processing until every sink has seen the confirmation.
func (f *Flow) settle(c models.Confirmation, delay time.Duration, done chan struct{}) {
	started := time.Now()
	_ = utils.Sleep(context.Background(), delay)

	e := f.engine
	prefix := "TKT"
	if c.Free {
		prefix = "FREE"
	}
	now := e.now()
	c.OrderID = utils.GenerateOrderID(prefix, now)
	c.ConfirmedAt = now

	ctx, cancel := context.WithTimeout(context.Background(), sinkTimeout)
	defer cancel()

	metrics.RecordPurchase(c.EventID, c.Free, c.Quantity, time.Since(started))
	e.Logger.LogPurchase("CONFIRMED", c.OrderID, fmt.Sprintf("%d tickets for event %s, total %s", c.Quantity, c.EventID, c.Total.String()))

	for _, sink := range e.Sinks {
		if err := sink(ctx, c); err != nil {
			e.Logger.Warn("PURCHASE", fmt.Sprintf("Confirmation sink failed for %s: %v", c.OrderID, err))
		}
	}

	f.mu.Lock()
	f.confirmation = &c
	f.step = StepConfirmation
	f.processing = false
	close(done)
	f.mu.Unlock()

	if e.Guard != nil {
		if err := e.Guard.Release(ctx, f.guardKey(), f.id); err != nil {
			e.Logger.Warn("PURCHASE", fmt.Sprintf("Failed to release settlement guard of %s: %v", f.id, err))
		}
	}
}

// Wait blocks until a running settlement finishes. It returns at once when none is running.
func (f *Flow) Wait(ctx context.Context) error {
	f.mu.Lock()
	done := f.settled
	running := f.processing
	f.mu.Unlock()

	if !running || done == nil {
		return nil
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close discards the flow. It is refused while settling. The form is reset after ResetDelay.
func (f *Flow) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.processing {
		return ErrProcessing
	}
	if f.closed {
		return nil
	}
	f.closed = true

	if f.engine.ResetDelay > 0 {
		time.AfterFunc(f.engine.ResetDelay, f.reset)
	} else {
		f.resetLocked()
	}
	f.engine.Logger.LogPurchase("CLOSED", f.id, fmt.Sprintf("event %s", f.event.ID))
	return nil
}

func (f *Flow) reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resetLocked()
}

func (f *Flow) resetLocked() {
	f.step = StepQuantity
	f.form = models.NewPurchaseForm()
	f.confirmation = nil
	f.processing = false
}

// TicketPNG renders the QR ticket of a confirmed purchase.
func (f *Flow) TicketPNG() ([]byte, error) {
	c, err := f.Confirmation()
	if err != nil {
		return nil, err
	}
	if f.engine.QR == nil {
		return nil, errors.New("ticket rendering is not configured")
	}
	return f.engine.QR.GenerateEncryptedQR(c)
}

// IsStateError reports errors caused by calling an action at the wrong time.
func IsStateError(err error) bool {
	return errors.Is(err, ErrProcessing) || errors.Is(err, ErrWrongStep) || errors.Is(err, ErrClosed) || errors.Is(err, ErrNotConfirmed)
}

// IsValidationError reports missing form input.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrCustomerInfoRequired) || errors.Is(err, ErrBillingInfoRequired)
}
