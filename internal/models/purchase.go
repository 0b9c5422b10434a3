package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseForm is owned by one open ticket purchase flow and reset when it closes.
type PurchaseForm struct {
	Quantity     int          `json:"quantity"`
	CustomerInfo CustomerInfo `json:"customerInfo"`
	BillingInfo  BillingInfo  `json:"billingInfo"`
}

type CustomerInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type BillingInfo struct {
	CardNumber     string `json:"cardNumber"`
	ExpiryDate     string `json:"expiryDate"`
	CVV            string `json:"cvv"`
	CardholderName string `json:"cardholderName"`
	BillingAddress string `json:"billingAddress"`
	City           string `json:"city"`
	ZipCode        string `json:"zipCode"`
}

// NewPurchaseForm returns the initial form values.
func NewPurchaseForm() PurchaseForm {
	return PurchaseForm{Quantity: 1}
}

// Confirmation summarizes a settled purchase.
type Confirmation struct {
	SessionID     string          `json:"sessionId"`
	OrderID       string          `json:"orderId"`
	EventID       string          `json:"eventId"`
	EventTitle    string          `json:"eventTitle"`
	Quantity      int             `json:"quantity"`
	Total         decimal.Decimal `json:"total"`
	Currency      string          `json:"currency,omitempty"`
	Free          bool            `json:"free"`
	CustomerName  string          `json:"customerName"`
	CustomerEmail string          `json:"customerEmail"`
	ConfirmedAt   time.Time       `json:"confirmedAt"`
}
