package submission

import (
	"errors"
	"strconv"
	"strings"

	"ms-storefront/internal/utils"

	"github.com/shopspring/decimal"
)

type TicketType string

const (
	TicketFree TicketType = "free"
	TicketPaid TicketType = "paid"
)

var (
	ErrMissingFields       = errors.New("please fill in all required fields")
	ErrInvalidPrice        = errors.New("please enter a valid ticket price for paid events")
	ErrInvalidTotalTickets = errors.New("total tickets must be a positive whole number")
	ErrInvalidDate         = errors.New("dates must be in YYYY-MM-DD format")
	ErrEndBeforeStart      = errors.New("end date cannot be before start date")
)

// Draft is the submit form as entered. Price and ticket count stay strings until validated.
type Draft struct {
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	StartDate    string     `json:"startDate"`
	EndDate      string     `json:"endDate"`
	StartTime    string     `json:"startTime"`
	EndTime      string     `json:"endTime"`
	Location     string     `json:"location"`
	Category     string     `json:"category"`
	Image        string     `json:"image"`
	TicketType   TicketType `json:"ticketType"`
	TicketPrice  string     `json:"ticketPrice"`
	TotalTickets string     `json:"totalTickets"`
}

// validated holds the parsed numeric fields of a draft that passed Validate.
type validated struct {
	price decimal.Decimal
	total *int
}

// Validate checks required fields, then the paid price, then the ticket count, then the dates.
func (d Draft) Validate() error {
	_, err := d.validate()
	return err
}

func (d Draft) validate() (validated, error) {
	var v validated

	required := []string{d.Title, d.Description, d.StartDate, d.EndDate, d.StartTime, d.EndTime, d.Location, d.Category}
	for _, field := range required {
		if strings.TrimSpace(field) == "" {
			return v, ErrMissingFields
		}
	}

	if d.ticketType() == TicketPaid {
		price, err := decimal.NewFromString(strings.TrimSpace(d.TicketPrice))
		if err != nil || !price.IsPositive() {
			return v, ErrInvalidPrice
		}
		v.price = price
	}

	if total := strings.TrimSpace(d.TotalTickets); total != "" {
		n, err := strconv.Atoi(total)
		if err != nil || n <= 0 {
			return v, ErrInvalidTotalTickets
		}
		v.total = &n
	}

	start, err := utils.ParseCalendarDate(d.StartDate)
	if err != nil {
		return v, ErrInvalidDate
	}
	end, err := utils.ParseCalendarDate(d.EndDate)
	if err != nil {
		return v, ErrInvalidDate
	}
	if end.Before(start) {
		return v, ErrEndBeforeStart
	}

	return v, nil
}

func (d Draft) ticketType() TicketType {
	if d.TicketType == TicketPaid {
		return TicketPaid
	}
	return TicketFree
}

// IsValidationError reports whether err came from Validate.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrMissingFields) ||
		errors.Is(err, ErrInvalidPrice) ||
		errors.Is(err, ErrInvalidTotalTickets) ||
		errors.Is(err, ErrInvalidDate) ||
		errors.Is(err, ErrEndBeforeStart)
}
