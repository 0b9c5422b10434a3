package purchase

import (
	"strings"
	"unicode"

	"ms-storefront/internal/models"
)

const (
	maxCardDigits = 16
	maxCVVDigits  = 4
)

func digitsOnly(value string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, value)
}

// FormatCardNumber groups up to 16 digits in fours. Fewer than 4 digits are returned as typed.
func FormatCardNumber(value string) string {
	digits := digitsOnly(value)
	if len(digits) < 4 {
		return digits
	}
	if len(digits) > maxCardDigits {
		digits = digits[:maxCardDigits]
	}

	var b strings.Builder
	for i := 0; i < len(digits); i += 4 {
		if i > 0 {
			b.WriteByte(' ')
		}
		end := i + 4
		if end > len(digits) {
			end = len(digits)
		}
		b.WriteString(digits[i:end])
	}
	return b.String()
}

// FormatExpiryDate renders MM/YY once two digits are present.
func FormatExpiryDate(value string) string {
	digits := digitsOnly(value)
	if len(digits) < 2 {
		return digits
	}
	rest := digits[2:]
	if len(rest) > 2 {
		rest = rest[:2]
	}
	return digits[:2] + "/" + rest
}

// SanitizeCVV keeps at most 4 digits.
func SanitizeCVV(value string) string {
	digits := digitsOnly(value)
	if len(digits) > maxCVVDigits {
		digits = digits[:maxCVVDigits]
	}
	return digits
}

// FormatBilling applies the card, expiry and CVV formatting to info.
func FormatBilling(info models.BillingInfo) models.BillingInfo {
	info.CardNumber = FormatCardNumber(info.CardNumber)
	info.ExpiryDate = FormatExpiryDate(info.ExpiryDate)
	info.CVV = SanitizeCVV(info.CVV)
	return info
}

func blank(values ...string) bool {
	for _, v := range values {
		if strings.IndexFunc(v, func(r rune) bool { return !unicode.IsSpace(r) }) < 0 {
			return true
		}
	}
	return false
}
