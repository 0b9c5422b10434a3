package purchase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatCardNumber(t *testing.T) {
	assert.Equal(t, "", FormatCardNumber(""))
	assert.Equal(t, "424", FormatCardNumber("424"))
	assert.Equal(t, "4242", FormatCardNumber("4242"))
	assert.Equal(t, "4242 42", FormatCardNumber("424242"))
	assert.Equal(t, "4242 4242 4242 4242", FormatCardNumber("4242-4242 4242x4242"))
	assert.Equal(t, "1234 5678 9012 3456", FormatCardNumber("12345678901234567890"))
}

func TestFormatExpiryDate(t *testing.T) {
	assert.Equal(t, "1", FormatExpiryDate("1"))
	assert.Equal(t, "12/", FormatExpiryDate("12"))
	assert.Equal(t, "12/2", FormatExpiryDate("122"))
	assert.Equal(t, "12/27", FormatExpiryDate("12/27"))
	assert.Equal(t, "12/27", FormatExpiryDate("122799"))
}

func TestSanitizeCVV(t *testing.T) {
	assert.Equal(t, "123", SanitizeCVV("1a2b3"))
	assert.Equal(t, "1234", SanitizeCVV("123456"))
}

func TestBlank(t *testing.T) {
	assert.True(t, blank("a", " \t"))
	assert.True(t, blank(""))
	assert.False(t, blank("a", "b"))
}
