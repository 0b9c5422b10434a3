package qr

import (
	"bytes"
	"image/png"
	"testing"
	"time"

	"ms-storefront/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleConfirmation() models.Confirmation {
	return models.Confirmation{
		SessionID:     "s-1",
		OrderID:       "TKT-1723700000123-abc123xyz",
		EventID:       "1",
		EventTitle:    "Summer Jazz Festival",
		Quantity:      2,
		Total:         decimal.NewFromInt(90),
		Currency:      "$",
		CustomerName:  "Jo",
		CustomerEmail: "jo@example.com",
		ConfirmedAt:   time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestGenerateEncryptedQRIsPNG(t *testing.T) {
	gen := NewQRGenerator("test-secret")

	img, err := gen.GenerateEncryptedQR(sampleConfirmation())
	require.NoError(t, err)

	decoded, err := png.Decode(bytes.NewReader(img))
	require.NoError(t, err)
	assert.Equal(t, 256, decoded.Bounds().Dx())
}

func TestCodeRoundTripAndTamperDetection(t *testing.T) {
	gen := NewQRGenerator("test-secret")
	conf := sampleConfirmation()

	code, err := gen.Code(conf)
	require.NoError(t, err)
	assert.NotContains(t, code, "Summer Jazz", "payload must be encrypted")

	got, err := gen.Decode(code)
	require.NoError(t, err)
	assert.Equal(t, conf.OrderID, got.OrderID)
	assert.True(t, conf.Total.Equal(got.Total))

	_, err = NewQRGenerator("other-secret").Decode(code)
	assert.ErrorIs(t, err, ErrInvalidCode)

	_, err = gen.Decode("not base64 !!")
	assert.ErrorIs(t, err, ErrInvalidCode)

	_, err = gen.Decode("")
	assert.ErrorIs(t, err, ErrInvalidCode)
}

func TestCodesAreNonDeterministic(t *testing.T) {
	gen := NewQRGenerator("test-secret")
	a, err := gen.Code(sampleConfirmation())
	require.NoError(t, err)
	b, err := gen.Code(sampleConfirmation())
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
