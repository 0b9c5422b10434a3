package qr

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"ms-storefront/internal/models"

	"github.com/skip2/go-qrcode"
)

const imageSize = 256

var ErrInvalidCode = errors.New("invalid ticket code")

// QRGenerator renders confirmations as QR codes whose payload is the AES-GCM sealed confirmation.
type QRGenerator struct {
	secret []byte
}

func NewQRGenerator(secret string) *QRGenerator {
	hashed := sha256.Sum256([]byte(secret)) // normalize to 32 bytes
	return &QRGenerator{secret: hashed[:]}
}

// Code returns the encrypted, URL-safe payload carried by the QR image.
func (q *QRGenerator) Code(c models.Confirmation) (string, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return "", err
	}
	return q.seal(data)
}

// GenerateEncryptedQR returns a PNG of the confirmation's code
func (q *QRGenerator) GenerateEncryptedQR(c models.Confirmation) ([]byte, error) {
	code, err := q.Code(c)
	if err != nil {
		return nil, err
	}
	return qrcode.Encode(code, qrcode.Medium, imageSize)
}

// Decode opens a code produced by Code.
func (q *QRGenerator) Decode(code string) (models.Confirmation, error) {
	var c models.Confirmation

	data, err := q.open(code)
	if err != nil {
		return c, err
	}
	if err := json.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("%w: %v", ErrInvalidCode, err)
	}
	return c, nil
}

func (q *QRGenerator) aead() (cipher.AEAD, error) {
	block, err := aes.NewCipher(q.secret)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

func (q *QRGenerator) seal(data []byte) (string, error) {
	gcm, err := q.aead()
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	sealed := gcm.Seal(nonce, nonce, data, nil)
	return base64.URLEncoding.EncodeToString(sealed), nil
}

func (q *QRGenerator) open(code string) ([]byte, error) {
	raw, err := base64.URLEncoding.DecodeString(code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCode, err)
	}

	gcm, err := q.aead()
	if err != nil {
		return nil, err
	}
	if len(raw) < gcm.NonceSize() {
		return nil, ErrInvalidCode
	}

	nonce, sealed := raw[:gcm.NonceSize()], raw[gcm.NonceSize():]
	data, err := gcm.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCode, err)
	}
	return data, nil
}
