package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewWithWriterFormatsCategory(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf)

	l.Info("catalog", "seeded 8 events")

	out := buf.String()
	assert.Contains(t, out, "INFO")
	assert.Contains(t, out, "[CATALOG   ]")
	assert.Contains(t, out, "seeded 8 events")
	assert.Contains(t, out, "logger_test.go")
}

func TestDomainHelpers(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf)

	l.LogPurchase("CONFIRMED", "TKT-1-abc", "2 tickets")
	l.LogSession("CREATED", "s-1", "seeded catalog")

	out := buf.String()
	assert.Contains(t, out, "[PURCHASE  ]")
	assert.Contains(t, out, "[CONFIRMED] TKT-1-abc - 2 tickets")
	assert.Contains(t, out, "[SESSION   ]")
}
