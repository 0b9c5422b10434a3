package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("KAFKA_ENABLED", "")

	cfg := Load()

	assert.Equal(t, ":8085", cfg.Server.Port)
	assert.Empty(t, cfg.Redis.Addr)
	assert.False(t, cfg.Kafka.Enabled)
	assert.Equal(t, 1500*time.Millisecond, cfg.Latency.FreeSettlement)
	assert.Equal(t, 3*time.Second, cfg.Latency.PaidSettlement)
	assert.Equal(t, 5*time.Second, cfg.Latency.HighlightInterval)
	assert.Equal(t, "storefront.purchase.confirmed", cfg.Kafka.Topics.PurchaseConfirmed)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("LATENCY_PAID_SETTLEMENT", "250")
	t.Setenv("LATENCY_LOGIN", "2s")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092")
	t.Setenv("KAFKA_ENABLED", "true")
	t.Setenv("PUBLIC_ORIGIN", "https://cheza.example/")

	cfg := Load()

	assert.Equal(t, 250*time.Millisecond, cfg.Latency.PaidSettlement)
	assert.Equal(t, 2*time.Second, cfg.Latency.Login)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.True(t, cfg.Kafka.Enabled)
	assert.Equal(t, "https://cheza.example", cfg.Storefront.PublicOrigin)
}

func TestNoLatencyKeepsHighlightInterval(t *testing.T) {
	cfg := Load()
	quiet := cfg.Latency.NoLatency()

	assert.Zero(t, quiet.Login)
	assert.Zero(t, quiet.PaidSettlement)
	assert.Equal(t, cfg.Latency.HighlightInterval, quiet.HighlightInterval)
}
