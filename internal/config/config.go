package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server     ServerConfig
	Redis      RedisConfig
	Kafka      KafkaConfig
	Session    SessionConfig
	Latency    LatencyConfig
	Storefront StorefrontConfig
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// RedisConfig is optional. An empty Addr keeps the settlement guard in-process.
type RedisConfig struct {
	Addr string
}

type KafkaConfig struct {
	Brokers []string
	Enabled bool
	Topics  TopicConfig
}

type TopicConfig struct {
	EventSubmitted      string
	PurchaseConfirmed   string
	NewsletterSubscribe string
	ContactReceived     string
}

type SessionConfig struct {
	Secret          string
	TTL             time.Duration
	CleanupInterval time.Duration
}

// LatencyConfig holds the fixed artificial delays of the simulated operations.
type LatencyConfig struct {
	Login             time.Duration
	Signup            time.Duration
	Submit            time.Duration
	Contact           time.Duration
	FreeSettlement    time.Duration
	PaidSettlement    time.Duration
	PurchaseReset     time.Duration
	HighlightInterval time.Duration
}

type StorefrontConfig struct {
	PublicOrigin string
	QRSecret     string
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", ":8085"),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 0, // SSE streams stay open
			IdleTimeout:  60 * time.Second,
		},
		Redis: RedisConfig{
			Addr: getEnv("REDIS_ADDR", ""),
		},
		Kafka: KafkaConfig{
			Brokers: getEnvList("KAFKA_BROKERS", "localhost:9092"),
			Enabled: getEnvBool("KAFKA_ENABLED", false),
			Topics: TopicConfig{
				EventSubmitted:      getEnv("KAFKA_TOPIC_EVENT_SUBMITTED", "storefront.event.submitted"),
				PurchaseConfirmed:   getEnv("KAFKA_TOPIC_PURCHASE_CONFIRMED", "storefront.purchase.confirmed"),
				NewsletterSubscribe: getEnv("KAFKA_TOPIC_NEWSLETTER", "storefront.newsletter.subscribed"),
				ContactReceived:     getEnv("KAFKA_TOPIC_CONTACT", "storefront.contact.received"),
			},
		},
		Session: SessionConfig{
			Secret:          getEnv("SESSION_SECRET", "storefront-dev-secret"),
			TTL:             getEnvDuration("SESSION_TTL", 2*time.Hour),
			CleanupInterval: getEnvDuration("SESSION_CLEANUP_INTERVAL", 5*time.Minute),
		},
		Latency: LatencyConfig{
			Login:             getEnvDuration("LATENCY_LOGIN", time.Second),
			Signup:            getEnvDuration("LATENCY_SIGNUP", time.Second),
			Submit:            getEnvDuration("LATENCY_SUBMIT", 2*time.Second),
			Contact:           getEnvDuration("LATENCY_CONTACT", time.Second),
			FreeSettlement:    getEnvDuration("LATENCY_FREE_SETTLEMENT", 1500*time.Millisecond),
			PaidSettlement:    getEnvDuration("LATENCY_PAID_SETTLEMENT", 3*time.Second),
			PurchaseReset:     getEnvDuration("LATENCY_PURCHASE_RESET", 300*time.Millisecond),
			HighlightInterval: getEnvDuration("HIGHLIGHT_INTERVAL", 5*time.Second),
		},
		Storefront: StorefrontConfig{
			PublicOrigin: strings.TrimRight(getEnv("PUBLIC_ORIGIN", "http://localhost:5173"), "/"),
			QRSecret:     getEnv("QR_SECRET_KEY", "storefront-qr-secret"),
		},
	}
}

// NoLatency returns a copy of the latency settings with every delay removed.
func (c LatencyConfig) NoLatency() LatencyConfig {
	return LatencyConfig{HighlightInterval: c.HighlightInterval}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getEnvDuration accepts Go durations ("1500ms") or a plain number of milliseconds.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if parsed, err := time.ParseDuration(value); err == nil {
		return parsed
	}
	if ms := getEnvInt(key, -1); ms >= 0 {
		return time.Duration(ms) * time.Millisecond
	}
	return defaultValue
}

func getEnvList(key, defaultValue string) []string {
	var out []string
	for _, part := range strings.Split(getEnv(key, defaultValue), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// All lists every configured topic.
func (t TopicConfig) All() []string {
	return []string{t.EventSubmitted, t.PurchaseConfirmed, t.NewsletterSubscribe, t.ContactReceived}
}
