package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ms-storefront/internal/logger"

	"github.com/segmentio/kafka-go"
)

// Publisher sends domain events. Implementations must be safe for concurrent use.
type Publisher interface {
	Publish(ctx context.Context, topic, key string, payload interface{}) error
	Close() error
}

// messageWriter is the part of *kafka.Writer the producer needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Producer struct {
	Writer messageWriter
	Logger *logger.Logger
}

// NewProducer returns a producer that picks the topic per message.
func NewProducer(brokers []string, log *logger.Logger) *Producer {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.LeastBytes{},
		BatchTimeout:           50 * time.Millisecond,
		AllowAutoTopicCreation: true,
	}
	return &Producer{Writer: writer, Logger: log}
}

// Publish streams payload as JSON to topic, keyed by key
func (p *Producer) Publish(ctx context.Context, topic, key string, payload interface{}) error {
	msg, err := encodeMessage(topic, key, payload)
	if err != nil {
		return err
	}

	if p.Logger != nil {
		p.Logger.LogKafka("PUBLISH", topic, fmt.Sprintf("key=%s %s", key, string(msg.Value)))
	}

	if err := p.Writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish to %s: %w", topic, err)
	}
	return nil
}

func (p *Producer) Close() error {
	return p.Writer.Close()
}

func encodeMessage(topic, key string, payload interface{}) (kafka.Message, error) {
	msgBytes, err := json.Marshal(payload)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("encode %s message: %w", topic, err)
	}
	return kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: msgBytes,
		Time:  time.Now(),
	}, nil
}

// LogPublisher stands in for Kafka when it is disabled. Messages are only logged.
type LogPublisher struct {
	Logger *logger.Logger
}

func NewLogPublisher(log *logger.Logger) *LogPublisher {
	return &LogPublisher{Logger: log}
}

func (p *LogPublisher) Publish(ctx context.Context, topic, key string, payload interface{}) error {
	msg, err := encodeMessage(topic, key, payload)
	if err != nil {
		return err
	}
	if p.Logger != nil {
		p.Logger.LogKafka("SKIPPED", topic, fmt.Sprintf("kafka disabled, key=%s %s", key, string(msg.Value)))
	}
	return nil
}

func (p *LogPublisher) Close() error { return nil }
