package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"ms-storefront/internal/logger"
	"ms-storefront/internal/models"

	"github.com/segmentio/kafka-go"
)

// messageReader is the part of *kafka.Reader the consumer needs.
type messageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

// ConfirmationHandler receives every decoded purchase confirmation.
type ConfirmationHandler func(ctx context.Context, c models.Confirmation) error

type Consumer struct {
	reader messageReader
	logger *logger.Logger
}

// NewConsumer creates a new Kafka consumer for the given topic and group
func NewConsumer(brokers []string, topic, groupID string, log *logger.Logger) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    topic,
		GroupID:  groupID,
		MinBytes: 1,
		MaxBytes: 10e6, // 10MB
	})
	return &Consumer{reader: reader, logger: log}
}

// Start consumes purchase confirmations until ctx is cancelled. Undecodable messages are skipped.
func (c *Consumer) Start(ctx context.Context, handler ConfirmationHandler) error {
	c.logger.Info("KAFKA", "Confirmation consumer started")

	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				return nil
			}
			c.logger.Error("KAFKA", fmt.Sprintf("Error reading message: %v", err))
			return err
		}

		var confirmation models.Confirmation
		if err := json.Unmarshal(msg.Value, &confirmation); err != nil {
			c.logger.Warn("KAFKA", fmt.Sprintf("Failed to unmarshal message at offset %d: %v", msg.Offset, err))
			continue
		}

		c.logger.LogKafka("RECEIVED", msg.Topic, confirmation.OrderID)
		if err := handler(ctx, confirmation); err != nil {
			c.logger.Error("KAFKA", fmt.Sprintf("Handler failed for %s: %v", confirmation.OrderID, err))
		}
	}
}

// Close gracefully shuts down the Kafka reader
func (c *Consumer) Close() error {
	return c.reader.Close()
}
