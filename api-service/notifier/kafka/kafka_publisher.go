package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/arunvm123/bookingportal/api-service/config"
	"github.com/arunvm123/bookingportal/api-service/model"
	"github.com/segmentio/kafka-go"
)

type KafkaPublisher struct {
	writer *kafka.Writer
}

// NewKafkaPublisher creates an asynchronous writer on the notification
// topic. Delivery failures are logged from the completion callback.
func NewKafkaPublisher(cfg *config.Kafka, logger *slog.Logger) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.NotificationTopic,
		Balancer:               &kafka.LeastBytes{},
		BatchTimeout:           50 * time.Millisecond,
		Async:                  true,
		AllowAutoTopicCreation: true,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				logger.Error("failed to deliver notifications", "count", len(messages), "error", err)
			}
		},
	}
	return &KafkaPublisher{writer: writer}
}

func (p *KafkaPublisher) Publish(ctx context.Context, req model.NotificationRequest) error {
	msg, err := Encode(req)
	if err != nil {
		return err
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish notification: %w", err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// Encode builds the message for a notification, keyed by booking id so every
// change to one booking lands on the same partition.
func Encode(req model.NotificationRequest) (kafka.Message, error) {
	msgBytes, err := json.Marshal(req)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("failed to encode notification: %w", err)
	}
	return kafka.Message{
		Key:   []byte(fmt.Sprintf("booking-%d", req.BookingData.BookingID)),
		Value: msgBytes,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(req.Type)},
		},
	}, nil
}
