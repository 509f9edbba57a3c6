package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-kafka/v2/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"
)

// ProgressionHandler processes one decoded event. Returning an error nacks
// the message so it is redelivered.
type ProgressionHandler func(ctx context.Context, event ProgressionEvent) error

// ProgressionConsumer reads progression events back off the bus.
type ProgressionConsumer struct {
	subscriber message.Subscriber
	topicName  string
	logger     *slog.Logger
}

type ConsumerConfig struct {
	KafkaBrokers  []string
	TopicName     string
	ConsumerGroup string
	Logger        *slog.Logger
}

func NewKafkaProgressionConsumer(config ConsumerConfig) (*ProgressionConsumer, error) {
	subscriber, err := kafka.NewSubscriber(kafka.SubscriberConfig{
		Brokers:       config.KafkaBrokers,
		Unmarshaler:   kafka.DefaultMarshaler{},
		ConsumerGroup: config.ConsumerGroup,
	}, watermill.NewSlogLogger(config.Logger))
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka subscriber: %w", err)
	}

	return NewProgressionConsumer(subscriber, config.TopicName, config.Logger), nil
}

// NewProgressionConsumer wraps any Watermill subscriber.
func NewProgressionConsumer(subscriber message.Subscriber, topic string, logger *slog.Logger) *ProgressionConsumer {
	return &ProgressionConsumer{
		subscriber: subscriber,
		topicName:  topic,
		logger:     logger,
	}
}

// Run delivers events to handler until ctx is cancelled or the subscription
// closes. Undecodable messages are logged and acked.
func (c *ProgressionConsumer) Run(ctx context.Context, handler ProgressionHandler) error {
	messages, err := c.subscriber.Subscribe(ctx, c.topicName)
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", c.topicName, err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-messages:
			if !ok {
				return nil
			}
			c.handle(ctx, msg, handler)
		}
	}
}

func (c *ProgressionConsumer) handle(ctx context.Context, msg *message.Message, handler ProgressionHandler) {
	var event ProgressionEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		c.logger.Warn("Dropping malformed progression event",
			"message_id", msg.UUID,
			"error", err)
		msg.Ack()
		return
	}

	if err := handler(ctx, event); err != nil {
		c.logger.Error("Progression handler failed",
			"event_id", event.ID,
			"event_type", event.Type,
			"error", err)
		msg.Nack()
		return
	}

	msg.Ack()
}

func (c *ProgressionConsumer) Close() error {
	return c.subscriber.Close()
}
