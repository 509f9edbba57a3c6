package config

import (
	"log/slog"
	"strings"

	"github.com/SAP-F-2025/llm-dissector/internal/events"
)

// EventConfig controls where progression events go.
type EventConfig struct {
	Enabled          bool
	Publisher        string // kafka or mock
	KafkaBrokers     string
	ProgressionTopic string
	ConsumerGroup    string
}

func (c *EventConfig) GetKafkaBrokers() []string {
	return splitList(c.KafkaBrokers)
}

// CreateEventPublisher builds the configured publisher, falling back to the
// in-memory one when events are disabled or the publisher is unknown.
func (c *EventConfig) CreateEventPublisher(logger *slog.Logger) (events.EventPublisher, error) {
	if !c.Enabled {
		logger.Info("Event publishing disabled, using mock publisher")
		return events.NewMockEventPublisher(logger), nil
	}

	switch strings.ToLower(c.Publisher) {
	case "kafka":
		logger.Info("Creating Kafka event publisher",
			"brokers", c.KafkaBrokers,
			"topic", c.ProgressionTopic)

		return events.NewKafkaEventPublisher(events.PublisherConfig{
			KafkaBrokers: c.GetKafkaBrokers(),
			TopicName:    c.ProgressionTopic,
			Logger:       logger,
		})
	case "mock":
		logger.Info("Using mock event publisher")
		return events.NewMockEventPublisher(logger), nil
	default:
		logger.Warn("Unknown event publisher type, falling back to mock", "publisher", c.Publisher)
		return events.NewMockEventPublisher(logger), nil
	}
}

// CreateProgressionConsumer subscribes to the progression topic on Kafka.
// It is used by the progress-tail tool, not by the server.
func (c *EventConfig) CreateProgressionConsumer(logger *slog.Logger) (*events.ProgressionConsumer, error) {
	logger.Info("Creating Kafka progression consumer",
		"brokers", c.KafkaBrokers,
		"topic", c.ProgressionTopic,
		"consumer_group", c.ConsumerGroup)

	return events.NewKafkaProgressionConsumer(events.ConsumerConfig{
		KafkaBrokers:  c.GetKafkaBrokers(),
		TopicName:     c.ProgressionTopic,
		ConsumerGroup: c.ConsumerGroup,
		Logger:        logger,
	})
}
