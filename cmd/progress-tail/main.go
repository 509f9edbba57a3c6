// Command progress-tail follows the progression topic and logs every event,
// the way a downstream analytics consumer would.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/SAP-F-2025/llm-dissector/internal/config"
	"github.com/SAP-F-2025/llm-dissector/internal/events"
	"github.com/SAP-F-2025/llm-dissector/internal/utils"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		utils.NewDefaultLogger().LogError(err, "Failed to load configuration")
		os.Exit(1)
	}

	logger := utils.NewLoggerForEnvironment(cfg.Environment)
	slogger := utils.ToSlogLogger(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer, err := cfg.Events.CreateProgressionConsumer(slogger)
	if err != nil {
		logger.LogError(err, "Failed to create progression consumer")
		os.Exit(1)
	}
	defer consumer.Close()

	logger.Info("Following progression events", "topic", cfg.Events.ProgressionTopic)

	err = consumer.Run(ctx, func(ctx context.Context, event events.ProgressionEvent) error {
		logger.InfoContext(ctx, "Progression event",
			"event_id", event.ID,
			"event_type", event.Type,
			"session_id", event.SessionID,
			"timestamp", event.Timestamp,
			"data", event.Data)
		return nil
	})
	if err != nil {
		logger.LogError(err, "Progression consumer stopped")
		os.Exit(1)
	}
}
