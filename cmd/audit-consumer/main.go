// Command audit-consumer tails the Kafka audit topic and logs every event.
// It exists as the simplest downstream for the audit stream; real consumers
// (alerting, Discord relays) follow the same shape.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/guttakrutt/guildsite/internal/infra"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("audit consumer failed", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := infra.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if !cfg.KafkaEnabled {
		return fmt.Errorf("KAFKA_ENABLED is false; nothing to consume")
	}

	groupID := os.Getenv("AUDIT_CONSUMER_GROUP")
	if groupID == "" {
		groupID = "guildsite-audit"
	}

	consumer := infra.NewAuditConsumer(cfg.KafkaBrokers, cfg.AuditTopic, groupID)
	defer consumer.Close()

	logger.Info("audit-consumer starting", "topic", cfg.AuditTopic, "group", groupID)

	for {
		msg, err := consumer.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				logger.Info("audit-consumer shutting down")
				return nil
			}
			logger.Error("read audit message", "error", err)
			continue
		}

		var event map[string]interface{}
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			logger.Error("decode audit event", "offset", msg.Offset, "error", err)
			continue
		}

		logger.Info("audit event",
			"operation", string(msg.Key),
			"partition", msg.Partition,
			"offset", msg.Offset,
			"event", event,
		)
	}
}
