package producers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/segmentio/kafka-go"

	"github.com/stock-tracking-backend/internal/config"
)

// IngestionEventProducer publishes per-iteration short-interest ingestion
// events. The topic is the monitorable channel for the background loop:
// consumers downstream can follow a run date by date without polling the API.
type IngestionEventProducer struct {
	logger *slog.Logger
	writer KafkaWriter // Interface for testability
	topic  string
}

// NewIngestionEventProducer creates the producer and ensures the topic exists.
func NewIngestionEventProducer(ctx context.Context, logger *slog.Logger, cfg *config.KafkaConfig) (*IngestionEventProducer, error) {
	if cfg.IngestionTopic == "" {
		return nil, fmt.Errorf("kafka ingestion topic is not configured")
	}

	conn, err := kafka.Dial("tcp", cfg.Brokers)
	if err != nil {
		return nil, fmt.Errorf("failed to dial kafka for ingestion event producer: %w", err)
	}
	defer conn.Close()

	err = createKafkaTopicIfNotExists(conn, cfg.IngestionTopic, cfg.NumPartitions, cfg.ReplicationFactor, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to ensure ingestion topic %s exists: %w", cfg.IngestionTopic, err)
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers),
		Topic:        cfg.IngestionTopic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
		Async:        true, // Events are telemetry; never stall the loop on acks
		WriteTimeout: cfg.MaxWait,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				logger.Error("Failed to write messages asynchronously", "topic", cfg.IngestionTopic, "error", err, "count", len(messages))
			} else {
				logger.Debug("Successfully wrote messages asynchronously", "topic", cfg.IngestionTopic, "count", len(messages))
			}
		},
	}

	return &IngestionEventProducer{
		logger: logger,
		writer: writer,
		topic:  cfg.IngestionTopic,
	}, nil
}

func (p *IngestionEventProducer) Publish(ctx context.Context, key string, value interface{}) error {
	jsonValue, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal ingestion event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: jsonValue,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("Failed to publish ingestion event",
			"topic", p.topic,
			"key", key,
			"error", err,
		)
		return fmt.Errorf("failed to publish ingestion event to %s: %w", p.topic, err)
	}

	p.logger.Debug("Published ingestion event",
		"topic", p.topic,
		"key", key,
	)
	return nil
}

func (p *IngestionEventProducer) Close() error {
	p.logger.Info("Closing ingestion event producer", "topic", p.topic)
	if err := p.writer.Close(); err != nil {
		return fmt.Errorf("failed to close kafka writer for topic %s: %w", p.topic, err)
	}
	return nil
}
