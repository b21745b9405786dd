package producers

import (
	"context"

	"github.com/segmentio/kafka-go"
)

// MessagePublisher publishes keyed JSON messages to one topic.
type MessagePublisher interface {
	Publish(ctx context.Context, key string, value any) error
	Close() error
}

// KafkaWriter is the slice of kafka.Writer the producer needs, kept as an
// interface so tests can swap in a recorder.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}
