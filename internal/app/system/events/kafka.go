// internal/app/system/events/kafka.go
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/IBM/sarama"
	"go.uber.org/zap"
)

// KafkaEmitter publishes events to a Kafka topic for the notification
// platform to consume. Messages are keyed by target user so one user's
// notifications stay ordered within a partition.
type KafkaEmitter struct {
	producer sarama.SyncProducer
	topic    string
	log      *zap.Logger
}

// NewKafkaEmitter connects a synchronous producer to the given brokers.
func NewKafkaEmitter(brokers []string, topic string, logger *zap.Logger) (*KafkaEmitter, error) {
	cfg := sarama.NewConfig()
	cfg.Producer.Return.Successes = true
	cfg.Producer.RequiredAcks = sarama.WaitForLocal
	cfg.Producer.Retry.Max = 3
	cfg.Producer.Compression = sarama.CompressionSnappy
	cfg.Net.DialTimeout = 10 * time.Second
	cfg.Net.WriteTimeout = 10 * time.Second

	producer, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, err
	}
	return &KafkaEmitter{producer: producer, topic: topic, log: logger}, nil
}

// Emit publishes the event. Failures are logged and dropped; the state
// transition that produced the event has already committed.
func (k *KafkaEmitter) Emit(_ context.Context, e Event) {
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now().UTC()
	}
	value, err := json.Marshal(e)
	if err != nil {
		k.log.Error("event marshal failed", zap.String("type", e.Type), zap.Error(err))
		return
	}

	msg := &sarama.ProducerMessage{
		Topic: k.topic,
		Key:   sarama.StringEncoder(e.TargetUserID.Hex()),
		Value: sarama.ByteEncoder(value),
	}
	partition, offset, err := k.producer.SendMessage(msg)
	if err != nil {
		k.log.Warn("event publish failed",
			zap.String("type", e.Type),
			zap.String("target_user_id", e.TargetUserID.Hex()),
			zap.Error(err))
		return
	}
	k.log.Debug("event published",
		zap.String("type", e.Type),
		zap.Int32("partition", partition),
		zap.Int64("offset", offset))
}

// Close shuts the underlying producer down.
func (k *KafkaEmitter) Close() error {
	return k.producer.Close()
}
