package notify

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/IBM/sarama"
)

// KafkaSink publishes notifications to a Kafka topic through an async
// producer. Broker errors are drained and logged; they never reach callers.
type KafkaSink struct {
	producer sarama.AsyncProducer
	topic    string
	logger   *slog.Logger
}

// event is the wire shape of a published notification.
type event struct {
	UserID   string    `json:"user_id"`
	Title    string    `json:"title"`
	Message  string    `json:"message"`
	Severity string    `json:"severity"`
	At       time.Time `json:"at"`
}

// NewKafkaSink connects an async producer to the given brokers.
func NewKafkaSink(brokers []string, topic string, logger *slog.Logger) (*KafkaSink, error) {
	config := sarama.NewConfig()
	config.Producer.RequiredAcks = sarama.WaitForLocal
	config.Producer.Compression = sarama.CompressionSnappy
	config.Producer.Flush.Frequency = 500 * time.Millisecond
	config.Producer.Retry.Max = 5

	producer, err := sarama.NewAsyncProducer(brokers, config)
	if err != nil {
		return nil, err
	}

	sink := &KafkaSink{producer: producer, topic: topic, logger: logger}
	go sink.drainErrors()
	return sink, nil
}

// Notify publishes the notification, keyed by user so per-user ordering holds.
func (s *KafkaSink) Notify(ctx context.Context, userID, title, message, severity string) {
	payload, err := json.Marshal(event{
		UserID:   userID,
		Title:    title,
		Message:  message,
		Severity: severity,
		At:       time.Now().UTC(),
	})
	if err != nil {
		s.logger.Error("encode notification failed", slog.String("error", err.Error()))
		return
	}

	select {
	case s.producer.Input() <- &sarama.ProducerMessage{
		Topic: s.topic,
		Key:   sarama.StringEncoder(userID),
		Value: sarama.ByteEncoder(payload),
	}:
	case <-ctx.Done():
		s.logger.Warn("notification dropped", slog.String("user_id", userID))
	}
}

// Close flushes and shuts down the producer.
func (s *KafkaSink) Close() error {
	return s.producer.Close()
}

func (s *KafkaSink) drainErrors() {
	for err := range s.producer.Errors() {
		s.logger.Error("notification publish failed", slog.String("error", err.Error()))
	}
}
