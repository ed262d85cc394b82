package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/LeonR92/kafka/internal/config"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// KafkaEventPublisher implements EventPublisher using a sarama SyncProducer.
// Each event is sent exactly once per mutation, with no retry and no
// service-enforced timeout beyond the client's own network timeouts.
// The partition key is the item ID, so events for the same item stay in
// order within the topic.
type KafkaEventPublisher struct {
	producer sarama.SyncProducer
	logger   *zap.Logger
	topic    string
}

// NewKafkaEventPublisher creates a new Kafka event publisher
func NewKafkaEventPublisher(cfg *config.Config, logger *zap.Logger) (*KafkaEventPublisher, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.ClientID = cfg.KafkaClientID
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true
	saramaConfig.Producer.Retry.Max = 0 // At-most-once: a failed send is dropped, not retried

	switch cfg.KafkaAcks {
	case "0":
		saramaConfig.Producer.RequiredAcks = sarama.NoResponse
	case "1":
		saramaConfig.Producer.RequiredAcks = sarama.WaitForLocal
	default:
		saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	}

	// Network settings
	saramaConfig.Net.DialTimeout = 10 * time.Second
	saramaConfig.Net.ReadTimeout = 10 * time.Second
	saramaConfig.Net.WriteTimeout = 10 * time.Second

	producer, err := sarama.NewSyncProducer(cfg.KafkaBrokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	logger.Info("Kafka producer created",
		zap.Strings("brokers", cfg.KafkaBrokers),
		zap.String("topic", cfg.KafkaTopic),
	)

	return &KafkaEventPublisher{
		producer: producer,
		logger:   logger,
		topic:    cfg.KafkaTopic,
	}, nil
}

// Publish sends the event to the configured topic. The call blocks until
// the broker confirms the send or the client gives up; the error is the
// caller's to log, never to retry.
func (p *KafkaEventPublisher) Publish(ctx context.Context, event *Event) error {
	message, err := p.buildMessage(event)
	if err != nil {
		return err
	}

	partition, offset, err := p.producer.SendMessage(message)
	if err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	p.logger.Info("Event published to Kafka",
		zap.String("topic", p.topic),
		zap.String("event_type", event.EventType),
		zap.Int64("item_id", event.ItemID),
		zap.Int32("partition", partition),
		zap.Int64("offset", offset),
	)
	return nil
}

// buildMessage serializes the event and attaches tracing headers
func (p *KafkaEventPublisher) buildMessage(event *Event) (*sarama.ProducerMessage, error) {
	eventJSON, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event: %w", err)
	}

	return &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(strconv.FormatInt(event.ItemID, 10)),
		Value: sarama.ByteEncoder(eventJSON),
		Headers: []sarama.RecordHeader{
			{
				Key:   []byte("event-type"),
				Value: []byte(event.EventType),
			},
			{
				Key:   []byte("event-id"),
				Value: []byte(uuid.New().String()),
			},
			{
				Key:   []byte("timestamp"),
				Value: []byte(event.OccurredAt.Format(time.RFC3339)),
			},
		},
	}, nil
}

// Close closes the Kafka producer
func (p *KafkaEventPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}
