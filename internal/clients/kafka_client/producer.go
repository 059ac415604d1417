package kafka_client

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/confluentinc/confluent-kafka-go/kafka"
	"github.com/spacesedan/reviewtopics/internal/clients"
	"github.com/spacesedan/reviewtopics/internal/models"
)

// ProfilePublisher sends computed location profiles to Kafka, keyed by location.
type ProfilePublisher struct {
	producer *kafka.Producer
	topic    string
}

func NewProfilePublisher(cfg KafkaConfig) (*ProfilePublisher, error) {
	slog.Info("[KafkaClient] Initializing Kafka Producer...")

	p, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers":                     cfg.Broker,
		"client.id":                             cfg.ClientID,
		"security.protocol":                     "PLAINTEXT",
		"api.version.request":                   "true",
		"enable.idempotence":                    true,
		"acks":                                  "all",
		"max.in.flight.requests.per.connection": 1,
	})
	if err != nil {
		return nil, fmt.Errorf("[KafkaClient] Failed to create producer: %w", err)
	}

	slog.Info("[KafkaClient] Kafka Producer initialized successfully")
	return &ProfilePublisher{producer: p, topic: cfg.Topic}, nil
}

func (pp *ProfilePublisher) Close() {
	slog.Info("[KafkaClient] Shutting down Kafka producer...")
	if remaining := pp.producer.Flush(5000); remaining > 0 {
		slog.Warn("[KafkaClient] Not all messages were delivered before shutdown",
			slog.Int("remaining", remaining))
	}
	pp.producer.Close()
	slog.Info("[KafkaClient] Kafka producer shut down")
}

func profileMessage(topic string, profile models.LocationProfile) (*kafka.Message, error) {
	data, err := json.Marshal(profile)
	if err != nil {
		return nil, err
	}
	return &kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &topic, Partition: kafka.PartitionAny},
		Key:            []byte(profile.Location),
		Value:          data,
		Headers: []kafka.Header{
			{Key: "content-type", Value: []byte("application/json")},
		},
	}, nil
}

// PublishProfile waits for the delivery report or ctx, whichever comes first.
func (pp *ProfilePublisher) PublishProfile(ctx context.Context, profile models.LocationProfile) error {
	msg, err := profileMessage(pp.topic, profile)
	if err != nil {
		return fmt.Errorf("[KafkaClient] failed to encode profile: %w", err)
	}

	deliveries := make(chan kafka.Event, 1)
	for i := 0; i < MAX_RETRIES; i++ {
		err = pp.producer.Produce(msg, deliveries)
		if err == nil {
			break
		}
		slog.Warn("[KafkaClient] Failed to produce message, retrying...",
			slog.Int("attempt", i+1),
			slog.String("error", err.Error()))
		if i < MAX_RETRIES-1 {
			if waitErr := clients.WaitRetry(ctx, RETRY_DELAY); waitErr != nil {
				return waitErr
			}
		}
	}
	if err != nil {
		return fmt.Errorf("[KafkaClient] failed to produce after %d attempts: %w", MAX_RETRIES, err)
	}

	timeout := time.NewTimer(DELIVERY_TIMEOUT)
	defer timeout.Stop()

	select {
	case ev := <-deliveries:
		m, ok := ev.(*kafka.Message)
		if !ok {
			return fmt.Errorf("[KafkaClient] unexpected delivery event: %v", ev)
		}
		if m.TopicPartition.Error != nil {
			return fmt.Errorf("[KafkaClient] delivery failed: %w", m.TopicPartition.Error)
		}
	case <-ctx.Done():
		return ctx.Err()
	case <-timeout.C:
		return fmt.Errorf("[KafkaClient] delivery report not received within %s", DELIVERY_TIMEOUT)
	}

	slog.Info("[KafkaClient] Published location profile",
		slog.String("topic", pp.topic),
		slog.String("location", profile.Location))
	return nil
}
