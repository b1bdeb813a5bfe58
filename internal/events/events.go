package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-kafka/v2/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

// TopicConfirmationRequested carries signup confirmation code events to the
// mail dispatcher.
const TopicConfirmationRequested = "user.confirmation_requested"

// ConfirmationRequested is published whenever a signup issues a new code.
type ConfirmationRequested struct {
	EventID    string    `json:"event_id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	Code       string    `json:"code"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher publishes domain events.
type Publisher interface {
	PublishConfirmationRequested(ctx context.Context, event ConfirmationRequested) error
	Close() error
}

// WatermillPublisher publishes events over any watermill transport.
type WatermillPublisher struct {
	publisher message.Publisher
}

func NewWatermillPublisher(publisher message.Publisher) *WatermillPublisher {
	return &WatermillPublisher{publisher: publisher}
}

func (p *WatermillPublisher) PublishConfirmationRequested(ctx context.Context, event ConfirmationRequested) error {
	if event.EventID == "" {
		event.EventID = uuid.New().String()
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := message.NewMessage(event.EventID, payload)
	msg.SetContext(ctx)
	msg.Metadata.Set("event_type", TopicConfirmationRequested)

	if err := p.publisher.Publish(TopicConfirmationRequested, msg); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	return nil
}

func (p *WatermillPublisher) Close() error {
	return p.publisher.Close()
}

// NewGoChannelBus builds the in-process pub/sub used when no broker is
// configured. The same value serves as publisher and subscriber.
func NewGoChannelBus(logger watermill.LoggerAdapter) *gochannel.GoChannel {
	return gochannel.NewGoChannel(gochannel.Config{
		OutputChannelBuffer: 64,
	}, logger)
}

// NewKafkaPublisher builds a Kafka-backed publisher for deployments that set
// KAFKA_BROKERS.
func NewKafkaPublisher(brokers []string, logger watermill.LoggerAdapter) (message.Publisher, error) {
	return kafka.NewPublisher(kafka.PublisherConfig{
		Brokers:   brokers,
		Marshaler: kafka.DefaultMarshaler{},
	}, logger)
}

// NewKafkaSubscriber builds the matching Kafka subscriber.
func NewKafkaSubscriber(brokers []string, group string, logger watermill.LoggerAdapter) (message.Subscriber, error) {
	return kafka.NewSubscriber(kafka.SubscriberConfig{
		Brokers:       brokers,
		ConsumerGroup: group,
		Unmarshaler:   kafka.DefaultMarshaler{},
	}, logger)
}
