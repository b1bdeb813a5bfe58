package mailer

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/critiq-labs/review-service/internal/events"
	"github.com/critiq-labs/review-service/internal/utils"
)

// Dispatcher consumes confirmation events and mails the codes out. Delivery
// failures are logged and acked; the user can always request a fresh code.
type Dispatcher struct {
	subscriber message.Subscriber
	mailer     Mailer
	logger     utils.Logger
}

func NewDispatcher(subscriber message.Subscriber, mailer Mailer, logger utils.Logger) *Dispatcher {
	return &Dispatcher{
		subscriber: subscriber,
		mailer:     mailer,
		logger:     logger,
	}
}

// Run subscribes and processes events until ctx is cancelled.
func (d *Dispatcher) Run(ctx context.Context) error {
	messages, err := d.subscriber.Subscribe(ctx, events.TopicConfirmationRequested)
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", events.TopicConfirmationRequested, err)
	}

	go func() {
		for msg := range messages {
			d.handle(ctx, msg)
			msg.Ack()
		}
	}()
	return nil
}

func (d *Dispatcher) handle(ctx context.Context, msg *message.Message) {
	var event events.ConfirmationRequested
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		d.logger.Error("failed to decode confirmation event",
			"error", err,
			"message_id", msg.UUID)
		return
	}

	mail := Message{
		To:      event.Email,
		Subject: "Your confirmation code",
		Body: fmt.Sprintf("Hello %s,\n\nYour confirmation code is: %s\n\nUse it together with your username to obtain an access token.\n",
			event.Username, event.Code),
	}

	if err := d.mailer.Send(ctx, mail); err != nil {
		d.logger.Error("failed to deliver confirmation code",
			"error", err,
			"username", event.Username,
			"event_id", event.EventID)
		return
	}

	d.logger.Info("confirmation code delivered",
		"username", event.Username,
		"event_id", event.EventID)
}
