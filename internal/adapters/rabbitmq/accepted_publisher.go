package rabbitmq_adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"listing-feed-service/internal/constants"
	"listing-feed-service/internal/contextkeys"
	"listing-feed-service/internal/core/domain"
	"listing-feed-service/internal/core/port"
	"listing-feed-service/pkg/rabbitmq"
)

// AcceptedEventPublisher announces accepted conversations on the shared
// events exchange for downstream services.
type AcceptedEventPublisher struct {
	publisher *rabbitmq.Publisher
}

var _ port.ConversationEventsPort = (*AcceptedEventPublisher)(nil)

func NewAcceptedEventPublisher(manager *rabbitmq.ConnectionManager, logger port.LoggerPort) (*AcceptedEventPublisher, error) {
	publisher, err := rabbitmq.NewPublisher(rabbitmq.PublisherConfig{
		ExchangeName:    constants.ExchangeMarketplaceEvents,
		ExchangeType:    "topic",
		DurableExchange: true,
		DeclareExchange: true,
		Logger:          NewPkgLoggerBridge(logger),
	}, manager)
	if err != nil {
		return nil, fmt.Errorf("accepted event publisher: %w", err)
	}
	return &AcceptedEventPublisher{publisher: publisher}, nil
}

type acceptedEventPayload struct {
	ConversationID string    `json:"conversation_id"`
	ListingID      string    `json:"listing_id,omitempty"`
	AcceptedAt     time.Time `json:"accepted_at"`
	TraceID        string    `json:"trace_id,omitempty"`
}

func (p *AcceptedEventPublisher) PublishAccepted(ctx context.Context, conv domain.Conversation) error {
	body, err := json.Marshal(acceptedEventPayload{
		ConversationID: conv.ID,
		ListingID:      conv.ListingID,
		AcceptedAt:     time.Now().UTC(),
		TraceID:        contextkeys.TraceIDFromContext(ctx),
	})
	if err != nil {
		return err
	}
	return p.publisher.Publish(ctx, constants.RoutingKeyConversationAccepted, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
}

func (p *AcceptedEventPublisher) Close() error {
	return p.publisher.Close()
}
