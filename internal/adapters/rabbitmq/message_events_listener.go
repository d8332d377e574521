package rabbitmq_adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"listing-feed-service/internal/constants"
	"listing-feed-service/internal/contextkeys"
	"listing-feed-service/internal/contracts"
	"listing-feed-service/internal/core/domain"
	"listing-feed-service/internal/core/port"
	"listing-feed-service/internal/core/port/usecases_port"
	"listing-feed-service/pkg/rabbitmq"
)

// messageEventPayload is the wire shape of a message.created event.
type messageEventPayload struct {
	MessageID   string `json:"message_id"`
	SenderID    string `json:"sender_id"`
	SenderName  string `json:"sender_name"`
	RecipientID string `json:"recipient_id"`
	ListingID   string `json:"listing_id"`
	Content     string `json:"content"`
	CreatedAt   string `json:"created_at"`
}

// MessageEventsListener consumes message.created events and feeds them into
// the pending-message store, so a recipient sees a new first contact without
// waiting for the next upstream poll.
type MessageEventsListener struct {
	consumer *rabbitmq.Consumer
	logger   port.LoggerPort
}

var _ port.EventListenerPort = (*MessageEventsListener)(nil)

func NewMessageEventsListener(
	manager *rabbitmq.ConnectionManager,
	ingest usecases_port.IngestPendingUseCase,
	logger port.LoggerPort,
) (*MessageEventsListener, error) {
	l := &MessageEventsListener{logger: logger}

	handler := func(delivery amqp.Delivery) error {
		return l.handle(delivery, ingest)
	}

	consumer, err := rabbitmq.NewConsumer(rabbitmq.ConsumerConfig{
		QueueName:       constants.QueueMessageEvents,
		DurableQueue:    true,
		ExchangeName:    constants.ExchangeMarketplaceEvents,
		ExchangeType:    "topic",
		DeclareExchange: true,
		RoutingKey:      constants.RoutingKeyMessageEvents,
		PrefetchCount:   10,
		ConsumerTag:     "listing-feed-service",

		EnableRetry:      true,
		RetryExchange:    constants.RetryExchange,
		RetryQueue:       constants.RetryQueue,
		RetryTTL:         constants.RetryTTLMillis,
		MaxRetries:       constants.MaxRetries,
		FinalDLXExchange: constants.FinalDLXExchange,
		FinalDLQ:         constants.FinalDLQ,
		FinalRoutingKey:  constants.FinalDLQRoutingKey,

		Logger: NewPkgLoggerBridge(logger),
	}, handler, manager)
	if err != nil {
		return nil, fmt.Errorf("message events listener: %w", err)
	}
	l.consumer = consumer
	return l, nil
}

func (l *MessageEventsListener) handle(delivery amqp.Delivery, ingest usecases_port.IngestPendingUseCase) error {
	if err := contracts.ValidateMessageEvent(delivery.Body); err != nil {
		// malformed events never become valid, do not retry them
		l.logger.Warn("dropping malformed message event", port.Fields{"error": err.Error()})
		return nil
	}

	var payload messageEventPayload
	if err := json.Unmarshal(delivery.Body, &payload); err != nil {
		l.logger.Warn("dropping undecodable message event", port.Fields{"error": err.Error()})
		return nil
	}

	createdAt, err := time.Parse(time.RFC3339, payload.CreatedAt)
	if err != nil {
		createdAt = time.Now().UTC()
	}

	ctx := contextkeys.ContextWithLogger(context.Background(), l.logger)
	return ingest.Execute(ctx, payload.RecipientID, domain.PendingMessage{
		ID:          payload.MessageID,
		SenderID:    payload.SenderID,
		SenderName:  payload.SenderName,
		RecipientID: payload.RecipientID,
		ListingID:   payload.ListingID,
		Content:     payload.Content,
		CreatedAt:   createdAt,
	})
}

func (l *MessageEventsListener) Start(ctx context.Context) error {
	return l.consumer.StartConsuming(ctx)
}

func (l *MessageEventsListener) Close() error {
	return l.consumer.Close()
}
