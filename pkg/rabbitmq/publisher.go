package rabbitmq

import (
	"context"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// PublisherConfig describes the exchange a publisher writes to.
type PublisherConfig struct {
	ExchangeName    string
	ExchangeType    string // direct, fanout, topic
	DurableExchange bool
	// DeclareExchange controls whether the exchange is declared at startup
	// or assumed to exist already.
	DeclareExchange bool

	Logger Logger
}

// Publisher holds one channel on the shared connection for publishing.
type Publisher struct {
	config  PublisherConfig
	conn    *amqp.Connection
	channel *amqp.Channel
	logger  Logger
}

func NewPublisher(cfg PublisherConfig, manager *ConnectionManager) (*Publisher, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = NewNoopLogger()
	}
	if cfg.DeclareExchange && (cfg.ExchangeName == "" || cfg.ExchangeType == "") {
		return nil, fmt.Errorf("publisher: exchange name and type are required when declaring")
	}

	conn, ch, err := manager.Channel()
	if err != nil {
		return nil, fmt.Errorf("publisher: %w", err)
	}

	if cfg.DeclareExchange {
		logger.Debug("declaring exchange", "name", cfg.ExchangeName, "type", cfg.ExchangeType)
		err = ch.ExchangeDeclare(
			cfg.ExchangeName,
			cfg.ExchangeType,
			cfg.DurableExchange,
			false, // auto-delete
			false, // internal
			false, // no-wait
			nil,
		)
		if err != nil {
			_ = ch.Close()
			return nil, fmt.Errorf("publisher: failed to declare exchange %q: %w", cfg.ExchangeName, err)
		}
	}

	return &Publisher{config: cfg, conn: conn, channel: ch, logger: logger}, nil
}

func (p *Publisher) Publish(ctx context.Context, routingKey string, msg amqp.Publishing) error {
	if p.channel == nil || p.conn == nil || p.conn.IsClosed() {
		return fmt.Errorf("publisher: connection is closed")
	}
	if err := p.channel.PublishWithContext(ctx, p.config.ExchangeName, routingKey, false, false, msg); err != nil {
		return fmt.Errorf("publisher: publish failed: %w", err)
	}
	return nil
}

func (p *Publisher) Close() error {
	if p.channel == nil {
		return nil
	}
	err := p.channel.Close()
	p.channel = nil
	return err
}
