package rabbitmq

import (
	"context"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Handler processes one delivery. A nil return acks the message; an error
// sends it through the retry path (or straight to nack/requeue when retries
// are disabled).
type Handler func(delivery amqp.Delivery) error

// ConsumerConfig describes the queue, its binding and the retry topology.
type ConsumerConfig struct {
	QueueName    string
	DurableQueue bool

	// Binding. When ExchangeName is empty the queue is consumed as is.
	ExchangeName    string
	ExchangeType    string
	DeclareExchange bool
	RoutingKey      string

	PrefetchCount int
	ConsumerTag   string

	// Retry topology: failed deliveries dead-letter into RetryExchange,
	// wait RetryTTL in RetryQueue, and flow back to the main exchange.
	// After MaxRetries the delivery is parked in the final DLQ.
	EnableRetry      bool
	RetryExchange    string
	RetryQueue       string
	RetryTTL         int // milliseconds
	MaxRetries       int
	FinalDLXExchange string
	FinalDLQ         string
	FinalRoutingKey  string

	Logger Logger
}

// Consumer reads one queue and dispatches each delivery to a handler
// goroutine. Close waits for in-flight handlers.
type Consumer struct {
	config       ConsumerConfig
	conn         *amqp.Connection
	channel      *amqp.Channel
	queueName    string
	dlxPublisher *Publisher
	handler      Handler
	logger       Logger
	wg           sync.WaitGroup
}

func NewConsumer(cfg ConsumerConfig, handler Handler, manager *ConnectionManager) (*Consumer, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = NewNoopLogger()
	}
	if cfg.QueueName == "" {
		return nil, fmt.Errorf("consumer: queue name is required")
	}
	if handler == nil {
		return nil, fmt.Errorf("consumer: handler is required")
	}

	conn, ch, err := manager.Channel()
	if err != nil {
		return nil, fmt.Errorf("consumer: %w", err)
	}

	c := &Consumer{config: cfg, conn: conn, channel: ch, handler: handler, logger: logger}
	if err := c.setup(); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("consumer: setup failed: %w", err)
	}

	if cfg.EnableRetry {
		pub, err := NewPublisher(PublisherConfig{
			ExchangeName: cfg.FinalDLXExchange,
			Logger:       logger,
		}, manager)
		if err != nil {
			_ = ch.Close()
			return nil, fmt.Errorf("consumer: failed to create DLX publisher: %w", err)
		}
		c.dlxPublisher = pub
	}
	return c, nil
}

func (c *Consumer) setup() error {
	cfg := c.config

	if cfg.PrefetchCount > 0 {
		if err := c.channel.Qos(cfg.PrefetchCount, 0, false); err != nil {
			return fmt.Errorf("failed to set qos: %w", err)
		}
	}

	queueArgs := amqp.Table{}
	if cfg.EnableRetry {
		// rejected deliveries dead-letter into the retry exchange
		queueArgs["x-dead-letter-exchange"] = cfg.RetryExchange
	}

	c.logger.Debug("declaring queue", "name", cfg.QueueName)
	q, err := c.channel.QueueDeclare(cfg.QueueName, cfg.DurableQueue, false, false, false, queueArgs)
	if err != nil {
		return fmt.Errorf("failed to declare queue %q: %w", cfg.QueueName, err)
	}
	c.queueName = q.Name

	if cfg.ExchangeName != "" {
		if cfg.DeclareExchange {
			err = c.channel.ExchangeDeclare(cfg.ExchangeName, cfg.ExchangeType, true, false, false, false, nil)
			if err != nil {
				return fmt.Errorf("failed to declare exchange %q: %w", cfg.ExchangeName, err)
			}
		}
		c.logger.Debug("binding queue", "queue", c.queueName, "exchange", cfg.ExchangeName, "routing_key", cfg.RoutingKey)
		if err := c.channel.QueueBind(c.queueName, cfg.RoutingKey, cfg.ExchangeName, false, nil); err != nil {
			return fmt.Errorf("failed to bind queue %q: %w", c.queueName, err)
		}
	}

	if cfg.EnableRetry {
		if err := c.setupRetryTopology(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Consumer) setupRetryTopology() error {
	cfg := c.config

	if err := c.channel.ExchangeDeclare(cfg.FinalDLXExchange, "direct", true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare final DLX: %w", err)
	}
	if _, err := c.channel.QueueDeclare(cfg.FinalDLQ, true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare final DLQ: %w", err)
	}
	if err := c.channel.QueueBind(cfg.FinalDLQ, cfg.FinalRoutingKey, cfg.FinalDLXExchange, false, nil); err != nil {
		return fmt.Errorf("failed to bind final DLQ: %w", err)
	}

	if err := c.channel.ExchangeDeclare(cfg.RetryExchange, "fanout", true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare retry exchange: %w", err)
	}
	// the wait queue holds deliveries for RetryTTL, then dead-letters them
	// back to the main exchange
	_, err := c.channel.QueueDeclare(cfg.RetryQueue, true, false, false, false, amqp.Table{
		"x-message-ttl":          int32(cfg.RetryTTL),
		"x-dead-letter-exchange": cfg.ExchangeName,
	})
	if err != nil {
		return fmt.Errorf("failed to declare retry queue: %w", err)
	}
	if err := c.channel.QueueBind(cfg.RetryQueue, "", cfg.RetryExchange, false, nil); err != nil {
		return fmt.Errorf("failed to bind retry queue: %w", err)
	}
	return nil
}

// StartConsuming blocks until ctx is cancelled or the delivery channel
// closes. Each delivery runs in its own goroutine.
func (c *Consumer) StartConsuming(ctx context.Context) error {
	if c.channel == nil || c.conn == nil || c.conn.IsClosed() {
		return fmt.Errorf("consumer: connection is closed")
	}

	deliveries, err := c.channel.Consume(c.queueName, c.config.ConsumerTag, false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consumer: failed to start consuming from %q: %w", c.queueName, err)
	}
	c.logger.Info("waiting for messages", "queue", c.queueName)

	for {
		select {
		case <-ctx.Done():
			c.logger.Info("consumer context cancelled", "queue", c.queueName)
			return nil
		case d, ok := <-deliveries:
			if !ok {
				c.logger.Warn("delivery channel closed by broker", "queue", c.queueName)
				return nil
			}
			c.wg.Add(1)
			go func(delivery amqp.Delivery) {
				defer c.wg.Done()
				c.dispatch(ctx, delivery)
			}(d)
		}
	}
}

func (c *Consumer) dispatch(ctx context.Context, d amqp.Delivery) {
	if err := c.handler(d); err == nil {
		_ = d.Ack(false)
		return
	} else {
		c.logger.Warn("handler failed", "delivery_tag", d.DeliveryTag, "error", err.Error())
	}

	if !c.config.EnableRetry {
		_ = d.Nack(false, false)
		return
	}

	if c.deathCount(d) >= int64(c.config.MaxRetries) {
		c.logger.Warn("delivery exhausted retries, parking in DLQ", "delivery_tag", d.DeliveryTag)
		err := c.dlxPublisher.Publish(ctx, c.config.FinalRoutingKey, amqp.Publishing{
			ContentType: d.ContentType,
			Body:        d.Body,
			Headers:     d.Headers,
		})
		if err != nil {
			c.logger.Error(err, "failed to park delivery, requeueing")
			_ = d.Nack(false, true)
			return
		}
		_ = d.Ack(false)
		return
	}
	// nack without requeue lets the queue's DLX route it into the retry loop
	_ = d.Nack(false, false)
}

// deathCount reads how many times this delivery already died in our queue.
func (c *Consumer) deathCount(d amqp.Delivery) int64 {
	if d.Headers == nil {
		return 0
	}
	deaths, ok := d.Headers["x-death"].([]interface{})
	if !ok {
		return 0
	}
	for _, death := range deaths {
		tbl, ok := death.(amqp.Table)
		if !ok {
			continue
		}
		if queue, ok := tbl["queue"].(string); ok && queue == c.queueName {
			if count, ok := tbl["count"].(int64); ok {
				return count
			}
		}
	}
	return 0
}

// Close waits for in-flight handlers, then closes the channel.
func (c *Consumer) Close() error {
	c.logger.Debug("waiting for in-flight handlers")
	c.wg.Wait()

	var firstErr error
	if c.dlxPublisher != nil {
		if err := c.dlxPublisher.Close(); err != nil {
			firstErr = err
		}
	}
	if c.channel != nil {
		if err := c.channel.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		c.channel = nil
	}
	c.logger.Info("consumer closed", "queue", c.queueName)
	return firstErr
}
