package rabbitmq

import (
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ConnectionManager owns the single AMQP connection shared by every
// publisher and consumer in the process. Channels are cheap, connections
// are not.
type ConnectionManager struct {
	url        string
	logger     Logger
	mu         sync.RWMutex
	connection *amqp.Connection
	done       chan struct{}
	closeOnce  sync.Once
}

// NewConnectionManager dials the broker and starts a background watchdog
// that re-dials when the connection drops.
func NewConnectionManager(url string, logger Logger) (*ConnectionManager, error) {
	if logger == nil {
		logger = NewNoopLogger()
	}
	m := &ConnectionManager{
		url:    url,
		logger: logger,
		done:   make(chan struct{}),
	}
	if _, err := m.getConnection(); err != nil {
		return nil, fmt.Errorf("rabbitmq: initial connection failed: %w", err)
	}
	go m.watchdog()
	return m, nil
}

func (m *ConnectionManager) getConnection() (*amqp.Connection, error) {
	m.mu.RLock()
	if m.connection != nil && !m.connection.IsClosed() {
		conn := m.connection
		m.mu.RUnlock()
		return conn, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()
	// another goroutine may have reconnected while we waited for the lock
	if m.connection != nil && !m.connection.IsClosed() {
		return m.connection, nil
	}

	m.logger.Debug("connecting to rabbitmq")
	conn, err := amqp.Dial(m.url)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq: dial failed: %w", err)
	}
	m.connection = conn
	m.logger.Debug("rabbitmq connection established")
	return conn, nil
}

// Channel opens a fresh channel on the shared connection.
func (m *ConnectionManager) Channel() (*amqp.Connection, *amqp.Channel, error) {
	conn, err := m.getConnection()
	if err != nil {
		return nil, nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		return conn, nil, fmt.Errorf("rabbitmq: failed to open channel: %w", err)
	}
	return conn, ch, nil
}

func (m *ConnectionManager) watchdog() {
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-m.done:
			return
		case <-ticker.C:
		}

		m.mu.RLock()
		healthy := m.connection == nil || !m.connection.IsClosed()
		m.mu.RUnlock()
		if healthy {
			continue
		}

		m.logger.Warn("rabbitmq connection lost, reconnecting")
		if _, err := m.getConnection(); err != nil {
			m.logger.Error(err, "rabbitmq reconnect failed")
		}
	}
}

// Close shuts down the watchdog and the shared connection.
func (m *ConnectionManager) Close() error {
	var err error
	m.closeOnce.Do(func() {
		close(m.done)
		m.mu.Lock()
		defer m.mu.Unlock()
		if m.connection != nil && !m.connection.IsClosed() {
			err = m.connection.Close()
		}
	})
	return err
}
