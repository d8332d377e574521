package port

import "context"

// EventListenerPort is an inbound adapter that feeds the core from a broker
// queue. Start blocks until the context is cancelled or a fatal error occurs.
type EventListenerPort interface {
	Start(ctx context.Context) error
	Close() error
}
