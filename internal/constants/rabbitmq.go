package constants

// Broker topology shared with the marketplace backend.
const (
	ExchangeMarketplaceEvents = "marketplace_events"

	QueueMessageEvents      = "feed_message_events"
	RoutingKeyMessageEvents = "message.created"

	RoutingKeyConversationAccepted = "conversation.accepted"

	RetryExchange  = "feed_message_events_retry_exchange"
	RetryQueue     = "feed_message_events_retry_wait"
	RetryTTLMillis = 15000
	MaxRetries     = 3

	FinalDLXExchange   = "final_dlx_exchange"
	FinalDLQ           = "final_dlq"
	FinalDLQRoutingKey = "final_dlq_key"
)
