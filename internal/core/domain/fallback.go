package domain

// ResolvedListing is the outcome of a fallback-chain resolution: the record
// plus where it came from.
type ResolvedListing struct {
	Listing *Listing
	// Source names the tier that answered ("remote", "cache", "store",
	// "sample").
	Source string
	// Informational is set when the terminal sample tier answered; the UI
	// shows a non-error notice in that case.
	Informational bool
}

// SearchResult is a filtered listing search plus how it was sourced.
// Informational is set when the upstream was unreachable and the bundled
// sample feed stood in.
type SearchResult struct {
	Listings      []Listing
	Informational bool
}

// ConversationFeed is a conversation list plus how it was sourced.
// Informational is set when the upstream was unreachable and the last
// successfully fetched list was served instead.
type ConversationFeed struct {
	Conversations []Conversation
	Informational bool
}

// MessageHistory is a date-grouped message view plus how it was sourced.
type MessageHistory struct {
	Groups        []MessageGroup
	Informational bool
}

// SendReceipt is the outcome of sending a message. When the upstream write
// failed the message is queued locally and Queued is set, preserving the
// user's input instead of dropping it.
type SendReceipt struct {
	Message Message
	Queued  bool
	Notice  string
}
