package domain

import (
	"sort"
	"time"
)

// Participant is one side of a conversation.
type Participant struct {
	ID   string
	Name string
	Role string // "customer", "agent", ...
}

// Conversation is an established two-party message thread, optionally tied
// to a listing the conversation started from.
type Conversation struct {
	ID            string
	Participants  []Participant
	LastMessage   string
	LastMessageAt time.Time
	UnreadCount   int
	ListingID     string
	CreatedAt     time.Time
}

// OtherParty returns the participant that is not selfID. In the two-party
// model exactly one such participant exists; if the data is inconsistent the
// first participant is returned so display code always has something to show.
func (c Conversation) OtherParty(selfID string) Participant {
	for _, p := range c.Participants {
		if p.ID != selfID {
			return p
		}
	}
	if len(c.Participants) > 0 {
		return c.Participants[0]
	}
	return Participant{}
}

// Message is a single message within a conversation.
type Message struct {
	ID             string
	ConversationID string
	SenderID       string
	Content        string
	Read           bool
	CreatedAt      time.Time
}

// MessageGroup is one calendar date worth of messages, in chronological
// order, as rendered by the conversation view.
type MessageGroup struct {
	Date     string // "2006-01-02"
	Messages []Message
}

// GroupMessagesByDate orders messages chronologically and buckets them by
// calendar date. Groups come out oldest-first, matching the scroll order of
// the conversation view.
func GroupMessagesByDate(ms []Message) []MessageGroup {
	sorted := make([]Message, len(ms))
	copy(sorted, ms)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})

	var groups []MessageGroup
	for _, m := range sorted {
		date := m.CreatedAt.Format("2006-01-02")
		if len(groups) == 0 || groups[len(groups)-1].Date != date {
			groups = append(groups, MessageGroup{Date: date})
		}
		groups[len(groups)-1].Messages = append(groups[len(groups)-1].Messages, m)
	}
	return groups
}

// PendingMessage is an inbound first contact awaiting an accept/ignore
// decision. Accepting establishes a conversation; ignoring discards it.
type PendingMessage struct {
	ID          string
	SenderID    string
	SenderName  string
	RecipientID string
	ListingID   string
	Content     string
	CreatedAt   time.Time
}

// Agent is a marketplace agent directory entry.
type Agent struct {
	ID             string
	Name           string
	Phone          string
	Email          string
	Region         string
	Specialization string
	Rating         float64
	Verified       bool
}
