package domain

import (
	"testing"
	"time"
)

func TestGroupMessagesByDate(t *testing.T) {
	day1 := time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC)
	day2 := time.Date(2025, 7, 2, 8, 0, 0, 0, time.UTC)

	// deliberately out of order
	msgs := []Message{
		{ID: "3", CreatedAt: day2},
		{ID: "1", CreatedAt: day1},
		{ID: "2", CreatedAt: day1.Add(2 * time.Hour)},
	}

	groups := GroupMessagesByDate(msgs)
	if len(groups) != 2 {
		t.Fatalf("expected 2 date groups, got %d", len(groups))
	}
	if groups[0].Date != "2025-07-01" || groups[1].Date != "2025-07-02" {
		t.Fatalf("groups not oldest-first: %s, %s", groups[0].Date, groups[1].Date)
	}
	if len(groups[0].Messages) != 2 {
		t.Fatalf("expected 2 messages on day one, got %d", len(groups[0].Messages))
	}
	if groups[0].Messages[0].ID != "1" || groups[0].Messages[1].ID != "2" {
		t.Fatalf("messages within a group not chronological: %+v", groups[0].Messages)
	}
}

func TestGroupMessagesByDateEmpty(t *testing.T) {
	if groups := GroupMessagesByDate(nil); len(groups) != 0 {
		t.Fatalf("expected no groups for no messages, got %d", len(groups))
	}
}

func TestConversationOtherParty(t *testing.T) {
	conv := Conversation{
		Participants: []Participant{
			{ID: "u1", Name: "Abebe"},
			{ID: "u2", Name: "Marta"},
		},
	}
	if got := conv.OtherParty("u1"); got.ID != "u2" {
		t.Fatalf("expected the other participant, got %q", got.ID)
	}
	if got := conv.OtherParty("u2"); got.ID != "u1" {
		t.Fatalf("expected the other participant, got %q", got.ID)
	}
	// inconsistent data still yields something renderable
	if got := conv.OtherParty("stranger"); got.ID == "" {
		t.Fatalf("expected a participant for an unknown self id")
	}
}
