package contracts

import "testing"

func TestValidateMessageEvent(t *testing.T) {
	valid := []byte(`{
		"message_id": "m-1",
		"recipient_id": "u-2",
		"sender_id": "u-1",
		"sender_name": "Abel",
		"content": "Is this still available?"
	}`)
	if err := ValidateMessageEvent(valid); err != nil {
		t.Fatalf("valid event rejected: %v", err)
	}
}

func TestValidateMessageEventMissingRequiredField(t *testing.T) {
	// content is required.
	payload := []byte(`{"message_id": "m-1", "recipient_id": "u-2", "sender_id": "u-1"}`)
	if err := ValidateMessageEvent(payload); err == nil {
		t.Fatal("expected validation failure for missing content")
	}
}

func TestValidateMessageEventRejectsNonJSON(t *testing.T) {
	if err := ValidateMessageEvent([]byte("{nope")); err == nil {
		t.Fatal("expected failure for malformed JSON")
	}
}

func TestValidateListingPayloadAcceptsLegacyShapes(t *testing.T) {
	payloads := [][]byte{
		[]byte(`{"id": 42, "title": "Villa", "total_price": "1500000"}`),
		[]byte(`{"_id": "abc", "address": "Bole, Addis Ababa"}`),
		[]byte(`{"title": "Untitled draft listing"}`),
	}
	for i, p := range payloads {
		if err := ValidateListingPayload(p); err != nil {
			t.Fatalf("payload %d rejected: %v", i, err)
		}
	}
}

func TestValidateListingPayloadRejectsEmptyObject(t *testing.T) {
	if err := ValidateListingPayload([]byte(`{}`)); err == nil {
		t.Fatal("expected rejection of an object with no identifying field")
	}
}

func TestValidateUnknownSchemaKey(t *testing.T) {
	if err := Validate("no-such-schema.v1", []byte(`{}`)); err == nil {
		t.Fatal("expected error for unregistered schema key")
	}
}
