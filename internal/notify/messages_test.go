package notify

import (
	"testing"
	"time"
)

func TestMessageRoundTrip(t *testing.T) {
	m := NewMessage("alice", "Budget Exceeded", "You exceeded your FOOD budget.")
	if m.Timestamp.IsZero() {
		t.Fatal("expected stamped timestamp")
	}

	data, err := m.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}
	got, err := MessageFromJSON(data)
	if err != nil {
		t.Fatalf("MessageFromJSON: %v", err)
	}
	if got.Owner != "alice" || got.Subject != "Budget Exceeded" || got.Body != m.Body {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if !got.Timestamp.Equal(m.Timestamp.Truncate(time.Nanosecond)) {
		t.Fatalf("timestamp = %v, want %v", got.Timestamp, m.Timestamp)
	}
}

func TestMessageFromJSONRejectsGarbage(t *testing.T) {
	if _, err := MessageFromJSON([]byte("{not json")); err == nil {
		t.Fatal("expected error for malformed payload")
	}
}
