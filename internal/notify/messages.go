package notify

import (
	"encoding/json"
	"time"
)

// Message is the wire format published to the notification queue. The
// delivery collaborator (mail sender, push gateway) consumes these and
// resolves the owner's address on its side.
type Message struct {
	Owner     string    `json:"owner"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	Timestamp time.Time `json:"timestamp"`
}

// NewMessage builds a notification message stamped with the current time.
func NewMessage(owner, subject, body string) *Message {
	return &Message{
		Owner:     owner,
		Subject:   subject,
		Body:      body,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *Message) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// MessageFromJSON creates a message from JSON bytes.
func MessageFromJSON(data []byte) (*Message, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
