package amqp

import (
	"encoding/json"
	"time"

	"horas/internal/core"
)

// LoadEventMessage carries the report of one timesheet load to the journal worker.
type LoadEventMessage struct {
	Report    core.LoadReport `json:"report"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewLoadEventMessage wraps a load report in a message stamped with the current time
func NewLoadEventMessage(report core.LoadReport) *LoadEventMessage {
	return &LoadEventMessage{
		Report:    report,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *LoadEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// LoadEventMessageFromJSON creates a message from JSON bytes
func LoadEventMessageFromJSON(data []byte) (*LoadEventMessage, error) {
	var msg LoadEventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
