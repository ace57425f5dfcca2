package models

import "time"

// Event types written to the event log.
const (
	EventUpdate     = "UPDATE"
	EventEdit       = "EDIT"
	EventRoom       = "ROOM"
	EventDevice     = "DEVICE"
	EventFanSpeed   = "FAN_SPEED"
	EventRule       = "RULE"
	EventScenario   = "SCENARIO"
	EventAutomation = "AUTOMATION"
	EventSimulation = "SIMULATION"
)

// Event is a single log entry.
type Event struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`        // UPDATE | EDIT | ROOM | DEVICE | FAN_SPEED | RULE | SCENARIO | AUTOMATION | SIMULATION
	Description string    `json:"description"` // human-readable
	Metadata    any       `json:"metadata,omitempty"`
}
