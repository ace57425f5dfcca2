package models

import (
	"fmt"
	"time"
)

// RoomName identifies one room. The set of rooms comes from configuration.
type RoomName string

// Scope is either ScopeAll or a RoomName.
type Scope string

const ScopeAll Scope = "all"

// Room returns the room a scope targets, or false for ScopeAll.
func (s Scope) Room() (RoomName, bool) {
	if s == ScopeAll || s == "" {
		return "", false
	}
	return RoomName(s), true
}

// AggregateState is the global reading plus the per-room readings it is
// derived from. Global is a cached value: it is recomputed on every edit,
// never lazily.
type AggregateState struct {
	Global   Reading              `json:"global"`
	Rooms    map[RoomName]Reading `json:"rooms"`
	Selected Scope                `json:"selectedRoom"`
}

// Clone copies the room map so the result can be edited freely.
func (a AggregateState) Clone() AggregateState {
	rooms := make(map[RoomName]Reading, len(a.Rooms))
	for name, r := range a.Rooms {
		rooms[name] = r
	}
	a.Rooms = rooms
	return a
}

// HasRoom reports whether name is one of the configured rooms.
func (a AggregateState) HasRoom(name RoomName) bool {
	_, ok := a.Rooms[name]
	return ok
}

// ValidateScope accepts ScopeAll or a room present in the state.
func (a AggregateState) ValidateScope(s Scope) error {
	if s == ScopeAll {
		return nil
	}
	if room, ok := s.Room(); ok && a.HasRoom(room) {
		return nil
	}
	return fmt.Errorf("%w: unknown scope %q", ErrInvalidArgument, string(s))
}

// ReadingFor returns the reading shown for a scope.
func (a AggregateState) ReadingFor(s Scope) (Reading, error) {
	if err := a.ValidateScope(s); err != nil {
		return Reading{}, err
	}
	if room, ok := s.Room(); ok {
		return a.Rooms[room], nil
	}
	return a.Global, nil
}

// Snapshot is the full persisted unit served by the sensor store.
// The global reading is flattened into the top level.
type Snapshot struct {
	Reading
	Rooms       map[RoomName]Reading `json:"rooms"`
	CurrentRoom Scope                `json:"currentRoom"`
	Devices     DeviceState          `json:"devices"`
	Rules       RuleSet              `json:"rules"`
	Timestamp   time.Time            `json:"timestamp"`
}

// Aggregate extracts the aggregation view of the snapshot.
func (s Snapshot) Aggregate() AggregateState {
	return AggregateState{Global: s.Reading, Rooms: s.Rooms, Selected: s.CurrentRoom}
}

// WithAggregate returns a copy of s carrying the readings of a.
func (s Snapshot) WithAggregate(a AggregateState) Snapshot {
	s.Reading = a.Global
	s.Rooms = a.Rooms
	s.CurrentRoom = a.Selected
	return s
}

// Label is the qualitative air-quality tier.
type Label string

const (
	LabelExcellent Label = "EXCELLENT"
	LabelModerate  Label = "MODERATE"
	LabelPoor      Label = "POOR"
)

// Assessment is the scorer output for one scope.
type Assessment struct {
	Scope     Scope     `json:"scope"`
	Reading   Reading   `json:"reading"`
	Score     int       `json:"score"`
	Label     Label     `json:"label"`
	Timestamp time.Time `json:"timestamp"`
}

// Status is the health answer of the sensor store.
type Status struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}
