package service

import "time"

// EditParams sets one field of one scope. An empty Scope means the
// currently selected room.
type EditParams struct {
	Scope string
	Field string
	Value float64
}

// DeviceParams toggles one device. Speed only applies to the intake fan.
type DeviceParams struct {
	Device string
	Active bool
	Speed  *int
}

type RuleParams struct {
	Rule    string
	Enabled bool
}

// LogFilter supports history filtering by time range and type.
type LogFilter struct {
	From  time.Time // inclusive; zero means no lower bound
	To    time.Time // inclusive; zero means no upper bound
	Type  string    // "", "UPDATE", "EDIT", "ROOM", "DEVICE", "FAN_SPEED", "RULE", "SCENARIO", "AUTOMATION", "SIMULATION"
	Limit int       // 0 means everything
}
