package models

import "fmt"

// FanState is the intake fan: on/off plus a 0-100 speed.
type FanState struct {
	Active bool `json:"active"`
	Speed  int  `json:"speed"`
}

// SwitchState is a plain on/off device.
type SwitchState struct {
	Active bool `json:"active"`
}

// DeviceState is the activation state of every controlled device.
type DeviceState struct {
	IntakeFan   FanState    `json:"intakeFan"`
	HepaFilter  SwitchState `json:"hepaFilter"`
	AirPurifier SwitchState `json:"airPurifier"`
	WindowServo SwitchState `json:"windowServo"`
}

// Device names one controlled device.
type Device string

const (
	DeviceIntakeFan   Device = "intakeFan"
	DeviceHepaFilter  Device = "hepaFilter"
	DeviceAirPurifier Device = "airPurifier"
	DeviceWindowServo Device = "windowServo"
)

var Devices = []Device{DeviceIntakeFan, DeviceHepaFilter, DeviceAirPurifier, DeviceWindowServo}

func ParseDevice(s string) (Device, error) {
	switch d := Device(s); d {
	case DeviceIntakeFan, DeviceHepaFilter, DeviceAirPurifier, DeviceWindowServo:
		return d, nil
	}
	return "", fmt.Errorf("%w: unknown device %q", ErrInvalidArgument, s)
}

// Active reports whether device d is on.
func (s DeviceState) Active(d Device) bool {
	switch d {
	case DeviceIntakeFan:
		return s.IntakeFan.Active
	case DeviceHepaFilter:
		return s.HepaFilter.Active
	case DeviceAirPurifier:
		return s.AirPurifier.Active
	case DeviceWindowServo:
		return s.WindowServo.Active
	}
	return false
}

// WithActive returns a copy of s with device d switched on or off.
// The fan speed is left alone; callers decide what speed means.
func (s DeviceState) WithActive(d Device, on bool) DeviceState {
	switch d {
	case DeviceIntakeFan:
		s.IntakeFan.Active = on
	case DeviceHepaFilter:
		s.HepaFilter.Active = on
	case DeviceAirPurifier:
		s.AirPurifier.Active = on
	case DeviceWindowServo:
		s.WindowServo.Active = on
	}
	return s
}

// AllOff is every device off with the fan at speed 0.
func AllOff() DeviceState {
	return DeviceState{}
}

// RuleSet enables or disables each automation rule.
type RuleSet struct {
	PM25     bool `json:"pm25"`
	CO2      bool `json:"co2"`
	VOC      bool `json:"voc"`
	Humidity bool `json:"humidity"`
}

// Rule names one automation rule.
type Rule string

const (
	RulePM25     Rule = "pm25"
	RuleCO2      Rule = "co2"
	RuleVOC      Rule = "voc"
	RuleHumidity Rule = "humidity"
)

func ParseRule(s string) (Rule, error) {
	switch r := Rule(s); r {
	case RulePM25, RuleCO2, RuleVOC, RuleHumidity:
		return r, nil
	}
	return "", fmt.Errorf("%w: unknown rule %q", ErrInvalidArgument, s)
}

// AllRules is every rule enabled, the state a fresh store starts in.
func AllRules() RuleSet {
	return RuleSet{PM25: true, CO2: true, VOC: true, Humidity: true}
}

func (rs RuleSet) Enabled(r Rule) bool {
	switch r {
	case RulePM25:
		return rs.PM25
	case RuleCO2:
		return rs.CO2
	case RuleVOC:
		return rs.VOC
	case RuleHumidity:
		return rs.Humidity
	}
	return false
}

func (rs RuleSet) With(r Rule, enabled bool) RuleSet {
	switch r {
	case RulePM25:
		rs.PM25 = enabled
	case RuleCO2:
		rs.CO2 = enabled
	case RuleVOC:
		rs.VOC = enabled
	case RuleHumidity:
		rs.Humidity = enabled
	}
	return rs
}
