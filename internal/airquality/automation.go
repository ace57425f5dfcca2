package airquality

import "airquality_dashboard/internal/models"

// Hysteresis thresholds. A reading strictly between the off and on
// threshold keeps the device where it was.
const (
	PM25OnAbove  = 25
	PM25OffBelow = 12

	CO2OnAbove  = 1000
	CO2OffBelow = 800

	// VOC has no off threshold: the HEPA filter stays on until someone
	// switches it off by hand.
	VOCOnAbove = 100

	// AutomationFanSpeed is the intake fan speed set when the CO2 rule fires.
	AutomationFanSpeed = 75
)

// Evaluate derives the next device state from a reading, the enabled rules
// and the previous device state.
//
// Disabled rules never touch their devices. The humidity flag has no
// thresholds attached and is accepted without effect.
func Evaluate(r models.Reading, rules models.RuleSet, prev models.DeviceState) models.DeviceState {
	next := prev

	if rules.PM25 {
		switch {
		case r.PM25 > PM25OnAbove:
			next.AirPurifier.Active = true
		case r.PM25 < PM25OffBelow:
			next.AirPurifier.Active = false
		}
	}

	if rules.CO2 {
		switch {
		case r.CO2 > CO2OnAbove:
			next.WindowServo.Active = true
			next.IntakeFan.Active = true
			next.IntakeFan.Speed = AutomationFanSpeed
		case r.CO2 < CO2OffBelow:
			// only the window closes; the fan keeps running until switched off
			next.WindowServo.Active = false
		}
	}

	if rules.VOC && r.VOC > VOCOnAbove {
		next.HepaFilter.Active = true
	}

	return next
}

// DeviceChange records one device flipping state.
type DeviceChange struct {
	Device models.Device `json:"device"`
	Active bool          `json:"active"`
}

// Changes lists the devices whose active flag differs between before and after.
func Changes(before, after models.DeviceState) []DeviceChange {
	var out []DeviceChange
	for _, d := range models.Devices {
		if before.Active(d) != after.Active(d) {
			out = append(out, DeviceChange{Device: d, Active: after.Active(d)})
		}
	}
	return out
}
