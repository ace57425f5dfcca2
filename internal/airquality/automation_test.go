package airquality

import (
	"testing"

	"airquality_dashboard/internal/models"
)

func TestEvaluate_CO2RiseOpensWindowAndStartsFan(t *testing.T) {
	rules := models.AllRules()
	prev := Evaluate(models.Reading{CO2: 900}, rules, models.AllOff())
	if prev.WindowServo.Active || prev.IntakeFan.Active {
		t.Fatalf("900 ppm is in the dead band, nothing should switch: %+v", prev)
	}

	got := Evaluate(models.Reading{CO2: 1100}, rules, prev)
	if !got.WindowServo.Active {
		t.Fatalf("windowServo should be active")
	}
	if !got.IntakeFan.Active || got.IntakeFan.Speed != AutomationFanSpeed {
		t.Fatalf("intakeFan = %+v, want active at %d", got.IntakeFan, AutomationFanSpeed)
	}
}

func TestEvaluate_CO2DropClosesWindowOnly(t *testing.T) {
	prev := models.DeviceState{
		IntakeFan:   models.FanState{Active: true, Speed: 75},
		WindowServo: models.SwitchState{Active: true},
	}
	got := Evaluate(models.Reading{CO2: 600}, models.AllRules(), prev)
	if got.WindowServo.Active {
		t.Fatalf("windowServo should close below %d ppm", CO2OffBelow)
	}
	if !got.IntakeFan.Active || got.IntakeFan.Speed != 75 {
		t.Fatalf("intake fan must be left alone, got %+v", got.IntakeFan)
	}
}

func TestEvaluate_PM25Hysteresis(t *testing.T) {
	rules := models.AllRules()
	on := models.DeviceState{AirPurifier: models.SwitchState{Active: true}}
	off := models.AllOff()

	cases := []struct {
		name string
		pm25 int
		prev models.DeviceState
		want bool
	}{
		{"dead band keeps on", 20, on, true},
		{"dead band keeps off", 20, off, false},
		{"on threshold is exclusive", 25, off, false},
		{"off threshold is exclusive", 12, on, true},
		{"above on threshold", 26, off, true},
		{"below off threshold", 11, on, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Evaluate(models.Reading{PM25: tc.pm25, CO2: 900}, rules, tc.prev)
			if got.AirPurifier.Active != tc.want {
				t.Fatalf("airPurifier.active = %v, want %v", got.AirPurifier.Active, tc.want)
			}
		})
	}
}

func TestEvaluate_VOCLatches(t *testing.T) {
	rules := models.AllRules()
	got := Evaluate(models.Reading{VOC: 150, CO2: 900}, rules, models.AllOff())
	if !got.HepaFilter.Active {
		t.Fatalf("hepaFilter should switch on above %d ppb", VOCOnAbove)
	}
	got = Evaluate(models.Reading{VOC: 0, CO2: 900}, rules, got)
	if !got.HepaFilter.Active {
		t.Fatalf("hepaFilter has no off threshold and must stay on")
	}
}

func TestEvaluate_DisabledRuleNeverTouchesItsDevices(t *testing.T) {
	readings := []models.Reading{
		{PM25: 0, CO2: 0, VOC: 0, Humidity: 0},
		{PM25: 20, CO2: 900, VOC: 50, Humidity: 50},
		{PM25: 500, CO2: 5000, VOC: 900, Humidity: 99},
	}
	prevs := []models.DeviceState{
		models.AllOff(),
		{
			IntakeFan:   models.FanState{Active: true, Speed: 30},
			HepaFilter:  models.SwitchState{Active: true},
			AirPurifier: models.SwitchState{Active: true},
			WindowServo: models.SwitchState{Active: true},
		},
	}

	for _, r := range readings {
		for _, prev := range prevs {
			got := Evaluate(r, models.RuleSet{CO2: true, VOC: true}, prev)
			if got.AirPurifier != prev.AirPurifier {
				t.Fatalf("pm25 disabled but airPurifier changed: %+v -> %+v (reading %+v)", prev, got, r)
			}

			got = Evaluate(r, models.RuleSet{PM25: true, VOC: true}, prev)
			if got.WindowServo != prev.WindowServo || got.IntakeFan != prev.IntakeFan {
				t.Fatalf("co2 disabled but window/fan changed: %+v -> %+v (reading %+v)", prev, got, r)
			}

			got = Evaluate(r, models.RuleSet{PM25: true, CO2: true}, prev)
			if got.HepaFilter != prev.HepaFilter {
				t.Fatalf("voc disabled but hepaFilter changed: %+v -> %+v (reading %+v)", prev, got, r)
			}

			if got := Evaluate(r, models.RuleSet{}, prev); got != prev {
				t.Fatalf("all rules disabled must be a no-op: %+v -> %+v", prev, got)
			}
		}
	}
}

func TestEvaluate_HumidityRuleIsNoOp(t *testing.T) {
	prev := models.AllOff()
	got := Evaluate(models.Reading{Humidity: 95, CO2: 900, PM25: 20}, models.RuleSet{Humidity: true}, prev)
	if got != prev {
		t.Fatalf("humidity rule changed devices: %+v", got)
	}
}

func TestChanges(t *testing.T) {
	before := models.AllOff()
	after := before.WithActive(models.DeviceWindowServo, true).WithActive(models.DeviceIntakeFan, true)

	got := Changes(before, after)
	if len(got) != 2 {
		t.Fatalf("want 2 changes, got %+v", got)
	}
	if got[0].Device != models.DeviceIntakeFan || !got[0].Active {
		t.Fatalf("first change = %+v", got[0])
	}
	if got[1].Device != models.DeviceWindowServo || !got[1].Active {
		t.Fatalf("second change = %+v", got[1])
	}
	if Changes(after, after) != nil {
		t.Fatalf("identical states must report no changes")
	}
}
