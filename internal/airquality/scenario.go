package airquality

import (
	"fmt"
	"sort"

	"airquality_dashboard/internal/models"
)

// ScenarioReset restores the default readings and switches every device off.
const ScenarioReset = "reset"

var scenarios = map[string]models.Reading{
	"good":        {PM25: 8, CO2: 400, VOC: 15, Humidity: 50, Temp: 25},
	"moderate":    {PM25: 35, CO2: 850, VOC: 80, Humidity: 65, Temp: 30},
	"poor":        {PM25: 75, CO2: 1500, VOC: 200, Humidity: 75, Temp: 33},
	ScenarioReset: {PM25: 12, CO2: 450, VOC: 20, Humidity: 55, Temp: 28},
}

// Scenario returns the preset reading for name.
func Scenario(name string) (models.Reading, error) {
	r, ok := scenarios[name]
	if !ok {
		return models.Reading{}, fmt.Errorf("%w: unknown scenario %q", models.ErrInvalidArgument, name)
	}
	return r, nil
}

// ScenarioNames lists the presets in a stable order.
func ScenarioNames() []string {
	names := make([]string, 0, len(scenarios))
	for name := range scenarios {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ApplyReading writes every field of r to the scope through ApplyEdit, so a
// room-scoped preset still recomputes the global averages.
func ApplyReading(state models.AggregateState, scope models.Scope, r models.Reading) (models.AggregateState, error) {
	next := state
	var err error
	for _, f := range models.Fields {
		next, err = ApplyEdit(next, scope, f, r.Value(f))
		if err != nil {
			return state, err
		}
	}
	return next, nil
}
