package service

import (
	"context"
	"fmt"

	"airquality_dashboard/internal/airquality"
	"airquality_dashboard/internal/models"
)

const (
	MaxFanSpeed     = 100
	DefaultFanSpeed = 50
)

type ControlService struct {
	c *committer
}

func NewControlService(c *committer) *ControlService {
	return &ControlService{c: c}
}

// selectedScope falls back to ScopeAll for snapshots written without a
// currentRoom.
func selectedScope(snap models.Snapshot) models.Scope {
	if snap.CurrentRoom == "" {
		return models.ScopeAll
	}
	return snap.CurrentRoom
}

// EditReading applies one edit through the aggregation model and re-runs
// automation on the resulting global reading.
func (s *ControlService) EditReading(ctx context.Context, p EditParams) (models.Snapshot, error) {
	field, err := models.ParseField(p.Field)
	if err != nil {
		return models.Snapshot{}, err
	}

	snap, err := s.c.snapshots.Load(ctx)
	if err != nil {
		return models.Snapshot{}, err
	}
	scope := models.Scope(p.Scope)
	if scope == "" {
		scope = selectedScope(snap)
	}

	agg, err := airquality.ApplyEdit(snap.Aggregate(), scope, field, p.Value)
	if err != nil {
		return models.Snapshot{}, err
	}
	devices := airquality.Evaluate(agg.Global, snap.Rules, snap.Devices)

	next, err := s.c.commit(ctx, map[string]any{
		string(field): agg.Global.Value(field),
		"rooms":       agg.Rooms,
		"devices":     devices,
	})
	if err != nil {
		return models.Snapshot{}, err
	}

	if err := s.c.record(ctx, models.EventEdit,
		fmt.Sprintf("%s set to %v in %s", field, p.Value, scope),
		map[string]any{"scope": scope, "field": field, "value": p.Value},
	); err != nil {
		return models.Snapshot{}, err
	}
	if err := s.c.recordChanges(ctx, airquality.Changes(snap.Devices, devices)); err != nil {
		return models.Snapshot{}, err
	}
	return next, nil
}

// SelectRoom changes the scope the viewers display.
func (s *ControlService) SelectRoom(ctx context.Context, scope string) (models.Snapshot, error) {
	snap, err := s.c.snapshots.Load(ctx)
	if err != nil {
		return models.Snapshot{}, err
	}
	sc := models.Scope(scope)
	if err := snap.Aggregate().ValidateScope(sc); err != nil {
		return models.Snapshot{}, err
	}

	next, err := s.c.commit(ctx, map[string]any{"currentRoom": sc})
	if err != nil {
		return models.Snapshot{}, err
	}
	if err := s.c.record(ctx, models.EventRoom, "viewing "+scope,
		map[string]any{"from": snap.CurrentRoom, "to": sc}); err != nil {
		return models.Snapshot{}, err
	}
	return next, nil
}

// SetDevice is a manual override. It stands until the next automation run.
func (s *ControlService) SetDevice(ctx context.Context, p DeviceParams) (models.Snapshot, error) {
	device, err := models.ParseDevice(p.Device)
	if err != nil {
		return models.Snapshot{}, err
	}
	if p.Speed != nil {
		if err := validateFanSpeed(*p.Speed); err != nil {
			return models.Snapshot{}, err
		}
	}

	snap, err := s.c.snapshots.Load(ctx)
	if err != nil {
		return models.Snapshot{}, err
	}

	devices := snap.Devices.WithActive(device, p.Active)
	if device == models.DeviceIntakeFan {
		switch {
		case !p.Active:
			devices.IntakeFan.Speed = 0
		case p.Speed != nil && *p.Speed > 0:
			devices.IntakeFan.Speed = *p.Speed
		case devices.IntakeFan.Speed == 0:
			devices.IntakeFan.Speed = DefaultFanSpeed
		}
	}

	next, err := s.c.commit(ctx, map[string]any{"devices": devices})
	if err != nil {
		return models.Snapshot{}, err
	}

	state := "off"
	if p.Active {
		state = "on"
	}
	meta := map[string]any{"device": device, "active": p.Active}
	if device == models.DeviceIntakeFan {
		meta["speed"] = devices.IntakeFan.Speed
	}
	if err := s.c.record(ctx, models.EventDevice, fmt.Sprintf("%s turned %s", device, state), meta); err != nil {
		return models.Snapshot{}, err
	}
	return next, nil
}

// SetFanSpeed changes the intake fan speed without switching it.
func (s *ControlService) SetFanSpeed(ctx context.Context, speed int) (models.Snapshot, error) {
	if err := validateFanSpeed(speed); err != nil {
		return models.Snapshot{}, err
	}
	snap, err := s.c.snapshots.Load(ctx)
	if err != nil {
		return models.Snapshot{}, err
	}

	devices := snap.Devices
	devices.IntakeFan.Speed = speed

	next, err := s.c.commit(ctx, map[string]any{"devices": devices})
	if err != nil {
		return models.Snapshot{}, err
	}
	if err := s.c.record(ctx, models.EventFanSpeed, fmt.Sprintf("intake fan speed set to %d%%", speed),
		map[string]any{"from": snap.Devices.IntakeFan.Speed, "to": speed}); err != nil {
		return models.Snapshot{}, err
	}
	return next, nil
}

func validateFanSpeed(speed int) error {
	if speed < 0 || speed > MaxFanSpeed {
		return fmt.Errorf("%w: fan speed %d outside 0-%d", models.ErrInvalidArgument, speed, MaxFanSpeed)
	}
	return nil
}

// SetRule toggles one rule and re-evaluates the devices under the new set.
func (s *ControlService) SetRule(ctx context.Context, p RuleParams) (models.Snapshot, error) {
	rule, err := models.ParseRule(p.Rule)
	if err != nil {
		return models.Snapshot{}, err
	}
	snap, err := s.c.snapshots.Load(ctx)
	if err != nil {
		return models.Snapshot{}, err
	}

	rules := snap.Rules.With(rule, p.Enabled)
	devices := airquality.Evaluate(snap.Reading, rules, snap.Devices)

	next, err := s.c.commit(ctx, map[string]any{"rules": rules, "devices": devices})
	if err != nil {
		return models.Snapshot{}, err
	}

	state := "disabled"
	if p.Enabled {
		state = "enabled"
	}
	if err := s.c.record(ctx, models.EventRule, fmt.Sprintf("%s rule %s", rule, state),
		map[string]any{"rule": rule, "enabled": p.Enabled}); err != nil {
		return models.Snapshot{}, err
	}
	if err := s.c.recordChanges(ctx, airquality.Changes(snap.Devices, devices)); err != nil {
		return models.Snapshot{}, err
	}
	return next, nil
}

// ApplyScenario writes a preset to the selected scope. The reset preset also
// switches every device off before automation runs.
func (s *ControlService) ApplyScenario(ctx context.Context, name string) (models.Snapshot, error) {
	preset, err := airquality.Scenario(name)
	if err != nil {
		return models.Snapshot{}, err
	}
	snap, err := s.c.snapshots.Load(ctx)
	if err != nil {
		return models.Snapshot{}, err
	}

	scope := selectedScope(snap)
	agg, err := airquality.ApplyReading(snap.Aggregate(), scope, preset)
	if err != nil {
		return models.Snapshot{}, err
	}

	prev := snap.Devices
	if name == airquality.ScenarioReset {
		prev = models.AllOff()
	}
	devices := airquality.Evaluate(agg.Global, snap.Rules, prev)

	values := readingValues(agg.Global, map[string]any{
		"rooms":   agg.Rooms,
		"devices": devices,
	})
	next, err := s.c.commit(ctx, values)
	if err != nil {
		return models.Snapshot{}, err
	}

	if err := s.c.record(ctx, models.EventScenario, fmt.Sprintf("%s scenario applied to %s", name, scope),
		map[string]any{"scenario": name, "scope": scope, "reading": preset}); err != nil {
		return models.Snapshot{}, err
	}
	if err := s.c.recordChanges(ctx, airquality.Changes(snap.Devices, devices)); err != nil {
		return models.Snapshot{}, err
	}
	return next, nil
}

// RunAutomation re-evaluates the current global reading. Nothing is written
// when no device changes.
func (s *ControlService) RunAutomation(ctx context.Context) (models.Snapshot, error) {
	snap, err := s.c.snapshots.Load(ctx)
	if err != nil {
		return models.Snapshot{}, err
	}
	devices := airquality.Evaluate(snap.Reading, snap.Rules, snap.Devices)
	changes := airquality.Changes(snap.Devices, devices)
	if len(changes) == 0 {
		return snap, nil
	}

	next, err := s.c.commit(ctx, map[string]any{"devices": devices})
	if err != nil {
		return models.Snapshot{}, err
	}
	if err := s.c.recordChanges(ctx, changes); err != nil {
		return models.Snapshot{}, err
	}
	return next, nil
}
