// Package airquality holds the pure dashboard logic: how edits propagate
// between the global reading and the rooms, which devices the automation
// rules switch, and how a reading is scored.
package airquality

import (
	"fmt"
	"math"

	"airquality_dashboard/internal/models"
)

// ApplyEdit sets one field for the given scope and returns the new state.
//
// Editing ScopeAll writes the value to the global reading and to every room.
// Editing a room writes the room and recomputes the global field as the mean
// over all rooms. The input state is never modified.
func ApplyEdit(state models.AggregateState, scope models.Scope, field models.Field, value float64) (models.AggregateState, error) {
	if !field.Valid() {
		return state, fmt.Errorf("%w: unknown field %q", models.ErrInvalidArgument, string(field))
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return state, fmt.Errorf("%w: %s must be a finite number", models.ErrInvalidArgument, field)
	}
	if field.Integral() && (value < math.MinInt32 || value > math.MaxInt32) {
		return state, fmt.Errorf("%w: %s out of range: %v", models.ErrInvalidArgument, field, value)
	}
	if err := state.ValidateScope(scope); err != nil {
		return state, err
	}

	next := state.Clone()
	room, ok := scope.Room()
	if !ok {
		next.Global = next.Global.With(field, value)
		for name, r := range next.Rooms {
			next.Rooms[name] = r.With(field, value)
		}
		return next, nil
	}

	next.Rooms[room] = next.Rooms[room].With(field, value)
	next.Global = next.Global.With(field, RoomMean(next.Rooms, field))
	return next, nil
}

// RoomMean is the arithmetic mean of field over all rooms. Rounding is left
// to Reading.With so integer fields and temp follow their own rule.
func RoomMean(rooms map[models.RoomName]models.Reading, field models.Field) float64 {
	if len(rooms) == 0 {
		return 0
	}
	var sum float64
	for _, r := range rooms {
		sum += r.Value(field)
	}
	return sum / float64(len(rooms))
}
