package service

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"sort"
	"time"

	"airquality_dashboard/internal/airquality"
	"airquality_dashboard/internal/logger"
	"airquality_dashboard/internal/models"
)

// walk bounds one field's random walk.
type walk struct {
	step     float64
	min, max float64
}

// ----------- Simulation constants -----------
var walks = map[models.Field]walk{
	models.FieldPM25:     {step: 3, min: 0, max: 300},
	models.FieldCO2:      {step: 40, min: 350, max: 5000},
	models.FieldVOC:      {step: 8, min: 0, max: 1000},
	models.FieldHumidity: {step: 2, min: 10, max: 95},
	models.FieldTemp:     {step: 0.3, min: 10, max: 40},
}

// SimulatorService drifts the sensor readings so the dashboard has
// something to show without hardware.
type SimulatorService struct {
	c   *committer
	rng *rand.Rand
	log *logger.Logger
}

// NewSimulatorService returns a simulator. A nil rng gets a time-seeded one.
func NewSimulatorService(c *committer, rng *rand.Rand, log *logger.Logger) *SimulatorService {
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>1))
	}
	if log == nil {
		log = logger.Nop()
	}
	return &SimulatorService{c: c, rng: rng, log: log}
}

// Run ticks at the given interval until ctx is canceled.
func (s *SimulatorService) Run(ctx context.Context, tick time.Duration) {
	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			// a failed step is retried on the next tick
			if err := s.step(ctx); err != nil && ctx.Err() == nil {
				s.log.Warnw("simulator_step_failed", "err", err)
			}
		}
	}
}

// step moves every room one random step, recomputes the global reading and
// runs automation.
func (s *SimulatorService) step(ctx context.Context) error {
	snap, err := s.c.snapshots.Load(ctx)
	if err != nil {
		return err
	}

	agg := snap.Aggregate()
	scopes := make([]models.Scope, 0, len(agg.Rooms))
	for room := range agg.Rooms {
		scopes = append(scopes, models.Scope(room))
	}
	sort.Slice(scopes, func(i, j int) bool { return scopes[i] < scopes[j] })
	if len(scopes) == 0 {
		scopes = append(scopes, models.ScopeAll)
	}

	for _, scope := range scopes {
		current, err := agg.ReadingFor(scope)
		if err != nil {
			return err
		}
		for _, f := range models.Fields {
			agg, err = airquality.ApplyEdit(agg, scope, f, s.drift(f, current.Value(f)))
			if err != nil {
				return err
			}
		}
	}

	devices := airquality.Evaluate(agg.Global, snap.Rules, snap.Devices)
	if _, err := s.c.commit(ctx, readingValues(agg.Global, map[string]any{
		"rooms":   agg.Rooms,
		"devices": devices,
	})); err != nil {
		return err
	}

	if err := s.c.record(ctx, models.EventSimulation,
		fmt.Sprintf("simulated drift across %d scope(s)", len(scopes)),
		map[string]any{"reading": agg.Global}); err != nil {
		return err
	}
	return s.c.recordChanges(ctx, airquality.Changes(snap.Devices, devices))
}

// drift returns v moved by at most one step, clamped to the field's range.
func (s *SimulatorService) drift(f models.Field, v float64) float64 {
	w := walks[f]
	next := v + (s.rng.Float64()*2-1)*w.step
	next = math.Min(math.Max(next, w.min), w.max)
	if f.Integral() {
		return math.Round(next)
	}
	return math.Round(next*10) / 10
}
