package service

import (
	"context"
	"time"

	"airquality_dashboard/internal/airquality"
	"airquality_dashboard/internal/models"
	"airquality_dashboard/internal/repository"
)

type MonitoringService struct {
	snapshots repository.SnapshotRepo
}

func NewMonitoringService(snapshots repository.SnapshotRepo) *MonitoringService {
	return &MonitoringService{snapshots: snapshots}
}

// GetSnapshot returns the latest typed snapshot.
func (s *MonitoringService) GetSnapshot(ctx context.Context) (models.Snapshot, error) {
	snap, err := s.snapshots.Load(ctx)
	if err != nil {
		return models.Snapshot{}, err
	}
	snap.Timestamp = toUTC(snap.Timestamp)
	return snap, nil
}

// Assess scores the reading of scope. An empty scope means the room the
// viewers currently display.
func (s *MonitoringService) Assess(ctx context.Context, scope string) (models.Assessment, error) {
	snap, err := s.GetSnapshot(ctx)
	if err != nil {
		return models.Assessment{}, err
	}
	sc := models.Scope(scope)
	if sc == "" {
		sc = selectedScope(snap)
	}
	r, err := snap.Aggregate().ReadingFor(sc)
	if err != nil {
		return models.Assessment{}, err
	}
	return airquality.Assess(sc, r, snap.Timestamp), nil
}

// toUTC normalizes non-zero time to UTC, preserving zero values.
func toUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}
