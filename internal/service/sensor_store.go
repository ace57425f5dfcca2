package service

import (
	"context"
	"sort"
	"time"

	"airquality_dashboard/internal/models"
	"airquality_dashboard/internal/repository"
)

const statusOnline = "online"

type SensorStoreService struct {
	c   *committer
	now func() time.Time
}

func NewSensorStoreService(c *committer) *SensorStoreService {
	return &SensorStoreService{c: c, now: time.Now}
}

// Snapshot returns the full stored document, unknown keys included.
func (s *SensorStoreService) Snapshot(ctx context.Context) (repository.Document, error) {
	return s.c.snapshots.Document(ctx)
}

// Update shallow-merges partial into the store. Only the top-level keys in
// partial and the timestamp change.
func (s *SensorStoreService) Update(ctx context.Context, partial repository.Document) (repository.Document, error) {
	doc, _, err := s.c.merge(ctx, partial)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(partial))
	for k := range partial {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if err := s.c.record(ctx, models.EventUpdate, "snapshot updated", map[string]any{"keys": keys}); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *SensorStoreService) Status(context.Context) models.Status {
	return models.Status{Status: statusOnline, Timestamp: s.now().UTC()}
}
