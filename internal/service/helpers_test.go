package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"airquality_dashboard/internal/models"
	"airquality_dashboard/internal/repository"
)

func defaultSnapshot() models.Snapshot {
	return models.Snapshot{
		Reading: models.Reading{PM25: 12, CO2: 450, VOC: 20, Humidity: 55, Temp: 28},
		Rooms: map[models.RoomName]models.Reading{
			"livingRoom": {PM25: 12, CO2: 450, VOC: 20, Humidity: 55, Temp: 28},
			"bedroom":    {PM25: 10, CO2: 400, VOC: 15, Humidity: 52, Temp: 26},
			"kitchen":    {PM25: 18, CO2: 600, VOC: 35, Humidity: 60, Temp: 29},
		},
		CurrentRoom: models.ScopeAll,
		Devices:     models.AllOff(),
		Rules:       models.AllRules(),
		Timestamp:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

type recordingPublisher struct {
	mu    sync.Mutex
	snaps []models.Snapshot
}

func (p *recordingPublisher) Publish(_ context.Context, s models.Snapshot) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.snaps = append(p.snaps, s)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.snaps)
}

type fixture struct {
	store  *repository.SnapshotMemory
	events *fakeEventRepo
	pub    *recordingPublisher
	c      *committer
}

func newFixture(t *testing.T, snap models.Snapshot) *fixture {
	t.Helper()
	store, err := repository.NewSnapshotMemory(snap)
	if err != nil {
		t.Fatalf("NewSnapshotMemory: %v", err)
	}
	f := &fixture{store: store, events: &fakeEventRepo{}, pub: &recordingPublisher{}}
	f.c = newCommitter(store, f.events, f.pub)
	return f
}

func (f *fixture) load(t *testing.T) models.Snapshot {
	t.Helper()
	snap, err := f.store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return snap
}
