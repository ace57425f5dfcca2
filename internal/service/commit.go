package service

import (
	"context"
	"fmt"

	"airquality_dashboard/internal/airquality"
	"airquality_dashboard/internal/models"
	"airquality_dashboard/internal/publish"
	"airquality_dashboard/internal/repository"
)

// committer is shared by every writing service: merge, fan out, log.
type committer struct {
	snapshots repository.SnapshotRepo
	events    repository.EventRepo
	pub       publish.Publisher
}

func newCommitter(snapshots repository.SnapshotRepo, events repository.EventRepo, pub publish.Publisher) *committer {
	if pub == nil {
		pub = publish.Nop{}
	}
	return &committer{snapshots: snapshots, events: events, pub: pub}
}

func (c *committer) merge(ctx context.Context, partial repository.Document) (repository.Document, models.Snapshot, error) {
	doc, snap, err := c.snapshots.Merge(ctx, partial)
	if err != nil {
		return nil, models.Snapshot{}, err
	}
	// fan-out is best effort; the store is the source of truth
	_ = c.pub.Publish(ctx, snap)
	return doc, snap, nil
}

func (c *committer) commit(ctx context.Context, values map[string]any) (models.Snapshot, error) {
	partial, err := repository.Partial(values)
	if err != nil {
		return models.Snapshot{}, err
	}
	_, snap, err := c.merge(ctx, partial)
	return snap, err
}

func (c *committer) record(ctx context.Context, typ, description string, meta any) error {
	return c.events.Append(ctx, models.Event{
		Type:        typ,
		Description: description,
		Metadata:    meta,
	})
}

// recordChanges appends one AUTOMATION event per device the evaluator flipped.
func (c *committer) recordChanges(ctx context.Context, changes []airquality.DeviceChange) error {
	for _, ch := range changes {
		state := "off"
		if ch.Active {
			state = "on"
		}
		err := c.record(ctx, models.EventAutomation,
			fmt.Sprintf("%s switched %s", ch.Device, state),
			map[string]any{"device": ch.Device, "active": ch.Active})
		if err != nil {
			return err
		}
	}
	return nil
}

// readingValues spreads a global reading into top-level snapshot keys.
func readingValues(r models.Reading, into map[string]any) map[string]any {
	for _, f := range models.Fields {
		into[string(f)] = r.Value(f)
	}
	return into
}
