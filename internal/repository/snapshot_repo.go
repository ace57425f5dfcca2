package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"airquality_dashboard/internal/models"
)

// SnapshotMemory keeps the current snapshot in process memory. Every write
// publishes a new immutable version, so readers never see a half-applied
// merge. Concurrent merges are last-writer-wins per key: a merge never
// reverts keys it did not carry.
type SnapshotMemory struct {
	current atomic.Pointer[snapshotVersion]
	now     func() time.Time
}

type snapshotVersion struct {
	doc  Document
	snap models.Snapshot
}

func NewSnapshotMemory(initial models.Snapshot) (*SnapshotMemory, error) {
	doc, err := NewDocument(initial)
	if err != nil {
		return nil, fmt.Errorf("encode initial snapshot: %w", err)
	}
	snap, err := doc.Decode()
	if err != nil {
		return nil, fmt.Errorf("decode initial snapshot: %w", err)
	}
	r := &SnapshotMemory{now: time.Now}
	r.current.Store(&snapshotVersion{doc: doc, snap: snap})
	return r, nil
}

// Load returns the typed view of the current snapshot.
func (r *SnapshotMemory) Load(_ context.Context) (models.Snapshot, error) {
	return copySnapshot(r.current.Load().snap), nil
}

// Document returns the raw current snapshot, unknown keys included.
func (r *SnapshotMemory) Document(_ context.Context) (Document, error) {
	return r.current.Load().doc.Clone(), nil
}

// Merge overlays the top-level keys of partial onto the current snapshot and
// sets a fresh timestamp. Nested objects are replaced, not merged. A result
// whose known keys no longer decode is rejected and nothing is stored.
func (r *SnapshotMemory) Merge(ctx context.Context, partial Document) (Document, models.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, models.Snapshot{}, err
	}

	for {
		cur := r.current.Load()
		next := make(Document, len(cur.doc)+len(partial))
		for k, v := range cur.doc {
			next[k] = v
		}
		for k, v := range partial {
			next[k] = v
		}

		ts, err := json.Marshal(r.now().UTC())
		if err != nil {
			return nil, models.Snapshot{}, err
		}
		next[timestampKey] = ts

		snap, err := next.Decode()
		if err != nil {
			return nil, models.Snapshot{}, fmt.Errorf("%w: %v", models.ErrInvalidArgument, err)
		}

		// another merge won the race; rebuild on top of its version
		if r.current.CompareAndSwap(cur, &snapshotVersion{doc: next, snap: snap}) {
			return next.Clone(), copySnapshot(snap), nil
		}
		if err := ctx.Err(); err != nil {
			return nil, models.Snapshot{}, err
		}
	}
}

func copySnapshot(s models.Snapshot) models.Snapshot {
	if s.Rooms != nil {
		rooms := make(map[models.RoomName]models.Reading, len(s.Rooms))
		for k, v := range s.Rooms {
			rooms[k] = v
		}
		s.Rooms = rooms
	}
	return s
}
