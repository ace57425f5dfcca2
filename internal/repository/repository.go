package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"airquality_dashboard/internal/models"
)

type SnapshotRepo interface {
	Load(ctx context.Context) (models.Snapshot, error)
	Document(ctx context.Context) (Document, error)
	Merge(ctx context.Context, partial Document) (Document, models.Snapshot, error)
}

// EventQuery filters the event log. Zero values disable a filter.
type EventQuery struct {
	From  time.Time
	To    time.Time
	Type  string
	Limit int
}

type EventRepo interface {
	Append(ctx context.Context, e models.Event) error
	List(ctx context.Context, q EventQuery) ([]models.Event, error)
}

type Repository struct {
	Snapshots SnapshotRepo
	EventRepo EventRepo
}

func NewRepository(db *sql.DB, initial models.Snapshot) (*Repository, error) {
	snapshots, err := NewSnapshotMemory(initial)
	if err != nil {
		return nil, fmt.Errorf("snapshot store: %w", err)
	}
	return &Repository{
		Snapshots: snapshots,
		EventRepo: NewEventSQLite(db),
	}, nil
}
