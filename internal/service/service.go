package service

import (
	"context"
	"time"

	"airquality_dashboard/internal/logger"
	"airquality_dashboard/internal/models"
	"airquality_dashboard/internal/publish"
	"airquality_dashboard/internal/repository"
)

// SensorStore is the raw snapshot API: read, shallow merge, health.
type SensorStore interface {
	Snapshot(ctx context.Context) (repository.Document, error)
	Update(ctx context.Context, partial repository.Document) (repository.Document, error)
	Status(ctx context.Context) models.Status
}

// Control exposes the control panel operations. Each one is a single
// read-modify-write on the store followed by an event.
type Control interface {
	EditReading(ctx context.Context, p EditParams) (models.Snapshot, error)
	SelectRoom(ctx context.Context, scope string) (models.Snapshot, error)
	SetDevice(ctx context.Context, p DeviceParams) (models.Snapshot, error)
	SetFanSpeed(ctx context.Context, speed int) (models.Snapshot, error)
	SetRule(ctx context.Context, p RuleParams) (models.Snapshot, error)
	ApplyScenario(ctx context.Context, name string) (models.Snapshot, error)
	RunAutomation(ctx context.Context) (models.Snapshot, error)
}

// Monitoring exposes read-only views used by the viewer.
type Monitoring interface {
	GetSnapshot(ctx context.Context) (models.Snapshot, error)
	Assess(ctx context.Context, scope string) (models.Assessment, error)
}

// EventLog exposes the append-only log with filtering access.
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]models.Event, error)
}

// Simulator random-walks the readings until ctx is canceled.
type Simulator interface {
	Run(ctx context.Context, tick time.Duration)
}

type Service struct {
	SensorStore
	Control
	Monitoring
	EventLog
	Simulator
}

// NewService wires the repositories into concrete services. Every committed
// snapshot is handed to pub; a nil pub disables fan-out.
func NewService(repos *repository.Repository, pub publish.Publisher, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	c := newCommitter(repos.Snapshots, repos.EventRepo, pub)
	return &Service{
		SensorStore: NewSensorStoreService(c),
		Control:     NewControlService(c),
		Monitoring:  NewMonitoringService(repos.Snapshots),
		EventLog:    NewEventLogService(repos.EventRepo),
		Simulator:   NewSimulatorService(c, nil, log.Named("simulator")),
	}
}
