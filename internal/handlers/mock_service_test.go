package handlers

import (
	"context"
	"time"

	"airquality_dashboard/internal/models"
	"airquality_dashboard/internal/repository"
	"airquality_dashboard/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockSensorStore struct {
	doc       repository.Document
	getErr    error
	updated   repository.Document
	updateErr error
	status    models.Status

	lastPartial repository.Document
	updateCalls int
}

func (m *mockSensorStore) Snapshot(ctx context.Context) (repository.Document, error) {
	return m.doc, m.getErr
}
func (m *mockSensorStore) Update(ctx context.Context, partial repository.Document) (repository.Document, error) {
	m.updateCalls++
	m.lastPartial = partial
	return m.updated, m.updateErr
}
func (m *mockSensorStore) Status(ctx context.Context) models.Status {
	return m.status
}

type mockControl struct {
	snap models.Snapshot
	err  error

	lastEdit     service.EditParams
	lastRoom     string
	lastDevice   service.DeviceParams
	lastSpeed    int
	lastRule     service.RuleParams
	lastScenario string
	calls        int
}

func (m *mockControl) EditReading(ctx context.Context, p service.EditParams) (models.Snapshot, error) {
	m.calls++
	m.lastEdit = p
	return m.snap, m.err
}
func (m *mockControl) SelectRoom(ctx context.Context, scope string) (models.Snapshot, error) {
	m.calls++
	m.lastRoom = scope
	return m.snap, m.err
}
func (m *mockControl) SetDevice(ctx context.Context, p service.DeviceParams) (models.Snapshot, error) {
	m.calls++
	m.lastDevice = p
	return m.snap, m.err
}
func (m *mockControl) SetFanSpeed(ctx context.Context, speed int) (models.Snapshot, error) {
	m.calls++
	m.lastSpeed = speed
	return m.snap, m.err
}
func (m *mockControl) SetRule(ctx context.Context, p service.RuleParams) (models.Snapshot, error) {
	m.calls++
	m.lastRule = p
	return m.snap, m.err
}
func (m *mockControl) ApplyScenario(ctx context.Context, name string) (models.Snapshot, error) {
	m.calls++
	m.lastScenario = name
	return m.snap, m.err
}
func (m *mockControl) RunAutomation(ctx context.Context) (models.Snapshot, error) {
	m.calls++
	return m.snap, m.err
}

type mockMonitoring struct {
	snap       models.Snapshot
	err        error
	assessment models.Assessment
	assessErr  error
	lastScope  string
}

func (m *mockMonitoring) GetSnapshot(ctx context.Context) (models.Snapshot, error) {
	return m.snap, m.err
}
func (m *mockMonitoring) Assess(ctx context.Context, scope string) (models.Assessment, error) {
	m.lastScope = scope
	return m.assessment, m.assessErr
}

type mockEventLog struct {
	resp      []models.Event
	err       error
	lastFrom  time.Time
	lastTo    time.Time
	lastType  string
	lastLimit int
	calls     int
}

func (m *mockEventLog) List(ctx context.Context, f service.LogFilter) ([]models.Event, error) {
	m.calls++
	m.lastFrom = f.From
	m.lastTo = f.To
	m.lastType = f.Type
	m.lastLimit = f.Limit
	return m.resp, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func testSnapshot() models.Snapshot {
	return models.Snapshot{
		Reading: models.Reading{PM25: 12, CO2: 450, VOC: 20, Humidity: 55, Temp: 28},
		Rooms: map[models.RoomName]models.Reading{
			"livingRoom": {PM25: 12, CO2: 450, VOC: 20, Humidity: 55, Temp: 28},
			"kitchen":    {PM25: 75, CO2: 1500, VOC: 200, Humidity: 75, Temp: 33},
		},
		CurrentRoom: models.ScopeAll,
		Devices:     models.AllOff(),
		Rules:       models.AllRules(),
		Timestamp:   time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}
}
