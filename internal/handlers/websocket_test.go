package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"airquality_dashboard/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// --- parseInterval unit tests ---

func TestParseInterval(t *testing.T) {
	h := NewHandler(&service.Service{}, nil)

	cases := []struct {
		name string
		u    string
		want time.Duration
	}{
		{"default_when_missing", "/ws", 2 * time.Second},
		{"interval_string_valid", "/ws?interval=200ms", 200 * time.Millisecond},
		{"interval_ms_valid", "/ws?interval_ms=150", 150 * time.Millisecond},
		{"interval_too_large", "/ws?interval=20s", 2 * time.Second},
		{"interval_ms_too_large", "/ws?interval_ms=20000", 2 * time.Second},
		{"interval_invalid_string", "/ws?interval=bogus", 2 * time.Second},
		{"interval_ms_invalid", "/ws?interval_ms=NaN", 2 * time.Second},
		{"both_present_interval_wins", "/ws?interval=5s&interval_ms=150", 5 * time.Second},
		{"both_present_invalid_interval_ms_used", "/ws?interval=bogus&interval_ms=250", 250 * time.Millisecond},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, tc.u, nil)
			c, _ := gin.CreateTestContext(w)
			c.Request = req
			got := h.parseInterval(c)
			if got != tc.want {
				t.Fatalf("got %v, want %v for %s", got, tc.want, tc.u)
			}
		})
	}
}

// --- websocket integration tests ---

type envelope struct {
	Type  string          `json:"type"`
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
}

func dialStream(t *testing.T, s *service.Service, query url.Values) *websocket.Conn {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(s, nil)
	r.GET("/ws", h.wsConnect)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	u, _ := url.Parse(srv.URL)
	u.Scheme = "ws"
	u.Path = "/ws"
	u.RawQuery = query.Encode()

	dialer := websocket.Dialer{HandshakeTimeout: 2 * time.Second}
	conn, _, err := dialer.Dial(u.String(), nil)
	if err != nil {
		t.Fatalf("dial error: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readEnvelope(t *testing.T, conn *websocket.Conn) envelope {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(1 * time.Second))
	var env envelope
	if err := conn.ReadJSON(&env); err != nil {
		t.Fatalf("read: %v", err)
	}
	return env
}

func TestWebSocket_SnapshotStream_InitialAndPeriodic(t *testing.T) {
	mon := &mockMonitoring{snap: testSnapshot()}
	conn := dialStream(t, &service.Service{Monitoring: mon}, url.Values{"interval_ms": {"20"}})

	env := readEnvelope(t, conn)
	if env.Type != "snapshot" || len(env.Data) == 0 {
		t.Fatalf("bad envelope: %+v", env)
	}
	var view SnapshotView
	if err := json.Unmarshal(env.Data, &view); err != nil {
		t.Fatalf("unmarshal view: %v", err)
	}
	if view.Snapshot.CO2 != 450 || len(view.Snapshot.Rooms) != 2 {
		t.Fatalf("unexpected snapshot: %+v", view.Snapshot)
	}
	if view.Assessment.Scope != "all" || view.Assessment.Score != 100 || view.Assessment.Label != "EXCELLENT" {
		t.Fatalf("unexpected assessment: %+v", view.Assessment)
	}

	if env := readEnvelope(t, conn); env.Type != "snapshot" {
		t.Fatalf("expected type=snapshot, got %+v", env)
	}
}

func TestWebSocket_ScopeQueryAssessesRoom(t *testing.T) {
	mon := &mockMonitoring{snap: testSnapshot()}
	conn := dialStream(t, &service.Service{Monitoring: mon}, url.Values{"scope": {"kitchen"}})

	var view SnapshotView
	if err := json.Unmarshal(readEnvelope(t, conn).Data, &view); err != nil {
		t.Fatalf("unmarshal view: %v", err)
	}
	if view.Assessment.Scope != "kitchen" || view.Assessment.Score != 35 || view.Assessment.Label != "POOR" {
		t.Fatalf("unexpected assessment: %+v", view.Assessment)
	}
}

func TestWebSocket_LoadErrorSendsErrorFrameAndStaysOpen(t *testing.T) {
	mon := &mockMonitoring{err: errors.New("boom")}
	conn := dialStream(t, &service.Service{Monitoring: mon}, url.Values{"interval_ms": {"20"}})

	env := readEnvelope(t, conn)
	if env.Type != "error" || env.Error != "boom" {
		t.Fatalf("want error frame, got %+v", env)
	}
	if env := readEnvelope(t, conn); env.Type != "error" {
		t.Fatalf("stream should keep ticking, got %+v", env)
	}
}

func TestWebSocket_UnknownScopeSendsErrorFrame(t *testing.T) {
	mon := &mockMonitoring{snap: testSnapshot()}
	conn := dialStream(t, &service.Service{Monitoring: mon}, url.Values{"scope": {"garage"}})

	if env := readEnvelope(t, conn); env.Type != "error" || env.Error == "" {
		t.Fatalf("want error frame, got %+v", env)
	}
}

func TestWebSocket_RejectsForeignOrigin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(&service.Service{Monitoring: &mockMonitoring{snap: testSnapshot()}}, nil,
		WithAllowedOrigins([]string{"http://dashboard.local"}))
	r.GET("/ws", h.wsConnect)
	srv := httptest.NewServer(r)
	defer srv.Close()

	u, _ := url.Parse(srv.URL)
	u.Scheme = "ws"
	u.Path = "/ws"
	header := http.Header{"Origin": {"http://evil.example"}}
	_, resp, err := websocket.DefaultDialer.Dial(u.String(), header)
	if err == nil {
		t.Fatalf("expected handshake failure")
	}
	if resp == nil || resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %+v", resp)
	}
}
