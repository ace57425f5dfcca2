package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"airquality_dashboard/internal/metrics"
	"airquality_dashboard/internal/models"
	"airquality_dashboard/internal/service"

	"github.com/gin-gonic/gin"
)

func TestHTTPHandler_CORS(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := &mockSensorStore{status: models.Status{Status: "online", Timestamp: time.Now().UTC()}}
	h := NewHandler(&service.Service{SensorStore: store}, nil,
		WithAllowedOrigins([]string{"http://dashboard.local"})).HTTPHandler()

	// allowed origin gets the header back
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	req.Header.Set("Origin", "http://dashboard.local")
	h.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://dashboard.local" {
		t.Fatalf("allow-origin = %q", got)
	}

	// foreign origin gets no CORS header
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/status", nil)
	req.Header.Set("Origin", "http://evil.example")
	h.ServeHTTP(w, req)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("foreign origin allowed: %q", got)
	}

	// preflight for the update endpoint
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodOptions, "/api/update", nil)
	req.Header.Set("Origin", "http://dashboard.local")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")
	h.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("preflight status=%d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Methods"); !strings.Contains(got, http.MethodPost) {
		t.Fatalf("allow-methods = %q", got)
	}
	if store.updateCalls != 0 {
		t.Fatalf("preflight must not reach the store")
	}
}

func TestHandler_MetricsEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := metrics.New()
	store := &mockSensorStore{status: models.Status{Status: "online"}}
	r := NewHandler(&service.Service{SensorStore: store}, nil, WithMetrics(m)).InitRoutes()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/status", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("metrics status=%d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `airquality_http_requests_total{route="/api/status",status="200"} 1`) {
		t.Fatalf("request counter missing:\n%s", w.Body.String())
	}
}

func TestHandler_NoMetricsRouteWithoutMetrics(t *testing.T) {
	r := newTestRouter(&service.Service{})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("status=%d, want 404", w.Code)
	}
}
