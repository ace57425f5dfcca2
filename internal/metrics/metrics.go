package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"airquality_dashboard/internal/airquality"
	"airquality_dashboard/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "airquality"

// Metrics owns a private registry so that several instances can coexist in
// one process. All methods are safe on a nil receiver.
type Metrics struct {
	registry *prometheus.Registry

	httpRequestsTotal *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
	snapshotWrites    prometheus.Counter
	score             prometheus.Gauge
	reading           *prometheus.GaugeVec
	roomReading       *prometheus.GaugeVec
	deviceActive      *prometheus.GaugeVec
	wsClients         prometheus.Gauge
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total count of HTTP requests processed by route and status.",
		}, []string{"route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Histogram of HTTP request durations by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		snapshotWrites: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "snapshot_writes_total",
			Help:      "Snapshots committed to the sensor store.",
		}),
		score: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "score",
			Help:      "Air-quality score of the global reading (0-100).",
		}),
		reading: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "reading",
			Help:      "Current global sensor reading by field.",
		}, []string{"field"}),
		roomReading: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "room_reading",
			Help:      "Current per-room sensor reading by field.",
		}, []string{"room", "field"}),
		deviceActive: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "device_active",
			Help:      "Whether a ventilation device is on (1) or off (0).",
		}, []string{"device"}),
		wsClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "ws_clients",
			Help:      "Open WebSocket streams.",
		}),
	}

	m.registry.MustRegister(
		m.httpRequestsTotal,
		m.httpDuration,
		m.snapshotWrites,
		m.score,
		m.reading,
		m.roomReading,
		m.deviceActive,
		m.wsClients,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Middleware records request count and latency per matched route.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		if m == nil {
			return
		}
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.httpRequestsTotal.WithLabelValues(route, strconv.Itoa(c.Writer.Status())).Inc()
		m.httpDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Publish mirrors a committed snapshot into the gauges.
func (m *Metrics) Publish(_ context.Context, s models.Snapshot) error {
	if m == nil {
		return nil
	}
	m.snapshotWrites.Inc()
	m.score.Set(float64(airquality.Score(s.Reading)))
	for _, f := range models.Fields {
		m.reading.WithLabelValues(string(f)).Set(s.Reading.Value(f))
	}
	m.roomReading.Reset()
	for room, r := range s.Rooms {
		for _, f := range models.Fields {
			m.roomReading.WithLabelValues(string(room), string(f)).Set(r.Value(f))
		}
	}
	for _, d := range models.Devices {
		v := 0.0
		if s.Devices.Active(d) {
			v = 1
		}
		m.deviceActive.WithLabelValues(string(d)).Set(v)
	}
	return nil
}

func (m *Metrics) Close() error { return nil }

func (m *Metrics) WSConnected() {
	if m == nil {
		return
	}
	m.wsClients.Inc()
}

func (m *Metrics) WSDisconnected() {
	if m == nil {
		return
	}
	m.wsClients.Dec()
}
