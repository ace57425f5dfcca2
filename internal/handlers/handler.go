package handlers

import (
	"errors"
	"net/http"

	"airquality_dashboard/internal/logger"
	"airquality_dashboard/internal/metrics"
	"airquality_dashboard/internal/models"
	"airquality_dashboard/internal/service"

	"github.com/gin-gonic/gin"
	gorillahandlers "github.com/gorilla/handlers"
	"github.com/gorilla/websocket"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
	metrics  *metrics.Metrics
	origins  []string
	upgrader websocket.Upgrader
}

type Option func(*Handler)

// WithMetrics enables request metrics and the /metrics endpoint.
func WithMetrics(m *metrics.Metrics) Option {
	return func(h *Handler) { h.metrics = m }
}

// WithAllowedOrigins restricts cross-origin API calls and WebSocket
// upgrades. "*" allows every origin.
func WithAllowedOrigins(origins []string) Option {
	return func(h *Handler) { h.origins = origins }
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger, opts ...Option) *Handler {
	h := &Handler{services: services, log: log, origins: []string{"*"}}
	for _, opt := range opts {
		opt(h)
	}
	h.upgrader = websocket.Upgrader{CheckOrigin: h.checkOrigin}
	return h
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	if h.metrics != nil {
		router.Use(h.metrics.Middleware())
		router.GET("/metrics", gin.WrapH(h.metrics.Handler()))
	}

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Sensor store API used by both UIs
	h.registerStoreRoutes(router)

	// Control panel and viewer extras
	h.registerAPIRoutes(router)

	// Snapshot stream (HTTP upgrade) on the same port
	router.GET("/ws", h.wsConnect)

	h.registerStaticRoutes(router)

	return router
}

// HTTPHandler returns the router wrapped in the CORS policy.
func (h *Handler) HTTPHandler() http.Handler {
	cors := gorillahandlers.CORS(
		gorillahandlers.AllowedOrigins(h.origins),
		gorillahandlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions}),
		gorillahandlers.AllowedHeaders([]string{"Content-Type"}),
	)
	return cors(h.InitRoutes())
}

func (h *Handler) registerStoreRoutes(r *gin.Engine) {
	api := r.Group("/api")
	{
		api.GET("/sensors", h.getSensors)
		api.POST("/update", h.updateSensors)
		api.PUT("/update", h.updateSensors)
		api.GET("/status", h.getStatus)
	}
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1")
	{
		api.GET("/assessment", h.getAssessment)
		api.GET("/scenarios", h.getScenarios)
		h.registerControlRoutes(api)
		h.registerLogRoutes(api)
	}
}

func (h *Handler) registerControlRoutes(api *gin.RouterGroup) {
	control := api.Group("/control")
	{
		control.POST("/edit", h.editReading)
		control.POST("/room", h.selectRoom)
		control.POST("/device", h.setDevice)
		control.POST("/fan", h.setFanSpeed)
		control.POST("/rule", h.setRule)
		control.POST("/scenario", h.applyScenario)
		control.POST("/automation", h.runAutomation)
	}
}

func (h *Handler) registerLogRoutes(api *gin.RouterGroup) {
	api.GET("/events", h.getEvents)
}

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// respondServiceError maps invalid input to 400 with the reason and
// everything else to a logged 500.
func (h *Handler) respondServiceError(c *gin.Context, userMsg, logKey string, err error, kv ...interface{}) {
	if errors.Is(err, models.ErrInvalidArgument) {
		if h.log != nil {
			h.log.Infow(logKey, append([]interface{}{"err", err}, kv...)...)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.logAndJSONError(c, http.StatusInternalServerError, userMsg, logKey, err, kv...)
}

func (h *Handler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, o := range h.origins {
		if o == "*" || o == origin {
			return true
		}
	}
	return false
}
