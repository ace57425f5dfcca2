package handlers

import (
	"net/http"

	"airquality_dashboard/internal/airquality"
	"airquality_dashboard/internal/models"
	"airquality_dashboard/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	errInvalidBodyPref = "invalid body: "
	errControl         = "failed to apply control action"
	errAssess          = "failed to assess air quality"
)

// SnapshotView is a snapshot together with the assessment of its selected
// scope. Control responses and the WebSocket stream both use it.
type SnapshotView struct {
	Snapshot   models.Snapshot   `json:"snapshot"`
	Assessment models.Assessment `json:"assessment"`
}

// newSnapshotView assesses scope, or the snapshot's own selection when scope
// is empty.
func newSnapshotView(snap models.Snapshot, scope models.Scope) (SnapshotView, error) {
	if scope == "" {
		scope = snap.CurrentRoom
	}
	if scope == "" {
		scope = models.ScopeAll
	}
	r, err := snap.Aggregate().ReadingFor(scope)
	if err != nil {
		return SnapshotView{}, err
	}
	return SnapshotView{Snapshot: snap, Assessment: airquality.Assess(scope, r, snap.Timestamp)}, nil
}

func (h *Handler) respondWithView(c *gin.Context, snap models.Snapshot) {
	view, err := newSnapshotView(snap, "")
	if err != nil {
		// the write went through; only the assessment is missing
		c.JSON(http.StatusOK, gin.H{"snapshot": snap})
		return
	}
	c.JSON(http.StatusOK, view)
}

// EditRequest sets one reading. Scope defaults to the selected room.
type EditRequest struct {
	Scope string   `json:"scope,omitempty" example:"kitchen"`
	Field string   `json:"field" binding:"required" example:"co2"`
	Value *float64 `json:"value" binding:"required" example:"1100"`
}

type RoomRequest struct {
	Room string `json:"room" binding:"required" example:"bedroom"`
}

// DeviceRequest toggles a device. Speed is only read for intakeFan.
type DeviceRequest struct {
	Device string `json:"device" binding:"required" example:"intakeFan"`
	Active *bool  `json:"active" binding:"required" example:"true"`
	Speed  *int   `json:"speed,omitempty" example:"60"`
}

type FanRequest struct {
	Speed *int `json:"speed" binding:"required" example:"40"`
}

type RuleRequest struct {
	Rule    string `json:"rule" binding:"required" example:"co2"`
	Enabled *bool  `json:"enabled" binding:"required" example:"false"`
}

type ScenarioRequest struct {
	Name string `json:"name" binding:"required" example:"poor"`
}

// @Summary      Edit a reading
// @Description  Applies the edit to one room (global becomes the room mean) or to all rooms, then re-runs automation.
// @Tags         control
// @Accept       json
// @Produce      json
// @Param        body  body      EditRequest  true  "Edit"
// @Success      200   {object}  SnapshotView
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/control/edit [post]
func (h *Handler) editReading(c *gin.Context) {
	var req EditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	snap, err := h.services.Control.EditReading(c.Request.Context(), service.EditParams{
		Scope: req.Scope,
		Field: req.Field,
		Value: *req.Value,
	})
	if err != nil {
		h.respondServiceError(c, errControl, "control_edit_failed", err, "field", req.Field, "scope", req.Scope)
		return
	}
	h.respondWithView(c, snap)
}

// @Summary      Select the displayed room
// @Tags         control
// @Accept       json
// @Produce      json
// @Param        body  body      RoomRequest  true  "Room or \"all\""
// @Success      200   {object}  SnapshotView
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/control/room [post]
func (h *Handler) selectRoom(c *gin.Context) {
	var req RoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	snap, err := h.services.Control.SelectRoom(c.Request.Context(), req.Room)
	if err != nil {
		h.respondServiceError(c, errControl, "control_room_failed", err, "room", req.Room)
		return
	}
	h.respondWithView(c, snap)
}

// @Summary      Switch a device
// @Description  Manual override; stands until automation runs again.
// @Tags         control
// @Accept       json
// @Produce      json
// @Param        body  body      DeviceRequest  true  "Device"
// @Success      200   {object}  SnapshotView
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/control/device [post]
func (h *Handler) setDevice(c *gin.Context) {
	var req DeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	snap, err := h.services.Control.SetDevice(c.Request.Context(), service.DeviceParams{
		Device: req.Device,
		Active: *req.Active,
		Speed:  req.Speed,
	})
	if err != nil {
		h.respondServiceError(c, errControl, "control_device_failed", err, "device", req.Device)
		return
	}
	h.respondWithView(c, snap)
}

// @Summary      Set intake fan speed
// @Tags         control
// @Accept       json
// @Produce      json
// @Param        body  body      FanRequest  true  "Speed 0-100"
// @Success      200   {object}  SnapshotView
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/control/fan [post]
func (h *Handler) setFanSpeed(c *gin.Context) {
	var req FanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	snap, err := h.services.Control.SetFanSpeed(c.Request.Context(), *req.Speed)
	if err != nil {
		h.respondServiceError(c, errControl, "control_fan_failed", err, "speed", *req.Speed)
		return
	}
	h.respondWithView(c, snap)
}

// @Summary      Enable or disable a rule
// @Tags         control
// @Accept       json
// @Produce      json
// @Param        body  body      RuleRequest  true  "Rule"
// @Success      200   {object}  SnapshotView
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/control/rule [post]
func (h *Handler) setRule(c *gin.Context) {
	var req RuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	snap, err := h.services.Control.SetRule(c.Request.Context(), service.RuleParams{
		Rule:    req.Rule,
		Enabled: *req.Enabled,
	})
	if err != nil {
		h.respondServiceError(c, errControl, "control_rule_failed", err, "rule", req.Rule)
		return
	}
	h.respondWithView(c, snap)
}

// @Summary      Apply a preset scenario
// @Tags         control
// @Accept       json
// @Produce      json
// @Param        body  body      ScenarioRequest  true  "good | moderate | poor | reset"
// @Success      200   {object}  SnapshotView
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/control/scenario [post]
func (h *Handler) applyScenario(c *gin.Context) {
	var req ScenarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	snap, err := h.services.Control.ApplyScenario(c.Request.Context(), req.Name)
	if err != nil {
		h.respondServiceError(c, errControl, "control_scenario_failed", err, "scenario", req.Name)
		return
	}
	h.respondWithView(c, snap)
}

// @Summary      Re-run automation
// @Tags         control
// @Produce      json
// @Success      200  {object}  SnapshotView
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/control/automation [post]
func (h *Handler) runAutomation(c *gin.Context) {
	snap, err := h.services.Control.RunAutomation(c.Request.Context())
	if err != nil {
		h.respondServiceError(c, errControl, "control_automation_failed", err)
		return
	}
	h.respondWithView(c, snap)
}

// @Summary      Assess air quality
// @Tags         monitoring
// @Produce      json
// @Param        scope  query     string  false  "\"all\" or a room; defaults to the selected room"
// @Success      200    {object}  models.Assessment
// @Failure      400    {object}  map[string]string
// @Failure      500    {object}  map[string]string
// @Router       /api/v1/assessment [get]
func (h *Handler) getAssessment(c *gin.Context) {
	scope := c.Query("scope")
	a, err := h.services.Monitoring.Assess(c.Request.Context(), scope)
	if err != nil {
		h.respondServiceError(c, errAssess, "assessment_failed", err, "scope", scope)
		return
	}
	c.JSON(http.StatusOK, a)
}

// @Summary      List preset scenarios
// @Tags         monitoring
// @Produce      json
// @Success      200  {object}  map[string][]string
// @Router       /api/v1/scenarios [get]
func (h *Handler) getScenarios(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"scenarios": airquality.ScenarioNames()})
}
