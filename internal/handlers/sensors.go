package handlers

import (
	"errors"
	"io"
	"net/http"

	"airquality_dashboard/internal/repository"

	"github.com/gin-gonic/gin"
)

const (
	maxUpdateBody = 1 << 20 // 1 MB

	errLoadSnapshot   = "failed to load snapshot"
	errUpdateSnapshot = "failed to update snapshot"
	errBodyTooLarge   = "request body too large"
)

// UpdateResponse is the answer of POST /api/update.
type UpdateResponse struct {
	Success bool                `json:"success" example:"true"`
	Data    repository.Document `json:"data" swaggertype:"object"`
}

// @Summary      Current sensor snapshot
// @Description  Full stored snapshot: global reading, rooms, currentRoom, devices, rules, timestamp, plus any extra keys written by clients.
// @Tags         store
// @Produce      json
// @Success      200  {object}  models.Snapshot
// @Failure      500  {object}  map[string]string
// @Router       /api/sensors [get]
func (h *Handler) getSensors(c *gin.Context) {
	doc, err := h.services.SensorStore.Snapshot(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errLoadSnapshot, "sensors_get_failed", err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

// @Summary      Merge into the snapshot
// @Description  Shallow merge: every top-level key in the body replaces the stored value, the timestamp is refreshed, everything else is untouched.
// @Tags         store
// @Accept       json
// @Produce      json
// @Param        body  body      object  true  "Partial snapshot"
// @Success      200   {object}  UpdateResponse
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/update [post]
// @Router       /api/update [put]
func (h *Handler) updateSensors(c *gin.Context) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxUpdateBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": errBodyTooLarge})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}

	partial, err := repository.ParseDocument(body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	doc, err := h.services.SensorStore.Update(c.Request.Context(), partial)
	if err != nil {
		h.respondServiceError(c, errUpdateSnapshot, "sensors_update_failed", err)
		return
	}
	c.JSON(http.StatusOK, UpdateResponse{Success: true, Data: doc})
}

// @Summary      Store health
// @Tags         store
// @Produce      json
// @Success      200  {object}  models.Status
// @Router       /api/status [get]
func (h *Handler) getStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.SensorStore.Status(c.Request.Context()))
}
