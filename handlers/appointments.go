// File: handlers/appointments.go
package handlers

import (
	"net/http"

	"caredesk/middleware"
	"caredesk/upstream"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AppointmentHandler serves the scheduling pages; the hospital API owns the
// data and the status-transition rules, these are thin pass-throughs.
type AppointmentHandler struct {
	Upstream *upstream.Client
	Logger   *zap.Logger
}

func NewAppointmentHandler(client *upstream.Client, logger *zap.Logger) *AppointmentHandler {
	return &AppointmentHandler{Upstream: client, Logger: logger}
}

// UpcomingHandler returns the upcoming appointment list.
func (h *AppointmentHandler) UpcomingHandler(c *gin.Context) {
	appts, err := h.Upstream.UpcomingAppointments(c.Request.Context(), middleware.UpstreamToken(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": appts})
}

// ListHandler returns the full appointment list.
func (h *AppointmentHandler) ListHandler(c *gin.Context) {
	appts, err := h.Upstream.Appointments(c.Request.Context(), middleware.UpstreamToken(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": appts})
}

// UpdateStatusHandler transitions an appointment's status.
func (h *AppointmentHandler) UpdateStatusHandler(c *gin.Context) {
	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	if err := h.Upstream.UpdateAppointmentStatus(c.Request.Context(), middleware.UpstreamToken(c), c.Param("id"), input.Status); err != nil {
		h.Logger.Warn("appointment status update failed", zap.String("id", c.Param("id")), zap.Error(err))
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "status updated"})
}
