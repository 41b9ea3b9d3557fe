// File: handlers/patients.go
package handlers

import (
	"net/http"

	"caredesk/middleware"
	"caredesk/services/directory"
	"caredesk/upstream"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PatientHandler serves the patient payment dashboard: the filtered table,
// the summary cards, and manual refresh.
type PatientHandler struct {
	Directory directory.DirectoryService
	Upstream  *upstream.Client
	Logger    *zap.Logger
}

func NewPatientHandler(dir directory.DirectoryService, client *upstream.Client, logger *zap.Logger) *PatientHandler {
	return &PatientHandler{Directory: dir, Upstream: client, Logger: logger}
}

// snapshotOrLoad returns the current snapshot, fetching it first if the
// service has never loaded one.
func (h *PatientHandler) snapshotOrLoad(c *gin.Context) (*directory.Snapshot, bool) {
	snap := h.Directory.Current()
	if snap != nil {
		return snap, true
	}
	snap, err := h.Directory.Refresh(c.Request.Context(), middleware.UpstreamToken(c))
	if err != nil {
		h.Logger.Error("patient list fetch failed", zap.Error(err))
		respondError(c, err)
		return nil, false
	}
	return snap, true
}

// ListPatientsHandler returns the filtered patient list plus the summary for
// the cards. Query parameters: search (free text), status
// (all|pending|paid|partial).
func (h *PatientHandler) ListPatientsHandler(c *gin.Context) {
	snap, ok := h.snapshotOrLoad(c)
	if !ok {
		return
	}

	searchTerm := c.Query("search")
	status := c.DefaultQuery("status", directory.FilterAll)

	filtered := directory.Filter(snap.Patients, searchTerm, status)
	c.JSON(http.StatusOK, gin.H{
		"patients":  filtered,
		"summary":   snap.Summary,
		"seq":       snap.Seq,
		"fetchedAt": snap.FetchedAt,
	})
}

// RefreshPatientsHandler forces a wholesale re-fetch of the patient list.
func (h *PatientHandler) RefreshPatientsHandler(c *gin.Context) {
	snap, err := h.Directory.Refresh(c.Request.Context(), middleware.UpstreamToken(c))
	if err != nil {
		h.Logger.Error("patient list refresh failed", zap.Error(err))
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"summary":   snap.Summary,
		"seq":       snap.Seq,
		"fetchedAt": snap.FetchedAt,
		"patients":  snap.Patients,
	})
}

// RegisterPatientHandler proxies a new patient registration to the backend
// and reloads the snapshot on success.
func (h *PatientHandler) RegisterPatientHandler(c *gin.Context) {
	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	token := middleware.UpstreamToken(c)
	if err := h.Upstream.RegisterPatient(c.Request.Context(), token, payload); err != nil {
		respondError(c, err)
		return
	}

	if _, err := h.Directory.Refresh(c.Request.Context(), token); err != nil {
		h.Logger.Warn("post-registration reload failed", zap.Error(err))
	}
	c.JSON(http.StatusCreated, gin.H{"message": "patient registered"})
}
