// File: handlers/export.go
package handlers

import (
	"fmt"
	"net/http"
	"time"

	"caredesk/middleware"
	"caredesk/services/directory"
	"caredesk/services/report"
	"caredesk/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// ExportHandler turns the currently filtered patient view into downloadable
// or mailed reports. Export is read-only over the snapshot.
type ExportHandler struct {
	Directory directory.DirectoryService
	Tasks     *asynq.Client
	Logger    *zap.Logger
}

func NewExportHandler(dir directory.DirectoryService, tasks *asynq.Client, logger *zap.Logger) *ExportHandler {
	return &ExportHandler{Directory: dir, Tasks: tasks, Logger: logger}
}

func (h *ExportHandler) filteredPatients(c *gin.Context) ([]byte, string, bool) {
	snap := h.Directory.Current()
	if snap == nil {
		var err error
		snap, err = h.Directory.Refresh(c.Request.Context(), middleware.UpstreamToken(c))
		if err != nil {
			respondError(c, err)
			return nil, "", false
		}
	}

	filtered := directory.Filter(snap.Patients, c.Query("search"), c.DefaultQuery("status", directory.FilterAll))
	data, err := report.BuildCSV(filtered)
	if err != nil {
		h.Logger.Error("csv export failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to build report", err.Error())
		return nil, "", false
	}
	return data, report.Filename(time.Now()), true
}

// ExportCSVHandler streams the filtered view as a CSV download.
func (h *ExportHandler) ExportCSVHandler(c *gin.Context) {
	data, filename, ok := h.filteredPatients(c)
	if !ok {
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv", data)
}

// ExportExcelHandler streams the filtered view as an .xlsx download.
func (h *ExportHandler) ExportExcelHandler(c *gin.Context) {
	snap := h.Directory.Current()
	if snap == nil {
		var err error
		snap, err = h.Directory.Refresh(c.Request.Context(), middleware.UpstreamToken(c))
		if err != nil {
			respondError(c, err)
			return
		}
	}

	filtered := directory.Filter(snap.Patients, c.Query("search"), c.DefaultQuery("status", directory.FilterAll))
	data, err := report.BuildExcel(filtered)
	if err != nil {
		h.Logger.Error("excel export failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to build report", err.Error())
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.ExcelFilename(time.Now())))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// EmailReportHandler renders the filtered CSV and queues it for delivery.
func (h *ExportHandler) EmailReportHandler(c *gin.Context) {
	var input struct {
		Recipient string `json:"recipient" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	data, filename, ok := h.filteredPatients(c)
	if !ok {
		return
	}

	task, err := report.NewEmailTask(report.EmailPayload{
		Recipient: input.Recipient,
		Subject:   "Patient payment report",
		Filename:  filename,
		CSV:       data,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to queue report"})
		return
	}
	if _, err := h.Tasks.Enqueue(task); err != nil {
		h.Logger.Error("failed to enqueue report email", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to queue report"})
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"message": "report queued for delivery"})
}
