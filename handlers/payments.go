// File: handlers/payments.go
package handlers

import (
	"fmt"
	"net/http"

	"caredesk/middleware"
	"caredesk/models"
	"caredesk/services/allocation"
	"caredesk/services/directory"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PaymentHandler drives the payment modal over HTTP: open, adjust, submit,
// cancel.
type PaymentHandler struct {
	Alloc     allocation.AllocationService
	Directory directory.DirectoryService
	Logger    *zap.Logger
}

func NewPaymentHandler(alloc allocation.AllocationService, dir directory.DirectoryService, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{Alloc: alloc, Directory: dir, Logger: logger}
}

// OpenSessionHandler opens a payment session for a patient in the requested
// mode (single | full | partial).
func (h *PaymentHandler) OpenSessionHandler(c *gin.Context) {
	var input struct {
		PatientID string `json:"patientId" binding:"required"`
		Mode      string `json:"mode" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	snap := h.Directory.Current()
	if snap == nil {
		var err error
		snap, err = h.Directory.Refresh(c.Request.Context(), middleware.UpstreamToken(c))
		if err != nil {
			respondError(c, err)
			return
		}
	}

	var patient *models.Patient
	for i := range snap.Patients {
		if snap.Patients[i].ID == input.PatientID {
			patient = &snap.Patients[i]
			break
		}
	}
	if patient == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("patient %s not found", input.PatientID)})
		return
	}

	session, err := h.Alloc.Open(c.Request.Context(), patient, input.Mode)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session})
}

// UpdateSessionHandler applies one operator interaction to an open session.
// Actions: toggle (appointmentId), mode (paymentType), amount (amount),
// method (method).
func (h *PaymentHandler) UpdateSessionHandler(c *gin.Context) {
	sessionID := c.Param("sessionID")
	var input struct {
		Action        string  `json:"action" binding:"required"`
		AppointmentID string  `json:"appointmentId"`
		PaymentType   string  `json:"paymentType"`
		Amount        float64 `json:"amount"`
		Method        string  `json:"method"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	var (
		session *models.AllocationSession
		err     error
	)
	switch input.Action {
	case "toggle":
		session, err = h.Alloc.Toggle(c.Request.Context(), sessionID, input.AppointmentID)
	case "mode":
		session, err = h.Alloc.SetMode(c.Request.Context(), sessionID, input.PaymentType)
	case "amount":
		session, err = h.Alloc.SetAmount(c.Request.Context(), sessionID, input.Amount)
	case "method":
		session, err = h.Alloc.SetMethod(c.Request.Context(), sessionID, input.Method)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown action %q", input.Action)})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session})
}

// GetSessionHandler returns the current state of an open session.
func (h *PaymentHandler) GetSessionHandler(c *gin.Context) {
	session, err := h.Alloc.Get(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session})
}

// SubmitSessionHandler validates and submits the allocation. On success the
// session is gone and the snapshot has been reloaded; the receipt carries
// the amount for the operator's confirmation message.
func (h *PaymentHandler) SubmitSessionHandler(c *gin.Context) {
	receipt, err := h.Alloc.Submit(c.Request.Context(), middleware.UpstreamToken(c), c.Param("sessionID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Payment of %.2f recorded", receipt.Amount),
		"receipt": receipt,
	})
}

// CancelSessionHandler discards the session.
func (h *PaymentHandler) CancelSessionHandler(c *gin.Context) {
	if err := h.Alloc.Cancel(c.Request.Context(), c.Param("sessionID")); err != nil {
		h.Logger.Warn("failed to cancel payment session", zap.Error(err))
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "session cancelled"})
}
