// File: services/allocation/service.go
package allocation

import (
	"context"
	"fmt"
	"time"

	"caredesk/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultAllocationService implements AllocationService on top of a session
// store, the upstream payment endpoint, and the directory reload.
type DefaultAllocationService struct {
	Store    SessionStore
	Gateway  PaymentGateway
	Reloader SnapshotReloader
	Logger   *zap.Logger
}

// Open creates a new payment session for the patient. Candidates are the
// patient's appointments whose payment status is pending or partial, in the
// order the backend returned them. The initial selection depends on mode:
// full selects everything, single selects the first candidate, partial
// starts empty.
func (s *DefaultAllocationService) Open(ctx context.Context, patient *models.Patient, mode string) (*models.AllocationSession, error) {
	if mode != models.AllocationModeSingle && mode != models.AllocationModeFull && mode != models.AllocationModePartial {
		return nil, NewValidationError(fmt.Sprintf("unknown allocation mode %q", mode))
	}

	unpaid := patient.UnpaidAppointments()
	if len(unpaid) == 0 {
		return nil, NewValidationError("patient has no unpaid appointments")
	}

	candidates := make([]models.AllocationCandidate, 0, len(unpaid))
	for _, appt := range unpaid {
		paid := 0.0
		if appt.Payment.PaidAmount != nil {
			paid = *appt.Payment.PaidAmount
		}
		candidates = append(candidates, models.AllocationCandidate{
			AppointmentID: appt.ID,
			Date:          appt.Date,
			ServiceName:   appt.Service.Name,
			Amount:        appt.Payment.Amount,
			PaidAmount:    paid,
			Remaining:     appt.Payment.Remaining(),
			Status:        appt.Payment.Status,
		})
	}

	session := &models.AllocationSession{
		SessionID:   uuid.New().String(),
		PatientID:   patient.ID,
		PatientName: patient.DisplayName(),
		OpenedMode:  mode,
		Candidates:  candidates,
		Method:      models.PaymentMethodCash,
		CreatedAt:   time.Now(),
	}

	switch mode {
	case models.AllocationModeFull:
		for _, cand := range candidates {
			session.Selected = append(session.Selected, cand.AppointmentID)
		}
		session.PaymentType = models.AllocationModeFull
		session.Amount = session.SelectedRemaining()
	case models.AllocationModeSingle:
		session.Selected = []string{candidates[0].AppointmentID}
		session.PaymentType = models.AllocationModeFull
		session.Amount = candidates[0].Remaining
	case models.AllocationModePartial:
		session.Selected = nil
		session.PaymentType = models.AllocationModePartial
		session.Amount = 0
	}

	if err := s.Store.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Get returns the current session state.
func (s *DefaultAllocationService) Get(ctx context.Context, sessionID string) (*models.AllocationSession, error) {
	return s.Store.Get(ctx, sessionID)
}

// Toggle adds or removes an appointment from the selection set. The
// operation is idempotent per ID: toggling twice restores the previous set.
// In full mode the amount tracks the selection's remaining sum; in partial
// mode the operator's amount is kept but clamped to the new ceiling.
func (s *DefaultAllocationService) Toggle(ctx context.Context, sessionID, appointmentID string) (*models.AllocationSession, error) {
	session, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	known := false
	for _, cand := range session.Candidates {
		if cand.AppointmentID == appointmentID {
			known = true
			break
		}
	}
	if !known {
		return nil, NewValidationError(fmt.Sprintf("appointment %s is not payable in this session", appointmentID))
	}

	if session.IsSelected(appointmentID) {
		kept := session.Selected[:0]
		for _, id := range session.Selected {
			if id != appointmentID {
				kept = append(kept, id)
			}
		}
		session.Selected = kept
	} else {
		session.Selected = append(session.Selected, appointmentID)
	}

	ceiling := session.SelectedRemaining()
	if session.PaymentType == models.AllocationModeFull {
		session.Amount = ceiling
	} else if session.Amount > ceiling {
		session.Amount = ceiling
	}

	if err := s.Store.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// SetMode switches between full and partial payment. Switching to full
// resets the amount to the live remaining sum over the current selection;
// switching to partial leaves the amount editable as-is.
func (s *DefaultAllocationService) SetMode(ctx context.Context, sessionID, paymentType string) (*models.AllocationSession, error) {
	if paymentType != models.AllocationModeFull && paymentType != models.AllocationModePartial {
		return nil, NewValidationError(fmt.Sprintf("unknown payment type %q", paymentType))
	}

	session, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	session.PaymentType = paymentType
	if paymentType == models.AllocationModeFull {
		session.Amount = session.SelectedRemaining()
	}

	if err := s.Store.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// SetAmount sets the operator-entered payment amount. Amounts outside
// [0, remaining sum over the selection] are rejected before submission.
func (s *DefaultAllocationService) SetAmount(ctx context.Context, sessionID string, amount float64) (*models.AllocationSession, error) {
	session, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	ceiling := session.SelectedRemaining()
	if amount < 0 || amount > ceiling {
		return nil, NewValidationError(fmt.Sprintf("amount must be between 0 and %.2f", ceiling))
	}

	session.Amount = amount
	if err := s.Store.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// SetMethod sets the payment method.
func (s *DefaultAllocationService) SetMethod(ctx context.Context, sessionID, method string) (*models.AllocationSession, error) {
	if method != models.PaymentMethodCash && method != models.PaymentMethodCard && method != models.PaymentMethodInsurance {
		return nil, NewValidationError(fmt.Sprintf("unknown payment method %q", method))
	}

	session, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	session.Method = method
	if err := s.Store.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Submit validates the session and posts one allocation to the backend.
// Validation failures never reach the network and leave the session open.
// On success the session is discarded and the patient snapshot is reloaded
// wholesale; the backend owns the ledger, so nothing is patched locally.
// On upstream failure the session also survives for manual resubmission.
func (s *DefaultAllocationService) Submit(ctx context.Context, token, sessionID string) (*models.AllocationReceipt, error) {
	session, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if len(session.Selected) == 0 {
		return nil, NewValidationError("no appointments selected")
	}
	if session.Amount <= 0 {
		return nil, NewValidationError("payment amount must be greater than zero")
	}

	req := models.AllocationRequest{
		PatientID:      session.PatientID,
		AppointmentIDs: session.Selected,
		PaymentAmount:  session.Amount,
		PaymentMethod:  session.Method,
		PaymentType:    session.PaymentType,
	}

	if err := s.Gateway.ProcessPayment(ctx, token, req); err != nil {
		s.logger().Warn("payment submission failed",
			zap.String("sessionID", sessionID),
			zap.String("patientID", session.PatientID),
			zap.Error(err))
		return nil, err
	}

	if err := s.Store.Delete(ctx, sessionID); err != nil {
		s.logger().Warn("failed to discard payment session", zap.String("sessionID", sessionID), zap.Error(err))
	}

	if s.Reloader != nil {
		if _, err := s.Reloader.Refresh(ctx, token); err != nil {
			// The payment went through; the operator just sees stale
			// numbers until the next refresh succeeds.
			s.logger().Warn("post-payment reload failed", zap.Error(err))
		}
	}

	s.logger().Info("payment recorded",
		zap.String("patientID", session.PatientID),
		zap.Float64("amount", session.Amount),
		zap.String("method", session.Method))

	return &models.AllocationReceipt{
		PatientID:      session.PatientID,
		AppointmentIDs: session.Selected,
		Amount:         session.Amount,
		Method:         session.Method,
		PaymentType:    session.PaymentType,
	}, nil
}

// Cancel discards the session without submitting anything.
func (s *DefaultAllocationService) Cancel(ctx context.Context, sessionID string) error {
	return s.Store.Delete(ctx, sessionID)
}

func (s *DefaultAllocationService) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return zap.L()
}
