package allocation

import (
	"context"
	"errors"
	"testing"

	"caredesk/models"
	"caredesk/services/directory"

	"go.uber.org/zap"
)

// recordingGateway captures allocation requests and fails on demand.
type recordingGateway struct {
	requests []models.AllocationRequest
	err      error
}

func (g *recordingGateway) ProcessPayment(_ context.Context, _ string, req models.AllocationRequest) error {
	if g.err != nil {
		return g.err
	}
	g.requests = append(g.requests, req)
	return nil
}

// countingReloader counts post-payment reloads.
type countingReloader struct {
	count int
}

func (r *countingReloader) Refresh(_ context.Context, _ string) (*directory.Snapshot, error) {
	r.count++
	return &directory.Snapshot{}, nil
}

func newTestService(gateway *recordingGateway, reloader *countingReloader) *DefaultAllocationService {
	return &DefaultAllocationService{
		Store:    NewInMemorySessionStore(),
		Gateway:  gateway,
		Reloader: reloader,
		Logger:   zap.NewNop(),
	}
}

func amount(v float64) *float64 { return &v }

// testPatient has two payable appointments (remainders 60 and 25), one paid
// appointment that must never enter a session, in backend order.
func testPatient() *models.Patient {
	return &models.Patient{
		ID:       "pat-1",
		FullName: "Amira Hassan",
		Appointments: []models.Appointment{
			{ID: "a1", Payment: models.Payment{Amount: 100, PaidAmount: amount(40), Status: models.PaymentStatusPartial}},
			{ID: "a2", Payment: models.Payment{Amount: 80, Status: models.PaymentStatusPaid}},
			{ID: "a3", Payment: models.Payment{Amount: 25, Status: models.PaymentStatusPending}},
		},
	}
}

func TestOpen_FullModePreselectsAllCandidates(t *testing.T) {
	svc := newTestService(&recordingGateway{}, nil)
	session, err := svc.Open(context.Background(), testPatient(), models.AllocationModeFull)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(session.Candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(session.Candidates))
	}
	if len(session.Selected) != 2 || session.Selected[0] != "a1" || session.Selected[1] != "a3" {
		t.Errorf("expected all candidates preselected in order, got %v", session.Selected)
	}
	// Remainders: 100-40=60 and 25.
	if session.Amount != 85 {
		t.Errorf("expected preselected amount 85, got %v", session.Amount)
	}
	if session.PaymentType != models.AllocationModeFull {
		t.Errorf("expected full payment type, got %q", session.PaymentType)
	}
	if session.Method != models.PaymentMethodCash {
		t.Errorf("expected default method cash, got %q", session.Method)
	}
}

func TestOpen_SingleModeSelectsFirstCandidate(t *testing.T) {
	svc := newTestService(&recordingGateway{}, nil)
	session, err := svc.Open(context.Background(), testPatient(), models.AllocationModeSingle)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(session.Selected) != 1 || session.Selected[0] != "a1" {
		t.Errorf("expected first candidate selected, got %v", session.Selected)
	}
	if session.Amount != 60 {
		t.Errorf("expected amount 60, got %v", session.Amount)
	}
	if session.PaymentType != models.AllocationModeFull {
		t.Errorf("expected single mode to default to paying off in full, got %q", session.PaymentType)
	}
}

func TestOpen_PartialModeStartsEmpty(t *testing.T) {
	svc := newTestService(&recordingGateway{}, nil)
	session, err := svc.Open(context.Background(), testPatient(), models.AllocationModePartial)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(session.Selected) != 0 {
		t.Errorf("expected empty selection, got %v", session.Selected)
	}
	if session.Amount != 0 {
		t.Errorf("expected amount 0, got %v", session.Amount)
	}
}

func TestOpen_NoUnpaidAppointments(t *testing.T) {
	svc := newTestService(&recordingGateway{}, nil)
	patient := &models.Patient{ID: "pat-2", Appointments: []models.Appointment{
		{ID: "a1", Payment: models.Payment{Amount: 50, Status: models.PaymentStatusPaid}},
	}}

	_, err := svc.Open(context.Background(), patient, models.AllocationModeFull)
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestToggle_IsIdempotentPerID(t *testing.T) {
	svc := newTestService(&recordingGateway{}, nil)
	session, _ := svc.Open(context.Background(), testPatient(), models.AllocationModePartial)

	session, err := svc.Toggle(context.Background(), session.SessionID, "a1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(session.Selected) != 1 || session.Selected[0] != "a1" {
		t.Fatalf("expected [a1], got %v", session.Selected)
	}

	session, err = svc.Toggle(context.Background(), session.SessionID, "a1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(session.Selected) != 0 {
		t.Errorf("expected toggle to remove a1, got %v", session.Selected)
	}

	// Toggling an appointment that is not a candidate is rejected.
	if _, err := svc.Toggle(context.Background(), session.SessionID, "a2"); err == nil {
		t.Error("expected error toggling a paid appointment")
	}
}

func TestToggle_FullModeTracksRemainingSum(t *testing.T) {
	svc := newTestService(&recordingGateway{}, nil)
	session, _ := svc.Open(context.Background(), testPatient(), models.AllocationModeFull)

	session, err := svc.Toggle(context.Background(), session.SessionID, "a3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session.Amount != 60 {
		t.Errorf("expected amount to follow selection in full mode, got %v", session.Amount)
	}
}

func TestToggle_PartialModeClampsAmount(t *testing.T) {
	svc := newTestService(&recordingGateway{}, nil)
	session, _ := svc.Open(context.Background(), testPatient(), models.AllocationModePartial)

	session, _ = svc.Toggle(context.Background(), session.SessionID, "a1")
	session, _ = svc.Toggle(context.Background(), session.SessionID, "a3")
	if _, err := svc.SetAmount(context.Background(), session.SessionID, 70); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Dropping a1 lowers the ceiling to 25; the operator amount is clamped.
	session, err := svc.Toggle(context.Background(), session.SessionID, "a1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session.Amount != 25 {
		t.Errorf("expected amount clamped to 25, got %v", session.Amount)
	}
}

func TestSetMode_FullRecomputesAmount(t *testing.T) {
	svc := newTestService(&recordingGateway{}, nil)
	session, _ := svc.Open(context.Background(), testPatient(), models.AllocationModeFull)

	session, err := svc.SetMode(context.Background(), session.SessionID, models.AllocationModePartial)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.SetAmount(context.Background(), session.SessionID, 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Switching back to full resets to the live remaining sum.
	session, err = svc.SetMode(context.Background(), session.SessionID, models.AllocationModeFull)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session.Amount != 85 {
		t.Errorf("expected amount reset to 85, got %v", session.Amount)
	}
}

func TestSetMode_PartialKeepsAmount(t *testing.T) {
	svc := newTestService(&recordingGateway{}, nil)
	session, _ := svc.Open(context.Background(), testPatient(), models.AllocationModeFull)

	session, err := svc.SetMode(context.Background(), session.SessionID, models.AllocationModePartial)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session.Amount != 85 {
		t.Errorf("expected switching to partial to leave the amount, got %v", session.Amount)
	}
}

func TestSetAmount_RejectsOutOfRange(t *testing.T) {
	svc := newTestService(&recordingGateway{}, nil)
	session, _ := svc.Open(context.Background(), testPatient(), models.AllocationModeFull)

	if _, err := svc.SetAmount(context.Background(), session.SessionID, -1); err == nil {
		t.Error("expected negative amount to be rejected")
	}
	if _, err := svc.SetAmount(context.Background(), session.SessionID, 85.01); err == nil {
		t.Error("expected amount above the remaining sum to be rejected")
	}
	if _, err := svc.SetAmount(context.Background(), session.SessionID, 85); err != nil {
		t.Errorf("expected amount at the ceiling to be accepted: %v", err)
	}
}

func TestSetMethod(t *testing.T) {
	svc := newTestService(&recordingGateway{}, nil)
	session, _ := svc.Open(context.Background(), testPatient(), models.AllocationModeFull)

	session, err := svc.SetMethod(context.Background(), session.SessionID, models.PaymentMethodInsurance)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session.Method != models.PaymentMethodInsurance {
		t.Errorf("expected method insurance, got %q", session.Method)
	}

	if _, err := svc.SetMethod(context.Background(), session.SessionID, "crypto"); err == nil {
		t.Error("expected unknown method to be rejected")
	}
}

func TestSubmit_EmptySelectionNeverHitsNetwork(t *testing.T) {
	gateway := &recordingGateway{}
	svc := newTestService(gateway, nil)
	session, _ := svc.Open(context.Background(), testPatient(), models.AllocationModePartial)

	_, err := svc.Submit(context.Background(), "tok", session.SessionID)
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(gateway.requests) != 0 {
		t.Error("expected no network call for empty selection")
	}

	// The session must survive a validation failure.
	if _, err := svc.Get(context.Background(), session.SessionID); err != nil {
		t.Errorf("expected session to remain open: %v", err)
	}
}

func TestSubmit_ZeroAmountNeverHitsNetwork(t *testing.T) {
	gateway := &recordingGateway{}
	svc := newTestService(gateway, nil)
	session, _ := svc.Open(context.Background(), testPatient(), models.AllocationModePartial)
	session, _ = svc.Toggle(context.Background(), session.SessionID, "a1")

	_, err := svc.Submit(context.Background(), "tok", session.SessionID)
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(gateway.requests) != 0 {
		t.Error("expected no network call for zero amount")
	}
}

func TestSubmit_FailureKeepsSessionOpen(t *testing.T) {
	gateway := &recordingGateway{err: errors.New("upstream down")}
	reloader := &countingReloader{}
	svc := newTestService(gateway, reloader)
	session, _ := svc.Open(context.Background(), testPatient(), models.AllocationModeFull)

	if _, err := svc.Submit(context.Background(), "tok", session.SessionID); err == nil {
		t.Fatal("expected submit to fail")
	}
	if reloader.count != 0 {
		t.Error("expected no reload after failed submit")
	}
	// The operator resubmits manually; the session must still be there.
	got, err := svc.Get(context.Background(), session.SessionID)
	if err != nil {
		t.Fatalf("expected session to survive upstream failure: %v", err)
	}
	if got.Amount != 85 {
		t.Errorf("expected session state untouched, got amount %v", got.Amount)
	}
}

func TestSubmit_PayAllEndToEnd(t *testing.T) {
	patient := &models.Patient{
		ID:       "pat-9",
		FullName: "Omar Adel",
		Appointments: []models.Appointment{
			{ID: "id1", Payment: models.Payment{Amount: 100, PaidAmount: amount(0), Status: models.PaymentStatusPending}},
			{ID: "id2", Payment: models.Payment{Amount: 50, PaidAmount: amount(20), Status: models.PaymentStatusPartial}},
		},
	}

	gateway := &recordingGateway{}
	reloader := &countingReloader{}
	svc := newTestService(gateway, reloader)

	session, err := svc.Open(context.Background(), patient, models.AllocationModeFull)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session.Amount != 130 {
		t.Fatalf("expected preselected amount 130, got %v", session.Amount)
	}

	receipt, err := svc.Submit(context.Background(), "tok", session.SessionID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(gateway.requests) != 1 {
		t.Fatalf("expected exactly one allocation request, got %d", len(gateway.requests))
	}
	req := gateway.requests[0]
	if req.PatientID != "pat-9" {
		t.Errorf("unexpected patient id %q", req.PatientID)
	}
	if len(req.AppointmentIDs) != 2 || req.AppointmentIDs[0] != "id1" || req.AppointmentIDs[1] != "id2" {
		t.Errorf("unexpected appointment ids %v", req.AppointmentIDs)
	}
	if req.PaymentAmount != 130 {
		t.Errorf("expected payment amount 130, got %v", req.PaymentAmount)
	}
	if req.PaymentMethod != models.PaymentMethodCash {
		t.Errorf("expected method cash, got %q", req.PaymentMethod)
	}
	if req.PaymentType != models.AllocationModeFull {
		t.Errorf("expected payment type full, got %q", req.PaymentType)
	}

	// Success discards the session and reloads the snapshot wholesale.
	if reloader.count != 1 {
		t.Errorf("expected one reload, got %d", reloader.count)
	}
	if _, err := svc.Get(context.Background(), session.SessionID); err == nil {
		t.Error("expected session to be discarded after successful submit")
	}
	if receipt.Amount != 130 {
		t.Errorf("expected receipt amount 130, got %v", receipt.Amount)
	}
}

func TestCancel_DiscardsSession(t *testing.T) {
	svc := newTestService(&recordingGateway{}, nil)
	session, _ := svc.Open(context.Background(), testPatient(), models.AllocationModeFull)

	if err := svc.Cancel(context.Background(), session.SessionID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Get(context.Background(), session.SessionID); err == nil {
		t.Error("expected session to be gone after cancel")
	}
}
