package directory

import (
	"context"

	"caredesk/models"
)

// PatientSource is the slice of the upstream client the directory needs.
type PatientSource interface {
	PatientsWithAppointments(ctx context.Context, token string) ([]models.Patient, error)
}

// DirectoryService maintains the receptionist's working snapshot of the
// patient list and its payment summary.
type DirectoryService interface {
	// Refresh re-fetches the patient list wholesale and replaces the
	// snapshot. Responses that arrive out of order are discarded.
	Refresh(ctx context.Context, token string) (*Snapshot, error)
	// Current returns the last applied snapshot, or nil if none was loaded.
	Current() *Snapshot
}
