package allocation

import (
	"context"

	"caredesk/models"
	"caredesk/services/directory"
)

// PaymentGateway is the slice of the upstream client the workflow needs.
type PaymentGateway interface {
	ProcessPayment(ctx context.Context, token string, req models.AllocationRequest) error
}

// SnapshotReloader triggers the wholesale re-fetch that follows every
// successful payment.
type SnapshotReloader interface {
	Refresh(ctx context.Context, token string) (*directory.Snapshot, error)
}

// AllocationService drives the payment modal workflow:
// Closed -> Open(mode, patient) -> Submitting -> Closed.
type AllocationService interface {
	Open(ctx context.Context, patient *models.Patient, mode string) (*models.AllocationSession, error)
	Get(ctx context.Context, sessionID string) (*models.AllocationSession, error)
	Toggle(ctx context.Context, sessionID, appointmentID string) (*models.AllocationSession, error)
	SetMode(ctx context.Context, sessionID, paymentType string) (*models.AllocationSession, error)
	SetAmount(ctx context.Context, sessionID string, amount float64) (*models.AllocationSession, error)
	SetMethod(ctx context.Context, sessionID, method string) (*models.AllocationSession, error)
	Submit(ctx context.Context, token, sessionID string) (*models.AllocationReceipt, error)
	Cancel(ctx context.Context, sessionID string) error
}
