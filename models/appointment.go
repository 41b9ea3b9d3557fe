package models

// Appointment statuses as the hospital API reports them.
const (
	AppointmentScheduled = "scheduled"
	AppointmentCompleted = "completed"
	AppointmentCancelled = "cancelled"
	AppointmentNoShow    = "no-show"
)

// Payment statuses.
const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusPartial  = "partial"
	PaymentStatusRefunded = "refunded"
)

// Payment methods.
const (
	PaymentMethodCash         = "cash"
	PaymentMethodCard         = "card"
	PaymentMethodInsurance    = "insurance"
	PaymentMethodNotSpecified = "not_specified"
)

// ServiceInfo is the billed service attached to an appointment.
type ServiceInfo struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// TherapistRef identifies the therapist assigned to an appointment.
type TherapistRef struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

// Payment is the payment sub-record embedded in an appointment.
// PaidAmount, when present, is the amount already captured toward Amount.
type Payment struct {
	Amount     float64  `json:"amount"`
	Status     string   `json:"status"`
	Method     string   `json:"method,omitempty"`
	PaidAmount *float64 `json:"paidAmount,omitempty"`
}

// Remaining returns the unpaid portion of the charge, the quantity eligible
// for further payment. Never negative.
func (p *Payment) Remaining() float64 {
	paid := 0.0
	if p.PaidAmount != nil {
		paid = *p.PaidAmount
	}
	remaining := p.Amount - paid
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Appointment is a scheduled session between a patient and a therapist,
// carrying its own charge and payment sub-record. It belongs to exactly one
// patient.
type Appointment struct {
	ID                string       `json:"_id"`
	Date              string       `json:"date"`
	StartTime         string       `json:"startTime,omitempty"`
	EndTime           string       `json:"endTime,omitempty"`
	Status            string       `json:"status"`
	Type              string       `json:"type,omitempty"`
	Service           ServiceInfo  `json:"service"`
	Therapist         TherapistRef `json:"therapist"`
	TotalSessions     int          `json:"totalSessions,omitempty"`
	SessionsCompleted int          `json:"sessionsCompleted,omitempty"`
	SessionsPaid      int          `json:"sessionsPaid,omitempty"`
	Payment           Payment      `json:"payment"`
}
