package models

import "time"

// Allocation modes. A session opened in "single" or "full" mode defaults to
// paying the selection off completely; "partial" lets the operator enter a
// smaller amount.
const (
	AllocationModeSingle  = "single"
	AllocationModeFull    = "full"
	AllocationModePartial = "partial"
)

// AllocationRequest is the payload posted to the hospital API to settle one
// or more appointments for a patient in a single payment.
type AllocationRequest struct {
	PatientID      string   `json:"patientId"`
	AppointmentIDs []string `json:"appointmentIds"`
	PaymentAmount  float64  `json:"paymentAmount"`
	PaymentMethod  string   `json:"paymentMethod"`
	PaymentType    string   `json:"paymentType"` // "full" or "partial"
}

// AllocationCandidate is an unpaid or partially paid appointment eligible
// for selection in a payment session.
type AllocationCandidate struct {
	AppointmentID string  `json:"appointmentId"`
	Date          string  `json:"date"`
	ServiceName   string  `json:"serviceName"`
	Amount        float64 `json:"amount"`
	PaidAmount    float64 `json:"paidAmount"`
	Remaining     float64 `json:"remaining"`
	Status        string  `json:"status"`
}

// AllocationSession holds the state of one operator's payment workflow
// between opening it and submitting or cancelling. It lives in the session
// cache and is discarded on submit or cancel.
type AllocationSession struct {
	SessionID   string                `json:"sessionId"`
	PatientID   string                `json:"patientId"`
	PatientName string                `json:"patientName"`
	OpenedMode  string                `json:"openedMode"` // single | full | partial
	Candidates  []AllocationCandidate `json:"candidates"`
	Selected    []string              `json:"selected"` // appointment IDs, insertion order
	PaymentType string                `json:"paymentType"`
	Amount      float64               `json:"amount"`
	Method      string                `json:"method"`
	CreatedAt   time.Time             `json:"createdAt"`
}

// IsSelected reports whether the appointment is in the selection set.
func (s *AllocationSession) IsSelected(appointmentID string) bool {
	for _, id := range s.Selected {
		if id == appointmentID {
			return true
		}
	}
	return false
}

// SelectedRemaining returns the sum of Remaining over the current selection.
func (s *AllocationSession) SelectedRemaining() float64 {
	total := 0.0
	for _, cand := range s.Candidates {
		if s.IsSelected(cand.AppointmentID) {
			total += cand.Remaining
		}
	}
	return total
}

// AllocationReceipt is returned to the operator after a successful submit.
type AllocationReceipt struct {
	PatientID      string   `json:"patientId"`
	AppointmentIDs []string `json:"appointmentIds"`
	Amount         float64  `json:"amount"`
	Method         string   `json:"method"`
	PaymentType    string   `json:"paymentType"`
}
