package models

// ParentInfo holds the guardian contact sub-record as the hospital API
// returns it. All fields are optional.
type ParentInfo struct {
	Name  string `json:"name,omitempty"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

// Patient is a patient record as returned by the hospital API, with the
// appointments it owns embedded. The rollup fields (TotalAppointments,
// TotalOwed, ...) are computed by the backend and treated as authoritative;
// they are never recomputed locally.
//
// The API stores the same concept under several optional spellings
// (FullName vs ChildName, ParentName vs ParentInfo.Name). Resolution lives
// in DisplayName/ResolvedParentName/ResolvedContact and nowhere else.
type Patient struct {
	ID            string      `json:"_id"`
	FirstName     string      `json:"firstName,omitempty"`
	LastName      string      `json:"lastName,omitempty"`
	FullName      string      `json:"fullName,omitempty"`
	ChildName     string      `json:"childName,omitempty"`
	DateOfBirth   string      `json:"dateOfBirth,omitempty"`
	Gender        string      `json:"gender,omitempty"`
	ParentName    string      `json:"parentName,omitempty"`
	ContactNumber string      `json:"contactNumber,omitempty"`
	ParentInfo    *ParentInfo `json:"parentInfo,omitempty"`

	Appointments []Appointment `json:"appointments"`

	// Backend-computed aggregates.
	TotalAppointments     int     `json:"totalAppointments"`
	CompletedAppointments int     `json:"completedAppointments"`
	PendingPayments       int     `json:"pendingPayments"` // a count, not an amount
	TotalOwed             float64 `json:"totalOwed"`
	TotalPaid             float64 `json:"totalPaid"`
}

// DisplayName resolves the patient's display name.
// Precedence: firstName+lastName, then fullName, then childName, then "Unknown".
func (p *Patient) DisplayName() string {
	if p.FirstName != "" && p.LastName != "" {
		return p.FirstName + " " + p.LastName
	}
	if p.FullName != "" {
		return p.FullName
	}
	if p.ChildName != "" {
		return p.ChildName
	}
	return "Unknown"
}

// ResolvedParentName resolves the guardian name.
// Precedence: parentInfo.name, then parentName, then "N/A".
func (p *Patient) ResolvedParentName() string {
	if p.ParentInfo != nil && p.ParentInfo.Name != "" {
		return p.ParentInfo.Name
	}
	if p.ParentName != "" {
		return p.ParentName
	}
	return "N/A"
}

// ResolvedContact resolves the contact number.
// Precedence: parentInfo.phone, then contactNumber, then "N/A".
func (p *Patient) ResolvedContact() string {
	if p.ParentInfo != nil && p.ParentInfo.Phone != "" {
		return p.ParentInfo.Phone
	}
	if p.ContactNumber != "" {
		return p.ContactNumber
	}
	return "N/A"
}

// UnpaidAppointments returns the appointments still eligible for payment,
// in the order the backend returned them.
func (p *Patient) UnpaidAppointments() []Appointment {
	var out []Appointment
	for _, appt := range p.Appointments {
		if appt.Payment.Status == PaymentStatusPending || appt.Payment.Status == PaymentStatusPartial {
			out = append(out, appt)
		}
	}
	return out
}
