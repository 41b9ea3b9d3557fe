package models

import "testing"

func TestDisplayName_Precedence(t *testing.T) {
	p := Patient{FirstName: "Amira", LastName: "Hassan", FullName: "Full Name", ChildName: "Child Name"}
	if got := p.DisplayName(); got != "Amira Hassan" {
		t.Errorf("expected first+last to win, got %q", got)
	}

	p = Patient{FullName: "Omar Adel", ChildName: "Child Name"}
	if got := p.DisplayName(); got != "Omar Adel" {
		t.Errorf("expected fullName, got %q", got)
	}

	p = Patient{ChildName: "Lina"}
	if got := p.DisplayName(); got != "Lina" {
		t.Errorf("expected childName, got %q", got)
	}

	p = Patient{}
	if got := p.DisplayName(); got != "Unknown" {
		t.Errorf("expected Unknown fallback, got %q", got)
	}

	// First name alone is not enough for the first+last form.
	p = Patient{FirstName: "Amira", FullName: "Amira H."}
	if got := p.DisplayName(); got != "Amira H." {
		t.Errorf("expected fullName when lastName missing, got %q", got)
	}
}

func TestResolvedContact_Precedence(t *testing.T) {
	p := Patient{ContactNumber: "0100", ParentInfo: &ParentInfo{Phone: "0111"}}
	if got := p.ResolvedContact(); got != "0111" {
		t.Errorf("expected parentInfo.phone to win, got %q", got)
	}

	p = Patient{ContactNumber: "0100"}
	if got := p.ResolvedContact(); got != "0100" {
		t.Errorf("expected contactNumber, got %q", got)
	}

	p = Patient{ParentInfo: &ParentInfo{}}
	if got := p.ResolvedContact(); got != "N/A" {
		t.Errorf("expected N/A fallback, got %q", got)
	}
}

func TestResolvedParentName_Precedence(t *testing.T) {
	p := Patient{ParentName: "Mr. Adel", ParentInfo: &ParentInfo{Name: "Mrs. Adel"}}
	if got := p.ResolvedParentName(); got != "Mrs. Adel" {
		t.Errorf("expected parentInfo.name to win, got %q", got)
	}

	p = Patient{ParentName: "Mr. Adel"}
	if got := p.ResolvedParentName(); got != "Mr. Adel" {
		t.Errorf("expected parentName, got %q", got)
	}

	p = Patient{}
	if got := p.ResolvedParentName(); got != "N/A" {
		t.Errorf("expected N/A fallback, got %q", got)
	}
}

func TestPaymentRemaining(t *testing.T) {
	paid := 40.0
	p := Payment{Amount: 100, PaidAmount: &paid}
	if got := p.Remaining(); got != 60 {
		t.Errorf("expected remaining 60, got %v", got)
	}

	p = Payment{Amount: 100}
	if got := p.Remaining(); got != 100 {
		t.Errorf("expected remaining 100 when paidAmount absent, got %v", got)
	}

	over := 120.0
	p = Payment{Amount: 100, PaidAmount: &over}
	if got := p.Remaining(); got != 0 {
		t.Errorf("expected remaining clamped to 0, got %v", got)
	}
}

func TestUnpaidAppointments(t *testing.T) {
	p := Patient{Appointments: []Appointment{
		{ID: "a1", Payment: Payment{Status: PaymentStatusPending}},
		{ID: "a2", Payment: Payment{Status: PaymentStatusPaid}},
		{ID: "a3", Payment: Payment{Status: PaymentStatusPartial}},
		{ID: "a4", Payment: Payment{Status: PaymentStatusRefunded}},
	}}

	unpaid := p.UnpaidAppointments()
	if len(unpaid) != 2 {
		t.Fatalf("expected 2 unpaid appointments, got %d", len(unpaid))
	}
	if unpaid[0].ID != "a1" || unpaid[1].ID != "a3" {
		t.Errorf("expected backend order preserved, got %q then %q", unpaid[0].ID, unpaid[1].ID)
	}
}
