package directory

import (
	"strings"

	"caredesk/models"
)

// Status filter values accepted by Filter.
const (
	FilterAll     = "all"
	FilterPending = "pending"
	FilterPaid    = "paid"
	FilterPartial = "partial"
)

// Filter returns the subsequence of patients matching both the free-text
// search term and the payment-status filter. Source order is preserved
// (stable filter, no re-sort); an empty term matches everything.
//
// The text match uses the same display-name/parent/contact resolution as the
// table and the exports, so search results never diverge from what is shown.
func Filter(patients []models.Patient, searchTerm, status string) []models.Patient {
	term := strings.ToLower(strings.TrimSpace(searchTerm))

	filtered := make([]models.Patient, 0, len(patients))
	for i := range patients {
		p := &patients[i]
		if !matchesTerm(p, term) {
			continue
		}
		if !matchesStatus(p, status) {
			continue
		}
		filtered = append(filtered, *p)
	}
	return filtered
}

func matchesTerm(p *models.Patient, term string) bool {
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.DisplayName()), term) ||
		strings.Contains(strings.ToLower(p.ResolvedParentName()), term) ||
		strings.Contains(strings.ToLower(p.ResolvedContact()), term)
}

func matchesStatus(p *models.Patient, status string) bool {
	switch status {
	case "", FilterAll:
		return true
	case FilterPending:
		return p.PendingPayments > 0
	case FilterPaid:
		return p.PendingPayments == 0
	case FilterPartial:
		for _, appt := range p.Appointments {
			if appt.Payment.Status == models.PaymentStatusPartial {
				return true
			}
		}
		return false
	default:
		return false
	}
}
