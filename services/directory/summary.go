package directory

import "caredesk/models"

// Summarize folds the patient list into the dashboard's summary cards.
//
// TotalRevenue sums each patient's backend-computed totalPaid rollup rather
// than appointment-level amounts, so already-rolled-up payments are not
// double counted. PendingPayments sums the per-patient counters (a count).
// CompletedPayments and PartialPayments count appointments, not patients.
func Summarize(patients []models.Patient) models.PaymentSummary {
	summary := models.PaymentSummary{TotalPatients: len(patients)}

	for i := range patients {
		p := &patients[i]
		summary.TotalRevenue += p.TotalPaid
		summary.PendingPayments += p.PendingPayments

		for _, appt := range p.Appointments {
			switch appt.Payment.Status {
			case models.PaymentStatusPaid:
				summary.CompletedPayments++
			case models.PaymentStatusPartial:
				summary.PartialPayments++
			}
		}
	}
	return summary
}
