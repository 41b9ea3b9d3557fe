// File: services/report/csv.go
package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"caredesk/models"
)

// csvHeader is the fixed nine-column report header.
var csvHeader = []string{
	"Patient Name",
	"Parent Name",
	"Contact",
	"Total Appointments",
	"Completed",
	"Total Owed",
	"Total Paid",
	"Pending Payments",
	"Payment Status",
}

// BuildCSV serializes the given (already filtered) patient list to CSV text,
// one row per patient plus the header row. Name and contact resolution is
// the same as the table and the search, so exports never disagree with the
// screen.
func BuildCSV(patients []models.Patient) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("failed to write report header: %w", err)
	}

	for i := range patients {
		if err := w.Write(patientRow(&patients[i])); err != nil {
			return nil, fmt.Errorf("failed to write report row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush report: %w", err)
	}
	return buf.Bytes(), nil
}

func patientRow(p *models.Patient) []string {
	return []string{
		p.DisplayName(),
		p.ResolvedParentName(),
		p.ResolvedContact(),
		strconv.Itoa(p.TotalAppointments),
		strconv.Itoa(p.CompletedAppointments),
		formatAmount(p.TotalOwed),
		formatAmount(p.TotalPaid),
		strconv.Itoa(p.PendingPayments),
		paymentStatusLabel(p),
	}
}

func paymentStatusLabel(p *models.Patient) string {
	if p.PendingPayments > 0 {
		return "Has Pending"
	}
	return "Up to Date"
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// Filename returns the download name for a report generated at the given time.
func Filename(now time.Time) string {
	return fmt.Sprintf("patient-payment-report-%s.csv", now.Format("2006-01-02"))
}
