package models

// PaymentSummary is a pure aggregate over the currently loaded patient list.
// It is never persisted and is recomputed on every fetch.
//
// PendingPayments here is a count of open items (the sum of each patient's
// pendingPayments counter), not a currency amount.
type PaymentSummary struct {
	TotalPatients     int     `json:"totalPatients"`
	TotalRevenue      float64 `json:"totalRevenue"`
	PendingPayments   int     `json:"pendingPayments"`
	CompletedPayments int     `json:"completedPayments"`
	PartialPayments   int     `json:"partialPayments"`
}
