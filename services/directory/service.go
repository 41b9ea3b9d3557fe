// File: services/directory/service.go
package directory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"caredesk/models"
)

// Snapshot is one wholesale load of the patient list with its summary.
// It is replaced, never patched: the backend owns the data and every
// successful mutation forces a re-fetch.
type Snapshot struct {
	Patients  []models.Patient      `json:"patients"`
	Summary   models.PaymentSummary `json:"summary"`
	Seq       uint64                `json:"seq"`
	FetchedAt time.Time             `json:"fetchedAt"`
}

// DefaultDirectoryService implements DirectoryService over the upstream
// hospital API.
type DefaultDirectoryService struct {
	Source PatientSource

	mu      sync.RWMutex
	current *Snapshot
	nextSeq uint64 // sequence handed to the next Refresh call
}

// Refresh issues a fetch tagged with a monotonic sequence number. Two
// overlapping refreshes race on the network, but only the one with the
// highest sequence applied so far may replace the snapshot; a late response
// from an older request is a no-op.
func (s *DefaultDirectoryService) Refresh(ctx context.Context, token string) (*Snapshot, error) {
	s.mu.Lock()
	s.nextSeq++
	seq := s.nextSeq
	s.mu.Unlock()

	patients, err := s.Source.PatientsWithAppointments(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("directory refresh failed: %w", err)
	}

	snap := &Snapshot{
		Patients:  patients,
		Summary:   Summarize(patients),
		Seq:       seq,
		FetchedAt: time.Now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != nil && s.current.Seq > seq {
		// A newer response already landed; keep it.
		return s.current, nil
	}
	s.current = snap
	return snap, nil
}

// Current returns the last applied snapshot, or nil before the first load.
func (s *DefaultDirectoryService) Current() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}
