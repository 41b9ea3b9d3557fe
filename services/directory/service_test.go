package directory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"caredesk/models"
)

// fakeSource returns one canned result per call, in order.
type fakeSource struct {
	mu    sync.Mutex
	queue []fetchResult
}

type fetchResult struct {
	patients []models.Patient
	err      error
}

func (f *fakeSource) PatientsWithAppointments(ctx context.Context, token string) ([]models.Patient, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := f.queue[0]
	f.queue = f.queue[1:]
	return result.patients, result.err
}

func TestRefresh_ReplacesSnapshotWholesale(t *testing.T) {
	source := &fakeSource{queue: []fetchResult{
		{patients: []models.Patient{{ID: "p1", TotalPaid: 10}}},
		{patients: []models.Patient{{ID: "p2", TotalPaid: 20}}},
	}}
	svc := &DefaultDirectoryService{Source: source}

	if svc.Current() != nil {
		t.Fatal("expected no snapshot before first refresh")
	}

	snap, err := svc.Refresh(context.Background(), "tok")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(snap.Patients) != 1 || snap.Patients[0].ID != "p1" {
		t.Fatalf("unexpected first snapshot: %+v", snap.Patients)
	}
	if snap.Summary.TotalRevenue != 10 {
		t.Errorf("expected summary recomputed on fetch, got %+v", snap.Summary)
	}

	snap, err = svc.Refresh(context.Background(), "tok")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(snap.Patients) != 1 || snap.Patients[0].ID != "p2" {
		t.Fatalf("expected second snapshot to replace the first, got %+v", snap.Patients)
	}
	if svc.Current().Seq != 2 {
		t.Errorf("expected seq 2, got %d", svc.Current().Seq)
	}
}

func TestRefresh_ErrorKeepsOldSnapshot(t *testing.T) {
	source := &fakeSource{queue: []fetchResult{
		{patients: []models.Patient{{ID: "p1"}}},
		{err: errors.New("boom")},
	}}
	svc := &DefaultDirectoryService{Source: source}

	if _, err := svc.Refresh(context.Background(), "tok"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Refresh(context.Background(), "tok"); err == nil {
		t.Fatal("expected error from failed fetch")
	}
	if snap := svc.Current(); snap == nil || snap.Patients[0].ID != "p1" {
		t.Errorf("expected old snapshot preserved after failed refresh")
	}
}

// gatedSource blocks its first call until released; later calls return
// immediately. This lets a test order two overlapping refreshes exactly.
type gatedSource struct {
	mu      sync.Mutex
	calls   int
	entered chan struct{}
	gate    chan struct{}
}

func (g *gatedSource) PatientsWithAppointments(ctx context.Context, token string) ([]models.Patient, error) {
	g.mu.Lock()
	g.calls++
	call := g.calls
	g.mu.Unlock()

	if call == 1 {
		close(g.entered)
		<-g.gate
		return []models.Patient{{ID: "stale"}}, nil
	}
	return []models.Patient{{ID: "fresh"}}, nil
}

func TestRefresh_StaleResponseDiscarded(t *testing.T) {
	source := &gatedSource{
		entered: make(chan struct{}),
		gate:    make(chan struct{}),
	}
	svc := &DefaultDirectoryService{Source: source}

	done := make(chan *Snapshot)
	go func() {
		snap, _ := svc.Refresh(context.Background(), "tok")
		done <- snap
	}()

	// Wait until the slow fetch is parked inside the source, then let a
	// second refresh overtake it.
	<-source.entered
	if _, err := svc.Refresh(context.Background(), "tok"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	close(source.gate)
	got := <-done

	if got == nil || got.Patients[0].ID != "fresh" {
		t.Fatalf("expected stale response to be discarded, got %+v", got)
	}
	if snap := svc.Current(); snap.Patients[0].ID != "fresh" {
		t.Errorf("expected snapshot to stay on the fresh response, got %+v", snap.Patients)
	}
}
