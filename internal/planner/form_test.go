package planner

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"voyage/internal/modules/itinerary"
)

type recordingGenerator struct {
	mu     sync.Mutex
	bodies [][]byte
	err    error
	block  chan struct{}
}

func (g *recordingGenerator) GenerateItinerary(ctx context.Context, body []byte) (*itinerary.Itinerary, error) {
	g.mu.Lock()
	g.bodies = append(g.bodies, append([]byte(nil), body...))
	err := g.err
	block := g.block
	g.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err != nil {
		return nil, err
	}
	return &itinerary.Itinerary{TripName: "Tokyo Discovery", Destination: "Tokyo", StartDate: "2024-09-10", EndDate: "2024-09-17"}, nil
}

func (g *recordingGenerator) calls() [][]byte {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.bodies
}

func validRequest() itinerary.TripRequest {
	return itinerary.TripRequest{
		OriginCity:      "San Francisco",
		DestinationCity: "Tokyo",
		StartDate:       "2024-09-10",
		EndDate:         "2024-09-17",
		Interests:       "food, temples",
		Budget:          itinerary.BudgetLuxury,
	}
}

func waitForState(t *testing.T, f *Form, want State) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for f.Snapshot().State != want {
		if time.Now().After(deadline) {
			t.Fatalf("form never reached %s", want)
		}
		time.Sleep(time.Millisecond)
	}
}

func newTestForm(t *testing.T, gen Generator, store Store) *Form {
	t.Helper()
	f, err := NewForm(context.Background(), gen, store)
	if err != nil {
		t.Fatalf("NewForm: %v", err)
	}
	return f
}

func TestSubmit_ReversedDatesNeverReachNetwork(t *testing.T) {
	gen := &recordingGenerator{}
	f := newTestForm(t, gen, nil)

	req := validRequest()
	req.StartDate, req.EndDate = "2024-09-17", "2024-09-10"

	_, err := f.Submit(context.Background(), req)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected a validation error, got %v", err)
	}
	if verr.Message != MsgInvalidDateRange {
		t.Errorf("unexpected message %q", verr.Message)
	}
	if len(gen.calls()) != 0 {
		t.Error("generator must not be called for an invalid range")
	}
	snap := f.Snapshot()
	if snap.State != StateIdle || snap.Validation != MsgInvalidDateRange {
		t.Errorf("unexpected snapshot %+v", snap)
	}
}

func TestSubmit_Success(t *testing.T) {
	store := NewMemoryStore()
	f := newTestForm(t, &recordingGenerator{}, store)

	it, err := f.Submit(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if it.Destination != "Tokyo" {
		t.Errorf("unexpected itinerary %+v", it)
	}
	if f.Snapshot().State != StateSuccess {
		t.Errorf("expected success, got %s", f.Snapshot().State)
	}

	flag, _, _ := store.Get(context.Background(), KeyGenerated)
	if string(flag) != "true" {
		t.Errorf("expected generation flag to be persisted, got %q", flag)
	}
	if _, ok, _ := store.Get(context.Background(), KeyLastItinerary); !ok {
		t.Error("expected itinerary to be persisted")
	}
}

func TestRetry_ReplaysIdenticalBody(t *testing.T) {
	gen := &recordingGenerator{err: &APIError{Status: 500, Message: "generation failed"}}
	f := newTestForm(t, gen, nil)

	if _, err := f.Submit(context.Background(), validRequest()); err == nil {
		t.Fatal("expected the first submission to fail")
	}
	snap := f.Snapshot()
	if snap.State != StateFailed || snap.Error != "generation failed" {
		t.Fatalf("unexpected snapshot %+v", snap)
	}

	gen.mu.Lock()
	gen.err = nil
	gen.mu.Unlock()

	if _, err := f.Retry(context.Background()); err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	calls := gen.calls()
	if len(calls) != 2 {
		t.Fatalf("expected 2 calls, got %d", len(calls))
	}
	if !bytes.Equal(calls[0], calls[1]) {
		t.Errorf("retry body differs:\n%s\n%s", calls[0], calls[1])
	}
	if f.Snapshot().State != StateSuccess {
		t.Errorf("expected success after retry, got %s", f.Snapshot().State)
	}
}

func TestRetry_NothingToRetry(t *testing.T) {
	f := newTestForm(t, &recordingGenerator{}, nil)
	if _, err := f.Retry(context.Background()); !errors.Is(err, ErrNothingToRetry) {
		t.Errorf("expected ErrNothingToRetry, got %v", err)
	}
}

func TestSubmit_WhileSubmitting(t *testing.T) {
	gen := &recordingGenerator{block: make(chan struct{})}
	f := newTestForm(t, gen, nil)

	done := make(chan error, 1)
	go func() {
		_, err := f.Submit(context.Background(), validRequest())
		done <- err
	}()

	waitForState(t, f, StateSubmitting)
	if _, err := f.Submit(context.Background(), validRequest()); !errors.Is(err, ErrSubmitInProgress) {
		t.Errorf("expected ErrSubmitInProgress, got %v", err)
	}
	if err := f.Clear(context.Background()); !errors.Is(err, ErrSubmitInProgress) {
		t.Errorf("expected Clear to be refused while submitting, got %v", err)
	}

	close(gen.block)
	if err := <-done; err != nil {
		t.Fatalf("first submission failed: %v", err)
	}
	if len(gen.calls()) != 1 {
		t.Errorf("expected exactly one network call, got %d", len(gen.calls()))
	}
}

func TestSubmit_CancelledIsNotAnError(t *testing.T) {
	gen := &recordingGenerator{block: make(chan struct{})}
	f := newTestForm(t, gen, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := f.Submit(ctx, validRequest())
		done <- err
	}()
	waitForState(t, f, StateSubmitting)
	cancel()

	if err := <-done; !IsCanceled(err) {
		t.Fatalf("expected a cancellation error, got %v", err)
	}
	snap := f.Snapshot()
	if snap.State != StateIdle || snap.Error != "" {
		t.Errorf("cancellation leaked into form state: %+v", snap)
	}
	if snap.LastBody != nil {
		t.Errorf("expected the cancelled body to be dropped, got %s", snap.LastBody)
	}
}

func TestSubmit_DeadlineIsAFailure(t *testing.T) {
	gen := &recordingGenerator{block: make(chan struct{})}
	f := newTestForm(t, gen, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := f.Submit(ctx, validRequest())
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected a deadline error, got %v", err)
	}
	snap := f.Snapshot()
	if snap.State != StateFailed || snap.Error == "" {
		t.Errorf("expected a visible failure, got %+v", snap)
	}
	if snap.LastBody == nil {
		t.Error("expected the timed out body to be kept for retry")
	}
}

func TestSubmit_AfterSuccess(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	gen := &recordingGenerator{}
	f := newTestForm(t, gen, store)

	if _, err := f.Submit(ctx, validRequest()); err != nil {
		t.Fatalf("first submission failed: %v", err)
	}
	first := f.Snapshot().LastBody

	next := validRequest()
	next.DestinationCity = "Kyoto"
	if _, err := f.Submit(ctx, next); err != nil {
		t.Fatalf("second submission failed: %v", err)
	}

	calls := gen.calls()
	if len(calls) != 2 {
		t.Fatalf("expected 2 calls, got %d", len(calls))
	}
	snap := f.Snapshot()
	if snap.State != StateSuccess {
		t.Errorf("expected success, got %s", snap.State)
	}
	if bytes.Equal(snap.LastBody, first) || !bytes.Equal(snap.LastBody, calls[1]) {
		t.Errorf("last body not replaced by the second submission: %s", snap.LastBody)
	}
	saved, _, _ := store.Get(ctx, KeyLastRequest)
	if !bytes.Equal(saved, calls[1]) {
		t.Errorf("persisted request is stale: %s", saved)
	}
	flag, _, _ := store.Get(ctx, KeyGenerated)
	if string(flag) != "true" {
		t.Errorf("expected generation flag true, got %q", flag)
	}
}

func TestNewForm_RestoresState(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	first := newTestForm(t, &recordingGenerator{}, store)
	if _, err := first.Submit(ctx, validRequest()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second := newTestForm(t, &recordingGenerator{}, store)
	snap := second.Snapshot()
	if snap.State != StateSuccess || snap.Itinerary == nil || snap.Itinerary.Destination != "Tokyo" {
		t.Errorf("state not restored: %+v", snap)
	}
	if !bytes.Equal(snap.LastBody, first.Snapshot().LastBody) {
		t.Error("last request not restored byte for byte")
	}
}

func TestNewForm_InterruptedGenerationIsFailed(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	_ = store.Set(ctx, KeyLastRequest, []byte(`{"originCity":"Paris"}`))
	_ = store.Set(ctx, KeyGenerated, []byte("false"))

	f := newTestForm(t, &recordingGenerator{}, store)
	snap := f.Snapshot()
	if snap.State != StateFailed || snap.Error == "" {
		t.Errorf("expected a failed state, got %+v", snap)
	}
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	f := newTestForm(t, &recordingGenerator{}, store)
	if _, err := f.Submit(ctx, validRequest()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := f.Clear(ctx); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if snap := f.Snapshot(); snap.State != StateIdle || snap.Itinerary != nil {
		t.Errorf("unexpected snapshot after clear %+v", snap)
	}
	for _, k := range []string{KeyLastItinerary, KeyLastRequest, KeyGenerated} {
		if _, ok, _ := store.Get(ctx, k); ok {
			t.Errorf("key %s survived clear", k)
		}
	}
}
