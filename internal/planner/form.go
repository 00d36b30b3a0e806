// README: Planner form state machine. Tracks one submission at a time and
// persists the last request and result so a restarted client picks up where it
// left off.
package planner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"

	"voyage/internal/modules/itinerary"
)

type State int

const (
	StateIdle State = iota
	StateSubmitting
	StateSuccess
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	case StateSuccess:
		return "success"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

const (
	MsgInvalidDateRange = "End date must be on or after the start date."
	msgInterrupted      = "The last generation did not finish. Retry to send it again."
)

var (
	ErrSubmitInProgress = errors.New("a submission is already in progress")
	ErrNothingToRetry   = errors.New("no previous request to retry")
)

// ValidationError is a local form error. It never reaches the network.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Generator is the part of Client the form needs.
type Generator interface {
	GenerateItinerary(ctx context.Context, body []byte) (*itinerary.Itinerary, error)
}

// Snapshot is a read-only copy of the form state.
type Snapshot struct {
	State      State
	Itinerary  *itinerary.Itinerary
	Error      string
	Validation string
	LastBody   []byte
}

type Form struct {
	gen   Generator
	store Store

	mu         sync.Mutex
	state      State
	itin       *itinerary.Itinerary
	errMsg     string
	validation string
	lastBody   []byte
}

// NewForm builds a form and restores persisted state from store.
func NewForm(ctx context.Context, gen Generator, store Store) (*Form, error) {
	if store == nil {
		store = NewMemoryStore()
	}
	f := &Form{gen: gen, store: store}
	if err := f.load(ctx); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *Form) load(ctx context.Context) error {
	body, hasBody, err := f.store.Get(ctx, KeyLastRequest)
	if err != nil {
		return fmt.Errorf("load last request: %w", err)
	}
	flag, _, err := f.store.Get(ctx, KeyGenerated)
	if err != nil {
		return fmt.Errorf("load generation flag: %w", err)
	}
	raw, hasItin, err := f.store.Get(ctx, KeyLastItinerary)
	if err != nil {
		return fmt.Errorf("load last itinerary: %w", err)
	}

	if hasItin {
		var it itinerary.Itinerary
		if err := json.Unmarshal(raw, &it); err != nil {
			log.Printf("planner: discarding unreadable saved itinerary: %v", err)
		} else {
			f.itin = &it
		}
	}
	if hasBody {
		f.lastBody = body
	}

	switch {
	case hasBody && string(flag) != "true":
		f.state = StateFailed
		f.errMsg = msgInterrupted
	case string(flag) == "true" && f.itin != nil:
		f.state = StateSuccess
	default:
		f.state = StateIdle
	}
	return nil
}

// Snapshot returns the current state.
func (f *Form) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshotLocked()
}

func (f *Form) snapshotLocked() Snapshot {
	return Snapshot{
		State:      f.state,
		Itinerary:  f.itin,
		Error:      f.errMsg,
		Validation: f.validation,
		LastBody:   append([]byte(nil), f.lastBody...),
	}
}

// Submit validates req locally and sends it. A validation failure returns a
// *ValidationError and leaves the state machine where it was.
func (f *Form) Submit(ctx context.Context, req itinerary.TripRequest) (*itinerary.Itinerary, error) {
	f.mu.Lock()
	if f.state == StateSubmitting {
		f.mu.Unlock()
		return nil, ErrSubmitInProgress
	}
	req = req.Normalize()
	if _, err := req.Validate(); err != nil {
		verr := &ValidationError{Message: validationMessage(err)}
		f.validation = verr.Message
		f.mu.Unlock()
		return nil, verr
	}
	f.validation = ""
	f.mu.Unlock()

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	return f.send(ctx, body)
}

// Retry resends the last request body unchanged.
func (f *Form) Retry(ctx context.Context) (*itinerary.Itinerary, error) {
	f.mu.Lock()
	body := f.lastBody
	f.mu.Unlock()
	if body == nil {
		return nil, ErrNothingToRetry
	}
	return f.send(ctx, body)
}

func (f *Form) send(ctx context.Context, body []byte) (*itinerary.Itinerary, error) {
	f.mu.Lock()
	if f.state == StateSubmitting {
		f.mu.Unlock()
		return nil, ErrSubmitInProgress
	}
	prev := f.snapshotLocked()
	f.state = StateSubmitting
	f.errMsg = ""
	f.lastBody = body
	f.persistLocked(ctx)
	f.mu.Unlock()

	it, err := f.gen.GenerateItinerary(ctx, body)

	f.mu.Lock()
	defer f.mu.Unlock()
	// A cancelled submission is not a failure the user should see. A deadline
	// is, so it falls through to Failed.
	if err != nil && (IsCanceled(err) || errors.Is(ctx.Err(), context.Canceled)) {
		f.state = prev.State
		f.errMsg = prev.Error
		f.lastBody = prev.LastBody
		if len(f.lastBody) == 0 {
			f.lastBody = nil
		}
		f.persistLocked(context.WithoutCancel(ctx))
		return nil, err
	}
	if err != nil {
		f.state = StateFailed
		f.errMsg = errorMessage(err)
		f.persistLocked(context.WithoutCancel(ctx))
		return nil, err
	}
	f.state = StateSuccess
	f.itin = it
	f.persistLocked(ctx)
	return it, nil
}

// Clear drops all persisted state and returns the form to Idle.
func (f *Form) Clear(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == StateSubmitting {
		return ErrSubmitInProgress
	}
	if err := f.store.Delete(ctx, KeyLastItinerary, KeyLastRequest, KeyGenerated); err != nil {
		return fmt.Errorf("clear saved state: %w", err)
	}
	f.state = StateIdle
	f.itin = nil
	f.errMsg = ""
	f.validation = ""
	f.lastBody = nil
	return nil
}

// persistLocked mirrors the in-memory state into the store. Write failures are
// logged; the in-memory state stays authoritative.
func (f *Form) persistLocked(ctx context.Context) {
	flag := "false"
	if f.state == StateSuccess {
		flag = "true"
	}
	if err := f.store.Set(ctx, KeyGenerated, []byte(flag)); err != nil {
		log.Printf("planner: save generation flag: %v", err)
	}

	if f.lastBody != nil {
		if err := f.store.Set(ctx, KeyLastRequest, f.lastBody); err != nil {
			log.Printf("planner: save last request: %v", err)
		}
	} else if err := f.store.Delete(ctx, KeyLastRequest); err != nil {
		log.Printf("planner: remove last request: %v", err)
	}

	if f.itin == nil {
		return
	}
	raw, err := json.Marshal(f.itin)
	if err != nil {
		log.Printf("planner: encode itinerary: %v", err)
		return
	}
	if err := f.store.Set(ctx, KeyLastItinerary, raw); err != nil {
		log.Printf("planner: save itinerary: %v", err)
	}
}

func validationMessage(err error) string {
	if errors.Is(err, itinerary.ErrInvalidDateRange) {
		return MsgInvalidDateRange
	}
	return err.Error()
}

func errorMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}
