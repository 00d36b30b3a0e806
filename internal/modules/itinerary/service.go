package itinerary

import (
	"context"
	"fmt"
	"log"
	"time"
)

// Generator returns raw model text for a prompt.
type Generator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// PlaceFinder looks up real places at the destination to ground the prompt.
type PlaceFinder interface {
	SuggestPlaces(ctx context.Context, req TripRequest) (*PlaceHints, error)
}

const (
	// DefaultGenerateTimeout bounds a single completion call.
	DefaultGenerateTimeout = 90 * time.Second
	// DefaultPlacesTimeout bounds the whole Places lookup. Hints are optional,
	// so a slow lookup is dropped rather than waited on.
	DefaultPlacesTimeout = 5 * time.Second
)

// Service orchestrates prompt building, completion, and response parsing.
// It holds no per-request state.
type Service struct {
	gen           Generator
	places        PlaceFinder
	timeout       time.Duration
	placesTimeout time.Duration
}

// Option customises a Service.
type Option func(*Service)

// WithPlaceFinder enables Places enrichment of the prompt.
func WithPlaceFinder(pf PlaceFinder) Option {
	return func(s *Service) { s.places = pf }
}

// WithTimeout overrides DefaultGenerateTimeout. Non-positive values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithPlacesTimeout overrides DefaultPlacesTimeout. Non-positive values are ignored.
func WithPlacesTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.placesTimeout = d
		}
	}
}

// NewService returns ErrNotConfigured when no generator is available.
func NewService(gen Generator, opts ...Option) (*Service, error) {
	if gen == nil {
		return nil, ErrNotConfigured
	}
	s := &Service{gen: gen, timeout: DefaultGenerateTimeout, placesTimeout: DefaultPlacesTimeout}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Generate validates the request, asks the model for an itinerary, and returns
// the parsed, schema-checked result. Steps run strictly in sequence.
func (s *Service) Generate(ctx context.Context, req TripRequest) (*Itinerary, error) {
	if s == nil || s.gen == nil {
		return nil, ErrNotConfigured
	}

	req = req.Normalize()
	days, err := req.Validate()
	if err != nil {
		return nil, err
	}

	hints := s.lookupPlaces(ctx, req)
	prompt := BuildPrompt(req, days, hints)

	genCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	raw, err := s.gen.GenerateContent(genCtx, prompt)
	if err != nil {
		return nil, err
	}

	it, err := ParseItinerary(raw)
	if err != nil {
		return nil, err
	}
	anchorToRequest(it, req)
	return reconcileDays(it, days)
}

func (s *Service) lookupPlaces(ctx context.Context, req TripRequest) *PlaceHints {
	if s.places == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, s.placesTimeout)
	defer cancel()

	hints, err := s.places.SuggestPlaces(ctx, req)
	if err != nil {
		log.Printf("itinerary: places lookup for %q skipped: %v", req.DestinationCity, err)
		return nil
	}
	return hints
}

// anchorToRequest makes the trip endpoints and dates the ones the caller asked
// for, so exports start on the requested day whatever the model wrote.
func anchorToRequest(it *Itinerary, req TripRequest) {
	if it.StartDate != req.StartDate || it.EndDate != req.EndDate {
		log.Printf("itinerary: model dated the trip %s..%s, using requested %s..%s",
			it.StartDate, it.EndDate, req.StartDate, req.EndDate)
	}
	it.Origin = req.OriginCity
	it.Destination = req.DestinationCity
	it.StartDate = req.StartDate
	it.EndDate = req.EndDate
}

// reconcileDays truncates surplus days and rejects itineraries that come back short.
func reconcileDays(it *Itinerary, want int) (*Itinerary, error) {
	switch {
	case len(it.Days) > want:
		log.Printf("itinerary: model returned %d days, truncating to %d", len(it.Days), want)
		it.Days = it.Days[:want]
	case len(it.Days) < want:
		return nil, fmt.Errorf("%w: expected %d days, got %d", ErrSchemaViolation, want, len(it.Days))
	}
	return it, nil
}
