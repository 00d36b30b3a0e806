// README: Itinerary domain types, request validation, and error taxonomy.
package itinerary

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire format of every trip date.
const DateLayout = "2006-01-02"

// MaxTripDays bounds the number of days a single generation may request.
const MaxTripDays = 30

var (
	ErrBadRequest       = errors.New("bad request")
	ErrInvalidDateRange = errors.New("end date must be on or after the start date")
	ErrTripTooLong      = fmt.Errorf("trip may not exceed %d days", MaxTripDays)

	ErrNotConfigured     = errors.New("model API key not configured")
	ErrMalformedResponse = errors.New("malformed model response: no JSON object found")
	ErrInvalidJSON       = errors.New("invalid JSON in model response")
	ErrSchemaViolation   = errors.New("model response does not match itinerary schema")
)

// Budget is the spending tier requested for a trip.
type Budget string

const (
	BudgetLow      Budget = "budget"
	BudgetModerate Budget = "moderate"
	BudgetLuxury   Budget = "luxury"
)

func (b Budget) Valid() bool {
	switch b {
	case BudgetLow, BudgetModerate, BudgetLuxury:
		return true
	default:
		return false
	}
}

// TripRequest is the body of POST /api/generate-itinerary.
type TripRequest struct {
	OriginCity      string `json:"originCity"`
	DestinationCity string `json:"destinationCity"`
	StartDate       string `json:"startDate"`
	EndDate         string `json:"endDate"`
	Interests       string `json:"interests"`
	Budget          Budget `json:"budget"`
}

// Activity is a single slot within a day ("Morning", "Afternoon", ...).
type Activity struct {
	Time        string `json:"time"`
	Description string `json:"description"`
}

type ItineraryDay struct {
	Day        string     `json:"day"`
	Summary    string     `json:"summary"`
	Flights    []string   `json:"flights"`
	Hotels     []string   `json:"hotels"`
	Activities []Activity `json:"activities"`
}

// Itinerary is the structured plan parsed from model output.
type Itinerary struct {
	TripName    string         `json:"tripName"`
	Origin      string         `json:"origin"`
	Destination string         `json:"destination"`
	StartDate   string         `json:"startDate"`
	EndDate     string         `json:"endDate"`
	Days        []ItineraryDay `json:"days"`
}

// ParseDate parses a trip date in DateLayout as midnight UTC.
func ParseDate(v string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(v), time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q, expected YYYY-MM-DD", ErrBadRequest, v)
	}
	return t, nil
}

// DurationDays returns the inclusive number of days between start and end.
// The result is zero or negative when end is before start.
func DurationDays(start, end time.Time) int {
	return int(end.Sub(start).Hours()/24) + 1
}

// Dates parses both trip dates and enforces start <= end.
func (r TripRequest) Dates() (start, end time.Time, err error) {
	if start, err = ParseDate(r.StartDate); err != nil {
		return
	}
	if end, err = ParseDate(r.EndDate); err != nil {
		return
	}
	if start.After(end) {
		err = ErrInvalidDateRange
	}
	return
}

// Normalize trims surrounding whitespace and defaults an empty budget to moderate.
func (r TripRequest) Normalize() TripRequest {
	r.OriginCity = strings.TrimSpace(r.OriginCity)
	r.DestinationCity = strings.TrimSpace(r.DestinationCity)
	r.StartDate = strings.TrimSpace(r.StartDate)
	r.EndDate = strings.TrimSpace(r.EndDate)
	r.Interests = strings.TrimSpace(r.Interests)
	if r.Budget == "" {
		r.Budget = BudgetModerate
	}
	return r
}

// Validate checks required fields, the budget tier, and the date range, and returns
// the inclusive trip duration.
func (r TripRequest) Validate() (int, error) {
	if r.OriginCity == "" || r.DestinationCity == "" {
		return 0, fmt.Errorf("%w: missing origin or destination city", ErrBadRequest)
	}
	if r.StartDate == "" || r.EndDate == "" {
		return 0, fmt.Errorf("%w: missing start or end date", ErrBadRequest)
	}
	if !r.Budget.Valid() {
		return 0, fmt.Errorf("%w: budget must be one of budget, moderate, luxury", ErrBadRequest)
	}
	start, end, err := r.Dates()
	if err != nil {
		return 0, err
	}
	days := DurationDays(start, end)
	if days > MaxTripDays {
		return 0, ErrTripTooLong
	}
	return days, nil
}

// IsRequestError reports whether err was caused by the caller's input.
func IsRequestError(err error) bool {
	return errors.Is(err, ErrBadRequest) ||
		errors.Is(err, ErrInvalidDateRange) ||
		errors.Is(err, ErrTripTooLong)
}
