package itinerary

import (
	"fmt"
	"strings"
)

// PlaceHint is a real place suggested to the model (hotel or attraction).
type PlaceHint struct {
	Name    string
	Address string
	Rating  float32
}

// PlaceHints carries optional map lookups for the trip.
type PlaceHints struct {
	Hotels       []PlaceHint
	Attractions  []PlaceHint
	GroundTravel string
}

func (h *PlaceHints) empty() bool {
	return h == nil || (len(h.Hotels) == 0 && len(h.Attractions) == 0 && h.GroundTravel == "")
}

// BuildPrompt renders the instructions sent to the completion model. The output
// depends only on its arguments.
func BuildPrompt(req TripRequest, durationDays int, hints *PlaceHints) string {
	var b strings.Builder

	fmt.Fprintf(&b, `Create a detailed travel itinerary in JSON format for the following trip:

Origin: %s
Destination: %s
Start Date: %s
End Date: %s
Duration: %d days
Interests: %s
Budget: %s

Please generate a JSON response that matches this exact structure:
{
  "tripName": "A creative name for this trip",
  "origin": %q,
  "destination": %q,
  "startDate": %q,
  "endDate": %q,
  "days": [
    {
      "day": "Day 1",
      "summary": "Brief summary of the day's theme",
      "flights": ["Flight suggestions or details"],
      "hotels": ["Hotel recommendations"],
      "activities": [
        {"time": "Morning", "description": "Specific activity description"},
        {"time": "Afternoon", "description": "Specific activity description"},
        {"time": "Evening", "description": "Specific activity description"}
      ]
    }
  ]
}
`,
		req.OriginCity, req.DestinationCity, req.StartDate, req.EndDate, durationDays,
		interestsOrDefault(req.Interests), req.Budget,
		req.OriginCity, req.DestinationCity, req.StartDate, req.EndDate,
	)

	if !hints.empty() {
		fmt.Fprintf(&b, "\nSuggested places in %s (prefer these when they fit):\n", req.DestinationCity)
		writeHints(&b, "Hotel", hints.Hotels)
		writeHints(&b, "Attraction", hints.Attractions)
		if hints.GroundTravel != "" {
			fmt.Fprintf(&b, "- Ground travel from %s: %s\n", req.OriginCity, hints.GroundTravel)
		}
	}

	fmt.Fprintf(&b, `
Generate exactly %d days, labelled "Day 1" through "Day %d". Use an empty array for "flights" on days without travel.
Consider the budget level (%s) when making recommendations. Tailor activities to the interests: %s.
Be specific and practical with recommendations. Include real places and activities in %s.

Return only valid JSON, no additional text.`,
		durationDays, durationDays, req.Budget, interestsOrDefault(req.Interests), req.DestinationCity)

	return b.String()
}

func writeHints(b *strings.Builder, kind string, places []PlaceHint) {
	for _, p := range places {
		fmt.Fprintf(b, "- %s: %s", kind, p.Name)
		if p.Address != "" {
			fmt.Fprintf(b, " (%s)", p.Address)
		}
		if p.Rating > 0 {
			fmt.Fprintf(b, ", rated %.1f", p.Rating)
		}
		b.WriteByte('\n')
	}
}

func interestsOrDefault(v string) string {
	if strings.TrimSpace(v) == "" {
		return "general sightseeing"
	}
	return v
}
