package export

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	ics "github.com/arran4/golang-ical"

	"voyage/internal/modules/itinerary"
)

func sampleItinerary(days int) *itinerary.Itinerary {
	it := &itinerary.Itinerary{
		TripName:    "Sample Voyage: Tokyo Discovery",
		Origin:      "San Francisco",
		Destination: "Tokyo",
		StartDate:   "2024-09-10",
		EndDate:     "2024-09-17",
	}
	for i := 0; i < days; i++ {
		it.Days = append(it.Days, itinerary.ItineraryDay{
			Day:     fmt.Sprintf("Day %d", i+1),
			Summary: "Explore the city",
			Flights: []string{"SFO to HND JL 1"},
			Hotels:  []string{"Park Hyatt Tokyo"},
			Activities: []itinerary.Activity{
				{Time: "Morning", Description: "Visit Senso-ji Temple"},
				{Time: "Evening", Description: "Yakitori in Omoide Yokocho"},
			},
		})
	}
	return it
}

func TestFilename(t *testing.T) {
	cases := map[string]string{
		"Sample Voyage: Tokyo Discovery": "sample_voyage__tokyo_discovery.pdf",
		"Paris 2024":                     "paris_2024.pdf",
		"":                               "itinerary.pdf",
	}
	for in, want := range cases {
		if got := Filename(in, "pdf"); got != want {
			t.Errorf("Filename(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCalendar_SingleDay(t *testing.T) {
	body, err := Calendar(sampleItinerary(1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{
		"BEGIN:VCALENDAR",
		"PRODID:-//Voyage AI//Travel Itinerary//EN",
		"METHOD:PUBLISH",
		"DTSTART:20240910T000000Z",
		"DTEND:20240910T235959Z",
		"SUMMARY:Day 1 - Tokyo",
		"LOCATION:Tokyo",
		"END:VCALENDAR",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("calendar missing %q\n%s", want, body)
		}
	}
	if n := strings.Count(body, "BEGIN:VEVENT"); n != 1 {
		t.Errorf("expected 1 event, got %d", n)
	}
}

func TestCalendar_DaysAreConsecutive(t *testing.T) {
	body, err := Calendar(sampleItinerary(3))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cal, err := ics.ParseCalendar(strings.NewReader(body))
	if err != nil {
		t.Fatalf("calendar does not parse: %v", err)
	}
	events := cal.Events()
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}
	for i, ev := range events {
		start, err := ev.GetStartAt()
		if err != nil {
			t.Fatalf("event %d start: %v", i, err)
		}
		if want := fmt.Sprintf("2024-09-%d", 10+i); start.Format("2006-01-02") != want {
			t.Errorf("event %d starts %s, want %s", i, start.Format("2006-01-02"), want)
		}
		desc := ev.GetProperty(ics.ComponentPropertyDescription)
		if desc == nil || !strings.Contains(desc.Value, "Visit Senso-ji Temple") {
			t.Errorf("event %d description missing activity", i)
		}
	}
}

func TestCalendar_Deterministic(t *testing.T) {
	a, _ := Calendar(sampleItinerary(2))
	b, _ := Calendar(sampleItinerary(2))
	if a != b {
		t.Error("calendar output differs between identical calls")
	}
}

func TestCalendar_Errors(t *testing.T) {
	if _, err := Calendar(nil); !errors.Is(err, ErrNoItinerary) {
		t.Errorf("expected ErrNoItinerary, got %v", err)
	}
	it := sampleItinerary(1)
	it.StartDate = "soon"
	if _, err := Calendar(it); err == nil {
		t.Error("expected an error for an unparseable start date")
	}
}

func TestWritePDF(t *testing.T) {
	var buf bytes.Buffer
	pages, err := WritePDF(&buf, sampleItinerary(2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pages != 1 {
		t.Errorf("expected a 2-day itinerary to fit on 1 page, got %d", pages)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Error("output is not a PDF")
	}
}

func TestWritePDF_Paginates(t *testing.T) {
	var buf bytes.Buffer
	pages, err := WritePDF(&buf, sampleItinerary(30))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pages < 2 {
		t.Errorf("expected a 30-day itinerary to overflow onto several pages, got %d", pages)
	}
}

func TestWritePDF_NoItinerary(t *testing.T) {
	if _, err := WritePDF(&bytes.Buffer{}, nil); !errors.Is(err, ErrNoItinerary) {
		t.Errorf("expected ErrNoItinerary, got %v", err)
	}
}
