package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/samber/lo"

	"voyage/internal/modules/itinerary"
)

const (
	calendarProductID = "-//Voyage AI//Travel Itinerary//EN"
	dayEnd            = 23*time.Hour + 59*time.Minute + 59*time.Second
)

// Calendar renders one all-day VEVENT per itinerary day. Event i starts at
// startDate+i 00:00:00 UTC and ends at 23:59:59 the same day. The output depends
// only on the itinerary.
func Calendar(it *itinerary.Itinerary) (string, error) {
	if it == nil {
		return "", ErrNoItinerary
	}
	start, err := itinerary.ParseDate(it.StartDate)
	if err != nil {
		return "", fmt.Errorf("calendar export: %w", err)
	}

	cal := ics.NewCalendar()
	cal.SetVersion("2.0")
	cal.SetProductId(calendarProductID)
	cal.SetCalscale("GREGORIAN")
	cal.SetMethod(ics.MethodPublish)
	cal.SetXWRCalName(it.TripName)
	cal.SetXWRCalDesc(fmt.Sprintf("Travel itinerary for %s to %s", it.Origin, it.Destination))

	uidBase := strings.TrimSuffix(Filename(it.TripName, "ics"), ".ics")
	for i, day := range it.Days {
		date := start.AddDate(0, 0, i)

		event := cal.AddEvent(fmt.Sprintf("%s-day-%d@voyage", uidBase, i+1))
		event.SetDtStampTime(start)
		event.SetStartAt(date)
		event.SetEndAt(date.Add(dayEnd))
		event.SetSummary(fmt.Sprintf("%s - %s", day.Day, it.Destination))
		event.SetLocation(it.Destination)
		event.SetDescription(dayDescription(day))
	}
	return cal.Serialize(), nil
}

// WriteCalendar writes Calendar(it) to w.
func WriteCalendar(w io.Writer, it *itinerary.Itinerary) error {
	body, err := Calendar(it)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, body)
	return err
}

func dayDescription(day itinerary.ItineraryDay) string {
	var b strings.Builder
	b.WriteString(day.Summary)
	b.WriteString("\n\n")
	if len(day.Flights) > 0 {
		b.WriteString("Flights: " + strings.Join(day.Flights, ", ") + "\n")
	}
	if len(day.Hotels) > 0 {
		b.WriteString("Hotels: " + strings.Join(day.Hotels, ", ") + "\n")
	}
	b.WriteString("Activities:\n")
	b.WriteString(strings.Join(lo.Map(day.Activities, func(a itinerary.Activity, _ int) string {
		return a.Time + ": " + a.Description
	}), "\n"))
	return b.String()
}
