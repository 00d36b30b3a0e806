// README: Client-side exports of an already generated itinerary (ICS calendar, PDF).
package export

import (
	"errors"
	"regexp"
	"strings"
)

// ErrNoItinerary is returned when there is nothing to export.
var ErrNoItinerary = errors.New("no itinerary to export")

var nonAlnum = regexp.MustCompile(`[^a-zA-Z0-9]`)

// Filename derives a download name from the trip name: every non-alphanumeric
// character becomes an underscore and the result is lower-cased.
func Filename(tripName, ext string) string {
	base := strings.ToLower(nonAlnum.ReplaceAllString(tripName, "_"))
	if base == "" {
		base = "itinerary"
	}
	return base + "." + ext
}
