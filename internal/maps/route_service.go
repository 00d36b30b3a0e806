package maps

import (
	"context"
	"fmt"
	"time"

	"googlemaps.github.io/maps"
)

// GroundTravel describes the driving option between two cities, e.g.
// "about 6h10m by car (560 km)". Routes that do not exist (across oceans)
// come back as an error.
func (s *Service) GroundTravel(ctx context.Context, origin, destination string) (string, error) {
	r := &maps.DirectionsRequest{
		Origin:      origin,
		Destination: destination,
		Mode:        maps.TravelModeDriving,
		Language:    "en",
	}

	routes, _, err := s.client.Directions(ctx, r)
	if err != nil {
		return "", fmt.Errorf("maps api error: %w", err)
	}

	if len(routes) == 0 || len(routes[0].Legs) == 0 {
		return "", fmt.Errorf("no route found")
	}

	leg := routes[0].Legs[0]
	return fmt.Sprintf("about %s by car (%s)", humanDuration(leg.Duration), leg.Distance.HumanReadable), nil
}

// humanDuration renders d rounded to minutes without the trailing "0s".
func humanDuration(d time.Duration) string {
	d = d.Round(time.Minute)
	h := d / time.Hour
	m := (d % time.Hour) / time.Minute
	switch {
	case h == 0:
		return fmt.Sprintf("%dm", m)
	case m == 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dh%dm", h, m)
	}
}
