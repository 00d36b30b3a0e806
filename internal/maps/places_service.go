package maps

import (
	"context"
	"fmt"
	"strings"

	"googlemaps.github.io/maps"

	"voyage/internal/modules/itinerary"
)

const (
	minRating  = 4.0
	maxResults = 3
)

// Place represents a simplified location result.
type Place struct {
	Name             string
	Address          string
	Rating           float32
	PlaceID          string
	UserRatingsTotal int
}

// hotelQuery phrases the hotel search according to the budget tier.
func hotelQuery(budget itinerary.Budget) string {
	switch budget {
	case itinerary.BudgetLow:
		return "affordable hotels"
	case itinerary.BudgetLuxury:
		return "luxury hotels"
	default:
		return "hotels"
	}
}

// Search runs a text search in destination and returns up to maxResults well rated places.
func (s *Service) Search(ctx context.Context, destination, query string) ([]Place, error) {
	r := &maps.TextSearchRequest{
		Query:    fmt.Sprintf("%s in %s", query, destination),
		Language: "en",
	}

	resp, err := s.client.TextSearch(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("places api error: %w", err)
	}

	var results []Place
	seen := make(map[string]struct{})
	for _, result := range resp.Results {
		if result.Rating < minRating { // Filter for high quality
			continue
		}
		if _, dup := seen[result.PlaceID]; dup {
			continue
		}
		seen[result.PlaceID] = struct{}{}

		results = append(results, Place{
			Name:             strings.TrimSpace(result.Name),
			Address:          result.FormattedAddress,
			Rating:           result.Rating,
			PlaceID:          result.PlaceID,
			UserRatingsTotal: result.UserRatingsTotal,
		})

		if len(results) >= maxResults {
			break
		}
	}
	return results, nil
}
