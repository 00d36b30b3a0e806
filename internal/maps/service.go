// README: Google Maps lookups that ground the itinerary prompt in real places.
package maps

import (
	"context"
	"fmt"

	"github.com/samber/lo"
	"googlemaps.github.io/maps"

	"voyage/internal/modules/itinerary"
)

// Service wraps a single Google Maps client for Places and Directions lookups.
type Service struct {
	client *maps.Client
}

// NewService creates a new Service with the given API Key.
func NewService(apiKey string, opts ...maps.ClientOption) (*Service, error) {
	client, err := maps.NewClient(append([]maps.ClientOption{maps.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &Service{client: client}, nil
}

// SuggestPlaces implements itinerary.PlaceFinder. Each lookup is best effort; an
// error is returned only when every lookup fails.
func (s *Service) SuggestPlaces(ctx context.Context, req itinerary.TripRequest) (*itinerary.PlaceHints, error) {
	hotels, hotelErr := s.Search(ctx, req.DestinationCity, hotelQuery(req.Budget))
	attractions, attrErr := s.Search(ctx, req.DestinationCity, "top tourist attractions")
	ground, routeErr := s.GroundTravel(ctx, req.OriginCity, req.DestinationCity)
	if hotelErr != nil && attrErr != nil && routeErr != nil {
		return nil, hotelErr
	}

	return &itinerary.PlaceHints{
		Hotels:       lo.Map(hotels, toHint),
		Attractions:  lo.Map(attractions, toHint),
		GroundTravel: ground,
	}, nil
}

func toHint(p Place, _ int) itinerary.PlaceHint {
	return itinerary.PlaceHint{Name: p.Name, Address: p.Address, Rating: p.Rating}
}
