// README: Checkout for digital travel products. Sessions are mocked until a
// payment provider key is configured.
package checkout

import (
	"context"
	"errors"
	"strings"

	"github.com/samber/lo"

	"voyage/internal/types"
)

var ErrMissingProduct = errors.New("missing productId")

// Product is a digital good offered in the store.
type Product struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Price       types.Money `json:"price"`
	PriceLabel  string      `json:"priceLabel"`
}

// Request is the checkout request body.
type Request struct {
	ProductID string `json:"productId"`
}

// Session is the checkout response body.
type Session struct {
	CheckoutURL string `json:"checkoutUrl"`
}

const mockSessionURL = "https://checkout.stripe.com/pay/mock-session-for-"

var catalog = []Product{
	{ID: "packing-list", Name: "Custom Packing List", Description: "AI-curated packing essentials tailored to your itinerary and preferences.", Price: types.USD(19)},
	{ID: "insider-guide", Name: "Insider City Guide", Description: "Handpicked dining, nightlife, and cultural experiences from trusted locals.", Price: types.USD(29)},
	{ID: "flight-watch", Name: "Flight Deal Watch", Description: "Real-time alerts for fare drops on your preferred routes and travel dates.", Price: types.USD(15)},
}

type Service struct{}

func NewService() *Service {
	return &Service{}
}

// Products lists the store catalog.
func (s *Service) Products() []Product {
	return lo.Map(catalog, func(p Product, _ int) Product {
		p.PriceLabel = p.Price.String()
		return p
	})
}

// CreateSession starts a checkout for productID. Unknown ids are accepted so
// the storefront can add products without a server release.
func (s *Service) CreateSession(ctx context.Context, productID string) (*Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(productID) == "" {
		return nil, ErrMissingProduct
	}
	return &Session{CheckoutURL: mockSessionURL + productID}, nil
}
