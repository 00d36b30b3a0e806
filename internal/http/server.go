// README: API gateway; wires module services into routes and wraps them with CORS.
package http

import (
	"net/http"

	"github.com/rs/cors"

	"voyage/internal/modules/checkout"
	"voyage/internal/modules/feed"
	"voyage/internal/modules/itinerary"
)

type ServerDeps struct {
	// Itinerary may be nil when no model credential is configured.
	Itinerary      *itinerary.Service
	Feed           *feed.Service
	Checkout       *checkout.Service
	AllowedOrigins []string
}

type Server struct {
	deps ServerDeps
}

func NewServer(deps ServerDeps) *Server {
	if deps.Feed == nil {
		deps.Feed = feed.NewService(nil)
	}
	if deps.Checkout == nil {
		deps.Checkout = checkout.NewService()
	}
	return &Server{deps: deps}
}

func (s *Server) Routes() http.Handler {
	origins := s.deps.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID", "Content-Disposition"},
	})
	return c.Handler(NewRouter(s.deps))
}
