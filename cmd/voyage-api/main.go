// README: Entry point; loads config, wires the model provider and services, serves HTTP until signalled.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"voyage/internal/ai"
	"voyage/internal/config"
	httptransport "voyage/internal/http"
	"voyage/internal/maps"
	"voyage/internal/modules/checkout"
	"voyage/internal/modules/feed"
	"voyage/internal/modules/itinerary"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if os.Getenv(gin.EnvGinMode) == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	itinerarySvc, closeAI := newItineraryService(ctx, cfg)
	defer closeAI()

	handler := httptransport.NewServer(httptransport.ServerDeps{
		Itinerary:      itinerarySvc,
		Feed:           feed.NewService(nil),
		Checkout:       checkout.NewService(),
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
	})

	server := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           handler.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	log.Printf("voyage api listening on %s (provider %s)", cfg.HTTP.Addr, cfg.AI.Provider)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}

// newItineraryService returns a nil service when the model credential is
// missing so the server still starts and answers with a configuration error.
func newItineraryService(ctx context.Context, cfg config.Config) (*itinerary.Service, func()) {
	noop := func() {}

	gen, err := ai.New(ctx, ai.Settings{
		Provider:    cfg.AI.Provider,
		APIKey:      cfg.AI.APIKey(),
		Model:       cfg.AI.Model(),
		Temperature: cfg.AI.Temperature,
	})
	if err != nil {
		log.Printf("warning: itinerary generation disabled: %v", err)
		return nil, noop
	}
	closeAI := func() {
		if err := gen.Close(); err != nil {
			log.Printf("close model client: %v", err)
		}
	}

	opts := []itinerary.Option{itinerary.WithTimeout(cfg.AI.Timeout)}
	if cfg.Maps.APIKey != "" {
		places, err := maps.NewService(cfg.Maps.APIKey)
		if err != nil {
			log.Printf("warning: places enrichment disabled: %v", err)
		} else {
			opts = append(opts, itinerary.WithPlaceFinder(places), itinerary.WithPlacesTimeout(cfg.Maps.Timeout))
		}
	}

	svc, err := itinerary.NewService(gen, opts...)
	if err != nil {
		log.Printf("warning: itinerary generation disabled: %v", err)
		closeAI()
		return nil, noop
	}
	return svc, closeAI
}
