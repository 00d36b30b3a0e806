// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"voyage/internal/http/handlers"
	"voyage/internal/http/middleware"
)

// NewRouter builds the gin engine. Method checks live in the handlers so a
// wrong method gets a 405 with an Allow header instead of a 404.
func NewRouter(deps ServerDeps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logging(), middleware.Recovery())

	itineraryHandler := handlers.NewItineraryHandler(deps.Itinerary)
	r.Any("/api/generate-itinerary", itineraryHandler.Generate)

	exportHandler := handlers.NewExportHandler()
	r.Any("/api/itinerary/export/ics", exportHandler.Calendar)
	r.Any("/api/itinerary/export/pdf", exportHandler.PDF)

	feedHandler := handlers.NewFeedHandler(deps.Feed)
	r.Any("/api/get-bluesky-posts", feedHandler.Posts)

	checkoutHandler := handlers.NewCheckoutHandler(deps.Checkout)
	r.Any("/api/stripe-checkout", checkoutHandler.Create)
	r.Any("/api/products", checkoutHandler.Products)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	return r
}
