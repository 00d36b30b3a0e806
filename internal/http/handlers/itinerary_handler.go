// README: Itinerary generation handler.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"voyage/internal/modules/itinerary"
)

type ItineraryHandler struct {
	svc *itinerary.Service
}

// NewItineraryHandler accepts a nil service; every request then fails with a
// configuration error instead of reaching a model.
func NewItineraryHandler(svc *itinerary.Service) *ItineraryHandler {
	return &ItineraryHandler{svc: svc}
}

type generateResponse struct {
	Itinerary *itinerary.Itinerary `json:"itinerary"`
}

// Generate handles POST /api/generate-itinerary.
func (h *ItineraryHandler) Generate(c *gin.Context) {
	if !allowMethods(c, http.MethodPost) {
		return
	}
	if h.svc == nil {
		writeItineraryError(c, itinerary.ErrNotConfigured)
		return
	}

	var req itinerary.TripRequest
	if !bindJSON(c, &req) {
		return
	}

	it, err := h.svc.Generate(c.Request.Context(), req)
	if err != nil {
		writeItineraryError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, generateResponse{Itinerary: it})
}
