// README: Store checkout handlers.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"voyage/internal/modules/checkout"
)

type CheckoutHandler struct {
	svc *checkout.Service
}

func NewCheckoutHandler(svc *checkout.Service) *CheckoutHandler {
	return &CheckoutHandler{svc: svc}
}

// Create handles POST /api/stripe-checkout.
func (h *CheckoutHandler) Create(c *gin.Context) {
	if !allowMethods(c, http.MethodPost) {
		return
	}
	var req checkout.Request
	if !bindJSON(c, &req) {
		return
	}
	session, err := h.svc.CreateSession(c.Request.Context(), req.ProductID)
	if err != nil {
		if errors.Is(err, checkout.ErrMissingProduct) {
			writeError(c, http.StatusBadRequest, "Missing productId")
			return
		}
		logf(c, "checkout: %v", err)
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(c, http.StatusOK, session)
}

// Products handles GET /api/products.
func (h *CheckoutHandler) Products(c *gin.Context) {
	if !allowMethods(c, http.MethodGet) {
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"products": h.svc.Products()})
}
