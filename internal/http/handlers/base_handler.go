// README: Base handler utilities (JSON helpers, method checks, error mapping).
package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"voyage/internal/http/middleware"
	"voyage/internal/modules/itinerary"
)

// maxBodyBytes caps request bodies; the largest is a 30-day itinerary export.
const maxBodyBytes = 1 << 20

// statusClientClosed is logged and returned when the caller hangs up mid-request.
const statusClientClosed = 499

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

// allowMethods answers 405 with an Allow header unless the request uses one of methods.
func allowMethods(c *gin.Context, methods ...string) bool {
	for _, m := range methods {
		if c.Request.Method == m {
			return true
		}
	}
	c.Header("Allow", strings.Join(methods, ", "))
	writeError(c, http.StatusMethodNotAllowed, "Method Not Allowed")
	return false
}

// bindJSON decodes a size-limited JSON body into v.
func bindJSON(c *gin.Context, v any) bool {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)
	if err := c.ShouldBindJSON(v); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return false
	}
	return true
}

func logf(c *gin.Context, format string, args ...any) {
	log.Printf("[%s] "+format, append([]any{c.GetString(middleware.RequestIDKey)}, args...)...)
}

// writeItineraryError maps generation failures to a status and logs each kind distinctly.
func writeItineraryError(c *gin.Context, err error) {
	switch {
	case itinerary.IsRequestError(err):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, itinerary.ErrNotConfigured):
		logf(c, "generate-itinerary: configuration error: %v", err)
		writeError(c, http.StatusInternalServerError, err.Error())
	case errors.Is(c.Request.Context().Err(), context.Canceled):
		logf(c, "generate-itinerary: client went away: %v", err)
		c.AbortWithStatus(statusClientClosed)
	case errors.Is(err, itinerary.ErrMalformedResponse), errors.Is(err, itinerary.ErrInvalidJSON):
		logf(c, "generate-itinerary: extraction error: %v", err)
		writeError(c, http.StatusInternalServerError, err.Error())
	case errors.Is(err, itinerary.ErrSchemaViolation):
		logf(c, "generate-itinerary: schema error: %v", err)
		writeError(c, http.StatusInternalServerError, err.Error())
	default:
		logf(c, "generate-itinerary: upstream generation error: %v", err)
		writeError(c, http.StatusInternalServerError, err.Error())
	}
}
