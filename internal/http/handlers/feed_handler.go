// README: Social feed handler.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"voyage/internal/modules/feed"
)

type FeedHandler struct {
	svc *feed.Service
}

func NewFeedHandler(svc *feed.Service) *FeedHandler {
	return &FeedHandler{svc: svc}
}

// Posts handles GET /api/get-bluesky-posts?tag=.
func (h *FeedHandler) Posts(c *gin.Context) {
	if !allowMethods(c, http.MethodGet) {
		return
	}
	posts, err := h.svc.Posts(c.Request.Context(), c.DefaultQuery("tag", feed.DefaultTag))
	if err != nil {
		logf(c, "feed: %v", err)
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(c, http.StatusOK, feed.Response{Posts: posts})
}
