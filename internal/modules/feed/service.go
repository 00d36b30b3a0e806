// README: Social feed of traveller posts. Posts are demo data until a Bluesky
// account is wired in.
package feed

import (
	"context"
	"strings"
	"time"
)

// DefaultTag is used when the caller does not pass one.
const DefaultTag = "#travel"

// Post is a single social post.
type Post struct {
	ID           string    `json:"id"`
	AuthorHandle string    `json:"authorHandle"`
	Content      string    `json:"content"`
	PublishedAt  time.Time `json:"publishedAt"`
}

// Response is the wire shape of the feed endpoint.
type Response struct {
	Posts []Post `json:"posts"`
}

type Service struct {
	now func() time.Time
}

// NewService returns a feed service. A nil clock uses time.Now.
func NewService(now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{now: now}
}

// Posts returns recent posts for tag.
func (s *Service) Posts(ctx context.Context, tag string) ([]Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if tag == "" {
		tag = DefaultTag
	}
	now := s.now().UTC()
	return []Post{
		{
			ID:           "demo-1",
			AuthorHandle: "globetrotter",
			Content:      "Just touched down in " + strings.Replace(tag, "#", "", 1) + "! Voyage AI itinerary nailed it.",
			PublishedAt:  now,
		},
		{
			ID:           "demo-2",
			AuthorHandle: "foodie-files",
			Content:      "Tasting street food gems thanks to Voyage AI recommendations!",
			PublishedAt:  now.Add(-time.Hour),
		},
	}, nil
}
