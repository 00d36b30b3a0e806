package feed

import (
	"context"
	"testing"
	"time"
)

func TestPosts(t *testing.T) {
	fixed := time.Date(2024, 9, 10, 12, 0, 0, 0, time.UTC)
	svc := NewService(func() time.Time { return fixed })

	posts, err := svc.Posts(context.Background(), "#tokyo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("expected 2 posts, got %d", len(posts))
	}
	if posts[0].Content != "Just touched down in tokyo! Voyage AI itinerary nailed it." {
		t.Errorf("unexpected content %q", posts[0].Content)
	}
	if !posts[0].PublishedAt.Equal(fixed) || !posts[1].PublishedAt.Equal(fixed.Add(-time.Hour)) {
		t.Errorf("unexpected timestamps %v, %v", posts[0].PublishedAt, posts[1].PublishedAt)
	}
}

func TestPosts_DefaultTag(t *testing.T) {
	posts, err := NewService(nil).Posts(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if posts[0].Content != "Just touched down in travel! Voyage AI itinerary nailed it." {
		t.Errorf("unexpected content %q", posts[0].Content)
	}
}

func TestPosts_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewService(nil).Posts(ctx, ""); err == nil {
		t.Error("expected an error for a cancelled context")
	}
}
