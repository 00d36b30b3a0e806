package planner

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClient_GenerateItinerary(t *testing.T) {
	var gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/generate-itinerary" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		raw, _ := io.ReadAll(r.Body)
		gotBody = string(raw)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"itinerary":{"tripName":"T","destination":"Tokyo","days":[]}}`))
	}))
	defer srv.Close()

	it, err := NewClient(srv.URL+"/", nil).GenerateItinerary(context.Background(), []byte(`{"a":1}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotBody != `{"a":1}` {
		t.Errorf("body was re-encoded: %s", gotBody)
	}
	if it.Destination != "Tokyo" {
		t.Errorf("unexpected itinerary %+v", it)
	}
}

func TestClient_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"model API key not configured"}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, nil).GenerateItinerary(context.Background(), []byte(`{}`))
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.Status != http.StatusInternalServerError || apiErr.Message != "model API key not configured" {
		t.Errorf("unexpected error %+v", apiErr)
	}
}

func TestClient_Cancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewClient(srv.URL, nil).GenerateItinerary(ctx, []byte(`{}`))
	if !IsCanceled(err) {
		t.Errorf("expected a cancellation error, got %v", err)
	}
}

func TestClient_FetchPostsAndCheckout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/get-bluesky-posts":
			if r.URL.Query().Get("tag") != "#kyoto" {
				t.Errorf("unexpected tag %q", r.URL.Query().Get("tag"))
			}
			_, _ = w.Write([]byte(`{"posts":[{"id":"demo-1","authorHandle":"globetrotter","content":"hi","publishedAt":"2024-09-10T12:00:00Z"}]}`))
		case "/api/stripe-checkout":
			_, _ = w.Write([]byte(`{"checkoutUrl":"https://checkout.stripe.com/pay/mock-session-for-flight-watch"}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	posts, err := c.FetchPosts(context.Background(), "#kyoto")
	if err != nil || len(posts) != 1 || posts[0].AuthorHandle != "globetrotter" {
		t.Errorf("unexpected posts %+v, err %v", posts, err)
	}
	url, err := c.Checkout(context.Background(), "flight-watch")
	if err != nil || url != "https://checkout.stripe.com/pay/mock-session-for-flight-watch" {
		t.Errorf("unexpected checkout url %q, err %v", url, err)
	}
}
