package playstore

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppDetails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/apps/com.example.app", r.URL.Path)
		assert.Equal(t, "us", r.URL.Query().Get("country"))

		json.NewEncoder(w).Encode(appDetailsResponse{
			AppID:     "com.example.app",
			Title:     "Example",
			Developer: "Example Inc",
			Genre:     "Finance",
			Score:     floatPtr(4.2),
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	meta, err := client.AppDetails(context.Background(), "com.example.app", "us")

	assert.NoError(t, err)
	assert.Equal(t, "com.example.app", meta.AppID)
	assert.Equal(t, "Example", meta.Title)
	assert.Equal(t, "Finance", meta.Category)
	assert.Equal(t, 4.2, *meta.Score)
}

func TestAppDetailsNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	meta, err := client.AppDetails(context.Background(), "com.unknown.app", "us")

	assert.NoError(t, err)
	assert.Nil(t, meta)
}

func TestAppDetailsServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.AppDetails(context.Background(), "com.example.app", "us")

	assert.Error(t, err)
}

func TestReviewsPagination(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		assert.Equal(t, "/apps/com.example.app/reviews", r.URL.Path)
		assert.Equal(t, "newest", r.URL.Query().Get("sort"))

		switch requests {
		case 1:
			assert.Equal(t, "200", r.URL.Query().Get("count"))
			assert.Empty(t, r.URL.Query().Get("token"))
			json.NewEncoder(w).Encode(reviewsResponse{
				Reviews:   makeReviews(200),
				NextToken: "page2",
			})
		case 2:
			assert.Equal(t, "50", r.URL.Query().Get("count"))
			assert.Equal(t, "page2", r.URL.Query().Get("token"))
			json.NewEncoder(w).Encode(reviewsResponse{
				Reviews: makeReviews(50),
			})
		default:
			t.Errorf("unexpected request %d", requests)
		}
	}))
	defer server.Close()

	client := NewClient(server.URL)
	reviews, err := client.Reviews(context.Background(), "com.example.app", "us", 250)

	assert.NoError(t, err)
	assert.Len(t, reviews, 250)
	assert.Equal(t, 2, requests)
	assert.Equal(t, "review 0", reviews[0].Content)
	assert.Equal(t, "2024-03-01 10:00:00", reviews[0].PostedAt)
}

func TestReviewsShortPageEndsStream(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Fewer reviews than requested, token set anyway.
		json.NewEncoder(w).Encode(reviewsResponse{
			Reviews:   makeReviews(10),
			NextToken: "ignored",
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	reviews, err := client.Reviews(context.Background(), "com.example.app", "us", 500)

	assert.NoError(t, err)
	assert.Len(t, reviews, 10)
}

func TestSearch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "budget tracker", r.URL.Query().Get("q"))

		json.NewEncoder(w).Encode(searchResponse{
			Results: []appDetailsResponse{
				{AppID: "com.example.one", Title: "One"},
				{AppID: "com.example.two", Title: "Two"},
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	apps, err := client.Search(context.Background(), "budget tracker", "us")

	assert.NoError(t, err)
	assert.Len(t, apps, 2)
	assert.Equal(t, "com.example.one", apps[0].AppID)
}

func makeReviews(n int) []reviewRecord {
	reviews := make([]reviewRecord, n)
	for i := range reviews {
		reviews[i] = reviewRecord{
			Content: fmt.Sprintf("review %d", i),
			At:      "2024-03-01 10:00:00",
			Score:   3,
		}
	}
	return reviews
}

func floatPtr(f float64) *float64 {
	return &f
}
