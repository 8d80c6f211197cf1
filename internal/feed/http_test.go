// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package feed_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/mdrss/internal/feed"
	"github.com/taibuivan/mdrss/internal/platform/apperr"
	"github.com/taibuivan/mdrss/internal/platform/respond"
)

type memoryCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	getErr  error
	sets    int
}

func (c *memoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	body, ok := c.entries[key]
	return body, ok, nil
}

func (c *memoryCache) Set(_ context.Context, key string, body []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.entries == nil {
		c.entries = map[string][]byte{}
	}
	c.entries[key] = body
	c.sets++
	return nil
}

func newTestRouter(fixture *fixture, cache feed.Cache, rep *recordingReporter) http.Handler {
	handler := feed.NewHandler(fixture.service(), cache, rep, feed.NewMetrics(prometheus.NewRegistry()), feed.HandlerOptions{
		PublicBaseURL: "https://mdrss.example.org",
		CacheTTL:      time.Minute,
	})

	router := chi.NewRouter()
	router.Mount("/feed", handler.Routes())
	return router
}

func get(router http.Handler, target string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, target, nil))
	return recorder
}

/*
TestGetFeed_Formats verifies status and content type per format.
*/
func TestGetFeed_Formats(t *testing.T) {
	tests := []struct {
		name        string
		target      string
		contentType string
		contains    string
	}{
		{"default_rss", "/feed?q=manga:m1", "application/xml", "<rss"},
		{"explicit_rss", "/feed?q=manga:m1&format=rss2", "application/xml", "<generator>MDRSS</generator>"},
		{"atom", "/feed?q=manga:m1&format=atom1", "application/xml", "http://www.w3.org/2005/Atom"},
		{"json", "/feed?q=manga:m1&format=json1", "application/feed+json", `"version"`},
		{"unknown_format", "/feed?q=manga:m1&format=csv", "application/xml", "<rss"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := get(newTestRouter(newFixture(), nil, &recordingReporter{}), tt.target)

			assert.Equal(t, http.StatusOK, recorder.Code)
			assert.Equal(t, tt.contentType, recorder.Header().Get("Content-Type"))
			assert.Contains(t, recorder.Body.String(), tt.contains)
			assert.Contains(t, recorder.Body.String(), "MDRSS - Fallback Title")
		})
	}
}

/*
TestGetFeed_FeedLinkUsesPublicBaseURL verifies the feed link carries the request URI.
*/
func TestGetFeed_FeedLinkUsesPublicBaseURL(t *testing.T) {
	recorder := get(newTestRouter(newFixture(), nil, &recordingReporter{}), "/feed?q=tl:fr&format=json1")
	require.Equal(t, http.StatusOK, recorder.Code)

	var document struct {
		HomePageURL string `json:"home_page_url"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &document))
	assert.Equal(t, "https://mdrss.example.org/feed?q=tl:fr&format=json1", document.HomePageURL)
}

/*
TestGetFeed_ValidationErrors verifies 400 responses for unusable queries.
*/
func TestGetFeed_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		target  string
		message string
	}{
		{"missing_q", "/feed", "No actionable queries"},
		{"empty_q", "/feed?q=&q=,", "No actionable queries"},
		{"too_many", "/feed?q=tl:a&q=tl:b&q=tl:c&q=tl:d&q=tl:e&q=tl:f&q=tl:g&q=tl:h&q=tl:i&q=tl:j&q=tl:k", "Too many queries in a single request (max 10)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rep := &recordingReporter{}
			fixture := newFixture()
			recorder := get(newTestRouter(fixture, nil, rep), tt.target)

			assert.Equal(t, http.StatusBadRequest, recorder.Code)

			var envelope respond.ErrorEnvelope
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
			assert.Equal(t, "VALIDATION_ERROR", envelope.Code)
			assert.Equal(t, tt.message, envelope.Error)

			assert.Empty(t, fixture.chapters.filters)
			assert.Empty(t, rep.errs)
		})
	}
}

/*
TestGetFeed_StoreFailure verifies that internal errors are reported but not leaked.
*/
func TestGetFeed_StoreFailure(t *testing.T) {
	fixture := newFixture()
	fixture.chapters.err = apperr.Internal(errors.New("pq: relation does not exist"))
	rep := &recordingReporter{}

	recorder := get(newTestRouter(fixture, nil, rep), "/feed?q=manga:m1")

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.NotContains(t, recorder.Body.String(), "relation")

	var envelope respond.ErrorEnvelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	assert.Equal(t, "INTERNAL_ERROR", envelope.Code)
	assert.Len(t, rep.errs, 1)
}

/*
TestGetFeed_Cache verifies that a cached body is served without querying the store.
*/
func TestGetFeed_Cache(t *testing.T) {
	fixture := newFixture()
	cache := &memoryCache{}
	router := newTestRouter(fixture, cache, &recordingReporter{})

	first := get(router, "/feed?q=manga:m1&format=atom1")
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, 1, cache.sets)

	second := get(router, "/feed?q=manga:m1&format=atom1")
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "application/xml", second.Header().Get("Content-Type"))
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Len(t, fixture.chapters.filters, 1)

	// A different format is a different entry
	third := get(router, "/feed?q=manga:m1&format=json1")
	require.Equal(t, http.StatusOK, third.Code)
	assert.Len(t, fixture.chapters.filters, 2)
}

/*
TestGetFeed_CacheFailureFallsThrough verifies that a broken cache does not break feeds.
*/
func TestGetFeed_CacheFailureFallsThrough(t *testing.T) {
	fixture := newFixture()
	cache := &memoryCache{getErr: errors.New("redis: connection refused")}

	recorder := get(newTestRouter(fixture, cache, &recordingReporter{}), "/feed?q=manga:m1")
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Len(t, fixture.chapters.filters, 1)
}

/*
TestCacheKey verifies keys differ by format and URI.
*/
func TestCacheKey(t *testing.T) {
	rss := feed.CacheKey("p:", "/feed?q=manga:a", feed.FormatRSS2)
	atom := feed.CacheKey("p:", "/feed?q=manga:a", feed.FormatAtom1)
	other := feed.CacheKey("p:", "/feed?q=manga:b", feed.FormatRSS2)

	assert.NotEqual(t, rss, atom)
	assert.NotEqual(t, rss, other)
	assert.Equal(t, rss, feed.CacheKey("p:", "/feed?q=manga:a", feed.FormatRSS2))
	assert.Len(t, rss, len("p:")+64)
}
