// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package mangadex is a minimal client for the MangaDex REST API.

Only the chapter listing used by the ingestion loop is implemented. Every
request is paced by a token bucket limiter so the client stays under the
upstream global rate limit even when cycles overlap with manual runs.
*/
package mangadex

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the public MangaDex API.
	DefaultBaseURL = "https://api.mangadex.org"

	// MaxLimit is the largest page size the /chapter endpoint accepts.
	MaxLimit = 100

	// publishAtLayout is the only timestamp format publishAtSince accepts.
	publishAtLayout = "2006-01-02T15:04:05"

	defaultTimeout = 15 * time.Second

	// lowRateLimitRemaining triggers a warning when the upstream budget runs low.
	lowRateLimitRemaining = 5

	maxErrorBody = 4 << 10
)

// Order is the publication-time sort direction.
type Order string

const (
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

// ChapterQuery describes one page of GET /chapter.
type ChapterQuery struct {
	// Limit is the page size, 1..MaxLimit.
	Limit int

	// PublishAtSince excludes chapters published before it. Zero means no bound.
	PublishAtSince time.Time

	// Order sorts by publishAt.
	Order Order

	// ExcludeFuture drops chapters scheduled for future publication.
	ExcludeFuture bool
}

// Values encodes the query as MangaDex expects it.
func (q ChapterQuery) Values() url.Values {
	values := url.Values{}
	values.Set("limit", strconv.Itoa(q.Limit))
	if !q.PublishAtSince.IsZero() {
		values.Set("publishAtSince", FormatPublishAt(q.PublishAtSince))
	}
	if q.Order != "" {
		values.Set("order[publishAt]", string(q.Order))
	}
	for _, include := range []string{RelationshipManga, RelationshipUser, RelationshipScanlationGroup} {
		values.Add("includes[]", include)
	}
	if q.ExcludeFuture {
		values.Set("includeFuturePublishAt", "0")
	}
	return values
}

// FormatPublishAt renders t in UTC without fractional seconds or offset.
func FormatPublishAt(t time.Time) string {
	return t.UTC().Format(publishAtLayout)
}

// APIError is returned for non-2xx responses.
type APIError struct {
	StatusCode int
	Title      string
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("mangadex: %d %s: %s", e.StatusCode, e.Title, e.Detail)
	}
	return fmt.Sprintf("mangadex: %d %s", e.StatusCode, e.Title)
}

// Options configures a [Client].
type Options struct {
	BaseURL   string
	UserAgent string

	// RateLimit is the sustained request rate in requests per second.
	RateLimit float64

	// Transport overrides the HTTP transport (tests use httptest servers).
	Transport http.RoundTripper
	Timeout   time.Duration
}

// Client talks to the MangaDex API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// NewClient builds a client from options, filling defaults for zero values.
func NewClient(options Options, logger *slog.Logger) *Client {
	if options.BaseURL == "" {
		options.BaseURL = DefaultBaseURL
	}
	if options.Timeout == 0 {
		options.Timeout = defaultTimeout
	}
	if options.Transport == nil {
		options.Transport = http.DefaultTransport
	}

	limit := rate.Inf
	if options.RateLimit > 0 {
		limit = rate.Limit(options.RateLimit)
	}

	return &Client{
		baseURL: strings.TrimRight(options.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout:   options.Timeout,
			Transport: userAgentTransport{base: options.Transport, userAgent: options.UserAgent},
		},
		limiter: rate.NewLimiter(limit, 1),
		logger:  logger,
	}
}

/*
ListChapters fetches one page of chapters with manga, user and scanlation
group relationships expanded.

Parameters:
  - ctx: context.Context (cancels the rate-limit wait and the request)
  - query: ChapterQuery

Returns:
  - []Chapter: Chapters in the requested order
  - error: *APIError for upstream failures, wrapped transport or decode errors
*/
func (client *Client) ListChapters(ctx context.Context, query ChapterQuery) ([]Chapter, error) {
	if query.Limit < 1 || query.Limit > MaxLimit {
		return nil, fmt.Errorf("mangadex: limit must be between 1 and %d, got %d", MaxLimit, query.Limit)
	}

	var list ChapterList
	if err := client.get(ctx, "/chapter", query.Values(), &list); err != nil {
		return nil, err
	}

	return list.Data, nil
}

func (client *Client) get(ctx context.Context, path string, values url.Values, target any) error {
	if err := client.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("mangadex: rate limiter: %w", err)
	}

	endpoint := client.baseURL + path
	if encoded := values.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("mangadex: build request: %w", err)
	}
	request.Header.Set("Accept", "application/json")

	startTime := time.Now()
	response, err := client.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("mangadex: GET %s: %w", path, err)
	}
	defer func() { _ = response.Body.Close() }()

	client.logger.Debug("mangadex_request_finished",
		slog.String("path", path),
		slog.Int("status", response.StatusCode),
		slog.Int64("latency_ms", time.Since(startTime).Milliseconds()),
	)

	if remaining := response.Header.Get("X-RateLimit-Remaining"); remaining != "" {
		if left, convErr := strconv.Atoi(remaining); convErr == nil && left < lowRateLimitRemaining {
			client.logger.Warn("mangadex_rate_limit_low",
				slog.Int("remaining", left),
				slog.String("retry_after", response.Header.Get("X-RateLimit-Retry-After")),
			)
		}
	}

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return decodeError(response)
	}

	if err := json.NewDecoder(response.Body).Decode(target); err != nil {
		return fmt.Errorf("mangadex: decode %s: %w", path, err)
	}

	return nil
}

func decodeError(response *http.Response) error {
	apiErr := &APIError{StatusCode: response.StatusCode, Title: http.StatusText(response.StatusCode)}

	body, _ := io.ReadAll(io.LimitReader(response.Body, maxErrorBody))

	var envelope ErrorResponse
	if json.Unmarshal(body, &envelope) == nil && len(envelope.Errors) > 0 {
		apiErr.Title = envelope.Errors[0].Title
		apiErr.Detail = envelope.Errors[0].Detail
	}

	return apiErr
}

// userAgentTransport sets the User-Agent MangaDex requires on every request.
type userAgentTransport struct {
	base      http.RoundTripper
	userAgent string
}

func (transport userAgentTransport) RoundTrip(request *http.Request) (*http.Response, error) {
	if transport.userAgent != "" {
		request = request.Clone(request.Context())
		request.Header.Set("User-Agent", transport.userAgent)
	}
	return transport.base.RoundTrip(request)
}
