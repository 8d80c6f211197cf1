// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package feed

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/mdrss/internal/platform/apperr"
	"github.com/taibuivan/mdrss/internal/platform/constants"
	"github.com/taibuivan/mdrss/internal/platform/ctxutil"
	requestutil "github.com/taibuivan/mdrss/internal/platform/request"
	"github.com/taibuivan/mdrss/internal/platform/reporter"
	"github.com/taibuivan/mdrss/internal/platform/respond"
)

// HandlerOptions configure the feed endpoint.
type HandlerOptions struct {
	// PublicBaseURL overrides the origin used in feed links.
	PublicBaseURL string

	// CacheTTL is how long rendered bodies are cached. Zero disables caching.
	CacheTTL time.Duration
}

// Handler serves GET /feed.
type Handler struct {
	service  *Service
	cache    Cache
	reporter reporter.Reporter
	metrics  *Metrics
	options  HandlerOptions
	now      func() time.Time
}

// NewHandler wires the feed endpoint. A nil cache disables caching.
func NewHandler(service *Service, cache Cache, rep reporter.Reporter, metrics *Metrics, options HandlerOptions) *Handler {
	return &Handler{
		service:  service,
		cache:    cache,
		reporter: rep,
		metrics:  metrics,
		options:  options,
		now:      time.Now,
	}
}

// Routes returns the router mounted at /feed.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", handler.getFeed)
	return router
}

func (handler *Handler) getFeed(writer http.ResponseWriter, request *http.Request) {
	ctx := request.Context()
	format := ParseFormat(requestutil.Value(request, "format"))

	// 1. Parse filters
	filters, err := ParseQuery(requestutil.Values(request, "q"))
	if err != nil {
		handler.fail(writer, request, format, err)
		return
	}

	// 2. Serve from cache when possible
	cacheKey := CacheKey(constants.RedisPrefixFeed, request.URL.RequestURI(), format)
	if body, ok := handler.lookup(request, cacheKey); ok {
		handler.metrics.requests.WithLabelValues(string(format), strconv.Itoa(http.StatusOK)).Inc()
		respond.Raw(writer, http.StatusOK, format.ContentType(), body)
		return
	}

	// 3. Query and render
	entries, err := handler.service.Query(ctx, filters)
	if err != nil {
		handler.fail(writer, request, format, err)
		return
	}

	meta := Meta{
		Qualifier: handler.service.Qualifier(ctx, filters, entries),
		Link:      requestutil.AbsoluteURL(request, handler.options.PublicBaseURL),
		Updated:   handler.now().UTC(),
	}

	body, contentType, err := Render(entries, meta, format)
	if err != nil {
		handler.fail(writer, request, format, apperr.Internal(err))
		return
	}

	// 4. Store for subsequent readers
	if handler.cache != nil && handler.options.CacheTTL > 0 {
		if err := handler.cache.Set(ctx, cacheKey, body, handler.options.CacheTTL); err != nil {
			ctxutil.GetLogger(ctx).WarnContext(ctx, "feed_cache_store_failed", slog.Any("error", err))
		}
	}

	handler.metrics.entries.Observe(float64(len(entries)))
	handler.metrics.requests.WithLabelValues(string(format), strconv.Itoa(http.StatusOK)).Inc()
	respond.Raw(writer, http.StatusOK, contentType, body)
}

// lookup returns a cached body. Cache failures count as misses.
func (handler *Handler) lookup(request *http.Request, key string) ([]byte, bool) {
	if handler.cache == nil || handler.options.CacheTTL <= 0 {
		return nil, false
	}

	ctx := request.Context()
	body, ok, err := handler.cache.Get(ctx, key)
	switch {
	case err != nil:
		handler.metrics.cache.WithLabelValues("error").Inc()
		ctxutil.GetLogger(ctx).WarnContext(ctx, "feed_cache_lookup_failed", slog.Any("error", err))
		return nil, false
	case ok:
		handler.metrics.cache.WithLabelValues("hit").Inc()
		return body, true
	default:
		handler.metrics.cache.WithLabelValues("miss").Inc()
		return nil, false
	}
}

// fail writes the error envelope and reports server-side failures.
func (handler *Handler) fail(writer http.ResponseWriter, request *http.Request, format Format, err error) {
	status := http.StatusInternalServerError
	if appError := apperr.As(err); appError != nil {
		status = appError.HTTPStatus
	}

	if apperr.IsServerError(err) {
		handler.reporter.Capture(request.Context(), err)
	}

	handler.metrics.requests.WithLabelValues(string(format), strconv.Itoa(status)).Inc()
	respond.Error(writer, request, err)
}
