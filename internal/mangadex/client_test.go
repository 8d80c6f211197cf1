// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package mangadex_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/mdrss/internal/mangadex"
)

const chapterListJSON = `{
  "result": "ok",
  "response": "collection",
  "data": [
    {
      "id": "c1",
      "type": "chapter",
      "attributes": {
        "title": null,
        "volume": "3",
        "chapter": "12.5",
        "translatedLanguage": "fr",
        "publishAt": "2026-10-17T08:30:15+00:00"
      },
      "relationships": [
        {"id": "g1", "type": "scanlation_group", "attributes": {"name": "Alpha Scans"}},
        {"id": "m1", "type": "manga", "attributes": {"title": {"ja": "タイトル", "en": "Fallback Title"}, "originalLanguage": "ja"}},
        {"id": "u1", "type": "user", "attributes": {"username": "uploader"}},
        {"id": "g2", "type": "scanlation_group", "attributes": {"name": "Beta Scans"}}
      ]
    }
  ],
  "limit": 50,
  "offset": 0,
  "total": 1
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *mangadex.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return mangadex.NewClient(mangadex.Options{
		BaseURL:   server.URL,
		UserAgent: "mdrss-test/1.0",
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

/*
TestListChapters_RequestShape verifies headers and query parameters sent upstream.
*/
func TestListChapters_RequestShape(t *testing.T) {
	since := time.Date(2026, 10, 17, 8, 0, 0, 987654321, time.UTC)

	client := newTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, http.MethodGet, request.Method)
		assert.Equal(t, "/chapter", request.URL.Path)
		assert.Equal(t, "mdrss-test/1.0", request.Header.Get("User-Agent"))
		assert.Equal(t, "application/json", request.Header.Get("Accept"))

		query := request.URL.Query()
		assert.Equal(t, "50", query.Get("limit"))
		assert.Equal(t, "2026-10-17T08:00:00", query.Get("publishAtSince"))
		assert.Equal(t, "asc", query.Get("order[publishAt]"))
		assert.Equal(t, []string{"manga", "user", "scanlation_group"}, query["includes[]"])
		assert.Equal(t, "0", query.Get("includeFuturePublishAt"))

		writer.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(writer, chapterListJSON)
	})

	chapters, err := client.ListChapters(context.Background(), mangadex.ChapterQuery{
		Limit:          50,
		PublishAtSince: since,
		Order:          mangadex.OrderAsc,
		ExcludeFuture:  true,
	})
	require.NoError(t, err)
	require.Len(t, chapters, 1)

	chapter := chapters[0]
	assert.Equal(t, "c1", chapter.ID)
	assert.Nil(t, chapter.Attributes.Title)
	assert.Equal(t, "12.5", *chapter.Attributes.Chapter)
	assert.Equal(t, time.Date(2026, 10, 17, 8, 30, 15, 0, time.UTC), chapter.Attributes.PublishAt.UTC())

	groups := chapter.FindAll(mangadex.RelationshipScanlationGroup)
	require.Len(t, groups, 2)
	assert.Equal(t, "g1", groups[0].ID)
	assert.Equal(t, "g2", groups[1].ID)

	mangaRel, ok := chapter.Find(mangadex.RelationshipManga)
	require.True(t, ok)

	var manga mangadex.MangaAttributes
	require.NoError(t, mangaRel.DecodeAttributes(&manga))
	assert.Equal(t, "Fallback Title", manga.Title["en"])
	assert.Equal(t, "ja", manga.OriginalLanguage)
}

/*
TestListChapters_ColdStartOmitsSince verifies that a zero watermark sends no publishAtSince.
*/
func TestListChapters_ColdStartOmitsSince(t *testing.T) {
	client := newTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
		_, present := request.URL.Query()["publishAtSince"]
		assert.False(t, present)
		assert.Equal(t, "desc", request.URL.Query().Get("order[publishAt]"))
		_, _ = io.WriteString(writer, `{"result":"ok","data":[]}`)
	})

	chapters, err := client.ListChapters(context.Background(), mangadex.ChapterQuery{Limit: 20, Order: mangadex.OrderDesc})
	require.NoError(t, err)
	assert.Empty(t, chapters)
}

/*
TestListChapters_APIError verifies that the MangaDex error envelope is surfaced.
*/
func TestListChapters_APIError(t *testing.T) {
	client := newTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(writer, `{"result":"error","errors":[{"id":"x","status":400,"title":"validation_exception","detail":"Error validating /publishAtSince"}]}`)
	})

	_, err := client.ListChapters(context.Background(), mangadex.ChapterQuery{Limit: 10})
	require.Error(t, err)

	var apiErr *mangadex.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "validation_exception", apiErr.Title)
	assert.Contains(t, apiErr.Error(), "publishAtSince")
}

/*
TestListChapters_InvalidLimit verifies that out-of-range page sizes never reach the network.
*/
func TestListChapters_InvalidLimit(t *testing.T) {
	client := newTestClient(t, func(http.ResponseWriter, *http.Request) {
		t.Fatal("no request expected")
	})

	_, err := client.ListChapters(context.Background(), mangadex.ChapterQuery{Limit: 0})
	assert.Error(t, err)

	_, err = client.ListChapters(context.Background(), mangadex.ChapterQuery{Limit: mangadex.MaxLimit + 1})
	assert.Error(t, err)
}

/*
TestLocalizedString_EmptyArray covers the upstream quirk of encoding empty maps as arrays.
*/
func TestLocalizedString_EmptyArray(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  mangadex.LocalizedString
	}{
		{"object", `{"title":{"en":"A"}}`, mangadex.LocalizedString{"en": "A"}},
		{"empty_array", `{"title":[]}`, mangadex.LocalizedString{}},
		{"null", `{"title":null}`, mangadex.LocalizedString{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var attributes mangadex.MangaAttributes
			require.NoError(t, mangadex.Relationship{Attributes: []byte(tt.input)}.DecodeAttributes(&attributes))
			assert.Equal(t, tt.want, attributes.Title)
		})
	}
}
