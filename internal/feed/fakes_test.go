// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package feed_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/taibuivan/mdrss/internal/core/chapter"
	"github.com/taibuivan/mdrss/internal/core/group"
	"github.com/taibuivan/mdrss/internal/core/manga"
	"github.com/taibuivan/mdrss/internal/core/user"
	"github.com/taibuivan/mdrss/internal/feed"
	"github.com/taibuivan/mdrss/internal/platform/apperr"
	"github.com/taibuivan/mdrss/pkg/pointer"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

var publishedAt = time.Date(2026, 10, 17, 8, 0, 0, 0, time.UTC)

type fakeChapters struct {
	rows    []*chapter.FeedRow
	err     error
	filters [][]chapter.FeedFilter
}

func (f *fakeChapters) UpsertMany(context.Context, []*chapter.Chapter) error { return nil }

func (f *fakeChapters) LatestPublishedAt(context.Context) (*time.Time, error) { return nil, nil }

func (f *fakeChapters) ListFeed(_ context.Context, filters []chapter.FeedFilter, limit int) ([]*chapter.FeedRow, error) {
	f.filters = append(f.filters, filters)
	if f.err != nil {
		return nil, f.err
	}
	if len(f.rows) > limit {
		return f.rows[:limit], nil
	}
	return f.rows, nil
}

type fakeGroups struct {
	known map[string]*group.Group
	calls [][]string
}

func (f *fakeGroups) UpsertMany(context.Context, []*group.Group) error { return nil }

func (f *fakeGroups) FindByIDs(_ context.Context, ids []string) ([]*group.Group, error) {
	f.calls = append(f.calls, ids)
	var found []*group.Group
	for _, id := range ids {
		if resolved, ok := f.known[id]; ok {
			found = append(found, resolved)
		}
	}
	return found, nil
}

type fakeMangas struct{ known map[string]*manga.Manga }

func (f *fakeMangas) UpsertMany(context.Context, []*manga.Manga) error { return nil }

func (f *fakeMangas) FindByID(_ context.Context, id string) (*manga.Manga, error) {
	if found, ok := f.known[id]; ok {
		return found, nil
	}
	return nil, apperr.NotFound("Manga")
}

type fakeUsers struct{ known map[string]*user.User }

func (f *fakeUsers) UpsertMany(context.Context, []*user.User) error { return nil }

func (f *fakeUsers) FindByID(_ context.Context, id string) (*user.User, error) {
	if found, ok := f.known[id]; ok {
		return found, nil
	}
	return nil, apperr.NotFound("User")
}

type recordingReporter struct {
	mu   sync.Mutex
	errs []error
}

func (r *recordingReporter) Capture(_ context.Context, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errs = append(r.errs, err)
}

func (r *recordingReporter) Flush(time.Duration) bool { return true }

// fixture is a small store: two manga, one uploader, three groups.
type fixture struct {
	chapters *fakeChapters
	groups   *fakeGroups
	mangas   *fakeMangas
	users    *fakeUsers
}

func newFixture() *fixture {
	series := &manga.Manga{ID: "m1", Title: manga.Titles{"ja": "題名", "en": "Fallback Title"}, OriginalLanguage: "ja"}
	other := &manga.Manga{ID: "m2", Title: manga.Titles{"en": "Other"}, OriginalLanguage: "ko"}
	uploader := &user.User{ID: "u1", Username: "uploader"}

	return &fixture{
		chapters: &fakeChapters{rows: []*chapter.FeedRow{
			{
				Chapter: &chapter.Chapter{
					ID: "c2", Volume: pointer.To("3"), Chapter: pointer.To("12.5"), Title: pointer.To("Finale"),
					PublishedAt: publishedAt, TranslatedLanguage: "fr",
					MangaID: "m1", UploaderID: "u1", GroupIDs: []string{"g2", "gone", "g1"},
				},
				Manga:    series,
				Uploader: uploader,
			},
			{
				Chapter: &chapter.Chapter{
					ID: "c1", Chapter: pointer.To("1"),
					PublishedAt: publishedAt.Add(-time.Hour), TranslatedLanguage: "en",
					MangaID: "m2", UploaderID: "u1", GroupIDs: []string{},
				},
				Manga:    other,
				Uploader: uploader,
			},
		}},
		groups: &fakeGroups{known: map[string]*group.Group{
			"g1": {ID: "g1", Name: "Alpha Scans"},
			"g2": {ID: "g2", Name: "Beta & Co"},
			"g3": {ID: "g3", Name: "Gamma"},
		}},
		mangas: &fakeMangas{known: map[string]*manga.Manga{"m1": series, "m2": other, "m9": {ID: "m9", Title: manga.Titles{"en": "Quiet Series"}}}},
		users:  &fakeUsers{known: map[string]*user.User{"u1": uploader, "u9": {ID: "u9", Username: "lurker"}}},
	}
}

func (f *fixture) service() *feed.Service {
	return feed.NewService(f.chapters, f.groups, f.mangas, f.users, discardLogger)
}
