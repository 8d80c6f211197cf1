// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package feed serves GET /feed.

A request is parsed into OR-groups of filters, answered with one query
against the chapter store, enriched with scanlation groups resolved in a
single batch, and rendered as RSS 2.0, Atom 1.0 or JSON Feed 1.
*/
package feed

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/samber/lo"

	"github.com/taibuivan/mdrss/internal/core/chapter"
	"github.com/taibuivan/mdrss/internal/core/group"
	"github.com/taibuivan/mdrss/internal/core/manga"
	"github.com/taibuivan/mdrss/internal/core/user"
)

// Entry is one chapter with everything needed to render it.
type Entry struct {
	Chapter  *chapter.Chapter
	Manga    *manga.Manga
	Uploader *user.User

	// Groups follow the chapter's own group order. Unknown groups are absent.
	Groups []*group.Group
}

// Service executes feed queries.
type Service struct {
	chapters chapter.Repository
	groups   group.Repository
	mangas   manga.Repository
	users    user.Repository
	logger   *slog.Logger
}

// NewService wires the feed executor.
func NewService(chapters chapter.Repository, groups group.Repository, mangas manga.Repository, users user.Repository, logger *slog.Logger) *Service {
	return &Service{
		chapters: chapters,
		groups:   groups,
		mangas:   mangas,
		users:    users,
		logger:   logger,
	}
}

/*
Query returns the newest chapters matching any filter.

Parameters:
  - ctx: context.Context
  - filters: []Filter

Returns:
  - []*Entry: At most chapter.FeedLimit entries, newest first
  - error: Storage failures
*/
func (service *Service) Query(ctx context.Context, filters []Filter) ([]*Entry, error) {
	rows, err := service.chapters.ListFeed(ctx, filters, chapter.FeedLimit)
	if err != nil {
		return nil, fmt.Errorf("feed: list chapters: %w", err)
	}

	// 1. Resolve every referenced group once
	groupIDs := lo.Uniq(lo.FlatMap(rows, func(row *chapter.FeedRow, _ int) []string { return row.Chapter.GroupIDs }))

	groups, err := service.groups.FindByIDs(ctx, groupIDs)
	if err != nil {
		return nil, fmt.Errorf("feed: resolve groups: %w", err)
	}
	groupsByID := lo.KeyBy(groups, func(entity *group.Group) string { return entity.ID })

	// 2. Map back per chapter
	entries := make([]*Entry, 0, len(rows))
	for _, row := range rows {
		entry := &Entry{Chapter: row.Chapter, Manga: row.Manga, Uploader: row.Uploader}
		for _, id := range row.Chapter.GroupIDs {
			if resolved, ok := groupsByID[id]; ok {
				entry.Groups = append(entry.Groups, resolved)
			}
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

/*
Qualifier describes the subject of a single-group request for the feed title.

Priority: one manga, then groups, then one uploader, then languages only.
Entities already present in entries are not looked up again. Lookup failures
only cost the qualifier, never the feed.

Parameters:
  - ctx: context.Context
  - filters: []Filter
  - entries: []*Entry (the rendered result)

Returns:
  - string: Qualifier, or "" when none applies
*/
func (service *Service) Qualifier(ctx context.Context, filters []Filter, entries []*Entry) string {
	if len(filters) != 1 {
		return ""
	}
	filter := filters[0]

	switch {
	case len(filter.MangaIDs) == 1:
		return service.mangaTitle(ctx, filter.MangaIDs[0], entries)

	case len(filter.GroupIDs) > 0:
		return service.groupNames(ctx, filter.GroupIDs, entries)

	case len(filter.UserIDs) == 1:
		return service.username(ctx, filter.UserIDs[0], entries)

	case len(filter.MangaIDs) == 0 && len(filter.UserIDs) == 0:
		return strings.Join(append(append([]string{}, filter.TranslatedLanguages...), filter.OriginalLanguages...), ", ")
	}

	return ""
}

func (service *Service) mangaTitle(ctx context.Context, id string, entries []*Entry) string {
	for _, entry := range entries {
		if entry.Manga != nil && entry.Manga.ID == id {
			return entry.Manga.DisplayTitle(entry.Chapter.TranslatedLanguage)
		}
	}

	found, err := service.mangas.FindByID(ctx, id)
	if err != nil {
		service.logger.DebugContext(ctx, "feed_qualifier_unresolved", slog.String("manga_id", id), slog.Any("error", err))
		return ""
	}
	return found.DisplayTitle("en")
}

func (service *Service) groupNames(ctx context.Context, ids []string, entries []*Entry) string {
	known := map[string]*group.Group{}
	for _, entry := range entries {
		for _, resolved := range entry.Groups {
			known[resolved.ID] = resolved
		}
	}

	missing := lo.Filter(ids, func(id string, _ int) bool { _, ok := known[id]; return !ok })
	if len(missing) > 0 {
		found, err := service.groups.FindByIDs(ctx, missing)
		if err != nil {
			service.logger.DebugContext(ctx, "feed_qualifier_unresolved", slog.Any("group_ids", missing), slog.Any("error", err))
		}
		for _, resolved := range found {
			known[resolved.ID] = resolved
		}
	}

	names := lo.FilterMap(ids, func(id string, _ int) (string, bool) {
		resolved, ok := known[id]
		if !ok || resolved.Name == "" {
			return "", false
		}
		return resolved.Name, true
	})
	return strings.Join(names, ", ")
}

func (service *Service) username(ctx context.Context, id string, entries []*Entry) string {
	for _, entry := range entries {
		if entry.Uploader != nil && entry.Uploader.ID == id {
			return entry.Uploader.Username
		}
	}

	found, err := service.users.FindByID(ctx, id)
	if err != nil {
		service.logger.DebugContext(ctx, "feed_qualifier_unresolved", slog.String("user_id", id), slog.Any("error", err))
		return ""
	}
	return found.Username
}
