// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package chapter

import (
	"github.com/huandu/go-sqlbuilder"

	"github.com/taibuivan/mdrss/internal/platform/database/schema"
)

// Table aliases used by the feed query.
const (
	aliasChapter  = "c"
	aliasManga    = "m"
	aliasUploader = "u"
)

func col(alias, column string) string {
	return alias + "." + column
}

// feedColumns is the projection scanned by scanFeedRow, in order.
var feedColumns = []string{
	col(aliasChapter, schema.Chapter.UUID),
	col(aliasChapter, schema.Chapter.Title),
	col(aliasChapter, schema.Chapter.Chapter),
	col(aliasChapter, schema.Chapter.Volume),
	col(aliasChapter, schema.Chapter.PublishedAt),
	col(aliasChapter, schema.Chapter.TranslatedLanguage),
	col(aliasChapter, schema.Chapter.MangaUUID),
	col(aliasChapter, schema.Chapter.UploaderUUID),
	col(aliasChapter, schema.Chapter.GroupUUIDs),
	col(aliasManga, schema.Manga.Title),
	col(aliasManga, schema.Manga.OriginalLanguage),
	col(aliasUploader, schema.Uploader.Username),
}

/*
buildFeedQuery renders the OR-of-AND feed statement.

Each filter becomes one parenthesized conjunction holding only the dimensions
it sets. Arrays are bound as single parameters so each dimension costs one
placeholder regardless of how many values it carries.

Parameters:
  - filters: []FeedFilter (empty filters are skipped)
  - limit: int

Returns:
  - string: SQL with $n placeholders
  - []any: Bound arguments
  - bool: false when no filter constrains anything
*/
func buildFeedQuery(filters []FeedFilter, limit int) (string, []any, bool) {
	builder := sqlbuilder.PostgreSQL.NewSelectBuilder()

	branches := make([]string, 0, len(filters))
	for _, filter := range filters {
		if filter.IsEmpty() {
			continue
		}

		var conditions []string
		if len(filter.MangaIDs) > 0 {
			conditions = append(conditions, col(aliasChapter, schema.Chapter.MangaUUID)+" = ANY("+builder.Var(filter.MangaIDs)+")")
		}
		if len(filter.UserIDs) > 0 {
			conditions = append(conditions, col(aliasChapter, schema.Chapter.UploaderUUID)+" = ANY("+builder.Var(filter.UserIDs)+")")
		}
		if len(filter.GroupIDs) > 0 {
			conditions = append(conditions, col(aliasChapter, schema.Chapter.GroupUUIDs)+" && "+builder.Var(filter.GroupIDs))
		}
		if len(filter.TranslatedLanguages) > 0 {
			conditions = append(conditions, col(aliasChapter, schema.Chapter.TranslatedLanguage)+" = ANY("+builder.Var(filter.TranslatedLanguages)+")")
		}
		if len(filter.OriginalLanguages) > 0 {
			conditions = append(conditions, col(aliasManga, schema.Manga.OriginalLanguage)+" = ANY("+builder.Var(filter.OriginalLanguages)+")")
		}

		branches = append(branches, builder.And(conditions...))
	}

	if len(branches) == 0 {
		return "", nil, false
	}

	builder.Select(feedColumns...).
		From(schema.Chapter.Table+" AS "+aliasChapter).
		Join(schema.Manga.Table+" AS "+aliasManga,
			col(aliasManga, schema.Manga.UUID)+" = "+col(aliasChapter, schema.Chapter.MangaUUID)).
		Join(schema.Uploader.Table+" AS "+aliasUploader,
			col(aliasUploader, schema.Uploader.UUID)+" = "+col(aliasChapter, schema.Chapter.UploaderUUID)).
		Where(builder.Or(branches...)).
		OrderBy(col(aliasChapter, schema.Chapter.PublishedAt)+" DESC", col(aliasChapter, schema.Chapter.UUID)+" DESC").
		Limit(limit)

	query, args := builder.Build()
	return query, args, true
}
