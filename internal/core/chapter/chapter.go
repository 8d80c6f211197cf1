// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package chapter stores ingested chapters and answers feed queries.

# Core Responsibility

  - Watermark: [Repository.LatestPublishedAt] tells the ingestion loop where to resume.
  - Feed: [Repository.ListFeed] runs the disjunctive filter query behind GET /feed.

Chapters reference their manga and uploader by UUID, and keep the credited
scanlation groups as an ordered UUID array.
*/
package chapter

import (
	"time"

	"github.com/taibuivan/mdrss/internal/core/manga"
	"github.com/taibuivan/mdrss/internal/core/user"
)

// FeedLimit is the number of chapters a feed returns.
const FeedLimit = 20

// # Core Entities

// Chapter is one translated release of a manga chapter.
type Chapter struct {
	ID                 string    `json:"id"`
	Title              *string   `json:"title,omitempty"`
	Chapter            *string   `json:"chapter,omitempty"`
	Volume             *string   `json:"volume,omitempty"`
	PublishedAt        time.Time `json:"published_at"`
	TranslatedLanguage string    `json:"translated_language"`
	MangaID            string    `json:"manga_id"`
	UploaderID         string    `json:"uploader_id"`
	GroupIDs           []string  `json:"group_ids"`
}

// FeedRow is a chapter joined with its manga and uploader.
type FeedRow struct {
	Chapter  *Chapter
	Manga    *manga.Manga
	Uploader *user.User
}

// # Search & Filtering

// FeedFilter is one conjunctive branch of a feed query. Empty dimensions do
// not constrain the branch; a filter with no dimensions matches nothing.
type FeedFilter struct {
	MangaIDs            []string
	UserIDs             []string
	GroupIDs            []string
	TranslatedLanguages []string
	OriginalLanguages   []string
}

// IsEmpty reports whether no dimension is set.
func (f FeedFilter) IsEmpty() bool {
	return len(f.MangaIDs) == 0 &&
		len(f.UserIDs) == 0 &&
		len(f.GroupIDs) == 0 &&
		len(f.TranslatedLanguages) == 0 &&
		len(f.OriginalLanguages) == 0
}
