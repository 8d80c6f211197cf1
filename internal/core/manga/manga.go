// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package manga stores the series chapters belong to.

A manga keeps every localized title MangaDex provides. The feed picks the one
matching the chapter's translation through [Manga.DisplayTitle].
*/
package manga

import (
	"slices"
	"time"

	"github.com/samber/lo"
)

// fallbackLanguage is tried when no title exists in the requested language.
const fallbackLanguage = "en"

// Titles maps a language code to a localized title.
type Titles map[string]string

// Manga is a MangaDex series.
type Manga struct {
	ID               string    `json:"id"`
	Title            Titles    `json:"title"`
	OriginalLanguage string    `json:"original_language"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

/*
DisplayTitle picks the title shown next to a chapter.

Lookup order: language, then English, then the lowest language code present
(so the choice is stable across renders), then the empty string.
*/
func (manga *Manga) DisplayTitle(language string) string {
	if manga == nil || len(manga.Title) == 0 {
		return ""
	}

	if title := manga.Title[language]; title != "" {
		return title
	}
	if title := manga.Title[fallbackLanguage]; title != "" {
		return title
	}

	languages := lo.Keys(manga.Title)
	slices.Sort(languages)
	for _, code := range languages {
		if title := manga.Title[code]; title != "" {
			return title
		}
	}
	return ""
}
