// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// MangaTable represents the 'mdrss.manga' table
type MangaTable struct {
	Table            string
	UUID             string
	Title            string
	OriginalLanguage string
	CreatedAt        string
	UpdatedAt        string
}

// Manga is the schema definition for mdrss.manga
var Manga = MangaTable{
	Table:            "mdrss.manga",
	UUID:             "uuid",
	Title:            "title",
	OriginalLanguage: "originallanguage",
	CreatedAt:        "createdat",
	UpdatedAt:        "updatedat",
}
