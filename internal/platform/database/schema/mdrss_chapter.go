// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// ChapterTable represents the 'mdrss.chapter' table
type ChapterTable struct {
	Table              string
	UUID               string
	Title              string
	Chapter            string
	Volume             string
	PublishedAt        string
	TranslatedLanguage string
	MangaUUID          string
	UploaderUUID       string
	GroupUUIDs         string
	CreatedAt          string
	UpdatedAt          string
}

// Chapter is the schema definition for mdrss.chapter
var Chapter = ChapterTable{
	Table:              "mdrss.chapter",
	UUID:               "uuid",
	Title:              "title",
	Chapter:            "chapter",
	Volume:             "volume",
	PublishedAt:        "publishedat",
	TranslatedLanguage: "translatedlanguage",
	MangaUUID:          "mangauuid",
	UploaderUUID:       "uploaderuuid",
	GroupUUIDs:         "groupuuids",
	CreatedAt:          "createdat",
	UpdatedAt:          "updatedat",
}

// Mutable returns the columns overwritten by an upsert.
func (t ChapterTable) Mutable() []string {
	return []string{
		t.Title, t.Chapter, t.Volume, t.PublishedAt, t.TranslatedLanguage,
		t.MangaUUID, t.UploaderUUID, t.GroupUUIDs,
	}
}
