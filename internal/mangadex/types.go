// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package mangadex

import (
	"bytes"
	"encoding/json"
	"time"
)

// Relationship types returned with includes[].
const (
	RelationshipManga           = "manga"
	RelationshipUser            = "user"
	RelationshipScanlationGroup = "scanlation_group"
)

// ChapterList is the collection envelope of GET /chapter.
type ChapterList struct {
	Result   string    `json:"result"`
	Response string    `json:"response"`
	Data     []Chapter `json:"data"`
	Limit    int       `json:"limit"`
	Offset   int       `json:"offset"`
	Total    int       `json:"total"`
}

// Chapter is one upstream chapter with its expanded relationships.
type Chapter struct {
	ID            string            `json:"id"`
	Type          string            `json:"type"`
	Attributes    ChapterAttributes `json:"attributes"`
	Relationships []Relationship    `json:"relationships"`
}

// ChapterAttributes holds the chapter fields MDRSS stores.
// Title, Volume and Chapter are null upstream when absent.
type ChapterAttributes struct {
	Title              *string   `json:"title"`
	Volume             *string   `json:"volume"`
	Chapter            *string   `json:"chapter"`
	TranslatedLanguage string    `json:"translatedLanguage"`
	PublishAt          time.Time `json:"publishAt"`
}

// Relationship references another entity. Attributes are only present for
// types requested through includes[].
type Relationship struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	Attributes json.RawMessage `json:"attributes,omitempty"`
}

// UserAttributes are the expanded attributes of a "user" relationship.
type UserAttributes struct {
	Username string `json:"username"`
}

// ScanlationGroupAttributes are the expanded attributes of a "scanlation_group" relationship.
type ScanlationGroupAttributes struct {
	Name string `json:"name"`
}

// MangaAttributes are the expanded attributes of a "manga" relationship.
type MangaAttributes struct {
	Title            LocalizedString `json:"title"`
	OriginalLanguage string          `json:"originalLanguage"`
}

// LocalizedString maps a language code to a localized value.
//
// MangaDex serializes an empty map as a JSON array ("[]"), which a plain
// map cannot decode.
type LocalizedString map[string]string

// UnmarshalJSON accepts both an object and an empty array.
func (l *LocalizedString) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("[]")) || bytes.Equal(trimmed, []byte("null")) {
		*l = LocalizedString{}
		return nil
	}

	values := map[string]string{}
	if err := json.Unmarshal(trimmed, &values); err != nil {
		return err
	}
	*l = values
	return nil
}

// ErrorResponse is the envelope MangaDex returns with non-2xx statuses.
type ErrorResponse struct {
	Result string        `json:"result"`
	Errors []ErrorDetail `json:"errors"`
}

// ErrorDetail is one entry of [ErrorResponse].
type ErrorDetail struct {
	ID     string `json:"id"`
	Status int    `json:"status"`
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

// Find returns the first relationship of the given type.
func (c Chapter) Find(relationshipType string) (Relationship, bool) {
	for _, relationship := range c.Relationships {
		if relationship.Type == relationshipType {
			return relationship, true
		}
	}
	return Relationship{}, false
}

// FindAll returns every relationship of the given type in upstream order.
func (c Chapter) FindAll(relationshipType string) []Relationship {
	var matches []Relationship
	for _, relationship := range c.Relationships {
		if relationship.Type == relationshipType {
			matches = append(matches, relationship)
		}
	}
	return matches
}

// DecodeAttributes unmarshals the expanded attributes into target.
// A relationship without attributes leaves target untouched.
func (r Relationship) DecodeAttributes(target any) error {
	if len(r.Attributes) == 0 {
		return nil
	}
	return json.Unmarshal(r.Attributes, target)
}
