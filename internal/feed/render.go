// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package feed

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/gorilla/feeds"
	"github.com/samber/lo"

	"github.com/taibuivan/mdrss/internal/core/group"
	"github.com/taibuivan/mdrss/pkg/pointer"
)

// # Output Formats

// Format selects the syndication encoding.
type Format string

const (
	FormatRSS2  Format = "rss2"
	FormatAtom1 Format = "atom1"
	FormatJSON1 Format = "json1"
)

// Content types per format.
const (
	ContentTypeXML      = "application/xml"
	ContentTypeJSONFeed = "application/feed+json"
)

// ParseFormat maps the format parameter. Unknown or empty values yield RSS 2.0.
func ParseFormat(value string) Format {
	switch Format(value) {
	case FormatAtom1, FormatJSON1:
		return Format(value)
	default:
		return FormatRSS2
	}
}

// ContentType returns the response media type.
func (format Format) ContentType() string {
	if format == FormatJSON1 {
		return ContentTypeJSONFeed
	}
	return ContentTypeXML
}

// # Upstream Links

const mangaDexSite = "https://mangadex.org"

// ChapterURL is the canonical reader URL of a chapter.
func ChapterURL(id string) string { return mangaDexSite + "/chapter/" + id }

// MangaURL is the canonical page of a manga.
func MangaURL(id string) string { return mangaDexSite + "/title/" + id }

// GroupURL is the canonical page of a scanlation group.
func GroupURL(id string) string { return mangaDexSite + "/group/" + id }

// # Rendering

// FeedTitle is the feed title without qualifier and the generator name.
const FeedTitle = "MDRSS"

// Meta carries the feed-level fields.
type Meta struct {
	// Qualifier is appended to the title as "MDRSS - <qualifier>" when set.
	Qualifier string

	// Link is the absolute URL of the request; it doubles as the feed id.
	Link string

	// Updated stamps the feed.
	Updated time.Time
}

// Title returns the feed title.
func (meta Meta) Title() string {
	if meta.Qualifier == "" {
		return FeedTitle
	}
	return FeedTitle + " - " + meta.Qualifier
}

/*
Render encodes entries in the requested format.

Parameters:
  - entries: []*Entry (already ordered)
  - meta: Meta
  - format: Format

Returns:
  - []byte: Encoded body
  - string: Content type
  - error: Encoding failures
*/
func Render(entries []*Entry, meta Meta, format Format) ([]byte, string, error) {
	document := &feeds.Feed{
		Title:       meta.Title(),
		Link:        &feeds.Link{Href: meta.Link},
		Id:          meta.Link,
		Description: "",
		Copyright:   "",
		Created:     meta.Updated,
		Updated:     meta.Updated,
		Items:       lo.Map(entries, func(entry *Entry, _ int) *feeds.Item { return newItem(entry) }),
	}

	var (
		body string
		err  error
	)
	switch format {
	case FormatAtom1:
		body, err = document.ToAtom()
	case FormatJSON1:
		body, err = document.ToJSON()
	default:
		rss := (&feeds.Rss{Feed: document}).RssFeed()
		rss.Generator = FeedTitle
		body, err = feeds.ToXML(rss)
	}
	if err != nil {
		return nil, "", fmt.Errorf("feed: encode %s: %w", format, err)
	}

	return []byte(body), format.ContentType(), nil
}

func newItem(entry *Entry) *feeds.Item {
	mangaTitle := entry.Manga.DisplayTitle(entry.Chapter.TranslatedLanguage)
	label := ChapterLabel(entry)
	link := ChapterURL(entry.Chapter.ID)

	item := &feeds.Item{
		Title:       mangaTitle + ": " + label,
		Link:        &feeds.Link{Href: link},
		Id:          link,
		Created:     entry.Chapter.PublishedAt,
		Description: describe(entry, mangaTitle, label),
	}

	// Items carry a single author, so groups share one comma-separated name.
	if len(entry.Groups) > 0 {
		names := lo.Map(entry.Groups, func(credited *group.Group, _ int) string { return credited.Name })
		item.Author = &feeds.Author{Name: strings.Join(names, ", ")}
	} else if entry.Uploader != nil && entry.Uploader.Username != "" {
		item.Author = &feeds.Author{Name: entry.Uploader.Username}
	}

	return item
}

// ChapterLabel joins the non-empty "Vol. X", "Ch. Y" and title parts with spaces.
func ChapterLabel(entry *Entry) string {
	var parts []string
	if volume := pointer.Val(entry.Chapter.Volume); volume != "" {
		parts = append(parts, "Vol. "+volume)
	}
	if number := pointer.Val(entry.Chapter.Chapter); number != "" {
		parts = append(parts, "Ch. "+number)
	}
	if title := pointer.Val(entry.Chapter.Title); title != "" {
		parts = append(parts, title)
	}
	return strings.Join(parts, " ")
}

func describe(entry *Entry, mangaTitle, label string) string {
	var builder strings.Builder

	fmt.Fprintf(&builder, "<b>%s</b><br />", html.EscapeString(mangaTitle))
	fmt.Fprintf(&builder, "%s<br />", html.EscapeString(label))

	for _, credited := range entry.Groups {
		fmt.Fprintf(&builder, `<a href="%s" target="_blank">%s</a><br />`, GroupURL(credited.ID), html.EscapeString(credited.Name))
	}

	fmt.Fprintf(&builder, `<a href="%s" target="_blank">Read chapter</a><br />`, ChapterURL(entry.Chapter.ID))
	fmt.Fprintf(&builder, `<a href="%s" target="_blank">View manga</a>`, MangaURL(entry.Chapter.MangaID))
	return builder.String()
}
