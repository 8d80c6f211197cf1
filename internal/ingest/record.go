// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ingest

import (
	"errors"
	"fmt"

	"github.com/samber/lo"

	"github.com/taibuivan/mdrss/internal/core/chapter"
	"github.com/taibuivan/mdrss/internal/core/group"
	"github.com/taibuivan/mdrss/internal/core/manga"
	"github.com/taibuivan/mdrss/internal/core/user"
	"github.com/taibuivan/mdrss/internal/mangadex"
	"github.com/taibuivan/mdrss/pkg/pointer"
)

// ErrMissingRelationship marks an upstream chapter that cannot be stored
// because its manga or uploader is not attached.
var ErrMissingRelationship = errors.New("ingest: chapter is missing a required relationship")

// Record is one upstream chapter flattened into storable entities.
type Record struct {
	Chapter  *chapter.Chapter
	Uploader *user.User
	Groups   []*group.Group
	Manga    *manga.Manga
}

/*
ToRecord maps an upstream chapter and its expanded relationships.

Parameters:
  - source: mangadex.Chapter (fetched with manga, user and scanlation_group includes)

Returns:
  - Record: Entities ready for upsert; Groups keep upstream order
  - error: ErrMissingRelationship, or an attribute decoding failure
*/
func ToRecord(source mangadex.Chapter) (Record, error) {

	// 1. Required relationships
	mangaRelationship, ok := source.Find(mangadex.RelationshipManga)
	if !ok {
		return Record{}, fmt.Errorf("%w: chapter %s has no manga", ErrMissingRelationship, source.ID)
	}
	uploaderRelationship, ok := source.Find(mangadex.RelationshipUser)
	if !ok {
		return Record{}, fmt.Errorf("%w: chapter %s has no uploader", ErrMissingRelationship, source.ID)
	}

	// 2. Expanded attributes
	var mangaAttributes mangadex.MangaAttributes
	if err := mangaRelationship.DecodeAttributes(&mangaAttributes); err != nil {
		return Record{}, fmt.Errorf("ingest: decode manga %s: %w", mangaRelationship.ID, err)
	}

	var uploaderAttributes mangadex.UserAttributes
	if err := uploaderRelationship.DecodeAttributes(&uploaderAttributes); err != nil {
		return Record{}, fmt.Errorf("ingest: decode user %s: %w", uploaderRelationship.ID, err)
	}

	groupRelationships := source.FindAll(mangadex.RelationshipScanlationGroup)
	groups := make([]*group.Group, 0, len(groupRelationships))
	for _, relationship := range groupRelationships {
		var attributes mangadex.ScanlationGroupAttributes
		if err := relationship.DecodeAttributes(&attributes); err != nil {
			return Record{}, fmt.Errorf("ingest: decode group %s: %w", relationship.ID, err)
		}
		groups = append(groups, &group.Group{ID: relationship.ID, Name: attributes.Name})
	}

	// 3. Assemble
	title := manga.Titles(mangaAttributes.Title)
	if title == nil {
		title = manga.Titles{}
	}

	return Record{
		Chapter: &chapter.Chapter{
			ID:                 source.ID,
			Title:              pointer.NonBlank(source.Attributes.Title),
			Chapter:            pointer.NonBlank(source.Attributes.Chapter),
			Volume:             pointer.NonBlank(source.Attributes.Volume),
			PublishedAt:        source.Attributes.PublishAt.UTC(),
			TranslatedLanguage: source.Attributes.TranslatedLanguage,
			MangaID:            mangaRelationship.ID,
			UploaderID:         uploaderRelationship.ID,
			GroupIDs:           lo.Map(groups, func(g *group.Group, _ int) string { return g.ID }),
		},
		Uploader: &user.User{ID: uploaderRelationship.ID, Username: uploaderAttributes.Username},
		Groups:   groups,
		Manga: &manga.Manga{
			ID:               mangaRelationship.ID,
			Title:            title,
			OriginalLanguage: mangaAttributes.OriginalLanguage,
		},
	}, nil
}
