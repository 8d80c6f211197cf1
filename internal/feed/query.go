// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package feed

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
	"golang.org/x/text/cases"

	"github.com/taibuivan/mdrss/internal/core/chapter"
	"github.com/taibuivan/mdrss/internal/platform/apperr"
	"github.com/taibuivan/mdrss/pkg/query"
)

// MaxQueries is the number of OR-groups one request may carry.
const MaxQueries = 10

// Filter kinds accepted in a q parameter.
const (
	KindManga              = "manga"
	KindUser               = "user"
	KindGroup              = "group"
	KindTranslatedLanguage = "tl"
	KindOriginalLanguage   = "ol"
)

// Filter is one OR-group of a feed request.
type Filter = chapter.FeedFilter

/*
ParseQuery turns the repeated q parameter into filters.

Each value is one OR-group of comma-separated "<kind>:<value>" tokens. Kinds
and values are case-folded; tokens of the same kind accumulate. Tokens with an
unknown kind, no colon or an empty value are ignored, and a group left with
no usable token is dropped.

Parameters:
  - values: []string (raw q values, in request order)

Returns:
  - []Filter: One per actionable group, in request order
  - error: apperr ValidationError when nothing is actionable or there are too many groups
*/
func ParseQuery(values []string) ([]Filter, error) {
	groups := make([][]string, 0, len(values))
	for _, value := range values {
		if tokens := query.StringSlice(value); len(tokens) > 0 {
			groups = append(groups, tokens)
		}
	}

	if len(groups) > MaxQueries {
		return nil, apperr.ValidationError(fmt.Sprintf("Too many queries in a single request (max %d)", MaxQueries))
	}

	folder := cases.Fold()
	filters := make([]Filter, 0, len(groups))
	for _, tokens := range groups {
		filter := parseGroup(tokens, folder)
		if !filter.IsEmpty() {
			filters = append(filters, filter)
		}
	}

	if len(filters) == 0 {
		return nil, apperr.ValidationError("No actionable queries")
	}
	return filters, nil
}

func parseGroup(tokens []string, folder cases.Caser) Filter {
	var filter Filter

	for _, token := range tokens {
		kind, value, found := strings.Cut(token, ":")
		if !found {
			continue
		}

		kind = folder.String(strings.TrimSpace(kind))
		value = folder.String(strings.TrimSpace(value))
		if value == "" {
			continue
		}

		switch kind {
		case KindManga:
			filter.MangaIDs = append(filter.MangaIDs, value)
		case KindUser:
			filter.UserIDs = append(filter.UserIDs, value)
		case KindGroup:
			filter.GroupIDs = append(filter.GroupIDs, value)
		case KindTranslatedLanguage:
			filter.TranslatedLanguages = append(filter.TranslatedLanguages, value)
		case KindOriginalLanguage:
			filter.OriginalLanguages = append(filter.OriginalLanguages, value)
		}
	}

	filter.MangaIDs = uniq(filter.MangaIDs)
	filter.UserIDs = uniq(filter.UserIDs)
	filter.GroupIDs = uniq(filter.GroupIDs)
	filter.TranslatedLanguages = uniq(filter.TranslatedLanguages)
	filter.OriginalLanguages = uniq(filter.OriginalLanguages)
	return filter
}

func uniq(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	return lo.Uniq(values)
}
