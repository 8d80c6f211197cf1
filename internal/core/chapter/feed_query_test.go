// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package chapter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/*
TestBuildFeedQuery_SingleBranch verifies that only present dimensions are constrained.
*/
func TestBuildFeedQuery_SingleBranch(t *testing.T) {
	query, args, ok := buildFeedQuery([]FeedFilter{{
		MangaIDs:            []string{"m1", "m2"},
		TranslatedLanguages: []string{"en"},
	}}, FeedLimit)
	require.True(t, ok)

	assert.Contains(t, query, "c.mangauuid = ANY($1)")
	assert.Contains(t, query, "c.translatedlanguage = ANY($2)")
	assert.NotContains(t, query, "c.uploaderuuid = ANY")
	assert.NotContains(t, query, "&&")
	assert.NotContains(t, query, " OR ")

	assert.Contains(t, query, "FROM mdrss.chapter AS c")
	assert.Contains(t, query, "JOIN mdrss.manga AS m ON m.uuid = c.mangauuid")
	assert.Contains(t, query, "JOIN mdrss.uploader AS u ON u.uuid = c.uploaderuuid")
	assert.Contains(t, query, "ORDER BY c.publishedat DESC")
	assert.Contains(t, query, "LIMIT")

	require.GreaterOrEqual(t, len(args), 2)
	assert.Equal(t, []string{"m1", "m2"}, args[0])
	assert.Equal(t, []string{"en"}, args[1])
}

/*
TestBuildFeedQuery_Disjunction verifies that branches are OR-ed in input order.
*/
func TestBuildFeedQuery_Disjunction(t *testing.T) {
	query, args, ok := buildFeedQuery([]FeedFilter{
		{GroupIDs: []string{"g1"}},
		{},
		{UserIDs: []string{"u1"}, OriginalLanguages: []string{"ja", "ko"}},
	}, FeedLimit)
	require.True(t, ok)

	assert.Contains(t, query, "c.groupuuids && $1")
	assert.Contains(t, query, "c.uploaderuuid = ANY($2)")
	assert.Contains(t, query, "m.originallanguage = ANY($3)")
	assert.Equal(t, 1, strings.Count(query, " OR "))

	assert.Equal(t, []string{"g1"}, args[0])
	assert.Equal(t, []string{"u1"}, args[1])
	assert.Equal(t, []string{"ja", "ko"}, args[2])
}

/*
TestBuildFeedQuery_NothingToQuery verifies that unconstrained input yields no statement.
*/
func TestBuildFeedQuery_NothingToQuery(t *testing.T) {
	_, _, ok := buildFeedQuery(nil, FeedLimit)
	assert.False(t, ok)

	_, _, ok = buildFeedQuery([]FeedFilter{{}, {}}, FeedLimit)
	assert.False(t, ok)
}
