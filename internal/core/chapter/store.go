// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package chapter

import (
	"context"
	"time"
)

// # Chapter Data Access

// Repository defines the data access contract for chapters.
type Repository interface {

	/*
		UpsertMany inserts or refreshes chapters in a single transaction.
		The referenced manga and uploader rows must already exist.

		Parameters:
		  - context: context.Context
		  - chapters: []*Chapter (unique IDs)

		Returns:
		  - error: Persistence failures; nothing is written on error
	*/
	UpsertMany(context context.Context, chapters []*Chapter) error

	/*
		LatestPublishedAt returns the ingestion watermark.

		Parameters:
		  - context: context.Context

		Returns:
		  - *time.Time: Greatest publication time stored, nil when empty
		  - error: Database retrieval failures
	*/
	LatestPublishedAt(context context.Context) (*time.Time, error)

	/*
		ListFeed returns the newest chapters matching any of the filters.

		Parameters:
		  - context: context.Context
		  - filters: []FeedFilter (OR-ed; dimensions inside one filter are AND-ed)
		  - limit: int

		Returns:
		  - []*FeedRow: Chapters with manga and uploader, newest first
		  - error: Database retrieval failures
	*/
	ListFeed(context context.Context, filters []FeedFilter, limit int) ([]*FeedRow, error)
}
