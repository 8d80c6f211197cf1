// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package group

import "context"

// # Group Data Access

// Repository defines the data access contract for scanlation groups.
type Repository interface {

	/*
		UpsertMany inserts or refreshes groups in a single transaction.

		Parameters:
		  - context: context.Context
		  - groups: []*Group (unique IDs)

		Returns:
		  - error: Persistence failures; nothing is written on error
	*/
	UpsertMany(context context.Context, groups []*Group) error

	/*
		FindByIDs resolves a set of group UUIDs in one round-trip.

		Parameters:
		  - context: context.Context
		  - ids: []string

		Returns:
		  - []*Group: Known groups, in no particular order; unknown IDs are absent
		  - error: Database retrieval failures
	*/
	FindByIDs(context context.Context, ids []string) ([]*Group, error)
}
