// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package user

import "context"

// # User Data Access

// Repository defines the data access contract for uploaders.
type Repository interface {

	/*
		UpsertMany inserts or refreshes users in a single transaction.

		Parameters:
		  - context: context.Context
		  - users: []*User (unique IDs)

		Returns:
		  - error: Persistence failures; nothing is written on error
	*/
	UpsertMany(context context.Context, users []*User) error

	/*
		FindByID retrieves a user by its MangaDex UUID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *User: Hydrated entity
		  - error: apperr NotFound if missing
	*/
	FindByID(context context.Context, id string) (*User, error)
}
