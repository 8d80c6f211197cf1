// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package manga

import "context"

// # Manga Data Access

// Repository defines the data access contract for manga.
type Repository interface {

	/*
		UpsertMany inserts or refreshes manga in a single transaction.
		Titles are replaced wholesale, not merged.

		Parameters:
		  - context: context.Context
		  - mangas: []*Manga (unique IDs)

		Returns:
		  - error: Persistence failures; nothing is written on error
	*/
	UpsertMany(context context.Context, mangas []*Manga) error

	/*
		FindByID retrieves a manga by its MangaDex UUID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *Manga: Hydrated entity
		  - error: apperr NotFound if missing
	*/
	FindByID(context context.Context, id string) (*Manga, error)
}
