// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package group stores the scanlation groups credited on chapters.

Groups are resolved in batches when a feed is rendered: a chapter only keeps
the ordered list of group UUIDs, and the names are looked up for the whole
result set in one query.
*/
package group

import "time"

// Group is a MangaDex scanlation group.
type Group struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
