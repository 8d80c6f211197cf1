// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package user stores the MangaDex accounts that upload chapters.

Rows are keyed by the upstream UUID and only ever upserted, never deleted.
*/
package user

import "time"

// User is a MangaDex uploader.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
