// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// UploaderTable represents the 'mdrss.uploader' table holding MangaDex users.
type UploaderTable struct {
	Table     string
	UUID      string
	Username  string
	CreatedAt string
	UpdatedAt string
}

// Uploader is the schema definition for mdrss.uploader
var Uploader = UploaderTable{
	Table:     "mdrss.uploader",
	UUID:      "uuid",
	Username:  "username",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}
