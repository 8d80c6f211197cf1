// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// ScanlationGroupTable represents the 'mdrss.scanlationgroup' table
type ScanlationGroupTable struct {
	Table     string
	UUID      string
	Name      string
	CreatedAt string
	UpdatedAt string
}

// ScanlationGroup is the schema definition for mdrss.scanlationgroup
var ScanlationGroup = ScanlationGroupTable{
	Table:     "mdrss.scanlationgroup",
	UUID:      "uuid",
	Name:      "name",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}
