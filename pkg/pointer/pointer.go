// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package pointer handles the optional string attributes of chapters.

MangaDex reports a missing volume, chapter number or title either as null or
as an empty string. Stored chapters use nil for both, so renderers only have
to check one thing.
*/
package pointer

import "strings"

// To returns a pointer to v.
func To[T any](v T) *T {
	return &v
}

// Val dereferences p, returning the zero value when p is nil.
func Val[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}

// NonBlank returns nil for nil, empty and whitespace-only strings, and p otherwise.
func NonBlank(p *string) *string {
	if p == nil || strings.TrimSpace(*p) == "" {
		return nil
	}
	return p
}
