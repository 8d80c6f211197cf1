// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package manga_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/mdrss/internal/core/manga"
)

/*
TestDisplayTitle covers the language fallback chain.
*/
func TestDisplayTitle(t *testing.T) {
	tests := []struct {
		name     string
		titles   manga.Titles
		language string
		want     string
	}{
		{"exact_language", manga.Titles{"fr": "Le Titre", "en": "The Title"}, "fr", "Le Titre"},
		{"english_fallback", manga.Titles{"ja": "題名", "en": "The Title"}, "fr", "The Title"},
		{"lowest_code_fallback", manga.Titles{"zh": "标题", "ja": "題名"}, "fr", "題名"},
		{"skips_empty_values", manga.Titles{"de": "", "ko": "제목"}, "de", "제목"},
		{"no_titles", manga.Titles{}, "en", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subject := &manga.Manga{ID: "m1", Title: tt.titles}
			assert.Equal(t, tt.want, subject.DisplayTitle(tt.language))
		})
	}

	var missing *manga.Manga
	assert.Empty(t, missing.DisplayTitle("en"))
}
