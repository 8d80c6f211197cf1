// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package requestutil_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	requestutil "github.com/taibuivan/mdrss/internal/platform/request"
)

/*
TestAbsoluteURL covers configured origins and proxy headers.
*/
func TestAbsoluteURL(t *testing.T) {
	request := httptest.NewRequest(http.MethodGet, "http://internal:8080/feed?q=tl:en&format=atom1", nil)

	assert.Equal(t, "http://internal:8080/feed?q=tl:en&format=atom1", requestutil.AbsoluteURL(request, ""))
	assert.Equal(t, "https://mdrss.example.org/feed?q=tl:en&format=atom1", requestutil.AbsoluteURL(request, "https://mdrss.example.org/"))

	request.Header.Set("X-Forwarded-Proto", "https")
	request.Header.Set("X-Forwarded-Host", "feeds.example.org")
	assert.Equal(t, "https://feeds.example.org/feed?q=tl:en&format=atom1", requestutil.AbsoluteURL(request, ""))
}

/*
TestValues verifies repeated parameters keep their order.
*/
func TestValues(t *testing.T) {
	request := httptest.NewRequest(http.MethodGet, "/feed?q=manga:a&q=group:b&format=json1", nil)

	assert.Equal(t, []string{"manga:a", "group:b"}, requestutil.Values(request, "q"))
	assert.Equal(t, "json1", requestutil.Value(request, "format"))
	assert.Nil(t, requestutil.Values(request, "missing"))
}
