// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package request provides utilities for extracting data from HTTP requests.

It hides proxy header handling and repeated query parameters behind small
helpers so handlers read the same way everywhere.
*/
package requestutil

import (
	"net/http"
	"strings"
)

// Forwarding headers set by reverse proxies.
const (
	headerForwardedProto = "X-Forwarded-Proto"
	headerForwardedHost  = "X-Forwarded-Host"
)

/*
Values returns every value of a repeated query parameter in request order.
*/
func Values(request *http.Request, name string) []string {
	return request.URL.Query()[name]
}

/*
Value returns the first value of a query parameter, or "".
*/
func Value(request *http.Request, name string) string {
	return request.URL.Query().Get(name)
}

/*
Origin returns the scheme and host the client used to reach the service.

Parameters:
  - request: *http.Request
  - publicBaseURL: string (configured origin; wins when set)

Returns:
  - string: Origin without trailing slash, e.g. "https://mdrss.example.org"
*/
func Origin(request *http.Request, publicBaseURL string) string {
	if publicBaseURL != "" {
		return strings.TrimRight(publicBaseURL, "/")
	}

	scheme := "http"
	if request.TLS != nil {
		scheme = "https"
	}
	if forwarded := request.Header.Get(headerForwardedProto); forwarded != "" {
		scheme = strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}

	host := request.Host
	if forwarded := request.Header.Get(headerForwardedHost); forwarded != "" {
		host = strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}

	return scheme + "://" + host
}

/*
AbsoluteURL rebuilds the full URL of the request, query string included.
*/
func AbsoluteURL(request *http.Request, publicBaseURL string) string {
	return Origin(request, publicBaseURL) + request.URL.RequestURI()
}
