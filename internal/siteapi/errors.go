package siteapi

import (
	"fmt"
)

// NetworkError reports a request that did not complete or returned a non-2xx status.
type NetworkError struct {
	// URL is the requested address.
	URL string
	// StatusCode is the HTTP status, zero when no response was received.
	StatusCode int
	// Err is the underlying transport error, if any.
	Err error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ParseError reports a response body that could not be parsed as HTML.
type ParseError struct {
	URL string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.URL, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
