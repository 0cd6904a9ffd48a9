package http

import (
	"net/http"
	"time"

	"github.com/km-arc/go-depmanager/framework/routing"
)

// Request wraps *http.Request with Laravel-style helpers.
type Request struct {
	raw *http.Request
}

// NewRequest wraps a standard *http.Request.
func NewRequest(r *http.Request) *Request {
	return &Request{raw: r}
}

// Raw returns the underlying *http.Request.
func (req *Request) Raw() *http.Request { return req.raw }

// Query returns a query-string value.
func (req *Request) Query(key string, fallback ...string) string {
	v := req.raw.URL.Query().Get(key)
	if v == "" && len(fallback) > 0 {
		return fallback[0]
	}
	return v
}

// Duration parses a query-string duration such as "250ms" or "5s". A
// missing value returns fallback; a malformed one returns ok=false.
func (req *Request) Duration(key string, fallback time.Duration) (d time.Duration, ok bool) {
	v := req.raw.URL.Query().Get(key)
	if v == "" {
		return fallback, true
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		return 0, false
	}
	return d, true
}

// Param returns a route parameter (Laravel $request->route('name'))
func (req *Request) Param(key string) string {
	return routing.Param(req.raw, key)
}
