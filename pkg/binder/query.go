package binder

import "net/http"

// Query creates a binder that populates fields tagged with `query` from
// the URL query string. Slices accept repeated or comma-separated values.
func Query() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		q := r.URL.Query()
		return bindFields(v, "query", func(name string) []string { return q[name] }, ErrFailedToParseQuery)
	}
}
