package httpx

import (
	"net/http"

	"golang.org/x/text/language"
)

// localeFrom returns the request's locale path segment when present and
// well-formed ("es", "en-US"). Routes are registered both with and without
// the "/{locale}" prefix; an unparseable segment is treated as absent so
// redirects never echo arbitrary path input.
func localeFrom(r *http.Request) string {
	seg := r.PathValue("locale")
	if seg == "" {
		return ""
	}
	if _, err := language.Parse(seg); err != nil {
		return ""
	}
	return seg
}

// localePath prefixes path with the request's locale segment, when any.
func localePath(r *http.Request, path string) string {
	if locale := localeFrom(r); locale != "" {
		return "/" + locale + path
	}
	return path
}

func accountPath(r *http.Request) string { return localePath(r, "/account") }

func loginPath(r *http.Request) string { return localePath(r, "/account/login") }
