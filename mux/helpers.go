package mux

import (
	"net/http"
	"slices"
	"strings"
	"unicode"

	"golang.org/x/net/http/httpguts"
)

// supportedMethods is the fixed set of methods a route may be registered for.
// HEAD is served by GET routes and is never registered directly.
var supportedMethods = []string{
	http.MethodGet,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
	http.MethodOptions,
}

// SupportedMethods returns the HTTP methods routes can be registered for.
func SupportedMethods() []string {
	return slices.Clone(supportedMethods)
}

// NormalizePath returns the canonical form of p: whitespace runs and repeated
// separators collapse into a single "/", the result has exactly one leading
// separator and no trailing one, and an empty result becomes "/".
func NormalizePath(p string) string {
	var b strings.Builder
	b.Grow(len(p) + 1)

	pending := false
	for _, c := range p {
		if c == '/' || unicode.IsSpace(c) {
			pending = true
			continue
		}
		if pending || b.Len() == 0 {
			b.WriteByte('/')
			pending = false
		}
		b.WriteRune(c)
	}

	if b.Len() == 0 {
		return "/"
	}
	return b.String()
}

// normalizeMethods uppercases methods and splits them into supported and
// rejected ones. Tokens that are not valid per RFC 9110 Section 9.1 are
// rejected as-is.
func normalizeMethods(methods []string) (valid, rejected []string) {
	valid = make([]string, 0, len(methods))
	for _, m := range methods {
		if !validMethod(m) {
			rejected = append(rejected, m)
			continue
		}
		m = strings.ToUpper(m)
		if !matchInArray(supportedMethods, m) {
			rejected = append(rejected, m)
			continue
		}
		if !matchInArray(valid, m) {
			valid = append(valid, m)
		}
	}
	return valid, rejected
}

// validMethod reports whether m is a non-empty HTTP token.
func validMethod(m string) bool {
	return len(m) > 0 && strings.IndexFunc(m, isNotToken) == -1
}

func isNotToken(r rune) bool {
	return !httpguts.IsTokenRune(r)
}

// matchInArray returns true if the given string value is in the array.
func matchInArray(arr []string, value string) bool {
	for _, v := range arr {
		if v == value {
			return true
		}
	}
	return false
}

// allowedMethods returns the registered methods whose routes match path.
// Used to populate the Allow header on OPTIONS fallbacks
// (RFC 9110 Section 10.2.1). The result is sorted alphabetically.
func allowedMethods(router *Router, path string) []string {
	var allowed []string
	for _, method := range supportedMethods {
		if _, err := router.FindMatch(method, path); err == nil {
			allowed = append(allowed, method)
		}
	}
	if matchInArray(allowed, http.MethodGet) {
		allowed = append(allowed, http.MethodHead)
	}
	slices.Sort(allowed)
	return allowed
}
