package utils

import (
	rndm "math/rand"
	"net/http"
	"regexp"
	"strconv"
	"strings"
)

// --- Random String and ID Generators ---

var letterRunes = []rune("abcdefghijklmnopqrstuvwxyz0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ")
var hexRunes = []rune("0123456789abcdef")

// GenerateRandomString creates a random alphanumeric string of length n.
func GenerateRandomString(n int) string {
	b := make([]rune, n)
	for i := range b {
		b[i] = letterRunes[rndm.Intn(len(letterRunes))]
	}
	return string(b)
}

// GenerateRandomHexString creates a random lowercase hex string of length n.
// Reset tokens use this so they survive email clients that mangle case.
func GenerateRandomHexString(n int) string {
	b := make([]rune, n)
	for i := range b {
		b[i] = hexRunes[rndm.Intn(len(hexRunes))]
	}
	return string(b)
}

// --- Slugs ---

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases and collapses everything non-alphanumeric to hyphens.
func Slugify(name string) string {
	s := slugStrip.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(s, "-")
}

// --- Pagination ---

// ParsePageParams reads page and pageSize query params. Page numbers are
// 1-based; out-of-range values fall back to the defaults.
func ParsePageParams(r *http.Request, defaultSize, maxSize int) (page, pageSize int) {
	q := r.URL.Query()

	page, _ = strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}

	pageSize, _ = strconv.Atoi(q.Get("pageSize"))
	if pageSize < 1 {
		pageSize = defaultSize
	}
	if pageSize > maxSize {
		pageSize = maxSize
	}
	return page, pageSize
}
