package ingest

import (
	"crypto/rand"
	"regexp"
	"strings"
)

const (
	maxSlugBaseLength = 80
	slugSuffixLength  = 6
	slugSuffixRunes   = "0123456789abcdefghijklmnopqrstuvwxyz"
)

var (
	slugDisallowed    = regexp.MustCompile(`[^\w\s-]`)
	slugWhitespaceRun = regexp.MustCompile(`\s+`)
	slugHyphenRun     = regexp.MustCompile(`-+`)
)

// CleanSlug reduces a display title to its URL-safe base form: lowercase,
// special characters stripped, whitespace and hyphen runs collapsed to single
// hyphens, truncated. Running it on its own output is a fixed point.
func CleanSlug(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = slugDisallowed.ReplaceAllString(s, "")
	s = slugWhitespaceRun.ReplaceAllString(s, "-")
	s = slugHyphenRun.ReplaceAllString(s, "-")
	if len(s) > maxSlugBaseLength {
		s = s[:maxSlugBaseLength]
	}
	return s
}

// NewSlug derives a slug from a display title with a random base-36 suffix
// appended. Uniqueness is probabilistic only; the storage layer carries a
// unique constraint and callers regenerate on conflict.
func NewSlug(title string) string {
	return CleanSlug(title) + "-" + slugSuffix(slugSuffixLength)
}

func slugSuffix(n int) string {
	b := make([]byte, n)
	rand.Read(b)
	for i := range b {
		b[i] = slugSuffixRunes[int(b[i])%len(slugSuffixRunes)]
	}
	return string(b)
}
