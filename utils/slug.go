package utils

import (
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// Slugify lowercases s and reduces it to ASCII letters, digits and hyphens.
// Returns "post" for input with no usable characters so callers always get a
// non-empty slug.
func Slugify(s string) string {
	var b strings.Builder
	lastHyphen := true // suppress leading hyphen
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		case unicode.IsSpace(r) || r == '-' || r == '_' || r == '/':
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	slug := strings.TrimRight(b.String(), "-")
	if slug == "" {
		return "post"
	}
	return slug
}

// UniqueSlug derives a slug from s and, when exists reports a collision,
// retries with short random suffixes until it finds a free one.
func UniqueSlug(s string, exists func(string) (bool, error)) (string, error) {
	slug := Slugify(s)
	taken, err := exists(slug)
	if err != nil {
		return "", err
	}
	for taken {
		candidate := slug + "-" + uuid.NewString()[:8]
		taken, err = exists(candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}
	return slug, nil
}
