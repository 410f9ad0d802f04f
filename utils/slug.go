package utils

import "github.com/gosimple/slug"

// Slugify derives a URL-safe identifier from a title. Lowercases,
// transliterates accented characters and collapses whitespace/punctuation
// into single dashes. Deterministic and idempotent: Slugify(Slugify(x)) == Slugify(x).
func Slugify(title string) string {
	return slug.Make(title)
}
