package utils

import (
	"strings"
	"unicode"

	"github.com/google/uuid"
)

const maxSlugRunes = 60

// Slugify keeps letters (Arabic included) and digits and joins words with '-'.
func Slugify(title string) string {
	var b strings.Builder
	dash := false
	n := 0
	for _, r := range strings.ToLower(title) {
		if n >= maxSlugRunes {
			break
		}
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			dash = false
			n++
		case !dash && b.Len() > 0:
			b.WriteRune('-')
			dash = true
			n++
		}
	}
	return strings.Trim(b.String(), "-")
}

// NewSlug returns Slugify(title) plus an 8 hex digit random suffix.
func NewSlug(title string) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	if base := Slugify(title); base != "" {
		return base + "-" + suffix
	}
	return suffix
}
