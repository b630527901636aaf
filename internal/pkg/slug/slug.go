package slug

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// polishMap transliterates Polish diacritics to their ASCII equivalents.
var polishMap = map[rune]rune{
	'ą': 'a', 'ć': 'c', 'ę': 'e', 'ł': 'l', 'ń': 'n',
	'ó': 'o', 'ś': 's', 'ź': 'z', 'ż': 'z',
	'Ą': 'A', 'Ć': 'C', 'Ę': 'E', 'Ł': 'L', 'Ń': 'N',
	'Ó': 'O', 'Ś': 'S', 'Ź': 'Z', 'Ż': 'Z',
}

var (
	nonWordPattern    = regexp.MustCompile(`[^\w\s-]`)
	whitespacePattern = regexp.MustCompile(`[\s_]+`)
	hyphenRunPattern  = regexp.MustCompile(`-+`)
)

// Slugify converts arbitrary text into a URL-friendly slug: Polish diacritics
// are transliterated to ASCII, the result is lower-cased, characters outside
// [word, whitespace, hyphen] are stripped, whitespace and underscore runs
// collapse to a single hyphen, and leading/trailing hyphens are trimmed.
// Total on any input; returns "" when nothing survives.
func Slugify(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if mapped, ok := polishMap[r]; ok {
			r = mapped
		}
		b.WriteRune(r)
	}

	s := strings.ToLower(strings.TrimSpace(b.String()))
	s = nonWordPattern.ReplaceAllString(s, "")
	s = whitespacePattern.ReplaceAllString(s, "-")
	s = hyphenRunPattern.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// Exists reports whether a slug is already taken. excludeID is non-zero on
// update paths, so a record keeps its own slug without counting as a collision.
type Exists func(ctx context.Context, slug string, excludeID int64) (bool, error)

// Unique resolves slug collisions by appending an incrementing numeric suffix:
// base, base-1, base-2, ... until a free slug is found. One existence check per
// attempt; terminates for any finite collection.
func Unique(ctx context.Context, base string, excludeID int64, exists Exists) (string, error) {
	candidate := base
	for counter := 1; ; counter++ {
		taken, err := exists(ctx, candidate, excludeID)
		if err != nil {
			return "", fmt.Errorf("checking slug %q: %w", candidate, err)
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, counter)
	}
}
