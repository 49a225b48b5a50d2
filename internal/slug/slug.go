// Package slug derives unique URL-safe identifiers from video titles.
package slug

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fallback is used when a title has no usable characters.
const Fallback = "video"

const maxBaseLen = 80

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// ExistsFunc reports whether a candidate slug is already taken.
type ExistsFunc func(ctx context.Context, candidate string) (bool, error)

// Normalize turns a title into its lowercase, hyphenated base token.
func Normalize(title string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	s, _, err := transform.String(t, title)
	if err != nil {
		s = title
	}
	s = strings.ToLower(s)
	s = nonAlnum.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if len(s) > maxBaseLen {
		s = strings.TrimRight(s[:maxBaseLen], "-")
	}
	if s == "" {
		return Fallback
	}
	return s
}

// Allocate returns the first candidate derived from title that exists reports
// as free: the base token itself, then base-2, base-3 and so on.
func Allocate(ctx context.Context, title string, exists ExistsFunc) (string, error) {
	base := Normalize(title)
	candidate := base
	for n := 2; ; n++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("check slug %q: %w", candidate, err)
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, n)
	}
}
