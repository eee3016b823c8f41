package compose

import (
	"fmt"
	"strings"
	"unicode"
)

// Text passed to drawtext is unescaped three times by ffmpeg: by the
// filtergraph parser, by the filter option parser and by drawtext's own
// %{...} expansion. Each level gets its own backslash escaping, innermost first.
const (
	drawtextSpecials = `\%`
	optionSpecials   = `\':`
	graphSpecials    = `\'[],;`
)

// EscapeText makes s safe to use as the text option of a drawtext filter
// inside a -vf chain. Control characters are folded to spaces.
func EscapeText(s string) string {
	s = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, s)
	s = strings.TrimSpace(s)

	s = escapeLevel(s, drawtextSpecials)
	s = escapeLevel(s, optionSpecials)
	return escapeLevel(s, graphSpecials)
}

// EscapeOptionValue escapes a plain filter option value such as a font path.
func EscapeOptionValue(s string) string {
	return escapeLevel(escapeLevel(s, optionSpecials), graphSpecials)
}

// ValidateFilterText reports whether escaped survives every parsing level
// without a bare separator, quote or dangling backslash.
func ValidateFilterText(escaped string) error {
	_, err := unescapeText(escaped)
	return err
}

func unescapeText(escaped string) (string, error) {
	s, err := unescapeLevel(escaped, graphSpecials)
	if err != nil {
		return "", fmt.Errorf("filtergraph level: %w", err)
	}
	if s, err = unescapeLevel(s, optionSpecials); err != nil {
		return "", fmt.Errorf("option level: %w", err)
	}
	if s, err = unescapeLevel(s, drawtextSpecials); err != nil {
		return "", fmt.Errorf("drawtext level: %w", err)
	}
	return s, nil
}

func escapeLevel(s, specials string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if strings.ContainsRune(specials, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func unescapeLevel(s, specials string) (string, error) {
	var b strings.Builder
	b.Grow(len(s))
	escaped := false
	for i, r := range s {
		switch {
		case escaped:
			b.WriteRune(r)
			escaped = false
		case r == '\\':
			escaped = true
		case strings.ContainsRune(specials, r):
			return "", fmt.Errorf("unescaped %q at offset %d", r, i)
		default:
			b.WriteRune(r)
		}
	}
	if escaped {
		return "", fmt.Errorf("dangling backslash")
	}
	return b.String(), nil
}
