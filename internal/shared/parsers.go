// filepath: internal/shared/parsers.go
package shared

import (
	"regexp"
	"strings"
)

const maxTagNameLength = 64

var whitespaceRun = regexp.MustCompile(`\s+`)

// NormalizeTagName trims, lower-cases and collapses inner whitespace.
// It returns "" for names that are blank or too long.
func NormalizeTagName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.TrimPrefix(n, "#")
	n = whitespaceRun.ReplaceAllString(n, " ")
	if n == "" || len(n) > maxTagNameLength {
		return ""
	}
	return n
}

// ParseTagNames splits a comma separated tag string into unique normalized names,
// keeping the order of first appearance.
func ParseTagNames(input string) []string {
	return UniqueTagNames(strings.Split(input, ","))
}

// UniqueTagNames normalizes and de-duplicates a list of tag names.
func UniqueTagNames(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, raw := range names {
		n := NormalizeTagName(raw)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

// ValidCategoryName reports whether a category name can be stored.
func ValidCategoryName(name string) bool {
	n := strings.TrimSpace(name)
	return n != "" && len(n) <= maxTagNameLength
}
