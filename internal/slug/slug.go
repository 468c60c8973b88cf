// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug provides URL-friendly slug generation from arbitrary titles.
// Titles may be French or contain accented Latin characters; accents are
// transliterated to their ASCII equivalents before normalization.
package slug

import (
	"fmt"
	"regexp"
	"strings"
)

// Fallback is returned when normalization leaves nothing usable,
// e.g. a title made entirely of Arabic script or punctuation.
const Fallback = "item"

var (
	// nonAlphanumeric matches anything that isn't a lowercase letter,
	// digit, whitespace, or hyphen after transliteration.
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9\s-]`)
	// separatorRuns collapses runs of whitespace and hyphens into one hyphen.
	separatorRuns = regexp.MustCompile(`[\s-]+`)
	// validSlug is the canonical slug charset.
	validSlug = regexp.MustCompile(`^[a-z0-9-]+$`)
)

// transliterations maps accented Latin characters to ASCII equivalents.
// Covers the French alphabet plus the general á/í/ó/ú families.
var transliterations = map[rune]rune{
	'é': 'e', 'è': 'e', 'ê': 'e', 'ë': 'e',
	'à': 'a', 'â': 'a', 'ä': 'a', 'á': 'a', 'ã': 'a', 'å': 'a',
	'î': 'i', 'ï': 'i', 'í': 'i', 'ì': 'i',
	'ô': 'o', 'ö': 'o', 'ó': 'o', 'ò': 'o', 'õ': 'o',
	'ù': 'u', 'û': 'u', 'ü': 'u', 'ú': 'u',
	'ý': 'y', 'ỳ': 'y', 'ŷ': 'y', 'ÿ': 'y',
	'ç': 'c',
	'ñ': 'n',
}

// Generate creates a URL-friendly slug from the given string.
// Example: "Café & Thé, 2026!" → "cafe-the-2026"
// Returns Fallback if nothing survives normalization.
func Generate(s string) string {
	result := strings.ToLower(strings.TrimSpace(s))
	result = strings.Map(func(r rune) rune {
		if t, ok := transliterations[r]; ok {
			return t
		}
		return r
	}, result)
	result = nonAlphanumeric.ReplaceAllString(result, "")
	result = separatorRuns.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")
	if result == "" {
		return Fallback
	}
	return result
}

// Unique generates a slug from title and de-duplicates it against existing
// slugs by appending -1, -2, … until no collision remains.
func Unique(title string, existing []string) string {
	base := Generate(title)

	taken := make(map[string]bool, len(existing))
	for _, s := range existing {
		taken[s] = true
	}

	if !taken[base] {
		return base
	}
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s-%d", base, i)
		if !taken[candidate] {
			return candidate
		}
	}
}

// Validate checks whether s is an acceptable slug. It returns false with a
// human-readable message on the first rule violated; it never panics.
func Validate(s string) (bool, string) {
	if s == "" {
		return false, "slug is required"
	}
	if len(s) < 2 || len(s) > 100 {
		return false, "slug must be between 2 and 100 characters"
	}
	if !validSlug.MatchString(s) {
		return false, "slug may only contain lowercase letters, digits, and hyphens"
	}
	if strings.HasPrefix(s, "-") || strings.HasSuffix(s, "-") {
		return false, "slug must not start or end with a hyphen"
	}
	if strings.Contains(s, "--") {
		return false, "slug must not contain consecutive hyphens"
	}
	return true, ""
}
