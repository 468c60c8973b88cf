// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package i18n resolves the trilingual content model. A project or blog
// post carries primary-locale (French) values on its main record plus
// sparse per-locale overlay rows; this package force-merges them into a
// fully resolved view for a requested locale.
//
// Missing translations are never an error: public rendering always falls
// back silently to the primary locale, then to an empty value.
package i18n

// Locale identifies one of the supported site languages.
type Locale string

const (
	// LocaleFR is the primary locale; primary fields carry no suffix.
	LocaleFR Locale = "fr"
	LocaleEN Locale = "en"
	LocaleAR Locale = "ar"
)

// Locales lists every supported locale, primary first.
var Locales = []Locale{LocaleFR, LocaleEN, LocaleAR}

// Parse returns the locale for s, or (LocaleFR, false) when s is not a
// supported language code.
func Parse(s string) (Locale, bool) {
	switch Locale(s) {
	case LocaleFR, LocaleEN, LocaleAR:
		return Locale(s), true
	}
	return LocaleFR, false
}

// Translated reports whether l is a locale that needs an overlay row
// (everything except the primary locale).
func Translated(l Locale) bool {
	return l != LocaleFR
}

// ResolveField resolves one field of a suffix-shaped record for a locale:
// record["<field>_<locale>"] when present and non-empty, else the primary
// record["<field>"], else the empty value ("" for scalars, an empty slice
// when either candidate was array-typed).
func ResolveField(record map[string]any, locale Locale, field string) any {
	translated, hasTranslated := record[field+"_"+string(locale)]
	if Translated(locale) && hasTranslated && !isEmpty(translated) {
		return translated
	}

	primary, hasPrimary := record[field]
	if hasPrimary && !isEmpty(primary) {
		return primary
	}

	// Empty fallback, shaped after whichever candidate existed.
	if isSlice(translated) || isSlice(primary) {
		return []any{}
	}
	return ""
}

// isEmpty reports whether v counts as "no value" for fallback purposes.
func isEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case []any:
		return len(t) == 0
	case []string:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	}
	return false
}

func isSlice(v any) bool {
	switch v.(type) {
	case []any, []string:
		return true
	}
	return false
}
