// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package i18n

import "amalcms/internal/models"

// FieldSet is the sparse localized field set carried by one overlay row.
// Nil pointers and empty slices mean "not translated".
type FieldSet struct {
	Title        *string
	Excerpt      *string
	PeopleHelped []string
	Content      map[string]any // sparse per-block-index overlay
}

// Resolved is the fully resolved locale view of a project or blog post.
type Resolved struct {
	Locale       Locale          `json:"locale"`
	Title        string          `json:"title"`
	Excerpt      string          `json:"excerpt"`
	PeopleHelped []string        `json:"people_helped"`
	Blocks       []models.Block  `json:"content"`
	FallbackUsed bool            `json:"fallback_used"`
}

// Status reports, per locale, which translated fields an overlay carries.
// It drives admin-UI completeness indicators only; public rendering never
// gates on it.
type Status struct {
	HasTitle   bool `json:"has_title"`
	HasExcerpt bool `json:"has_excerpt"`
	HasContent bool `json:"has_content"`
	Minimal    bool `json:"minimal"`  // title + excerpt present
	Complete   bool `json:"complete"` // minimal + content
}

// OverlaysFromRows indexes translation rows by locale. Rows with an
// unsupported lang are ignored.
func OverlaysFromRows(rows []models.Translation) map[Locale]FieldSet {
	overlays := make(map[Locale]FieldSet, len(rows))
	for _, row := range rows {
		loc, ok := Parse(row.Lang)
		if !ok || !Translated(loc) {
			continue
		}
		overlays[loc] = FieldSet{
			Title:        row.Title,
			Excerpt:      row.Excerpt,
			PeopleHelped: row.PeopleHelped,
			Content:      row.Content,
		}
	}
	return overlays
}

// Resolve produces the locale view of c given its overlay rows. Scalar and
// array fields follow the ResolveField fallback order; content blocks go
// through the sparse overlay merge. Requesting the primary locale returns
// the record as-is (cloned blocks included).
func Resolve(c *models.Content, overlays map[Locale]FieldSet, locale Locale) Resolved {
	record := map[string]any{
		"title":         c.Title,
		"excerpt":       c.Excerpt,
		"people_helped": toAnySlice(c.PeopleHelped),
	}
	for loc, fs := range overlays {
		suffix := "_" + string(loc)
		if fs.Title != nil {
			record["title"+suffix] = *fs.Title
		}
		if fs.Excerpt != nil {
			record["excerpt"+suffix] = *fs.Excerpt
		}
		if len(fs.PeopleHelped) > 0 {
			record["people_helped"+suffix] = toAnySlice(fs.PeopleHelped)
		}
	}

	ov := overlays[locale]
	return Resolved{
		Locale:       locale,
		Title:        asString(ResolveField(record, locale, "title")),
		Excerpt:      asString(ResolveField(record, locale, "excerpt")),
		PeopleHelped: asStringSlice(ResolveField(record, locale, "people_helped")),
		Blocks:       MergeBlocks(c.Blocks, ov.Content, locale),
		FallbackUsed: Translated(locale) && (ov.Title == nil || ov.Excerpt == nil),
	}
}

// TranslationStatus computes per-locale completeness for the translated
// locales (en, ar).
func TranslationStatus(overlays map[Locale]FieldSet) map[Locale]Status {
	out := make(map[Locale]Status, 2)
	for _, loc := range Locales {
		if !Translated(loc) {
			continue
		}
		fs := overlays[loc]
		st := Status{
			HasTitle:   fs.Title != nil && *fs.Title != "",
			HasExcerpt: fs.Excerpt != nil && *fs.Excerpt != "",
			HasContent: len(fs.Content) > 0,
		}
		st.Minimal = st.HasTitle && st.HasExcerpt
		st.Complete = st.Minimal && st.HasContent
		out[loc] = st
	}
	return out
}

func toAnySlice(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asStringSlice(v any) []string {
	switch t := v.(type) {
	case []string:
		return t
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return []string{}
}
