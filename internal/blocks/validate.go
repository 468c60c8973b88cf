// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package blocks

import (
	"fmt"
	"strings"

	"amalcms/internal/goals"
	"amalcms/internal/models"
	"amalcms/internal/slug"
)

// Validation limits for top-level entity fields.
const (
	maxTitleLen   = 200
	maxExcerptLen = 500
)

func blank(s string) bool { return strings.TrimSpace(s) == "" }

func (p *TextPayload) Validate() []string {
	var errs []string
	if blank(p.Heading) {
		errs = append(errs, "heading is required")
	}
	if blank(p.Text) {
		errs = append(errs, "text is required")
	}
	return errs
}

func (p *ServicesPayload) Validate() []string {
	var errs []string
	if blank(p.Heading) {
		errs = append(errs, "heading is required")
	}
	if len(p.Categories) == 0 {
		errs = append(errs, "at least one service category is required")
	}
	return errs
}

func (p *StatsPayload) Validate() []string {
	var errs []string
	if blank(p.Heading) {
		errs = append(errs, "heading is required")
	}
	if len(p.Stats) == 0 {
		errs = append(errs, "at least one stat is required")
	}
	return errs
}

func (p *ProgrammePayload) Validate() []string {
	var errs []string
	if blank(p.Heading) {
		errs = append(errs, "heading is required")
	}
	if len(p.Modules) == 0 {
		errs = append(errs, "at least one module is required")
	}
	return errs
}

func (p *ImpactPayload) Validate() []string {
	var errs []string
	if blank(p.Heading) {
		errs = append(errs, "heading is required")
	}
	if len(p.Impacts) == 0 {
		errs = append(errs, "at least one impact is required")
	}
	return errs
}

func (p *SponsorshipPayload) Validate() []string {
	var errs []string
	if blank(p.Heading) {
		errs = append(errs, "heading is required")
	}
	if len(p.Formulas) == 0 {
		errs = append(errs, "at least one sponsorship formula is required")
	}
	return errs
}

func (p *TimelinePayload) Validate() []string {
	var errs []string
	if blank(p.Heading) {
		errs = append(errs, "heading is required")
	}
	if len(p.Events) == 0 {
		errs = append(errs, "at least one event is required")
	}
	return errs
}

func (p *GalleryPayload) Validate() []string {
	if blank(p.Heading) {
		return []string{"heading is required"}
	}
	return nil
}

func (p *ListPayload) Validate() []string {
	var errs []string
	if blank(p.Heading) {
		errs = append(errs, "heading is required")
	}
	if len(p.Items) == 0 {
		errs = append(errs, "at least one item is required")
	}
	return errs
}

// Validate checks a single block against its type's rules. It returns nil
// when the block is valid, an error naming the first violation otherwise.
func Validate(b models.Block) error {
	p, err := Decode(b)
	if err != nil {
		return err
	}
	if errs := p.Validate(); len(errs) > 0 {
		return fmt.Errorf("%s block: %s", b.Type, strings.Join(errs, "; "))
	}
	return nil
}

// EntityInput carries the writable fields of a project or blog post for
// aggregate validation. Description is accepted as an alias for Excerpt.
type EntityInput struct {
	Title       string
	Excerpt     string
	Description string
	Slug        string
	Categories  []string
	Goals       []models.Goal
	Status      models.Status
	Blocks      []models.Block
}

// ExcerptValue returns the excerpt, falling back to the description alias.
func (in *EntityInput) ExcerptValue() string {
	if blank(in.Excerpt) {
		return in.Description
	}
	return in.Excerpt
}

// ValidateEntity runs all top-level and per-block rules, collecting every
// failure rather than stopping at the first. Block failures are prefixed
// with the block's 1-based index. The returned list is what the API
// boundary sends back as a 400.
func ValidateEntity(in EntityInput) []string {
	var errs []string

	if blank(in.Title) {
		errs = append(errs, "title is required")
	} else if len([]rune(in.Title)) > maxTitleLen {
		errs = append(errs, fmt.Sprintf("title is too long (max %d characters)", maxTitleLen))
	}

	excerpt := in.ExcerptValue()
	if blank(excerpt) {
		errs = append(errs, "excerpt is required")
	} else if len([]rune(excerpt)) > maxExcerptLen {
		errs = append(errs, fmt.Sprintf("excerpt is too long (max %d characters)", maxExcerptLen))
	}

	if ok, msg := slug.Validate(in.Slug); !ok {
		errs = append(errs, msg)
	}

	if len(in.Categories) == 0 {
		errs = append(errs, "at least one category is required")
	}
	if len(in.Goals) == 0 {
		errs = append(errs, "at least one goal is required")
	} else if !goals.NewManager(0, 0).Valid(in.Goals) {
		errs = append(errs, "goal priorities must match list order")
	}

	if in.Status != "" && !models.ValidStatus(in.Status) {
		errs = append(errs, fmt.Sprintf("status must be one of draft, published, archived (got %q)", in.Status))
	}

	for i, b := range in.Blocks {
		if err := Validate(b); err != nil {
			errs = append(errs, fmt.Sprintf("block %d: %v", i+1, err))
		}
	}

	return errs
}
