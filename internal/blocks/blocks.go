// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package blocks defines the closed set of content block types, decodes
// their generic JSON payloads into typed structs, validates them before
// persistence, and renders them to HTML in array order.
package blocks

import (
	"encoding/json"
	"fmt"

	"amalcms/internal/models"
)

// ErrUnknownType is wrapped by Decode and Validate when a block carries a
// type outside the closed set.
var ErrUnknownType = fmt.Errorf("unknown block type")

// Payload is the typed content of one block. Exactly one implementation
// exists per block type.
type Payload interface {
	// Validate returns the block's rule violations, empty when valid.
	Validate() []string
}

// TextPayload is free-form rich text. The body is Markdown.
type TextPayload struct {
	Heading string `json:"heading"`
	Text    string `json:"text"`
}

// ServicesPayload groups the services offered, by category.
type ServicesPayload struct {
	Heading    string            `json:"heading"`
	Categories []ServiceCategory `json:"categories"`
}

// ServiceCategory is one named group of services.
type ServiceCategory struct {
	Name  string   `json:"name"`
	Items []string `json:"items"`
}

// StatsPayload shows headline figures.
type StatsPayload struct {
	Heading string `json:"heading"`
	Stats   []Stat `json:"stats"`
}

// Stat is a single figure with its label.
type Stat struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// ProgrammePayload describes a programme as an ordered list of modules.
type ProgrammePayload struct {
	Heading string   `json:"heading"`
	Modules []Module `json:"modules"`
}

// Module is one part of a programme.
type Module struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ImpactPayload lists measured outcomes.
type ImpactPayload struct {
	Heading string   `json:"heading"`
	Impacts []Impact `json:"impacts"`
}

// Impact is one measured outcome.
type Impact struct {
	Value       string `json:"value"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

// SponsorshipPayload lists donation tiers.
type SponsorshipPayload struct {
	Heading  string    `json:"heading"`
	Formulas []Formula `json:"formulas"`
}

// Formula is one sponsorship tier.
type Formula struct {
	Name        string   `json:"name"`
	Amount      string   `json:"amount"`
	Description string   `json:"description"`
	Benefits    []string `json:"benefits"`
}

// TimelinePayload presents dated milestones.
type TimelinePayload struct {
	Heading string  `json:"heading"`
	Events  []Event `json:"events"`
}

// Event is one timeline milestone.
type Event struct {
	Date        string `json:"date"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// GalleryPayload shows an image grid. Images are optional — a gallery may
// be created before any photos are uploaded.
type GalleryPayload struct {
	Heading string         `json:"heading"`
	Images  []GalleryImage `json:"images"`
}

// GalleryImage is one photo with an optional caption.
type GalleryImage struct {
	URL     string `json:"url"`
	Caption string `json:"caption"`
}

// ListPayload is a simple bulleted list.
type ListPayload struct {
	Heading string   `json:"heading"`
	Items   []string `json:"items"`
}

// Decode converts a block's generic payload tree into its typed Payload.
// Returns an error wrapping ErrUnknownType for types outside the set.
func Decode(b models.Block) (Payload, error) {
	var p Payload
	switch b.Type {
	case models.BlockText:
		p = &TextPayload{}
	case models.BlockServices:
		p = &ServicesPayload{}
	case models.BlockStats:
		p = &StatsPayload{}
	case models.BlockProgramme:
		p = &ProgrammePayload{}
	case models.BlockImpact:
		p = &ImpactPayload{}
	case models.BlockSponsorship:
		p = &SponsorshipPayload{}
	case models.BlockTimeline:
		p = &TimelinePayload{}
	case models.BlockGallery:
		p = &GalleryPayload{}
	case models.BlockList:
		p = &ListPayload{}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, b.Type)
	}

	raw, err := json.Marshal(b.Content)
	if err != nil {
		return nil, fmt.Errorf("encode block content: %w", err)
	}
	if err := json.Unmarshal(raw, p); err != nil {
		return nil, fmt.Errorf("decode %s block: %w", b.Type, err)
	}
	return p, nil
}
