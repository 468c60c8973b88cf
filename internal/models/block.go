// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// BlockType tags a content block with its payload shape and rendering
// strategy. The set is closed; unknown types are rejected at validation.
type BlockType string

const (
	BlockText        BlockType = "text"
	BlockServices    BlockType = "services"
	BlockStats       BlockType = "stats"
	BlockProgramme   BlockType = "programme"
	BlockImpact      BlockType = "impact"
	BlockSponsorship BlockType = "sponsorship"
	BlockTimeline    BlockType = "timeline"
	BlockGallery     BlockType = "gallery"
	BlockList        BlockType = "list"
)

// Block is one typed unit of rich page content. Content holds the
// type-specific payload as a generic JSON tree so that the translation
// overlay can merge into it; the blocks package decodes it into a typed
// payload for validation and rendering.
type Block struct {
	ID      string         `json:"id"`
	Type    BlockType      `json:"type"`
	Content map[string]any `json:"content"`
}
