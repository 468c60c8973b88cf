// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// merge.go applies the sparse per-block content overlay. A translation's
// content is not a parallel block array: it maps 0-based block indexes to
// sparse trees mirroring the block payload, whose leaves are {lang: value}
// maps. Translators only supply the sub-fields that actually changed.
package i18n

import (
	"strconv"

	"amalcms/internal/models"
)

// MergeBlocks resolves a primary-locale block array against a sparse
// overlay map for the requested locale. The primary array is deep-cloned;
// block count, order, ids, and types are never affected — only leaf values
// inside each block's payload. Indexes absent from the overlay keep the
// primary payload verbatim. The input slice is never mutated.
func MergeBlocks(blocks []models.Block, overlay map[string]any, locale Locale) []models.Block {
	out := make([]models.Block, len(blocks))
	for i, b := range blocks {
		out[i] = models.Block{
			ID:      b.ID,
			Type:    b.Type,
			Content: cloneTree(b.Content).(map[string]any),
		}
		if overlay == nil {
			continue
		}
		ov, ok := overlay[strconv.Itoa(i)]
		if !ok {
			continue
		}
		if merged, ok := mergeNode(out[i].Content, ov, locale).(map[string]any); ok {
			out[i].Content = merged
		}
	}
	return out
}

// mergeNode walks primary and overlay in parallel. A node in the overlay
// that is a {lang: value} leaf replaces the primary value for the
// requested locale; maps and slices recurse; anything else keeps the
// primary value. Payload keys never use the locale codes themselves, so
// leaf detection is unambiguous.
func mergeNode(primary, overlay any, locale Locale) any {
	switch ov := overlay.(type) {
	case map[string]any:
		if isLangLeaf(ov) {
			if v, ok := ov[string(locale)]; ok && !isEmpty(v) {
				return cloneTree(v)
			}
			return primary
		}
		dst, ok := primary.(map[string]any)
		if !ok {
			return primary
		}
		for k, child := range ov {
			dst[k] = mergeNode(dst[k], child, locale)
		}
		return dst
	case []any:
		dst, ok := primary.([]any)
		if !ok {
			return primary
		}
		for i, child := range ov {
			if i >= len(dst) {
				break
			}
			dst[i] = mergeNode(dst[i], child, locale)
		}
		return dst
	default:
		return primary
	}
}

// isLangLeaf reports whether node is a translation leaf: a non-empty map
// whose keys are all locale codes.
func isLangLeaf(node map[string]any) bool {
	if len(node) == 0 {
		return false
	}
	for k := range node {
		if _, ok := Parse(k); !ok {
			return false
		}
	}
	return true
}

// cloneTree deep-copies a generic JSON tree.
func cloneTree(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, child := range t {
			out[k] = cloneTree(child)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, child := range t {
			out[i] = cloneTree(child)
		}
		return out
	default:
		return v
	}
}
