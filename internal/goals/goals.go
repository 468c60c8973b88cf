// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package goals maintains the ordering invariant of a project's goal
// list: priorities are always a contiguous 1..N permutation matching
// array order, and the list length stays within configured bounds.
// Rejected operations return ok=false and leave the input untouched,
// so callers surface them as a disabled action rather than an error.
package goals

import (
	"strings"

	"github.com/google/uuid"

	"amalcms/internal/models"
)

// Default list bounds.
const (
	DefaultMin = 1
	DefaultMax = 10
)

// Manager applies bounded, renumbering mutations to goal lists.
type Manager struct {
	min int
	max int
}

// NewManager creates a Manager with the given bounds. Non-positive values
// fall back to the defaults.
func NewManager(min, max int) *Manager {
	if min <= 0 {
		min = DefaultMin
	}
	if max <= 0 {
		max = DefaultMax
	}
	return &Manager{min: min, max: max}
}

// Add appends a goal with the given text. Returns ok=false when the list
// is already at the maximum or the text is blank.
func (m *Manager) Add(gs []models.Goal, text string) ([]models.Goal, bool) {
	text = strings.TrimSpace(text)
	if text == "" || len(gs) >= m.max {
		return gs, false
	}
	out := append(clone(gs), models.Goal{ID: uuid.NewString(), Text: text})
	return Renumber(out), true
}

// Remove deletes the goal with the given id. Returns ok=false when the id
// is unknown or removal would shrink the list below the minimum.
func (m *Manager) Remove(gs []models.Goal, id string) ([]models.Goal, bool) {
	idx := indexOf(gs, id)
	if idx < 0 || len(gs) <= m.min {
		return gs, false
	}
	out := clone(gs)
	out = append(out[:idx], out[idx+1:]...)
	return Renumber(out), true
}

// Move shifts the goal at position from to position to (both 0-based).
// Returns ok=false when either index is out of range.
func (m *Manager) Move(gs []models.Goal, from, to int) ([]models.Goal, bool) {
	if from < 0 || from >= len(gs) || to < 0 || to >= len(gs) {
		return gs, false
	}
	out := clone(gs)
	g := out[from]
	out = append(out[:from], out[from+1:]...)
	out = append(out[:to], append([]models.Goal{g}, out[to:]...)...)
	return Renumber(out), true
}

// Renumber rewrites every priority to its 1-based array position. It is
// the final step of every mutation and safe to call on any list.
func Renumber(gs []models.Goal) []models.Goal {
	for i := range gs {
		gs[i].Priority = i + 1
	}
	return gs
}

// Valid reports whether the list already satisfies the ordering invariant
// and the manager's bounds. Used by write validation.
func (m *Manager) Valid(gs []models.Goal) bool {
	if len(gs) < m.min || len(gs) > m.max {
		return false
	}
	for i, g := range gs {
		if g.Priority != i+1 || strings.TrimSpace(g.Text) == "" {
			return false
		}
	}
	return true
}

func indexOf(gs []models.Goal, id string) int {
	for i, g := range gs {
		if g.ID == id {
			return i
		}
	}
	return -1
}

func clone(gs []models.Goal) []models.Goal {
	out := make([]models.Goal, len(gs))
	copy(out, gs)
	return out
}
