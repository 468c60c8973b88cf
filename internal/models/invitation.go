// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// DefaultInvitationTTL is how long an invitation stays valid after creation.
const DefaultInvitationTTL = 7 * 24 * time.Hour

// Invitation is a single-use, time-limited token authorizing creation of
// exactly one admin account. Expiry is checked lazily on validation; there
// is no background sweeper.
type Invitation struct {
	ID        uuid.UUID `json:"id"`
	Token     string    `json:"token"`
	Email     *string   `json:"email,omitempty"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	CreatedBy uuid.UUID `json:"created_by"`
	ExpiresAt time.Time `json:"expires_at"`
	Used      bool      `json:"used"`
	CreatedAt time.Time `json:"created_at"`
}

// IsExpired returns true once the invitation's expiry has passed.
func (i *Invitation) IsExpired(now time.Time) bool {
	return !now.Before(i.ExpiresAt)
}

// Usable returns true if the invitation can still be consumed.
func (i *Invitation) Usable(now time.Time) bool {
	return !i.Used && !i.IsExpired(now)
}
