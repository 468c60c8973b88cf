// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"amalcms/internal/apierr"
	"amalcms/internal/middleware"
	"amalcms/internal/models"
	"amalcms/internal/store"
)

// Admins groups account management and invitation handlers. All routes
// except signup are super-admin gated in the router.
type Admins struct {
	admins      *store.AdminStore
	invitations *store.InvitationStore
}

// NewAdmins creates the Admins handler group.
func NewAdmins(admins *store.AdminStore, invitations *store.InvitationStore) *Admins {
	return &Admins{admins: admins, invitations: invitations}
}

// List serves GET /api/admins.
func (h *Admins) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.admins.List()
	if err != nil {
		apierr.Write(w, apierr.Upstream(err))
		return
	}
	respond(w, http.StatusOK, items)
}

type adminRequest struct {
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Name     string      `json:"name"`
	Role     models.Role `json:"role"`
}

func (req *adminRequest) validate(needPassword bool) []string {
	var errs []string
	if strings.TrimSpace(req.Email) == "" || !strings.Contains(req.Email, "@") {
		errs = append(errs, "a valid email is required")
	}
	if needPassword && len(req.Password) < 8 {
		errs = append(errs, "password must be at least 8 characters")
	}
	if strings.TrimSpace(req.Name) == "" {
		errs = append(errs, "name is required")
	}
	if req.Role == "" {
		req.Role = models.RoleAdmin
	} else if !models.ValidRole(req.Role) {
		errs = append(errs, "role must be admin or super_admin")
	}
	return errs
}

// Create serves POST /api/admins.
func (h *Admins) Create(w http.ResponseWriter, r *http.Request) {
	var req adminRequest
	if apiErr := decode(r, &req); apiErr != nil {
		apierr.Write(w, apiErr)
		return
	}
	if errs := req.validate(true); len(errs) > 0 {
		apierr.Write(w, apierr.Validation(errs))
		return
	}

	created, err := h.admins.Create(req.Email, req.Password, req.Name, req.Role)
	if err != nil {
		if store.IsUniqueViolation(err) {
			apierr.Write(w, apierr.Conflict("email already registered"))
			return
		}
		apierr.Write(w, apierr.Upstream(err))
		return
	}
	respond(w, http.StatusCreated, created)
}

// Update serves PUT /api/admins/{id}.
func (h *Admins) Update(w http.ResponseWriter, r *http.Request) {
	id, apiErr := uuidParam(r, "id")
	if apiErr != nil {
		apierr.Write(w, apiErr)
		return
	}

	var req adminRequest
	if apiErr := decode(r, &req); apiErr != nil {
		apierr.Write(w, apiErr)
		return
	}
	if errs := req.validate(false); len(errs) > 0 {
		apierr.Write(w, apierr.Validation(errs))
		return
	}

	if err := h.admins.Update(id, req.Email, req.Name, req.Role); err != nil {
		if store.IsUniqueViolation(err) {
			apierr.Write(w, apierr.Conflict("email already registered"))
			return
		}
		apierr.Write(w, apierr.NotFound("admin"))
		return
	}

	if req.Password != "" {
		if len(req.Password) < 8 {
			apierr.Write(w, apierr.Validation([]string{"password must be at least 8 characters"}))
			return
		}
		if err := h.admins.UpdatePassword(id, req.Password); err != nil {
			apierr.Write(w, apierr.Upstream(err))
			return
		}
	}

	updated, err := h.admins.FindByID(id)
	if err != nil {
		apierr.Write(w, apierr.Upstream(err))
		return
	}
	respond(w, http.StatusOK, updated)
}

// Delete serves DELETE /api/admins/{id}. Self-deletion is rejected so the
// last super admin cannot lock everyone out by accident.
func (h *Admins) Delete(w http.ResponseWriter, r *http.Request) {
	id, apiErr := uuidParam(r, "id")
	if apiErr != nil {
		apierr.Write(w, apiErr)
		return
	}

	if auth := middleware.AuthFromCtx(r.Context()); auth != nil && auth.AdminID == id {
		apierr.Write(w, apierr.Validation([]string{"you cannot delete your own account"}))
		return
	}

	if err := h.admins.Delete(id); err != nil {
		apierr.Write(w, apierr.NotFound("admin"))
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// ListInvitations serves GET /api/invitations.
func (h *Admins) ListInvitations(w http.ResponseWriter, r *http.Request) {
	items, err := h.invitations.List()
	if err != nil {
		apierr.Write(w, apierr.Upstream(err))
		return
	}
	respond(w, http.StatusOK, items)
}

type invitationRequest struct {
	Email *string     `json:"email"`
	Name  string      `json:"name"`
	Role  models.Role `json:"role"`
}

// CreateInvitation serves POST /api/invitations.
func (h *Admins) CreateInvitation(w http.ResponseWriter, r *http.Request) {
	var req invitationRequest
	if apiErr := decode(r, &req); apiErr != nil {
		apierr.Write(w, apiErr)
		return
	}

	var errs []string
	if strings.TrimSpace(req.Name) == "" {
		errs = append(errs, "name is required")
	}
	if req.Role == "" {
		req.Role = models.RoleAdmin
	} else if !models.ValidRole(req.Role) {
		errs = append(errs, "role must be admin or super_admin")
	}
	if len(errs) > 0 {
		apierr.Write(w, apierr.Validation(errs))
		return
	}

	auth := middleware.AuthFromCtx(r.Context())
	created, err := h.invitations.Create(req.Email, req.Name, req.Role, auth.AdminID)
	if err != nil {
		apierr.Write(w, apierr.Upstream(err))
		return
	}
	respond(w, http.StatusCreated, created)
}

// RevokeInvitation serves DELETE /api/invitations/{id}.
func (h *Admins) RevokeInvitation(w http.ResponseWriter, r *http.Request) {
	id, apiErr := uuidParam(r, "id")
	if apiErr != nil {
		apierr.Write(w, apiErr)
		return
	}

	if err := h.invitations.Delete(id); err != nil {
		apierr.Write(w, apierr.NotFound("invitation"))
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "revoked"})
}

// signupView is the public shape of a validated invitation. The token
// holder learns only what they need to complete signup.
type signupView struct {
	Name      string      `json:"name"`
	Email     *string     `json:"email,omitempty"`
	Role      models.Role `json:"role"`
	ExpiresAt time.Time   `json:"expires_at"`
}

// ValidateSignup serves GET /api/admin-signup?token=. It reports whether
// the invitation is still usable without consuming it.
func (h *Admins) ValidateSignup(w http.ResponseWriter, r *http.Request) {
	tok := r.URL.Query().Get("token")
	if tok == "" {
		apierr.Write(w, apierr.Validation([]string{"token is required"}))
		return
	}

	inv, err := h.invitations.FindByToken(tok)
	if err != nil {
		apierr.Write(w, apierr.Upstream(err))
		return
	}
	if inv == nil || !inv.Usable(time.Now()) {
		apierr.Write(w, apierr.NotFound("invitation"))
		return
	}

	respond(w, http.StatusOK, signupView{
		Name:      inv.Name,
		Email:     inv.Email,
		Role:      inv.Role,
		ExpiresAt: inv.ExpiresAt,
	})
}

type signupRequest struct {
	Token    string `json:"token"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup serves POST /api/admin-signup. Consumption is transactional:
// the account is created and the token marked used atomically, so a
// token can never provision two accounts.
func (h *Admins) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if apiErr := decode(r, &req); apiErr != nil {
		apierr.Write(w, apiErr)
		return
	}

	var errs []string
	if req.Token == "" {
		errs = append(errs, "token is required")
	}
	if strings.TrimSpace(req.Email) == "" || !strings.Contains(req.Email, "@") {
		errs = append(errs, "a valid email is required")
	}
	if len(req.Password) < 8 {
		errs = append(errs, "password must be at least 8 characters")
	}
	if len(errs) > 0 {
		apierr.Write(w, apierr.Validation(errs))
		return
	}

	admin, err := h.invitations.Consume(req.Token, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, store.ErrInvitationUnusable) {
			apierr.Write(w, apierr.NotFound("invitation"))
			return
		}
		if store.IsUniqueViolation(err) {
			apierr.Write(w, apierr.Conflict("email already registered"))
			return
		}
		apierr.Write(w, apierr.Upstream(err))
		return
	}

	respond(w, http.StatusCreated, admin)
}
