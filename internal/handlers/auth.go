// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/base64"
	"net/http"

	"github.com/pquerna/otp/totp"
	qrcode "github.com/skip2/go-qrcode"

	"amalcms/internal/apierr"
	"amalcms/internal/middleware"
	"amalcms/internal/store"
	"amalcms/internal/token"
)

// totpIssuer is the issuer name shown in authenticator apps.
const totpIssuer = "Amal CMS"

// Auth groups all authentication-related HTTP handlers.
type Auth struct {
	tokens *token.Store
	admins *store.AdminStore
}

// NewAuth creates a new Auth handler group.
func NewAuth(tokens *token.Store, admins *store.AdminStore) *Auth {
	return &Auth{tokens: tokens, admins: admins}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Code     string `json:"code"` // TOTP code, required once 2FA is enabled
}

type loginResponse struct {
	Token string `json:"token"`
	Admin any    `json:"admin"`
}

// Login verifies credentials (and the TOTP code for 2FA-enabled accounts)
// and issues a bearer token.
func (a *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if apiErr := decode(r, &req); apiErr != nil {
		apierr.Write(w, apiErr)
		return
	}

	admin, err := a.admins.FindByEmail(req.Email)
	if err != nil {
		apierr.Write(w, apierr.Upstream(err))
		return
	}
	// Same response for unknown email and wrong password.
	if admin == nil || !a.admins.CheckPassword(admin, req.Password) {
		apierr.Write(w, apierr.Unauthorized("invalid email or password"))
		return
	}

	twoFADone := false
	if admin.TOTPEnabled {
		if admin.TOTPSecret == nil || !totp.Validate(req.Code, *admin.TOTPSecret) {
			apierr.Write(w, apierr.Unauthorized("invalid two-factor code"))
			return
		}
		twoFADone = true
	}

	id, err := a.tokens.Create(r.Context(), &token.Data{
		AdminID:   admin.ID,
		Email:     admin.Email,
		Name:      admin.Name,
		Role:      string(admin.Role),
		TwoFADone: twoFADone,
	})
	if err != nil {
		apierr.Write(w, apierr.Upstream(err))
		return
	}

	respond(w, http.StatusOK, loginResponse{Token: id, Admin: admin})
}

// Logout revokes the caller's bearer token.
func (a *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	id := middleware.RawTokenFromCtx(r.Context())
	if err := a.tokens.Revoke(r.Context(), id); err != nil {
		apierr.Write(w, apierr.Upstream(err))
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "logged out"})
}

// Me returns the authenticated admin's account.
func (a *Auth) Me(w http.ResponseWriter, r *http.Request) {
	auth := middleware.AuthFromCtx(r.Context())
	admin, err := a.admins.FindByID(auth.AdminID)
	if err != nil {
		apierr.Write(w, apierr.Upstream(err))
		return
	}
	if admin == nil {
		apierr.Write(w, apierr.NotFound("admin"))
		return
	}
	respond(w, http.StatusOK, admin)
}

type twoFASetupResponse struct {
	Secret string `json:"secret"`
	QRCode string `json:"qr_code"` // base64 PNG for authenticator enrollment
}

// TwoFASetup generates a TOTP secret for the authenticated admin and
// returns it with a QR code. The secret stays inactive until confirmed.
func (a *Auth) TwoFASetup(w http.ResponseWriter, r *http.Request) {
	auth := middleware.AuthFromCtx(r.Context())

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      totpIssuer,
		AccountName: auth.Email,
	})
	if err != nil {
		apierr.Write(w, apierr.Upstream(err))
		return
	}

	if err := a.admins.SetTOTPSecret(auth.AdminID, key.Secret()); err != nil {
		apierr.Write(w, apierr.Upstream(err))
		return
	}

	qrPNG, err := qrcode.Encode(key.URL(), qrcode.Medium, 256)
	if err != nil {
		apierr.Write(w, apierr.Upstream(err))
		return
	}

	respond(w, http.StatusOK, twoFASetupResponse{
		Secret: key.Secret(),
		QRCode: base64.StdEncoding.EncodeToString(qrPNG),
	})
}

type twoFAConfirmRequest struct {
	Code string `json:"code"`
}

// TwoFAConfirm validates the first TOTP code and activates 2FA for the
// account. The current token is marked as having passed 2FA.
func (a *Auth) TwoFAConfirm(w http.ResponseWriter, r *http.Request) {
	auth := middleware.AuthFromCtx(r.Context())

	var req twoFAConfirmRequest
	if apiErr := decode(r, &req); apiErr != nil {
		apierr.Write(w, apiErr)
		return
	}

	admin, err := a.admins.FindByID(auth.AdminID)
	if err != nil {
		apierr.Write(w, apierr.Upstream(err))
		return
	}
	if admin == nil || admin.TOTPSecret == nil {
		apierr.Write(w, apierr.Validation([]string{"two-factor setup has not been started"}))
		return
	}

	if !totp.Validate(req.Code, *admin.TOTPSecret) {
		apierr.Write(w, apierr.Unauthorized("invalid two-factor code"))
		return
	}

	if !admin.TOTPEnabled {
		if err := a.admins.EnableTOTP(admin.ID); err != nil {
			apierr.Write(w, apierr.Upstream(err))
			return
		}
	}

	auth.TwoFADone = true
	if err := a.tokens.Update(r.Context(), middleware.RawTokenFromCtx(r.Context()), auth); err != nil {
		apierr.Write(w, apierr.Upstream(err))
		return
	}

	respond(w, http.StatusOK, map[string]bool{"totp_enabled": true})
}

// TwoFADisable turns 2FA off for the authenticated admin.
func (a *Auth) TwoFADisable(w http.ResponseWriter, r *http.Request) {
	auth := middleware.AuthFromCtx(r.Context())

	if err := a.admins.DisableTOTP(auth.AdminID); err != nil {
		apierr.Write(w, apierr.Upstream(err))
		return
	}
	respond(w, http.StatusOK, map[string]bool{"totp_enabled": false})
}
