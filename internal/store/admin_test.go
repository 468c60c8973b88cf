// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"testing"

	"github.com/google/uuid"

	"amalcms/internal/models"
)

func TestAdminStoreCreate(t *testing.T) {
	db := testDB(t)
	s := NewAdminStore(db)

	email := "test-create@store-test.local"
	t.Cleanup(func() { cleanAdmins(t, db, email) })

	admin, err := s.Create(email, "testpass123", "Test Admin", models.RoleAdmin)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if admin.ID == uuid.Nil {
		t.Error("expected non-nil UUID")
	}
	if admin.Email != email {
		t.Errorf("email: got %q, want %q", admin.Email, email)
	}
	if admin.Role != models.RoleAdmin {
		t.Errorf("role: got %q, want %q", admin.Role, models.RoleAdmin)
	}
	if admin.TOTPEnabled {
		t.Error("expected totp_enabled=false for new admin")
	}
	if admin.PasswordHash == "" || admin.PasswordHash == "testpass123" {
		t.Error("expected bcrypt hash, not empty or plaintext")
	}
}

func TestAdminStoreFindByEmail(t *testing.T) {
	db := testDB(t)
	s := NewAdminStore(db)

	email := "test-findbyemail@store-test.local"
	t.Cleanup(func() { cleanAdmins(t, db, email) })

	// Not found case.
	admin, err := s.FindByEmail(email)
	if err != nil {
		t.Fatalf("FindByEmail (not found): %v", err)
	}
	if admin != nil {
		t.Error("expected nil for non-existent admin")
	}

	created, err := s.Create(email, "pass", "Find Me", models.RoleSuperAdmin)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	admin, err = s.FindByEmail(email)
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if admin == nil {
		t.Fatal("expected admin, got nil")
	}
	if admin.ID != created.ID {
		t.Errorf("ID mismatch: got %s, want %s", admin.ID, created.ID)
	}
	if !admin.IsSuperAdmin() {
		t.Error("expected super admin role")
	}
}

func TestAdminStoreCheckPassword(t *testing.T) {
	db := testDB(t)
	s := NewAdminStore(db)

	email := "test-checkpass@store-test.local"
	t.Cleanup(func() { cleanAdmins(t, db, email) })

	admin, _ := s.Create(email, "correct-password", "PW Check", models.RoleAdmin)

	if !s.CheckPassword(admin, "correct-password") {
		t.Error("expected true for correct password")
	}
	if s.CheckPassword(admin, "wrong-password") {
		t.Error("expected false for wrong password")
	}
	if s.CheckPassword(admin, "") {
		t.Error("expected false for empty password")
	}
}

func TestAdminStoreTOTPLifecycle(t *testing.T) {
	db := testDB(t)
	s := NewAdminStore(db)

	email := "test-totp@store-test.local"
	t.Cleanup(func() { cleanAdmins(t, db, email) })

	admin, _ := s.Create(email, "pass", "TOTP Admin", models.RoleAdmin)

	if admin.TOTPSecret != nil || admin.TOTPEnabled {
		t.Error("expected no TOTP state initially")
	}

	if err := s.SetTOTPSecret(admin.ID, "JBSWY3DPEHPK3PXP"); err != nil {
		t.Fatalf("SetTOTPSecret: %v", err)
	}

	admin, _ = s.FindByID(admin.ID)
	if admin.TOTPSecret == nil || *admin.TOTPSecret != "JBSWY3DPEHPK3PXP" {
		t.Errorf("expected TOTP secret set, got %v", admin.TOTPSecret)
	}
	if admin.TOTPEnabled {
		t.Error("TOTP should not be enabled before confirmation")
	}

	if err := s.EnableTOTP(admin.ID); err != nil {
		t.Fatalf("EnableTOTP: %v", err)
	}
	admin, _ = s.FindByID(admin.ID)
	if !admin.TOTPEnabled {
		t.Error("expected TOTP enabled after EnableTOTP")
	}

	if err := s.DisableTOTP(admin.ID); err != nil {
		t.Fatalf("DisableTOTP: %v", err)
	}
	admin, _ = s.FindByID(admin.ID)
	if admin.TOTPSecret != nil || admin.TOTPEnabled {
		t.Error("expected TOTP cleared after disable")
	}
}

func TestAdminStoreEnableTOTPWithoutSecret(t *testing.T) {
	db := testDB(t)
	s := NewAdminStore(db)

	email := "test-totp-nosecret@store-test.local"
	t.Cleanup(func() { cleanAdmins(t, db, email) })

	admin, _ := s.Create(email, "pass", "No Secret", models.RoleAdmin)

	if err := s.EnableTOTP(admin.ID); err == nil {
		t.Error("expected error enabling TOTP without a secret")
	}
}

func TestAdminStoreDuplicateEmail(t *testing.T) {
	db := testDB(t)
	s := NewAdminStore(db)

	email := "test-dupe@store-test.local"
	t.Cleanup(func() { cleanAdmins(t, db, email) })

	if _, err := s.Create(email, "pass", "First", models.RoleAdmin); err != nil {
		t.Fatalf("first Create: %v", err)
	}

	_, err := s.Create(email, "pass", "Second", models.RoleAdmin)
	if err == nil {
		t.Fatal("expected error for duplicate email, got nil")
	}
	if !IsUniqueViolation(err) {
		t.Errorf("expected unique violation, got %v", err)
	}
}

func TestAdminStoreDelete(t *testing.T) {
	db := testDB(t)
	s := NewAdminStore(db)

	admin, _ := s.Create("test-delete@store-test.local", "pass", "Delete Me", models.RoleAdmin)

	if err := s.Delete(admin.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	found, _ := s.FindByID(admin.ID)
	if found != nil {
		t.Error("expected nil after delete")
	}
}
