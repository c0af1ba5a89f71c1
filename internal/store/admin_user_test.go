package store

import (
	"testing"

	"github.com/google/uuid"
)

func TestAdminUserStoreCreateAndAuthenticate(t *testing.T) {
	db := testDB(t)
	s := NewAdminUserStore(db)

	email := "test-" + uuid.NewString()[:8] + "@example.com"
	t.Cleanup(func() { cleanAdminUsers(t, db, email) })

	u, err := s.Create(email, "correct horse battery", "Test Staff")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if u.PasswordHash == "correct horse battery" {
		t.Fatal("password stored in plaintext")
	}
	if !u.IsActive {
		t.Error("expected new account active")
	}

	// Lookup is case-insensitive.
	found, err := s.FindByEmail("TEST-" + email[5:])
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if found == nil {
		t.Fatal("expected account by upper-cased email")
	}

	if !s.CheckPassword(found, "correct horse battery") {
		t.Error("expected password to verify")
	}
	if s.CheckPassword(found, "wrong") {
		t.Error("expected wrong password to fail")
	}
}

func TestAdminUserStoreAllowList(t *testing.T) {
	db := testDB(t)
	s := NewAdminUserStore(db)

	email := "test-" + uuid.NewString()[:8] + "@example.com"
	t.Cleanup(func() { cleanAdminUsers(t, db, email) })

	u, err := s.Create(email, "secret", "Gated Staff")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	allowed, err := s.IsAllowed(u.ID)
	if err != nil {
		t.Fatalf("IsAllowed: %v", err)
	}
	if !allowed {
		t.Error("expected active account allowed")
	}

	// Deactivation removes the account from the allow-list even though the
	// password still verifies.
	if err := s.SetActive(u.ID, false); err != nil {
		t.Fatalf("SetActive: %v", err)
	}
	allowed, _ = s.IsAllowed(u.ID)
	if allowed {
		t.Error("expected deactivated account rejected")
	}
	found, _ := s.FindByEmail(email)
	if !s.CheckPassword(found, "secret") {
		t.Error("expected password still valid for deactivated account")
	}

	// Unknown IDs are rejected without error.
	allowed, err = s.IsAllowed(uuid.New())
	if err != nil {
		t.Fatalf("IsAllowed unknown: %v", err)
	}
	if allowed {
		t.Error("expected unknown id rejected")
	}
}

func TestAdminUserStoreSetPassword(t *testing.T) {
	db := testDB(t)
	s := NewAdminUserStore(db)

	email := "test-" + uuid.NewString()[:8] + "@example.com"
	t.Cleanup(func() { cleanAdminUsers(t, db, email) })

	u, err := s.Create(email, "old-password", "Rotating Staff")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := s.SetPassword(u.ID, "new-password"); err != nil {
		t.Fatalf("SetPassword: %v", err)
	}

	found, _ := s.FindByEmail(email)
	if s.CheckPassword(found, "old-password") {
		t.Error("expected old password rejected")
	}
	if !s.CheckPassword(found, "new-password") {
		t.Error("expected new password accepted")
	}
}
