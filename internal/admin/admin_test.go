// Copyright (c) 2026 GridPulse Team
// GridPulse - power monitoring system
// This source code is licensed under the MIT license found in the LICENSE file.

package admin

import (
	"errors"
	"strings"
	"testing"

	"github.com/gridpulse/gridpulse/internal/db"
)

func newTestStore(t *testing.T) db.Store {
	t.Helper()
	dsn := "file:admin_" + t.Name() + "?mode=memory&cache=shared"
	s, err := db.NewStoreFromDSN("sqlite", dsn)
	if err != nil {
		t.Fatalf("NewStoreFromDSN failed: %v", err)
	}
	return s
}

func TestRequested(t *testing.T) {
	t.Setenv(EnvCreateSuperuser, "")
	if Requested() {
		t.Fatal("empty CREATE_SUPERUSER must not request superuser creation")
	}

	t.Setenv(EnvCreateSuperuser, "1")
	if !Requested() {
		t.Fatal("CREATE_SUPERUSER=1 must request superuser creation")
	}

	// Any non-empty value counts, not just "1".
	t.Setenv(EnvCreateSuperuser, "yes")
	if !Requested() {
		t.Fatal("CREATE_SUPERUSER=yes must request superuser creation")
	}
}

func TestCredentialsFromEnv(t *testing.T) {
	t.Setenv(EnvUsername, "gridadmin")
	t.Setenv(EnvEmail, "admin@gridpulse.example")
	t.Setenv(EnvPassword, "s3cret")

	creds, err := CredentialsFromEnv()
	if err != nil {
		t.Fatalf("CredentialsFromEnv failed: %v", err)
	}
	if creds.Username != "gridadmin" || creds.Email != "admin@gridpulse.example" || creds.Password != "s3cret" {
		t.Fatalf("unexpected credentials: %+v", creds)
	}
}

func TestCredentialsFromEnvDefaultUsername(t *testing.T) {
	t.Setenv(EnvUsername, "")
	t.Setenv(EnvEmail, "")
	t.Setenv(EnvPassword, "s3cret")

	creds, err := CredentialsFromEnv()
	if err != nil {
		t.Fatalf("CredentialsFromEnv failed: %v", err)
	}
	if creds.Username != DefaultUsername {
		t.Fatalf("expected default username %q, got %q", DefaultUsername, creds.Username)
	}
}

func TestCredentialsFromEnvNoPassword(t *testing.T) {
	t.Setenv(EnvUsername, "gridadmin")
	t.Setenv(EnvPassword, "")

	// Under go test stdin is not a terminal, so there is no prompt to
	// fall back to.
	_, err := CredentialsFromEnv()
	if !errors.Is(err, ErrNoPassword) {
		t.Fatalf("expected ErrNoPassword, got %v", err)
	}
}

func TestCreateSuperuserAndVerify(t *testing.T) {
	s := newTestStore(t)

	u, err := CreateSuperuser(s, Credentials{
		Username: "gridadmin",
		Email:    "admin@gridpulse.example",
		Password: "s3cret",
	})
	if err != nil {
		t.Fatalf("CreateSuperuser failed: %v", err)
	}
	if u.ID <= 0 {
		t.Fatalf("expected a positive user ID, got %d", u.ID)
	}
	if !u.IsSuperuser {
		t.Fatal("expected the created account to be a superuser")
	}
	if u.PasswordHash == "s3cret" || !strings.HasPrefix(u.PasswordHash, "$2") {
		t.Fatalf("password does not look bcrypt-hashed: %q", u.PasswordHash)
	}

	stored, err := s.GetAdminByUsername("gridadmin")
	if err != nil {
		t.Fatalf("GetAdminByUsername failed: %v", err)
	}
	if stored == nil {
		t.Fatal("superuser not found after creation")
	}
	if !VerifyPassword(stored, "s3cret") {
		t.Fatal("correct password did not verify")
	}
	if VerifyPassword(stored, "wrong") {
		t.Fatal("wrong password verified")
	}
}

func TestCreateSuperuserDuplicate(t *testing.T) {
	s := newTestStore(t)

	creds := Credentials{Username: "gridadmin", Password: "s3cret"}
	if _, err := CreateSuperuser(s, creds); err != nil {
		t.Fatalf("first CreateSuperuser failed: %v", err)
	}
	_, err := CreateSuperuser(s, creds)
	if !errors.Is(err, db.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate for an existing username, got %v", err)
	}
}
