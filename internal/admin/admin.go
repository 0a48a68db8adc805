// Copyright (c) 2026 GridPulse Team
// GridPulse - power monitoring system
// This source code is licensed under the MIT license found in the LICENSE file.

// Package admin creates the administrative dashboard account during
// provisioning. Credentials arrive through environment variables so the
// step works non-interactively in deploy pipelines; a terminal prompt is
// the fallback for manual runs.
package admin

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"

	"github.com/gridpulse/gridpulse/internal/db"
	"github.com/gridpulse/gridpulse/internal/model"
)

// Environment variables forming the superuser-creation contract.
const (
	// EnvCreateSuperuser enables the superuser step when set non-empty.
	EnvCreateSuperuser = "CREATE_SUPERUSER"

	EnvUsername = "GRIDPULSE_ADMIN_USERNAME"
	EnvEmail    = "GRIDPULSE_ADMIN_EMAIL"
	EnvPassword = "GRIDPULSE_ADMIN_PASSWORD"
)

// DefaultUsername is used when GRIDPULSE_ADMIN_USERNAME is unset.
const DefaultUsername = "admin"

// ErrNoPassword is returned when no password was supplied and stdin is
// not a terminal to prompt on.
var ErrNoPassword = errors.New("no admin password: set " + EnvPassword + " or run interactively")

// Requested reports whether the superuser-creation step is enabled.
// Any non-empty value of CREATE_SUPERUSER enables it.
func Requested() bool {
	return os.Getenv(EnvCreateSuperuser) != ""
}

// Credentials holds the plain-text inputs for superuser creation.
type Credentials struct {
	Username string
	Email    string
	Password string
}

// promptPassword is swapped out in tests.
var promptPassword = func() (string, error) {
	fmt.Fprintf(os.Stderr, "Admin password: ")
	pw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	return string(pw), nil
}

// CredentialsFromEnv assembles credentials from the environment. When
// the password variable is unset and stdin is a terminal, the user is
// prompted; otherwise the step fails rather than creating a passwordless
// account.
func CredentialsFromEnv() (Credentials, error) {
	c := Credentials{
		Username: os.Getenv(EnvUsername),
		Email:    os.Getenv(EnvEmail),
		Password: os.Getenv(EnvPassword),
	}
	if c.Username == "" {
		c.Username = DefaultUsername
	}
	if c.Password == "" {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return c, ErrNoPassword
		}
		pw, err := promptPassword()
		if err != nil {
			return c, err
		}
		if pw == "" {
			return c, ErrNoPassword
		}
		c.Password = pw
	}
	return c, nil
}

// CreateSuperuser stores a new superuser with a bcrypt password hash.
// Creating a username that already exists fails with db.ErrDuplicate.
func CreateSuperuser(store db.Store, creds Credentials) (*model.AdminUser, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash admin password: %w", err)
	}

	u := model.AdminUser{
		Username:     creds.Username,
		Email:        creds.Email,
		PasswordHash: string(hash),
		IsSuperuser:  true,
	}
	id, err := store.CreateAdminUser(u)
	if err != nil {
		if errors.Is(err, db.ErrDuplicate) {
			return nil, fmt.Errorf("admin user %q already exists: %w", creds.Username, err)
		}
		return nil, err
	}
	u.ID = id
	return &u, nil
}

// VerifyPassword reports whether the plain-text password matches the
// stored hash. Used by tests and by the web application's login path.
func VerifyPassword(u *model.AdminUser, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}
