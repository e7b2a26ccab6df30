package domain

import (
	"strings"
	"time"
)

// UnusablePasswordPrefix marks a password hash that never verifies.
const UnusablePasswordPrefix = "!"

// Account is the authenticable principal that owns recipes.
type Account struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	IsActive     bool
	IsStaff      bool
	IsSuperuser  bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasUsablePassword reports whether a credential was ever set for the account.
func (a *Account) HasUsablePassword() bool {
	return a.PasswordHash != "" && !strings.HasPrefix(a.PasswordHash, UnusablePasswordPrefix)
}

// NormalizeEmail lower-cases the domain part of an address and keeps the
// local part verbatim. Addresses without an @ are returned trimmed.
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at] + "@" + strings.ToLower(email[at+1:])
}
