package auth

import (
	"crypto/rand"
	"encoding/hex"

	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/recipe-service/internal/domain"
)

// HashPassword hashes a plaintext password with configured cost.
// An empty password yields an unusable hash that never verifies.
func HashPassword(password string, cost int) (string, error) {
	if password == "" {
		return UnusablePassword()
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// UnusablePassword returns a marker hash that no password matches.
func UnusablePassword() (string, error) {
	buf := make([]byte, 20)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return domain.UnusablePasswordPrefix + hex.EncodeToString(buf), nil
}

// ComparePassword verifies a password against its hashed value.
func ComparePassword(hashed, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
}
