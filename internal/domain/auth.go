package domain

import "time"

// AuthToken binds an issued token to its account. There is at most one per account.
type AuthToken struct {
	Key       string
	AccountID string
	CreatedAt time.Time
}
