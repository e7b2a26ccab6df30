package events

import (
	"time"

	"go.uber.org/zap/zapcore"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventAccountCreated  EventType = "account_created"
	EventAccountPromoted EventType = "account_promoted"
	EventAccountUpdated  EventType = "account_updated"
	EventAccountDeleted  EventType = "account_deleted"
	EventRecipeCreated   EventType = "recipe_created"
	EventRecipeDeleted   EventType = "recipe_deleted"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	AccountID string      `json:"account_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// AccountCreatedPayload payload.
type AccountCreatedPayload struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// MarshalLogObject omits the address so event logs carry no contact details.
func (p AccountCreatedPayload) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("name", p.Name)
	return nil
}

// AccountUpdatedPayload lists the fields a profile update touched.
type AccountUpdatedPayload struct {
	Fields          []string `json:"fields"`
	PasswordChanged bool     `json:"password_changed"`
}

// RecipePayload identifies a recipe.
type RecipePayload struct {
	RecipeID string `json:"recipe_id"`
	Title    string `json:"title"`
}

// AccountDeletedPayload payload.
type AccountDeletedPayload struct {
	RecipesDeleted int64 `json:"recipes_deleted"`
}
