package service

import (
	"context"
	"sync"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/recipe-service/internal/auth"
	"github.com/spec-kit/recipe-service/internal/events"
	"github.com/spec-kit/recipe-service/internal/repository"
)

type recordingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, e events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, e)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) types() []events.EventType {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]events.EventType, 0, len(d.events))
	for _, e := range d.events {
		out = append(out, e.Type)
	}
	return out
}

type fixture struct {
	store      *repository.MemoryStore
	dispatcher *recordingDispatcher
	accounts   *AccountService
	auth       *AuthService
	recipes    *RecipeService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := repository.NewMemoryStore()
	dispatcher := &recordingDispatcher{}
	return &fixture{
		store:      store,
		dispatcher: dispatcher,
		accounts: NewAccountService(AccountDependencies{
			AccountRepo: store.Accounts(),
			RecipeRepo:  store.Recipes(),
			Dispatcher:  dispatcher,
			BcryptCost:  bcrypt.MinCost,
		}),
		auth: NewAuthService(AuthDependencies{
			AccountRepo:  store.Accounts(),
			TokenRepo:    store.Tokens(),
			TokenManager: auth.NewTokenManager("test-secret", 5),
			BcryptCost:   bcrypt.MinCost,
		}),
		recipes: NewRecipeService(store.Recipes(), dispatcher),
	}
}

func ptr[T any](v T) *T { return &v }
