package service

import (
	"context"
	"strings"

	"github.com/spec-kit/recipe-service/internal/auth"
	"github.com/spec-kit/recipe-service/internal/domain"
	"github.com/spec-kit/recipe-service/internal/events"
	"github.com/spec-kit/recipe-service/internal/repository"
	apperrors "github.com/spec-kit/recipe-service/pkg/util/errorutil"
)

const (
	errMissingEmail   = "Users must have an email address"
	errDuplicateEmail = "account with this email already exists"
)

// AccountFields are the optional attributes merged into a new account.
type AccountFields struct {
	Name        string
	IsActive    *bool
	IsStaff     bool
	IsSuperuser bool
}

// AccountPatch is a partial profile update. Nil fields are left untouched.
type AccountPatch struct {
	Email    *string
	Name     *string
	Password *string
}

// AccountService owns account creation, promotion, profile updates and deletion.
type AccountService struct {
	accounts   repository.AccountRepository
	recipes    repository.RecipeRepository
	dispatcher events.Dispatcher
	bcryptCost int
}

// AccountDependencies bundles collaborators for the account service.
type AccountDependencies struct {
	AccountRepo repository.AccountRepository
	RecipeRepo  repository.RecipeRepository
	Dispatcher  events.Dispatcher
	BcryptCost  int
}

// NewAccountService builds the service.
func NewAccountService(deps AccountDependencies) *AccountService {
	return &AccountService{
		accounts:   deps.AccountRepo,
		recipes:    deps.RecipeRepo,
		dispatcher: deps.Dispatcher,
		bcryptCost: deps.BcryptCost,
	}
}

// CreateAccount validates and persists a new account. The email domain is
// lower-cased, the password is hashed, and an empty password leaves the
// account without a usable credential.
func (s *AccountService) CreateAccount(ctx context.Context, email, password string, extra AccountFields) (*domain.Account, error) {
	email = domain.NormalizeEmail(email)
	if email == "" {
		return nil, apperrors.NewFieldError("email", errMissingEmail)
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	account := &domain.Account{
		Email:        email,
		Name:         strings.TrimSpace(extra.Name),
		PasswordHash: hash,
		IsActive:     true,
		IsStaff:      extra.IsStaff,
		IsSuperuser:  extra.IsSuperuser,
	}
	if extra.IsActive != nil {
		account.IsActive = *extra.IsActive
	}

	if err := s.ensureEmailAvailable(ctx, email, ""); err != nil {
		return nil, err
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, mapAccountWriteError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:      events.EventAccountCreated,
		AccountID: account.ID,
		Payload:   events.AccountCreatedPayload{Email: account.Email, Name: account.Name},
	})
	return account, nil
}

// CreateAdminAccount creates an account with staff and superuser flags set in
// the same write, so a failure never leaves a half-promoted account behind.
func (s *AccountService) CreateAdminAccount(ctx context.Context, email, password string) (*domain.Account, error) {
	account, err := s.CreateAccount(ctx, email, password, AccountFields{IsStaff: true, IsSuperuser: true})
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{Type: events.EventAccountPromoted, AccountID: account.ID})
	return account, nil
}

// GetAccount loads an account by id.
func (s *AccountService) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	account, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NewNotFound("account", nil)
		}
		return nil, err
	}
	return account, nil
}

// UpdateAccount applies a partial update. A new password is re-hashed, never stored raw.
func (s *AccountService) UpdateAccount(ctx context.Context, id string, patch AccountPatch) (*domain.Account, error) {
	account, err := s.GetAccount(ctx, id)
	if err != nil {
		return nil, err
	}

	var fields []string
	if patch.Email != nil {
		email := domain.NormalizeEmail(*patch.Email)
		if email == "" {
			return nil, apperrors.NewFieldError("email", errMissingEmail)
		}
		if email != account.Email {
			if err := s.ensureEmailAvailable(ctx, email, account.ID); err != nil {
				return nil, err
			}
			account.Email = email
		}
		fields = append(fields, "email")
	}
	if patch.Name != nil {
		account.Name = strings.TrimSpace(*patch.Name)
		fields = append(fields, "name")
	}
	if patch.Password != nil {
		hash, err := auth.HashPassword(*patch.Password, s.bcryptCost)
		if err != nil {
			return nil, err
		}
		account.PasswordHash = hash
		fields = append(fields, "password")
	}

	if len(fields) == 0 {
		return account, nil
	}
	if err := s.accounts.Update(ctx, account); err != nil {
		return nil, mapAccountWriteError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:      events.EventAccountUpdated,
		AccountID: account.ID,
		Payload:   events.AccountUpdatedPayload{Fields: fields, PasswordChanged: patch.Password != nil},
	})
	return account, nil
}

// DeleteAccount removes an account together with every recipe it owns.
func (s *AccountService) DeleteAccount(ctx context.Context, id string) error {
	if _, err := s.GetAccount(ctx, id); err != nil {
		return err
	}
	removed, err := s.recipes.DeleteByOwner(ctx, id)
	if err != nil {
		return err
	}
	if err := s.accounts.Delete(ctx, id); err != nil {
		return err
	}

	s.publishEvent(ctx, events.Event{
		Type:      events.EventAccountDeleted,
		AccountID: id,
		Payload:   events.AccountDeletedPayload{RecipesDeleted: removed},
	})
	return nil
}

// GetAccountByEmail looks up an account by its normalized email.
func (s *AccountService) GetAccountByEmail(ctx context.Context, email string) (*domain.Account, error) {
	account, err := s.accounts.GetByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NewNotFound("account", nil)
		}
		return nil, err
	}
	return account, nil
}

func (s *AccountService) ensureEmailAvailable(ctx context.Context, email, selfID string) error {
	existing, err := s.accounts.GetByEmail(ctx, email)
	if err == nil && existing.ID != selfID {
		return apperrors.NewFieldError("email", errDuplicateEmail)
	}
	if err != nil && !apperrors.IsNotFound(err) {
		return err
	}
	return nil
}

// mapAccountWriteError turns a unique-email race lost at the database into a 400.
func mapAccountWriteError(err error) error {
	if apperrors.IsUniqueViolation(err) {
		return apperrors.NewFieldError("email", errDuplicateEmail)
	}
	return err
}

func (s *AccountService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, event)
}
