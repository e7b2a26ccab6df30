package service

import (
	"context"

	"github.com/spec-kit/recipe-service/internal/auth"
	"github.com/spec-kit/recipe-service/internal/domain"
	"github.com/spec-kit/recipe-service/internal/repository"
	apperrors "github.com/spec-kit/recipe-service/pkg/util/errorutil"
)

const errBadCredentials = "Unable to authenticate with provided credentials"

// AuthService verifies credentials and issues tokens.
type AuthService struct {
	accounts   repository.AccountRepository
	tokens     repository.TokenRepository
	tokenMgr   *auth.TokenManager
	dummyHash  string
	bcryptCost int
}

// AuthDependencies encapsulates repo requirements for auth service.
type AuthDependencies struct {
	AccountRepo  repository.AccountRepository
	TokenRepo    repository.TokenRepository
	TokenManager *auth.TokenManager
	BcryptCost   int
}

// NewAuthService builds the service.
func NewAuthService(deps AuthDependencies) *AuthService {
	// compared against when the email is unknown so both failure paths cost one bcrypt run
	dummy, _ := auth.HashPassword("unknown-account", deps.BcryptCost)
	return &AuthService{
		accounts:   deps.AccountRepo,
		tokens:     deps.TokenRepo,
		tokenMgr:   deps.TokenManager,
		dummyHash:  dummy,
		bcryptCost: deps.BcryptCost,
	}
}

// Authenticate returns the active account matching the credentials. Unknown
// email, wrong password and inactive account produce the same error.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*domain.Account, error) {
	account, err := s.accounts.GetByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		if !apperrors.IsNotFound(err) {
			return nil, err
		}
		_ = auth.ComparePassword(s.dummyHash, password)
		return nil, badCredentials()
	}
	if !account.HasUsablePassword() {
		return nil, badCredentials()
	}
	if err := auth.ComparePassword(account.PasswordHash, password); err != nil {
		return nil, badCredentials()
	}
	if !account.IsActive {
		return nil, badCredentials()
	}
	return account, nil
}

// IssueToken returns the account's token, creating one if none is stored or
// the stored one has expired.
func (s *AuthService) IssueToken(ctx context.Context, account *domain.Account) (string, error) {
	existing, err := s.tokens.GetByAccount(ctx, account.ID)
	switch {
	case err == nil:
		if _, parseErr := s.tokenMgr.ParseToken(existing.Key); parseErr == nil {
			return existing.Key, nil
		}
		if err := s.tokens.Delete(ctx, existing.Key); err != nil {
			return "", err
		}
	case !apperrors.IsNotFound(err):
		return "", err
	}

	key, _, err := s.tokenMgr.GenerateToken(account.ID)
	if err != nil {
		return "", err
	}
	token := &domain.AuthToken{Key: key, AccountID: account.ID}
	if err := s.tokens.Create(ctx, token); err != nil {
		if apperrors.IsUniqueViolation(err) {
			// a concurrent request stored a token first
			winner, getErr := s.tokens.GetByAccount(ctx, account.ID)
			if getErr != nil {
				return "", getErr
			}
			return winner.Key, nil
		}
		return "", err
	}
	return token.Key, nil
}

// Login authenticates the credentials and issues a token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	account, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return "", err
	}
	return s.IssueToken(ctx, account)
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func badCredentials() error {
	return apperrors.NewFieldError(apperrors.NonFieldErrors, errBadCredentials)
}
