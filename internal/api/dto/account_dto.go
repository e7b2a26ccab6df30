package dto

import (
	"github.com/spec-kit/recipe-service/internal/domain"
)

// AccountCreateRequest payload for POST /api/user/create.
type AccountCreateRequest struct {
	Email    string `json:"email" form:"email" validate:"required,email,max=255"`
	Password string `json:"password" form:"password" validate:"required,password"`
	Name     string `json:"name" form:"name" validate:"max=255,nomarkup"`
}

// AccountUpdateRequest payload for PATCH/PUT /api/user/me. Absent fields are left unchanged.
type AccountUpdateRequest struct {
	Email    *string `json:"email" form:"email" validate:"omitnil,email,max=255"`
	Password *string `json:"password" form:"password" validate:"omitnil,password"`
	Name     *string `json:"name" form:"name" validate:"omitnil,max=255,nomarkup"`
}

// CredentialRequest payload for POST /api/user/token.
type CredentialRequest struct {
	Email    string `json:"email" form:"email" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

// TokenResponse is returned by the token endpoint.
type TokenResponse struct {
	Token string `json:"token"`
}

// AccountResponse is the public account representation. It never carries
// the password or the identifier.
type AccountResponse struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// NewAccountResponse renders an account.
func NewAccountResponse(account *domain.Account) AccountResponse {
	return AccountResponse{Email: account.Email, Name: account.Name}
}
