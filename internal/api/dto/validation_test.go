package dto

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/spec-kit/recipe-service/pkg/util/errorutil"
)

func fieldMessages(t *testing.T, err error) map[string]any {
	t.Helper()
	var de *apperrors.DomainError
	require.True(t, errors.As(err, &de), "expected DomainError, got %v", err)
	assert.Equal(t, 400, de.HTTPStatus)
	return de.Details
}

func TestHasMarkup(t *testing.T) {
	plain := []string{"Plain", "Ann < Lee", "Fish & Chips", "5 > 3", "a &amp; b", "Tom <3 Jerry", ""}
	for _, in := range plain {
		assert.False(t, HasMarkup(in), in)
	}
	markup := []string{"<p>Hello</p>", "Ann <Annie> Lee", "Mac<cheese>", `<a href="x">Soup</a>`, "Hot <script>x</script>"}
	for _, in := range markup {
		assert.True(t, HasMarkup(in), in)
	}
}

func TestValidatorAccountCreate(t *testing.T) {
	v := NewValidator(5)

	require.NoError(t, v.Struct(AccountCreateRequest{Email: "test@example.com", Password: "pass123", Name: "Test"}))
	require.NoError(t, v.Struct(AccountCreateRequest{Email: "test@example.com", Password: "pass1"}))

	details := fieldMessages(t, v.Struct(AccountCreateRequest{Password: "pass123"}))
	assert.Equal(t, []string{"This field is required."}, details["email"])

	details = fieldMessages(t, v.Struct(AccountCreateRequest{Email: "not-an-email", Password: "pass123"}))
	assert.Equal(t, []string{"Enter a valid email address."}, details["email"])

	details = fieldMessages(t, v.Struct(AccountCreateRequest{Email: "test@example.com", Password: "pw"}))
	assert.Equal(t, []string{"Ensure this field has at least 5 characters."}, details["password"])

	details = fieldMessages(t, v.Struct(AccountCreateRequest{Email: "test@example.com", Password: "pass123", Name: strings.Repeat("n", 256)}))
	assert.Equal(t, []string{"Ensure this field has no more than 255 characters."}, details["name"])
}

func TestValidatorPasswordMinimumIsConfigurable(t *testing.T) {
	v := NewValidator(8)
	details := fieldMessages(t, v.Struct(AccountCreateRequest{Email: "test@example.com", Password: "pass123"}))
	assert.Equal(t, []string{"Ensure this field has at least 8 characters."}, details["password"])
}

func TestValidatorAccountUpdate(t *testing.T) {
	v := NewValidator(5)
	short := "pw"
	empty := ""
	name := "New Name"

	require.NoError(t, v.Struct(AccountUpdateRequest{}))
	require.NoError(t, v.Struct(AccountUpdateRequest{Name: &name}))

	details := fieldMessages(t, v.Struct(AccountUpdateRequest{Password: &short, Email: &empty}))
	assert.Contains(t, details, "password")
	assert.Contains(t, details, "email")
}

func TestValidatorCredentials(t *testing.T) {
	v := NewValidator(5)
	details := fieldMessages(t, v.Struct(CredentialRequest{}))
	assert.Equal(t, []string{"This field is required."}, details["email"])
	assert.Equal(t, []string{"This field is required."}, details["password"])
}

func TestAccountResponseOmitsSecrets(t *testing.T) {
	resp := NewAccountResponse(&accountFixture)
	assert.Equal(t, AccountResponse{Email: "test@example.com", Name: "Test"}, resp)
}

func TestValidatorRejectsMarkupInName(t *testing.T) {
	v := NewValidator(5)
	require.NoError(t, v.Struct(AccountCreateRequest{Email: "test@example.com", Password: "pass123", Name: "Ann < Lee"}))

	details := fieldMessages(t, v.Struct(AccountCreateRequest{Email: "test@example.com", Password: "pass123", Name: "Ann <Annie> Lee"}))
	assert.Equal(t, []string{"HTML markup is not allowed."}, details["name"])

	details = fieldMessages(t, v.Struct(AccountUpdateRequest{Name: ptr("<b>Chef</b>")}))
	assert.Equal(t, []string{"HTML markup is not allowed."}, details["name"])
}
