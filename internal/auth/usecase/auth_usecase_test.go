package usecase

import (
	"context"
	"testing"
	"time"

	authdto "tasknet-backend/internal/auth/dto"
	"tasknet-backend/internal/auth/repository"
	"tasknet-backend/pkg/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  2 * time.Hour,
		JWTRefreshExpiry: 168 * time.Hour,
		LoginCodeTTL:     2 * time.Minute,
	}
}

func newAuthUsecase(cfg *config.Config) (AuthUsecase, repository.LoginCodeStore) {
	codeStore := repository.NewMemoryLoginCodeStore()
	return NewAuthUsecase(repository.NewMemoryUserRepository(), codeStore, cfg), codeStore
}

func register(t *testing.T, uc AuthUsecase, email string) *authdto.TokenResponse {
	t.Helper()
	tokens, err := uc.Register(context.Background(), &authdto.RegisterRequest{
		Email:    email,
		Password: "hunter22",
		Name:     "Test User",
	})
	require.NoError(t, err)
	return tokens
}

func TestRegisterAndValidateToken(t *testing.T) {
	uc, _ := newAuthUsecase(testConfig())
	ctx := context.Background()

	tokens := register(t, uc, "alice@example.com")
	require.NotEmpty(t, tokens.AccessToken)
	require.NotEmpty(t, tokens.RefreshToken)
	assert.Equal(t, "alice@example.com", tokens.User.Email)
	assert.Empty(t, tokens.User.Password)

	user, err := uc.ValidateToken(ctx, tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, tokens.User.ID, user.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	uc, _ := newAuthUsecase(testConfig())

	register(t, uc, "alice@example.com")
	_, err := uc.Register(context.Background(), &authdto.RegisterRequest{
		Email:    "alice@example.com",
		Password: "hunter22",
		Name:     "Alice Again",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginWrongPassword(t *testing.T) {
	uc, _ := newAuthUsecase(testConfig())
	ctx := context.Background()

	register(t, uc, "alice@example.com")

	_, err := uc.Login(ctx, &authdto.LoginRequest{Email: "alice@example.com", Password: "wrong-pass"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = uc.Login(ctx, &authdto.LoginRequest{Email: "nobody@example.com", Password: "whatever"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestValidateTokenRejectsExpiredAndTampered(t *testing.T) {
	ctx := context.Background()

	// A token minted with a lifetime already in the past must not verify.
	expiredCfg := testConfig()
	expiredCfg.JWTAccessExpiry = -time.Minute
	uc, _ := newAuthUsecase(expiredCfg)
	tokens := register(t, uc, "alice@example.com")

	_, err := uc.ValidateToken(ctx, tokens.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	// A token signed with a different secret must not verify either.
	otherCfg := testConfig()
	otherCfg.JWTSecret = "some-other-secret"
	otherUc, _ := newAuthUsecase(otherCfg)
	otherTokens := register(t, otherUc, "bob@example.com")

	freshUc, _ := newAuthUsecase(testConfig())
	_, err = freshUc.ValidateToken(ctx, otherTokens.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = freshUc.ValidateToken(ctx, "not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRefreshTokenRotationAndLogout(t *testing.T) {
	uc, _ := newAuthUsecase(testConfig())
	ctx := context.Background()

	tokens := register(t, uc, "alice@example.com")

	refreshed, err := uc.RefreshToken(ctx, tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.Equal(t, tokens.User.ID, refreshed.User.ID)

	// A revoked refresh token stops working even though its signature is fine.
	require.NoError(t, uc.Logout(ctx, refreshed.RefreshToken))
	_, err = uc.RefreshToken(ctx, refreshed.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExchangeLoginCodeIsSingleUse(t *testing.T) {
	cfg := testConfig()
	uc, codeStore := newAuthUsecase(cfg)
	ctx := context.Background()

	tokens := register(t, uc, "alice@example.com")

	code := uuid.New().String()
	require.NoError(t, codeStore.Save(ctx, code, tokens.User.ID, cfg.LoginCodeTTL))

	exchanged, err := uc.ExchangeLoginCode(ctx, code)
	require.NoError(t, err)
	assert.Equal(t, tokens.User.ID, exchanged.User.ID)
	assert.NotEmpty(t, exchanged.AccessToken)

	// The same code cannot be redeemed twice.
	_, err = uc.ExchangeLoginCode(ctx, code)
	assert.ErrorIs(t, err, ErrInvalidLoginCode)

	_, err = uc.ExchangeLoginCode(ctx, "never-issued")
	assert.ErrorIs(t, err, ErrInvalidLoginCode)
}

func TestLoginCodeExpires(t *testing.T) {
	store := repository.NewMemoryLoginCodeStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "code", "user-1", time.Millisecond))
	time.Sleep(5 * time.Millisecond)

	_, err := store.Redeem(ctx, "code")
	assert.ErrorIs(t, err, repository.ErrCodeInvalid)
}

func TestGoogleLoginURLCarriesStoredState(t *testing.T) {
	cfg := testConfig()
	cfg.GoogleClientID = "client-id"
	cfg.GoogleClientSecret = "client-secret"
	cfg.GoogleRedirectURL = "http://localhost:8080/api/auth/google/callback"

	uc, _ := newAuthUsecase(cfg)

	url, err := uc.GoogleLoginURL(context.Background())
	require.NoError(t, err)
	assert.Contains(t, url, "accounts.google.com")
	assert.Contains(t, url, "state=")
	assert.Contains(t, url, "client-id")
}
