package usecase

import (
	"context"

	authdomain "tasknet-backend/internal/auth/domain"
	authdto "tasknet-backend/internal/auth/dto"
)

// AuthUsecase covers credential login, the Google OAuth flow and bearer
// token issuance/verification.
type AuthUsecase interface {
	Register(ctx context.Context, req *authdto.RegisterRequest) (*authdto.TokenResponse, error)
	Login(ctx context.Context, req *authdto.LoginRequest) (*authdto.TokenResponse, error)

	// GoogleSignIn verifies a Google ID token obtained by the client and
	// signs the user in directly.
	GoogleSignIn(ctx context.Context, idToken string) (*authdto.TokenResponse, error)

	// GoogleLoginURL starts the redirect flow: it returns the provider
	// consent URL carrying a stored anti-CSRF state.
	GoogleLoginURL(ctx context.Context) (string, error)

	// HandleGoogleCallback completes the redirect flow and returns a
	// one-time login code for the frontend to exchange.
	HandleGoogleCallback(ctx context.Context, state, code string) (string, error)

	// ExchangeLoginCode redeems a one-time code for a token pair. Codes
	// are single use and expire quickly.
	ExchangeLoginCode(ctx context.Context, code string) (*authdto.TokenResponse, error)

	RefreshToken(ctx context.Context, refreshToken string) (*authdto.TokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	ValidateToken(ctx context.Context, token string) (*authdomain.User, error)
}
