package delivery

import (
	"errors"
	"log"
	"net/http"

	authdomain "tasknet-backend/internal/auth/domain"
	authdto "tasknet-backend/internal/auth/dto"
	"tasknet-backend/internal/auth/usecase"
	"tasknet-backend/pkg/config"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles authentication HTTP requests
type AuthHandler struct {
	authUsecase usecase.AuthUsecase
	config      *config.Config
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authUsecase usecase.AuthUsecase, cfg *config.Config) *AuthHandler {
	return &AuthHandler{authUsecase: authUsecase, config: cfg}
}

// Register creates a password account
// POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req authdto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tokens, err := h.authUsecase.Register(c.Request.Context(), &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, tokens)
}

// Login signs in with email and password
// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req authdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tokens, err := h.authUsecase.Login(c.Request.Context(), &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, tokens)
}

// GoogleSignIn signs in with a Google ID token obtained by the client
// POST /api/auth/google
func (h *AuthHandler) GoogleSignIn(c *gin.Context) {
	var req authdto.GoogleSignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tokens, err := h.authUsecase.GoogleSignIn(c.Request.Context(), req.Token)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, tokens)
}

// GoogleLogin starts the OAuth redirect flow
// GET /api/auth/google
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	url, err := h.authUsecase.GoogleLoginURL(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.Redirect(http.StatusTemporaryRedirect, url)
}

// GoogleCallback completes the OAuth flow. The frontend receives a one-time
// code and exchanges it for tokens via POST /api/auth/exchange, so the token
// itself never appears in a URL.
// GET /api/auth/google/callback
func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	if errParam := c.Query("error"); errParam != "" {
		c.Redirect(http.StatusTemporaryRedirect, h.config.FrontendURL+"/login?error=google")
		return
	}

	loginCode, err := h.authUsecase.HandleGoogleCallback(c.Request.Context(), c.Query("state"), c.Query("code"))
	if err != nil {
		log.Printf("[WARN] google callback failed: %v", err)
		c.Redirect(http.StatusTemporaryRedirect, h.config.FrontendURL+"/login?error=google")
		return
	}

	c.Redirect(http.StatusTemporaryRedirect, h.config.FrontendURL+"/auth/callback?code="+loginCode)
}

// Exchange redeems a one-time login code for a token pair
// POST /api/auth/exchange
func (h *AuthHandler) Exchange(c *gin.Context) {
	var req authdto.ExchangeCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tokens, err := h.authUsecase.ExchangeLoginCode(c.Request.Context(), req.Code)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, tokens)
}

// RefreshToken trades a valid refresh token for a new token pair
// POST /api/auth/refresh
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req authdto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tokens, err := h.authUsecase.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, tokens)
}

// Logout revokes a refresh token
// POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	var req authdto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.authUsecase.Logout(c.Request.Context(), req.RefreshToken); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// Me resolves the bearer token to the caller's profile
// GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	value, exists := c.Get("user")
	user, ok := value.(*authdomain.User)
	if !exists || !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *AuthHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrEmailTaken):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, usecase.ErrInvalidCredentials),
		errors.Is(err, usecase.ErrInvalidToken),
		errors.Is(err, usecase.ErrInvalidLoginCode):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, usecase.ErrOAuthFailed):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "google sign-in failed"})
	default:
		log.Printf("[ERROR] auth request failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
