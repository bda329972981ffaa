package repository

import (
	"context"
	"strings"
	"sync"
	"time"

	authdomain "tasknet-backend/internal/auth/domain"

	"github.com/google/uuid"
)

// memoryUserRepository is an ephemeral UserRepository for tests and the
// database-free server mode.
type memoryUserRepository struct {
	mu            sync.RWMutex
	users         map[string]*authdomain.User
	refreshTokens map[string]*authdomain.RefreshToken
}

// NewMemoryUserRepository creates an in-memory UserRepository.
func NewMemoryUserRepository() UserRepository {
	return &memoryUserRepository{
		users:         make(map[string]*authdomain.User),
		refreshTokens: make(map[string]*authdomain.RefreshToken),
	}
}

func (r *memoryUserRepository) Create(_ context.Context, user *authdomain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	user.Email = strings.ToLower(user.Email)
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt

	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *memoryUserRepository) Update(_ context.Context, user *authdomain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user.UpdatedAt = time.Now()
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *memoryUserRepository) FindByID(_ context.Context, id string) (*authdomain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	found := *user
	return &found, nil
}

func (r *memoryUserRepository) FindByEmail(_ context.Context, email string) (*authdomain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	email = strings.ToLower(email)
	for _, user := range r.users {
		if user.Email == email {
			found := *user
			return &found, nil
		}
	}
	return nil, nil
}

func (r *memoryUserRepository) UpsertByGoogleID(_ context.Context, googleID string, profile authdomain.User) (*authdomain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.GoogleID != nil && *user.GoogleID == googleID {
			user.Email = strings.ToLower(profile.Email)
			user.Name = profile.Name
			user.Avatar = profile.Avatar
			user.UpdatedAt = time.Now()
			found := *user
			return &found, nil
		}
	}

	user := &authdomain.User{
		ID:        uuid.New().String(),
		GoogleID:  &googleID,
		Email:     strings.ToLower(profile.Email),
		Name:      profile.Name,
		Avatar:    profile.Avatar,
		Provider:  "google",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	r.users[user.ID] = user
	created := *user
	return &created, nil
}

func (r *memoryUserRepository) SaveRefreshToken(_ context.Context, token *authdomain.RefreshToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *token
	r.refreshTokens[token.Token] = &stored
	return nil
}

func (r *memoryUserRepository) FindRefreshToken(_ context.Context, token string) (*authdomain.RefreshToken, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.refreshTokens[token]
	if !ok {
		return nil, nil
	}
	found := *stored
	return &found, nil
}

func (r *memoryUserRepository) DeleteRefreshToken(_ context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.refreshTokens, token)
	return nil
}
