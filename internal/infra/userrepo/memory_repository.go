package userrepo

import (
	"context"
	"sync"
	"time"

	"github.com/legalmitra/legalmitra/internal/domain/auth"
)

// MemoryRepository provides an in-memory user store for tests/dev.
type MemoryRepository struct {
	mu         sync.RWMutex
	users      map[int64]auth.User
	emailIndex map[string]int64
	seq        int64
}

// NewMemoryRepository constructs a new in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		users:      make(map[int64]auth.User),
		emailIndex: make(map[string]int64),
	}
}

// Create stores the user record.
func (r *MemoryRepository) Create(_ context.Context, name, email, passwordHash string) (auth.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.emailIndex[email]; exists {
		return auth.User{}, auth.ErrEmailExists
	}
	r.seq++
	user := auth.User{
		ID:           r.seq,
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	r.users[user.ID] = user
	r.emailIndex[email] = user.ID
	return user, nil
}

// GetByEmail returns a user by email.
func (r *MemoryRepository) GetByEmail(_ context.Context, email string) (auth.User, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if id, ok := r.emailIndex[email]; ok {
		return r.users[id], true, nil
	}
	return auth.User{}, false, nil
}

// GetByID fetches by ID.
func (r *MemoryRepository) GetByID(_ context.Context, id int64) (auth.User, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[id]
	return user, ok, nil
}

// SetResetToken attaches a password reset token to the user.
func (r *MemoryRepository) SetResetToken(_ context.Context, userID int64, token string, expiry time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[userID]
	if !ok {
		return nil
	}
	user.ResetToken = token
	user.ResetTokenExpiry = expiry
	r.users[userID] = user
	return nil
}

// GetByResetToken looks up a user by email and reset token.
func (r *MemoryRepository) GetByResetToken(_ context.Context, email, token string) (auth.User, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if token == "" {
		return auth.User{}, false, nil
	}
	id, ok := r.emailIndex[email]
	if !ok {
		return auth.User{}, false, nil
	}
	user := r.users[id]
	if user.ResetToken != token {
		return auth.User{}, false, nil
	}
	return user, true, nil
}

// UpdatePassword replaces the hash and clears the reset token.
func (r *MemoryRepository) UpdatePassword(_ context.Context, userID int64, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[userID]
	if !ok {
		return nil
	}
	user.PasswordHash = passwordHash
	user.ResetToken = ""
	user.ResetTokenExpiry = time.Time{}
	r.users[userID] = user
	return nil
}

var _ auth.Repository = (*MemoryRepository)(nil)
