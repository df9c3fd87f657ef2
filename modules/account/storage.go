package account

import (
	"context"
	"strings"
	"sync"
)

// Storage persists accounts. CreateAccount returns ErrUsernameTaken or
// ErrEmailTaken when a unique value is already in use.
type Storage interface {
	CreateAccount(ctx context.Context, a *Account) error
	GetAccountByEmail(ctx context.Context, email string) (*Account, error)
}

// MemoryStorage keeps accounts in process memory. Usernames are compared
// case-insensitively.
type MemoryStorage struct {
	mu         sync.RWMutex
	byEmail    map[string]*Account
	byUsername map[string]*Account
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		byEmail:    make(map[string]*Account),
		byUsername: make(map[string]*Account),
	}
}

func (s *MemoryStorage) CreateAccount(_ context.Context, a *Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	uname := strings.ToLower(a.Username)
	if _, ok := s.byUsername[uname]; ok {
		return ErrUsernameTaken
	}
	if _, ok := s.byEmail[a.Email]; ok {
		return ErrEmailTaken
	}

	stored := *a
	s.byUsername[uname] = &stored
	s.byEmail[a.Email] = &stored
	return nil
}

func (s *MemoryStorage) GetAccountByEmail(_ context.Context, email string) (*Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.byEmail[email]
	if !ok {
		return nil, ErrAccountNotFound
	}
	out := *a
	return &out, nil
}

// Len returns the number of stored accounts.
func (s *MemoryStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byEmail)
}
