package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/anihub/svc/auth"
)

type AccountStore struct {
	mu       sync.RWMutex
	accounts map[uuid.UUID]auth.Account
	byEmail  map[string]uuid.UUID
	byName   map[string]uuid.UUID
	now      func() time.Time
}

func NewAccountStore() *AccountStore {
	return &AccountStore{
		accounts: make(map[uuid.UUID]auth.Account),
		byEmail:  make(map[string]uuid.UUID),
		byName:   make(map[string]uuid.UUID),
		now:      time.Now,
	}
}

func (s *AccountStore) FindByID(_ context.Context, id uuid.UUID) (auth.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	acc, ok := s.accounts[id]
	if !ok {
		return auth.Account{}, auth.ErrAccountNotFound
	}
	return acc, nil
}

func (s *AccountStore) FindByEmail(_ context.Context, email string) (auth.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[email]
	if !ok {
		return auth.Account{}, auth.ErrAccountNotFound
	}
	return s.accounts[id], nil
}

// FindByEmailOrName prefers the email match when both exist.
func (s *AccountStore) FindByEmailOrName(_ context.Context, email, name string) (auth.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if id, ok := s.byEmail[email]; ok {
		return s.accounts[id], nil
	}
	if id, ok := s.byName[name]; ok {
		return s.accounts[id], nil
	}
	return auth.Account{}, auth.ErrAccountNotFound
}

func (s *AccountStore) Create(_ context.Context, acc auth.Account) (auth.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.insert(acc)
}

func (s *AccountStore) SetVerified(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.accounts[id]
	if !ok {
		return auth.ErrAccountNotFound
	}
	acc.Verified = true
	s.accounts[id] = acc
	return nil
}

func (s *AccountStore) UpsertOAuth(_ context.Context, in auth.OAuthAccount) (auth.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id, ok := s.byEmail[in.Email]; ok {
		return s.accounts[id], nil
	}
	return s.insert(auth.Account{
		ID:        uuid.New(),
		Email:     in.Email,
		Name:      in.Name,
		AvatarURL: in.AvatarURL,
		Verified:  true,
	})
}

// Len returns the number of stored accounts.
func (s *AccountStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.accounts)
}

// insert must be called with mu held.
func (s *AccountStore) insert(acc auth.Account) (auth.Account, error) {
	if _, ok := s.byEmail[acc.Email]; ok {
		return auth.Account{}, auth.ErrEmailTaken
	}
	if _, ok := s.byName[acc.Name]; ok {
		return auth.Account{}, auth.ErrNameTaken
	}
	if acc.ID == uuid.Nil {
		acc.ID = uuid.New()
	}
	if acc.CreatedAt.IsZero() {
		acc.CreatedAt = s.now().UTC()
	}

	s.accounts[acc.ID] = acc
	s.byEmail[acc.Email] = acc.ID
	s.byName[acc.Name] = acc.ID
	return acc, nil
}

var _ auth.AccountRepository = (*AccountStore)(nil)
