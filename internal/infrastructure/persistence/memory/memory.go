// Package memory provides mutex-guarded in-memory implementations of the
// repository ports. They back handler tests and local development without a
// database.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Sriniketh-Vangipuram-996/Loan-Management-System/internal/domain/model"
	"github.com/Sriniketh-Vangipuram-996/Loan-Management-System/internal/domain/port"
	"github.com/Sriniketh-Vangipuram-996/Loan-Management-System/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// LoanStore
// ---------------------------------------------------------------------------

// LoanStore is an in-memory port.LoanStore.
type LoanStore struct {
	mu    sync.RWMutex
	loans map[string]model.LoanApplication
}

// NewLoanStore creates an empty store.
func NewLoanStore() *LoanStore {
	return &LoanStore{loans: make(map[string]model.LoanApplication)}
}

func (s *LoanStore) Insert(_ context.Context, app model.LoanApplication) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loans[app.ID()] = app.ClearEvents()
	return nil
}

func (s *LoanStore) FindByID(_ context.Context, id string) (model.LoanApplication, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	app, ok := s.loans[id]
	if !ok {
		return model.LoanApplication{}, port.ErrNotFound
	}
	return app, nil
}

func (s *LoanStore) FindByOwner(_ context.Context, ownerID string) ([]model.LoanApplication, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []model.LoanApplication
	for _, app := range s.loans {
		if app.OwnerID() == ownerID {
			result = append(result, app)
		}
	}
	sortNewestFirst(result)
	return result, nil
}

func (s *LoanStore) FindAll(_ context.Context, filter port.LoanFilter) ([]model.LoanApplication, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []model.LoanApplication
	for _, app := range s.loans {
		if filter.Status != "" && app.Status().String() != filter.Status {
			continue
		}
		if filter.LoanType != "" && app.LoanType().String() != filter.LoanType {
			continue
		}
		result = append(result, app)
	}
	sortNewestFirst(result)
	if filter.Limit > 0 && len(result) > filter.Limit {
		result = result[:filter.Limit]
	}
	return result, nil
}

func (s *LoanStore) UpdateStatus(
	_ context.Context,
	id string,
	status valueobject.LoanStatus,
	actorID, notes string,
	processedAt time.Time,
) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	app, ok := s.loans[id]
	if !ok {
		return false, nil
	}
	updated, err := app.Disposition(status, actorID, notes, processedAt)
	if err != nil {
		return false, err
	}
	s.loans[id] = updated.ClearEvents()
	return true, nil
}

func (s *LoanStore) AggregateStats(_ context.Context) (model.LoanStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	all := make([]model.LoanApplication, 0, len(s.loans))
	for _, app := range s.loans {
		all = append(all, app)
	}
	return model.ComputeLoanStats(all), nil
}

func (s *LoanStore) Analytics(_ context.Context, since time.Time) (model.LoanAnalytics, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	all := make([]model.LoanApplication, 0, len(s.loans))
	for _, app := range s.loans {
		all = append(all, app)
	}
	return model.ComputeLoanAnalytics(all, since), nil
}

func sortNewestFirst(apps []model.LoanApplication) {
	sort.Slice(apps, func(i, j int) bool {
		return apps[i].AppliedAt().After(apps[j].AppliedAt())
	})
}

// ---------------------------------------------------------------------------
// SettingsStore
// ---------------------------------------------------------------------------

// SettingsStore is an in-memory port.SettingsStore.
type SettingsStore struct {
	mu       sync.RWMutex
	settings map[string]string

	// FailReads makes Get return ReadErr, for exercising fallback paths.
	FailReads bool
	ReadErr   error
}

// NewSettingsStore creates an empty store.
func NewSettingsStore() *SettingsStore {
	return &SettingsStore{settings: make(map[string]string)}
}

func (s *SettingsStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.FailReads {
		return "", false, s.ReadErr
	}
	value, ok := s.settings[key]
	return value, ok, nil
}

func (s *SettingsStore) Upsert(_ context.Context, key, value, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings[key] = value
	return nil
}

// ---------------------------------------------------------------------------
// UserStore
// ---------------------------------------------------------------------------

// UserStore is an in-memory port.UserStore.
type UserStore struct {
	mu    sync.RWMutex
	users map[string]model.User
}

// NewUserStore creates an empty store.
func NewUserStore() *UserStore {
	return &UserStore{users: make(map[string]model.User)}
}

func (s *UserStore) Insert(_ context.Context, u model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
	return nil
}

func (s *UserStore) FindByID(_ context.Context, id string) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return model.User{}, port.ErrNotFound
	}
	return u, nil
}

func (s *UserStore) FindByEmail(_ context.Context, email string) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return model.User{}, port.ErrNotFound
}

func (s *UserStore) FindAll(_ context.Context, role string) ([]model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []model.User
	for _, u := range s.users {
		if role == "" || u.Role == role {
			result = append(result, u)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (s *UserStore) Update(_ context.Context, u model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[u.ID]; !ok {
		return port.ErrNotFound
	}
	s.users[u.ID] = u
	return nil
}

func (s *UserStore) UpdateRole(_ context.Context, id, role string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return port.ErrNotFound
	}
	u.Role = role
	s.users[id] = u
	return nil
}

func (s *UserStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return port.ErrNotFound
	}
	delete(s.users, id)
	return nil
}

func (s *UserStore) CountByRole(_ context.Context, role string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, u := range s.users {
		if u.Role == role {
			count++
		}
	}
	return count, nil
}

// ---------------------------------------------------------------------------
// RateCache
// ---------------------------------------------------------------------------

// RateCache is an in-memory port.RateCache.
type RateCache struct {
	mu      sync.RWMutex
	entries map[string]string
}

// NewRateCache creates an empty cache.
func NewRateCache() *RateCache {
	return &RateCache{entries: make(map[string]string)}
}

func (c *RateCache) Get(_ context.Context, key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	value, ok := c.entries[key]
	return value, ok
}

func (c *RateCache) Set(_ context.Context, key, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
	return nil
}

func (c *RateCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}
