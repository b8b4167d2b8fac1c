package port

import (
	"context"
	"errors"
	"time"

	"github.com/Sriniketh-Vangipuram-996/Loan-Management-System/internal/domain/event"
	"github.com/Sriniketh-Vangipuram-996/Loan-Management-System/internal/domain/model"
	"github.com/Sriniketh-Vangipuram-996/Loan-Management-System/internal/domain/valueobject"
)

// ErrNotFound is returned by stores when the requested record does not exist.
var ErrNotFound = errors.New("record not found")

// ---------------------------------------------------------------------------
// Repository ports (driven/secondary adapters)
// ---------------------------------------------------------------------------

// LoanFilter narrows a listing of loan applications. Zero values mean "any".
type LoanFilter struct {
	Status   string
	LoanType string
	Limit    int
}

// LoanStore persists and retrieves loan applications.
//
// Concurrency discipline is intentionally last-writer-wins: UpdateStatus is a
// plain single-row update with no version check. A conditional update can be
// substituted here without touching lifecycle logic.
type LoanStore interface {
	Insert(ctx context.Context, app model.LoanApplication) error
	FindByID(ctx context.Context, id string) (model.LoanApplication, error)
	FindByOwner(ctx context.Context, ownerID string) ([]model.LoanApplication, error)
	FindAll(ctx context.Context, filter LoanFilter) ([]model.LoanApplication, error)
	UpdateStatus(ctx context.Context, id string, status valueobject.LoanStatus, actorID, notes string, processedAt time.Time) (bool, error)
	AggregateStats(ctx context.Context) (model.LoanStats, error)
	Analytics(ctx context.Context, since time.Time) (model.LoanAnalytics, error)
}

// SettingsStore persists singleton configuration records keyed by name.
// Get returns ok=false when no record exists for the key.
type SettingsStore interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Upsert(ctx context.Context, key, value, actorID string) error
}

// UserStore persists and retrieves user accounts.
type UserStore interface {
	Insert(ctx context.Context, u model.User) error
	FindByID(ctx context.Context, id string) (model.User, error)
	FindByEmail(ctx context.Context, email string) (model.User, error)
	FindAll(ctx context.Context, role string) ([]model.User, error)
	Update(ctx context.Context, u model.User) error
	UpdateRole(ctx context.Context, id, role string) error
	Delete(ctx context.Context, id string) error
	CountByRole(ctx context.Context, role string) (int, error)
}

// ---------------------------------------------------------------------------
// Cache port
// ---------------------------------------------------------------------------

// RateCache is a best-effort cache for the serialized rate override record.
// Implementations must degrade gracefully: a miss and an outage look the same.
type RateCache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// ---------------------------------------------------------------------------
// Event publisher port
// ---------------------------------------------------------------------------

// EventPublisher publishes domain events to external consumers.
type EventPublisher interface {
	Publish(ctx context.Context, events ...event.DomainEvent) error
}
