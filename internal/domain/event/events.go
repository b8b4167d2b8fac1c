package event

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DomainEvent is the interface all loan lifecycle events implement.
type DomainEvent interface {
	EventID() string
	EventType() string
	AggregateID() string
	OccurredAt() time.Time
}

// BaseEvent provides the common DomainEvent fields.
type BaseEvent struct {
	ID         string    `json:"event_id"`
	Type       string    `json:"event_type"`
	Aggregate  string    `json:"aggregate_id"`
	OccurredTS time.Time `json:"occurred_at"`
}

// NewBaseEvent creates a BaseEvent with a generated ID and the current time.
func NewBaseEvent(eventType, aggregateID string) BaseEvent {
	return BaseEvent{
		ID:         uuid.New().String(),
		Type:       eventType,
		Aggregate:  aggregateID,
		OccurredTS: time.Now().UTC(),
	}
}

// EventID returns the unique identifier of this event.
func (e BaseEvent) EventID() string { return e.ID }

// EventType returns the type name of this event.
func (e BaseEvent) EventType() string { return e.Type }

// AggregateID returns the identifier of the aggregate that produced the event.
func (e BaseEvent) AggregateID() string { return e.Aggregate }

// OccurredAt returns the time at which this event occurred.
func (e BaseEvent) OccurredAt() time.Time { return e.OccurredTS }

// ---------------------------------------------------------------------------
// Loan lifecycle events
// ---------------------------------------------------------------------------

// LoanSubmitted is raised when a new application enters the system.
type LoanSubmitted struct {
	BaseEvent
	OwnerID            string          `json:"owner_id"`
	LoanType           string          `json:"loan_type"`
	Principal          decimal.Decimal `json:"principal"`
	TenureMonths       int             `json:"tenure_months"`
	InterestRate       decimal.Decimal `json:"interest_rate"`
	MonthlyInstallment decimal.Decimal `json:"monthly_installment"`
}

// NewLoanSubmitted builds the submission event for a loan application.
func NewLoanSubmitted(loanID, ownerID, loanType string, principal decimal.Decimal, tenureMonths int, interestRate, monthlyInstallment decimal.Decimal) LoanSubmitted {
	return LoanSubmitted{
		BaseEvent:          NewBaseEvent("loan.submitted", loanID),
		OwnerID:            ownerID,
		LoanType:           loanType,
		Principal:          principal,
		TenureMonths:       tenureMonths,
		InterestRate:       interestRate,
		MonthlyInstallment: monthlyInstallment,
	}
}

// LoanDispositioned is raised when an admin moves an application to
// approved, rejected, or under_review.
type LoanDispositioned struct {
	BaseEvent
	OwnerID string `json:"owner_id"`
	Status  string `json:"status"`
	ActorID string `json:"actor_id"`
	Notes   string `json:"notes,omitempty"`
}

// NewLoanDispositioned builds the disposition event for a loan application.
func NewLoanDispositioned(loanID, ownerID, status, actorID, notes string) LoanDispositioned {
	return LoanDispositioned{
		BaseEvent: NewBaseEvent("loan."+status, loanID),
		OwnerID:   ownerID,
		Status:    status,
		ActorID:   actorID,
		Notes:     notes,
	}
}

// RatesUpdated is raised when an admin replaces the interest rate overrides.
type RatesUpdated struct {
	BaseEvent
	ActorID string             `json:"actor_id"`
	Rates   map[string]float64 `json:"rates"`
}

// NewRatesUpdated builds the settings-change event.
func NewRatesUpdated(actorID string, rates map[string]float64) RatesUpdated {
	return RatesUpdated{
		BaseEvent: NewBaseEvent("settings.rates_updated", "loan_interest_rates"),
		ActorID:   actorID,
		Rates:     rates,
	}
}
