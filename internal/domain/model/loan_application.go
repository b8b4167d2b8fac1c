package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Sriniketh-Vangipuram-996/Loan-Management-System/internal/domain/event"
	"github.com/Sriniketh-Vangipuram-996/Loan-Management-System/internal/domain/valueobject"
)

// ErrValidation is returned when a submission is missing or carries malformed
// required fields.
var ErrValidation = errors.New("validation failed")

// ---------------------------------------------------------------------------
// LoanApplication aggregate root
// ---------------------------------------------------------------------------

// LoanApplication is an immutable aggregate. Every mutation returns a new copy.
//
// Repayment figures are computed once at creation and never touched again;
// interest rate and tenure are likewise frozen (no product supports
// re-terming a loan).
type LoanApplication struct {
	id                 string
	ownerID            string
	loanType           valueobject.LoanType
	principal          decimal.Decimal
	purpose            string
	tenureMonths       int
	interestRate       decimal.Decimal
	monthlyInstallment decimal.Decimal
	totalPayable       decimal.Decimal
	totalInterest      decimal.Decimal
	status             valueobject.LoanStatus
	adminNotes         string
	processedBy        string
	appliedAt          time.Time
	processedAt        time.Time
	domainEvents       []event.DomainEvent
}

// NewLoanApplication creates a new application in pending status, computing
// the repayment figures from the supplied rate.
func NewLoanApplication(
	ownerID string,
	loanType valueobject.LoanType,
	principal decimal.Decimal,
	purpose string,
	tenureMonths int,
	interestRate decimal.Decimal,
	now time.Time,
) (LoanApplication, error) {
	if ownerID == "" {
		return LoanApplication{}, fmt.Errorf("%w: owner ID is required", ErrValidation)
	}
	if loanType.IsZero() {
		return LoanApplication{}, fmt.Errorf("%w: loan type is required", ErrValidation)
	}
	if principal.LessThanOrEqual(decimal.Zero) {
		return LoanApplication{}, fmt.Errorf("%w: principal must be positive", ErrValidation)
	}
	if purpose == "" {
		return LoanApplication{}, fmt.Errorf("%w: purpose is required", ErrValidation)
	}
	if tenureMonths <= 0 {
		return LoanApplication{}, fmt.Errorf("%w: tenure months must be positive", ErrValidation)
	}

	amort, err := ComputeAmortization(principal, interestRate, tenureMonths)
	if err != nil {
		return LoanApplication{}, err
	}

	id := uuid.New().String()
	app := LoanApplication{
		id:                 id,
		ownerID:            ownerID,
		loanType:           loanType,
		principal:          principal,
		purpose:            purpose,
		tenureMonths:       tenureMonths,
		interestRate:       interestRate,
		monthlyInstallment: amort.MonthlyInstallment,
		totalPayable:       amort.TotalPayable,
		totalInterest:      amort.TotalInterest,
		status:             valueobject.LoanStatusPending,
		appliedAt:          now,
	}

	app.domainEvents = append(app.domainEvents, event.NewLoanSubmitted(
		id, ownerID, loanType.String(), principal, tenureMonths,
		interestRate, amort.MonthlyInstallment,
	))
	return app, nil
}

// ReconstructLoanApplication rebuilds an aggregate from persistence without
// side-effects.
func ReconstructLoanApplication(
	id, ownerID string,
	loanType valueobject.LoanType,
	principal decimal.Decimal,
	purpose string,
	tenureMonths int,
	interestRate, monthlyInstallment, totalPayable decimal.Decimal,
	status valueobject.LoanStatus,
	adminNotes, processedBy string,
	appliedAt, processedAt time.Time,
) LoanApplication {
	return LoanApplication{
		id:                 id,
		ownerID:            ownerID,
		loanType:           loanType,
		principal:          principal,
		purpose:            purpose,
		tenureMonths:       tenureMonths,
		interestRate:       interestRate,
		monthlyInstallment: monthlyInstallment,
		totalPayable:       totalPayable,
		totalInterest:      totalPayable.Sub(principal),
		status:             status,
		adminNotes:         adminNotes,
		processedBy:        processedBy,
		appliedAt:          appliedAt,
		processedAt:        processedAt,
	}
}

// ---------------------------------------------------------------------------
// State transitions
// ---------------------------------------------------------------------------

// Disposition moves the application to approved, rejected, or under_review.
//
// Any current status may be dispositioned again, including approved and
// rejected; nothing guards terminal states. Stricter enforcement belongs in
// a future revision and is pinned by tests until then.
func (a LoanApplication) Disposition(
	newStatus valueobject.LoanStatus,
	actorID, notes string,
	now time.Time,
) (LoanApplication, error) {
	if !newStatus.IsDisposition() {
		return a, fmt.Errorf("%w: %q", valueobject.ErrInvalidStatus, newStatus.String())
	}

	next := a
	next.status = newStatus
	next.adminNotes = notes
	next.processedBy = actorID
	next.processedAt = now
	next.domainEvents = copyEvents(a.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewLoanDispositioned(
		a.id, a.ownerID, newStatus.String(), actorID, notes,
	))
	return next, nil
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (a LoanApplication) ID() string                          { return a.id }
func (a LoanApplication) OwnerID() string                     { return a.ownerID }
func (a LoanApplication) LoanType() valueobject.LoanType      { return a.loanType }
func (a LoanApplication) Principal() decimal.Decimal          { return a.principal }
func (a LoanApplication) Purpose() string                     { return a.purpose }
func (a LoanApplication) TenureMonths() int                   { return a.tenureMonths }
func (a LoanApplication) InterestRate() decimal.Decimal       { return a.interestRate }
func (a LoanApplication) MonthlyInstallment() decimal.Decimal { return a.monthlyInstallment }
func (a LoanApplication) TotalPayable() decimal.Decimal       { return a.totalPayable }
func (a LoanApplication) TotalInterest() decimal.Decimal      { return a.totalInterest }
func (a LoanApplication) Status() valueobject.LoanStatus      { return a.status }
func (a LoanApplication) AdminNotes() string                  { return a.adminNotes }
func (a LoanApplication) ProcessedBy() string                 { return a.processedBy }
func (a LoanApplication) AppliedAt() time.Time                { return a.appliedAt }
func (a LoanApplication) DomainEvents() []event.DomainEvent   { return a.domainEvents }

// ProcessedAt returns the disposition timestamp; the zero time means the
// application has not been processed.
func (a LoanApplication) ProcessedAt() time.Time { return a.processedAt }

// IsProcessed reports whether an admin has dispositioned the application.
func (a LoanApplication) IsProcessed() bool { return !a.processedAt.IsZero() }

// ClearEvents returns a copy with an empty event list (call after publishing).
func (a LoanApplication) ClearEvents() LoanApplication {
	next := a
	next.domainEvents = nil
	return next
}

func copyEvents(src []event.DomainEvent) []event.DomainEvent {
	if len(src) == 0 {
		return nil
	}
	dst := make([]event.DomainEvent, len(src))
	copy(dst, src)
	return dst
}
