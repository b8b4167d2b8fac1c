package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Sriniketh-Vangipuram-996/Loan-Management-System/internal/application/dto"
	"github.com/Sriniketh-Vangipuram-996/Loan-Management-System/internal/domain/model"
	"github.com/Sriniketh-Vangipuram-996/Loan-Management-System/internal/domain/port"
	"github.com/Sriniketh-Vangipuram-996/Loan-Management-System/internal/domain/service"
	"github.com/Sriniketh-Vangipuram-996/Loan-Management-System/internal/domain/valueobject"
)

// SubmitLoanUseCase orchestrates a new loan application: rate resolution,
// EMI computation, persistence, and event publishing.
type SubmitLoanUseCase struct {
	loans     port.LoanStore
	resolver  *service.RateResolver
	publisher port.EventPublisher
	logger    *slog.Logger
}

// NewSubmitLoanUseCase wires dependencies.
func NewSubmitLoanUseCase(
	loans port.LoanStore,
	resolver *service.RateResolver,
	publisher port.EventPublisher,
	logger *slog.Logger,
) *SubmitLoanUseCase {
	return &SubmitLoanUseCase{
		loans:     loans,
		resolver:  resolver,
		publisher: publisher,
		logger:    logger,
	}
}

// Execute creates and persists a pending loan application.
func (uc *SubmitLoanUseCase) Execute(ctx context.Context, req dto.SubmitLoanRequest) (dto.LoanResponse, error) {
	now := time.Now().UTC()

	loanType, err := valueobject.NewLoanType(req.LoanType)
	if err != nil {
		return dto.LoanResponse{}, fmt.Errorf("%w: %v", model.ErrValidation, err)
	}

	// A caller-quoted rate is honored verbatim so the figures shown at
	// quote time match what gets persisted; otherwise resolve from settings.
	var rate decimal.Decimal
	if req.InterestRate != nil {
		rate = *req.InterestRate
	} else {
		rate = uc.resolver.Resolve(ctx, loanType)
	}

	app, err := model.NewLoanApplication(
		req.OwnerID, loanType, req.Principal, req.Purpose, req.TenureMonths, rate, now,
	)
	if err != nil {
		return dto.LoanResponse{}, err
	}

	if err := uc.loans.Insert(ctx, app); err != nil {
		return dto.LoanResponse{}, fmt.Errorf("save loan application: %w", err)
	}

	// Events are a notification concern; failures must not fail the submission.
	if err := uc.publisher.Publish(ctx, app.DomainEvents()...); err != nil {
		uc.logger.Warn("failed to publish loan events", "loan_id", app.ID(), "error", err)
	}

	return dto.FromLoanApplication(app.ClearEvents()), nil
}
