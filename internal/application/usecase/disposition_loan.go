package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Sriniketh-Vangipuram-996/Loan-Management-System/internal/application/dto"
	"github.com/Sriniketh-Vangipuram-996/Loan-Management-System/internal/domain/port"
	"github.com/Sriniketh-Vangipuram-996/Loan-Management-System/internal/domain/valueobject"
)

// DispositionLoanUseCase applies an admin decision to a loan application.
type DispositionLoanUseCase struct {
	loans     port.LoanStore
	publisher port.EventPublisher
	logger    *slog.Logger
}

// NewDispositionLoanUseCase wires dependencies.
func NewDispositionLoanUseCase(loans port.LoanStore, publisher port.EventPublisher, logger *slog.Logger) *DispositionLoanUseCase {
	return &DispositionLoanUseCase{loans: loans, publisher: publisher, logger: logger}
}

// Execute moves the application to the requested status, recording the
// acting admin, notes, and the processing timestamp.
func (uc *DispositionLoanUseCase) Execute(ctx context.Context, req dto.DispositionRequest) (dto.LoanResponse, error) {
	now := time.Now().UTC()

	status, err := valueobject.NewLoanStatus(req.Status)
	if err != nil || !status.IsDisposition() {
		return dto.LoanResponse{}, fmt.Errorf("%w: %q", valueobject.ErrInvalidStatus, req.Status)
	}

	app, err := uc.loans.FindByID(ctx, req.LoanID)
	if err != nil {
		return dto.LoanResponse{}, fmt.Errorf("find loan %s: %w", req.LoanID, err)
	}

	app, err = app.Disposition(status, req.ActorID, req.Notes, now)
	if err != nil {
		return dto.LoanResponse{}, err
	}

	updated, err := uc.loans.UpdateStatus(ctx, app.ID(), status, req.ActorID, req.Notes, now)
	if err != nil {
		return dto.LoanResponse{}, fmt.Errorf("update loan status: %w", err)
	}
	if !updated {
		return dto.LoanResponse{}, fmt.Errorf("loan %s: %w", req.LoanID, port.ErrNotFound)
	}

	uc.logger.Info("loan dispositioned",
		"loan_id", app.ID(),
		"status", status.String(),
		"actor_id", req.ActorID,
	)

	if err := uc.publisher.Publish(ctx, app.DomainEvents()...); err != nil {
		uc.logger.Warn("failed to publish disposition events", "loan_id", app.ID(), "error", err)
	}

	return dto.FromLoanApplication(app.ClearEvents()), nil
}
