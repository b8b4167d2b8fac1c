package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/Sriniketh-Vangipuram-996/Loan-Management-System/internal/application/dto"
	"github.com/Sriniketh-Vangipuram-996/Loan-Management-System/internal/domain/model"
	"github.com/Sriniketh-Vangipuram-996/Loan-Management-System/internal/domain/port"
)

// ErrAccessDenied is returned when a customer requests a loan they do not own.
var ErrAccessDenied = errors.New("access denied")

// GetLoanUseCase retrieves a single loan application, enforcing ownership
// for customer callers.
type GetLoanUseCase struct {
	loans port.LoanStore
}

// NewGetLoanUseCase wires dependencies.
func NewGetLoanUseCase(loans port.LoanStore) *GetLoanUseCase {
	return &GetLoanUseCase{loans: loans}
}

// Execute fetches a loan by ID. Customers may only read their own loans;
// admins may read any.
func (uc *GetLoanUseCase) Execute(ctx context.Context, loanID, requesterID, requesterRole string) (dto.LoanResponse, error) {
	app, err := uc.loans.FindByID(ctx, loanID)
	if err != nil {
		return dto.LoanResponse{}, fmt.Errorf("find loan %s: %w", loanID, err)
	}

	if requesterRole != model.RoleAdmin && app.OwnerID() != requesterID {
		return dto.LoanResponse{}, ErrAccessDenied
	}

	return dto.FromLoanApplication(app), nil
}
