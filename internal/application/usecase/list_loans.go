package usecase

import (
	"context"
	"fmt"

	"github.com/Sriniketh-Vangipuram-996/Loan-Management-System/internal/application/dto"
	"github.com/Sriniketh-Vangipuram-996/Loan-Management-System/internal/domain/port"
)

// ListLoansUseCase lists loan applications for the admin surface.
type ListLoansUseCase struct {
	loans port.LoanStore
}

// NewListLoansUseCase wires dependencies.
func NewListLoansUseCase(loans port.LoanStore) *ListLoansUseCase {
	return &ListLoansUseCase{loans: loans}
}

// Execute lists applications matching the filter, newest first.
func (uc *ListLoansUseCase) Execute(ctx context.Context, filter port.LoanFilter) ([]dto.LoanResponse, error) {
	apps, err := uc.loans.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list loans: %w", err)
	}
	return dto.FromLoanApplications(apps), nil
}

// ListOwnerLoansUseCase lists a customer's own loan applications.
type ListOwnerLoansUseCase struct {
	loans port.LoanStore
}

// NewListOwnerLoansUseCase wires dependencies.
func NewListOwnerLoansUseCase(loans port.LoanStore) *ListOwnerLoansUseCase {
	return &ListOwnerLoansUseCase{loans: loans}
}

// Execute lists the owner's applications, newest first.
func (uc *ListOwnerLoansUseCase) Execute(ctx context.Context, ownerID string) ([]dto.LoanResponse, error) {
	apps, err := uc.loans.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list loans for owner %s: %w", ownerID, err)
	}
	return dto.FromLoanApplications(apps), nil
}
