package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Sriniketh-Vangipuram-996/Loan-Management-System/internal/application/dto"
	"github.com/Sriniketh-Vangipuram-996/Loan-Management-System/internal/domain/model"
	"github.com/Sriniketh-Vangipuram-996/Loan-Management-System/internal/domain/service"
	"github.com/Sriniketh-Vangipuram-996/Loan-Management-System/internal/domain/valueobject"
)

// QuoteLoanUseCase computes repayment figures for a prospective loan without
// persisting anything.
type QuoteLoanUseCase struct {
	resolver *service.RateResolver
}

// NewQuoteLoanUseCase wires dependencies.
func NewQuoteLoanUseCase(resolver *service.RateResolver) *QuoteLoanUseCase {
	return &QuoteLoanUseCase{resolver: resolver}
}

// Execute resolves the rate, computes the EMI, and optionally attaches the
// full amortization schedule.
func (uc *QuoteLoanUseCase) Execute(ctx context.Context, req dto.QuoteRequest) (dto.QuoteResponse, error) {
	loanType, err := valueobject.NewLoanType(req.LoanType)
	if err != nil {
		return dto.QuoteResponse{}, fmt.Errorf("%w: %v", model.ErrValidation, err)
	}

	var rate decimal.Decimal
	if req.InterestRate != nil {
		rate = *req.InterestRate
	} else {
		rate = uc.resolver.Resolve(ctx, loanType)
	}

	amort, err := model.ComputeAmortization(req.Principal, rate, req.TenureMonths)
	if err != nil {
		return dto.QuoteResponse{}, err
	}

	resp := dto.QuoteResponse{
		LoanType:           loanType.String(),
		Principal:          req.Principal,
		TenureMonths:       req.TenureMonths,
		InterestRate:       rate,
		MonthlyInstallment: amort.MonthlyInstallment,
		TotalPayable:       amort.TotalPayable,
		TotalInterest:      amort.TotalInterest,
	}

	if req.WithSchedule {
		schedule := model.GenerateSchedule(req.Principal, rate, req.TenureMonths, time.Now().UTC())
		resp.Schedule = make([]dto.ScheduleEntryResponse, len(schedule))
		for i, e := range schedule {
			resp.Schedule[i] = dto.ScheduleEntryResponse{
				Period:           e.Period,
				DueDate:          e.DueDate,
				Principal:        e.Principal,
				Interest:         e.Interest,
				Total:            e.Total,
				RemainingBalance: e.RemainingBalance,
			}
		}
	}

	return resp, nil
}
