package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/Sriniketh-Vangipuram-996/Loan-Management-System/internal/application/dto"
	"github.com/Sriniketh-Vangipuram-996/Loan-Management-System/internal/domain/model"
	"github.com/Sriniketh-Vangipuram-996/Loan-Management-System/internal/domain/port"
)

// DashboardStatsUseCase assembles the admin dashboard aggregates.
type DashboardStatsUseCase struct {
	loans port.LoanStore
	users port.UserStore
}

// NewDashboardStatsUseCase wires dependencies.
func NewDashboardStatsUseCase(loans port.LoanStore, users port.UserStore) *DashboardStatsUseCase {
	return &DashboardStatsUseCase{loans: loans, users: users}
}

// Execute aggregates loan figures store-side and joins the customer count.
func (uc *DashboardStatsUseCase) Execute(ctx context.Context) (dto.StatsResponse, error) {
	stats, err := uc.loans.AggregateStats(ctx)
	if err != nil {
		return dto.StatsResponse{}, fmt.Errorf("aggregate loan stats: %w", err)
	}

	customers, err := uc.users.CountByRole(ctx, model.RoleCustomer)
	if err != nil {
		return dto.StatsResponse{}, fmt.Errorf("count customers: %w", err)
	}

	resp := dto.FromLoanStats(stats)
	resp.TotalCustomers = customers
	resp.TodayApplications = stats.TodayApplications
	return resp, nil
}

// analyticsWindow bounds the applications-over-time series.
const analyticsWindow = 30 * 24 * time.Hour

// AnalyticsUseCase assembles the admin analytics view: status and loan-type
// breakdowns, daily application volume over the trailing window, and the
// approval rate.
type AnalyticsUseCase struct {
	loans port.LoanStore
}

// NewAnalyticsUseCase wires dependencies.
func NewAnalyticsUseCase(loans port.LoanStore) *AnalyticsUseCase {
	return &AnalyticsUseCase{loans: loans}
}

// Execute aggregates store-side.
func (uc *AnalyticsUseCase) Execute(ctx context.Context) (dto.AnalyticsResponse, error) {
	since := time.Now().UTC().Add(-analyticsWindow)
	a, err := uc.loans.Analytics(ctx, since)
	if err != nil {
		return dto.AnalyticsResponse{}, fmt.Errorf("aggregate loan analytics: %w", err)
	}
	return dto.FromLoanAnalytics(a), nil
}

// CustomerStatsUseCase computes a customer's own dashboard figures from
// their loans, entirely in memory.
type CustomerStatsUseCase struct {
	loans port.LoanStore
}

// NewCustomerStatsUseCase wires dependencies.
func NewCustomerStatsUseCase(loans port.LoanStore) *CustomerStatsUseCase {
	return &CustomerStatsUseCase{loans: loans}
}

// Execute aggregates the owner's applications.
func (uc *CustomerStatsUseCase) Execute(ctx context.Context, ownerID string) (dto.StatsResponse, error) {
	apps, err := uc.loans.FindByOwner(ctx, ownerID)
	if err != nil {
		return dto.StatsResponse{}, fmt.Errorf("list loans for owner %s: %w", ownerID, err)
	}
	return dto.FromLoanStats(model.ComputeLoanStats(apps)), nil
}
