package usecase_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sriniketh-Vangipuram-996/Loan-Management-System/internal/application/dto"
	"github.com/Sriniketh-Vangipuram-996/Loan-Management-System/internal/application/usecase"
	"github.com/Sriniketh-Vangipuram-996/Loan-Management-System/internal/domain/event"
	"github.com/Sriniketh-Vangipuram-996/Loan-Management-System/internal/domain/model"
	"github.com/Sriniketh-Vangipuram-996/Loan-Management-System/internal/domain/port"
	"github.com/Sriniketh-Vangipuram-996/Loan-Management-System/internal/domain/service"
	"github.com/Sriniketh-Vangipuram-996/Loan-Management-System/internal/domain/valueobject"
	"github.com/Sriniketh-Vangipuram-996/Loan-Management-System/internal/infrastructure/persistence/memory"
)

// --- Mock event publisher ---

type mockEventPublisher struct {
	publishFunc     func(ctx context.Context, events ...event.DomainEvent) error
	publishedEvents []event.DomainEvent
}

func (m *mockEventPublisher) Publish(ctx context.Context, evts ...event.DomainEvent) error {
	if m.publishFunc != nil {
		return m.publishFunc(ctx, evts...)
	}
	m.publishedEvents = append(m.publishedEvents, evts...)
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func defaultResolver() *service.RateResolver {
	return service.NewRateResolver(memory.NewSettingsStore(), nil, testLogger())
}

func validSubmitRequest() dto.SubmitLoanRequest {
	return dto.SubmitLoanRequest{
		OwnerID:      "owner-001",
		LoanType:     "home",
		Principal:    decimal.NewFromInt(100000),
		Purpose:      "house purchase",
		TenureMonths: 12,
	}
}

// --- Submit ---

func TestSubmitLoan_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("resolves the rate from settings defaults", func(t *testing.T) {
		loans := memory.NewLoanStore()
		publisher := &mockEventPublisher{}
		uc := usecase.NewSubmitLoanUseCase(loans, defaultResolver(), publisher, testLogger())

		resp, err := uc.Execute(ctx, validSubmitRequest())
		require.NoError(t, err)

		assert.Equal(t, "pending", resp.Status)
		assert.True(t, resp.InterestRate.Equal(decimal.NewFromFloat(8.5)), "rate = %s", resp.InterestRate)
		assert.False(t, resp.MonthlyInstallment.IsZero())

		// Persisted and retrievable.
		stored, err := loans.FindByID(ctx, resp.ID)
		require.NoError(t, err)
		assert.Equal(t, "owner-001", stored.OwnerID())

		require.Len(t, publisher.publishedEvents, 1)
		assert.Equal(t, "loan.submitted", publisher.publishedEvents[0].EventType())
	})

	t.Run("honors a caller-quoted rate", func(t *testing.T) {
		quoted := decimal.NewFromFloat(6.25)
		req := validSubmitRequest()
		req.InterestRate = &quoted

		uc := usecase.NewSubmitLoanUseCase(memory.NewLoanStore(), defaultResolver(), &mockEventPublisher{}, testLogger())

		resp, err := uc.Execute(ctx, req)
		require.NoError(t, err)
		assert.True(t, resp.InterestRate.Equal(quoted))
	})

	t.Run("rejects an unknown loan type", func(t *testing.T) {
		req := validSubmitRequest()
		req.LoanType = "yacht"

		uc := usecase.NewSubmitLoanUseCase(memory.NewLoanStore(), defaultResolver(), &mockEventPublisher{}, testLogger())

		_, err := uc.Execute(ctx, req)
		assert.ErrorIs(t, err, model.ErrValidation)
	})

	t.Run("publish failure does not fail the submission", func(t *testing.T) {
		publisher := &mockEventPublisher{
			publishFunc: func(context.Context, ...event.DomainEvent) error {
				return errors.New("broker unreachable")
			},
		}
		uc := usecase.NewSubmitLoanUseCase(memory.NewLoanStore(), defaultResolver(), publisher, testLogger())

		_, err := uc.Execute(ctx, validSubmitRequest())
		assert.NoError(t, err)
	})
}

// --- Quote ---

func TestQuoteLoan_Execute(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewQuoteLoanUseCase(defaultResolver())

	t.Run("computes figures without persisting", func(t *testing.T) {
		resp, err := uc.Execute(ctx, dto.QuoteRequest{
			LoanType:     "personal",
			Principal:    decimal.NewFromInt(100000),
			TenureMonths: 12,
		})
		require.NoError(t, err)

		assert.True(t, resp.InterestRate.Equal(decimal.NewFromFloat(10.5)))
		assert.True(t, resp.MonthlyInstallment.Equal(decimal.NewFromInt(8815)))
		assert.True(t, resp.TotalPayable.Equal(decimal.NewFromInt(105778)))
		assert.Empty(t, resp.Schedule)
	})

	t.Run("attaches schedule on request", func(t *testing.T) {
		resp, err := uc.Execute(ctx, dto.QuoteRequest{
			LoanType:     "car",
			Principal:    decimal.NewFromInt(60000),
			TenureMonths: 24,
			WithSchedule: true,
		})
		require.NoError(t, err)
		assert.Len(t, resp.Schedule, 24)
	})
}

// --- Disposition ---

func submitTestLoan(t *testing.T, loans port.LoanStore) dto.LoanResponse {
	t.Helper()
	uc := usecase.NewSubmitLoanUseCase(loans, defaultResolver(), &mockEventPublisher{}, testLogger())
	resp, err := uc.Execute(context.Background(), validSubmitRequest())
	require.NoError(t, err)
	return resp
}

func TestDispositionLoan_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("approval records actor and timestamp", func(t *testing.T) {
		loans := memory.NewLoanStore()
		submitted := submitTestLoan(t, loans)

		publisher := &mockEventPublisher{}
		uc := usecase.NewDispositionLoanUseCase(loans, publisher, testLogger())

		resp, err := uc.Execute(ctx, dto.DispositionRequest{
			LoanID:  submitted.ID,
			ActorID: "admin-001",
			Status:  "approved",
			Notes:   "income verified",
		})
		require.NoError(t, err)

		assert.Equal(t, "approved", resp.Status)
		assert.Equal(t, "income verified", resp.AdminNotes)
		require.NotNil(t, resp.ProcessedAt)

		require.Len(t, publisher.publishedEvents, 1)
		assert.Equal(t, "loan.approved", publisher.publishedEvents[0].EventType())
	})

	t.Run("rejects statuses outside the disposition set", func(t *testing.T) {
		loans := memory.NewLoanStore()
		submitted := submitTestLoan(t, loans)

		uc := usecase.NewDispositionLoanUseCase(loans, &mockEventPublisher{}, testLogger())

		for _, status := range []string{"pending", "cancelled", ""} {
			_, err := uc.Execute(ctx, dto.DispositionRequest{
				LoanID: submitted.ID, ActorID: "admin-001", Status: status,
			})
			assert.ErrorIs(t, err, valueobject.ErrInvalidStatus, "status %q", status)
		}
	})

	t.Run("unknown loan yields not found", func(t *testing.T) {
		uc := usecase.NewDispositionLoanUseCase(memory.NewLoanStore(), &mockEventPublisher{}, testLogger())

		_, err := uc.Execute(ctx, dto.DispositionRequest{
			LoanID: "no-such-loan", ActorID: "admin-001", Status: "approved",
		})
		assert.ErrorIs(t, err, port.ErrNotFound)
	})

	t.Run("invalid status wins over missing loan", func(t *testing.T) {
		uc := usecase.NewDispositionLoanUseCase(memory.NewLoanStore(), &mockEventPublisher{}, testLogger())

		_, err := uc.Execute(ctx, dto.DispositionRequest{
			LoanID: "no-such-loan", ActorID: "admin-001", Status: "bogus",
		})
		assert.ErrorIs(t, err, valueobject.ErrInvalidStatus)
	})

	t.Run("approved loan can be re-dispositioned", func(t *testing.T) {
		loans := memory.NewLoanStore()
		submitted := submitTestLoan(t, loans)

		uc := usecase.NewDispositionLoanUseCase(loans, &mockEventPublisher{}, testLogger())

		_, err := uc.Execute(ctx, dto.DispositionRequest{
			LoanID: submitted.ID, ActorID: "admin-001", Status: "approved",
		})
		require.NoError(t, err)

		resp, err := uc.Execute(ctx, dto.DispositionRequest{
			LoanID: submitted.ID, ActorID: "admin-002", Status: "rejected", Notes: "fraud flag",
		})
		require.NoError(t, err)
		assert.Equal(t, "rejected", resp.Status)
	})
}

// --- Get / list / stats ---

func TestGetLoan_Execute(t *testing.T) {
	ctx := context.Background()
	loans := memory.NewLoanStore()
	submitted := submitTestLoan(t, loans)

	uc := usecase.NewGetLoanUseCase(loans)

	t.Run("owner reads own loan", func(t *testing.T) {
		resp, err := uc.Execute(ctx, submitted.ID, "owner-001", model.RoleCustomer)
		require.NoError(t, err)
		assert.Equal(t, submitted.ID, resp.ID)
	})

	t.Run("admin reads any loan", func(t *testing.T) {
		_, err := uc.Execute(ctx, submitted.ID, "admin-001", model.RoleAdmin)
		assert.NoError(t, err)
	})

	t.Run("other customers are denied", func(t *testing.T) {
		_, err := uc.Execute(ctx, submitted.ID, "owner-002", model.RoleCustomer)
		assert.ErrorIs(t, err, usecase.ErrAccessDenied)
	})

	t.Run("missing loan yields not found", func(t *testing.T) {
		_, err := uc.Execute(ctx, "no-such-loan", "owner-001", model.RoleCustomer)
		assert.ErrorIs(t, err, port.ErrNotFound)
	})
}

func TestListLoans_Execute(t *testing.T) {
	ctx := context.Background()
	loans := memory.NewLoanStore()
	submitTestLoan(t, loans)
	submitTestLoan(t, loans)

	t.Run("admin listing honors the status filter", func(t *testing.T) {
		uc := usecase.NewListLoansUseCase(loans)

		all, err := uc.Execute(ctx, port.LoanFilter{})
		require.NoError(t, err)
		assert.Len(t, all, 2)

		approved, err := uc.Execute(ctx, port.LoanFilter{Status: "approved"})
		require.NoError(t, err)
		assert.Empty(t, approved)
	})

	t.Run("owner listing is scoped", func(t *testing.T) {
		uc := usecase.NewListOwnerLoansUseCase(loans)

		own, err := uc.Execute(ctx, "owner-001")
		require.NoError(t, err)
		assert.Len(t, own, 2)

		other, err := uc.Execute(ctx, "owner-999")
		require.NoError(t, err)
		assert.Empty(t, other)
	})
}

func TestDashboardStats_Execute(t *testing.T) {
	ctx := context.Background()
	loans := memory.NewLoanStore()
	users := memory.NewUserStore()

	submitTestLoan(t, loans)
	require.NoError(t, users.Insert(ctx, model.User{ID: "u1", Role: model.RoleCustomer}))
	require.NoError(t, users.Insert(ctx, model.User{ID: "u2", Role: model.RoleCustomer}))
	require.NoError(t, users.Insert(ctx, model.User{ID: "a1", Role: model.RoleAdmin}))

	uc := usecase.NewDashboardStatsUseCase(loans, users)

	resp, err := uc.Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)
	assert.Equal(t, 1, resp.Pending)
	assert.Equal(t, 2, resp.TotalCustomers)
}

func TestAnalytics_Execute(t *testing.T) {
	ctx := context.Background()
	loans := memory.NewLoanStore()

	first := submitTestLoan(t, loans)
	submitTestLoan(t, loans)

	dispositionUC := usecase.NewDispositionLoanUseCase(loans, &mockEventPublisher{}, testLogger())
	_, err := dispositionUC.Execute(ctx, dto.DispositionRequest{
		LoanID: first.ID, ActorID: "admin-001", Status: "approved",
	})
	require.NoError(t, err)

	uc := usecase.NewAnalyticsUseCase(loans)

	resp, err := uc.Execute(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, resp.StatusBreakdown["approved"])
	assert.Equal(t, 1, resp.StatusBreakdown["pending"])
	assert.Equal(t, 2, resp.LoanTypeBreakdown["home"])
	assert.Equal(t, 50.0, resp.ApprovalRate)

	// Both applications landed just now, inside the trailing window.
	require.Len(t, resp.ApplicationsOverTime, 1)
	assert.Equal(t, 2, resp.ApplicationsOverTime[0].Count)
}

// --- Rates ---

func TestUpdateRates_Execute(t *testing.T) {
	ctx := context.Background()
	resolver := defaultResolver()
	publisher := &mockEventPublisher{}

	getUC := usecase.NewGetRatesUseCase(resolver)
	updateUC := usecase.NewUpdateRatesUseCase(resolver, publisher, testLogger())

	resp, err := updateUC.Execute(ctx, dto.UpdateRatesRequest{
		ActorID: "admin-001",
		Rates:   map[string]float64{"personal": 11.0},
	})
	require.NoError(t, err)
	assert.True(t, resp.InterestRates["personal"].Equal(decimal.NewFromFloat(11.0)))
	assert.True(t, resp.InterestRates["home"].Equal(decimal.NewFromFloat(8.5)))

	require.Len(t, publisher.publishedEvents, 1)
	assert.Equal(t, "settings.rates_updated", publisher.publishedEvents[0].EventType())

	current := getUC.Execute(ctx)
	assert.True(t, current.InterestRates["personal"].Equal(decimal.NewFromFloat(11.0)))
}
