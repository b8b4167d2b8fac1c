package model_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sriniketh-Vangipuram-996/Loan-Management-System/internal/domain/model"
	"github.com/Sriniketh-Vangipuram-996/Loan-Management-System/internal/domain/valueobject"
)

func newTestApplication(t *testing.T) model.LoanApplication {
	t.Helper()
	app, err := model.NewLoanApplication(
		"owner-001",
		valueobject.LoanTypeHome,
		decimal.NewFromInt(100000),
		"house purchase",
		12,
		decimal.NewFromFloat(10.5),
		time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	return app
}

func TestNewLoanApplication(t *testing.T) {
	t.Run("creates pending application with repayment figures", func(t *testing.T) {
		app := newTestApplication(t)

		assert.NotEmpty(t, app.ID())
		assert.Equal(t, "owner-001", app.OwnerID())
		assert.True(t, app.Status().Equal(valueobject.LoanStatusPending))
		assert.True(t, app.MonthlyInstallment().Equal(decimal.NewFromInt(8815)))
		assert.True(t, app.TotalPayable().Equal(decimal.NewFromInt(105778)))
		assert.True(t, app.TotalInterest().Equal(decimal.NewFromInt(5778)))
		assert.False(t, app.IsProcessed())
	})

	t.Run("emits a submission event", func(t *testing.T) {
		app := newTestApplication(t)
		events := app.DomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, "loan.submitted", events[0].EventType())
		assert.Equal(t, app.ID(), events[0].AggregateID())
	})

	t.Run("rejects missing required fields", func(t *testing.T) {
		now := time.Now()
		tests := []struct {
			name string
			fn   func() (model.LoanApplication, error)
		}{
			{"no owner", func() (model.LoanApplication, error) {
				return model.NewLoanApplication("", valueobject.LoanTypeHome,
					decimal.NewFromInt(1000), "p", 12, decimal.NewFromFloat(8.5), now)
			}},
			{"zero loan type", func() (model.LoanApplication, error) {
				return model.NewLoanApplication("o", valueobject.LoanType{},
					decimal.NewFromInt(1000), "p", 12, decimal.NewFromFloat(8.5), now)
			}},
			{"non-positive principal", func() (model.LoanApplication, error) {
				return model.NewLoanApplication("o", valueobject.LoanTypeHome,
					decimal.Zero, "p", 12, decimal.NewFromFloat(8.5), now)
			}},
			{"empty purpose", func() (model.LoanApplication, error) {
				return model.NewLoanApplication("o", valueobject.LoanTypeHome,
					decimal.NewFromInt(1000), "", 12, decimal.NewFromFloat(8.5), now)
			}},
			{"non-positive tenure", func() (model.LoanApplication, error) {
				return model.NewLoanApplication("o", valueobject.LoanTypeHome,
					decimal.NewFromInt(1000), "p", 0, decimal.NewFromFloat(8.5), now)
			}},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := tt.fn()
				assert.ErrorIs(t, err, model.ErrValidation)
			})
		}
	})
}

func TestLoanApplication_Disposition(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	t.Run("approval records actor, notes and timestamp", func(t *testing.T) {
		app := newTestApplication(t)

		next, err := app.Disposition(valueobject.LoanStatusApproved, "admin-001", "looks good", now)
		require.NoError(t, err)

		assert.True(t, next.Status().Equal(valueobject.LoanStatusApproved))
		assert.Equal(t, "admin-001", next.ProcessedBy())
		assert.Equal(t, "looks good", next.AdminNotes())
		assert.Equal(t, now, next.ProcessedAt())
		assert.True(t, next.IsProcessed())

		// The receiver is untouched.
		assert.True(t, app.Status().Equal(valueobject.LoanStatusPending))
	})

	t.Run("pending is not a valid disposition", func(t *testing.T) {
		app := newTestApplication(t)
		_, err := app.Disposition(valueobject.LoanStatusPending, "admin-001", "", now)
		assert.ErrorIs(t, err, valueobject.ErrInvalidStatus)
	})

	t.Run("dispositioned loans can be dispositioned again", func(t *testing.T) {
		// Terminal states are deliberately not guarded; an approved loan may
		// still be rejected afterwards.
		app := newTestApplication(t)

		approved, err := app.Disposition(valueobject.LoanStatusApproved, "admin-001", "", now)
		require.NoError(t, err)

		later := now.Add(time.Hour)
		rejected, err := approved.Disposition(valueobject.LoanStatusRejected, "admin-002", "fraud flag", later)
		require.NoError(t, err)

		assert.True(t, rejected.Status().Equal(valueobject.LoanStatusRejected))
		assert.Equal(t, "admin-002", rejected.ProcessedBy())
		assert.Equal(t, later, rejected.ProcessedAt())
	})

	t.Run("emits a disposition event", func(t *testing.T) {
		app := newTestApplication(t).ClearEvents()

		next, err := app.Disposition(valueobject.LoanStatusUnderReview, "admin-001", "need documents", now)
		require.NoError(t, err)

		events := next.DomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, "loan.under_review", events[0].EventType())
	})
}

func TestReconstructLoanApplication(t *testing.T) {
	applied := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	processed := time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC)

	app := model.ReconstructLoanApplication(
		"loan-001", "owner-001", valueobject.LoanTypeCar,
		decimal.NewFromInt(50000), "new car", 24,
		decimal.NewFromFloat(9.0), decimal.NewFromInt(2285), decimal.NewFromInt(54838),
		valueobject.LoanStatusApproved, "ok", "admin-001",
		applied, processed,
	)

	assert.Equal(t, "loan-001", app.ID())
	assert.True(t, app.TotalInterest().Equal(decimal.NewFromInt(4838)))
	assert.True(t, app.IsProcessed())
	assert.Empty(t, app.DomainEvents())
}
