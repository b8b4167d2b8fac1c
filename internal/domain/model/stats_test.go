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

func statApp(t *testing.T, principal int64, status valueobject.LoanStatus) model.LoanApplication {
	t.Helper()
	app, err := model.NewLoanApplication(
		"owner-001", valueobject.LoanTypePersonal,
		decimal.NewFromInt(principal), "stats", 12,
		decimal.NewFromFloat(10.5), time.Now(),
	)
	require.NoError(t, err)
	if status.Equal(valueobject.LoanStatusPending) {
		return app
	}
	app, err = app.Disposition(status, "admin-001", "", time.Now())
	require.NoError(t, err)
	return app
}

func TestComputeLoanStats(t *testing.T) {
	t.Run("empty input yields zeros", func(t *testing.T) {
		stats := model.ComputeLoanStats(nil)
		assert.Zero(t, stats.Total)
		assert.True(t, stats.TotalDisbursed.Equal(decimal.Zero))
		assert.True(t, stats.AverageAmount.Equal(decimal.Zero))
	})

	t.Run("aggregates by status", func(t *testing.T) {
		loans := []model.LoanApplication{
			statApp(t, 10000, valueobject.LoanStatusPending),
			statApp(t, 20000, valueobject.LoanStatusApproved),
			statApp(t, 30000, valueobject.LoanStatusApproved),
			statApp(t, 40000, valueobject.LoanStatusRejected),
			statApp(t, 50000, valueobject.LoanStatusUnderReview),
		}

		stats := model.ComputeLoanStats(loans)

		assert.Equal(t, 5, stats.Total)
		assert.Equal(t, 1, stats.Pending)
		assert.Equal(t, 2, stats.Approved)
		assert.Equal(t, 1, stats.Rejected)
		assert.Equal(t, 1, stats.UnderReview)

		// Disbursed counts approved principals only; average spans everything.
		assert.True(t, stats.TotalDisbursed.Equal(decimal.NewFromInt(50000)),
			"disbursed = %s", stats.TotalDisbursed)
		assert.True(t, stats.AverageAmount.Equal(decimal.NewFromInt(30000)),
			"average = %s", stats.AverageAmount)
	})
}

func analyticsApp(t *testing.T, loanType valueobject.LoanType, status valueobject.LoanStatus, appliedAt time.Time) model.LoanApplication {
	t.Helper()
	app, err := model.NewLoanApplication(
		"owner-001", loanType,
		decimal.NewFromInt(50000), "analytics", 12,
		decimal.NewFromFloat(10.5), appliedAt,
	)
	require.NoError(t, err)
	if status.Equal(valueobject.LoanStatusPending) {
		return app
	}
	app, err = app.Disposition(status, "admin-001", "", time.Now())
	require.NoError(t, err)
	return app
}

func TestComputeLoanAnalytics(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	since := now.AddDate(0, 0, -30)

	t.Run("empty input yields empty breakdowns and zero rate", func(t *testing.T) {
		a := model.ComputeLoanAnalytics(nil, since)
		assert.Empty(t, a.StatusBreakdown)
		assert.Empty(t, a.TypeBreakdown)
		assert.Empty(t, a.Daily)
		assert.Zero(t, a.ApprovalRate)
	})

	t.Run("breaks down by status and type", func(t *testing.T) {
		loans := []model.LoanApplication{
			analyticsApp(t, valueobject.LoanTypeHome, valueobject.LoanStatusApproved, now.AddDate(0, 0, -1)),
			analyticsApp(t, valueobject.LoanTypeHome, valueobject.LoanStatusPending, now.AddDate(0, 0, -1)),
			analyticsApp(t, valueobject.LoanTypeCar, valueobject.LoanStatusRejected, now.AddDate(0, 0, -2)),
		}

		a := model.ComputeLoanAnalytics(loans, since)

		assert.Equal(t, map[string]int{"approved": 1, "pending": 1, "rejected": 1}, a.StatusBreakdown)
		assert.Equal(t, map[string]int{"home": 2, "car": 1}, a.TypeBreakdown)
		assert.InDelta(t, 33.33, a.ApprovalRate, 0.001)
	})

	t.Run("daily series spans only the window, ascending", func(t *testing.T) {
		loans := []model.LoanApplication{
			analyticsApp(t, valueobject.LoanTypePersonal, valueobject.LoanStatusPending, now.AddDate(0, 0, -1)),
			analyticsApp(t, valueobject.LoanTypePersonal, valueobject.LoanStatusPending, now.AddDate(0, 0, -1)),
			analyticsApp(t, valueobject.LoanTypePersonal, valueobject.LoanStatusPending, now.AddDate(0, 0, -5)),
			// Outside the window: counted in the breakdowns, absent from the series.
			analyticsApp(t, valueobject.LoanTypePersonal, valueobject.LoanStatusPending, now.AddDate(0, 0, -45)),
		}

		a := model.ComputeLoanAnalytics(loans, since)

		require.Len(t, a.Daily, 2)
		assert.Equal(t, model.DailyCount{Date: "2026-03-10", Count: 1}, a.Daily[0])
		assert.Equal(t, model.DailyCount{Date: "2026-03-14", Count: 2}, a.Daily[1])
		assert.Equal(t, 4, a.TypeBreakdown["personal"])
	})
}

func TestApprovalRatePercent(t *testing.T) {
	assert.Zero(t, model.ApprovalRatePercent(0, 0))
	assert.Equal(t, 100.0, model.ApprovalRatePercent(3, 3))
	assert.Equal(t, 50.0, model.ApprovalRatePercent(1, 2))
	// Rounded to two decimals, half up.
	assert.Equal(t, 66.67, model.ApprovalRatePercent(2, 3))
}
