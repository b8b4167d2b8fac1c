package model

import (
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Sriniketh-Vangipuram-996/Loan-Management-System/internal/domain/valueobject"
)

// LoanStats aggregates a set of loan applications.
type LoanStats struct {
	Total          int
	Pending        int
	UnderReview    int
	Approved       int
	Rejected       int
	TotalDisbursed decimal.Decimal
	AverageAmount  decimal.Decimal

	// TodayApplications is only populated by store-side aggregation; the
	// in-memory ComputeLoanStats has no clock and leaves it zero.
	TodayApplications int
}

// ComputeLoanStats aggregates loan applications in memory. TotalDisbursed sums
// the principal of approved loans only; AverageAmount is the mean principal
// across every application regardless of status. An empty input yields all
// zeros rather than dividing by zero.
func ComputeLoanStats(loans []LoanApplication) LoanStats {
	stats := LoanStats{
		TotalDisbursed: decimal.Zero,
		AverageAmount:  decimal.Zero,
	}

	if len(loans) == 0 {
		return stats
	}

	sum := decimal.Zero
	for _, loan := range loans {
		stats.Total++
		sum = sum.Add(loan.Principal())

		switch {
		case loan.Status().Equal(valueobject.LoanStatusPending):
			stats.Pending++
		case loan.Status().Equal(valueobject.LoanStatusUnderReview):
			stats.UnderReview++
		case loan.Status().Equal(valueobject.LoanStatusApproved):
			stats.Approved++
			stats.TotalDisbursed = stats.TotalDisbursed.Add(loan.Principal())
		case loan.Status().Equal(valueobject.LoanStatusRejected):
			stats.Rejected++
		}
	}

	stats.AverageAmount = sum.Div(decimal.NewFromInt(int64(stats.Total)))
	return stats
}

// DailyCount is one day of the applications-over-time series.
type DailyCount struct {
	Date  string // YYYY-MM-DD
	Count int
}

// LoanAnalytics breaks a set of applications down for the admin analytics
// view: counts per status and per loan type, daily application volume within
// a trailing window, and the approved share of all applications.
type LoanAnalytics struct {
	StatusBreakdown map[string]int
	TypeBreakdown   map[string]int
	Daily           []DailyCount // ascending by date
	ApprovalRate    float64
}

// ApprovalRatePercent is the approved share of all applications as a
// percentage, rounded to two decimals. A zero total yields zero.
func ApprovalRatePercent(approved, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(approved)/float64(total)*10000) / 100
}

// ComputeLoanAnalytics aggregates applications in memory. The breakdowns and
// the approval rate span the whole input; only applications submitted at or
// after since enter the daily series.
func ComputeLoanAnalytics(loans []LoanApplication, since time.Time) LoanAnalytics {
	a := LoanAnalytics{
		StatusBreakdown: make(map[string]int),
		TypeBreakdown:   make(map[string]int),
	}

	daily := make(map[string]int)
	for _, loan := range loans {
		a.StatusBreakdown[loan.Status().String()]++
		a.TypeBreakdown[loan.LoanType().String()]++
		if !loan.AppliedAt().Before(since) {
			daily[loan.AppliedAt().UTC().Format("2006-01-02")]++
		}
	}

	days := make([]string, 0, len(daily))
	for day := range daily {
		days = append(days, day)
	}
	sort.Strings(days)
	for _, day := range days {
		a.Daily = append(a.Daily, DailyCount{Date: day, Count: daily[day]})
	}

	approved := a.StatusBreakdown[valueobject.LoanStatusApproved.String()]
	a.ApprovalRate = ApprovalRatePercent(approved, len(loans))
	return a
}
