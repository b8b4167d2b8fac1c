package model

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// ErrInvalidInput is returned when amortization inputs are degenerate:
// non-positive principal or tenure, a negative rate, or values that do not
// produce a finite payment.
var ErrInvalidInput = errors.New("invalid amortization input")

// Amortization holds the derived repayment figures for a loan.
//
// Each figure is rounded to the whole currency unit (half up) from its own
// exact real-valued computation. TotalPayable is intentionally NOT re-derived
// as MonthlyInstallment * tenure after rounding; the figures may drift apart
// by up to half a unit per period and downstream consumers rely on that.
type Amortization struct {
	MonthlyInstallment decimal.Decimal
	TotalPayable       decimal.Decimal
	TotalInterest      decimal.Decimal
}

// ComputeAmortization computes the equated monthly installment for a
// reducing-balance loan:
//
//	monthlyRate = annualRatePercent / 12 / 100
//	installment = principal * monthlyRate * (1+monthlyRate)^n / ((1+monthlyRate)^n - 1)
//
// A zero rate degenerates to an even split of the principal. The function is
// pure: identical inputs always yield identical outputs.
func ComputeAmortization(principal, annualRatePercent decimal.Decimal, tenureMonths int) (Amortization, error) {
	if tenureMonths <= 0 {
		return Amortization{}, fmt.Errorf("%w: tenure months must be positive", ErrInvalidInput)
	}
	if principal.LessThanOrEqual(decimal.Zero) {
		return Amortization{}, fmt.Errorf("%w: principal must be positive", ErrInvalidInput)
	}
	if annualRatePercent.IsNegative() {
		return Amortization{}, fmt.Errorf("%w: annual rate must not be negative", ErrInvalidInput)
	}

	p := principal.InexactFloat64()
	monthlyRate := annualRatePercent.InexactFloat64() / 12.0 / 100.0
	n := float64(tenureMonths)

	var installment float64
	if monthlyRate == 0 {
		installment = p / n
	} else {
		factor := math.Pow(1+monthlyRate, n)
		installment = p * monthlyRate * factor / (factor - 1)
	}

	if math.IsNaN(installment) || math.IsInf(installment, 0) {
		return Amortization{}, fmt.Errorf("%w: amortization does not converge", ErrInvalidInput)
	}

	total := installment * n
	interest := total - p

	return Amortization{
		MonthlyInstallment: roundWhole(installment),
		TotalPayable:       roundWhole(total),
		TotalInterest:      roundWhole(interest),
	}, nil
}

// roundWhole rounds to the nearest whole currency unit, half up.
func roundWhole(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(0)
}

// ---------------------------------------------------------------------------
// Amortization schedule
// ---------------------------------------------------------------------------

// ScheduleEntry is one period of an amortization schedule.
type ScheduleEntry struct {
	DueDate          time.Time
	Principal        decimal.Decimal
	Interest         decimal.Decimal
	Total            decimal.Decimal
	RemainingBalance decimal.Decimal
	Period           int
}

// GenerateSchedule produces the month-by-month principal/interest split for a
// reducing-balance loan. The last period absorbs accumulated rounding so the
// balance lands exactly on zero. Returns nil for degenerate inputs.
func GenerateSchedule(principal, annualRatePercent decimal.Decimal, tenureMonths int, startDate time.Time) []ScheduleEntry {
	if tenureMonths <= 0 || principal.LessThanOrEqual(decimal.Zero) || annualRatePercent.IsNegative() {
		return nil
	}

	monthlyRate := annualRatePercent.InexactFloat64() / 12.0 / 100.0

	var payment decimal.Decimal
	if monthlyRate == 0 {
		payment = principal.Div(decimal.NewFromInt(int64(tenureMonths))).Round(2)
	} else {
		factor := math.Pow(1+monthlyRate, float64(tenureMonths))
		paymentFloat := principal.InexactFloat64() * monthlyRate * factor / (factor - 1)
		payment = decimal.NewFromFloat(paymentFloat).Round(2)
	}

	schedule := make([]ScheduleEntry, 0, tenureMonths)
	remaining := principal
	monthlyRateDec := decimal.NewFromFloat(monthlyRate)

	for period := 1; period <= tenureMonths; period++ {
		interest := remaining.Mul(monthlyRateDec).Round(2)
		principalPart := payment.Sub(interest)

		// Final period clears whatever is left.
		if period == tenureMonths {
			principalPart = remaining
			payment = principalPart.Add(interest)
		}

		remaining = remaining.Sub(principalPart)
		if remaining.LessThan(decimal.Zero) {
			remaining = decimal.Zero
		}

		schedule = append(schedule, ScheduleEntry{
			Period:           period,
			DueDate:          startDate.AddDate(0, period, 0),
			Principal:        principalPart,
			Interest:         interest,
			Total:            principalPart.Add(interest),
			RemainingBalance: remaining,
		})
	}

	return schedule
}
