package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/Sriniketh-Vangipuram-996/Loan-Management-System/internal/domain/model"
	"github.com/Sriniketh-Vangipuram-996/Loan-Management-System/internal/domain/port"
	"github.com/Sriniketh-Vangipuram-996/Loan-Management-System/internal/domain/valueobject"
)

// RateSettingsKey is the fixed settings-store key under which the per-type
// interest rate overrides live.
const RateSettingsKey = "loan_interest_rates"

// defaultRates is the built-in annual percentage table, used whenever no
// override is persisted or the settings store is unreachable. Process-wide
// and immutable; never mutate it.
var defaultRates = map[string]float64{
	valueobject.LoanTypePersonal.String():  10.5,
	valueobject.LoanTypeHome.String():      8.5,
	valueobject.LoanTypeCar.String():       9.0,
	valueobject.LoanTypeEducation.String(): 7.5,
	valueobject.LoanTypeBusiness.String():  12.0,
}

// DefaultRate returns the built-in annual rate for a loan type.
func DefaultRate(t valueobject.LoanType) decimal.Decimal {
	return decimal.NewFromFloat(defaultRates[t.String()])
}

// RateResolver resolves the effective annual interest rate per loan type,
// merging persisted overrides over the built-in defaults.
//
// The read path is fault-tolerant by design: a missing record, a storage
// outage, or a malformed payload all silently fall back to the defaults.
// Resolution never fails the caller.
type RateResolver struct {
	settings port.SettingsStore
	cache    port.RateCache
	logger   *slog.Logger
}

// NewRateResolver wires the resolver. cache may be nil when no cache is
// configured.
func NewRateResolver(settings port.SettingsStore, cache port.RateCache, logger *slog.Logger) *RateResolver {
	return &RateResolver{settings: settings, cache: cache, logger: logger}
}

// Resolve returns the effective annual rate for the given loan type, falling
// back to the built-in default when the effective table carries no entry.
func (r *RateResolver) Resolve(ctx context.Context, loanType valueobject.LoanType) decimal.Decimal {
	if rate, ok := r.effectiveRates(ctx)[loanType.String()]; ok {
		return decimal.NewFromFloat(rate)
	}
	return DefaultRate(loanType)
}

// Rates returns the full effective rate table: the built-in defaults merged
// with whatever overrides are persisted.
func (r *RateResolver) Rates(ctx context.Context) map[string]decimal.Decimal {
	rates := r.effectiveRates(ctx)
	out := make(map[string]decimal.Decimal, len(rates))
	for k, v := range rates {
		out[k] = decimal.NewFromFloat(v)
	}
	return out
}

// UpdateRates persists a full replacement of the override record. Last writer
// wins; there is no optimistic concurrency control on the settings row. The
// cache entry is invalidated best-effort.
func (r *RateResolver) UpdateRates(ctx context.Context, rates map[string]float64, actorID string) error {
	for name, rate := range rates {
		if _, err := valueobject.NewLoanType(name); err != nil {
			return fmt.Errorf("%w: unknown loan type %q", model.ErrValidation, name)
		}
		if rate < 0 {
			return fmt.Errorf("%w: rate for %q must not be negative", model.ErrValidation, name)
		}
	}

	payload, err := json.Marshal(rates)
	if err != nil {
		return fmt.Errorf("marshal rates: %w", err)
	}

	if err := r.settings.Upsert(ctx, RateSettingsKey, string(payload), actorID); err != nil {
		return fmt.Errorf("persist rates: %w", err)
	}

	if r.cache != nil {
		if err := r.cache.Delete(ctx, RateSettingsKey); err != nil {
			r.logger.Warn("failed to invalidate rate cache", "error", err)
		}
	}
	return nil
}

// effectiveRates merges the persisted override (if any) over the defaults.
func (r *RateResolver) effectiveRates(ctx context.Context) map[string]float64 {
	merged := make(map[string]float64, len(defaultRates))
	for k, v := range defaultRates {
		merged[k] = v
	}

	raw, ok := r.loadOverride(ctx)
	if !ok {
		return merged
	}

	var override map[string]float64
	if err := json.Unmarshal([]byte(raw), &override); err != nil {
		r.logger.Warn("malformed rate override payload, using defaults", "error", err)
		return merged
	}

	// Merge over, not replace: a partial override still resolves every type.
	for k, v := range override {
		if _, known := merged[k]; known {
			merged[k] = v
		}
	}
	return merged
}

// loadOverride fetches the raw override payload from cache or store,
// swallowing failures.
func (r *RateResolver) loadOverride(ctx context.Context) (string, bool) {
	if r.cache != nil {
		if raw, hit := r.cache.Get(ctx, RateSettingsKey); hit {
			return raw, true
		}
	}

	raw, ok, err := r.settings.Get(ctx, RateSettingsKey)
	if err != nil {
		r.logger.Warn("rate settings lookup failed, using defaults", "error", err)
		return "", false
	}
	if !ok {
		return "", false
	}

	if r.cache != nil {
		if err := r.cache.Set(ctx, RateSettingsKey, raw); err != nil {
			r.logger.Debug("failed to cache rate settings", "error", err)
		}
	}
	return raw, true
}
