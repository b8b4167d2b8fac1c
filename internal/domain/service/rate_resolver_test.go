package service_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sriniketh-Vangipuram-996/Loan-Management-System/internal/domain/model"
	"github.com/Sriniketh-Vangipuram-996/Loan-Management-System/internal/domain/service"
	"github.com/Sriniketh-Vangipuram-996/Loan-Management-System/internal/domain/valueobject"
	"github.com/Sriniketh-Vangipuram-996/Loan-Management-System/internal/infrastructure/persistence/memory"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRateResolver_Resolve(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults apply when nothing is persisted", func(t *testing.T) {
		resolver := service.NewRateResolver(memory.NewSettingsStore(), nil, testLogger())

		for _, loanType := range []valueobject.LoanType{
			valueobject.LoanTypePersonal,
			valueobject.LoanTypeHome,
			valueobject.LoanTypeCar,
			valueobject.LoanTypeEducation,
			valueobject.LoanTypeBusiness,
		} {
			got := resolver.Resolve(ctx, loanType)
			assert.True(t, got.Equal(service.DefaultRate(loanType)), "type %s = %s", loanType, got)
		}

		// Pin the table itself, not just resolver/default agreement.
		assert.True(t, service.DefaultRate(valueobject.LoanTypePersonal).Equal(decimal.NewFromFloat(10.5)))
		assert.True(t, service.DefaultRate(valueobject.LoanTypeHome).Equal(decimal.NewFromFloat(8.5)))
		assert.True(t, service.DefaultRate(valueobject.LoanTypeCar).Equal(decimal.NewFromFloat(9.0)))
		assert.True(t, service.DefaultRate(valueobject.LoanTypeEducation).Equal(decimal.NewFromFloat(7.5)))
		assert.True(t, service.DefaultRate(valueobject.LoanTypeBusiness).Equal(decimal.NewFromFloat(12.0)))
	})

	t.Run("partial override merges over defaults", func(t *testing.T) {
		settings := memory.NewSettingsStore()
		require.NoError(t, settings.Upsert(ctx, service.RateSettingsKey, `{"home": 7.9}`, "admin-001"))

		resolver := service.NewRateResolver(settings, nil, testLogger())

		assert.True(t, resolver.Resolve(ctx, valueobject.LoanTypeHome).Equal(decimal.NewFromFloat(7.9)))
		// Untouched types still resolve to their defaults.
		assert.True(t, resolver.Resolve(ctx, valueobject.LoanTypePersonal).Equal(decimal.NewFromFloat(10.5)))
	})

	t.Run("store failure falls back to defaults", func(t *testing.T) {
		settings := memory.NewSettingsStore()
		settings.FailReads = true
		settings.ReadErr = errors.New("connection refused")

		resolver := service.NewRateResolver(settings, nil, testLogger())

		assert.True(t, resolver.Resolve(ctx, valueobject.LoanTypeCar).Equal(decimal.NewFromFloat(9.0)))
	})

	t.Run("malformed payload falls back to defaults", func(t *testing.T) {
		settings := memory.NewSettingsStore()
		require.NoError(t, settings.Upsert(ctx, service.RateSettingsKey, `not json`, "admin-001"))

		resolver := service.NewRateResolver(settings, nil, testLogger())

		assert.True(t, resolver.Resolve(ctx, valueobject.LoanTypeHome).Equal(decimal.NewFromFloat(8.5)))
	})

	t.Run("cache is populated on store read and consulted first", func(t *testing.T) {
		settings := memory.NewSettingsStore()
		cache := memory.NewRateCache()
		require.NoError(t, settings.Upsert(ctx, service.RateSettingsKey, `{"car": 6.0}`, "admin-001"))

		resolver := service.NewRateResolver(settings, cache, testLogger())

		assert.True(t, resolver.Resolve(ctx, valueobject.LoanTypeCar).Equal(decimal.NewFromFloat(6.0)))

		cached, ok := cache.Get(ctx, service.RateSettingsKey)
		require.True(t, ok)
		assert.JSONEq(t, `{"car": 6.0}`, cached)

		// Later store failures are invisible while the cache holds the value.
		settings.FailReads = true
		settings.ReadErr = errors.New("down")
		assert.True(t, resolver.Resolve(ctx, valueobject.LoanTypeCar).Equal(decimal.NewFromFloat(6.0)))
	})
}

func TestRateResolver_UpdateRates(t *testing.T) {
	ctx := context.Background()

	t.Run("persists and invalidates the cache", func(t *testing.T) {
		settings := memory.NewSettingsStore()
		cache := memory.NewRateCache()
		require.NoError(t, cache.Set(ctx, service.RateSettingsKey, `{"home": 9.9}`))

		resolver := service.NewRateResolver(settings, cache, testLogger())

		err := resolver.UpdateRates(ctx, map[string]float64{"home": 8.0, "car": 8.8}, "admin-001")
		require.NoError(t, err)

		_, ok := cache.Get(ctx, service.RateSettingsKey)
		assert.False(t, ok, "cache entry should be invalidated")

		assert.True(t, resolver.Resolve(ctx, valueobject.LoanTypeHome).Equal(decimal.NewFromFloat(8.0)))
		assert.True(t, resolver.Resolve(ctx, valueobject.LoanTypeCar).Equal(decimal.NewFromFloat(8.8)))
	})

	t.Run("rejects unknown loan types", func(t *testing.T) {
		resolver := service.NewRateResolver(memory.NewSettingsStore(), nil, testLogger())
		err := resolver.UpdateRates(ctx, map[string]float64{"yacht": 5.0}, "admin-001")
		assert.ErrorIs(t, err, model.ErrValidation)
	})

	t.Run("rejects negative rates", func(t *testing.T) {
		resolver := service.NewRateResolver(memory.NewSettingsStore(), nil, testLogger())
		err := resolver.UpdateRates(ctx, map[string]float64{"home": -1}, "admin-001")
		assert.ErrorIs(t, err, model.ErrValidation)
	})
}

func TestRateResolver_Rates(t *testing.T) {
	ctx := context.Background()
	resolver := service.NewRateResolver(memory.NewSettingsStore(), nil, testLogger())

	rates := resolver.Rates(ctx)
	assert.Len(t, rates, 5)
	assert.True(t, rates["education"].Equal(decimal.NewFromFloat(7.5)))
}
