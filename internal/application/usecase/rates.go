package usecase

import (
	"context"
	"log/slog"

	"github.com/Sriniketh-Vangipuram-996/Loan-Management-System/internal/application/dto"
	"github.com/Sriniketh-Vangipuram-996/Loan-Management-System/internal/domain/event"
	"github.com/Sriniketh-Vangipuram-996/Loan-Management-System/internal/domain/port"
	"github.com/Sriniketh-Vangipuram-996/Loan-Management-System/internal/domain/service"
)

// GetRatesUseCase exposes the effective interest rate table.
type GetRatesUseCase struct {
	resolver *service.RateResolver
}

// NewGetRatesUseCase wires dependencies.
func NewGetRatesUseCase(resolver *service.RateResolver) *GetRatesUseCase {
	return &GetRatesUseCase{resolver: resolver}
}

// Execute returns the defaults merged with any persisted override.
func (uc *GetRatesUseCase) Execute(ctx context.Context) dto.RatesResponse {
	return dto.RatesResponse{InterestRates: uc.resolver.Rates(ctx)}
}

// UpdateRatesUseCase replaces the persisted rate override table.
type UpdateRatesUseCase struct {
	resolver  *service.RateResolver
	publisher port.EventPublisher
	logger    *slog.Logger
}

// NewUpdateRatesUseCase wires dependencies.
func NewUpdateRatesUseCase(resolver *service.RateResolver, publisher port.EventPublisher, logger *slog.Logger) *UpdateRatesUseCase {
	return &UpdateRatesUseCase{resolver: resolver, publisher: publisher, logger: logger}
}

// Execute persists the new override table (full replace, last writer wins)
// and returns the resulting effective rates.
func (uc *UpdateRatesUseCase) Execute(ctx context.Context, req dto.UpdateRatesRequest) (dto.RatesResponse, error) {
	if err := uc.resolver.UpdateRates(ctx, req.Rates, req.ActorID); err != nil {
		return dto.RatesResponse{}, err
	}

	if err := uc.publisher.Publish(ctx, event.NewRatesUpdated(req.ActorID, req.Rates)); err != nil {
		uc.logger.Warn("failed to publish rates-updated event", "error", err)
	}

	return dto.RatesResponse{InterestRates: uc.resolver.Rates(ctx)}, nil
}
