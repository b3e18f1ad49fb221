package ai_fx

import (
	"github.com/rs/zerolog"
	"go.uber.org/fx"
	"sojourn/internal/adapters"
	"sojourn/internal/services"
)

var Module = fx.Provide(provideAIService)

func provideAIService(
	ai adapters.AIClient,
	trips services.TripServiceInterface,
	logger zerolog.Logger,
) services.AIServiceInterface {
	return services.NewAIService(ai, trips, logger)
}
