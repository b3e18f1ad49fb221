package activity_fx

import (
	"github.com/rs/zerolog"
	"go.uber.org/fx"
	"sojourn/internal/repositories"
	"sojourn/internal/services"
)

var Module = fx.Provide(provideActivityService)

func provideActivityService(
	activityRepo repositories.ActivityRepository,
	access services.TripAccessChecker,
	logger zerolog.Logger,
) services.ActivityServiceInterface {
	return services.NewActivityService(activityRepo, access, logger)
}
