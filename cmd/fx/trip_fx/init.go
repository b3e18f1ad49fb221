package trip_fx

import (
	"github.com/rs/zerolog"
	"go.uber.org/fx"
	"gorm.io/gorm"
	"sojourn/internal/repositories"
	"sojourn/internal/services"
)

var Module = fx.Provide(
	provideTripRepo,
	provideActivityRepo,
	provideTripService,
	provideAccessChecker,
)

func provideTripRepo(db *gorm.DB) repositories.TripRepository {
	return repositories.NewTripRepository(db)
}

func provideActivityRepo(db *gorm.DB) repositories.ActivityRepository {
	return repositories.NewActivityRepository(db)
}

func provideTripService(
	tripRepo repositories.TripRepository,
	activityRepo repositories.ActivityRepository,
	userRepo repositories.UserRepository,
	logger zerolog.Logger,
) services.TripServiceInterface {
	return services.NewTripService(tripRepo, activityRepo, userRepo, logger)
}

// The trip service is the single authorization kernel; everything that guards
// on trip access depends on this narrow view of it.
func provideAccessChecker(trips services.TripServiceInterface) services.TripAccessChecker {
	return trips
}
