package media_fx

import (
	"github.com/rs/zerolog"
	"go.uber.org/fx"
	"gorm.io/gorm"
	"sojourn/internal/config"
	"sojourn/internal/infra"
	"sojourn/internal/repositories"
	"sojourn/internal/services"
)

var Module = fx.Provide(provideMediaRepo, provideMediaService)

func provideMediaRepo(db *gorm.DB) repositories.MediaRepository {
	return repositories.NewMediaRepository(db)
}

func provideMediaService(
	mediaRepo repositories.MediaRepository,
	storage infra.ObjectStorage,
	access services.TripAccessChecker,
	cfg *config.Config,
	logger zerolog.Logger,
) services.MediaServiceInterface {
	return services.NewMediaService(mediaRepo, storage, access, cfg, logger)
}
