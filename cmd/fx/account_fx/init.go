package account_fx

import (
	"github.com/rs/zerolog"
	"go.uber.org/fx"
	"gorm.io/gorm"
	"sojourn/internal/config"
	"sojourn/internal/repositories"
	"sojourn/internal/services"
)

var Module = fx.Provide(
	provideUserRepo,
	provideMailService,
	provideAuthService,
	provideUserService,
)

func provideUserRepo(db *gorm.DB) repositories.UserRepository {
	return repositories.NewUserRepository(db)
}

func provideMailService(cfg *config.Config, logger zerolog.Logger) services.MailServiceInterface {
	return services.NewMailService(cfg, logger)
}

func provideAuthService(
	userRepo repositories.UserRepository,
	mail services.MailServiceInterface,
	logger zerolog.Logger,
) services.AuthServiceInterface {
	return services.NewAuthService(userRepo, mail, logger)
}

func provideUserService(userRepo repositories.UserRepository) services.UserServiceInterface {
	return services.NewUserService(userRepo)
}
