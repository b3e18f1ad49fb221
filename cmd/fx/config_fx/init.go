package config_fx

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
	"sojourn/internal/config"
	"sojourn/pkg/utils"
)

var Module = fx.Options(
	fx.Provide(provideConfig, provideLogger),
	fx.Invoke(configureJWT),
)

func provideConfig() *config.Config {
	_ = godotenv.Load()
	return config.Load()
}

func provideLogger() zerolog.Logger {
	return zerolog.New(os.Stdout).With().Timestamp().Logger()
}

func configureJWT(cfg *config.Config) {
	utils.ConfigureJWT(cfg.JWTSecret, cfg.AccessTokenTTL)
}
