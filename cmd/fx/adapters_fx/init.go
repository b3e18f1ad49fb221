package adapters_fx

import (
	"github.com/rs/zerolog"
	"go.uber.org/fx"
	"sojourn/internal/adapters"
	"sojourn/internal/config"
	mem "sojourn/pkg/memcache"
)

var Module = fx.Provide(
	provideWeatherAdapter,
	provideMapsAdapter,
	provideExpediaAdapter,
	provideAIClient,
)

func provideWeatherAdapter(cfg *config.Config, cache mem.TTLStore, logger zerolog.Logger) adapters.WeatherAdapter {
	return adapters.NewWeatherAdapter(cfg, cache, logger)
}

func provideMapsAdapter(cfg *config.Config, cache mem.TTLStore, logger zerolog.Logger) adapters.MapsAdapter {
	return adapters.NewMapsAdapter(cfg, cache, logger)
}

func provideExpediaAdapter(cfg *config.Config, cache mem.TTLStore, logger zerolog.Logger) adapters.ExpediaAdapter {
	return adapters.NewExpediaAdapter(cfg, cache, logger)
}

func provideAIClient(cfg *config.Config, logger zerolog.Logger) adapters.AIClient {
	return adapters.NewAIClient(cfg, logger)
}
