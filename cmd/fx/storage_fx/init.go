package storage_fx

import (
	"go.uber.org/fx"
	"sojourn/internal/config"
	"sojourn/internal/infra"
)

var Module = fx.Provide(provideObjectStorage)

func provideObjectStorage(cfg *config.Config) (infra.ObjectStorage, error) {
	return infra.NewObjectStorage(cfg)
}
