package controllers_fx

import (
	"go.uber.org/fx"
	"sojourn/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewAuthController),
	fx.Provide(controllers.NewTripController),
	fx.Provide(controllers.NewActivityController),
	fx.Provide(controllers.NewSocialController),
	fx.Provide(controllers.NewMediaController),
	fx.Provide(controllers.NewUserController),
	fx.Provide(controllers.NewWeatherController),
	fx.Provide(controllers.NewMapsController),
	fx.Provide(controllers.NewExpediaController),
	fx.Provide(controllers.NewAIController),
)
