package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"sojourn/cmd/fx/account_fx"
	"sojourn/cmd/fx/activity_fx"
	"sojourn/cmd/fx/adapters_fx"
	"sojourn/cmd/fx/ai_fx"
	"sojourn/cmd/fx/config_fx"
	"sojourn/cmd/fx/controllers_fx"
	"sojourn/cmd/fx/db_fx"
	"sojourn/cmd/fx/media_fx"
	"sojourn/cmd/fx/memcache_fx"
	"sojourn/cmd/fx/social_fx"
	"sojourn/cmd/fx/storage_fx"
	"sojourn/cmd/fx/trip_fx"
	"sojourn/internal/api/controllers"
	"sojourn/internal/config"
	"sojourn/pkg/middleware"
)

func main() {
	app := fx.New(
		config_fx.Module,
		db_fx.Module,
		memcache_fx.Module,
		storage_fx.Module,
		adapters_fx.Module,
		account_fx.Module,
		trip_fx.Module,
		activity_fx.Module,
		social_fx.Module,
		media_fx.Module,
		ai_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine, cfg *config.Config) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Printf("Starting HTTP server on :%s", cfg.Port)
				if err := engine.Run(":" + cfg.Port); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return nil
		},
	})
}

type routerDeps struct {
	fx.In

	Auth     *controllers.AuthController
	Trip     *controllers.TripController
	Activity *controllers.ActivityController
	Social   *controllers.SocialController
	Media    *controllers.MediaController
	User     *controllers.UserController
	Weather  *controllers.WeatherController
	Maps     *controllers.MapsController
	Expedia  *controllers.ExpediaController
	AI       *controllers.AIController
}

func ProvideRouter(deps routerDeps) *gin.Engine {
	r := gin.Default()
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.TraceIDMiddleware())

	RegisterRoutes(r, deps)
	return r
}

func RegisterRoutes(r *gin.Engine, deps routerDeps) {
	api := r.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register", deps.Auth.Register)
	auth.POST("/login", deps.Auth.Login)
	auth.POST("/refresh-token", deps.Auth.RefreshToken)
	auth.POST("/logout", deps.Auth.Logout)
	auth.POST("/password-reset-request", deps.Auth.RequestPasswordReset)
	auth.POST("/password-reset", deps.Auth.ConfirmPasswordReset)

	protected := api.Group("")
	protected.Use(middleware.JWTAuthMiddleware())

	trips := protected.Group("/trips")
	trips.POST("", deps.Trip.CreateTrip)
	trips.GET("", deps.Trip.ListTrips)
	trips.GET("/:tripId", deps.Trip.GetTrip)
	trips.PUT("/:tripId", deps.Trip.UpdateTrip)
	trips.DELETE("/:tripId", deps.Trip.DeleteTrip)
	trips.POST("/:tripId/publish", deps.Trip.PublishTrip)
	trips.POST("/:tripId/archive", deps.Trip.ArchiveTrip)
	trips.POST("/:tripId/unarchive", deps.Trip.UnarchiveTrip)
	trips.POST("/:tripId/share", deps.Trip.ShareTrip)
	trips.GET("/:tripId/shares", deps.Trip.ListShares)
	trips.DELETE("/:tripId/shares/:userId", deps.Trip.RemoveShare)
	trips.POST("/:tripId/images", deps.Trip.UploadTripPhoto)
	trips.GET("/:tripId/images", deps.Trip.ListTripPhotos)
	trips.DELETE("/:tripId/images/:photoId", deps.Trip.DeleteTripPhoto)

	activities := protected.Group("/activities")
	activities.POST("", deps.Activity.CreateActivity)
	activities.GET("/trip/:tripId", deps.Activity.ListByTrip)
	activities.GET("/:activityId", deps.Activity.GetActivity)
	activities.PUT("/:activityId", deps.Activity.UpdateActivity)
	activities.DELETE("/:activityId", deps.Activity.DeleteActivity)

	social := protected.Group("/social")
	social.GET("/friends", deps.Social.ListFriends)
	social.GET("/friends/requests", deps.Social.ListPendingRequests)
	social.POST("/friends/request/:userId", deps.Social.SendFriendRequest)
	social.POST("/friends/accept/:requestId", deps.Social.AcceptFriendRequest)
	social.POST("/friends/decline/:requestId", deps.Social.DeclineFriendRequest)
	social.DELETE("/friends/:userId", deps.Social.RemoveFriend)
	social.GET("/friends/mutual/:userId", deps.Social.MutualFriends)

	media := protected.Group("/media")
	media.POST("/upload", deps.Media.Upload)
	media.GET("/user", deps.Media.ListMine)
	media.GET("/:mediaId", deps.Media.Get)
	media.DELETE("/:mediaId", deps.Media.Delete)

	users := protected.Group("/users")
	users.GET("/me", deps.Auth.Me)
	users.GET("/profile", deps.User.GetProfile)
	users.PUT("/profile", deps.User.UpdateProfile)
	users.GET("/search", deps.User.Search)

	weather := protected.Group("/weather")
	weather.GET("/forecast", deps.Weather.Forecast)

	maps := protected.Group("/maps")
	maps.GET("/search", deps.Maps.Search)
	maps.GET("/place", deps.Maps.PlaceDetails)
	maps.GET("/directions", deps.Maps.Directions)
	maps.GET("/geocode", deps.Maps.Geocode)
	maps.GET("/reverse-geocode", deps.Maps.ReverseGeocode)

	expedia := protected.Group("/expedia")
	expedia.GET("/activities/search", deps.Expedia.SearchActivities)
	expedia.GET("/activities/:activityId", deps.Expedia.ActivityDetails)
	expedia.GET("/hotels/search", deps.Expedia.SearchHotels)
	expedia.GET("/hotels/:hotelId", deps.Expedia.HotelDetails)

	ai := protected.Group("/ai")
	ai.POST("/trips/generate", deps.AI.GenerateTrip)
	ai.POST("/activities/recommend", deps.AI.RecommendActivities)
	ai.POST("/chat", deps.AI.Chat)
	ai.POST("/budget/optimize", deps.AI.OptimizeBudget)
	ai.POST("/trips/analyze", deps.AI.AnalyzeTrip)
}
