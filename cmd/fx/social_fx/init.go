package social_fx

import (
	"github.com/rs/zerolog"
	"go.uber.org/fx"
	"gorm.io/gorm"
	"sojourn/internal/repositories"
	"sojourn/internal/services"
)

var Module = fx.Provide(provideFriendshipRepo, provideSocialService)

func provideFriendshipRepo(db *gorm.DB) repositories.FriendshipRepository {
	return repositories.NewFriendshipRepository(db)
}

func provideSocialService(
	friendshipRepo repositories.FriendshipRepository,
	userRepo repositories.UserRepository,
	logger zerolog.Logger,
) services.SocialServiceInterface {
	return services.NewSocialService(friendshipRepo, userRepo, logger)
}
