package services

import (
	"context"

	"github.com/google/uuid"
	"sojourn/internal/models/db_models"
	"sojourn/internal/models/request_models"
	"sojourn/internal/models/response_models"
	"sojourn/internal/repositories"
	"sojourn/pkg/utils"
)

type UserServiceInterface interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*response_models.ProfileResponse, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req request_models.UpdateProfileRequest) (*response_models.ProfileResponse, error)
	SearchUsers(ctx context.Context, callerID uuid.UUID, query string, limit int) ([]response_models.UserResponse, error)
}

type UserService struct {
	userRepo repositories.UserRepository
}

func NewUserService(userRepo repositories.UserRepository) UserServiceInterface {
	return &UserService{userRepo: userRepo}
}

// GetProfile returns defaults for users who never touched their profile; the
// row is only materialized on the first update.
func (u *UserService) GetProfile(ctx context.Context, userID uuid.UUID) (*response_models.ProfileResponse, error) {
	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if user == nil {
		return nil, utils.ErrUserNotFound
	}

	profile, err := u.userRepo.FindProfile(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if profile == nil {
		profile = defaultProfile(userID)
	}

	return profileToResponse(profile), nil
}

func (u *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, req request_models.UpdateProfileRequest) (*response_models.ProfileResponse, error) {
	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if user == nil {
		return nil, utils.ErrUserNotFound
	}

	profile, err := u.userRepo.FindProfile(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	fresh := profile == nil
	if fresh {
		profile = defaultProfile(userID)
	}

	if req.DarkModeEnabled != nil {
		profile.DarkModeEnabled = *req.DarkModeEnabled
	}
	if req.Gender != nil {
		profile.Gender = req.Gender
	}
	if req.Age != nil {
		profile.Age = req.Age
	}
	if req.NotificationsEnabled != nil {
		profile.NotificationsEnabled = *req.NotificationsEnabled
	}
	if req.EmailNotificationsEnabled != nil {
		profile.EmailNotificationsEnabled = *req.EmailNotificationsEnabled
	}
	if req.ProfileImageURL != nil {
		profile.ProfileImageURL = req.ProfileImageURL
	}
	if req.PreferredClimate != nil {
		profile.PreferredClimate = req.PreferredClimate
	}
	if req.PreferredTripType != nil {
		profile.PreferredTripType = req.PreferredTripType
	}
	if req.Budget != nil {
		profile.Budget = req.Budget
	}
	if req.PreferredActivities != nil {
		profile.PreferredActivities = req.PreferredActivities
	}
	if req.LanguagePreference != nil {
		profile.LanguagePreference = *req.LanguagePreference
	}

	if fresh {
		err = u.userRepo.InsertProfile(ctx, profile)
	} else {
		err = u.userRepo.SaveProfile(ctx, profile)
	}
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	return profileToResponse(profile), nil
}

func (u *UserService) SearchUsers(ctx context.Context, callerID uuid.UUID, query string, limit int) ([]response_models.UserResponse, error) {
	if query == "" {
		return []response_models.UserResponse{}, nil
	}
	if limit <= 0 || limit > 50 {
		limit = 20
	}

	users, err := u.userRepo.Search(ctx, query, callerID, limit)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	result := make([]response_models.UserResponse, 0, len(users))
	for i := range users {
		result = append(result, userToResponse(&users[i]))
	}
	return result, nil
}

func defaultProfile(userID uuid.UUID) *db_models.UserProfile {
	return &db_models.UserProfile{
		UserID:                    userID,
		NotificationsEnabled:      true,
		EmailNotificationsEnabled: true,
		PreferredActivities:       []string{},
		LanguagePreference:        "en",
	}
}

func profileToResponse(profile *db_models.UserProfile) *response_models.ProfileResponse {
	return &response_models.ProfileResponse{
		UserID:                    profile.UserID.String(),
		DarkModeEnabled:           profile.DarkModeEnabled,
		Gender:                    profile.Gender,
		Age:                       profile.Age,
		NotificationsEnabled:      profile.NotificationsEnabled,
		EmailNotificationsEnabled: profile.EmailNotificationsEnabled,
		ProfileImageURL:           profile.ProfileImageURL,
		PreferredClimate:          profile.PreferredClimate,
		PreferredTripType:         profile.PreferredTripType,
		Budget:                    profile.Budget,
		PreferredActivities:       profile.PreferredActivities,
		LanguagePreference:        profile.LanguagePreference,
	}
}
