package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"sojourn/internal/models/db_models"
	"sojourn/internal/models/request_models"
	"sojourn/internal/models/response_models"
	"sojourn/internal/repositories"
	"sojourn/pkg/utils"
)

type ActivityServiceInterface interface {
	CreateActivity(ctx context.Context, tripID, userID uuid.UUID, in request_models.ActivityInput) (*response_models.ActivityResponse, error)
	GetActivity(ctx context.Context, activityID, userID uuid.UUID) (*response_models.ActivityResponse, error)
	UpdateActivity(ctx context.Context, activityID, userID uuid.UUID, in request_models.ActivityInput) (*response_models.ActivityResponse, error)
	DeleteActivity(ctx context.Context, activityID, userID uuid.UUID) error
	ListActivities(ctx context.Context, tripID, userID uuid.UUID, date *time.Time, activityType *string) ([]response_models.ActivityResponse, error)
}

type ActivityService struct {
	activityRepo repositories.ActivityRepository
	access       TripAccessChecker
	logger       zerolog.Logger
}

func NewActivityService(
	activityRepo repositories.ActivityRepository,
	access TripAccessChecker,
	logger zerolog.Logger,
) ActivityServiceInterface {
	return &ActivityService{
		activityRepo: activityRepo,
		access:       access,
		logger:       logger,
	}
}

func (a *ActivityService) CreateActivity(ctx context.Context, tripID, userID uuid.UUID, in request_models.ActivityInput) (*response_models.ActivityResponse, error) {
	if err := a.access.CheckAccess(ctx, tripID, userID, db_models.PermissionEdit); err != nil {
		return nil, err
	}
	if err := validateActivityInput(&in); err != nil {
		return nil, err
	}

	activityID, err := persistActivity(ctx, a.activityRepo, tripID, in)
	if err != nil {
		return nil, err
	}

	return a.fetchAssembled(ctx, activityID)
}

func (a *ActivityService) GetActivity(ctx context.Context, activityID, userID uuid.UUID) (*response_models.ActivityResponse, error) {
	activity, err := a.findForCaller(ctx, activityID, userID, db_models.PermissionView)
	if err != nil {
		return nil, err
	}

	assembled, err := assembleActivity(ctx, a.activityRepo, *activity)
	if err != nil {
		return nil, err
	}
	return &assembled, nil
}

// UpdateActivity replaces the activity wholesale: the input carries the full
// desired state, and the image set is rewritten rather than diffed.
func (a *ActivityService) UpdateActivity(ctx context.Context, activityID, userID uuid.UUID, in request_models.ActivityInput) (*response_models.ActivityResponse, error) {
	if err := validateActivityInput(&in); err != nil {
		return nil, err
	}

	activity, err := a.findForCaller(ctx, activityID, userID, db_models.PermissionEdit)
	if err != nil {
		return nil, err
	}

	locationID, err := upsertLocation(ctx, a.activityRepo, activity.LocationID, in.Location)
	if err != nil {
		return nil, err
	}

	reservation, err := marshalReservation(in.ReservationInfo)
	if err != nil {
		return nil, utils.ErrInvalidInput
	}

	activity.Title = in.Title
	activity.Description = in.Description
	activity.StartDatetime = in.StartDatetime
	activity.EndDatetime = in.EndDatetime
	activity.AllDay = in.AllDay
	activity.LocationID = locationID
	activity.Notes = in.Notes
	activity.ActivityType = in.ActivityType
	activity.Cost = in.Cost
	activity.Currency = in.Currency
	activity.ReservationInfo = reservation
	if err := a.activityRepo.Save(ctx, activity); err != nil {
		return nil, utils.ErrDatabaseError
	}

	if err := replaceWeather(ctx, a.activityRepo, activity.ID, in.WeatherData); err != nil {
		return nil, err
	}

	if err := a.activityRepo.DeleteImagesByActivity(ctx, activity.ID); err != nil {
		return nil, utils.ErrDatabaseError
	}
	if err := insertActivityImages(ctx, a.activityRepo, activity.TripID, activity.ID, in.Images); err != nil {
		return nil, err
	}

	return a.fetchAssembled(ctx, activity.ID)
}

func (a *ActivityService) DeleteActivity(ctx context.Context, activityID, userID uuid.UUID) error {
	activity, err := a.findForCaller(ctx, activityID, userID, db_models.PermissionEdit)
	if err != nil {
		return err
	}

	// Side records first so a crash leaves an activity without orphans
	// pointing at it, not the reverse.
	if err := a.activityRepo.DeleteWeatherByActivity(ctx, activity.ID); err != nil {
		return utils.ErrDatabaseError
	}
	if err := a.activityRepo.DeleteImagesByActivity(ctx, activity.ID); err != nil {
		return utils.ErrDatabaseError
	}
	if err := a.activityRepo.Delete(ctx, activity.ID); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func (a *ActivityService) ListActivities(ctx context.Context, tripID, userID uuid.UUID, date *time.Time, activityType *string) ([]response_models.ActivityResponse, error) {
	if err := a.access.CheckAccess(ctx, tripID, userID, db_models.PermissionView); err != nil {
		return nil, err
	}
	if activityType != nil && !db_models.ValidActivityType(*activityType) {
		return nil, utils.ErrInvalidInput
	}

	activities, err := a.activityRepo.ListByTrip(ctx, tripID, date, activityType)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	result := make([]response_models.ActivityResponse, 0, len(activities))
	for _, activity := range activities {
		assembled, err := assembleActivity(ctx, a.activityRepo, activity)
		if err != nil {
			return nil, err
		}
		result = append(result, assembled)
	}
	return result, nil
}

// findForCaller resolves the activity, then runs the trip access check for
// the required permission. The row is loaded first because the trip id lives
// on it; a denied caller still only sees Forbidden, not the activity.
func (a *ActivityService) findForCaller(ctx context.Context, activityID, userID uuid.UUID, permission string) (*db_models.Activity, error) {
	activity, err := a.activityRepo.FindByID(ctx, activityID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if activity == nil {
		return nil, utils.ErrActivityNotFound
	}
	if err := a.access.CheckAccess(ctx, activity.TripID, userID, permission); err != nil {
		return nil, err
	}
	return activity, nil
}

func (a *ActivityService) fetchAssembled(ctx context.Context, activityID uuid.UUID) (*response_models.ActivityResponse, error) {
	activity, err := a.activityRepo.FindByID(ctx, activityID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if activity == nil {
		return nil, utils.ErrActivityNotFound
	}
	assembled, err := assembleActivity(ctx, a.activityRepo, *activity)
	if err != nil {
		return nil, err
	}
	return &assembled, nil
}

func validateActivityInput(in *request_models.ActivityInput) error {
	if in.ActivityType == "" {
		in.ActivityType = db_models.ActivityTypeOther
	}
	if !db_models.ValidActivityType(in.ActivityType) {
		return utils.ErrInvalidInput
	}
	if in.Currency == "" {
		in.Currency = "USD"
	}
	if in.EndDatetime != nil && in.EndDatetime.Before(in.StartDatetime) {
		return utils.ErrInvalidDateRange
	}
	return nil
}

// persistActivity performs the sequential write chain: location, activity,
// weather snapshot, images. The store offers no transactions across these,
// so later steps fail the call but leave earlier rows in place.
func persistActivity(ctx context.Context, repo repositories.ActivityRepository, tripID uuid.UUID, in request_models.ActivityInput) (uuid.UUID, error) {
	locationID, err := upsertLocation(ctx, repo, nil, in.Location)
	if err != nil {
		return uuid.Nil, err
	}

	reservation, err := marshalReservation(in.ReservationInfo)
	if err != nil {
		return uuid.Nil, utils.ErrInvalidInput
	}

	activity := &db_models.Activity{
		TripID:          tripID,
		Title:           in.Title,
		Description:     in.Description,
		StartDatetime:   in.StartDatetime,
		EndDatetime:     in.EndDatetime,
		AllDay:          in.AllDay,
		LocationID:      locationID,
		Notes:           in.Notes,
		ActivityType:    in.ActivityType,
		Cost:            in.Cost,
		Currency:        in.Currency,
		ReservationInfo: reservation,
	}
	if err := repo.Insert(ctx, activity); err != nil {
		return uuid.Nil, utils.ErrDatabaseError
	}

	if in.WeatherData != nil {
		weather := weatherInputToModel(activity.ID, in.WeatherData)
		if err := repo.InsertWeather(ctx, weather); err != nil {
			return uuid.Nil, utils.ErrDatabaseError
		}
	}

	if err := insertActivityImages(ctx, repo, tripID, activity.ID, in.Images); err != nil {
		return uuid.Nil, err
	}

	return activity.ID, nil
}

// upsertLocation reuses the existing row when the activity already points at
// one, otherwise inserts. A nil input clears the reference.
func upsertLocation(ctx context.Context, repo repositories.ActivityRepository, current *uuid.UUID, in *request_models.LocationInput) (*uuid.UUID, error) {
	if in == nil {
		return nil, nil
	}

	if current != nil {
		location, err := repo.FindLocation(ctx, *current)
		if err != nil {
			return nil, utils.ErrDatabaseError
		}
		if location != nil {
			location.Name = in.Name
			location.Address = in.Address
			location.Latitude = in.Latitude
			location.Longitude = in.Longitude
			location.PlaceID = in.PlaceID
			if err := repo.SaveLocation(ctx, location); err != nil {
				return nil, utils.ErrDatabaseError
			}
			return current, nil
		}
	}

	location := &db_models.Location{
		Name:      in.Name,
		Address:   in.Address,
		Latitude:  in.Latitude,
		Longitude: in.Longitude,
		PlaceID:   in.PlaceID,
	}
	if err := repo.InsertLocation(ctx, location); err != nil {
		return nil, utils.ErrDatabaseError
	}
	return &location.ID, nil
}

func replaceWeather(ctx context.Context, repo repositories.ActivityRepository, activityID uuid.UUID, in *request_models.WeatherInput) error {
	if in == nil {
		if err := repo.DeleteWeatherByActivity(ctx, activityID); err != nil {
			return utils.ErrDatabaseError
		}
		return nil
	}

	existing, err := repo.FindWeatherByActivity(ctx, activityID)
	if err != nil {
		return utils.ErrDatabaseError
	}

	weather := weatherInputToModel(activityID, in)
	if existing != nil {
		weather.BaseModel = existing.BaseModel
		if err := repo.SaveWeather(ctx, weather); err != nil {
			return utils.ErrDatabaseError
		}
		return nil
	}

	if err := repo.InsertWeather(ctx, weather); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func insertActivityImages(ctx context.Context, repo repositories.ActivityRepository, tripID, activityID uuid.UUID, urls []string) error {
	if len(urls) == 0 {
		return nil
	}
	images := make([]db_models.TripImage, 0, len(urls))
	for _, url := range urls {
		images = append(images, db_models.TripImage{
			TripID:     tripID,
			ActivityID: &activityID,
			URL:        url,
		})
	}
	if err := repo.InsertImages(ctx, images); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func weatherInputToModel(activityID uuid.UUID, in *request_models.WeatherInput) *db_models.ActivityWeather {
	return &db_models.ActivityWeather{
		ActivityID:               activityID,
		Temperature:              in.Temperature,
		TemperatureMin:           in.TemperatureMin,
		TemperatureMax:           in.TemperatureMax,
		Condition:                in.Condition,
		PrecipitationProbability: in.PrecipitationProbability,
		Humidity:                 in.Humidity,
		WindSpeed:                in.WindSpeed,
		WindDirection:            in.WindDirection,
		CloudCover:               in.CloudCover,
		Sunrise:                  in.Sunrise,
		Sunset:                   in.Sunset,
		ForecastTimestamp:        in.ForecastTimestamp,
	}
}

func assembleActivity(ctx context.Context, repo repositories.ActivityRepository, activity db_models.Activity) (response_models.ActivityResponse, error) {
	resp := response_models.ActivityResponse{
		ID:            activity.ID.String(),
		TripID:        activity.TripID.String(),
		Title:         activity.Title,
		Description:   activity.Description,
		StartDatetime: activity.StartDatetime,
		EndDatetime:   activity.EndDatetime,
		AllDay:        activity.AllDay,
		Notes:         activity.Notes,
		ActivityType:  activity.ActivityType,
		Cost:          activity.Cost,
		Currency:      activity.Currency,
		Images:        []string{},
		CreatedAt:     unixToTime(activity.CreatedAt),
		UpdatedAt:     unixToTime(activity.UpdatedAt),
	}

	if activity.LocationID != nil {
		location, err := repo.FindLocation(ctx, *activity.LocationID)
		if err != nil {
			return resp, utils.ErrDatabaseError
		}
		if location != nil {
			resp.Location = &response_models.LocationResponse{
				ID:        location.ID.String(),
				Name:      location.Name,
				Address:   location.Address,
				Latitude:  location.Latitude,
				Longitude: location.Longitude,
				PlaceID:   location.PlaceID,
			}
		}
	}

	weather, err := repo.FindWeatherByActivity(ctx, activity.ID)
	if err != nil {
		return resp, utils.ErrDatabaseError
	}
	if weather != nil {
		resp.WeatherData = &response_models.WeatherResponse{
			Temperature:              weather.Temperature,
			TemperatureMin:           weather.TemperatureMin,
			TemperatureMax:           weather.TemperatureMax,
			Condition:                weather.Condition,
			PrecipitationProbability: weather.PrecipitationProbability,
			Humidity:                 weather.Humidity,
			WindSpeed:                weather.WindSpeed,
			WindDirection:            weather.WindDirection,
			CloudCover:               weather.CloudCover,
			Sunrise:                  weather.Sunrise,
			Sunset:                   weather.Sunset,
			ForecastTimestamp:        weather.ForecastTimestamp,
		}
	}

	images, err := repo.ListImagesByActivity(ctx, activity.ID)
	if err != nil {
		return resp, utils.ErrDatabaseError
	}
	for _, image := range images {
		resp.Images = append(resp.Images, image.URL)
	}

	return resp, nil
}

func marshalReservation(info map[string]any) (string, error) {
	if len(info) == 0 {
		return "", nil
	}
	raw, err := json.Marshal(info)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func nowUTC() time.Time {
	return time.Now().UTC()
}

func unixToTime(ts int64) time.Time {
	return time.Unix(ts, 0).UTC()
}
