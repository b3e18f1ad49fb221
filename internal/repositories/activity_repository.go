package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"sojourn/internal/models/db_models"
)

type ActivityRepository interface {
	Insert(ctx context.Context, activity *db_models.Activity) error
	FindByID(ctx context.Context, id uuid.UUID) (*db_models.Activity, error)
	Save(ctx context.Context, activity *db_models.Activity) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByTrip(ctx context.Context, tripID uuid.UUID, date *time.Time, activityType *string) ([]db_models.Activity, error)

	FindLocation(ctx context.Context, id uuid.UUID) (*db_models.Location, error)
	InsertLocation(ctx context.Context, location *db_models.Location) error
	SaveLocation(ctx context.Context, location *db_models.Location) error

	FindWeatherByActivity(ctx context.Context, activityID uuid.UUID) (*db_models.ActivityWeather, error)
	InsertWeather(ctx context.Context, weather *db_models.ActivityWeather) error
	SaveWeather(ctx context.Context, weather *db_models.ActivityWeather) error
	DeleteWeatherByActivity(ctx context.Context, activityID uuid.UUID) error

	InsertImages(ctx context.Context, images []db_models.TripImage) error
	ListImagesByActivity(ctx context.Context, activityID uuid.UUID) ([]db_models.TripImage, error)
	DeleteImagesByActivity(ctx context.Context, activityID uuid.UUID) error
}

type activityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) Insert(ctx context.Context, activity *db_models.Activity) error {
	return r.db.WithContext(ctx).Create(activity).Error
}

func (r *activityRepository) FindByID(ctx context.Context, id uuid.UUID) (*db_models.Activity, error) {
	var activity db_models.Activity
	err := r.db.WithContext(ctx).First(&activity, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &activity, nil
}

func (r *activityRepository) Save(ctx context.Context, activity *db_models.Activity) error {
	return r.db.WithContext(ctx).Save(activity).Error
}

func (r *activityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&db_models.Activity{}).Error
}

// ListByTrip filters by the calendar day of start_datetime when date is set.
// Activities spanning midnight only match their start day.
func (r *activityRepository) ListByTrip(ctx context.Context, tripID uuid.UUID, date *time.Time, activityType *string) ([]db_models.Activity, error) {
	query := r.db.WithContext(ctx).Where("trip_id = ?", tripID)

	if date != nil {
		dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
		dayEnd := dayStart.Add(24 * time.Hour)
		query = query.Where("start_datetime >= ? AND start_datetime < ?", dayStart, dayEnd)
	}
	if activityType != nil {
		query = query.Where("activity_type = ?", *activityType)
	}

	var activities []db_models.Activity
	if err := query.Order("start_datetime ASC").Find(&activities).Error; err != nil {
		return nil, err
	}
	return activities, nil
}

func (r *activityRepository) FindLocation(ctx context.Context, id uuid.UUID) (*db_models.Location, error) {
	var location db_models.Location
	err := r.db.WithContext(ctx).First(&location, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &location, nil
}

func (r *activityRepository) InsertLocation(ctx context.Context, location *db_models.Location) error {
	return r.db.WithContext(ctx).Create(location).Error
}

func (r *activityRepository) SaveLocation(ctx context.Context, location *db_models.Location) error {
	return r.db.WithContext(ctx).Save(location).Error
}

func (r *activityRepository) FindWeatherByActivity(ctx context.Context, activityID uuid.UUID) (*db_models.ActivityWeather, error) {
	var weather db_models.ActivityWeather
	err := r.db.WithContext(ctx).First(&weather, "activity_id = ?", activityID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &weather, nil
}

func (r *activityRepository) InsertWeather(ctx context.Context, weather *db_models.ActivityWeather) error {
	return r.db.WithContext(ctx).Create(weather).Error
}

func (r *activityRepository) SaveWeather(ctx context.Context, weather *db_models.ActivityWeather) error {
	return r.db.WithContext(ctx).Save(weather).Error
}

func (r *activityRepository) DeleteWeatherByActivity(ctx context.Context, activityID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("activity_id = ?", activityID).
		Delete(&db_models.ActivityWeather{}).Error
}

func (r *activityRepository) InsertImages(ctx context.Context, images []db_models.TripImage) error {
	if len(images) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&images).Error
}

func (r *activityRepository) ListImagesByActivity(ctx context.Context, activityID uuid.UUID) ([]db_models.TripImage, error) {
	var images []db_models.TripImage
	err := r.db.WithContext(ctx).
		Where("activity_id = ?", activityID).
		Order("created_at ASC").
		Find(&images).Error
	if err != nil {
		return nil, err
	}
	return images, nil
}

func (r *activityRepository) DeleteImagesByActivity(ctx context.Context, activityID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("activity_id = ?", activityID).
		Delete(&db_models.TripImage{}).Error
}
