package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"sojourn/internal/models/db_models"
)

type MediaRepository interface {
	Insert(ctx context.Context, media *db_models.Media) error
	FindByID(ctx context.Context, id uuid.UUID) (*db_models.Media, error)
	ListByUser(ctx context.Context, userID uuid.UUID, mediaType *string, limit, offset int) ([]db_models.Media, error)
	Delete(ctx context.Context, id uuid.UUID) error

	InsertTripImage(ctx context.Context, image *db_models.TripImage) error
	FindTripImage(ctx context.Context, id uuid.UUID) (*db_models.TripImage, error)
	ListTripImages(ctx context.Context, tripID uuid.UUID) ([]db_models.TripImage, error)
	DeleteTripImage(ctx context.Context, id uuid.UUID) error
}

type mediaRepository struct {
	db *gorm.DB
}

func NewMediaRepository(db *gorm.DB) MediaRepository {
	return &mediaRepository{db: db}
}

func (r *mediaRepository) Insert(ctx context.Context, media *db_models.Media) error {
	return r.db.WithContext(ctx).Create(media).Error
}

func (r *mediaRepository) FindByID(ctx context.Context, id uuid.UUID) (*db_models.Media, error) {
	var media db_models.Media
	err := r.db.WithContext(ctx).First(&media, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &media, nil
}

func (r *mediaRepository) ListByUser(ctx context.Context, userID uuid.UUID, mediaType *string, limit, offset int) ([]db_models.Media, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)

	if mediaType != nil {
		query = query.Where("media_type = ?", *mediaType)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var items []db_models.Media
	if err := query.Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *mediaRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&db_models.Media{}).Error
}

func (r *mediaRepository) InsertTripImage(ctx context.Context, image *db_models.TripImage) error {
	return r.db.WithContext(ctx).Create(image).Error
}

func (r *mediaRepository) FindTripImage(ctx context.Context, id uuid.UUID) (*db_models.TripImage, error) {
	var image db_models.TripImage
	err := r.db.WithContext(ctx).First(&image, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &image, nil
}

func (r *mediaRepository) ListTripImages(ctx context.Context, tripID uuid.UUID) ([]db_models.TripImage, error) {
	var images []db_models.TripImage
	err := r.db.WithContext(ctx).
		Where("trip_id = ?", tripID).
		Order("created_at ASC").
		Find(&images).Error
	if err != nil {
		return nil, err
	}
	return images, nil
}

func (r *mediaRepository) DeleteTripImage(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&db_models.TripImage{}).Error
}
