package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"sojourn/internal/models/db_models"
)

// TripListFilter narrows the owned-trips listing. Nil fields are ignored.
type TripListFilter struct {
	Status   *string
	Archived *bool
	Shared   *bool
	Limit    int
	Offset   int
}

type TripRepository interface {
	Insert(ctx context.Context, trip *db_models.Trip) error
	FindByID(ctx context.Context, id uuid.UUID) (*db_models.Trip, error)
	Save(ctx context.Context, trip *db_models.Trip) error
	DeleteCascade(ctx context.Context, tripID uuid.UUID) error
	ListByOwner(ctx context.Context, ownerID uuid.UUID, filter TripListFilter) ([]db_models.Trip, error)
	ListSharedWithUser(ctx context.Context, userID uuid.UUID) ([]db_models.Trip, error)
	SetIsShared(ctx context.Context, tripID uuid.UUID, shared bool) error
	CountActivities(ctx context.Context, tripID uuid.UUID) (int64, error)
	FirstCoverImage(ctx context.Context, tripID uuid.UUID) (*db_models.TripImage, error)

	FindShare(ctx context.Context, tripID, userID uuid.UUID) (*db_models.TripShare, error)
	InsertShare(ctx context.Context, share *db_models.TripShare) error
	UpdateSharePermission(ctx context.Context, shareID uuid.UUID, permission string) error
	DeleteShare(ctx context.Context, shareID uuid.UUID) error
	ListShares(ctx context.Context, tripID uuid.UUID) ([]db_models.TripShare, error)
	CountShares(ctx context.Context, tripID uuid.UUID) (int64, error)
}

type tripRepository struct {
	db *gorm.DB
}

func NewTripRepository(db *gorm.DB) TripRepository {
	return &tripRepository{db: db}
}

func (r *tripRepository) Insert(ctx context.Context, trip *db_models.Trip) error {
	return r.db.WithContext(ctx).Create(trip).Error
}

func (r *tripRepository) FindByID(ctx context.Context, id uuid.UUID) (*db_models.Trip, error) {
	var trip db_models.Trip
	err := r.db.WithContext(ctx).First(&trip, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &trip, nil
}

func (r *tripRepository) Save(ctx context.Context, trip *db_models.Trip) error {
	return r.db.WithContext(ctx).Save(trip).Error
}

// DeleteCascade removes a trip and every descendant row. The record store
// offers no cross-row transaction, so the deletes run strictly in sequence:
// shares, images, activity weather, activities plus their locations, then the
// trip itself.
func (r *tripRepository) DeleteCascade(ctx context.Context, tripID uuid.UUID) error {
	db := r.db.WithContext(ctx)

	if err := db.Where("trip_id = ?", tripID).Delete(&db_models.TripShare{}).Error; err != nil {
		return err
	}
	if err := db.Where("trip_id = ?", tripID).Delete(&db_models.TripImage{}).Error; err != nil {
		return err
	}

	var activities []db_models.Activity
	if err := db.Select("id", "location_id").Where("trip_id = ?", tripID).Find(&activities).Error; err != nil {
		return err
	}
	for _, activity := range activities {
		if err := db.Where("activity_id = ?", activity.ID).Delete(&db_models.ActivityWeather{}).Error; err != nil {
			return err
		}
		if activity.LocationID != nil {
			if err := db.Where("id = ?", *activity.LocationID).Delete(&db_models.Location{}).Error; err != nil {
				return err
			}
		}
	}

	if err := db.Where("trip_id = ?", tripID).Delete(&db_models.Activity{}).Error; err != nil {
		return err
	}

	return db.Where("id = ?", tripID).Delete(&db_models.Trip{}).Error
}

func (r *tripRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, filter TripListFilter) ([]db_models.Trip, error) {
	query := r.db.WithContext(ctx).Where("owner_id = ?", ownerID)

	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Archived != nil {
		query = query.Where("is_archived = ?", *filter.Archived)
	}
	if filter.Shared != nil {
		query = query.Where("is_shared = ?", *filter.Shared)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var trips []db_models.Trip
	if err := query.Order("created_at DESC").Find(&trips).Error; err != nil {
		return nil, err
	}
	return trips, nil
}

func (r *tripRepository) ListSharedWithUser(ctx context.Context, userID uuid.UUID) ([]db_models.Trip, error) {
	var shares []db_models.TripShare
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&shares).Error; err != nil {
		return nil, err
	}

	// One lookup per share; the store has no joins.
	trips := make([]db_models.Trip, 0, len(shares))
	for _, share := range shares {
		trip, err := r.FindByID(ctx, share.TripID)
		if err != nil {
			return nil, err
		}
		if trip != nil {
			trips = append(trips, *trip)
		}
	}
	return trips, nil
}

func (r *tripRepository) SetIsShared(ctx context.Context, tripID uuid.UUID, shared bool) error {
	return r.db.WithContext(ctx).
		Model(&db_models.Trip{}).
		Where("id = ?", tripID).
		Update("is_shared", shared).Error
}

func (r *tripRepository) CountActivities(ctx context.Context, tripID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db_models.Activity{}).
		Where("trip_id = ?", tripID).
		Count(&count).Error
	return count, err
}

func (r *tripRepository) FirstCoverImage(ctx context.Context, tripID uuid.UUID) (*db_models.TripImage, error) {
	var image db_models.TripImage
	err := r.db.WithContext(ctx).
		Where("trip_id = ? AND activity_id IS NULL", tripID).
		Order("created_at ASC").
		First(&image).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &image, nil
}

func (r *tripRepository) FindShare(ctx context.Context, tripID, userID uuid.UUID) (*db_models.TripShare, error) {
	var share db_models.TripShare
	err := r.db.WithContext(ctx).
		First(&share, "trip_id = ? AND user_id = ?", tripID, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &share, nil
}

func (r *tripRepository) InsertShare(ctx context.Context, share *db_models.TripShare) error {
	return r.db.WithContext(ctx).Create(share).Error
}

func (r *tripRepository) UpdateSharePermission(ctx context.Context, shareID uuid.UUID, permission string) error {
	return r.db.WithContext(ctx).
		Model(&db_models.TripShare{}).
		Where("id = ?", shareID).
		Update("permission", permission).Error
}

func (r *tripRepository) DeleteShare(ctx context.Context, shareID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", shareID).
		Delete(&db_models.TripShare{}).Error
}

func (r *tripRepository) ListShares(ctx context.Context, tripID uuid.UUID) ([]db_models.TripShare, error) {
	var shares []db_models.TripShare
	err := r.db.WithContext(ctx).
		Where("trip_id = ?", tripID).
		Find(&shares).Error
	if err != nil {
		return nil, err
	}
	return shares, nil
}

func (r *tripRepository) CountShares(ctx context.Context, tripID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db_models.TripShare{}).
		Where("trip_id = ?", tripID).
		Count(&count).Error
	return count, err
}
