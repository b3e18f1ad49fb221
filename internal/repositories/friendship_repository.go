package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"sojourn/internal/models/db_models"
)

type FriendshipRepository interface {
	Insert(ctx context.Context, friendship *db_models.Friendship) error
	FindByID(ctx context.Context, id uuid.UUID) (*db_models.Friendship, error)
	// FindBetween returns any row connecting the pair in either direction,
	// whatever its status.
	FindBetween(ctx context.Context, a, b uuid.UUID) (*db_models.Friendship, error)
	FindAcceptedBetween(ctx context.Context, a, b uuid.UUID) (*db_models.Friendship, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListAcceptedFor(ctx context.Context, userID uuid.UUID) ([]db_models.Friendship, error)
	ListPendingFor(ctx context.Context, recipientID uuid.UUID) ([]db_models.Friendship, error)
}

type friendshipRepository struct {
	db *gorm.DB
}

func NewFriendshipRepository(db *gorm.DB) FriendshipRepository {
	return &friendshipRepository{db: db}
}

func (r *friendshipRepository) Insert(ctx context.Context, friendship *db_models.Friendship) error {
	return r.db.WithContext(ctx).Create(friendship).Error
}

func (r *friendshipRepository) FindByID(ctx context.Context, id uuid.UUID) (*db_models.Friendship, error) {
	var row db_models.Friendship
	err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *friendshipRepository) FindBetween(ctx context.Context, a, b uuid.UUID) (*db_models.Friendship, error) {
	var row db_models.Friendship
	err := r.db.WithContext(ctx).
		Where("(requester_id = ? AND recipient_id = ?) OR (requester_id = ? AND recipient_id = ?)", a, b, b, a).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *friendshipRepository) FindAcceptedBetween(ctx context.Context, a, b uuid.UUID) (*db_models.Friendship, error) {
	var row db_models.Friendship
	err := r.db.WithContext(ctx).
		Where("((requester_id = ? AND recipient_id = ?) OR (requester_id = ? AND recipient_id = ?)) AND status = ?",
			a, b, b, a, db_models.FriendshipAccepted).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *friendshipRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	return r.db.WithContext(ctx).
		Model(&db_models.Friendship{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *friendshipRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&db_models.Friendship{}).Error
}

func (r *friendshipRepository) ListAcceptedFor(ctx context.Context, userID uuid.UUID) ([]db_models.Friendship, error) {
	var rows []db_models.Friendship
	err := r.db.WithContext(ctx).
		Where("(requester_id = ? OR recipient_id = ?) AND status = ?", userID, userID, db_models.FriendshipAccepted).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *friendshipRepository) ListPendingFor(ctx context.Context, recipientID uuid.UUID) ([]db_models.Friendship, error) {
	var rows []db_models.Friendship
	err := r.db.WithContext(ctx).
		Where("recipient_id = ? AND status = ?", recipientID, db_models.FriendshipPending).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
