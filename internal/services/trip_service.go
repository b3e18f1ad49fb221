package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"sojourn/internal/models/db_models"
	"sojourn/internal/models/request_models"
	"sojourn/internal/models/response_models"
	"sojourn/internal/repositories"
	"sojourn/pkg/utils"
)

// TripAccessChecker is the authorization decision shared by every
// trip-scoped component (activities, photos, sharing).
type TripAccessChecker interface {
	CheckAccess(ctx context.Context, tripID, userID uuid.UUID, permission string) error
}

// ShareOutcome distinguishes a fresh share from an in-place permission update.
type ShareOutcome string

const (
	ShareCreated   ShareOutcome = "created"
	ShareUpdated   ShareOutcome = "updated"
	ShareUnchanged ShareOutcome = "unchanged"
)

type TripListQuery struct {
	Status   *string
	Archived *bool
	Shared   *bool
	Limit    int
	Offset   int
}

type TripServiceInterface interface {
	TripAccessChecker
	CreateTrip(ctx context.Context, userID uuid.UUID, req request_models.CreateTripRequest) (*response_models.TripResponse, error)
	GetTrip(ctx context.Context, tripID, userID uuid.UUID) (*response_models.TripResponse, error)
	UpdateTrip(ctx context.Context, tripID, userID uuid.UUID, req request_models.UpdateTripRequest) (*response_models.TripResponse, error)
	DeleteTrip(ctx context.Context, tripID, userID uuid.UUID) error
	ListTrips(ctx context.Context, userID uuid.UUID, query TripListQuery) ([]response_models.TripSummary, error)
	PublishTrip(ctx context.Context, tripID, userID uuid.UUID) (*response_models.TripResponse, error)
	ArchiveTrip(ctx context.Context, tripID, userID uuid.UUID) error
	UnarchiveTrip(ctx context.Context, tripID, userID uuid.UUID) error
	ShareTrip(ctx context.Context, tripID, callerID, targetID uuid.UUID, permission string) (ShareOutcome, error)
	ListShares(ctx context.Context, tripID, userID uuid.UUID) ([]response_models.TripShareResponse, error)
	RemoveShare(ctx context.Context, tripID, callerID, targetID uuid.UUID) error
}

type TripService struct {
	tripRepo     repositories.TripRepository
	activityRepo repositories.ActivityRepository
	userRepo     repositories.UserRepository
	logger       zerolog.Logger
}

func NewTripService(
	tripRepo repositories.TripRepository,
	activityRepo repositories.ActivityRepository,
	userRepo repositories.UserRepository,
	logger zerolog.Logger,
) TripServiceInterface {
	return &TripService{
		tripRepo:     tripRepo,
		activityRepo: activityRepo,
		userRepo:     userRepo,
		logger:       logger,
	}
}

// CheckAccess grants the owner everything. A trip with is_shared=true grants
// view to any authenticated caller. Otherwise the explicit TripShare row
// decides: view < edit < admin, except admin actions require exactly admin.
func (t *TripService) CheckAccess(ctx context.Context, tripID, userID uuid.UUID, permission string) error {
	trip, err := t.tripRepo.FindByID(ctx, tripID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if trip == nil {
		return utils.ErrTripNotFound
	}

	if trip.OwnerID == userID {
		return nil
	}

	if permission == db_models.PermissionView && trip.IsShared {
		return nil
	}

	share, err := t.tripRepo.FindShare(ctx, tripID, userID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if share == nil {
		return utils.ErrForbidden
	}

	switch permission {
	case db_models.PermissionView:
		return nil
	case db_models.PermissionEdit:
		if share.Permission == db_models.PermissionEdit || share.Permission == db_models.PermissionAdmin {
			return nil
		}
	case db_models.PermissionAdmin:
		if share.Permission == db_models.PermissionAdmin {
			return nil
		}
	}

	return utils.ErrForbidden
}

func (t *TripService) CreateTrip(ctx context.Context, userID uuid.UUID, req request_models.CreateTripRequest) (*response_models.TripResponse, error) {
	if req.EndDate.Before(req.StartDate) {
		return nil, utils.ErrInvalidDateRange
	}

	status := req.Status
	if status == "" {
		status = db_models.TripStatusDraft
	}
	if !db_models.ValidTripStatus(status) {
		return nil, utils.ErrInvalidInput
	}

	trip := &db_models.Trip{
		Title:       req.Title,
		Destination: req.Destination,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Notes:       req.Notes,
		Status:      status,
		IsArchived:  req.IsArchived,
		IsDraft:     status == db_models.TripStatusDraft,
		IsShared:    req.IsShared,
		OwnerID:     userID,
	}
	if err := t.tripRepo.Insert(ctx, trip); err != nil {
		return nil, utils.ErrDatabaseError
	}

	for _, in := range req.Activities {
		if err := validateActivityInput(&in); err != nil {
			return nil, err
		}
		if _, err := persistActivity(ctx, t.activityRepo, trip.ID, in); err != nil {
			return nil, err
		}
	}

	return t.GetTrip(ctx, trip.ID, userID)
}

func (t *TripService) GetTrip(ctx context.Context, tripID, userID uuid.UUID) (*response_models.TripResponse, error) {
	if err := t.CheckAccess(ctx, tripID, userID, db_models.PermissionView); err != nil {
		return nil, err
	}

	trip, err := t.tripRepo.FindByID(ctx, tripID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if trip == nil {
		return nil, utils.ErrTripNotFound
	}

	activities, err := t.activityRepo.ListByTrip(ctx, tripID, nil, nil)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	resp := tripToResponse(trip)
	for _, activity := range activities {
		assembled, err := assembleActivity(ctx, t.activityRepo, activity)
		if err != nil {
			return nil, err
		}
		resp.Activities = append(resp.Activities, assembled)
	}

	return resp, nil
}

func (t *TripService) UpdateTrip(ctx context.Context, tripID, userID uuid.UUID, req request_models.UpdateTripRequest) (*response_models.TripResponse, error) {
	if err := t.CheckAccess(ctx, tripID, userID, db_models.PermissionEdit); err != nil {
		return nil, err
	}

	trip, err := t.tripRepo.FindByID(ctx, tripID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if trip == nil {
		return nil, utils.ErrTripNotFound
	}

	if req.Title != nil {
		trip.Title = *req.Title
	}
	if req.Destination != nil {
		trip.Destination = *req.Destination
	}
	if req.StartDate != nil {
		trip.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		trip.EndDate = *req.EndDate
	}
	if trip.EndDate.Before(trip.StartDate) {
		return nil, utils.ErrInvalidDateRange
	}
	if req.Notes != nil {
		trip.Notes = req.Notes
	}
	if req.Status != nil {
		if !db_models.ValidTripStatus(*req.Status) {
			return nil, utils.ErrInvalidInput
		}
		trip.Status = *req.Status
		trip.IsDraft = trip.Status == db_models.TripStatusDraft
	}
	if req.IsArchived != nil {
		trip.IsArchived = *req.IsArchived
	}

	if err := t.tripRepo.Save(ctx, trip); err != nil {
		return nil, utils.ErrDatabaseError
	}

	return t.GetTrip(ctx, tripID, userID)
}

func (t *TripService) DeleteTrip(ctx context.Context, tripID, userID uuid.UUID) error {
	trip, err := t.tripRepo.FindByID(ctx, tripID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if trip == nil {
		return utils.ErrTripNotFound
	}
	if trip.OwnerID != userID {
		return utils.ErrForbidden
	}

	if err := t.tripRepo.DeleteCascade(ctx, tripID); err != nil {
		t.logger.Error().Err(err).Str("trip_id", tripID.String()).Msg("trip cascade delete failed")
		return utils.ErrDatabaseError
	}
	return nil
}

// ListTrips unions owned trips with trips shared to the caller, then enriches
// each with an activity count and a cover image. One extra lookup pair per
// trip; the store has no joins.
func (t *TripService) ListTrips(ctx context.Context, userID uuid.UUID, query TripListQuery) ([]response_models.TripSummary, error) {
	owned, err := t.tripRepo.ListByOwner(ctx, userID, repositories.TripListFilter{
		Status:   query.Status,
		Archived: query.Archived,
		Shared:   query.Shared,
		Limit:    query.Limit,
		Offset:   query.Offset,
	})
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	shared, err := t.tripRepo.ListSharedWithUser(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	all := append(owned, shared...)
	summaries := make([]response_models.TripSummary, 0, len(all))
	for _, trip := range all {
		count, err := t.tripRepo.CountActivities(ctx, trip.ID)
		if err != nil {
			return nil, utils.ErrDatabaseError
		}

		var coverURL *string
		cover, err := t.tripRepo.FirstCoverImage(ctx, trip.ID)
		if err != nil {
			return nil, utils.ErrDatabaseError
		}
		if cover != nil {
			coverURL = &cover.URL
		}

		summaries = append(summaries, response_models.TripSummary{
			ID:            trip.ID.String(),
			Title:         trip.Title,
			Destination:   trip.Destination,
			StartDate:     trip.StartDate,
			EndDate:       trip.EndDate,
			Status:        trip.Status,
			IsArchived:    trip.IsArchived,
			IsDraft:       trip.IsDraft,
			IsShared:      trip.IsShared,
			ActivityCount: int(count),
			CoverImageURL: coverURL,
		})
	}

	return summaries, nil
}

func (t *TripService) PublishTrip(ctx context.Context, tripID, userID uuid.UUID) (*response_models.TripResponse, error) {
	trip, err := t.tripRepo.FindByID(ctx, tripID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if trip == nil {
		return nil, utils.ErrTripNotFound
	}
	if trip.OwnerID != userID {
		return nil, utils.ErrForbidden
	}
	if !trip.IsDraft {
		return nil, utils.ErrTripAlreadyPublished
	}

	now := nowUTC()
	trip.Status = db_models.TripStatusUpcoming
	trip.IsDraft = false
	trip.PublishedAt = &now
	if err := t.tripRepo.Save(ctx, trip); err != nil {
		return nil, utils.ErrDatabaseError
	}

	return t.GetTrip(ctx, tripID, userID)
}

func (t *TripService) ArchiveTrip(ctx context.Context, tripID, userID uuid.UUID) error {
	return t.setArchived(ctx, tripID, userID, true)
}

func (t *TripService) UnarchiveTrip(ctx context.Context, tripID, userID uuid.UUID) error {
	return t.setArchived(ctx, tripID, userID, false)
}

// Archiving is owner-only and idempotent.
func (t *TripService) setArchived(ctx context.Context, tripID, userID uuid.UUID, archived bool) error {
	trip, err := t.tripRepo.FindByID(ctx, tripID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if trip == nil {
		return utils.ErrTripNotFound
	}
	if trip.OwnerID != userID {
		return utils.ErrForbidden
	}

	trip.IsArchived = archived
	if err := t.tripRepo.Save(ctx, trip); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func (t *TripService) ShareTrip(ctx context.Context, tripID, callerID, targetID uuid.UUID, permission string) (ShareOutcome, error) {
	if !db_models.ValidPermission(permission) {
		return "", utils.ErrInvalidPermission
	}

	trip, err := t.tripRepo.FindByID(ctx, tripID)
	if err != nil {
		return "", utils.ErrDatabaseError
	}
	if trip == nil {
		return "", utils.ErrTripNotFound
	}

	if trip.OwnerID != callerID {
		if err := t.CheckAccess(ctx, tripID, callerID, db_models.PermissionAdmin); err != nil {
			return "", err
		}
	}

	if targetID == callerID {
		return "", utils.ErrShareWithSelf
	}
	if targetID == trip.OwnerID {
		return "", utils.ErrShareWithOwner
	}

	target, err := t.userRepo.FindByID(ctx, targetID)
	if err != nil {
		return "", utils.ErrDatabaseError
	}
	if target == nil {
		return "", utils.ErrUserNotFound
	}

	existing, err := t.tripRepo.FindShare(ctx, tripID, targetID)
	if err != nil {
		return "", utils.ErrDatabaseError
	}
	if existing != nil {
		if existing.Permission == permission {
			return ShareUnchanged, nil
		}
		if err := t.tripRepo.UpdateSharePermission(ctx, existing.ID, permission); err != nil {
			return "", utils.ErrDatabaseError
		}
		return ShareUpdated, nil
	}

	share := &db_models.TripShare{
		TripID:     tripID,
		UserID:     targetID,
		Permission: permission,
		CreatedBy:  callerID,
	}
	if err := t.tripRepo.InsertShare(ctx, share); err != nil {
		return "", utils.ErrDatabaseError
	}

	if err := t.tripRepo.SetIsShared(ctx, tripID, true); err != nil {
		return "", utils.ErrDatabaseError
	}

	return ShareCreated, nil
}

func (t *TripService) ListShares(ctx context.Context, tripID, userID uuid.UUID) ([]response_models.TripShareResponse, error) {
	if err := t.CheckAccess(ctx, tripID, userID, db_models.PermissionView); err != nil {
		return nil, err
	}

	shares, err := t.tripRepo.ListShares(ctx, tripID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	result := make([]response_models.TripShareResponse, 0, len(shares))
	for _, share := range shares {
		user, err := t.userRepo.FindByID(ctx, share.UserID)
		if err != nil {
			return nil, utils.ErrDatabaseError
		}
		if user == nil {
			continue
		}

		var profileImage *string
		profile, err := t.userRepo.FindProfile(ctx, share.UserID)
		if err != nil {
			return nil, utils.ErrDatabaseError
		}
		if profile != nil {
			profileImage = profile.ProfileImageURL
		}

		result = append(result, response_models.TripShareResponse{
			ID:              share.ID.String(),
			UserID:          share.UserID.String(),
			Username:        user.Username,
			FirstName:       user.FirstName,
			LastName:        user.LastName,
			Email:           user.Email,
			ProfileImageURL: profileImage,
			Permission:      share.Permission,
			CreatedAt:       unixToTime(share.CreatedAt),
		})
	}

	return result, nil
}

// RemoveShare deletes the row and recomputes is_shared on every removal so
// the derived flag never drifts.
func (t *TripService) RemoveShare(ctx context.Context, tripID, callerID, targetID uuid.UUID) error {
	trip, err := t.tripRepo.FindByID(ctx, tripID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if trip == nil {
		return utils.ErrTripNotFound
	}

	if trip.OwnerID != callerID {
		if err := t.CheckAccess(ctx, tripID, callerID, db_models.PermissionAdmin); err != nil {
			return err
		}
	}

	share, err := t.tripRepo.FindShare(ctx, tripID, targetID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if share == nil {
		return utils.ErrShareNotFound
	}

	if err := t.tripRepo.DeleteShare(ctx, share.ID); err != nil {
		return utils.ErrDatabaseError
	}

	remaining, err := t.tripRepo.CountShares(ctx, tripID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if remaining == 0 {
		if err := t.tripRepo.SetIsShared(ctx, tripID, false); err != nil {
			return utils.ErrDatabaseError
		}
	}

	return nil
}

func tripToResponse(trip *db_models.Trip) *response_models.TripResponse {
	return &response_models.TripResponse{
		ID:          trip.ID.String(),
		Title:       trip.Title,
		Destination: trip.Destination,
		StartDate:   trip.StartDate,
		EndDate:     trip.EndDate,
		Notes:       trip.Notes,
		Status:      trip.Status,
		IsArchived:  trip.IsArchived,
		IsDraft:     trip.IsDraft,
		IsShared:    trip.IsShared,
		OwnerID:     trip.OwnerID.String(),
		Activities:  []response_models.ActivityResponse{},
		CreatedAt:   unixToTime(trip.CreatedAt),
		UpdatedAt:   unixToTime(trip.UpdatedAt),
		PublishedAt: trip.PublishedAt,
	}
}
