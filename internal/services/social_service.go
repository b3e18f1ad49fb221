package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"sojourn/internal/models/db_models"
	"sojourn/internal/models/response_models"
	"sojourn/internal/repositories"
	"sojourn/pkg/utils"
)

type SocialServiceInterface interface {
	SendFriendRequest(ctx context.Context, requesterID, recipientID uuid.UUID) (*response_models.FriendRequestResponse, error)
	AcceptFriendRequest(ctx context.Context, requestID, callerID uuid.UUID) (*response_models.FriendRequestResponse, error)
	DeclineFriendRequest(ctx context.Context, requestID, callerID uuid.UUID) error
	ListPendingRequests(ctx context.Context, userID uuid.UUID) ([]response_models.FriendRequestResponse, error)
	ListFriends(ctx context.Context, userID uuid.UUID) ([]response_models.FriendResponse, error)
	RemoveFriend(ctx context.Context, callerID, friendID uuid.UUID) error
	MutualFriends(ctx context.Context, callerID, otherID uuid.UUID) ([]response_models.FriendResponse, error)
}

type SocialService struct {
	friendshipRepo repositories.FriendshipRepository
	userRepo       repositories.UserRepository
	logger         zerolog.Logger
}

func NewSocialService(
	friendshipRepo repositories.FriendshipRepository,
	userRepo repositories.UserRepository,
	logger zerolog.Logger,
) SocialServiceInterface {
	return &SocialService{
		friendshipRepo: friendshipRepo,
		userRepo:       userRepo,
		logger:         logger,
	}
}

// SendFriendRequest refuses when any row already connects the pair, in
// either direction and in any state. A declined row therefore blocks
// re-requesting.
func (s *SocialService) SendFriendRequest(ctx context.Context, requesterID, recipientID uuid.UUID) (*response_models.FriendRequestResponse, error) {
	if requesterID == recipientID {
		return nil, utils.ErrSelfFriendRequest
	}

	recipient, err := s.userRepo.FindByID(ctx, recipientID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if recipient == nil {
		return nil, utils.ErrUserNotFound
	}

	existing, err := s.friendshipRepo.FindBetween(ctx, requesterID, recipientID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if existing != nil {
		return nil, utils.ErrFriendRequestExists
	}

	friendship := &db_models.Friendship{
		RequesterID: requesterID,
		RecipientID: recipientID,
		Status:      db_models.FriendshipPending,
	}
	if err := s.friendshipRepo.Insert(ctx, friendship); err != nil {
		return nil, utils.ErrDatabaseError
	}

	return s.requestToResponse(ctx, friendship)
}

func (s *SocialService) AcceptFriendRequest(ctx context.Context, requestID, callerID uuid.UUID) (*response_models.FriendRequestResponse, error) {
	friendship, err := s.pendingForRecipient(ctx, requestID, callerID)
	if err != nil {
		return nil, err
	}

	if err := s.friendshipRepo.UpdateStatus(ctx, friendship.ID, db_models.FriendshipAccepted); err != nil {
		return nil, utils.ErrDatabaseError
	}
	friendship.Status = db_models.FriendshipAccepted

	return s.requestToResponse(ctx, friendship)
}

// DeclineFriendRequest keeps the row in declined state. The pair stays
// blocked from new requests until the recipient removes the record.
func (s *SocialService) DeclineFriendRequest(ctx context.Context, requestID, callerID uuid.UUID) error {
	friendship, err := s.pendingForRecipient(ctx, requestID, callerID)
	if err != nil {
		return err
	}

	if err := s.friendshipRepo.UpdateStatus(ctx, friendship.ID, db_models.FriendshipDeclined); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

// Only the recipient of a still-pending request may act on it. Requests
// addressed to someone else 404 rather than 403 to avoid leaking their
// existence.
func (s *SocialService) pendingForRecipient(ctx context.Context, requestID, callerID uuid.UUID) (*db_models.Friendship, error) {
	friendship, err := s.friendshipRepo.FindByID(ctx, requestID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if friendship == nil ||
		friendship.RecipientID != callerID ||
		friendship.Status != db_models.FriendshipPending {
		return nil, utils.ErrFriendRequestNotFound
	}
	return friendship, nil
}

func (s *SocialService) ListPendingRequests(ctx context.Context, userID uuid.UUID) ([]response_models.FriendRequestResponse, error) {
	pending, err := s.friendshipRepo.ListPendingFor(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	result := make([]response_models.FriendRequestResponse, 0, len(pending))
	for i := range pending {
		resp, err := s.requestToResponse(ctx, &pending[i])
		if err != nil {
			return nil, err
		}
		result = append(result, *resp)
	}
	return result, nil
}

func (s *SocialService) ListFriends(ctx context.Context, userID uuid.UUID) ([]response_models.FriendResponse, error) {
	friendships, err := s.friendshipRepo.ListAcceptedFor(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	result := make([]response_models.FriendResponse, 0, len(friendships))
	for _, friendship := range friendships {
		friendID := friendship.RequesterID
		if friendID == userID {
			friendID = friendship.RecipientID
		}

		friend, err := s.userRepo.FindByID(ctx, friendID)
		if err != nil {
			return nil, utils.ErrDatabaseError
		}
		if friend == nil {
			continue
		}
		result = append(result, friendToResponse(friend))
	}
	return result, nil
}

func (s *SocialService) RemoveFriend(ctx context.Context, callerID, friendID uuid.UUID) error {
	friendship, err := s.friendshipRepo.FindAcceptedBetween(ctx, callerID, friendID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if friendship == nil {
		return utils.ErrFriendshipNotFound
	}

	if err := s.friendshipRepo.Delete(ctx, friendship.ID); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

// MutualFriends intersects the two accepted-friend sets in memory.
func (s *SocialService) MutualFriends(ctx context.Context, callerID, otherID uuid.UUID) ([]response_models.FriendResponse, error) {
	other, err := s.userRepo.FindByID(ctx, otherID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if other == nil {
		return nil, utils.ErrUserNotFound
	}

	mine, err := s.friendshipRepo.ListAcceptedFor(ctx, callerID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	theirs, err := s.friendshipRepo.ListAcceptedFor(ctx, otherID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	otherSet := make(map[uuid.UUID]struct{}, len(theirs))
	for _, friendship := range theirs {
		otherSet[counterpart(friendship, otherID)] = struct{}{}
	}

	result := make([]response_models.FriendResponse, 0)
	for _, friendship := range mine {
		id := counterpart(friendship, callerID)
		if _, ok := otherSet[id]; !ok {
			continue
		}

		friend, err := s.userRepo.FindByID(ctx, id)
		if err != nil {
			return nil, utils.ErrDatabaseError
		}
		if friend == nil {
			continue
		}
		result = append(result, friendToResponse(friend))
	}
	return result, nil
}

func counterpart(friendship db_models.Friendship, userID uuid.UUID) uuid.UUID {
	if friendship.RequesterID == userID {
		return friendship.RecipientID
	}
	return friendship.RequesterID
}

func (s *SocialService) requestToResponse(ctx context.Context, friendship *db_models.Friendship) (*response_models.FriendRequestResponse, error) {
	resp := &response_models.FriendRequestResponse{
		ID:          friendship.ID.String(),
		RequesterID: friendship.RequesterID.String(),
		RecipientID: friendship.RecipientID.String(),
		Status:      friendship.Status,
		CreatedAt:   unixToTime(friendship.CreatedAt),
	}

	requester, err := s.userRepo.FindByID(ctx, friendship.RequesterID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if requester != nil {
		r := friendToResponse(requester)
		resp.Requester = &r
	}

	return resp, nil
}

func friendToResponse(user *db_models.User) response_models.FriendResponse {
	return response_models.FriendResponse{
		ID:        user.ID.String(),
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		CreatedAt: unixToTime(user.CreatedAt),
	}
}
