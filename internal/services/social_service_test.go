package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sojourn/internal/models/db_models"
	"sojourn/pkg/utils"
)

type socialFixture struct {
	svc      SocialServiceInterface
	userRepo *fakeUserRepo
	alice    *db_models.User
	bob      *db_models.User
	carol    *db_models.User
}

func newSocialFixture(t *testing.T) *socialFixture {
	t.Helper()
	userRepo := newFakeUserRepo()
	return &socialFixture{
		svc:      NewSocialService(newFakeFriendshipRepo(), userRepo, zerolog.Nop()),
		userRepo: userRepo,
		alice:    userRepo.addUser("alice@example.com", "alice"),
		bob:      userRepo.addUser("bob@example.com", "bob"),
		carol:    userRepo.addUser("carol@example.com", "carol"),
	}
}

func (fx *socialFixture) befriend(t *testing.T, a, b uuid.UUID) {
	t.Helper()
	ctx := context.Background()
	request, err := fx.svc.SendFriendRequest(ctx, a, b)
	require.NoError(t, err)
	requestID, err := uuid.Parse(request.ID)
	require.NoError(t, err)
	_, err = fx.svc.AcceptFriendRequest(ctx, requestID, b)
	require.NoError(t, err)
}

func TestSendFriendRequestRejectsSelf(t *testing.T) {
	fx := newSocialFixture(t)

	_, err := fx.svc.SendFriendRequest(context.Background(), fx.alice.ID, fx.alice.ID)
	assert.ErrorIs(t, err, utils.ErrSelfFriendRequest)
}

func TestSendFriendRequestUnknownRecipient(t *testing.T) {
	fx := newSocialFixture(t)

	_, err := fx.svc.SendFriendRequest(context.Background(), fx.alice.ID, uuid.New())
	assert.ErrorIs(t, err, utils.ErrUserNotFound)
}

func TestSendFriendRequestDuplicateEitherDirection(t *testing.T) {
	fx := newSocialFixture(t)
	ctx := context.Background()

	_, err := fx.svc.SendFriendRequest(ctx, fx.alice.ID, fx.bob.ID)
	require.NoError(t, err)

	_, err = fx.svc.SendFriendRequest(ctx, fx.alice.ID, fx.bob.ID)
	assert.ErrorIs(t, err, utils.ErrFriendRequestExists)

	_, err = fx.svc.SendFriendRequest(ctx, fx.bob.ID, fx.alice.ID)
	assert.ErrorIs(t, err, utils.ErrFriendRequestExists, "reverse direction also blocked")
}

func TestAcceptFriendRequestRecipientOnly(t *testing.T) {
	fx := newSocialFixture(t)
	ctx := context.Background()

	request, err := fx.svc.SendFriendRequest(ctx, fx.alice.ID, fx.bob.ID)
	require.NoError(t, err)
	requestID := uuid.MustParse(request.ID)

	// The requester cannot accept their own request, and the error does not
	// reveal that the request exists.
	_, err = fx.svc.AcceptFriendRequest(ctx, requestID, fx.alice.ID)
	assert.ErrorIs(t, err, utils.ErrFriendRequestNotFound)

	accepted, err := fx.svc.AcceptFriendRequest(ctx, requestID, fx.bob.ID)
	require.NoError(t, err)
	assert.Equal(t, db_models.FriendshipAccepted, accepted.Status)
}

func TestAcceptIsNotIdempotent(t *testing.T) {
	fx := newSocialFixture(t)
	ctx := context.Background()

	request, err := fx.svc.SendFriendRequest(ctx, fx.alice.ID, fx.bob.ID)
	require.NoError(t, err)
	requestID := uuid.MustParse(request.ID)

	_, err = fx.svc.AcceptFriendRequest(ctx, requestID, fx.bob.ID)
	require.NoError(t, err)
	_, err = fx.svc.AcceptFriendRequest(ctx, requestID, fx.bob.ID)
	assert.ErrorIs(t, err, utils.ErrFriendRequestNotFound, "already-processed request behaves as missing")
}

func TestDeclinedRequestBlocksReRequest(t *testing.T) {
	fx := newSocialFixture(t)
	ctx := context.Background()

	request, err := fx.svc.SendFriendRequest(ctx, fx.alice.ID, fx.bob.ID)
	require.NoError(t, err)
	require.NoError(t, fx.svc.DeclineFriendRequest(ctx, uuid.MustParse(request.ID), fx.bob.ID))

	// Declined is terminal: neither side can open a new request.
	_, err = fx.svc.SendFriendRequest(ctx, fx.alice.ID, fx.bob.ID)
	assert.ErrorIs(t, err, utils.ErrFriendRequestExists)
	_, err = fx.svc.SendFriendRequest(ctx, fx.bob.ID, fx.alice.ID)
	assert.ErrorIs(t, err, utils.ErrFriendRequestExists)
}

func TestListPendingRequestsOnlyForRecipient(t *testing.T) {
	fx := newSocialFixture(t)
	ctx := context.Background()

	_, err := fx.svc.SendFriendRequest(ctx, fx.alice.ID, fx.bob.ID)
	require.NoError(t, err)

	pending, err := fx.svc.ListPendingRequests(ctx, fx.bob.ID)
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	pending, err = fx.svc.ListPendingRequests(ctx, fx.alice.ID)
	require.NoError(t, err)
	assert.Empty(t, pending, "requester does not see their outgoing request as pending-for-them")
}

func TestRemoveFriend(t *testing.T) {
	fx := newSocialFixture(t)
	ctx := context.Background()
	fx.befriend(t, fx.alice.ID, fx.bob.ID)

	require.NoError(t, fx.svc.RemoveFriend(ctx, fx.bob.ID, fx.alice.ID))

	friends, err := fx.svc.ListFriends(ctx, fx.alice.ID)
	require.NoError(t, err)
	assert.Empty(t, friends)

	// A fresh request is allowed once the friendship row is gone.
	_, err = fx.svc.SendFriendRequest(ctx, fx.alice.ID, fx.bob.ID)
	assert.NoError(t, err)
}

func TestRemoveFriendMissingFriendship(t *testing.T) {
	fx := newSocialFixture(t)

	err := fx.svc.RemoveFriend(context.Background(), fx.alice.ID, fx.bob.ID)
	assert.ErrorIs(t, err, utils.ErrFriendshipNotFound)
}

func TestMutualFriends(t *testing.T) {
	fx := newSocialFixture(t)
	ctx := context.Background()

	// alice-carol and bob-carol: carol is the one mutual friend.
	fx.befriend(t, fx.alice.ID, fx.carol.ID)
	fx.befriend(t, fx.bob.ID, fx.carol.ID)
	fx.befriend(t, fx.alice.ID, fx.bob.ID)

	mutual, err := fx.svc.MutualFriends(ctx, fx.alice.ID, fx.bob.ID)
	require.NoError(t, err)
	require.Len(t, mutual, 1)
	assert.Equal(t, fx.carol.ID.String(), mutual[0].ID)
}
