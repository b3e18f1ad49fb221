package utils

import "errors"

var (
	// Not found
	ErrTripNotFound          = errors.New("trip not found")
	ErrActivityNotFound      = errors.New("activity not found")
	ErrUserNotFound          = errors.New("user not found")
	ErrProfileNotFound       = errors.New("user profile not found")
	ErrShareNotFound         = errors.New("trip is not shared with this user")
	ErrMediaNotFound         = errors.New("media not found")
	ErrFriendRequestNotFound = errors.New("friend request not found or already processed")
	ErrFriendshipNotFound    = errors.New("friendship not found")

	// Authorization
	ErrForbidden = errors.New("you don't have access to this resource")

	// Validation
	ErrInvalidInput      = errors.New("invalid input")
	ErrInvalidDateRange  = errors.New("end date must not be before start date")
	ErrWeakPassword      = errors.New("password must be at least 8 characters")
	ErrInvalidPermission = errors.New("permission must be view, edit or admin")
	ErrInvalidMediaType  = errors.New("invalid media type")
	ErrSelfFriendRequest = errors.New("cannot send a friend request to yourself")
	ErrShareWithSelf     = errors.New("you cannot share a trip with yourself")
	ErrShareWithOwner    = errors.New("you cannot share a trip with its owner")

	// Conflict
	ErrEmailAlreadyExists    = errors.New("user with this email already exists")
	ErrUsernameAlreadyExists = errors.New("user with this username already exists")
	ErrFriendRequestExists   = errors.New("a friendship or pending request already connects these users")
	ErrTripAlreadyPublished  = errors.New("trip is already published")

	// Credentials / tokens
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")

	// Infrastructure
	ErrDatabaseError       = errors.New("database error")
	ErrUpstreamUnavailable = errors.New("upstream provider unavailable")
)
