package db_models

import "github.com/google/uuid"

const (
	FriendshipPending  = "pending"
	FriendshipAccepted = "accepted"
	FriendshipDeclined = "declined"
)

// Friendship is the single canonical friend-graph row. A declined row is
// retained as a terminal state and blocks re-requests between the pair.
// The composite unique index holds one direction only; the reversed pair is
// rejected in the service layer.
type Friendship struct {
	BaseModel
	RequesterID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_friendship_pair"`
	RecipientID uuid.UUID `gorm:"type:uuid;index;uniqueIndex:idx_friendship_pair"`
	Status      string
}
