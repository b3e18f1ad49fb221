package db_models

import (
	"time"

	"github.com/google/uuid"
)

const (
	TripStatusDraft     = "draft"
	TripStatusUpcoming  = "upcoming"
	TripStatusActive    = "active"
	TripStatusCompleted = "completed"
	TripStatusCancelled = "cancelled"
)

func ValidTripStatus(s string) bool {
	switch s {
	case TripStatusDraft, TripStatusUpcoming, TripStatusActive, TripStatusCompleted, TripStatusCancelled:
		return true
	}
	return false
}

const (
	PermissionView  = "view"
	PermissionEdit  = "edit"
	PermissionAdmin = "admin"
)

func ValidPermission(p string) bool {
	return p == PermissionView || p == PermissionEdit || p == PermissionAdmin
}

type Trip struct {
	BaseModel
	Title       string
	Destination string
	StartDate   time.Time
	EndDate     time.Time
	Notes       *string
	Status      string
	IsArchived  bool
	// IsDraft mirrors Status == draft and is recomputed on every status write.
	IsDraft bool
	// IsShared is derived: true iff at least one TripShare row exists.
	IsShared    bool
	OwnerID     uuid.UUID `gorm:"type:uuid;index"`
	PublishedAt *time.Time
}

// One share row per (trip, user); re-sharing updates the permission in place.
type TripShare struct {
	BaseModel
	TripID     uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_trip_share_pair"`
	UserID     uuid.UUID `gorm:"type:uuid;index;uniqueIndex:idx_trip_share_pair"`
	Permission string
	CreatedBy  uuid.UUID `gorm:"type:uuid"`
}

// TripImage with a nil ActivityID is a trip cover/gallery image.
type TripImage struct {
	BaseModel
	TripID       uuid.UUID  `gorm:"type:uuid;index"`
	ActivityID   *uuid.UUID `gorm:"type:uuid;index"`
	URL          string
	ThumbnailURL *string
	Caption      *string
	Metadata     string `gorm:"type:jsonb"`
}

// Location is shared by reference; multiple activities may point at the same
// row, so activity deletion leaves locations in place.
type Location struct {
	BaseModel
	Name      string
	Address   *string
	Latitude  *float64
	Longitude *float64
	PlaceID   *string
}
