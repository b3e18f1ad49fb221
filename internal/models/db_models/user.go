package db_models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type User struct {
	BaseModel
	Email        string `gorm:"uniqueIndex"`
	Username     string `gorm:"uniqueIndex"`
	FirstName    string
	LastName     string
	PasswordHash string
	AuthProvider string
	IsActive     bool
}

// UserProfile is the secondary preference record, 1:1 with User but created
// lazily on the first profile update.
type UserProfile struct {
	BaseModel
	UserID                    uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	DarkModeEnabled           bool
	Gender                    *string
	Age                       *int
	NotificationsEnabled      bool
	EmailNotificationsEnabled bool
	ProfileImageURL           *string
	PreferredClimate          *string
	PreferredTripType         *string
	Budget                    *string
	PreferredActivities       pq.StringArray `gorm:"type:text[]"`
	LanguagePreference        string
}

// PasswordResetToken rows are single-use and expire after an hour.
type PasswordResetToken struct {
	BaseModel
	UserID    uuid.UUID `gorm:"type:uuid;index"`
	Token     string    `gorm:"uniqueIndex"`
	ExpiresAt time.Time
}
