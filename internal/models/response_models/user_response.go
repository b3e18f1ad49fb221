package response_models

import "time"

type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	FirstName string    `json:"first_name,omitempty"`
	LastName  string    `json:"last_name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	IsActive  bool      `json:"is_active"`
}

type TokenPairResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	TokenType    string       `json:"token_type"`
	User         UserResponse `json:"user"`
}

type ProfileResponse struct {
	UserID                    string   `json:"user_id"`
	DarkModeEnabled           bool     `json:"dark_mode_enabled"`
	Gender                    *string  `json:"gender,omitempty"`
	Age                       *int     `json:"age,omitempty"`
	NotificationsEnabled      bool     `json:"notifications_enabled"`
	EmailNotificationsEnabled bool     `json:"email_notifications_enabled"`
	ProfileImageURL           *string  `json:"profile_image_url,omitempty"`
	PreferredClimate          *string  `json:"preferred_climate,omitempty"`
	PreferredTripType         *string  `json:"preferred_trip_type,omitempty"`
	Budget                    *string  `json:"budget,omitempty"`
	PreferredActivities       []string `json:"preferred_activities"`
	LanguagePreference        string   `json:"language_preference"`
}

type FriendResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name,omitempty"`
	LastName  string    `json:"last_name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type FriendRequestResponse struct {
	ID          string         `json:"id"`
	RequesterID string         `json:"requester_id"`
	RecipientID string         `json:"recipient_id"`
	Status      string         `json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	Requester   *FriendResponse `json:"requester,omitempty"`
}
