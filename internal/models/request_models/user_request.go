package request_models

type UpdateProfileRequest struct {
	DarkModeEnabled           *bool    `json:"dark_mode_enabled"`
	Gender                    *string  `json:"gender"`
	Age                       *int     `json:"age"`
	NotificationsEnabled      *bool    `json:"notifications_enabled"`
	EmailNotificationsEnabled *bool    `json:"email_notifications_enabled"`
	ProfileImageURL           *string  `json:"profile_image_url"`
	PreferredClimate          *string  `json:"preferred_climate"`
	PreferredTripType         *string  `json:"preferred_trip_type"`
	Budget                    *string  `json:"budget"`
	PreferredActivities       []string `json:"preferred_activities"`
	LanguagePreference        *string  `json:"language_preference"`
}
