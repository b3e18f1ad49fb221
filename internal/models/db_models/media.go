package db_models

import "github.com/google/uuid"

const (
	MediaTypeImage    = "image"
	MediaTypeVideo    = "video"
	MediaTypeAudio    = "audio"
	MediaTypeDocument = "document"
)

func ValidMediaType(t string) bool {
	return t == MediaTypeImage || t == MediaTypeVideo || t == MediaTypeAudio || t == MediaTypeDocument
}

type Media struct {
	BaseModel
	UserID       uuid.UUID `gorm:"type:uuid;index"`
	Title        string
	Description  *string
	FileName     string
	FileSize     int64
	FileType     string
	MediaType    string
	URL          string
	ThumbnailURL *string
	Status       string
}
