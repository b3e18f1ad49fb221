package services

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"path"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"sojourn/internal/config"
	"sojourn/internal/infra"
	"sojourn/internal/models/db_models"
	"sojourn/internal/models/response_models"
	"sojourn/internal/repositories"
	"sojourn/pkg/utils"
)

type MediaUpload struct {
	FileName    string
	ContentType string
	Data        []byte
	Title       string
	Description *string
	MediaType   string
}

type TripPhotoUpload struct {
	FileName    string
	ContentType string
	Data        []byte
	ActivityID  *uuid.UUID
	Caption     *string
}

type MediaServiceInterface interface {
	Upload(ctx context.Context, userID uuid.UUID, upload MediaUpload) (*response_models.MediaResponse, error)
	Get(ctx context.Context, mediaID, userID uuid.UUID) (*response_models.MediaResponse, error)
	List(ctx context.Context, userID uuid.UUID, mediaType *string, limit, offset int) ([]response_models.MediaResponse, error)
	Delete(ctx context.Context, mediaID, userID uuid.UUID) error

	UploadTripPhoto(ctx context.Context, tripID, userID uuid.UUID, upload TripPhotoUpload) (*response_models.TripImageResponse, error)
	ListTripPhotos(ctx context.Context, tripID, userID uuid.UUID) ([]response_models.TripImageResponse, error)
	DeleteTripPhoto(ctx context.Context, tripID, photoID, userID uuid.UUID) error
}

type MediaService struct {
	mediaRepo        repositories.MediaRepository
	storage          infra.ObjectStorage
	access           TripAccessChecker
	mediaThumbPx     int
	tripPhotoThumbPx int
	logger           zerolog.Logger
}

func NewMediaService(
	mediaRepo repositories.MediaRepository,
	storage infra.ObjectStorage,
	access TripAccessChecker,
	cfg *config.Config,
	logger zerolog.Logger,
) MediaServiceInterface {
	return &MediaService{
		mediaRepo:        mediaRepo,
		storage:          storage,
		access:           access,
		mediaThumbPx:     cfg.MediaThumbnailPx,
		tripPhotoThumbPx: cfg.TripPhotoThumbnailPx,
		logger:           logger,
	}
}

func (m *MediaService) Upload(ctx context.Context, userID uuid.UUID, upload MediaUpload) (*response_models.MediaResponse, error) {
	if upload.MediaType == "" {
		upload.MediaType = mediaTypeFromContentType(upload.ContentType)
	}
	if !db_models.ValidMediaType(upload.MediaType) {
		return nil, utils.ErrInvalidMediaType
	}
	if len(upload.Data) == 0 {
		return nil, utils.ErrInvalidInput
	}

	id := uuid.New()
	key := fmt.Sprintf("media/%s/%s%s", userID, id, safeExt(upload.FileName))

	url, err := m.storage.Put(ctx, key, upload.ContentType, upload.Data)
	if err != nil {
		m.logger.Error().Err(err).Str("key", key).Msg("media upload failed")
		return nil, utils.ErrUpstreamUnavailable
	}

	var thumbnailURL *string
	if upload.MediaType == db_models.MediaTypeImage {
		thumbnailURL = m.storeThumbnail(ctx, key, upload.Data, m.mediaThumbPx)
	}

	title := upload.Title
	if title == "" {
		title = upload.FileName
	}

	media := &db_models.Media{
		UserID:       userID,
		Title:        title,
		Description:  upload.Description,
		FileName:     upload.FileName,
		FileSize:     int64(len(upload.Data)),
		FileType:     upload.ContentType,
		MediaType:    upload.MediaType,
		URL:          url,
		ThumbnailURL: thumbnailURL,
		Status:       "ready",
	}
	media.ID = id
	if err := m.mediaRepo.Insert(ctx, media); err != nil {
		return nil, utils.ErrDatabaseError
	}

	return mediaToResponse(media), nil
}

func (m *MediaService) Get(ctx context.Context, mediaID, userID uuid.UUID) (*response_models.MediaResponse, error) {
	media, err := m.ownedMedia(ctx, mediaID, userID)
	if err != nil {
		return nil, err
	}
	return mediaToResponse(media), nil
}

func (m *MediaService) List(ctx context.Context, userID uuid.UUID, mediaType *string, limit, offset int) ([]response_models.MediaResponse, error) {
	if mediaType != nil && !db_models.ValidMediaType(*mediaType) {
		return nil, utils.ErrInvalidMediaType
	}
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	items, err := m.mediaRepo.ListByUser(ctx, userID, mediaType, limit, offset)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	result := make([]response_models.MediaResponse, 0, len(items))
	for i := range items {
		result = append(result, *mediaToResponse(&items[i]))
	}
	return result, nil
}

// Delete removes the row first; blob deletion is best effort and never fails
// the call once the record is gone.
func (m *MediaService) Delete(ctx context.Context, mediaID, userID uuid.UUID) error {
	media, err := m.ownedMedia(ctx, mediaID, userID)
	if err != nil {
		return err
	}

	if err := m.mediaRepo.Delete(ctx, media.ID); err != nil {
		return utils.ErrDatabaseError
	}

	m.deleteBlob(ctx, media.URL)
	if media.ThumbnailURL != nil {
		m.deleteBlob(ctx, *media.ThumbnailURL)
	}
	return nil
}

// Media is private to its uploader; other callers get a 404.
func (m *MediaService) ownedMedia(ctx context.Context, mediaID, userID uuid.UUID) (*db_models.Media, error) {
	media, err := m.mediaRepo.FindByID(ctx, mediaID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if media == nil || media.UserID != userID {
		return nil, utils.ErrMediaNotFound
	}
	return media, nil
}

func (m *MediaService) UploadTripPhoto(ctx context.Context, tripID, userID uuid.UUID, upload TripPhotoUpload) (*response_models.TripImageResponse, error) {
	if err := m.access.CheckAccess(ctx, tripID, userID, db_models.PermissionEdit); err != nil {
		return nil, err
	}
	if len(upload.Data) == 0 {
		return nil, utils.ErrInvalidInput
	}
	if mediaTypeFromContentType(upload.ContentType) != db_models.MediaTypeImage {
		return nil, utils.ErrInvalidMediaType
	}

	id := uuid.New()
	key := fmt.Sprintf("trips/%s/%s%s", tripID, id, safeExt(upload.FileName))

	url, err := m.storage.Put(ctx, key, upload.ContentType, upload.Data)
	if err != nil {
		m.logger.Error().Err(err).Str("key", key).Msg("trip photo upload failed")
		return nil, utils.ErrUpstreamUnavailable
	}

	thumbnailURL := m.storeThumbnail(ctx, key, upload.Data, m.tripPhotoThumbPx)

	img := &db_models.TripImage{
		TripID:       tripID,
		ActivityID:   upload.ActivityID,
		URL:          url,
		ThumbnailURL: thumbnailURL,
		Caption:      upload.Caption,
	}
	img.ID = id
	if err := m.mediaRepo.InsertTripImage(ctx, img); err != nil {
		return nil, utils.ErrDatabaseError
	}

	return tripImageToResponse(img), nil
}

func (m *MediaService) ListTripPhotos(ctx context.Context, tripID, userID uuid.UUID) ([]response_models.TripImageResponse, error) {
	if err := m.access.CheckAccess(ctx, tripID, userID, db_models.PermissionView); err != nil {
		return nil, err
	}

	images, err := m.mediaRepo.ListTripImages(ctx, tripID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	result := make([]response_models.TripImageResponse, 0, len(images))
	for i := range images {
		result = append(result, *tripImageToResponse(&images[i]))
	}
	return result, nil
}

func (m *MediaService) DeleteTripPhoto(ctx context.Context, tripID, photoID, userID uuid.UUID) error {
	if err := m.access.CheckAccess(ctx, tripID, userID, db_models.PermissionEdit); err != nil {
		return err
	}

	img, err := m.mediaRepo.FindTripImage(ctx, photoID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if img == nil || img.TripID != tripID {
		return utils.ErrMediaNotFound
	}

	if err := m.mediaRepo.DeleteTripImage(ctx, img.ID); err != nil {
		return utils.ErrDatabaseError
	}

	m.deleteBlob(ctx, img.URL)
	if img.ThumbnailURL != nil {
		m.deleteBlob(ctx, *img.ThumbnailURL)
	}
	return nil
}

// storeThumbnail resizes to a square-bounded thumbnail and uploads it next to
// the original. PNG sources keep PNG (transparency survives), everything else
// re-encodes as JPEG. Failures only cost the thumbnail.
func (m *MediaService) storeThumbnail(ctx context.Context, originalKey string, data []byte, px int) *string {
	_, srcFormat, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		m.logger.Warn().Err(err).Str("key", originalKey).Msg("thumbnail sniff failed")
		return nil
	}

	src, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		m.logger.Warn().Err(err).Str("key", originalKey).Msg("thumbnail decode failed")
		return nil
	}

	thumb := imaging.Fit(src, px, px, imaging.Lanczos)

	format, suffix, contentType := imaging.JPEG, "_thumb.jpg", "image/jpeg"
	if srcFormat == "png" {
		format, suffix, contentType = imaging.PNG, "_thumb.png", "image/png"
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, format, imaging.JPEGQuality(85)); err != nil {
		m.logger.Warn().Err(err).Str("key", originalKey).Msg("thumbnail encode failed")
		return nil
	}

	ext := path.Ext(originalKey)
	thumbKey := strings.TrimSuffix(originalKey, ext) + suffix
	url, err := m.storage.Put(ctx, thumbKey, contentType, buf.Bytes())
	if err != nil {
		m.logger.Warn().Err(err).Str("key", thumbKey).Msg("thumbnail upload failed")
		return nil
	}
	return &url
}

func (m *MediaService) deleteBlob(ctx context.Context, url string) {
	key := m.storage.KeyFromURL(url)
	if key == "" {
		return
	}
	if err := m.storage.Delete(ctx, key); err != nil {
		m.logger.Warn().Err(err).Str("key", key).Msg("blob delete failed")
	}
}

func mediaTypeFromContentType(contentType string) string {
	switch {
	case strings.HasPrefix(contentType, "image/"):
		return db_models.MediaTypeImage
	case strings.HasPrefix(contentType, "video/"):
		return db_models.MediaTypeVideo
	case strings.HasPrefix(contentType, "audio/"):
		return db_models.MediaTypeAudio
	default:
		return db_models.MediaTypeDocument
	}
}

func safeExt(fileName string) string {
	ext := strings.ToLower(path.Ext(fileName))
	if len(ext) > 10 {
		return ""
	}
	return ext
}

func mediaToResponse(media *db_models.Media) *response_models.MediaResponse {
	return &response_models.MediaResponse{
		ID:           media.ID.String(),
		UserID:       media.UserID.String(),
		Title:        media.Title,
		Description:  media.Description,
		FileName:     media.FileName,
		FileSize:     media.FileSize,
		FileType:     media.FileType,
		MediaType:    media.MediaType,
		URL:          media.URL,
		ThumbnailURL: media.ThumbnailURL,
		CreatedAt:    unixToTime(media.CreatedAt),
	}
}

func tripImageToResponse(img *db_models.TripImage) *response_models.TripImageResponse {
	var activityID *string
	if img.ActivityID != nil {
		s := img.ActivityID.String()
		activityID = &s
	}
	return &response_models.TripImageResponse{
		ID:           img.ID.String(),
		TripID:       img.TripID.String(),
		ActivityID:   activityID,
		URL:          img.URL,
		ThumbnailURL: img.ThumbnailURL,
		Caption:      img.Caption,
	}
}
