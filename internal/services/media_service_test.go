package services

import (
	"bytes"
	"context"
	"image"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sojourn/internal/config"
	"sojourn/internal/infra"
	"sojourn/internal/models/db_models"
	"sojourn/internal/repositories"
	"sojourn/pkg/utils"
)

type fakeMediaRepo struct {
	media      map[uuid.UUID]*db_models.Media
	tripImages map[uuid.UUID]*db_models.TripImage
}

var _ repositories.MediaRepository = (*fakeMediaRepo)(nil)

func newFakeMediaRepo() *fakeMediaRepo {
	return &fakeMediaRepo{
		media:      map[uuid.UUID]*db_models.Media{},
		tripImages: map[uuid.UUID]*db_models.TripImage{},
	}
}

func (f *fakeMediaRepo) Insert(_ context.Context, media *db_models.Media) error {
	if media.ID == uuid.Nil {
		media.ID = uuid.New()
	}
	cp := *media
	f.media[media.ID] = &cp
	return nil
}

func (f *fakeMediaRepo) FindByID(_ context.Context, id uuid.UUID) (*db_models.Media, error) {
	media, ok := f.media[id]
	if !ok {
		return nil, nil
	}
	cp := *media
	return &cp, nil
}

func (f *fakeMediaRepo) ListByUser(_ context.Context, userID uuid.UUID, mediaType *string, limit, offset int) ([]db_models.Media, error) {
	var out []db_models.Media
	for _, media := range f.media {
		if media.UserID != userID {
			continue
		}
		if mediaType != nil && media.MediaType != *mediaType {
			continue
		}
		out = append(out, *media)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeMediaRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.media, id)
	return nil
}

func (f *fakeMediaRepo) InsertTripImage(_ context.Context, image *db_models.TripImage) error {
	if image.ID == uuid.Nil {
		image.ID = uuid.New()
	}
	cp := *image
	f.tripImages[image.ID] = &cp
	return nil
}

func (f *fakeMediaRepo) FindTripImage(_ context.Context, id uuid.UUID) (*db_models.TripImage, error) {
	img, ok := f.tripImages[id]
	if !ok {
		return nil, nil
	}
	cp := *img
	return &cp, nil
}

func (f *fakeMediaRepo) ListTripImages(_ context.Context, tripID uuid.UUID) ([]db_models.TripImage, error) {
	var out []db_models.TripImage
	for _, img := range f.tripImages {
		if img.TripID == tripID {
			out = append(out, *img)
		}
	}
	return out, nil
}

func (f *fakeMediaRepo) DeleteTripImage(_ context.Context, id uuid.UUID) error {
	delete(f.tripImages, id)
	return nil
}

// fakeStorage keeps blobs in a map and mints URLs the way the S3 store does.
type fakeStorage struct {
	blobs map[string][]byte
}

var _ infra.ObjectStorage = (*fakeStorage)(nil)

func newFakeStorage() *fakeStorage {
	return &fakeStorage{blobs: map[string][]byte{}}
}

func (f *fakeStorage) Put(_ context.Context, key, _ string, data []byte) (string, error) {
	cp := make([]byte, len(data))
	copy(cp, data)
	f.blobs[key] = cp
	return "https://blobs.test/" + key, nil
}

func (f *fakeStorage) Delete(_ context.Context, key string) error {
	delete(f.blobs, key)
	return nil
}

func (f *fakeStorage) KeyFromURL(url string) string {
	const prefix = "https://blobs.test/"
	if len(url) <= len(prefix) || url[:len(prefix)] != prefix {
		return ""
	}
	return url[len(prefix):]
}

type mediaFixture struct {
	svc     MediaServiceInterface
	repo    *fakeMediaRepo
	storage *fakeStorage
	trips   *tripFixture
	userID  uuid.UUID
}

func newMediaFixture(t *testing.T) *mediaFixture {
	t.Helper()
	trips := newTripFixture(t)
	repo := newFakeMediaRepo()
	storage := newFakeStorage()
	cfg := &config.Config{MediaThumbnailPx: 200, TripPhotoThumbnailPx: 300}
	return &mediaFixture{
		svc:     NewMediaService(repo, storage, trips.svc, cfg, zerolog.Nop()),
		repo:    repo,
		storage: storage,
		trips:   trips,
		userID:  trips.owner.ID,
	}
}

// pngBytes renders a solid image so the thumbnail pipeline has real pixels.
func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func jpegBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h)), nil))
	return buf.Bytes()
}

func TestUploadPNGKeepsPNGThumbnail(t *testing.T) {
	fx := newMediaFixture(t)

	resp, err := fx.svc.Upload(context.Background(), fx.userID, MediaUpload{
		FileName:    "beach.png",
		ContentType: "image/png",
		Data:        pngBytes(t, 600, 400),
	})
	require.NoError(t, err)
	assert.Equal(t, db_models.MediaTypeImage, resp.MediaType)
	require.NotNil(t, resp.ThumbnailURL)
	assert.True(t, strings.HasSuffix(*resp.ThumbnailURL, "_thumb.png"))

	key := fx.storage.KeyFromURL(*resp.ThumbnailURL)
	require.NotEmpty(t, key)
	thumb, format, err := image.Decode(bytes.NewReader(fx.storage.blobs[key]))
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	bounds := thumb.Bounds()
	assert.LessOrEqual(t, bounds.Dx(), 200)
	assert.LessOrEqual(t, bounds.Dy(), 200)
}

func TestUploadJPEGReencodesThumbnail(t *testing.T) {
	fx := newMediaFixture(t)

	resp, err := fx.svc.Upload(context.Background(), fx.userID, MediaUpload{
		FileName:    "beach.jpg",
		ContentType: "image/jpeg",
		Data:        jpegBytes(t, 600, 400),
	})
	require.NoError(t, err)
	require.NotNil(t, resp.ThumbnailURL)
	assert.True(t, strings.HasSuffix(*resp.ThumbnailURL, "_thumb.jpg"))

	key := fx.storage.KeyFromURL(*resp.ThumbnailURL)
	require.NotEmpty(t, key)
	thumb, format, err := image.Decode(bytes.NewReader(fx.storage.blobs[key]))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	bounds := thumb.Bounds()
	assert.LessOrEqual(t, bounds.Dx(), 200)
	assert.LessOrEqual(t, bounds.Dy(), 200)
}

func TestUploadInfersMediaTypeAndTitle(t *testing.T) {
	fx := newMediaFixture(t)

	resp, err := fx.svc.Upload(context.Background(), fx.userID, MediaUpload{
		FileName:    "notes.pdf",
		ContentType: "application/pdf",
		Data:        []byte("%PDF-1.4"),
	})
	require.NoError(t, err)
	assert.Equal(t, db_models.MediaTypeDocument, resp.MediaType)
	assert.Equal(t, "notes.pdf", resp.Title)
	assert.Nil(t, resp.ThumbnailURL)
}

func TestUploadRejectsUnknownMediaType(t *testing.T) {
	fx := newMediaFixture(t)

	_, err := fx.svc.Upload(context.Background(), fx.userID, MediaUpload{
		FileName:    "x.bin",
		ContentType: "application/octet-stream",
		Data:        []byte{1},
		MediaType:   "hologram",
	})
	assert.ErrorIs(t, err, utils.ErrInvalidMediaType)
}

func TestMediaIsPrivateToUploader(t *testing.T) {
	fx := newMediaFixture(t)

	resp, err := fx.svc.Upload(context.Background(), fx.userID, MediaUpload{
		FileName:    "beach.png",
		ContentType: "image/png",
		Data:        pngBytes(t, 10, 10),
	})
	require.NoError(t, err)
	mediaID, err := uuid.Parse(resp.ID)
	require.NoError(t, err)

	_, err = fx.svc.Get(context.Background(), mediaID, fx.trips.other.ID)
	assert.ErrorIs(t, err, utils.ErrMediaNotFound)

	err = fx.svc.Delete(context.Background(), mediaID, fx.trips.other.ID)
	assert.ErrorIs(t, err, utils.ErrMediaNotFound)
}

func TestDeleteRemovesBlobs(t *testing.T) {
	fx := newMediaFixture(t)
	ctx := context.Background()

	resp, err := fx.svc.Upload(ctx, fx.userID, MediaUpload{
		FileName:    "beach.png",
		ContentType: "image/png",
		Data:        pngBytes(t, 50, 50),
	})
	require.NoError(t, err)
	require.NotEmpty(t, fx.storage.blobs)

	mediaID, err := uuid.Parse(resp.ID)
	require.NoError(t, err)
	require.NoError(t, fx.svc.Delete(ctx, mediaID, fx.userID))
	assert.Empty(t, fx.storage.blobs)
}

func TestTripPhotoRequiresEditAccess(t *testing.T) {
	fx := newMediaFixture(t)
	tripID := fx.trips.createTrip(t, baseTripRequest())

	_, err := fx.svc.UploadTripPhoto(context.Background(), tripID, fx.trips.other.ID, TripPhotoUpload{
		FileName:    "view.png",
		ContentType: "image/png",
		Data:        pngBytes(t, 20, 20),
	})
	assert.ErrorIs(t, err, utils.ErrForbidden)
}

func TestTripPhotoLifecycle(t *testing.T) {
	fx := newMediaFixture(t)
	ctx := context.Background()
	tripID := fx.trips.createTrip(t, baseTripRequest())
	caption := "sunset from the terrace"

	photo, err := fx.svc.UploadTripPhoto(ctx, tripID, fx.userID, TripPhotoUpload{
		FileName:    "view.png",
		ContentType: "image/png",
		Data:        pngBytes(t, 400, 300),
		Caption:     &caption,
	})
	require.NoError(t, err)
	require.NotNil(t, photo.Caption)

	photos, err := fx.svc.ListTripPhotos(ctx, tripID, fx.userID)
	require.NoError(t, err)
	require.Len(t, photos, 1)

	photoID, err := uuid.Parse(photo.ID)
	require.NoError(t, err)
	require.NoError(t, fx.svc.DeleteTripPhoto(ctx, tripID, photoID, fx.userID))

	photos, err = fx.svc.ListTripPhotos(ctx, tripID, fx.userID)
	require.NoError(t, err)
	assert.Empty(t, photos)
}

func TestTripPhotoRejectsNonImage(t *testing.T) {
	fx := newMediaFixture(t)
	tripID := fx.trips.createTrip(t, baseTripRequest())

	_, err := fx.svc.UploadTripPhoto(context.Background(), tripID, fx.userID, TripPhotoUpload{
		FileName:    "track.mp3",
		ContentType: "audio/mpeg",
		Data:        []byte{1, 2, 3},
	})
	assert.ErrorIs(t, err, utils.ErrInvalidMediaType)
}
