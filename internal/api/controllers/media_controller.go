package controllers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"sojourn/internal/services"
	"sojourn/pkg/utils"
)

// maxUploadBytes bounds in-memory reads of multipart uploads.
const maxUploadBytes = 25 << 20

type MediaController struct {
	mediaService services.MediaServiceInterface
}

func NewMediaController(mediaService services.MediaServiceInterface) *MediaController {
	return &MediaController{mediaService: mediaService}
}

// Upload godoc
// @Summary Upload a media file
// @Tags Media
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "File to upload"
// @Param media_type formData string true "image, video, audio or document"
// @Param title formData string false "Title"
// @Param description formData string false "Description"
// @Success 201 {object} response_models.MediaResponse
// @Security BearerAuth
// @Router /media/upload [post]
func (m *MediaController) Upload(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "File is required")
		return
	}
	if header.Size > maxUploadBytes {
		utils.RespondError(c, http.StatusBadRequest, "File too large")
		return
	}
	file, err := header.Open()
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Could not read uploaded file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Could not read uploaded file")
		return
	}

	upload := services.MediaUpload{
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
		Title:       c.PostForm("title"),
		MediaType:   c.PostForm("media_type"),
	}
	if desc := c.PostForm("description"); desc != "" {
		upload.Description = &desc
	}

	media, err := m.mediaService.Upload(c.Request.Context(), userID, upload)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondCreated(c, media, "Media uploaded")
}

// ListMine godoc
// @Summary List the caller's media
// @Tags Media
// @Produce json
// @Param media_type query string false "Filter by media type"
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {array} response_models.MediaResponse
// @Security BearerAuth
// @Router /media/user [get]
func (m *MediaController) ListMine(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var mediaType *string
	if raw := c.Query("media_type"); raw != "" {
		mediaType = &raw
	}

	media, err := m.mediaService.List(c.Request.Context(), userID, mediaType,
		queryInt(c, "limit", 20), queryInt(c, "offset", 0))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, media, "Media fetched")
}

func (m *MediaController) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	mediaID, ok := pathUUID(c, "mediaId")
	if !ok {
		return
	}

	media, err := m.mediaService.Get(c.Request.Context(), mediaID, userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, media, "Media fetched")
}

func (m *MediaController) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	mediaID, ok := pathUUID(c, "mediaId")
	if !ok {
		return
	}

	if err := m.mediaService.Delete(c.Request.Context(), mediaID, userID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Media deleted")
}
