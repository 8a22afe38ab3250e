package api

import (
	"errors"
	"fmt"
	"net/http"

	"alcyxob/reptrack/internal/domain"
	"alcyxob/reptrack/internal/service"

	"github.com/gin-gonic/gin"
)

// PhotoHandler holds the photo service dependency.
type PhotoHandler struct {
	photoService service.PhotoService
}

// NewPhotoHandler creates a new PhotoHandler.
func NewPhotoHandler(photoService service.PhotoService) *PhotoHandler {
	return &PhotoHandler{photoService: photoService}
}

// --- DTOs ---

type RequestUploadURLRequest struct {
	ContentType string `json:"contentType" binding:"required"`
}

type ConfirmUploadRequest struct {
	ObjectKey   string `json:"objectKey" binding:"required"`
	FileName    string `json:"fileName" binding:"required"`
	FileSize    int64  `json:"fileSize" binding:"required,gt=0"`
	ContentType string `json:"contentType" binding:"required"`
	Note        string `json:"note" binding:"omitempty"`
}

type PhotoDownloadResponse struct {
	DownloadURL string `json:"downloadUrl"`
}

// --- Handler Methods ---

// RequestUploadURL presigns a PUT URL for a new progress photo.
func (h *PhotoHandler) RequestUploadURL(c *gin.Context) {
	userID, ok := getUserObjectIDFromContext(c)
	if !ok {
		return
	}

	var req RequestUploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	resp, err := h.photoService.RequestUploadURL(c.Request.Context(), userID, req.ContentType)
	if err != nil {
		respondPhotoError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ConfirmUpload records the metadata after a successful direct upload.
func (h *PhotoHandler) ConfirmUpload(c *gin.Context) {
	userID, ok := getUserObjectIDFromContext(c)
	if !ok {
		return
	}

	var req ConfirmUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	photo, err := h.photoService.ConfirmUpload(c.Request.Context(), userID, req.ObjectKey, req.FileName, req.FileSize, req.ContentType, req.Note)
	if err != nil {
		respondPhotoError(c, err)
		return
	}
	c.JSON(http.StatusCreated, photo)
}

// GetPhotos lists the user's progress photo metadata.
func (h *PhotoHandler) GetPhotos(c *gin.Context) {
	userID, ok := getUserObjectIDFromContext(c)
	if !ok {
		return
	}

	photos, err := h.photoService.GetPhotos(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve photos")
		return
	}
	if photos == nil {
		photos = []domain.ProgressPhoto{}
	}
	c.JSON(http.StatusOK, photos)
}

// GetDownloadURL presigns a GET URL for one photo.
func (h *PhotoHandler) GetDownloadURL(c *gin.Context) {
	userID, ok := getUserObjectIDFromContext(c)
	if !ok {
		return
	}
	photoID, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}

	url, err := h.photoService.GetPhotoDownloadURL(c.Request.Context(), userID, photoID)
	if err != nil {
		respondPhotoError(c, err)
		return
	}
	c.JSON(http.StatusOK, PhotoDownloadResponse{DownloadURL: url})
}

// DeletePhoto removes a photo and its metadata.
func (h *PhotoHandler) DeletePhoto(c *gin.Context) {
	userID, ok := getUserObjectIDFromContext(c)
	if !ok {
		return
	}
	photoID, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.photoService.DeletePhoto(c.Request.Context(), userID, photoID); err != nil {
		respondPhotoError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func respondPhotoError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPhotoNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrPhotoAccessDenied),
		errors.Is(err, service.ErrObjectKeyMismatch):
		abortWithError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrUnsupportedUpload):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrUploadURLError),
		errors.Is(err, service.ErrDownloadURLError):
		abortWithError(c, http.StatusBadGateway, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "Photo operation failed")
	}
}
