package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"alcyxob/reptrack/internal/domain"
	"alcyxob/reptrack/internal/repository"
	"alcyxob/reptrack/internal/storage"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrPhotoNotFound     = errors.New("progress photo not found")
	ErrPhotoAccessDenied = errors.New("access denied to this progress photo")
	ErrUnsupportedUpload = errors.New("only image uploads are supported")
	ErrUploadURLError    = errors.New("failed to generate upload URL")
	ErrDownloadURLError  = errors.New("failed to generate download URL")
	ErrObjectKeyMismatch = errors.New("object key does not belong to this user")
)

// UploadURLResponse holds the presigned URL plus the key the client reports
// back when confirming the upload.
type UploadURLResponse struct {
	UploadURL string `json:"uploadUrl"`
	ObjectKey string `json:"objectKey"`
}

// PhotoService manages progress photos. Images go to S3 through presigned
// URLs; only the metadata passes through this service.
type PhotoService interface {
	RequestUploadURL(ctx context.Context, userID primitive.ObjectID, contentType string) (*UploadURLResponse, error)
	ConfirmUpload(ctx context.Context, userID primitive.ObjectID, objectKey, fileName string, fileSize int64, contentType, note string) (*domain.ProgressPhoto, error)
	GetPhotos(ctx context.Context, userID primitive.ObjectID) ([]domain.ProgressPhoto, error)
	GetPhotoDownloadURL(ctx context.Context, userID, photoID primitive.ObjectID) (string, error)
	DeletePhoto(ctx context.Context, userID, photoID primitive.ObjectID) error
}

// photoService implements the PhotoService interface.
type photoService struct {
	photoRepo   repository.PhotoRepository
	fileStorage storage.FileStorage
	log         *logrus.Logger
}

// NewPhotoService creates a new instance of photoService.
func NewPhotoService(photoRepo repository.PhotoRepository, fileStorage storage.FileStorage, log *logrus.Logger) PhotoService {
	return &photoService{
		photoRepo:   photoRepo,
		fileStorage: fileStorage,
		log:         log,
	}
}

// RequestUploadURL generates a presigned PUT URL under a fresh object key
// scoped to the user.
func (s *photoService) RequestUploadURL(ctx context.Context, userID primitive.ObjectID, contentType string) (*UploadURLResponse, error) {
	if userID == primitive.NilObjectID {
		return nil, errors.New("user ID is required to request an upload URL")
	}
	if !strings.HasPrefix(contentType, "image/") {
		return nil, ErrUnsupportedUpload
	}

	uniqueID := uuid.NewString()
	fileExtension := ""
	parts := strings.Split(contentType, "/")
	if len(parts) == 2 {
		fileExtension = parts[1]
	}
	objectKey := path.Join("photos", userID.Hex(), fmt.Sprintf("%s.%s", uniqueID, fileExtension))

	uploadURL, err := s.fileStorage.GeneratePresignedUploadURL(ctx, objectKey, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		s.log.WithError(err).Error("failed to presign photo upload URL")
		return nil, ErrUploadURLError
	}

	return &UploadURLResponse{
		UploadURL: uploadURL,
		ObjectKey: objectKey,
	}, nil
}

// ConfirmUpload records the photo metadata after the client has PUT the
// image to S3 through the presigned URL.
func (s *photoService) ConfirmUpload(ctx context.Context, userID primitive.ObjectID, objectKey, fileName string, fileSize int64, contentType, note string) (*domain.ProgressPhoto, error) {
	if userID == primitive.NilObjectID || objectKey == "" {
		return nil, errors.New("user ID and object key are required")
	}
	// Keys are issued per user; a confirm for someone else's key is rejected.
	if !strings.HasPrefix(objectKey, path.Join("photos", userID.Hex())+"/") {
		return nil, ErrObjectKeyMismatch
	}

	photo := &domain.ProgressPhoto{
		UserID:      userID,
		S3ObjectKey: objectKey,
		FileName:    fileName,
		ContentType: contentType,
		Size:        fileSize,
		Note:        note,
		UploadedAt:  time.Now().UTC(),
	}

	photoID, err := s.photoRepo.Create(ctx, photo)
	if err != nil {
		return nil, err
	}
	photo.ID = photoID
	return photo, nil
}

// GetPhotos lists the user's progress photo metadata, newest first.
func (s *photoService) GetPhotos(ctx context.Context, userID primitive.ObjectID) ([]domain.ProgressPhoto, error) {
	return s.photoRepo.GetByUserID(ctx, userID)
}

// GetPhotoDownloadURL presigns a GET URL for one of the user's photos.
func (s *photoService) GetPhotoDownloadURL(ctx context.Context, userID, photoID primitive.ObjectID) (string, error) {
	photo, err := s.getOwnedPhoto(ctx, userID, photoID)
	if err != nil {
		return "", err
	}

	downloadURL, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, photo.S3ObjectKey, storage.DefaultPresignedURLExpiry)
	if err != nil {
		s.log.WithError(err).Error("failed to presign photo download URL")
		return "", ErrDownloadURLError
	}
	return downloadURL, nil
}

// DeletePhoto removes the image from S3 and then the metadata record. A
// failed S3 delete leaves the metadata in place so the delete can be retried.
func (s *photoService) DeletePhoto(ctx context.Context, userID, photoID primitive.ObjectID) error {
	photo, err := s.getOwnedPhoto(ctx, userID, photoID)
	if err != nil {
		return err
	}

	if err := s.fileStorage.DeleteObject(ctx, photo.S3ObjectKey); err != nil {
		return err
	}

	err = s.photoRepo.Delete(ctx, photoID, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrPhotoNotFound
	}
	return err
}

func (s *photoService) getOwnedPhoto(ctx context.Context, userID, photoID primitive.ObjectID) (*domain.ProgressPhoto, error) {
	photo, err := s.photoRepo.GetByID(ctx, photoID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPhotoNotFound
		}
		return nil, err
	}
	if photo.UserID != userID {
		return nil, ErrPhotoAccessDenied
	}
	return photo, nil
}
