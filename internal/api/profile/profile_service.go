package profile

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/centung-app/auth-api/app/storage"
	"github.com/centung-app/auth-api/internal/api/auth"
	"github.com/centung-app/auth-api/internal/types"
)

// MaxPhotoSize caps profile photo uploads at 5 MB.
const MaxPhotoSize = 5 * 1024 * 1024

var allowedPhotoTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
}

var _ ProfileService = (*ProfileServiceImpl)(nil)

type ProfileService interface {
	// UpdateProfile validates and applies a partial update. Registration
	// validation rules apply per provided field.
	UpdateProfile(ctx context.Context, userID string, req UpdateProfileRequest) error
	// UploadPhoto validates the attachment, streams it to the object store
	// and persists the resulting public URL.
	UploadPhoto(ctx context.Context, userID, filename, contentType string, size int64, body io.Reader) (string, error)
}

type ProfileServiceImpl struct {
	repo       ProfileRepo
	store      storage.ObjectStore
	bcryptCost int
	logger     *slog.Logger
}

func NewProfileService(repo ProfileRepo, store storage.ObjectStore, bcryptCost int, logger *slog.Logger) *ProfileServiceImpl {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &ProfileServiceImpl{
		repo:       repo,
		store:      store,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

func (s *ProfileServiceImpl) UpdateProfile(ctx context.Context, userID string, req UpdateProfileRequest) error {
	var params UpdateUserParams

	if req.Username != "" {
		if err := auth.ValidateUsername(req.Username); err != nil {
			return err
		}
		params.Username = &req.Username
	}
	if req.Email != "" {
		if err := auth.ValidateEmail(req.Email); err != nil {
			return err
		}
		params.Email = &req.Email
	}
	if req.Password != "" {
		if err := auth.ValidatePassword(req.Password); err != nil {
			return err
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		hashedStr := string(hashed)
		params.PasswordHash = &hashedStr
	}

	if params.Username == nil && params.Email == nil && params.PasswordHash == nil {
		return types.ErrNoChanges
	}

	return s.repo.UpdateUser(ctx, userID, params)
}

func (s *ProfileServiceImpl) UploadPhoto(ctx context.Context, userID, filename, contentType string, size int64, body io.Reader) (string, error) {
	// Size and type are rejected before any store interaction.
	if size <= 0 {
		return "", types.NewValidationError("photo", "file is empty")
	}
	if size > MaxPhotoSize {
		return "", types.NewValidationError("photo", "file exceeds the 5 MB limit")
	}

	ext := strings.ToLower(filepath.Ext(filename))
	expectedType, ok := allowedPhotoTypes[ext]
	if !ok {
		return "", types.NewValidationError("photo", "only JPEG and PNG images are allowed")
	}
	if contentType != "" && contentType != expectedType {
		return "", types.NewValidationError("photo", "content type does not match the file extension")
	}

	// Timestamped key namespaced by user ID to avoid collisions.
	key := fmt.Sprintf("profile-photos/%s-%d%s", userID, time.Now().UnixNano(), ext)

	photoURL, err := s.store.Upload(ctx, key, expectedType, body, size)
	if err != nil {
		return "", fmt.Errorf("%w: %v", types.ErrStorage, err)
	}

	if err := s.repo.SetProfilePhoto(ctx, userID, photoURL); err != nil {
		return "", err
	}

	s.logger.InfoContext(ctx, "Profile photo updated",
		slog.String("user_id", userID),
		slog.String("key", key))
	return photoURL, nil
}
