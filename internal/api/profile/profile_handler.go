package profile

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/centung-app/auth-api/internal/api"
	"github.com/centung-app/auth-api/internal/api/auth"
	"github.com/centung-app/auth-api/internal/types"
)

type ProfileHandler struct {
	profileService ProfileService
	logger         *slog.Logger
}

func NewProfileHandler(profileService ProfileService, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		logger:         logger,
	}
}

// GetProfile handles GET /profile. It echoes the claims decoded at token
// verification time; no store lookup is performed, so profile data can be
// stale within the token's validity window.
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	claims, ok := auth.GetClaimsFromContext(ctx)
	if !ok {
		api.ErrorResponse(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, ProfileResponse{
		Message: "Profile data",
		User:    claims,
	})
}

// UpdateProfile handles PUT /profile with a partial update body.
func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "UpdateProfile"))

	claims, ok := auth.GetClaimsFromContext(ctx)
	if !ok {
		api.ErrorResponse(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req UpdateProfileRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Failed to decode request", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	err := h.profileService.UpdateProfile(ctx, claims.UserID, req)
	if err != nil {
		var vErr *types.ValidationError
		switch {
		case errors.As(err, &vErr):
			api.ErrorResponse(w, r, http.StatusBadRequest, vErr.Error())
		case errors.Is(err, types.ErrNoChanges):
			api.ErrorResponse(w, r, http.StatusBadRequest, "No fields to update")
		case errors.Is(err, types.ErrConflict):
			api.ErrorResponse(w, r, http.StatusBadRequest, "Email or username already in use")
		case errors.Is(err, types.ErrNotFound):
			api.ErrorResponse(w, r, http.StatusNotFound, "User not found")
		default:
			l.ErrorContext(ctx, "Failed to update profile", slog.Any("error", err))
			api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to update profile")
		}
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, types.Response{
		Success: true,
		Message: "Profile updated successfully",
	})
}

// UploadPhoto handles POST /profile/upload-photo and POST /profile/photo
// (multipart form field "photo").
func (h *ProfileHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "UploadPhoto"))

	claims, ok := auth.GetClaimsFromContext(ctx)
	if !ok {
		api.ErrorResponse(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	// Hard cap on the request body; a small allowance covers the
	// multipart framing around the 5 MB payload.
	r.Body = http.MaxBytesReader(w, r.Body, MaxPhotoSize+64*1024)

	if err := r.ParseMultipartForm(MaxPhotoSize); err != nil {
		l.WarnContext(ctx, "Failed to parse multipart form", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, "Photo must be a multipart form upload of at most 5 MB")
		return
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Photo file required")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	photoURL, err := h.profileService.UploadPhoto(ctx, claims.UserID, header.Filename, contentType, header.Size, file)
	if err != nil {
		var vErr *types.ValidationError
		switch {
		case errors.As(err, &vErr):
			api.ErrorResponse(w, r, http.StatusBadRequest, vErr.Error())
		case errors.Is(err, types.ErrStorage):
			l.ErrorContext(ctx, "Photo upload failed", slog.Any("error", err))
			api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to upload photo")
		case errors.Is(err, types.ErrNotFound):
			api.ErrorResponse(w, r, http.StatusNotFound, "User not found")
		default:
			l.ErrorContext(ctx, "Photo upload failed", slog.Any("error", err))
			api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to upload photo")
		}
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, UploadPhotoResponse{
		Message:  "Profile photo uploaded successfully",
		PhotoURL: photoURL,
	})
}
