package profile

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/centung-app/auth-api/internal/api/auth"
	"github.com/centung-app/auth-api/internal/types"
)

// MockProfileService is a mock implementation of the ProfileService interface
type MockProfileService struct {
	mock.Mock
}

func (m *MockProfileService) UpdateProfile(ctx context.Context, userID string, req UpdateProfileRequest) error {
	args := m.Called(ctx, userID, req)
	return args.Error(0)
}

func (m *MockProfileService) UploadPhoto(ctx context.Context, userID, filename, contentType string, size int64, body io.Reader) (string, error) {
	args := m.Called(ctx, userID, filename, contentType, size, body)
	return args.String(0), args.Error(1)
}

func withClaims(req *http.Request) *http.Request {
	claims := &types.Claims{UserID: "user123", Username: "alice01", Email: "a@example.com"}
	ctx := context.WithValue(req.Context(), auth.ClaimsKey, claims)
	return req.WithContext(ctx)
}

func TestGetProfileHandler(t *testing.T) {
	handler := NewProfileHandler(new(MockProfileService), slog.Default())

	t.Run("EchoesClaims", func(t *testing.T) {
		req := withClaims(httptest.NewRequest(http.MethodGet, "/profile", nil))
		w := httptest.NewRecorder()

		handler.GetProfile(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response ProfileResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "alice01", response.User.Username)
		assert.Equal(t, "a@example.com", response.User.Email)
	})

	t.Run("NoClaimsInContext", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/profile", nil)
		w := httptest.NewRecorder()

		handler.GetProfile(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestUpdateProfileHandler(t *testing.T) {
	mockService := new(MockProfileService)
	handler := NewProfileHandler(mockService, slog.Default())

	putJSON := func(t *testing.T, body any) *httptest.ResponseRecorder {
		t.Helper()
		b, err := json.Marshal(body)
		require.NoError(t, err)
		req := withClaims(httptest.NewRequest(http.MethodPut, "/profile", bytes.NewBuffer(b)))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		handler.UpdateProfile(w, req)
		return w
	}

	t.Run("Success", func(t *testing.T) {
		mockService.On("UpdateProfile", mock.Anything, "user123", UpdateProfileRequest{Username: "newname"}).
			Return(nil).Once()

		w := putJSON(t, map[string]string{"username": "newname"})

		assert.Equal(t, http.StatusOK, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("NoChanges", func(t *testing.T) {
		mockService.On("UpdateProfile", mock.Anything, "user123", UpdateProfileRequest{}).
			Return(types.ErrNoChanges).Once()

		w := putJSON(t, map[string]string{})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("ValidationError", func(t *testing.T) {
		mockService.On("UpdateProfile", mock.Anything, "user123", UpdateProfileRequest{Email: "nope"}).
			Return(types.NewValidationError("email", "must be a valid email address")).Once()

		w := putJSON(t, map[string]string{"email": "nope"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "email")
		mockService.AssertExpectations(t)
	})

	t.Run("UserGone", func(t *testing.T) {
		mockService.On("UpdateProfile", mock.Anything, "user123", UpdateProfileRequest{Username: "newname"}).
			Return(types.ErrNotFound).Once()

		w := putJSON(t, map[string]string{"username": "newname"})

		assert.Equal(t, http.StatusNotFound, w.Code)
		mockService.AssertExpectations(t)
	})
}

func multipartPhotoRequest(t *testing.T, fieldName, filename string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(fieldName, filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/profile/upload-photo", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return withClaims(req)
}

func TestUploadPhotoHandler(t *testing.T) {
	mockService := new(MockProfileService)
	handler := NewProfileHandler(mockService, slog.Default())

	t.Run("Success", func(t *testing.T) {
		mockService.On("UploadPhoto", mock.Anything, "user123", "avatar.png",
			mock.AnythingOfType("string"), int64(9), mock.Anything).
			Return("https://cdn.example.com/profile-photos/user123-1.png", nil).Once()

		req := multipartPhotoRequest(t, "photo", "avatar.png", []byte("png bytes"))
		w := httptest.NewRecorder()

		handler.UploadPhoto(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response UploadPhotoResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "https://cdn.example.com/profile-photos/user123-1.png", response.PhotoURL)
		mockService.AssertExpectations(t)
	})

	t.Run("MissingFile", func(t *testing.T) {
		req := multipartPhotoRequest(t, "not-photo", "avatar.png", []byte("png bytes"))
		w := httptest.NewRecorder()

		handler.UploadPhoto(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "UploadPhoto")
	})

	t.Run("DisallowedType", func(t *testing.T) {
		mockService.On("UploadPhoto", mock.Anything, "user123", "avatar.gif",
			mock.AnythingOfType("string"), int64(9), mock.Anything).
			Return("", types.NewValidationError("photo", "only JPEG and PNG images are allowed")).Once()

		req := multipartPhotoRequest(t, "photo", "avatar.gif", []byte("gif bytes"))
		w := httptest.NewRecorder()

		handler.UploadPhoto(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("StorageFailure", func(t *testing.T) {
		mockService.On("UploadPhoto", mock.Anything, "user123", "avatar.png",
			mock.AnythingOfType("string"), int64(9), mock.Anything).
			Return("", types.ErrStorage).Once()

		req := multipartPhotoRequest(t, "photo", "avatar.png", []byte("png bytes"))
		w := httptest.NewRecorder()

		handler.UploadPhoto(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("NoClaimsInContext", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/profile/upload-photo", nil)
		w := httptest.NewRecorder()

		handler.UploadPhoto(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
