package auth

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bboom-app/bboom-api/internal/api"
)

// MockAuthService is a mock implementation of the AuthService interface
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*RegisterResponse), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, username, password string) (string, string, error) {
	args := m.Called(ctx, username, password)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockAuthService) RefreshSession(ctx context.Context, refreshToken string) (string, string, error) {
	args := m.Called(ctx, refreshToken)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockAuthService) AuthenticateUser(ctx context.Context, username, password string) (*User, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func postJSON(t *testing.T, handler http.HandlerFunc, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	handler(rr, req)
	return rr
}

func TestRegisterHandler(t *testing.T) {
	logger := slog.Default()

	t.Run("Created", func(t *testing.T) {
		mockService := new(MockAuthService)
		handler := NewHandlerImpl(mockService, logger)

		userID := uuid.New()
		mockService.On("Register", mock.Anything, RegisterRequest{
			Username:       "alice",
			Email:          "alice@example.com",
			Password:       "Str0ngPass!",
			PasswordRepeat: "Str0ngPass!",
		}).Return(&RegisterResponse{ID: userID, Username: "alice", Email: "alice@example.com"}, nil).Once()

		rr := postJSON(t, handler.Register, "/api/users/reg/",
			`{"username":"alice","email":"alice@example.com","password":"Str0ngPass!","password_repeat":"Str0ngPass!"}`)

		assert.Equal(t, http.StatusCreated, rr.Code)
		var resp RegisterResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, userID, resp.ID)
		assert.Equal(t, "alice", resp.Username)
		mockService.AssertExpectations(t)
	})

	t.Run("PasswordMismatch", func(t *testing.T) {
		mockService := new(MockAuthService)
		handler := NewHandlerImpl(mockService, logger)

		mockService.On("Register", mock.Anything, mock.AnythingOfType("auth.RegisterRequest")).
			Return(nil, api.FieldErrors{api.NonFieldErrors: {"Password mismatch"}}).Once()

		rr := postJSON(t, handler.Register, "/api/users/reg/",
			`{"username":"alice","password":"Str0ngPass!","password_repeat":"Other1234!"}`)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.JSONEq(t, `{"non_field_errors":["Password mismatch"]}`, rr.Body.String())
	})

	t.Run("DuplicateUsername", func(t *testing.T) {
		mockService := new(MockAuthService)
		handler := NewHandlerImpl(mockService, logger)

		mockService.On("Register", mock.Anything, mock.AnythingOfType("auth.RegisterRequest")).
			Return(nil, api.ErrConflict).Once()

		rr := postJSON(t, handler.Register, "/api/users/reg/",
			`{"username":"alice","password":"Str0ngPass!","password_repeat":"Str0ngPass!"}`)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.JSONEq(t, `{"username":["A user with that username already exists."]}`, rr.Body.String())
	})

	t.Run("MalformedBody", func(t *testing.T) {
		mockService := new(MockAuthService)
		handler := NewHandlerImpl(mockService, logger)

		rr := postJSON(t, handler.Register, "/api/users/reg/", `{"username":`)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockService.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
	})
}

func TestLoginHandler(t *testing.T) {
	logger := slog.Default()

	t.Run("TokenPair", func(t *testing.T) {
		mockService := new(MockAuthService)
		handler := NewHandlerImpl(mockService, logger)

		mockService.On("Login", mock.Anything, "alice", "Str0ngPass!").
			Return("access-token", "refresh-token", nil).Once()

		rr := postJSON(t, handler.Login, "/api/users/auth/",
			`{"username":"alice","password":"Str0ngPass!"}`)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"access":"access-token","refresh":"refresh-token"}`, rr.Body.String())
		mockService.AssertExpectations(t)
	})

	t.Run("BadCredentials", func(t *testing.T) {
		mockService := new(MockAuthService)
		handler := NewHandlerImpl(mockService, logger)

		mockService.On("Login", mock.Anything, "alice", "wrong").
			Return("", "", api.ErrUnauthenticated).Once()

		rr := postJSON(t, handler.Login, "/api/users/auth/",
			`{"username":"alice","password":"wrong"}`)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.JSONEq(t, `{"detail":"No active account found with the given credentials"}`, rr.Body.String())
	})
}

func TestRefreshHandler(t *testing.T) {
	logger := slog.Default()

	t.Run("RotatedPair", func(t *testing.T) {
		mockService := new(MockAuthService)
		handler := NewHandlerImpl(mockService, logger)

		mockService.On("RefreshSession", mock.Anything, "old-refresh").
			Return("new-access", "new-refresh", nil).Once()

		rr := postJSON(t, handler.Refresh, "/api/users/refresh/",
			`{"refresh":"old-refresh"}`)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"access":"new-access","refresh":"new-refresh"}`, rr.Body.String())
	})

	t.Run("InvalidToken", func(t *testing.T) {
		mockService := new(MockAuthService)
		handler := NewHandlerImpl(mockService, logger)

		mockService.On("RefreshSession", mock.Anything, "stale").
			Return("", "", api.ErrUnauthenticated).Once()

		rr := postJSON(t, handler.Refresh, "/api/users/refresh/",
			`{"refresh":"stale"}`)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.JSONEq(t, `{"detail":"Token is invalid or expired"}`, rr.Body.String())
	})
}
