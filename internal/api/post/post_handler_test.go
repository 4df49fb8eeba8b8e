package post

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bboom-app/bboom-api/internal/api"
	"github.com/bboom-app/bboom-api/internal/api/auth"
)

// MockPostService is a mock implementation of the PostService interface
type MockPostService struct {
	mock.Mock
}

func (m *MockPostService) CreatePost(ctx context.Context, ownerID uuid.UUID, ownerUsername string, req CreatePostRequest) (*Post, error) {
	args := m.Called(ctx, ownerID, ownerUsername, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Post), args.Error(1)
}

func (m *MockPostService) ListPosts(ctx context.Context, ownerID uuid.UUID) ([]Post, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Post), args.Error(1)
}

func (m *MockPostService) DeletePost(ctx context.Context, ownerID uuid.UUID, postID int64) error {
	args := m.Called(ctx, ownerID, postID)
	return args.Error(0)
}

// testRouter mounts the handler under the same paths the API router uses, with
// an optional identity injected the way the auth middleware would.
func testRouter(handler *HandlerImpl, userID uuid.UUID, username string) http.Handler {
	r := chi.NewRouter()
	if userID != uuid.Nil {
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				ctx := context.WithValue(req.Context(), auth.UserIDKey, userID.String())
				ctx = context.WithValue(ctx, auth.UsernameKey, username)
				next.ServeHTTP(w, req.WithContext(ctx))
			})
		})
	}
	r.Post("/api/posts/create", handler.CreatePost)
	r.Get("/api/posts/list", handler.ListPosts)
	r.Delete("/api/posts/{id}", handler.DeletePost)
	return r
}

func TestCreatePostHandler(t *testing.T) {
	logger := slog.Default()
	ownerID := uuid.New()

	t.Run("Created", func(t *testing.T) {
		mockService := new(MockPostService)
		handler := NewHandlerImpl(mockService, logger)
		router := testRouter(handler, ownerID, "alice")

		mockService.On("CreatePost", mock.Anything, ownerID, "alice",
			CreatePostRequest{Title: "t", Body: "b"}).
			Return(&Post{ID: 1, User: "alice", Title: "t", Body: "b"}, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/posts/create",
			strings.NewReader(`{"title":"t","body":"b"}`))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.JSONEq(t, `{"id":1,"user":"alice","title":"t","body":"b"}`, rr.Body.String())
		mockService.AssertExpectations(t)
	})

	t.Run("ValidationErrors", func(t *testing.T) {
		mockService := new(MockPostService)
		handler := NewHandlerImpl(mockService, logger)
		router := testRouter(handler, ownerID, "alice")

		mockService.On("CreatePost", mock.Anything, ownerID, "alice", mock.AnythingOfType("post.CreatePostRequest")).
			Return(nil, api.FieldErrors{"title": {"This field may not be blank."}}).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/posts/create",
			strings.NewReader(`{"title":"","body":"b"}`))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.JSONEq(t, `{"title":["This field may not be blank."]}`, rr.Body.String())
	})

	t.Run("NoIdentity", func(t *testing.T) {
		mockService := new(MockPostService)
		handler := NewHandlerImpl(mockService, logger)
		router := testRouter(handler, uuid.Nil, "")

		req := httptest.NewRequest(http.MethodPost, "/api/posts/create",
			strings.NewReader(`{"title":"t","body":"b"}`))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		mockService.AssertNotCalled(t, "CreatePost",
			mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestListPostsHandler(t *testing.T) {
	logger := slog.Default()
	ownerID := uuid.New()

	t.Run("OwnPostsOnly", func(t *testing.T) {
		mockService := new(MockPostService)
		handler := NewHandlerImpl(mockService, logger)
		router := testRouter(handler, ownerID, "alice")

		mockService.On("ListPosts", mock.Anything, ownerID).
			Return([]Post{{ID: 1, User: "alice", Title: "t", Body: "b"}}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/posts/list", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		var posts []Post
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &posts))
		assert.Equal(t, []Post{{ID: 1, User: "alice", Title: "t", Body: "b"}}, posts)
	})

	t.Run("EmptyListIsJSONArray", func(t *testing.T) {
		mockService := new(MockPostService)
		handler := NewHandlerImpl(mockService, logger)
		router := testRouter(handler, ownerID, "alice")

		mockService.On("ListPosts", mock.Anything, ownerID).Return([]Post{}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/posts/list", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `[]`, rr.Body.String())
	})
}

func TestDeletePostHandler(t *testing.T) {
	logger := slog.Default()
	ownerID := uuid.New()

	t.Run("NoContent", func(t *testing.T) {
		mockService := new(MockPostService)
		handler := NewHandlerImpl(mockService, logger)
		router := testRouter(handler, ownerID, "alice")

		mockService.On("DeletePost", mock.Anything, ownerID, int64(1)).Return(nil).Once()

		req := httptest.NewRequest(http.MethodDelete, "/api/posts/1", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNoContent, rr.Code)
		assert.Empty(t, rr.Body.String())
	})

	t.Run("AlreadyDeleted", func(t *testing.T) {
		mockService := new(MockPostService)
		handler := NewHandlerImpl(mockService, logger)
		router := testRouter(handler, ownerID, "alice")

		mockService.On("DeletePost", mock.Anything, ownerID, int64(1)).
			Return(api.ErrNotFound).Once()

		req := httptest.NewRequest(http.MethodDelete, "/api/posts/1", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.JSONEq(t, `{"detail":"Not found."}`, rr.Body.String())
	})

	t.Run("NonNumericID", func(t *testing.T) {
		mockService := new(MockPostService)
		handler := NewHandlerImpl(mockService, logger)
		router := testRouter(handler, ownerID, "alice")

		req := httptest.NewRequest(http.MethodDelete, "/api/posts/abc", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.JSONEq(t, `{"detail":"Not found."}`, rr.Body.String())
		mockService.AssertNotCalled(t, "DeletePost", mock.Anything, mock.Anything, mock.Anything)
	})
}
