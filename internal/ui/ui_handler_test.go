package ui

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bboom-app/bboom-api/config"
	"github.com/bboom-app/bboom-api/internal/api"
	"github.com/bboom-app/bboom-api/internal/api/auth"
	"github.com/bboom-app/bboom-api/internal/api/post"
	"github.com/bboom-app/bboom-api/internal/api/user"
)

type mockAuthService struct{ mock.Mock }

func (m *mockAuthService) Register(ctx context.Context, req auth.RegisterRequest) (*auth.RegisterResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.RegisterResponse), args.Error(1)
}

func (m *mockAuthService) Login(ctx context.Context, username, password string) (string, string, error) {
	args := m.Called(ctx, username, password)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *mockAuthService) RefreshSession(ctx context.Context, refreshToken string) (string, string, error) {
	args := m.Called(ctx, refreshToken)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *mockAuthService) AuthenticateUser(ctx context.Context, username, password string) (*auth.User, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.User), args.Error(1)
}

type mockUserService struct{ mock.Mock }

func (m *mockUserService) ListUsers(ctx context.Context) ([]user.Summary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]user.Summary), args.Error(1)
}

func (m *mockUserService) GetUser(ctx context.Context, userID uuid.UUID) (*user.Summary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.Summary), args.Error(1)
}

type mockPostService struct{ mock.Mock }

func (m *mockPostService) CreatePost(ctx context.Context, ownerID uuid.UUID, ownerUsername string, req post.CreatePostRequest) (*post.Post, error) {
	args := m.Called(ctx, ownerID, ownerUsername, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*post.Post), args.Error(1)
}

func (m *mockPostService) ListPosts(ctx context.Context, ownerID uuid.UUID) ([]post.Post, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]post.Post), args.Error(1)
}

func (m *mockPostService) DeletePost(ctx context.Context, ownerID uuid.UUID, postID int64) error {
	args := m.Called(ctx, ownerID, postID)
	return args.Error(0)
}

type uiFixture struct {
	router      chi.Router
	authService *mockAuthService
	userService *mockUserService
	postService *mockPostService
}

func newUIFixture(t *testing.T) *uiFixture {
	t.Helper()
	f := &uiFixture{
		router:      chi.NewRouter(),
		authService: new(mockAuthService),
		userService: new(mockUserService),
		postService: new(mockPostService),
	}
	handler := NewHandlerImpl(f.authService, f.userService, f.postService,
		config.SessionConfig{AuthKey: "test-session-key", MaxAge: 3600}, slog.Default())
	handler.RegisterRoutes(f.router)
	return f
}

func (f *uiFixture) postForm(target string, form url.Values, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rr := httptest.NewRecorder()
	f.router.ServeHTTP(rr, req)
	return rr
}

func (f *uiFixture) get(target string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rr := httptest.NewRecorder()
	f.router.ServeHTTP(rr, req)
	return rr
}

// login drives the real login flow and returns the session cookies.
func (f *uiFixture) login(t *testing.T, u *auth.User) []*http.Cookie {
	t.Helper()
	f.authService.On("AuthenticateUser", mock.Anything, u.Username, "Str0ngPass!").
		Return(u, nil).Once()

	rr := f.postForm("/login", url.Values{
		"username": {u.Username},
		"password": {"Str0ngPass!"},
	}, nil)
	require.Equal(t, http.StatusSeeOther, rr.Code)
	cookies := rr.Result().Cookies()
	require.NotEmpty(t, cookies)
	return cookies
}

func uiUser(username string) *auth.User {
	return &auth.User{ID: uuid.New(), Username: username, IsActive: true}
}

func TestUILogin(t *testing.T) {
	t.Run("RedirectsToOwnPosts", func(t *testing.T) {
		f := newUIFixture(t)
		u := uiUser("alice")

		cookies := f.login(t, u)

		assert.NotEmpty(t, cookies)
		f.authService.AssertExpectations(t)
	})

	t.Run("BadCredentialsRerendersForm", func(t *testing.T) {
		f := newUIFixture(t)

		f.authService.On("AuthenticateUser", mock.Anything, "alice", "wrong").
			Return(nil, api.ErrUnauthenticated).Once()

		rr := f.postForm("/login", url.Values{
			"username": {"alice"},
			"password": {"wrong"},
		}, nil)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Contains(t, rr.Body.String(), auth.MsgNoActiveAccount)
	})

	t.Run("FormPageRenders", func(t *testing.T) {
		f := newUIFixture(t)
		rr := f.get("/login", nil)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "form")
	})
}

func TestUIUserList(t *testing.T) {
	f := newUIFixture(t)

	f.userService.On("ListUsers", mock.Anything).Return([]user.Summary{
		{ID: uuid.New(), Username: "alice"},
		{ID: uuid.New(), Username: "bob"},
	}, nil).Once()

	rr := f.get("/user_list", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "alice")
	assert.Contains(t, rr.Body.String(), "bob")
}

func TestUIUserPosts(t *testing.T) {
	t.Run("VisitorSeesPostsWithoutControls", func(t *testing.T) {
		f := newUIFixture(t)
		ownerID := uuid.New()

		f.userService.On("GetUser", mock.Anything, ownerID).
			Return(&user.Summary{ID: ownerID, Username: "alice"}, nil).Once()
		f.postService.On("ListPosts", mock.Anything, ownerID).
			Return([]post.Post{{ID: 1, User: "alice", Title: "hello", Body: "world"}}, nil).Once()

		rr := f.get("/posts/"+ownerID.String(), nil)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "hello")
		assert.NotContains(t, rr.Body.String(), "Delete")
	})

	t.Run("OwnerSeesDeleteControls", func(t *testing.T) {
		f := newUIFixture(t)
		u := uiUser("alice")
		cookies := f.login(t, u)

		f.userService.On("GetUser", mock.Anything, u.ID).
			Return(&user.Summary{ID: u.ID, Username: "alice"}, nil).Once()
		f.postService.On("ListPosts", mock.Anything, u.ID).
			Return([]post.Post{{ID: 1, User: "alice", Title: "hello", Body: "world"}}, nil).Once()

		rr := f.get("/posts/"+u.ID.String(), cookies)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "Delete")
	})

	t.Run("UnknownUser", func(t *testing.T) {
		f := newUIFixture(t)
		ghostID := uuid.New()

		f.userService.On("GetUser", mock.Anything, ghostID).
			Return(nil, api.ErrNotFound).Once()

		rr := f.get("/posts/"+ghostID.String(), nil)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestUIAddPost(t *testing.T) {
	t.Run("AnonymousRedirectedToLogin", func(t *testing.T) {
		f := newUIFixture(t)

		rr := f.postForm("/posts/add", url.Values{"title": {"t"}, "body": {"b"}}, nil)

		assert.Equal(t, http.StatusSeeOther, rr.Code)
		assert.Equal(t, "/login", rr.Header().Get("Location"))
		f.postService.AssertNotCalled(t, "CreatePost",
			mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("CreatesAndRedirects", func(t *testing.T) {
		f := newUIFixture(t)
		u := uiUser("alice")
		cookies := f.login(t, u)

		f.postService.On("CreatePost", mock.Anything, u.ID, "alice",
			post.CreatePostRequest{Title: "t", Body: "b"}).
			Return(&post.Post{ID: 1, User: "alice", Title: "t", Body: "b"}, nil).Once()

		rr := f.postForm("/posts/add", url.Values{"title": {"t"}, "body": {"b"}}, cookies)

		assert.Equal(t, http.StatusSeeOther, rr.Code)
		assert.Equal(t, "/posts/"+u.ID.String(), rr.Header().Get("Location"))
	})

	t.Run("ValidationErrorsRerenderForm", func(t *testing.T) {
		f := newUIFixture(t)
		u := uiUser("alice")
		cookies := f.login(t, u)

		f.postService.On("CreatePost", mock.Anything, u.ID, "alice",
			post.CreatePostRequest{Title: "", Body: "b"}).
			Return(nil, api.FieldErrors{"title": {"This field may not be blank."}}).Once()

		rr := f.postForm("/posts/add", url.Values{"title": {""}, "body": {"b"}}, cookies)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "This field may not be blank.")
	})
}

func TestUIDeletePost(t *testing.T) {
	t.Run("OwnerDeletes", func(t *testing.T) {
		f := newUIFixture(t)
		u := uiUser("alice")
		cookies := f.login(t, u)

		f.postService.On("DeletePost", mock.Anything, u.ID, int64(1)).Return(nil).Once()

		rr := f.postForm("/posts/1/delete", nil, cookies)

		assert.Equal(t, http.StatusSeeOther, rr.Code)
		assert.Equal(t, "/posts/"+u.ID.String(), rr.Header().Get("Location"))
	})

	t.Run("ForeignPostIs404", func(t *testing.T) {
		f := newUIFixture(t)
		u := uiUser("alice")
		cookies := f.login(t, u)

		f.postService.On("DeletePost", mock.Anything, u.ID, int64(9)).
			Return(api.ErrNotFound).Once()

		rr := f.postForm("/posts/9/delete", nil, cookies)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("AnonymousRedirectedToLogin", func(t *testing.T) {
		f := newUIFixture(t)

		rr := f.postForm("/posts/1/delete", nil, nil)

		assert.Equal(t, http.StatusSeeOther, rr.Code)
		assert.Equal(t, "/login", rr.Header().Get("Location"))
	})
}
