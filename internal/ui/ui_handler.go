package ui

import (
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/sessions"

	"github.com/bboom-app/bboom-api/config"
	"github.com/bboom-app/bboom-api/internal/api"
	"github.com/bboom-app/bboom-api/internal/api/auth"
	"github.com/bboom-app/bboom-api/internal/api/post"
	"github.com/bboom-app/bboom-api/internal/api/user"
)

//go:embed templates/*.html
var templateFS embed.FS

const sessionName = "bboom_session"

// HandlerImpl serves the session-based HTML surface mirroring the JSON API.
// The same ownership rules apply: only the session user can add or delete
// their own posts.
type HandlerImpl struct {
	authService auth.AuthService
	userService user.UserService
	postService post.PostService
	store       sessions.Store
	templates   *template.Template
	logger      *slog.Logger
}

func NewHandlerImpl(
	authService auth.AuthService,
	userService user.UserService,
	postService post.PostService,
	sessionCfg config.SessionConfig,
	logger *slog.Logger,
) *HandlerImpl {
	store := sessions.NewCookieStore([]byte(sessionCfg.AuthKey))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   sessionCfg.MaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	return &HandlerImpl{
		authService: authService,
		userService: userService,
		postService: postService,
		store:       store,
		templates:   template.Must(template.ParseFS(templateFS, "templates/*.html")),
		logger:      logger,
	}
}

// RegisterRoutes mounts the HTML pages on the given router.
func (h *HandlerImpl) RegisterRoutes(r chi.Router) {
	r.Get("/login", h.LoginPage)
	r.Post("/login", h.Login)
	r.Get("/logout", h.Logout)
	r.Get("/user_list", h.UserList)
	r.Get("/posts/add", h.AddPostPage)
	r.Post("/posts/add", h.AddPost)
	r.Get("/posts/{userID}", h.UserPosts)
	r.Post("/posts/{id}/delete", h.DeletePost)
}

// sessionUser returns the logged-in identity, if any.
func (h *HandlerImpl) sessionUser(r *http.Request) (uuid.UUID, string, bool) {
	session, err := h.store.Get(r, sessionName)
	if err != nil {
		return uuid.Nil, "", false
	}
	idStr, ok := session.Values["user_id"].(string)
	if !ok || idStr == "" {
		return uuid.Nil, "", false
	}
	userID, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, "", false
	}
	username, _ := session.Values["username"].(string)
	return userID, username, true
}

func (h *HandlerImpl) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.ExecuteTemplate(w, name, data); err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to render template",
			slog.String("template", name), slog.Any("error", err))
	}
}

type loginPageData struct {
	Error string
}

func (h *HandlerImpl) LoginPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "login.html", loginPageData{})
}

// Login authenticates the submitted form and starts a cookie session. Failure
// re-renders the form with the same generic message the API uses.
func (h *HandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		h.render(w, r, "login.html", loginPageData{Error: auth.MsgNoActiveAccount})
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	u, err := h.authService.AuthenticateUser(ctx, username, password)
	if err != nil {
		if !errors.Is(err, api.ErrUnauthenticated) {
			h.logger.ErrorContext(ctx, "UI login failed", slog.Any("error", err))
		}
		w.WriteHeader(http.StatusUnauthorized)
		h.render(w, r, "login.html", loginPageData{Error: auth.MsgNoActiveAccount})
		return
	}

	session, _ := h.store.Get(r, sessionName)
	session.Values["user_id"] = u.ID.String()
	session.Values["username"] = u.Username
	if err := session.Save(r, w); err != nil {
		h.logger.ErrorContext(ctx, "Failed to save session", slog.Any("error", err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/posts/"+u.ID.String(), http.StatusSeeOther)
}

func (h *HandlerImpl) Logout(w http.ResponseWriter, r *http.Request) {
	session, _ := h.store.Get(r, sessionName)
	session.Options.MaxAge = -1
	if err := session.Save(r, w); err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to clear session", slog.Any("error", err))
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

type userListData struct {
	Users []user.Summary
}

func (h *HandlerImpl) UserList(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.ListUsers(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to list users", slog.Any("error", err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	h.render(w, r, "users.html", userListData{Users: users})
}

type userPostsData struct {
	Owner   *user.Summary
	Posts   []post.Post
	IsOwner bool
}

// UserPosts shows any user's posts. Add/delete controls render only for the
// session owner's own page.
func (h *HandlerImpl) UserPosts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	pageUserID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	owner, err := h.userService.GetUser(ctx, pageUserID)
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		h.logger.ErrorContext(ctx, "Failed to load user", slog.Any("error", err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	posts, err := h.postService.ListPosts(ctx, pageUserID)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to list posts", slog.Any("error", err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	sessionID, _, loggedIn := h.sessionUser(r)
	h.render(w, r, "posts.html", userPostsData{
		Owner:   owner,
		Posts:   posts,
		IsOwner: loggedIn && sessionID == pageUserID,
	})
}

type addPostData struct {
	Errors api.FieldErrors
	Title  string
	Body   string
}

func (h *HandlerImpl) AddPostPage(w http.ResponseWriter, r *http.Request) {
	if _, _, ok := h.sessionUser(r); !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	h.render(w, r, "add_post.html", addPostData{})
}

// AddPost creates a post owned by the session user.
func (h *HandlerImpl) AddPost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, username, ok := h.sessionUser(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	req := post.CreatePostRequest{
		Title: r.PostFormValue("title"),
		Body:  r.PostFormValue("body"),
	}

	if _, err := h.postService.CreatePost(ctx, userID, username, req); err != nil {
		if fieldErrors, isValidation := api.AsFieldErrors(err); isValidation {
			w.WriteHeader(http.StatusBadRequest)
			h.render(w, r, "add_post.html", addPostData{
				Errors: fieldErrors,
				Title:  req.Title,
				Body:   req.Body,
			})
			return
		}
		h.logger.ErrorContext(ctx, "Failed to create post", slog.Any("error", err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/posts/"+userID.String(), http.StatusSeeOther)
}

// DeletePost removes the session user's own post. Foreign or missing ids get
// a 404, exactly like the JSON API.
func (h *HandlerImpl) DeletePost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, _, ok := h.sessionUser(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	postID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if err := h.postService.DeletePost(ctx, userID, postID); err != nil {
		if errors.Is(err, api.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		h.logger.ErrorContext(ctx, "Failed to delete post", slog.Any("error", err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/posts/"+userID.String(), http.StatusSeeOther)
}
