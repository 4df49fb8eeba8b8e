package post

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/bboom-app/bboom-api/internal/api"
	"github.com/bboom-app/bboom-api/internal/api/auth"
)

var _ Handler = (*HandlerImpl)(nil)

type Handler interface {
	CreatePost(w http.ResponseWriter, r *http.Request)
	ListPosts(w http.ResponseWriter, r *http.Request)
	DeletePost(w http.ResponseWriter, r *http.Request)
}

type HandlerImpl struct {
	postService PostService
	logger      *slog.Logger
}

func NewHandlerImpl(postService PostService, logger *slog.Logger) *HandlerImpl {
	return &HandlerImpl{
		postService: postService,
		logger:      logger,
	}
}

// caller extracts the authenticated identity placed in the context by the
// Authenticate middleware.
func caller(r *http.Request) (uuid.UUID, string, bool) {
	userIDStr, ok := auth.GetUserIDFromContext(r.Context())
	if !ok || userIDStr == "" {
		return uuid.Nil, "", false
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return uuid.Nil, "", false
	}
	username, _ := auth.GetUsernameFromContext(r.Context())
	return userID, username, true
}

// CreatePost godoc
// @Summary      Create post
// @Description  Create new post instance
// @Tags         Post
// @Accept       json
// @Produce      json
// @Param        body body CreatePostRequest true "Post payload"
// @Success      201 {object} Post "Created post"
// @Failure      400 {object} map[string][]string "Validation errors"
// @Failure      401 {object} map[string]string "Unauthorized"
// @Security     BearerAuth
// @Router       /posts/create/ [post]
func (h *HandlerImpl) CreatePost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "CreatePost"))

	ownerID, ownerUsername, ok := caller(r)
	if !ok {
		api.DetailResponse(w, r, http.StatusUnauthorized, auth.MsgCredentialsNotProvided)
		return
	}

	var req CreatePostRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Failed to decode request", slog.Any("error", err))
		api.DetailResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.postService.CreatePost(ctx, ownerID, ownerUsername, req)
	if err != nil {
		if fieldErrors, ok := api.AsFieldErrors(err); ok {
			api.ValidationErrorResponse(w, r, fieldErrors)
			return
		}
		l.ErrorContext(ctx, "Failed to create post", slog.Any("error", err))
		api.DetailResponse(w, r, http.StatusInternalServerError, "Failed to create post")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusCreated, created)
}

// ListPosts godoc
// @Summary      Posts list
// @Description  Get list of posts owned by the caller
// @Tags         Post
// @Produce      json
// @Success      200 {array} Post "Posts"
// @Failure      401 {object} map[string]string "Unauthorized"
// @Security     BearerAuth
// @Router       /posts/list/ [get]
func (h *HandlerImpl) ListPosts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "ListPosts"))

	ownerID, _, ok := caller(r)
	if !ok {
		api.DetailResponse(w, r, http.StatusUnauthorized, auth.MsgCredentialsNotProvided)
		return
	}

	posts, err := h.postService.ListPosts(ctx, ownerID)
	if err != nil {
		l.ErrorContext(ctx, "Failed to list posts", slog.Any("error", err))
		api.DetailResponse(w, r, http.StatusInternalServerError, "Failed to retrieve posts")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, posts)
}

// DeletePost godoc
// @Summary      Delete post
// @Description  Delete a post owned by the caller
// @Tags         Post
// @Produce      json
// @Param        id path int true "Post ID"
// @Success      204 "No content"
// @Failure      401 {object} map[string]string "Unauthorized"
// @Failure      404 {object} map[string]string "Not found or not owned"
// @Security     BearerAuth
// @Router       /posts/{id}/ [delete]
func (h *HandlerImpl) DeletePost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "DeletePost"))

	ownerID, _, ok := caller(r)
	if !ok {
		api.DetailResponse(w, r, http.StatusUnauthorized, auth.MsgCredentialsNotProvided)
		return
	}

	postID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		// Non-numeric ids match nothing, same as a missing row
		api.DetailResponse(w, r, http.StatusNotFound, "Not found.")
		return
	}

	if err := h.postService.DeletePost(ctx, ownerID, postID); err != nil {
		if errors.Is(err, api.ErrNotFound) {
			api.DetailResponse(w, r, http.StatusNotFound, "Not found.")
			return
		}
		l.ErrorContext(ctx, "Failed to delete post", slog.Any("error", err))
		api.DetailResponse(w, r, http.StatusInternalServerError, "Failed to delete post")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusNoContent, nil)
}
