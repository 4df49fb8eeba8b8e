package post

import (
	"context"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/bboom-app/bboom-api/app/observability/metrics"
	"github.com/bboom-app/bboom-api/internal/api"
)

var _ PostService = (*PostServiceImpl)(nil)

// PostService is the owner-scoped business logic over posts. Callers are
// identified by ID; the username only travels along so responses can render
// the owner without a second lookup.
type PostService interface {
	CreatePost(ctx context.Context, ownerID uuid.UUID, ownerUsername string, req CreatePostRequest) (*Post, error)
	ListPosts(ctx context.Context, ownerID uuid.UUID) ([]Post, error)
	DeletePost(ctx context.Context, ownerID uuid.UUID, postID int64) error
}

type PostServiceImpl struct {
	logger *slog.Logger
	repo   PostRepo
}

func NewPostService(repo PostRepo, logger *slog.Logger) *PostServiceImpl {
	return &PostServiceImpl{
		logger: logger,
		repo:   repo,
	}
}

// CreatePost validates the input and persists a post owned by the caller.
func (s *PostServiceImpl) CreatePost(ctx context.Context, ownerID uuid.UUID, ownerUsername string, req CreatePostRequest) (*Post, error) {
	if fieldErrors := validateCreate(req); fieldErrors != nil {
		return nil, fieldErrors
	}

	id, err := s.repo.CreatePost(ctx, ownerID, req.Title, req.Body)
	if err != nil {
		return nil, err
	}

	metrics.Get().PostsCreatedTotal.Add(ctx, 1)
	s.logger.InfoContext(ctx, "Post created",
		slog.Int64("post_id", id), slog.String("owner", ownerUsername))

	return &Post{
		ID:    id,
		User:  ownerUsername,
		Title: req.Title,
		Body:  req.Body,
	}, nil
}

func validateCreate(req CreatePostRequest) api.FieldErrors {
	fieldErrors := api.FieldErrors{}

	switch {
	case req.Title == "":
		fieldErrors.Add("title", "This field may not be blank.")
	case utf8.RuneCountInString(req.Title) > MaxTitleLength:
		fieldErrors.Add("title", fmt.Sprintf(
			"Ensure this field has no more than %d characters.", MaxTitleLength))
	}

	switch {
	case req.Body == "":
		fieldErrors.Add("body", "This field may not be blank.")
	case utf8.RuneCountInString(req.Body) > MaxBodyLength:
		fieldErrors.Add("body", fmt.Sprintf(
			"Ensure this field has no more than %d characters.", MaxBodyLength))
	}

	if len(fieldErrors) == 0 {
		return nil
	}
	return fieldErrors
}

// ListPosts returns the caller's posts, in creation order.
func (s *PostServiceImpl) ListPosts(ctx context.Context, ownerID uuid.UUID) ([]Post, error) {
	return s.repo.ListPostsByOwner(ctx, ownerID)
}

// DeletePost removes the caller's post. Ids the caller does not own come back
// as api.ErrNotFound.
func (s *PostServiceImpl) DeletePost(ctx context.Context, ownerID uuid.UUID, postID int64) error {
	if err := s.repo.DeletePost(ctx, ownerID, postID); err != nil {
		return err
	}
	metrics.Get().PostsDeletedTotal.Add(ctx, 1)
	return nil
}
