package user

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

var _ UserService = (*UserServiceImpl)(nil)

// UserService defines the business logic contract for user operations.
type UserService interface {
	ListUsers(ctx context.Context) ([]Summary, error)
	GetUser(ctx context.Context, userID uuid.UUID) (*Summary, error)
}

type UserServiceImpl struct {
	logger *slog.Logger
	repo   UserRepo
}

func NewUserService(repo UserRepo, logger *slog.Logger) *UserServiceImpl {
	return &UserServiceImpl{
		logger: logger,
		repo:   repo,
	}
}

func (s *UserServiceImpl) ListUsers(ctx context.Context) ([]Summary, error) {
	return s.repo.ListUsers(ctx)
}

func (s *UserServiceImpl) GetUser(ctx context.Context, userID uuid.UUID) (*Summary, error) {
	return s.repo.GetUser(ctx, userID)
}
