package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/bboom-app/bboom-api/app/observability/metrics"
	"github.com/bboom-app/bboom-api/internal/api"
)

var _ UserRepo = (*PostgresUserRepo)(nil)

type UserRepo interface {
	ListUsers(ctx context.Context) ([]Summary, error)
	GetUser(ctx context.Context, userID uuid.UUID) (*Summary, error)
}

type PostgresUserRepo struct {
	logger *slog.Logger
	pgpool api.PGXPool
}

func NewPostgresUserRepo(pgpool api.PGXPool, logger *slog.Logger) *PostgresUserRepo {
	return &PostgresUserRepo{
		logger: logger,
		pgpool: pgpool,
	}
}

// ListUsers returns every user's public fields in creation order.
func (r *PostgresUserRepo) ListUsers(ctx context.Context) ([]Summary, error) {
	rows, err := r.pgpool.Query(ctx,
		`SELECT id, username, email FROM users ORDER BY created_at, id`)
	if err != nil {
		metrics.Get().DbQueryErrorsTotal.Add(ctx, 1)
		return nil, fmt.Errorf("list users: query failed: %w", err)
	}
	defer rows.Close()

	users := make([]Summary, 0)
	for rows.Next() {
		var u Summary
		if err := rows.Scan(&u.ID, &u.Username, &u.Email); err != nil {
			return nil, fmt.Errorf("list users: scan failed: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list users: rows error: %w", err)
	}
	return users, nil
}

// GetUser returns one user's public fields.
func (r *PostgresUserRepo) GetUser(ctx context.Context, userID uuid.UUID) (*Summary, error) {
	var u Summary
	err := r.pgpool.QueryRow(ctx,
		`SELECT id, username, email FROM users WHERE id = $1`, userID).
		Scan(&u.ID, &u.Username, &u.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, api.ErrNotFound
		}
		metrics.Get().DbQueryErrorsTotal.Add(ctx, 1)
		return nil, fmt.Errorf("get user: query failed: %w", err)
	}
	return &u, nil
}
