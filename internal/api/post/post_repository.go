package post

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/bboom-app/bboom-api/app/observability/metrics"
	"github.com/bboom-app/bboom-api/internal/api"
)

var _ PostRepo = (*PostgresPostRepo)(nil)

// PostRepo is the persistence contract for posts. Every operation that reads
// or mutates rows is scoped to the owning user.
type PostRepo interface {
	CreatePost(ctx context.Context, ownerID uuid.UUID, title, body string) (int64, error)
	ListPostsByOwner(ctx context.Context, ownerID uuid.UUID) ([]Post, error)
	DeletePost(ctx context.Context, ownerID uuid.UUID, postID int64) error
}

type PostgresPostRepo struct {
	logger *slog.Logger
	pgpool api.PGXPool
}

func NewPostgresPostRepo(pgpool api.PGXPool, logger *slog.Logger) *PostgresPostRepo {
	return &PostgresPostRepo{
		logger: logger,
		pgpool: pgpool,
	}
}

// CreatePost inserts a post owned by ownerID and returns its id.
func (r *PostgresPostRepo) CreatePost(ctx context.Context, ownerID uuid.UUID, title, body string) (int64, error) {
	var id int64
	err := r.pgpool.QueryRow(ctx,
		`INSERT INTO posts (user_id, title, body) VALUES ($1, $2, $3) RETURNING id`,
		ownerID, title, body).Scan(&id)
	if err != nil {
		metrics.Get().DbQueryErrorsTotal.Add(ctx, 1)
		return 0, fmt.Errorf("create post: insert failed: %w", err)
	}
	return id, nil
}

// ListPostsByOwner returns the owner's posts in insertion order.
func (r *PostgresPostRepo) ListPostsByOwner(ctx context.Context, ownerID uuid.UUID) ([]Post, error) {
	rows, err := r.pgpool.Query(ctx,
		`SELECT p.id, u.username, p.title, p.body
         FROM posts p
         JOIN users u ON u.id = p.user_id
         WHERE p.user_id = $1
         ORDER BY p.id`,
		ownerID)
	if err != nil {
		metrics.Get().DbQueryErrorsTotal.Add(ctx, 1)
		return nil, fmt.Errorf("list posts: query failed: %w", err)
	}
	defer rows.Close()

	posts := make([]Post, 0)
	for rows.Next() {
		var p Post
		if err := rows.Scan(&p.ID, &p.User, &p.Title, &p.Body); err != nil {
			return nil, fmt.Errorf("list posts: scan failed: %w", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list posts: rows error: %w", err)
	}
	return posts, nil
}

// DeletePost removes the post only when ownerID owns it. A missing or
// foreign-owned id both yield api.ErrNotFound, so existence of other users'
// records never leaks.
func (r *PostgresPostRepo) DeletePost(ctx context.Context, ownerID uuid.UUID, postID int64) error {
	tag, err := r.pgpool.Exec(ctx,
		`DELETE FROM posts WHERE id = $1 AND user_id = $2`,
		postID, ownerID)
	if err != nil {
		metrics.Get().DbQueryErrorsTotal.Add(ctx, 1)
		return fmt.Errorf("delete post: exec failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return api.ErrNotFound
	}
	return nil
}
