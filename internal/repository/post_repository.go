package repository

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/maheshrc27/postpilot/internal/models"
)

var ErrNoRowsAffected = errors.New("no rows affected")

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Post, bool, error)
	Update(ctx context.Context, post *models.Post) error
	ListByAccountBetween(ctx context.Context, accountID int64, from, to time.Time) ([]*models.Post, error)
}

type postRepository struct {
	db *sql.DB
}

func NewPostRepository(db *sql.DB) PostRepository {
	return &postRepository{db: db}
}

const postColumns = `id, account_id, occasion, caption, image_url, image_prompt, linkedin_post_id, status, scheduled_for, posted_at, error, created_at`

func scanPost(row rowScanner) (*models.Post, error) {
	var post models.Post
	err := row.Scan(
		&post.ID,
		&post.AccountID,
		&post.Occasion,
		&post.Caption,
		&post.ImageURL,
		&post.ImagePrompt,
		&post.LinkedInPostID,
		&post.Status,
		&post.ScheduledFor,
		&post.PostedAt,
		&post.Error,
		&post.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// Create inserts the post and fills in its id and created_at.
func (r *postRepository) Create(ctx context.Context, post *models.Post) (int64, error) {
	query := `
		INSERT INTO posts (account_id, occasion, caption, image_url, image_prompt, status, scheduled_for)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	status := post.Status
	if status == "" {
		status = models.PostStatusGenerated
	}

	err := r.db.QueryRowContext(ctx, query,
		post.AccountID,
		post.Occasion,
		post.Caption,
		post.ImageURL,
		post.ImagePrompt,
		status,
		post.ScheduledFor,
	).Scan(&post.ID, &post.CreatedAt)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	post.Status = status
	return post.ID, nil
}

func (r *postRepository) GetByID(ctx context.Context, id int64) (*models.Post, bool, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1`

	post, err := scanPost(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		slog.Info(err.Error())
		return nil, false, err
	}

	return post, true, nil
}

// Update writes the publish outcome of a post.
func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	query := `
		UPDATE posts
		SET status = $1,
			linkedin_post_id = $2,
			posted_at = $3,
			error = $4
		WHERE id = $5
	`
	result, err := r.db.ExecContext(ctx, query, post.Status, post.LinkedInPostID, post.PostedAt, post.Error, post.ID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}

	return expectOneRow(result)
}

// ListByAccountBetween returns posts created in [from, to), newest first.
func (r *postRepository) ListByAccountBetween(ctx context.Context, accountID int64, from, to time.Time) ([]*models.Post, error) {
	query := `SELECT ` + postColumns + `
		FROM posts
		WHERE account_id = $1 AND created_at >= $2 AND created_at < $3
		ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, accountID, from, to)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var posts []*models.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	return posts, nil
}
