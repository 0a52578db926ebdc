package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"vidtube/internal/model"
)

type tweetRepository struct {
	db *sqlx.DB
}

func NewTweetRepository(db *sqlx.DB) TweetRepository {
	return &tweetRepository{db: db}
}

func (r *tweetRepository) Create(ctx context.Context, t *model.Tweet) error {
	query := `
		INSERT INTO tweets (owner_id, content, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRowxContext(ctx, query, t.OwnerID, t.Content).
		Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert tweet: %w", err)
	}

	return nil
}

func (r *tweetRepository) GetByID(ctx context.Context, id int64) (*model.Tweet, error) {
	query := `
		SELECT id, owner_id, content, created_at, updated_at
		FROM tweets
		WHERE id = $1
	`

	var t model.Tweet
	err := r.db.GetContext(ctx, &t, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrTweetNotFound
		}
		return nil, fmt.Errorf("failed to get tweet by id: %w", err)
	}

	return &t, nil
}

// GetByOwner returns a user's tweets, newest first, with the author identity
// joined in.
func (r *tweetRepository) GetByOwner(ctx context.Context, ownerID int64) ([]model.Tweet, error) {
	query := `
		SELECT t.id, t.owner_id, t.content, t.created_at, t.updated_at,
		       u.id AS owner_user_id, u.username, u.full_name, u.avatar_url
		FROM tweets t
		JOIN users u ON u.id = t.owner_id
		WHERE t.owner_id = $1
		ORDER BY t.created_at DESC
	`

	rows, err := r.db.QueryxContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get tweets by owner: %w", err)
	}
	defer rows.Close()

	var tweets []model.Tweet
	for rows.Next() {
		var t model.Tweet
		var owner model.UserSummary
		err := rows.Scan(
			&t.ID, &t.OwnerID, &t.Content, &t.CreatedAt, &t.UpdatedAt,
			&owner.ID, &owner.Username, &owner.FullName, &owner.Avatar,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tweet: %w", err)
		}
		t.Owner = &owner
		tweets = append(tweets, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tweets: %w", err)
	}

	return tweets, nil
}

func (r *tweetRepository) Update(ctx context.Context, id int64, content string) (*model.Tweet, error) {
	query := `
		UPDATE tweets SET content = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING id, owner_id, content, created_at, updated_at
	`

	var t model.Tweet
	err := r.db.GetContext(ctx, &t, query, content, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrTweetNotFound
		}
		return nil, fmt.Errorf("failed to update tweet: %w", err)
	}

	return &t, nil
}

func (r *tweetRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tweets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete tweet: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return model.ErrTweetNotFound
	}

	return nil
}

func (r *tweetRepository) Exists(ctx context.Context, id int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM tweets WHERE id = $1)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, id); err != nil {
		return false, fmt.Errorf("failed to check tweet existence: %w", err)
	}

	return exists, nil
}
