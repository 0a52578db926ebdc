package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"vidtube/internal/model"
)

// userColumns is the full projection including credential fields. Only
// repository-internal reads use it; the model hides the sensitive fields from
// serialization.
const userColumns = `id, username, email, full_name, password_hashed, avatar_url, avatar_key,
       cover_image_url, cover_image_key, refresh_token, created_at, updated_at`

// userRepository implements UserRepository using sqlx
type userRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

// Create inserts a new user. A unique violation on username or email maps to
// ErrUserExists; the constraint, not a prior existence check, is authoritative.
func (r *userRepository) Create(ctx context.Context, u *model.User) error {
	query := `
		INSERT INTO users (username, email, full_name, password_hashed, avatar_url, avatar_key,
		                   cover_image_url, cover_image_key, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRowxContext(ctx, query,
		u.Username,
		u.Email,
		u.FullName,
		u.PasswordHashed,
		u.AvatarURL,
		u.AvatarKey,
		u.CoverImageURL,
		u.CoverImageKey,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return model.ErrUserExists
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by their ID
func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	var u model.User
	err := r.db.GetContext(ctx, &u, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return &u, nil
}

// GetByUsernameOrEmail retrieves a user matching either identifier. Empty
// strings never match because both columns are NOT NULL.
func (r *userRepository) GetByUsernameOrEmail(ctx context.Context, username, email string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1 OR email = $2`

	var u model.User
	err := r.db.GetContext(ctx, &u, query, username, email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by username or email: %w", err)
	}

	return &u, nil
}

// GetChannelProfile matches the target user by username and computes the
// subscription counts from edge records at read time. The viewer-relative
// flag is filled in by the service layer.
func (r *userRepository) GetChannelProfile(ctx context.Context, username string) (*model.ChannelProfile, error) {
	query := `
		SELECT u.id, u.username, u.email, u.full_name, u.avatar_url, u.cover_image_url,
		       (SELECT COUNT(*) FROM subscriptions s WHERE s.channel_id = u.id)    AS subscribers_count,
		       (SELECT COUNT(*) FROM subscriptions s WHERE s.subscriber_id = u.id) AS channels_subscribed_to_count
		FROM users u
		WHERE u.username = $1
	`

	var p model.ChannelProfile
	err := r.db.GetContext(ctx, &p, query, username)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get channel profile: %w", err)
	}

	return &p, nil
}

// UpdateRefreshToken overwrites the single stored refresh token as a whole
// value. This is a trusted internal write; it bypasses account validation.
func (r *userRepository) UpdateRefreshToken(ctx context.Context, userID int64, token *string) error {
	query := `UPDATE users SET refresh_token = $1, updated_at = NOW() WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, token, userID)
	if err != nil {
		return fmt.Errorf("failed to update refresh token: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return model.ErrUserNotFound
	}

	return nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, userID int64, passwordHashed string) error {
	query := `UPDATE users SET password_hashed = $1, updated_at = NOW() WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, passwordHashed, userID)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return model.ErrUserNotFound
	}

	return nil
}

func (r *userRepository) UpdateAccount(ctx context.Context, userID int64, fullName, email string) (*model.User, error) {
	query := `
		UPDATE users SET full_name = $1, email = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING ` + userColumns

	var u model.User
	err := r.db.GetContext(ctx, &u, query, fullName, email, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrUserNotFound
		}
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, model.ErrUserExists
		}
		return nil, fmt.Errorf("failed to update account: %w", err)
	}

	return &u, nil
}

func (r *userRepository) UpdateAvatar(ctx context.Context, userID int64, url, key string) (*model.User, error) {
	query := `
		UPDATE users SET avatar_url = $1, avatar_key = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING ` + userColumns

	var u model.User
	err := r.db.GetContext(ctx, &u, query, url, key, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update avatar: %w", err)
	}

	return &u, nil
}

func (r *userRepository) UpdateCoverImage(ctx context.Context, userID int64, url, key string) (*model.User, error) {
	query := `
		UPDATE users SET cover_image_url = $1, cover_image_key = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING ` + userColumns

	var u model.User
	err := r.db.GetContext(ctx, &u, query, url, key, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update cover image: %w", err)
	}

	return &u, nil
}

func (r *userRepository) Exists(ctx context.Context, id int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, id)
	if err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}

	return exists, nil
}
