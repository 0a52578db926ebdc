package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"vidtube/internal/model"
)

type likeRepository struct {
	db *sqlx.DB
}

func NewLikeRepository(db *sqlx.DB) LikeRepository {
	return &likeRepository{db: db}
}

// targetColumn maps the tagged like target onto its storage column. The
// schema keeps one nullable reference column per kind with a plain composite
// unique index on (user_id, <column>); exactly one column is ever populated
// per row, and NULLs in the other columns are distinct so rows for other
// kinds never collide. The plain index is what lets ON CONFLICT name the
// column pair directly as its conflict target.
func targetColumn(target model.LikeTarget) (string, error) {
	switch target.Kind {
	case model.LikeVideo:
		return "video_id", nil
	case model.LikeComment:
		return "comment_id", nil
	case model.LikeTweet:
		return "tweet_id", nil
	default:
		return "", model.ErrInvalidLikeKind
	}
}

// Create inserts the like edge. As with subscriptions, the unique index is
// authoritative under concurrency; a conflicting insert reports false.
func (r *likeRepository) Create(ctx context.Context, userID int64, target model.LikeTarget) (bool, error) {
	col, err := targetColumn(target)
	if err != nil {
		return false, err
	}

	query := fmt.Sprintf(`
		INSERT INTO likes (user_id, %s)
		VALUES ($1, $2)
		ON CONFLICT (user_id, %s) DO NOTHING
	`, col, col)

	result, err := r.db.ExecContext(ctx, query, userID, target.ID)
	if err != nil {
		return false, fmt.Errorf("failed to create like: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rows > 0, nil
}

func (r *likeRepository) Delete(ctx context.Context, userID int64, target model.LikeTarget) (bool, error) {
	col, err := targetColumn(target)
	if err != nil {
		return false, err
	}

	query := fmt.Sprintf(`DELETE FROM likes WHERE user_id = $1 AND %s = $2`, col)

	result, err := r.db.ExecContext(ctx, query, userID, target.ID)
	if err != nil {
		return false, fmt.Errorf("failed to delete like: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rows > 0, nil
}

func (r *likeRepository) Exists(ctx context.Context, userID int64, target model.LikeTarget) (bool, error) {
	col, err := targetColumn(target)
	if err != nil {
		return false, err
	}

	query := fmt.Sprintf(`SELECT EXISTS(SELECT 1 FROM likes WHERE user_id = $1 AND %s = $2)`, col)

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, userID, target.ID); err != nil {
		return false, fmt.Errorf("failed to check like existence: %w", err)
	}

	return exists, nil
}

// GetLikedVideos returns the videos a user has liked, newest first, with the
// owner's public identity joined in.
func (r *likeRepository) GetLikedVideos(ctx context.Context, userID int64) ([]model.Video, error) {
	query := `
		SELECT v.id, v.owner_id, v.title, v.description, v.video_url, v.thumbnail_url,
		       v.duration_seconds, v.views, v.is_published, v.created_at, v.updated_at,
		       u.id AS "owner.id", u.username AS "owner.username",
		       u.full_name AS "owner.full_name", u.avatar_url AS "owner.avatar_url"
		FROM likes l
		JOIN videos v ON v.id = l.video_id
		JOIN users u ON u.id = v.owner_id
		WHERE l.user_id = $1 AND l.video_id IS NOT NULL
		ORDER BY v.created_at DESC
	`

	rows, err := r.db.QueryxContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get liked videos: %w", err)
	}
	defer rows.Close()

	var videos []model.Video
	for rows.Next() {
		var v model.Video
		var owner model.UserSummary
		err := rows.Scan(
			&v.ID, &v.OwnerID, &v.Title, &v.Description, &v.VideoURL, &v.ThumbnailURL,
			&v.DurationSeconds, &v.Views, &v.IsPublished, &v.CreatedAt, &v.UpdatedAt,
			&owner.ID, &owner.Username, &owner.FullName, &owner.Avatar,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan liked video: %w", err)
		}
		v.Owner = &owner
		videos = append(videos, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate liked videos: %w", err)
	}

	return videos, nil
}

// CountForVideosOwnedBy counts like edges pointing at any video owned by the
// given channel. Computed from edges at read time for the dashboard.
func (r *likeRepository) CountForVideosOwnedBy(ctx context.Context, ownerID int64) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM likes l
		JOIN videos v ON v.id = l.video_id
		WHERE v.owner_id = $1
	`

	var count int64
	err := r.db.GetContext(ctx, &count, query, ownerID)
	if err != nil {
		return 0, fmt.Errorf("failed to count likes for owner: %w", err)
	}

	return count, nil
}
