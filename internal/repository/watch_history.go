package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"vidtube/internal/model"
)

type watchHistoryRepository struct {
	db *sqlx.DB
}

func NewWatchHistoryRepository(db *sqlx.DB) WatchHistoryRepository {
	return &watchHistoryRepository{db: db}
}

// Record upserts the watch event. The watched_at bump on conflict is what
// keeps the history ordered most-recently-watched first on read.
func (r *watchHistoryRepository) Record(ctx context.Context, userID, videoID int64) error {
	query := `
		INSERT INTO watch_history (user_id, video_id, watched_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id, video_id) DO UPDATE SET watched_at = NOW()
	`

	if _, err := r.db.ExecContext(ctx, query, userID, videoID); err != nil {
		return fmt.Errorf("failed to record watch history: %w", err)
	}

	return nil
}

// List expands the user's history into full video documents with the owning
// user's public identity joined in, most recently watched first.
func (r *watchHistoryRepository) List(ctx context.Context, userID int64) ([]model.WatchHistoryEntry, error) {
	query := `
		SELECT h.watched_at,
		       v.id, v.owner_id, v.title, v.description, v.video_url, v.thumbnail_url,
		       v.duration_seconds, v.views, v.is_published, v.created_at, v.updated_at,
		       u.id AS owner_user_id, u.username, u.full_name, u.avatar_url
		FROM watch_history h
		JOIN videos v ON v.id = h.video_id
		JOIN users u ON u.id = v.owner_id
		WHERE h.user_id = $1
		ORDER BY h.watched_at DESC
	`

	rows, err := r.db.QueryxContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list watch history: %w", err)
	}
	defer rows.Close()

	var entries []model.WatchHistoryEntry
	for rows.Next() {
		var e model.WatchHistoryEntry
		var owner model.UserSummary
		err := rows.Scan(
			&e.WatchedAt,
			&e.Video.ID, &e.Video.OwnerID, &e.Video.Title, &e.Video.Description,
			&e.Video.VideoURL, &e.Video.ThumbnailURL, &e.Video.DurationSeconds,
			&e.Video.Views, &e.Video.IsPublished, &e.Video.CreatedAt, &e.Video.UpdatedAt,
			&owner.ID, &owner.Username, &owner.FullName, &owner.Avatar,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan watch history entry: %w", err)
		}
		e.Video.Owner = &owner
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate watch history: %w", err)
	}

	return entries, nil
}
