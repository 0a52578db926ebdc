package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"vidtube/internal/model"
)

type videoRepository struct {
	db *sqlx.DB
}

func NewVideoRepository(db *sqlx.DB) VideoRepository {
	return &videoRepository{db: db}
}

func (r *videoRepository) Create(ctx context.Context, v *model.Video) error {
	query := `
		INSERT INTO videos (owner_id, title, description, video_url, video_key,
		                    thumbnail_url, thumbnail_key, duration_seconds, is_published,
		                    created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING id, views, created_at, updated_at
	`

	err := r.db.QueryRowxContext(ctx, query,
		v.OwnerID,
		v.Title,
		v.Description,
		v.VideoURL,
		v.VideoKey,
		v.ThumbnailURL,
		v.ThumbnailKey,
		v.DurationSeconds,
		v.IsPublished,
	).Scan(&v.ID, &v.Views, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert video: %w", err)
	}

	return nil
}

func (r *videoRepository) GetByID(ctx context.Context, id int64) (*model.Video, error) {
	query := `
		SELECT v.id, v.owner_id, v.title, v.description, v.video_url, v.video_key,
		       v.thumbnail_url, v.thumbnail_key, v.duration_seconds, v.views,
		       v.is_published, v.created_at, v.updated_at,
		       u.id AS owner_user_id, u.username, u.full_name, u.avatar_url
		FROM videos v
		JOIN users u ON u.id = v.owner_id
		WHERE v.id = $1
	`

	row := r.db.QueryRowxContext(ctx, query, id)

	var v model.Video
	var owner model.UserSummary
	err := row.Scan(
		&v.ID, &v.OwnerID, &v.Title, &v.Description, &v.VideoURL, &v.VideoKey,
		&v.ThumbnailURL, &v.ThumbnailKey, &v.DurationSeconds, &v.Views,
		&v.IsPublished, &v.CreatedAt, &v.UpdatedAt,
		&owner.ID, &owner.Username, &owner.FullName, &owner.Avatar,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrVideoNotFound
		}
		return nil, fmt.Errorf("failed to get video by id: %w", err)
	}

	v.Owner = &owner
	return &v, nil
}

// sortColumns whitelists caller-selectable sort fields. Anything else falls
// back to creation time.
var sortColumns = map[string]string{
	"created_at":       "v.created_at",
	"views":            "v.views",
	"duration_seconds": "v.duration_seconds",
	"title":            "v.title",
}

// List applies the text and owner filters before the identity join, sorts by
// the selected column (creation time descending by default), and paginates.
func (r *videoRepository) List(ctx context.Context, q model.VideoListQuery) ([]model.Video, int64, error) {
	where := []string{"v.is_published = TRUE"}
	args := []interface{}{}

	if q.Query != "" {
		args = append(args, "%"+q.Query+"%")
		where = append(where, fmt.Sprintf("v.title ILIKE $%d", len(args)))
	}
	if q.OwnerID != nil {
		args = append(args, *q.OwnerID)
		where = append(where, fmt.Sprintf("v.owner_id = $%d", len(args)))
	}
	whereClause := strings.Join(where, " AND ")

	countQuery := `SELECT COUNT(*) FROM videos v WHERE ` + whereClause
	var total int64
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count videos: %w", err)
	}

	sortCol, ok := sortColumns[q.SortBy]
	if !ok {
		sortCol = "v.created_at"
	}
	direction := "DESC"
	if q.SortAsc {
		direction = "ASC"
	}

	offset := (q.Page - 1) * q.Limit
	args = append(args, q.Limit, offset)

	query := fmt.Sprintf(`
		SELECT v.id, v.owner_id, v.title, v.description, v.video_url, v.thumbnail_url,
		       v.duration_seconds, v.views, v.is_published, v.created_at, v.updated_at,
		       u.id AS owner_user_id, u.username, u.full_name, u.avatar_url
		FROM videos v
		JOIN users u ON u.id = v.owner_id
		WHERE %s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d
	`, whereClause, sortCol, direction, len(args)-1, len(args))

	rows, err := r.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list videos: %w", err)
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
			return nil, 0, fmt.Errorf("failed to scan video: %w", err)
		}
		v.Owner = &owner
		videos = append(videos, v)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate videos: %w", err)
	}

	return videos, total, nil
}

func (r *videoRepository) Update(ctx context.Context, v *model.Video) error {
	query := `
		UPDATE videos
		SET title = $1, description = $2, thumbnail_url = $3, thumbnail_key = $4,
		    is_published = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING updated_at
	`

	err := r.db.QueryRowxContext(ctx, query,
		v.Title, v.Description, v.ThumbnailURL, v.ThumbnailKey, v.IsPublished, v.ID,
	).Scan(&v.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return model.ErrVideoNotFound
		}
		return fmt.Errorf("failed to update video: %w", err)
	}

	return nil
}

func (r *videoRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM videos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete video: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return model.ErrVideoNotFound
	}

	return nil
}

func (r *videoRepository) IncrementViews(ctx context.Context, id int64, delta int64) error {
	query := `UPDATE videos SET views = views + $1 WHERE id = $2`
	if _, err := r.db.ExecContext(ctx, query, delta, id); err != nil {
		return fmt.Errorf("failed to increment views: %w", err)
	}
	return nil
}

func (r *videoRepository) Exists(ctx context.Context, id int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM videos WHERE id = $1)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, id); err != nil {
		return false, fmt.Errorf("failed to check video existence: %w", err)
	}

	return exists, nil
}

func (r *videoRepository) CountByOwner(ctx context.Context, ownerID int64) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM videos WHERE owner_id = $1`, ownerID)
	if err != nil {
		return 0, fmt.Errorf("failed to count videos by owner: %w", err)
	}
	return count, nil
}

func (r *videoRepository) SumViewsByOwner(ctx context.Context, ownerID int64) (int64, error) {
	var total int64
	err := r.db.GetContext(ctx, &total,
		`SELECT COALESCE(SUM(views), 0) FROM videos WHERE owner_id = $1`, ownerID)
	if err != nil {
		return 0, fmt.Errorf("failed to sum views by owner: %w", err)
	}
	return total, nil
}

// ListByOwner returns all of a channel's videos, newest first, for the
// dashboard view (drafts included).
func (r *videoRepository) ListByOwner(ctx context.Context, ownerID int64) ([]model.Video, error) {
	query := `
		SELECT id, owner_id, title, description, video_url, thumbnail_url,
		       duration_seconds, views, is_published, created_at, updated_at
		FROM videos
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`

	var videos []model.Video
	if err := r.db.SelectContext(ctx, &videos, query, ownerID); err != nil {
		return nil, fmt.Errorf("failed to list videos by owner: %w", err)
	}

	return videos, nil
}
