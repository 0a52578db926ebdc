package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"vidtube/internal/model"
)

type playlistRepository struct {
	db *sqlx.DB
}

func NewPlaylistRepository(db *sqlx.DB) PlaylistRepository {
	return &playlistRepository{db: db}
}

func (r *playlistRepository) Create(ctx context.Context, p *model.Playlist) error {
	query := `
		INSERT INTO playlists (owner_id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRowxContext(ctx, query, p.OwnerID, p.Name, p.Description).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert playlist: %w", err)
	}

	p.Videos = []model.Video{}
	return nil
}

func (r *playlistRepository) GetByID(ctx context.Context, id int64) (*model.Playlist, error) {
	query := `
		SELECT p.id, p.owner_id, p.name, p.description, p.created_at, p.updated_at,
		       u.id AS owner_user_id, u.username, u.full_name, u.avatar_url
		FROM playlists p
		JOIN users u ON u.id = p.owner_id
		WHERE p.id = $1
	`

	row := r.db.QueryRowxContext(ctx, query, id)

	var p model.Playlist
	var owner model.UserSummary
	err := row.Scan(
		&p.ID, &p.OwnerID, &p.Name, &p.Description, &p.CreatedAt, &p.UpdatedAt,
		&owner.ID, &owner.Username, &owner.FullName, &owner.Avatar,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrPlaylistNotFound
		}
		return nil, fmt.Errorf("failed to get playlist by id: %w", err)
	}
	p.Owner = &owner

	videos, err := r.loadVideos(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	p.Videos = videos

	return &p, nil
}

func (r *playlistRepository) GetByOwner(ctx context.Context, ownerID int64) ([]model.Playlist, error) {
	query := `
		SELECT id, owner_id, name, description, created_at, updated_at
		FROM playlists
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`

	var playlists []model.Playlist
	if err := r.db.SelectContext(ctx, &playlists, query, ownerID); err != nil {
		return nil, fmt.Errorf("failed to get playlists by owner: %w", err)
	}

	for i := range playlists {
		videos, err := r.loadVideos(ctx, playlists[i].ID)
		if err != nil {
			return nil, err
		}
		playlists[i].Videos = videos
	}

	return playlists, nil
}

func (r *playlistRepository) Update(ctx context.Context, id int64, name, description string) (*model.Playlist, error) {
	query := `
		UPDATE playlists SET name = $1, description = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING id, owner_id, name, description, created_at, updated_at
	`

	var p model.Playlist
	err := r.db.GetContext(ctx, &p, query, name, description, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrPlaylistNotFound
		}
		return nil, fmt.Errorf("failed to update playlist: %w", err)
	}

	videos, err := r.loadVideos(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	p.Videos = videos

	return &p, nil
}

func (r *playlistRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM playlists WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete playlist: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return model.ErrPlaylistNotFound
	}

	return nil
}

// AddVideo links a video into the playlist. The unique pair constraint keeps
// membership edges duplicate-free; re-adding reports false.
func (r *playlistRepository) AddVideo(ctx context.Context, playlistID, videoID int64) (bool, error) {
	query := `
		INSERT INTO playlist_videos (playlist_id, video_id)
		VALUES ($1, $2)
		ON CONFLICT (playlist_id, video_id) DO NOTHING
	`

	result, err := r.db.ExecContext(ctx, query, playlistID, videoID)
	if err != nil {
		return false, fmt.Errorf("failed to add video to playlist: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rows > 0, nil
}

func (r *playlistRepository) RemoveVideo(ctx context.Context, playlistID, videoID int64) error {
	query := `DELETE FROM playlist_videos WHERE playlist_id = $1 AND video_id = $2`
	if _, err := r.db.ExecContext(ctx, query, playlistID, videoID); err != nil {
		return fmt.Errorf("failed to remove video from playlist: %w", err)
	}
	return nil
}

func (r *playlistRepository) loadVideos(ctx context.Context, playlistID int64) ([]model.Video, error) {
	query := `
		SELECT v.id, v.owner_id, v.title, v.description, v.video_url, v.thumbnail_url,
		       v.duration_seconds, v.views, v.is_published, v.created_at, v.updated_at
		FROM playlist_videos pv
		JOIN videos v ON v.id = pv.video_id
		WHERE pv.playlist_id = $1
		ORDER BY pv.added_at ASC
	`

	var videos []model.Video
	if err := r.db.SelectContext(ctx, &videos, query, playlistID); err != nil {
		return nil, fmt.Errorf("failed to load playlist videos: %w", err)
	}
	if videos == nil {
		videos = []model.Video{}
	}

	return videos, nil
}
