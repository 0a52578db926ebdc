package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"vidtube/internal/model"
)

type subscriptionRepository struct {
	db *sqlx.DB
}

func NewSubscriptionRepository(db *sqlx.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

// Create inserts the subscription edge. ON CONFLICT DO NOTHING makes the
// unique constraint the source of truth under concurrent toggles: a losing
// racer observes inserted=false instead of a duplicate-key error.
func (r *subscriptionRepository) Create(ctx context.Context, subscriberID, channelID int64) (bool, error) {
	query := `
		INSERT INTO subscriptions (subscriber_id, channel_id)
		VALUES ($1, $2)
		ON CONFLICT (subscriber_id, channel_id) DO NOTHING
	`
	result, err := r.db.ExecContext(ctx, query, subscriberID, channelID)
	if err != nil {
		return false, fmt.Errorf("failed to create subscription: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rows > 0, nil
}

func (r *subscriptionRepository) Delete(ctx context.Context, subscriberID, channelID int64) (bool, error) {
	query := `DELETE FROM subscriptions WHERE subscriber_id = $1 AND channel_id = $2`

	result, err := r.db.ExecContext(ctx, query, subscriberID, channelID)
	if err != nil {
		return false, fmt.Errorf("failed to delete subscription: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rows > 0, nil
}

func (r *subscriptionRepository) Exists(ctx context.Context, subscriberID, channelID int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM subscriptions WHERE subscriber_id = $1 AND channel_id = $2)`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, subscriberID, channelID)
	if err != nil {
		return false, fmt.Errorf("failed to check subscription existence: %w", err)
	}

	return exists, nil
}

// GetSubscribers lists the public identities subscribed to a channel, newest
// subscription first.
func (r *subscriptionRepository) GetSubscribers(ctx context.Context, channelID int64) ([]model.UserSummary, error) {
	query := `
		SELECT u.id, u.username, u.full_name, u.avatar_url
		FROM subscriptions s
		JOIN users u ON u.id = s.subscriber_id
		WHERE s.channel_id = $1
		ORDER BY s.created_at DESC
	`

	var users []model.UserSummary
	err := r.db.SelectContext(ctx, &users, query, channelID)
	if err != nil {
		return nil, fmt.Errorf("failed to get subscribers: %w", err)
	}

	return users, nil
}

func (r *subscriptionRepository) GetSubscribedChannels(ctx context.Context, subscriberID int64) ([]model.UserSummary, error) {
	query := `
		SELECT u.id, u.username, u.full_name, u.avatar_url
		FROM subscriptions s
		JOIN users u ON u.id = s.channel_id
		WHERE s.subscriber_id = $1
		ORDER BY s.created_at DESC
	`

	var users []model.UserSummary
	err := r.db.SelectContext(ctx, &users, query, subscriberID)
	if err != nil {
		return nil, fmt.Errorf("failed to get subscribed channels: %w", err)
	}

	return users, nil
}

func (r *subscriptionRepository) CountSubscribers(ctx context.Context, channelID int64) (int64, error) {
	query := `SELECT COUNT(*) FROM subscriptions WHERE channel_id = $1`

	var count int64
	err := r.db.GetContext(ctx, &count, query, channelID)
	if err != nil {
		return 0, fmt.Errorf("failed to count subscribers: %w", err)
	}

	return count, nil
}
