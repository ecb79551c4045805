package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"campaign-hub/internal/domain"
)

type NotificationRepository interface {
	Create(ctx context.Context, notification domain.Notification) error
	ListByUserID(ctx context.Context, userID string, limit int) ([]domain.Notification, error)
	MarkRead(ctx context.Context, id, userID string, readAt time.Time) error
}

type PgNotificationRepository struct {
	pool *pgxpool.Pool
}

func NewPgNotificationRepository(pool *pgxpool.Pool) *PgNotificationRepository {
	return &PgNotificationRepository{pool: pool}
}

func (r *PgNotificationRepository) Create(ctx context.Context, notification domain.Notification) error {
	const query = `
		INSERT INTO notifications (id, user_id, campaign_id, kind, subject_id, payload, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.pool.Exec(ctx, query,
		notification.ID,
		notification.UserID,
		notification.CampaignID,
		notification.Kind,
		notification.SubjectID,
		notification.Payload,
		notification.CreatedAt,
	)
	return err
}

func (r *PgNotificationRepository) ListByUserID(ctx context.Context, userID string, limit int) ([]domain.Notification, error) {
	if limit <= 0 {
		limit = 50
	}
	const query = `
		SELECT id, user_id, campaign_id, kind, subject_id, payload, read_at, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []domain.Notification
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(
			&n.ID,
			&n.UserID,
			&n.CampaignID,
			&n.Kind,
			&n.SubjectID,
			&n.Payload,
			&n.ReadAt,
			&n.CreatedAt,
		); err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return notifications, nil
}

func (r *PgNotificationRepository) MarkRead(ctx context.Context, id, userID string, readAt time.Time) error {
	const query = `
		UPDATE notifications
		SET read_at = $1
		WHERE id = $2 AND user_id = $3
	`
	_, err := r.pool.Exec(ctx, query, readAt, id, userID)
	return err
}
