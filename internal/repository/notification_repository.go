package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/unifylabs/unify-backend/internal/model"
)

type NotificationRepository struct {
	pool *pgxpool.Pool
}

func NewNotificationRepository(pool *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{pool: pool}
}

// CreateBatch persists a batch of notifications in one transaction. The
// fan-out worker drains its queue in batches, so single-row inserts
// would be the slow path.
func (r *NotificationRepository) CreateBatch(ctx context.Context, notifications []model.Notification) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for i := range notifications {
		n := &notifications[i]
		if err := tx.QueryRow(ctx, `
			INSERT INTO notifications (user_id, title, body, kind, priority)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, created_at`,
			n.UserID, n.Title, n.Body, string(n.Kind), string(n.Priority)).
			Scan(&n.ID, &n.CreatedAt); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *NotificationRepository) Create(ctx context.Context, n *model.Notification) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO notifications (user_id, title, body, kind, priority)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`,
		n.UserID, n.Title, n.Body, string(n.Kind), string(n.Priority)).
		Scan(&n.ID, &n.CreatedAt)
}

func (r *NotificationRepository) ListByUser(ctx context.Context, userID, limit int) ([]model.Notification, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, title, body, kind, priority, is_read, created_at, read_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []model.Notification
	for rows.Next() {
		var n model.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Body, &n.Kind, &n.Priority,
			&n.IsRead, &n.CreatedAt, &n.ReadAt); err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

func (r *NotificationRepository) UnreadCount(ctx context.Context, userID int) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND NOT is_read`, userID).
		Scan(&count)
	return count, err
}

func (r *NotificationRepository) MarkRead(ctx context.Context, userID, notificationID int) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE notifications SET is_read = TRUE, read_at = NOW()
		WHERE id = $1 AND user_id = $2 AND NOT is_read`,
		notificationID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID int) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE notifications SET is_read = TRUE, read_at = NOW()
		WHERE user_id = $1 AND NOT is_read`, userID)
	return err
}
