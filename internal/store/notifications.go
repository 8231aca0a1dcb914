package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"smartlist/internal/database"
	"smartlist/internal/models"
)

type pgNotificationStore struct {
	db *database.DB
}

const notificationColumns = "id, user_id, type, title, message, is_read, related_list_id, from_user_id, created_at"

func scanNotification(row pgx.Row) (*models.Notification, error) {
	var n models.Notification
	err := row.Scan(&n.ID, &n.UserID, &n.Type, &n.Title, &n.Message,
		&n.IsRead, &n.RelatedListID, &n.FromUserID, &n.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (s *pgNotificationStore) CreateNotification(ctx context.Context, n *models.Notification) (*models.Notification, error) {
	return scanNotification(s.db.QueryRow(ctx,
		`INSERT INTO notifications (user_id, type, title, message, is_read, related_list_id, from_user_id)
		 VALUES ($1, $2, $3, $4, false, $5, $6)
		 RETURNING `+notificationColumns,
		n.UserID, n.Type, n.Title, n.Message, n.RelatedListID, n.FromUserID))
}

func (s *pgNotificationStore) GetNotification(ctx context.Context, id int) (*models.Notification, error) {
	return scanNotification(s.db.QueryRow(ctx,
		"SELECT "+notificationColumns+" FROM notifications WHERE id = $1", id))
}

func (s *pgNotificationStore) NotificationsForUser(ctx context.Context, userID, limit int) ([]models.Notification, error) {
	rows, err := s.db.Query(ctx,
		"SELECT "+notificationColumns+` FROM notifications
		 WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2`,
		userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []models.Notification
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Type, &n.Title, &n.Message,
			&n.IsRead, &n.RelatedListID, &n.FromUserID, &n.CreatedAt); err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

func (s *pgNotificationStore) UnreadCount(ctx context.Context, userID int) (int, error) {
	var count int
	err := s.db.QueryRow(ctx,
		"SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND is_read = false",
		userID).Scan(&count)
	return count, err
}

func (s *pgNotificationStore) MarkRead(ctx context.Context, id int) error {
	_, err := s.db.Exec(ctx,
		"UPDATE notifications SET is_read = true WHERE id = $1", id)
	return err
}

func (s *pgNotificationStore) MarkAllRead(ctx context.Context, userID int) error {
	_, err := s.db.Exec(ctx,
		"UPDATE notifications SET is_read = true WHERE user_id = $1 AND is_read = false",
		userID)
	return err
}
