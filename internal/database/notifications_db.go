package database

import (
	"context"
	"fmt"

	"github.com/valeriaulyamaeva/personal-finance-ledger/models"
)

func (s *Store) CreateNotification(ctx context.Context, notification *models.Notification) error {
	query := `
		INSERT INTO notifications (user_id, message, is_read, created_at)
		VALUES ($1, $2, $3, now())
		RETURNING id, created_at`

	err := s.pool.QueryRow(ctx, query,
		notification.UserID,
		notification.Message,
		notification.IsRead).Scan(&notification.ID, &notification.CreatedAt)
	if err != nil {
		return fmt.Errorf("ошибка при добавлении уведомления: %v", err)
	}
	return nil
}

func (s *Store) ListNotifications(ctx context.Context, userID int) ([]models.Notification, error) {
	query := `
		SELECT id, user_id, message, is_read, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC`
	rows, err := s.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении уведомлений: %v", err)
	}
	defer rows.Close()

	var notifications []models.Notification
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Message, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}
