package sqlite

import (
	"context"
	"fmt"

	"github.com/mmynk/housemate/internal/models"
	"github.com/mmynk/housemate/internal/storage"
)

// CreateNotifications inserts all notifications in one transaction.
func (s *SQLiteStore) CreateNotifications(ctx context.Context, notifications []*models.Notification) error {
	if len(notifications) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, n := range notifications {
		if n.CreatedAt == "" {
			n.CreatedAt = models.Now()
		}
		res, err := tx.ExecContext(ctx, `
			INSERT INTO notifications (member_id, type, message, resource_id, read, created_at)
			VALUES (?, ?, ?, ?, ?, ?)`,
			n.MemberID, n.Type, n.Message, n.ResourceID, boolToInt(n.Read), n.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert notification: %w", err)
		}
		if n.ID, err = res.LastInsertId(); err != nil {
			return fmt.Errorf("failed to read notification id: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ListNotifications returns one page of a member's notifications, newest first.
func (s *SQLiteStore) ListNotifications(ctx context.Context, memberID int64, page storage.Page) ([]models.Notification, int64, error) {
	total, err := s.count(ctx, "SELECT COUNT(*) FROM notifications WHERE member_id = ?", memberID)
	if err != nil {
		return nil, 0, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, member_id, type, message, resource_id, read, created_at
		FROM notifications WHERE member_id = ? ORDER BY id DESC LIMIT ? OFFSET ?`,
		memberID, page.Size, page.Offset(),
	)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	notifications := []models.Notification{}
	for rows.Next() {
		var n models.Notification
		var read int
		if err := rows.Scan(&n.ID, &n.MemberID, &n.Type, &n.Message, &n.ResourceID, &read, &n.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan notification: %w", err)
		}
		n.Read = read != 0
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate notifications: %w", err)
	}
	return notifications, total, nil
}

// MarkNotificationRead marks one of the member's notifications as read.
func (s *SQLiteStore) MarkNotificationRead(ctx context.Context, memberID, id int64) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE notifications SET read = 1 WHERE id = ? AND member_id = ?", id, memberID)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	return checkAffected(res, "notification", id)
}
