package sqlite

import (
	"context"
	"fmt"

	"github.com/mmynk/housemate/internal/models"
	"github.com/mmynk/housemate/internal/storage"
)

// CreateChatMessage persists a chat message.
func (s *SQLiteStore) CreateChatMessage(ctx context.Context, msg *models.ChatMessage) error {
	if msg.CreatedAt == "" {
		msg.CreatedAt = models.Now()
	}
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO chat_messages (group_id, sender_id, content, created_at) VALUES (?, ?, ?, ?)",
		msg.GroupID, msg.SenderID, msg.Content, msg.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert chat message: %w", err)
	}
	if msg.ID, err = res.LastInsertId(); err != nil {
		return fmt.Errorf("failed to read chat message id: %w", err)
	}
	return nil
}

// ListChatMessages returns one page of a group's chat, newest first.
func (s *SQLiteStore) ListChatMessages(ctx context.Context, groupID int64, page storage.Page) ([]models.ChatMessage, int64, error) {
	total, err := s.count(ctx, "SELECT COUNT(*) FROM chat_messages WHERE group_id = ?", groupID)
	if err != nil {
		return nil, 0, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT c.id, c.group_id, c.sender_id, m.login_id, c.content, c.created_at
		FROM chat_messages c JOIN members m ON m.id = c.sender_id
		WHERE c.group_id = ? ORDER BY c.id DESC LIMIT ? OFFSET ?`,
		groupID, page.Size, page.Offset(),
	)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list chat messages: %w", err)
	}
	defer rows.Close()

	messages := []models.ChatMessage{}
	for rows.Next() {
		var msg models.ChatMessage
		if err := rows.Scan(&msg.ID, &msg.GroupID, &msg.SenderID, &msg.SenderLoginID, &msg.Content, &msg.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan chat message: %w", err)
		}
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate chat messages: %w", err)
	}
	return messages, total, nil
}
