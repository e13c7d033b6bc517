package sqlite

import (
	"context"
	"fmt"

	"github.com/mmynk/housemate/internal/models"
	"github.com/mmynk/housemate/internal/storage"
)

const rulebookSelect = "SELECT id, group_id, created_by, title, content, created_at FROM rulebooks"

func scanRulebook(row rowScanner) (*models.Rulebook, error) {
	r := &models.Rulebook{}
	if err := row.Scan(&r.ID, &r.GroupID, &r.CreatedBy, &r.Title, &r.Content, &r.CreatedAt); err != nil {
		return nil, err
	}
	return r, nil
}

// CreateRulebook persists a new rulebook entry.
func (s *SQLiteStore) CreateRulebook(ctx context.Context, rulebook *models.Rulebook) error {
	if rulebook.CreatedAt == "" {
		rulebook.CreatedAt = models.Now()
	}
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO rulebooks (group_id, created_by, title, content, created_at) VALUES (?, ?, ?, ?, ?)",
		rulebook.GroupID, rulebook.CreatedBy, rulebook.Title, rulebook.Content, rulebook.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert rulebook: %w", err)
	}
	if rulebook.ID, err = res.LastInsertId(); err != nil {
		return fmt.Errorf("failed to read rulebook id: %w", err)
	}
	return nil
}

// GetRulebook retrieves a rulebook entry by ID.
func (s *SQLiteStore) GetRulebook(ctx context.Context, id int64) (*models.Rulebook, error) {
	r, err := scanRulebook(s.db.QueryRowContext(ctx, rulebookSelect+" WHERE id = ?", id))
	if isNoRows(err) {
		return nil, notFound("rulebook", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get rulebook: %w", err)
	}
	return r, nil
}

// UpdateRulebook overwrites title and content.
func (s *SQLiteStore) UpdateRulebook(ctx context.Context, rulebook *models.Rulebook) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE rulebooks SET title = ?, content = ? WHERE id = ?",
		rulebook.Title, rulebook.Content, rulebook.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update rulebook: %w", err)
	}
	return checkAffected(res, "rulebook", rulebook.ID)
}

// DeleteRulebook removes a rulebook entry by ID.
func (s *SQLiteStore) DeleteRulebook(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM rulebooks WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete rulebook: %w", err)
	}
	return checkAffected(res, "rulebook", id)
}

// ListRulebooks returns one page of a group's rules, oldest first.
func (s *SQLiteStore) ListRulebooks(ctx context.Context, groupID int64, page storage.Page) ([]models.Rulebook, int64, error) {
	total, err := s.count(ctx, "SELECT COUNT(*) FROM rulebooks WHERE group_id = ?", groupID)
	if err != nil {
		return nil, 0, err
	}

	rows, err := s.db.QueryContext(ctx,
		rulebookSelect+" WHERE group_id = ? ORDER BY id LIMIT ? OFFSET ?",
		groupID, page.Size, page.Offset(),
	)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list rulebooks: %w", err)
	}
	defer rows.Close()

	rulebooks := []models.Rulebook{}
	for rows.Next() {
		r, err := scanRulebook(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan rulebook: %w", err)
		}
		rulebooks = append(rulebooks, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate rulebooks: %w", err)
	}
	return rulebooks, total, nil
}
