package sqlite

import (
	"context"
	"fmt"

	"github.com/mmynk/housemate/internal/models"
	"github.com/mmynk/housemate/internal/storage"
)

const puzzleSelect = `
	SELECT p.id, p.group_id, p.member_id, m.login_id, p.title, p.description,
	       p.scheduled_date, p.done, p.created_at
	FROM puzzles p JOIN members m ON m.id = p.member_id`

func scanPuzzle(row rowScanner) (*models.Puzzle, error) {
	p := &models.Puzzle{}
	var done int
	if err := row.Scan(&p.ID, &p.GroupID, &p.MemberID, &p.MemberLoginID, &p.Title,
		&p.Description, &p.ScheduledDate, &done, &p.CreatedAt); err != nil {
		return nil, err
	}
	p.Done = done != 0
	return p, nil
}

// CreatePuzzle persists a new puzzle and sets its ID and CreatedAt.
func (s *SQLiteStore) CreatePuzzle(ctx context.Context, puzzle *models.Puzzle) error {
	if puzzle.CreatedAt == "" {
		puzzle.CreatedAt = models.Now()
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO puzzles (group_id, member_id, title, description, scheduled_date, done, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		puzzle.GroupID, puzzle.MemberID, puzzle.Title, puzzle.Description,
		puzzle.ScheduledDate, boolToInt(puzzle.Done), puzzle.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert puzzle: %w", err)
	}
	if puzzle.ID, err = res.LastInsertId(); err != nil {
		return fmt.Errorf("failed to read puzzle id: %w", err)
	}
	return nil
}

// GetPuzzle retrieves a puzzle by ID.
func (s *SQLiteStore) GetPuzzle(ctx context.Context, id int64) (*models.Puzzle, error) {
	puzzle, err := scanPuzzle(s.db.QueryRowContext(ctx, puzzleSelect+" WHERE p.id = ?", id))
	if isNoRows(err) {
		return nil, notFound("puzzle", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get puzzle: %w", err)
	}
	return puzzle, nil
}

// UpdatePuzzle overwrites the editable fields of a puzzle.
func (s *SQLiteStore) UpdatePuzzle(ctx context.Context, puzzle *models.Puzzle) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE puzzles SET title = ?, description = ?, scheduled_date = ?, done = ? WHERE id = ?",
		puzzle.Title, puzzle.Description, puzzle.ScheduledDate, boolToInt(puzzle.Done), puzzle.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update puzzle: %w", err)
	}
	return checkAffected(res, "puzzle", puzzle.ID)
}

// DeletePuzzle removes a puzzle by ID.
func (s *SQLiteStore) DeletePuzzle(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM puzzles WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete puzzle: %w", err)
	}
	return checkAffected(res, "puzzle", id)
}

// ListPuzzles returns one page of a group's puzzles, soonest first.
func (s *SQLiteStore) ListPuzzles(ctx context.Context, groupID int64, page storage.Page) ([]models.Puzzle, int64, error) {
	total, err := s.count(ctx, "SELECT COUNT(*) FROM puzzles WHERE group_id = ?", groupID)
	if err != nil {
		return nil, 0, err
	}
	puzzles, err := s.queryPuzzles(ctx,
		puzzleSelect+" WHERE p.group_id = ? ORDER BY p.scheduled_date, p.id LIMIT ? OFFSET ?",
		groupID, page.Size, page.Offset(),
	)
	return puzzles, total, err
}

// ListPuzzlesByMonth returns a group's puzzles scheduled in month (YYYY-MM).
func (s *SQLiteStore) ListPuzzlesByMonth(ctx context.Context, groupID int64, month string) ([]models.Puzzle, error) {
	return s.queryPuzzles(ctx,
		puzzleSelect+" WHERE p.group_id = ? AND p.scheduled_date LIKE ? ORDER BY p.scheduled_date, p.id",
		groupID, month+"%",
	)
}

func (s *SQLiteStore) queryPuzzles(ctx context.Context, query string, args ...any) ([]models.Puzzle, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list puzzles: %w", err)
	}
	defer rows.Close()

	puzzles := []models.Puzzle{}
	for rows.Next() {
		p, err := scanPuzzle(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan puzzle: %w", err)
		}
		puzzles = append(puzzles, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate puzzles: %w", err)
	}
	return puzzles, nil
}
