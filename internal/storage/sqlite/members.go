package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mmynk/housemate/internal/models"
	"github.com/mmynk/housemate/internal/storage"
)

const memberColumns = `id, login_id, display_name, password_hash, avatar_url, group_id, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMember(row rowScanner) (*models.Member, error) {
	member := &models.Member{}
	var groupID sql.NullInt64
	if err := row.Scan(
		&member.ID,
		&member.LoginID,
		&member.DisplayName,
		&member.PasswordHash,
		&member.AvatarURL,
		&groupID,
		&member.CreatedAt,
		&member.UpdatedAt,
	); err != nil {
		return nil, err
	}
	member.GroupID = groupID.Int64
	return member, nil
}

// CreateMember inserts a new member and sets its ID.
func (s *SQLiteStore) CreateMember(ctx context.Context, member *models.Member) error {
	if member.CreatedAt == "" {
		member.CreatedAt = models.Now()
	}
	if member.UpdatedAt == "" {
		member.UpdatedAt = member.CreatedAt
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO members (login_id, display_name, password_hash, avatar_url, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		member.LoginID,
		member.DisplayName,
		member.PasswordHash,
		member.AvatarURL,
		member.CreatedAt,
		member.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("member %s: %w", member.LoginID, storage.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("failed to create member: %w", err)
	}

	member.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read member id: %w", err)
	}
	return nil
}

// GetMemberByLoginID retrieves a member by login id.
func (s *SQLiteStore) GetMemberByLoginID(ctx context.Context, loginID string) (*models.Member, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+memberColumns+` FROM members WHERE login_id = ?`, loginID)
	member, err := scanMember(row)
	if isNoRows(err) {
		return nil, notFound("member", loginID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get member by login id: %w", err)
	}
	return member, nil
}

// GetMemberByID retrieves a member by id.
func (s *SQLiteStore) GetMemberByID(ctx context.Context, id int64) (*models.Member, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+memberColumns+` FROM members WHERE id = ?`, id)
	member, err := scanMember(row)
	if isNoRows(err) {
		return nil, notFound("member", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get member by id: %w", err)
	}
	return member, nil
}
