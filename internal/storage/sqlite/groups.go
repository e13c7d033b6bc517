package sqlite

import (
	"context"
	"fmt"

	"github.com/mmynk/housemate/internal/models"
	"github.com/mmynk/housemate/internal/storage"
)

// CreateGroup persists a new group and moves the creator into it.
func (s *SQLiteStore) CreateGroup(ctx context.Context, group *models.Group, creatorID int64) error {
	if group.CreatedAt == "" {
		group.CreatedAt = models.Now()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"INSERT INTO groups (name, invite_code, created_at) VALUES (?, ?, ?)",
		group.Name, group.InviteCode, group.CreatedAt,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("invite code %s: %w", group.InviteCode, storage.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("failed to insert group: %w", err)
	}
	if group.ID, err = res.LastInsertId(); err != nil {
		return fmt.Errorf("failed to read group id: %w", err)
	}

	res, err = tx.ExecContext(ctx,
		"UPDATE members SET group_id = ?, updated_at = ? WHERE id = ?",
		group.ID, models.Now(), creatorID,
	)
	if err != nil {
		return fmt.Errorf("failed to add creator to group: %w", err)
	}
	if err := checkAffected(res, "member", creatorID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	members, err := s.groupMembers(ctx, group.ID)
	if err != nil {
		return err
	}
	group.Members = members
	return nil
}

// GetGroup retrieves a group by ID, including its members.
func (s *SQLiteStore) GetGroup(ctx context.Context, id int64) (*models.Group, error) {
	return s.getGroup(ctx, "id = ?", id)
}

// GetGroupByInviteCode retrieves a group by its invite code.
func (s *SQLiteStore) GetGroupByInviteCode(ctx context.Context, code string) (*models.Group, error) {
	return s.getGroup(ctx, "invite_code = ?", code)
}

func (s *SQLiteStore) getGroup(ctx context.Context, where string, arg any) (*models.Group, error) {
	group := &models.Group{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, invite_code, created_at FROM groups WHERE "+where, arg,
	).Scan(&group.ID, &group.Name, &group.InviteCode, &group.CreatedAt)
	if isNoRows(err) {
		return nil, notFound("group", arg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	members, err := s.groupMembers(ctx, group.ID)
	if err != nil {
		return nil, err
	}
	group.Members = members
	return group, nil
}

// JoinGroup moves the member into the group.
func (s *SQLiteStore) JoinGroup(ctx context.Context, groupID, memberID int64) error {
	if _, err := s.GetGroup(ctx, groupID); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx,
		"UPDATE members SET group_id = ?, updated_at = ? WHERE id = ?",
		groupID, models.Now(), memberID,
	)
	if err != nil {
		return fmt.Errorf("failed to join group: %w", err)
	}
	return checkAffected(res, "member", memberID)
}

func (s *SQLiteStore) groupMembers(ctx context.Context, groupID int64) ([]models.Member, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+memberColumns+` FROM members WHERE group_id = ? ORDER BY id`, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to get group members: %w", err)
	}
	defer rows.Close()

	members := []models.Member{}
	for rows.Next() {
		member, err := scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, *member)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate members: %w", err)
	}
	return members, nil
}
