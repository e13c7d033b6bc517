package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/mmynk/housemate/internal/models"
	"github.com/mmynk/housemate/internal/storage"
)

const accountSelect = `
	SELECT a.id, a.group_id, a.created_by, m.login_id, a.title, a.description, a.date,
	       a.total_amount, a.receive_amount, a.status, a.image_url, a.created_at
	FROM accounts a JOIN members m ON m.id = a.created_by`

func scanAccount(row rowScanner) (*models.Account, error) {
	a := &models.Account{}
	var total, receive int64
	if err := row.Scan(&a.ID, &a.GroupID, &a.CreatedBy, &a.MemberLoginID, &a.Title,
		&a.Description, &a.Date, &total, &receive, &a.Status, &a.ImageURL, &a.CreatedAt); err != nil {
		return nil, err
	}
	a.TotalAmount = models.Won(total)
	a.ReceiveAmount = models.Won(receive)
	return a, nil
}

// CreateAccount persists a new account with its participants.
func (s *SQLiteStore) CreateAccount(ctx context.Context, account *models.Account) error {
	if account.CreatedAt == "" {
		account.CreatedAt = models.Now()
	}
	if account.Status == "" {
		account.Status = models.StatusPending
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO accounts (group_id, created_by, title, description, date, total_amount,
		                      receive_amount, status, image_url, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		account.GroupID, account.CreatedBy, account.Title, account.Description, account.Date,
		account.TotalAmount.OrZero(), account.ReceiveAmount.OrZero(), account.Status,
		account.ImageURL, account.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert account: %w", err)
	}
	if account.ID, err = res.LastInsertId(); err != nil {
		return fmt.Errorf("failed to read account id: %w", err)
	}

	for i, p := range account.Participants {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO account_participants (account_id, member_id, position, amount, paid) VALUES (?, ?, ?, ?, ?)",
			account.ID, p.MemberID, i, p.Amount, boolToInt(p.Paid),
		)
		if isUniqueViolation(err) {
			return fmt.Errorf("participant %d listed twice: %w", p.MemberID, storage.ErrConflict)
		}
		if err != nil {
			return fmt.Errorf("failed to insert participant: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetAccount retrieves an account by ID, including its participants.
func (s *SQLiteStore) GetAccount(ctx context.Context, id int64) (*models.Account, error) {
	account, err := scanAccount(s.db.QueryRowContext(ctx, accountSelect+" WHERE a.id = ?", id))
	if isNoRows(err) {
		return nil, notFound("account", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	accounts := []models.Account{*account}
	if err := s.loadParticipants(ctx, accounts); err != nil {
		return nil, err
	}
	return &accounts[0], nil
}

// UpdateAccountStatus sets the status of an account.
func (s *SQLiteStore) UpdateAccountStatus(ctx context.Context, id int64, status string) error {
	res, err := s.db.ExecContext(ctx, "UPDATE accounts SET status = ? WHERE id = ?", status, id)
	if err != nil {
		return fmt.Errorf("failed to update account status: %w", err)
	}
	return checkAffected(res, "account", id)
}

// SetParticipantPaid marks a share paid and completes the account once no
// unpaid share remains.
func (s *SQLiteStore) SetParticipantPaid(ctx context.Context, accountID, memberID int64) (*models.Account, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"UPDATE account_participants SET paid = 1 WHERE account_id = ? AND member_id = ?",
		accountID, memberID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to mark participant paid: %w", err)
	}
	if err := checkAffected(res, "participant", fmt.Sprintf("%d/%d", accountID, memberID)); err != nil {
		return nil, err
	}

	var unpaid int
	if err := tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM account_participants WHERE account_id = ? AND paid = 0", accountID,
	).Scan(&unpaid); err != nil {
		return nil, fmt.Errorf("failed to count unpaid participants: %w", err)
	}
	if unpaid == 0 {
		if _, err := tx.ExecContext(ctx,
			"UPDATE accounts SET status = ? WHERE id = ?", models.StatusCompleted, accountID,
		); err != nil {
			return nil, fmt.Errorf("failed to complete account: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return s.GetAccount(ctx, accountID)
}

// DeleteAccount removes an account and its participants.
func (s *SQLiteStore) DeleteAccount(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM accounts WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	return checkAffected(res, "account", id)
}

// ListAccounts returns one page of a group's accounts, newest first.
func (s *SQLiteStore) ListAccounts(ctx context.Context, groupID int64, page storage.Page) ([]models.Account, int64, error) {
	total, err := s.count(ctx, "SELECT COUNT(*) FROM accounts WHERE group_id = ?", groupID)
	if err != nil {
		return nil, 0, err
	}
	accounts, err := s.queryAccounts(ctx,
		accountSelect+" WHERE a.group_id = ? ORDER BY a.created_at DESC, a.id DESC LIMIT ? OFFSET ?",
		groupID, page.Size, page.Offset(),
	)
	return accounts, total, err
}

// ListAllAccounts returns every account of a group, newest first.
func (s *SQLiteStore) ListAllAccounts(ctx context.Context, groupID int64) ([]models.Account, error) {
	return s.queryAccounts(ctx,
		accountSelect+" WHERE a.group_id = ? ORDER BY a.created_at DESC, a.id DESC", groupID)
}

func (s *SQLiteStore) queryAccounts(ctx context.Context, query string, args ...any) ([]models.Account, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	accounts := []models.Account{}
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, *a)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate accounts: %w", err)
	}

	if err := s.loadParticipants(ctx, accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

// loadParticipants fills Participants for every account in one query.
func (s *SQLiteStore) loadParticipants(ctx context.Context, accounts []models.Account) error {
	if len(accounts) == 0 {
		return nil
	}

	index := make(map[int64]int, len(accounts))
	args := make([]any, len(accounts))
	for i := range accounts {
		accounts[i].Participants = []models.Participant{}
		index[accounts[i].ID] = i
		args[i] = accounts[i].ID
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT ap.account_id, ap.member_id, m.login_id, m.display_name, m.avatar_url, ap.amount, ap.paid
		FROM account_participants ap JOIN members m ON m.id = ap.member_id
		WHERE ap.account_id IN (`+placeholders(len(args))+`)
		ORDER BY ap.account_id, ap.position`, args...)
	if err != nil {
		return fmt.Errorf("failed to get participants: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var accountID int64
		var paid int
		var p models.Participant
		if err := rows.Scan(&accountID, &p.MemberID, &p.LoginID, &p.Name, &p.AvatarURL, &p.Amount, &paid); err != nil {
			return fmt.Errorf("failed to scan participant: %w", err)
		}
		p.Paid = paid != 0
		i := index[accountID]
		accounts[i].Participants = append(accounts[i].Participants, p)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate participants: %w", err)
	}
	return nil
}

// placeholders returns "?, ?, ..." with n markers for IN clauses.
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
