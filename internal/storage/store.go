// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/housemate/internal/models"
)

// ErrNotFound is returned (wrapped) when a record does not exist.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned (wrapped) when a unique constraint would be violated.
var ErrConflict = errors.New("already exists")

// Page selects one zero-based page of a listing.
type Page struct {
	Index int
	Size  int
}

// Offset is the number of rows skipped before this page.
func (p Page) Offset() int {
	return p.Index * p.Size
}

// MemberStore persists members. The auth package depends only on this part.
type MemberStore interface {
	CreateMember(ctx context.Context, member *models.Member) error
	GetMemberByLoginID(ctx context.Context, loginID string) (*models.Member, error)
	GetMemberByID(ctx context.Context, id int64) (*models.Member, error)
}

// Store defines every persistence operation the API needs.
// This abstraction allows swapping storage backends without changing the
// handlers.
type Store interface {
	MemberStore

	// CreateGroup persists the group and makes creatorID its first member.
	CreateGroup(ctx context.Context, group *models.Group, creatorID int64) error
	GetGroup(ctx context.Context, id int64) (*models.Group, error)
	GetGroupByInviteCode(ctx context.Context, code string) (*models.Group, error)
	// JoinGroup moves the member into the group.
	JoinGroup(ctx context.Context, groupID, memberID int64) error

	CreatePuzzle(ctx context.Context, puzzle *models.Puzzle) error
	GetPuzzle(ctx context.Context, id int64) (*models.Puzzle, error)
	UpdatePuzzle(ctx context.Context, puzzle *models.Puzzle) error
	DeletePuzzle(ctx context.Context, id int64) error
	ListPuzzles(ctx context.Context, groupID int64, page Page) ([]models.Puzzle, int64, error)
	// ListPuzzlesByMonth returns the puzzles whose scheduled date starts with
	// month (YYYY-MM). An empty month returns every puzzle of the group.
	ListPuzzlesByMonth(ctx context.Context, groupID int64, month string) ([]models.Puzzle, error)

	// CreateAccount persists the account with its participants.
	CreateAccount(ctx context.Context, account *models.Account) error
	GetAccount(ctx context.Context, id int64) (*models.Account, error)
	UpdateAccountStatus(ctx context.Context, id int64, status string) error
	// SetParticipantPaid marks one share paid and completes the account when
	// every share is paid. It returns the updated account.
	SetParticipantPaid(ctx context.Context, accountID, memberID int64) (*models.Account, error)
	DeleteAccount(ctx context.Context, id int64) error
	ListAccounts(ctx context.Context, groupID int64, page Page) ([]models.Account, int64, error)
	ListAllAccounts(ctx context.Context, groupID int64) ([]models.Account, error)

	CreateRulebook(ctx context.Context, rulebook *models.Rulebook) error
	GetRulebook(ctx context.Context, id int64) (*models.Rulebook, error)
	UpdateRulebook(ctx context.Context, rulebook *models.Rulebook) error
	DeleteRulebook(ctx context.Context, id int64) error
	ListRulebooks(ctx context.Context, groupID int64, page Page) ([]models.Rulebook, int64, error)

	CreateChatMessage(ctx context.Context, msg *models.ChatMessage) error
	// ListChatMessages returns newest first.
	ListChatMessages(ctx context.Context, groupID int64, page Page) ([]models.ChatMessage, int64, error)

	CreateNotifications(ctx context.Context, notifications []*models.Notification) error
	ListNotifications(ctx context.Context, memberID int64, page Page) ([]models.Notification, int64, error)
	MarkNotificationRead(ctx context.Context, memberID, id int64) error

	// Close releases any resources held by the store.
	Close() error
}
