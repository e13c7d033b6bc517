package api

import (
	"github.com/mmynk/housemate/internal/calculator"
	"github.com/mmynk/housemate/internal/calendar"
	"github.com/mmynk/housemate/internal/cards"
	"github.com/mmynk/housemate/internal/models"
)

// RegisterRequest creates a member.
type RegisterRequest struct {
	LoginID     string `json:"loginId" validate:"required,min=3,max=32"`
	DisplayName string `json:"name" validate:"required,max=64"`
	Password    string `json:"password" validate:"required"`
}

// LoginRequest exchanges credentials for a token.
type LoginRequest struct {
	LoginID  string `json:"loginId" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse carries the bearer token for subsequent requests.
type AuthResponse struct {
	Token  string        `json:"token"`
	Member models.Member `json:"member"`
}

// CreateGroupRequest creates a household with the caller as first member.
type CreateGroupRequest struct {
	Name string `json:"name" validate:"required,max=64"`
}

// JoinGroupRequest joins a household by invite code.
type JoinGroupRequest struct {
	InviteCode string `json:"inviteCode" validate:"required"`
}

// BalancesResponse is the settlement position of every member.
type BalancesResponse struct {
	Balances []calculator.MemberBalance `json:"balances"`
	Debts    []calculator.DebtEdge      `json:"debts"`
}

// PuzzleRequest creates or edits a calendar item.
type PuzzleRequest struct {
	Title         string `json:"title" validate:"required,max=100"`
	Description   string `json:"description" validate:"max=1000"`
	ScheduledDate string `json:"scheduledDate" validate:"required,datetime=2006-01-02"`
	Done          bool   `json:"done"`
}

// PuzzlePatch edits a calendar item; nil fields are left unchanged.
type PuzzlePatch struct {
	Title         *string `json:"title" validate:"omitempty,min=1,max=100"`
	Description   *string `json:"description" validate:"omitempty,max=1000"`
	ScheduledDate *string `json:"scheduledDate" validate:"omitempty,datetime=2006-01-02"`
	Done          *bool   `json:"done"`
}

// CalendarResponse maps YYYY-MM-DD to that day's markers.
type CalendarResponse struct {
	Month string                  `json:"month"`
	Dots  map[string]calendar.Day `json:"dots"`
}

// AccountRequest creates an expense split evenly among the participants.
// The creator is added to the participants when missing.
type AccountRequest struct {
	Title          string  `json:"title" validate:"required,max=100"`
	Description    string  `json:"description" validate:"max=1000"`
	Date           string  `json:"date" validate:"required,datetime=2006-01-02"`
	TotalAmount    int64   `json:"totalAmount" validate:"gte=0"`
	ImageURL       string  `json:"imageUrl" validate:"omitempty,url"`
	ParticipantIDs []int64 `json:"participantIds" validate:"required,min=1,dive,gt=0"`
}

// AccountStatusRequest changes an account's status.
type AccountStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=PENDING COMPLETED"`
}

// Card views. ViewAll (or an empty view) returns all three.
const (
	ViewList   = "list"
	ViewPaid   = "paid"
	ViewUnpaid = "unpaid"
	ViewAll    = "all"
)

// CardsResponse holds the requested card view; the others stay empty.
type CardsResponse struct {
	View   string             `json:"view"`
	List   []cards.ListCard   `json:"list,omitempty"`
	Paid   []cards.PaidCard   `json:"paid,omitempty"`
	Unpaid []cards.UnpaidCard `json:"unpaid,omitempty"`
}

// RulebookRequest creates or edits a house rule.
type RulebookRequest struct {
	Title   string `json:"title" validate:"required,max=100"`
	Content string `json:"content" validate:"max=4000"`
}

// ChatRequest posts a chat message.
type ChatRequest struct {
	Content string `json:"content" validate:"required,max=2000"`
}
