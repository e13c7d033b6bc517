package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/mmynk/housemate/internal/api"
	"github.com/mmynk/housemate/internal/models"
)

// Register creates a member and starts using the returned token.
func (c *Client) Register(ctx context.Context, req api.RegisterRequest) (*api.AuthResponse, error) {
	var resp api.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", nil, req, &resp); err != nil {
		return nil, err
	}
	c.SetToken(resp.Token)
	return &resp, nil
}

// Login authenticates and starts using the returned token.
func (c *Client) Login(ctx context.Context, loginID, password string) (*api.AuthResponse, error) {
	var resp api.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, api.LoginRequest{LoginID: loginID, Password: password}, &resp); err != nil {
		return nil, err
	}
	c.SetToken(resp.Token)
	return &resp, nil
}

// Me returns the authenticated member.
func (c *Client) Me(ctx context.Context) (*models.Member, error) {
	var m models.Member
	if err := c.do(ctx, http.MethodGet, "/members/me", nil, nil, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (c *Client) CreateGroup(ctx context.Context, name string) (*models.Group, error) {
	var g models.Group
	if err := c.do(ctx, http.MethodPost, "/groups", nil, api.CreateGroupRequest{Name: name}, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

func (c *Client) JoinGroup(ctx context.Context, inviteCode string) (*models.Group, error) {
	var g models.Group
	if err := c.do(ctx, http.MethodPost, "/groups/join", nil, api.JoinGroupRequest{InviteCode: inviteCode}, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

func (c *Client) MyGroup(ctx context.Context) (*models.Group, error) {
	var g models.Group
	if err := c.do(ctx, http.MethodGet, "/groups/me", nil, nil, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

func (c *Client) Balances(ctx context.Context) (*api.BalancesResponse, error) {
	var b api.BalancesResponse
	if err := c.do(ctx, http.MethodGet, "/groups/me/balances", nil, nil, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// ListPuzzles returns one page of puzzles; size 0 uses the server default.
func (c *Client) ListPuzzles(ctx context.Context, page, size int) (*api.Page[models.Puzzle], error) {
	var p api.Page[models.Puzzle]
	if err := c.do(ctx, http.MethodGet, "/puzzles", pageQuery(page, size), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// AllPuzzles walks every page of puzzles.
func (c *Client) AllPuzzles(ctx context.Context) ([]models.Puzzle, error) {
	return collect(ctx, c.ListPuzzles)
}

func (c *Client) CreatePuzzle(ctx context.Context, req api.PuzzleRequest) (*models.Puzzle, error) {
	var p models.Puzzle
	if err := c.do(ctx, http.MethodPost, "/puzzles", nil, req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) UpdatePuzzle(ctx context.Context, id int64, patch api.PuzzlePatch) (*models.Puzzle, error) {
	var p models.Puzzle
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/puzzles/%d", id), nil, patch, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) DeletePuzzle(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/puzzles/%d", id), nil, nil, nil)
}

// Calendar returns the server-built calendar markers for month (YYYY-MM).
func (c *Client) Calendar(ctx context.Context, month string) (*api.CalendarResponse, error) {
	var cal api.CalendarResponse
	if err := c.do(ctx, http.MethodGet, "/puzzles/calendar", url.Values{"month": {month}}, nil, &cal); err != nil {
		return nil, err
	}
	return &cal, nil
}

func (c *Client) ListAccounts(ctx context.Context, page, size int) (*api.Page[models.Account], error) {
	var p api.Page[models.Account]
	if err := c.do(ctx, http.MethodGet, "/accounts", pageQuery(page, size), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// AllAccounts walks every page of accounts.
func (c *Client) AllAccounts(ctx context.Context) ([]models.Account, error) {
	return collect(ctx, c.ListAccounts)
}

func (c *Client) GetAccount(ctx context.Context, id int64) (*models.Account, error) {
	var a models.Account
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/accounts/%d", id), nil, nil, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (c *Client) CreateAccount(ctx context.Context, req api.AccountRequest) (*models.Account, error) {
	var a models.Account
	if err := c.do(ctx, http.MethodPost, "/accounts", nil, req, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (c *Client) SetAccountStatus(ctx context.Context, id int64, status string) (*models.Account, error) {
	var a models.Account
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/accounts/%d/status", id), nil, api.AccountStatusRequest{Status: status}, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (c *Client) MarkPaid(ctx context.Context, accountID, memberID int64) (*models.Account, error) {
	var a models.Account
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/accounts/%d/participants/%d/paid", accountID, memberID), nil, nil, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (c *Client) DeleteAccount(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/accounts/%d", id), nil, nil, nil)
}

// AccountCards returns the server-built cards for view.
func (c *Client) AccountCards(ctx context.Context, view string) (*api.CardsResponse, error) {
	var cards api.CardsResponse
	if err := c.do(ctx, http.MethodGet, "/accounts/cards", url.Values{"view": {view}}, nil, &cards); err != nil {
		return nil, err
	}
	return &cards, nil
}

func (c *Client) ListRulebooks(ctx context.Context, page, size int) (*api.Page[models.Rulebook], error) {
	var p api.Page[models.Rulebook]
	if err := c.do(ctx, http.MethodGet, "/rulebooks", pageQuery(page, size), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) CreateRulebook(ctx context.Context, req api.RulebookRequest) (*models.Rulebook, error) {
	var r models.Rulebook
	if err := c.do(ctx, http.MethodPost, "/rulebooks", nil, req, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func (c *Client) UpdateRulebook(ctx context.Context, id int64, req api.RulebookRequest) (*models.Rulebook, error) {
	var r models.Rulebook
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/rulebooks/%d", id), nil, req, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func (c *Client) DeleteRulebook(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/rulebooks/%d", id), nil, nil, nil)
}

// ListChat returns one page of chat messages, newest first.
func (c *Client) ListChat(ctx context.Context, page, size int) (*api.Page[models.ChatMessage], error) {
	var p api.Page[models.ChatMessage]
	if err := c.do(ctx, http.MethodGet, "/chat", pageQuery(page, size), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) PostChat(ctx context.Context, content string) (*models.ChatMessage, error) {
	var m models.ChatMessage
	if err := c.do(ctx, http.MethodPost, "/chat", nil, api.ChatRequest{Content: content}, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (c *Client) ListNotifications(ctx context.Context, page, size int) (*api.Page[models.Notification], error) {
	var p api.Page[models.Notification]
	if err := c.do(ctx, http.MethodGet, "/notifications", pageQuery(page, size), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) ReadNotification(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/notifications/%d/read", id), nil, nil, nil)
}
