package client

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/mmynk/housemate/internal/api"
	"github.com/mmynk/housemate/internal/models"
)

// CalendarScreen loads the caller's identity and every puzzle concurrently,
// then buckets the puzzles of month (YYYY-MM, or "" for all) into markers
// locally.
func (c *Client) CalendarScreen(ctx context.Context, month string) (*api.CalendarResponse, error) {
	if err := api.ValidMonth(month); err != nil {
		return nil, err
	}

	var (
		actor   string
		puzzles []models.Puzzle
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		actor, err = c.identity.LoginID(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		puzzles, err = c.AllPuzzles(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	inMonth := puzzles[:0]
	for _, p := range puzzles {
		if strings.HasPrefix(p.ScheduledDate, month) {
			inMonth = append(inMonth, p)
		}
	}
	resp := api.NewCalendarResponse(month, inMonth, actor)
	return &resp, nil
}

// AccountScreen loads identity and accounts concurrently and renders all
// three card views.
func (c *Client) AccountScreen(ctx context.Context) (*api.CardsResponse, error) {
	var (
		actor    string
		accounts []models.Account
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		actor, err = c.identity.LoginID(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		accounts, err = c.AllAccounts(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	resp, err := api.NewCardsResponse(api.ViewAll, accounts, actor)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}
