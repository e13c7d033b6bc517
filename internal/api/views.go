package api

import (
	"errors"
	"fmt"
	"time"

	"github.com/mmynk/housemate/internal/calendar"
	"github.com/mmynk/housemate/internal/cards"
	"github.com/mmynk/housemate/internal/models"
)

// ErrUnknownView is returned for a card view other than list, paid, unpaid or all.
var ErrUnknownView = errors.New("view must be one of list, paid, unpaid, all")

// ErrBadMonth is returned for a month that is not YYYY-MM.
var ErrBadMonth = errors.New("month must be YYYY-MM")

// ValidMonth accepts "" (every month) or YYYY-MM.
func ValidMonth(month string) error {
	if month == "" {
		return nil
	}
	if _, err := time.Parse("2006-01", month); err != nil {
		return fmt.Errorf("%w: %q", ErrBadMonth, month)
	}
	return nil
}

// NewCalendarResponse buckets puzzles into per-day markers for actorID.
func NewCalendarResponse(month string, puzzles []models.Puzzle, actorID string) CalendarResponse {
	records := make([]*models.Puzzle, len(puzzles))
	for i := range puzzles {
		records[i] = &puzzles[i]
	}
	return CalendarResponse{Month: month, Dots: calendar.BuildDots(actorID, records)}
}

// NewCardsResponse renders accounts in the requested view for actorID.
func NewCardsResponse(view string, accounts []models.Account, actorID string) (CardsResponse, error) {
	resp := CardsResponse{View: view}
	switch view {
	case ViewList:
		resp.List = cards.ToListItems(accounts, actorID)
	case ViewPaid:
		resp.Paid = cards.ToPaidItems(accounts, actorID)
	case ViewUnpaid:
		resp.Unpaid = cards.ToUnpaidItems(accounts)
	case "", ViewAll:
		resp.View = ViewAll
		resp.List = cards.ToListItems(accounts, actorID)
		resp.Paid = cards.ToPaidItems(accounts, actorID)
		resp.Unpaid = cards.ToUnpaidItems(accounts)
	default:
		return CardsResponse{}, fmt.Errorf("%w: %q", ErrUnknownView, view)
	}
	return resp, nil
}
