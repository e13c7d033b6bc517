// Package cards maps accounts onto the display cards of the settlement
// screens: the full list, the "paid" carousel and the "unpaid" carousel.
package cards

import (
	"github.com/mmynk/housemate/internal/models"
	"github.com/mmynk/housemate/internal/ownership"
)

// Card statuses and carousel themes.
const (
	StatusDone = "done"
	StatusTodo = "todo"

	ThemeYellow = "yellow"
	ThemePurple = "purple"
)

// MaxAvatars caps the avatars shown on a list card.
const MaxAvatars = 4

// ListCard is a row of the settlement list.
type ListCard struct {
	ID          int64            `json:"id"`
	Title       string           `json:"title"`
	Date        string           `json:"date"`
	PrevAmount  string           `json:"prevAmount"`
	FinalAmount string           `json:"finalAmount"`
	Avatars     []string         `json:"avatars"`
	Status      string           `json:"status"`
	Author      ownership.Author `json:"author"`
	AmountValid bool             `json:"amountValid"`
}

// PaidCard is a card of the "paid" carousel. ImageURL is empty when the
// account has no picture and the app shows a text placeholder instead.
type PaidCard struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Date        string `json:"date"`
	Amount      string `json:"amount"`
	Color       string `json:"color"`
	ImageURL    string `json:"imageUrl,omitempty"`
	AmountValid bool   `json:"amountValid"`
}

// UnpaidCard is a card of the "unpaid" carousel.
type UnpaidCard struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Amount      string `json:"amount"`
	AmountValid bool   `json:"amountValid"`
}

// ToListItems builds one card per account regardless of status.
func ToListItems(accounts []models.Account, actorID string) []ListCard {
	items := make([]ListCard, 0, len(accounts))
	for i := range accounts {
		a := &accounts[i]
		status := StatusTodo
		if a.Completed() {
			status = StatusDone
		}
		items = append(items, ListCard{
			ID:          a.ID,
			Title:       a.Title,
			Date:        DateLabel(accountDate(a)),
			PrevAmount:  FormatWon(-a.TotalAmount.OrZero()),
			FinalAmount: FormatWon(a.ReceiveAmount.OrZero()),
			Avatars:     avatars(a.Participants),
			Status:      status,
			Author:      ownership.Classify(a, actorID, nil),
			AmountValid: a.TotalAmount.Valid && a.ReceiveAmount.Valid,
		})
	}
	return items
}

// ToPaidItems builds a carousel card per account, yellow for the actor's own
// accounts and purple for everyone else's.
func ToPaidItems(accounts []models.Account, actorID string) []PaidCard {
	items := make([]PaidCard, 0, len(accounts))
	for i := range accounts {
		a := &accounts[i]
		color := ThemePurple
		if ownership.IsMine(a, actorID) {
			color = ThemeYellow
		}
		items = append(items, PaidCard{
			ID:          a.ID,
			Title:       a.Title,
			Date:        DateLabel(accountDate(a)),
			Amount:      FormatWon(a.TotalAmount.OrZero()),
			Color:       color,
			ImageURL:    a.ImageURL,
			AmountValid: a.TotalAmount.Valid,
		})
	}
	return items
}

// ToUnpaidItems keeps only accounts that are not completed.
func ToUnpaidItems(accounts []models.Account) []UnpaidCard {
	items := make([]UnpaidCard, 0, len(accounts))
	for i := range accounts {
		a := &accounts[i]
		if a.Completed() {
			continue
		}
		items = append(items, UnpaidCard{
			ID:          a.ID,
			Title:       a.Title,
			Amount:      FormatWon(-a.TotalAmount.OrZero()),
			AmountValid: a.TotalAmount.Valid,
		})
	}
	return items
}

func accountDate(a *models.Account) string {
	if a.Date != "" {
		return a.Date
	}
	return a.CreatedAt
}

func avatars(participants []models.Participant) []string {
	n := min(len(participants), MaxAvatars)
	urls := make([]string, 0, n)
	for _, p := range participants[:n] {
		if p.AvatarURL != "" {
			urls = append(urls, p.AvatarURL)
			continue
		}
		urls = append(urls, IdenticonURL(avatarSeed(p.Name, p.LoginID, p.MemberID)))
	}
	return urls
}
