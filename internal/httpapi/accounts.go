package httpapi

import (
	"fmt"
	"log/slog"
	"net/http"
	"slices"

	"github.com/mmynk/housemate/internal/api"
	"github.com/mmynk/housemate/internal/calculator"
	"github.com/mmynk/housemate/internal/middleware"
	"github.com/mmynk/housemate/internal/models"
	"github.com/mmynk/housemate/internal/storage"
)

func (h *Handler) listAccounts(w http.ResponseWriter, r *http.Request) {
	page, err := pageParam(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	group, err := h.currentGroup(r.Context())
	if err != nil {
		fail(w, r, err)
		return
	}

	accounts, total, err := h.store.ListAccounts(r.Context(), group.ID, page)
	if err != nil {
		fail(w, r, err)
		return
	}
	ok(w, http.StatusOK, api.NewPage(accounts, page.Index, page.Size, total))
}

func (h *Handler) accountCards(w http.ResponseWriter, r *http.Request) {
	group, err := h.currentGroup(r.Context())
	if err != nil {
		fail(w, r, err)
		return
	}
	accounts, err := h.store.ListAllAccounts(r.Context(), group.ID)
	if err != nil {
		fail(w, r, err)
		return
	}

	resp, err := api.NewCardsResponse(r.URL.Query().Get("view"), accounts, middleware.GetLoginID(r.Context()))
	if err != nil {
		fail(w, r, err)
		return
	}
	ok(w, http.StatusOK, resp)
}

// participantIDs puts the creator first and drops duplicates.
func participantIDs(creatorID int64, requested []int64) []int64 {
	ids := []int64{creatorID}
	for _, id := range requested {
		if !slices.Contains(ids, id) {
			ids = append(ids, id)
		}
	}
	return ids
}

func (h *Handler) createAccount(w http.ResponseWriter, r *http.Request) {
	var req api.AccountRequest
	if err := h.decode(r, &req); err != nil {
		fail(w, r, err)
		return
	}
	group, err := h.currentGroup(r.Context())
	if err != nil {
		fail(w, r, err)
		return
	}

	ctx := r.Context()
	creatorID := middleware.GetMemberID(ctx)
	account := &models.Account{
		GroupID:     group.ID,
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		TotalAmount: models.Won(req.TotalAmount),
		Status:      models.StatusPending,
		CreatedBy:   creatorID,
		ImageURL:    req.ImageURL,
	}
	for _, id := range participantIDs(creatorID, req.ParticipantIDs) {
		if !group.HasMember(id) {
			fail(w, r, badRequest("member %d is not in this group", id))
			return
		}
		account.Participants = append(account.Participants, models.Participant{MemberID: id})
	}
	if err := calculator.ApplySplit(account); err != nil {
		fail(w, r, badRequest("%v", err))
		return
	}

	if err := h.store.CreateAccount(ctx, account); err != nil {
		fail(w, r, err)
		return
	}
	created, err := h.store.GetAccount(ctx, account.ID)
	if err != nil {
		fail(w, r, err)
		return
	}

	message := fmt.Sprintf("%s added %q: %d won", created.MemberLoginID, created.Title, created.TotalAmount.OrZero())
	if err := h.notifier.Notify(ctx, group, creatorID, models.NotifyAccountCreated, message, created.ID); err != nil {
		slog.Warn("Failed to notify group", "account_id", created.ID, "error", err)
	}

	slog.Info("Account created", "account_id", created.ID, "group_id", group.ID, "participants", len(created.Participants))
	ok(w, http.StatusCreated, created)
}

// groupAccount loads an account of the caller's group. Accounts of other
// groups are reported as not found.
func (h *Handler) groupAccount(r *http.Request) (*models.Account, *models.Group, error) {
	id, err := pathID(r, "id")
	if err != nil {
		return nil, nil, err
	}
	group, err := h.currentGroup(r.Context())
	if err != nil {
		return nil, nil, err
	}
	account, err := h.store.GetAccount(r.Context(), id)
	if err != nil {
		return nil, nil, err
	}
	if account.GroupID != group.ID {
		return nil, nil, fmt.Errorf("account %d: %w", id, storage.ErrNotFound)
	}
	return account, group, nil
}

func (h *Handler) getAccount(w http.ResponseWriter, r *http.Request) {
	account, _, err := h.groupAccount(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	ok(w, http.StatusOK, account)
}

func (h *Handler) updateAccountStatus(w http.ResponseWriter, r *http.Request) {
	account, _, err := h.groupAccount(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	var req api.AccountStatusRequest
	if err := h.decode(r, &req); err != nil {
		fail(w, r, err)
		return
	}
	if account.CreatedBy != middleware.GetMemberID(r.Context()) {
		fail(w, r, forbidden("only the creator can change the status"))
		return
	}

	if err := h.store.UpdateAccountStatus(r.Context(), account.ID, req.Status); err != nil {
		fail(w, r, err)
		return
	}
	account.Status = req.Status
	ok(w, http.StatusOK, account)
}

// markPaid settles one participant's share. The creator may mark anyone;
// other members only themselves.
func (h *Handler) markPaid(w http.ResponseWriter, r *http.Request) {
	account, group, err := h.groupAccount(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	memberID, err := pathID(r, "memberId")
	if err != nil {
		fail(w, r, err)
		return
	}

	ctx := r.Context()
	caller := middleware.GetMemberID(ctx)
	if caller != account.CreatedBy && caller != memberID {
		fail(w, r, forbidden("only the creator or the participant can mark a share paid"))
		return
	}

	updated, err := h.store.SetParticipantPaid(ctx, account.ID, memberID)
	if err != nil {
		fail(w, r, err)
		return
	}

	if updated.Completed() && !account.Completed() {
		message := fmt.Sprintf("%q is fully settled", updated.Title)
		if err := h.notifier.Notify(ctx, group, caller, models.NotifyAccountPaid, message, updated.ID); err != nil {
			slog.Warn("Failed to notify group", "account_id", updated.ID, "error", err)
		}
	}
	ok(w, http.StatusOK, updated)
}

func (h *Handler) deleteAccount(w http.ResponseWriter, r *http.Request) {
	account, _, err := h.groupAccount(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	if account.CreatedBy != middleware.GetMemberID(r.Context()) {
		fail(w, r, forbidden("only the creator can delete this account"))
		return
	}
	if err := h.store.DeleteAccount(r.Context(), account.ID); err != nil {
		fail(w, r, err)
		return
	}

	slog.Info("Account deleted", "account_id", account.ID)
	ok(w, http.StatusOK, nil)
}
