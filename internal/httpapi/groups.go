package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/mmynk/housemate/internal/api"
	"github.com/mmynk/housemate/internal/calculator"
	"github.com/mmynk/housemate/internal/middleware"
	"github.com/mmynk/housemate/internal/models"
	"github.com/mmynk/housemate/internal/storage"
)

// inviteAttempts bounds retries on invite code collisions.
const inviteAttempts = 3

// currentGroup returns the caller's household, or 403 when they have none.
func (h *Handler) currentGroup(ctx context.Context) (*models.Group, error) {
	member, err := h.store.GetMemberByID(ctx, middleware.GetMemberID(ctx))
	if err != nil {
		return nil, err
	}
	if member.GroupID == 0 {
		return nil, forbidden("join or create a group first")
	}
	return h.store.GetGroup(ctx, member.GroupID)
}

func newInviteCode() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

func (h *Handler) createGroup(w http.ResponseWriter, r *http.Request) {
	var req api.CreateGroupRequest
	if err := h.decode(r, &req); err != nil {
		fail(w, r, err)
		return
	}

	memberID := middleware.GetMemberID(r.Context())
	group := &models.Group{Name: strings.TrimSpace(req.Name)}
	var err error
	for range inviteAttempts {
		group.InviteCode = newInviteCode()
		if err = h.store.CreateGroup(r.Context(), group, memberID); !errors.Is(err, storage.ErrConflict) {
			break
		}
	}
	if err != nil {
		fail(w, r, err)
		return
	}

	slog.Info("Group created", "group_id", group.ID, "member_id", memberID)
	ok(w, http.StatusCreated, group)
}

func (h *Handler) joinGroup(w http.ResponseWriter, r *http.Request) {
	var req api.JoinGroupRequest
	if err := h.decode(r, &req); err != nil {
		fail(w, r, err)
		return
	}

	group, err := h.store.GetGroupByInviteCode(r.Context(), strings.ToUpper(strings.TrimSpace(req.InviteCode)))
	if err != nil {
		fail(w, r, err)
		return
	}
	memberID := middleware.GetMemberID(r.Context())
	if err := h.store.JoinGroup(r.Context(), group.ID, memberID); err != nil {
		fail(w, r, err)
		return
	}
	if group, err = h.store.GetGroup(r.Context(), group.ID); err != nil {
		fail(w, r, err)
		return
	}

	slog.Info("Member joined group", "group_id", group.ID, "member_id", memberID)
	ok(w, http.StatusOK, group)
}

func (h *Handler) myGroup(w http.ResponseWriter, r *http.Request) {
	group, err := h.currentGroup(r.Context())
	if err != nil {
		fail(w, r, err)
		return
	}
	ok(w, http.StatusOK, group)
}

func (h *Handler) balances(w http.ResponseWriter, r *http.Request) {
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

	balances, debts := calculator.GroupBalances(accounts)
	ok(w, http.StatusOK, api.BalancesResponse{Balances: balances, Debts: debts})
}
