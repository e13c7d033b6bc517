package httpapi

import (
	"fmt"
	"net/http"

	"github.com/mmynk/housemate/internal/api"
	"github.com/mmynk/housemate/internal/middleware"
	"github.com/mmynk/housemate/internal/models"
	"github.com/mmynk/housemate/internal/storage"
)

func (h *Handler) listRulebooks(w http.ResponseWriter, r *http.Request) {
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

	rulebooks, total, err := h.store.ListRulebooks(r.Context(), group.ID, page)
	if err != nil {
		fail(w, r, err)
		return
	}
	ok(w, http.StatusOK, api.NewPage(rulebooks, page.Index, page.Size, total))
}

func (h *Handler) createRulebook(w http.ResponseWriter, r *http.Request) {
	var req api.RulebookRequest
	if err := h.decode(r, &req); err != nil {
		fail(w, r, err)
		return
	}
	group, err := h.currentGroup(r.Context())
	if err != nil {
		fail(w, r, err)
		return
	}

	rulebook := &models.Rulebook{
		GroupID:   group.ID,
		Title:     req.Title,
		Content:   req.Content,
		CreatedBy: middleware.GetMemberID(r.Context()),
	}
	if err := h.store.CreateRulebook(r.Context(), rulebook); err != nil {
		fail(w, r, err)
		return
	}
	ok(w, http.StatusCreated, rulebook)
}

func (h *Handler) groupRulebook(r *http.Request) (*models.Rulebook, error) {
	id, err := pathID(r, "id")
	if err != nil {
		return nil, err
	}
	group, err := h.currentGroup(r.Context())
	if err != nil {
		return nil, err
	}
	rulebook, err := h.store.GetRulebook(r.Context(), id)
	if err != nil {
		return nil, err
	}
	if rulebook.GroupID != group.ID {
		return nil, fmt.Errorf("rulebook %d: %w", id, storage.ErrNotFound)
	}
	return rulebook, nil
}

func (h *Handler) updateRulebook(w http.ResponseWriter, r *http.Request) {
	rulebook, err := h.groupRulebook(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	var req api.RulebookRequest
	if err := h.decode(r, &req); err != nil {
		fail(w, r, err)
		return
	}

	rulebook.Title = req.Title
	rulebook.Content = req.Content
	if err := h.store.UpdateRulebook(r.Context(), rulebook); err != nil {
		fail(w, r, err)
		return
	}
	ok(w, http.StatusOK, rulebook)
}

func (h *Handler) deleteRulebook(w http.ResponseWriter, r *http.Request) {
	rulebook, err := h.groupRulebook(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	if rulebook.CreatedBy != middleware.GetMemberID(r.Context()) {
		fail(w, r, forbidden("only the creator can delete this rule"))
		return
	}
	if err := h.store.DeleteRulebook(r.Context(), rulebook.ID); err != nil {
		fail(w, r, err)
		return
	}
	ok(w, http.StatusOK, nil)
}
