package httpapi

import (
	"net/http"

	"github.com/mmynk/housemate/internal/api"
	"github.com/mmynk/housemate/internal/middleware"
	"github.com/mmynk/housemate/internal/models"
)

// listChat pages through the group chat, newest first.
func (h *Handler) listChat(w http.ResponseWriter, r *http.Request) {
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

	messages, total, err := h.store.ListChatMessages(r.Context(), group.ID, page)
	if err != nil {
		fail(w, r, err)
		return
	}
	ok(w, http.StatusOK, api.NewPage(messages, page.Index, page.Size, total))
}

func (h *Handler) postChat(w http.ResponseWriter, r *http.Request) {
	var req api.ChatRequest
	if err := h.decode(r, &req); err != nil {
		fail(w, r, err)
		return
	}
	group, err := h.currentGroup(r.Context())
	if err != nil {
		fail(w, r, err)
		return
	}

	msg := &models.ChatMessage{
		GroupID:       group.ID,
		SenderID:      middleware.GetMemberID(r.Context()),
		SenderLoginID: middleware.GetLoginID(r.Context()),
		Content:       req.Content,
	}
	if err := h.store.CreateChatMessage(r.Context(), msg); err != nil {
		fail(w, r, err)
		return
	}
	ok(w, http.StatusCreated, msg)
}
