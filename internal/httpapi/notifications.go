package httpapi

import (
	"net/http"

	"github.com/mmynk/housemate/internal/api"
	"github.com/mmynk/housemate/internal/middleware"
)

func (h *Handler) listNotifications(w http.ResponseWriter, r *http.Request) {
	page, err := pageParam(r)
	if err != nil {
		fail(w, r, err)
		return
	}

	memberID := middleware.GetMemberID(r.Context())
	notifications, total, err := h.store.ListNotifications(r.Context(), memberID, page)
	if err != nil {
		fail(w, r, err)
		return
	}
	ok(w, http.StatusOK, api.NewPage(notifications, page.Index, page.Size, total))
}

// readNotification marks one of the caller's notifications read. Another
// member's notification is reported as not found.
func (h *Handler) readNotification(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		fail(w, r, err)
		return
	}
	if err := h.store.MarkNotificationRead(r.Context(), middleware.GetMemberID(r.Context()), id); err != nil {
		fail(w, r, err)
		return
	}
	ok(w, http.StatusOK, nil)
}
