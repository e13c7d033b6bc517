package httpapi

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/mmynk/housemate/internal/api"
	"github.com/mmynk/housemate/internal/middleware"
	"github.com/mmynk/housemate/internal/models"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req api.RegisterRequest
	if err := h.decode(r, &req); err != nil {
		fail(w, r, err)
		return
	}

	member, err := h.auth.Register(r.Context(), req.LoginID, req.DisplayName, req.Password)
	if err != nil {
		fail(w, r, err)
		return
	}
	resp, err := h.issue(member)
	if err != nil {
		fail(w, r, err)
		return
	}
	slog.Info("Member registered", "member_id", member.ID, "login_id", member.LoginID)
	ok(w, http.StatusCreated, resp)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req api.LoginRequest
	if err := h.decode(r, &req); err != nil {
		fail(w, r, err)
		return
	}

	member, err := h.auth.Authenticate(r.Context(), req.LoginID, req.Password)
	if err != nil {
		fail(w, r, err)
		return
	}

	resp, err := h.issue(member)
	if err != nil {
		fail(w, r, err)
		return
	}
	ok(w, http.StatusOK, resp)
}

func (h *Handler) issue(member *models.Member) (*api.AuthResponse, error) {
	token, err := h.jwt.Generate(member)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return &api.AuthResponse{Token: token, Member: *member}, nil
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	member, err := h.store.GetMemberByID(r.Context(), middleware.GetMemberID(r.Context()))
	if err != nil {
		fail(w, r, err)
		return
	}
	ok(w, http.StatusOK, member)
}
