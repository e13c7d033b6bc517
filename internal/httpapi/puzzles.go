package httpapi

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/mmynk/housemate/internal/api"
	"github.com/mmynk/housemate/internal/middleware"
	"github.com/mmynk/housemate/internal/models"
	"github.com/mmynk/housemate/internal/storage"
)

func (h *Handler) listPuzzles(w http.ResponseWriter, r *http.Request) {
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

	puzzles, total, err := h.store.ListPuzzles(r.Context(), group.ID, page)
	if err != nil {
		fail(w, r, err)
		return
	}
	ok(w, http.StatusOK, api.NewPage(puzzles, page.Index, page.Size, total))
}

func (h *Handler) calendar(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")
	if err := api.ValidMonth(month); err != nil {
		fail(w, r, err)
		return
	}
	group, err := h.currentGroup(r.Context())
	if err != nil {
		fail(w, r, err)
		return
	}

	puzzles, err := h.store.ListPuzzlesByMonth(r.Context(), group.ID, month)
	if err != nil {
		fail(w, r, err)
		return
	}
	ok(w, http.StatusOK, api.NewCalendarResponse(month, puzzles, middleware.GetLoginID(r.Context())))
}

func (h *Handler) createPuzzle(w http.ResponseWriter, r *http.Request) {
	var req api.PuzzleRequest
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
	puzzle := &models.Puzzle{
		GroupID:       group.ID,
		Title:         req.Title,
		Description:   req.Description,
		ScheduledDate: req.ScheduledDate,
		MemberID:      middleware.GetMemberID(ctx),
		MemberLoginID: middleware.GetLoginID(ctx),
		Done:          req.Done,
	}
	if err := h.store.CreatePuzzle(ctx, puzzle); err != nil {
		fail(w, r, err)
		return
	}

	message := fmt.Sprintf("%s added %q on %s", puzzle.MemberLoginID, puzzle.Title, puzzle.ScheduledDate)
	if err := h.notifier.Notify(ctx, group, puzzle.MemberID, models.NotifyPuzzleCreated, message, puzzle.ID); err != nil {
		slog.Warn("Failed to notify group", "puzzle_id", puzzle.ID, "error", err)
	}

	slog.Info("Puzzle created", "puzzle_id", puzzle.ID, "group_id", group.ID)
	ok(w, http.StatusCreated, puzzle)
}

// groupPuzzle loads a puzzle of the caller's group. Puzzles of other groups
// are reported as not found.
func (h *Handler) groupPuzzle(r *http.Request) (*models.Puzzle, error) {
	id, err := pathID(r, "id")
	if err != nil {
		return nil, err
	}
	group, err := h.currentGroup(r.Context())
	if err != nil {
		return nil, err
	}
	puzzle, err := h.store.GetPuzzle(r.Context(), id)
	if err != nil {
		return nil, err
	}
	if puzzle.GroupID != group.ID {
		return nil, fmt.Errorf("puzzle %d: %w", id, storage.ErrNotFound)
	}
	return puzzle, nil
}

func (h *Handler) updatePuzzle(w http.ResponseWriter, r *http.Request) {
	puzzle, err := h.groupPuzzle(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	var patch api.PuzzlePatch
	if err := h.decode(r, &patch); err != nil {
		fail(w, r, err)
		return
	}

	if patch.Title != nil {
		puzzle.Title = *patch.Title
	}
	if patch.Description != nil {
		puzzle.Description = *patch.Description
	}
	if patch.ScheduledDate != nil {
		puzzle.ScheduledDate = *patch.ScheduledDate
	}
	if patch.Done != nil {
		puzzle.Done = *patch.Done
	}
	if err := h.store.UpdatePuzzle(r.Context(), puzzle); err != nil {
		fail(w, r, err)
		return
	}
	ok(w, http.StatusOK, puzzle)
}

func (h *Handler) deletePuzzle(w http.ResponseWriter, r *http.Request) {
	puzzle, err := h.groupPuzzle(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	if puzzle.MemberID != middleware.GetMemberID(r.Context()) {
		fail(w, r, forbidden("only the creator can delete this puzzle"))
		return
	}
	if err := h.store.DeletePuzzle(r.Context(), puzzle.ID); err != nil {
		fail(w, r, err)
		return
	}

	slog.Info("Puzzle deleted", "puzzle_id", puzzle.ID)
	ok(w, http.StatusOK, nil)
}
