// Package httpapi serves the housemate REST API under /api/v1. Every
// response is wrapped in an api.Envelope.
package httpapi

import (
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/mmynk/housemate/internal/api"
	"github.com/mmynk/housemate/internal/auth"
	"github.com/mmynk/housemate/internal/middleware"
	"github.com/mmynk/housemate/internal/notify"
	"github.com/mmynk/housemate/internal/storage"
)

// Prefix is the path prefix of every REST route.
const Prefix = api.Prefix

// Handler implements the REST API.
type Handler struct {
	store    storage.Store
	auth     auth.Authenticator
	jwt      *auth.JWTManager
	notifier *notify.Notifier
	validate *validator.Validate
}

// New creates the REST handler. A nil notifier stores notifications without
// publishing them.
func New(store storage.Store, authenticator auth.Authenticator, jwtManager *auth.JWTManager, notifier *notify.Notifier) *Handler {
	if notifier == nil {
		notifier = notify.NewNotifier(store, nil)
	}
	return &Handler{
		store:    store,
		auth:     authenticator,
		jwt:      jwtManager,
		notifier: notifier,
		validate: newValidator(),
	}
}

// newValidator reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Register adds every route to mux.
func (h *Handler) Register(mux *http.ServeMux) {
	protected := middleware.BearerAuth(h.jwt)
	handle := func(pattern string, fn http.HandlerFunc) {
		method, path, _ := strings.Cut(pattern, " ")
		mux.Handle(method+" "+Prefix+path, protected(fn))
	}

	mux.HandleFunc("GET /healthz", h.healthz)
	mux.HandleFunc("POST "+Prefix+"/auth/register", h.register)
	mux.HandleFunc("POST "+Prefix+"/auth/login", h.login)

	handle("GET /members/me", h.me)

	handle("POST /groups", h.createGroup)
	handle("POST /groups/join", h.joinGroup)
	handle("GET /groups/me", h.myGroup)
	handle("GET /groups/me/balances", h.balances)

	handle("GET /puzzles", h.listPuzzles)
	handle("POST /puzzles", h.createPuzzle)
	handle("GET /puzzles/calendar", h.calendar)
	handle("PATCH /puzzles/{id}", h.updatePuzzle)
	handle("DELETE /puzzles/{id}", h.deletePuzzle)

	handle("GET /accounts", h.listAccounts)
	handle("POST /accounts", h.createAccount)
	handle("GET /accounts/cards", h.accountCards)
	handle("GET /accounts/{id}", h.getAccount)
	handle("PATCH /accounts/{id}/status", h.updateAccountStatus)
	handle("POST /accounts/{id}/participants/{memberId}/paid", h.markPaid)
	handle("DELETE /accounts/{id}", h.deleteAccount)

	handle("GET /rulebooks", h.listRulebooks)
	handle("POST /rulebooks", h.createRulebook)
	handle("PUT /rulebooks/{id}", h.updateRulebook)
	handle("DELETE /rulebooks/{id}", h.deleteRulebook)

	handle("GET /chat", h.listChat)
	handle("POST /chat", h.postChat)

	handle("GET /notifications", h.listNotifications)
	handle("POST /notifications/{id}/read", h.readNotification)
}

func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	ok(w, http.StatusOK, map[string]string{"status": "ok"})
}
