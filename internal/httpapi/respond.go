package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/mmynk/housemate/internal/api"
	"github.com/mmynk/housemate/internal/auth"
	"github.com/mmynk/housemate/internal/middleware"
	"github.com/mmynk/housemate/internal/storage"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// apiError is an error with a fixed HTTP status and envelope code.
type apiError struct {
	status  int
	code    string
	message string
}

func (e *apiError) Error() string { return e.message }

func badRequest(format string, args ...any) error {
	return &apiError{http.StatusBadRequest, api.CodeBadRequest, fmt.Sprintf(format, args...)}
}

func forbidden(message string) error {
	return &apiError{http.StatusForbidden, api.CodeForbidden, message}
}

func ok(w http.ResponseWriter, status int, data any) {
	code := api.CodeOK
	if status == http.StatusCreated {
		code = api.CodeCreated
	}
	middleware.WriteJSON(w, status, api.Envelope[any]{
		IsSuccess: true,
		Code:      code,
		Message:   http.StatusText(status),
		Data:      data,
	})
}

// fail maps err onto a status and envelope code. Unknown errors are logged
// and reported as a generic 500.
func fail(w http.ResponseWriter, r *http.Request, err error) {
	var (
		apiErr        *apiError
		validationErr validator.ValidationErrors
	)
	switch {
	case errors.As(err, &apiErr):
		middleware.WriteError(w, apiErr.status, apiErr.code, apiErr.message)
	case errors.As(err, &validationErr):
		middleware.WriteError(w, http.StatusBadRequest, api.CodeBadRequest, describe(validationErr))
	case errors.Is(err, api.ErrBadMonth), errors.Is(err, api.ErrUnknownView), errors.Is(err, auth.ErrWeakPassword):
		middleware.WriteError(w, http.StatusBadRequest, api.CodeBadRequest, err.Error())
	case errors.Is(err, auth.ErrInvalidCredentials):
		middleware.WriteError(w, http.StatusUnauthorized, api.CodeUnauthorized, err.Error())
	case errors.Is(err, storage.ErrNotFound):
		middleware.WriteError(w, http.StatusNotFound, api.CodeNotFound, err.Error())
	case errors.Is(err, storage.ErrConflict), errors.Is(err, auth.ErrLoginIDExists):
		middleware.WriteError(w, http.StatusConflict, api.CodeConflict, err.Error())
	default:
		slog.ErrorContext(r.Context(), "Request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", middleware.GetRequestID(r.Context()),
			"error", err,
		)
		middleware.WriteError(w, http.StatusInternalServerError, api.CodeInternal, "internal server error")
	}
}

func describe(errs validator.ValidationErrors) string {
	fe := errs[0]
	if fe.Param() != "" {
		return fmt.Sprintf("%s failed %s=%s", fe.Field(), fe.Tag(), fe.Param())
	}
	return fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
}

// decode reads a JSON body into dst and validates it.
func (h *Handler) decode(r *http.Request, dst any) error {
	body := io.LimitReader(r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		return badRequest("invalid request body: %v", err)
	}
	return h.validate.Struct(dst)
}

// pageParam reads ?page and ?size; size defaults to 20 and is capped at 100.
func pageParam(r *http.Request) (storage.Page, error) {
	page := storage.Page{Index: 0, Size: api.DefaultPageSize}
	q := r.URL.Query()
	if v := q.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return page, badRequest("page must be a non-negative integer")
		}
		page.Index = n
	}
	if v := q.Get("size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return page, badRequest("size must be a positive integer")
		}
		page.Size = min(n, api.MaxPageSize)
	}
	return page, nil
}

func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id < 1 {
		return 0, badRequest("%s must be a positive integer", name)
	}
	return id, nil
}
