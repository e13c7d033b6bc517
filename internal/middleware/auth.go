package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/housemate/internal/api"
	"github.com/mmynk/housemate/internal/auth"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	// MemberIDKey is the context key for the authenticated member id.
	MemberIDKey contextKey = "member_id"
	// LoginIDKey is the context key for the authenticated member's login id.
	LoginIDKey contextKey = "login_id"
)

// WithMember stores the authenticated member in ctx.
func WithMember(ctx context.Context, memberID int64, loginID string) context.Context {
	ctx = context.WithValue(ctx, MemberIDKey, memberID)
	return context.WithValue(ctx, LoginIDKey, loginID)
}

// GetMemberID extracts the member id from the context.
// Returns 0 if not found.
func GetMemberID(ctx context.Context) int64 {
	id, _ := ctx.Value(MemberIDKey).(int64)
	return id
}

// GetLoginID extracts the member login id from the context.
// Returns empty string if not found.
func GetLoginID(ctx context.Context) string {
	loginID, _ := ctx.Value(LoginIDKey).(string)
	return loginID
}

// bearerToken parses "Bearer <token>".
func bearerToken(header string) (string, error) {
	if header == "" {
		return "", auth.ErrMissingToken
	}
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", auth.ErrInvalidToken
	}
	return parts[1], nil
}

// RequireAuth returns a Connect interceptor that validates JWT tokens and
// requires authentication. It adds the member id and login id to the
// request context.
func RequireAuth(jwtManager *auth.JWTManager) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			token, err := bearerToken(req.Header().Get("Authorization"))
			if err != nil {
				return nil, connect.NewError(connect.CodeUnauthenticated, err)
			}

			claims, err := jwtManager.Validate(token)
			if err != nil {
				return nil, connect.NewError(connect.CodeUnauthenticated, err)
			}

			return next(WithMember(ctx, claims.MemberID, claims.LoginID), req)
		}
	}
}

// BearerAuth is the net/http counterpart of RequireAuth. Requests without a
// valid token are answered with 401 and never reach next.
func BearerAuth(jwtManager *auth.JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := bearerToken(r.Header.Get("Authorization"))
			if err == nil {
				var claims *auth.Claims
				claims, err = jwtManager.Validate(token)
				if err == nil {
					next.ServeHTTP(w, r.WithContext(WithMember(r.Context(), claims.MemberID, claims.LoginID)))
					return
				}
			}

			message := auth.ErrInvalidToken.Error()
			if errors.Is(err, auth.ErrMissingToken) {
				message = err.Error()
			}
			WriteError(w, http.StatusUnauthorized, api.CodeUnauthorized, message)
		})
	}
}
