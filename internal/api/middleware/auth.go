package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/recipe-app/api/internal/api/types"
	"github.com/recipe-app/api/internal/models"
	appErr "github.com/recipe-app/api/pkg/errors"
)

type userKeyType string

const UserKey userKeyType = "user"

// TokenAuthenticator resolves a bearer token to an active user.
type TokenAuthenticator interface {
	ParseToken(token string) (uuid.UUID, error)
	ActiveUser(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// Auth validates the Bearer token, loads the user it names and stores it in
// the request context. Anything else is answered with 401 before the handler
// runs.
func Auth(auth TokenAuthenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			scheme, tokenStr, ok := strings.Cut(r.Header.Get("Authorization"), " ")
			if !ok || !strings.EqualFold(scheme, "bearer") || strings.TrimSpace(tokenStr) == "" {
				unauthorized(w, "authentication credentials were not provided")
				return
			}
			id, err := auth.ParseToken(strings.TrimSpace(tokenStr))
			if err != nil {
				unauthorized(w, "invalid token")
				return
			}
			user, err := auth.ActiveUser(r.Context(), id)
			if err != nil {
				if appErr.IsCode(err, appErr.CodeUnauthenticated) {
					unauthorized(w, "invalid token")
					return
				}
				types.WriteError(w, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// RequireStaff lets only staff accounts through. It must run after Auth.
func RequireStaff(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u := GetUser(r.Context())
		if u == nil {
			unauthorized(w, "authentication credentials were not provided")
			return
		}
		if !u.IsStaff {
			types.WriteErrorStr(w, http.StatusForbidden, string(appErr.CodeForbidden), "staff access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetUser returns the authenticated user, or nil outside Auth.
func GetUser(ctx context.Context) *models.User {
	if u, ok := ctx.Value(UserKey).(*models.User); ok {
		return u
	}
	return nil
}

// GetUserID returns the authenticated user's id, or uuid.Nil outside Auth.
func GetUserID(ctx context.Context) uuid.UUID {
	if u := GetUser(ctx); u != nil {
		return u.ID
	}
	return uuid.Nil
}

// WithUser returns ctx carrying u as the authenticated user.
func WithUser(ctx context.Context, u *models.User) context.Context {
	return context.WithValue(ctx, UserKey, u)
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="api"`)
	types.WriteErrorStr(w, http.StatusUnauthorized, string(appErr.CodeUnauthenticated), msg)
}
