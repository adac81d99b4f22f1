package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	userdomain "pawtrails/internal/domain/user"
	"pawtrails/pkg/logger"
)

// TokenVerifier checks a bearer token and returns the subject user uuid.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// UserLoader resolves the authenticated uuid to the stored user.
type UserLoader interface {
	GetByUUID(ctx context.Context, uuid string) (*userdomain.User, error)
}

type Auth struct {
	tokens TokenVerifier
	users  UserLoader
	log    logger.Logger
}

type contextKey int

const userKey contextKey = iota

func NewAuth(tokens TokenVerifier, users UserLoader, log logger.Logger) *Auth {
	return &Auth{tokens: tokens, users: users, log: log}
}

// Middleware authenticates the request and loads the user into the context.
// Inactive users pass; routes that need an active account stack
// RequireActive on top.
func (a *Auth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r.Header.Get("Authorization"))
		if !ok {
			unauthorized(w)
			return
		}

		uuid, err := a.tokens.Verify(token)
		if err != nil {
			unauthorized(w)
			return
		}

		u, err := a.users.GetByUUID(r.Context(), uuid)
		if err != nil {
			a.log.BusinessError("auth: token subject not found", err, "user_uuid", uuid)
			unauthorized(w)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), u)))
	})
}

// RequireActive rejects deactivated accounts.
func (a *Auth) RequireActive(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, ok := UserFromContext(r.Context())
		if !ok {
			unauthorized(w)
			return
		}
		if !u.IsActive {
			writeError(w, http.StatusBadRequest, "inactive_user", "inactive user")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func bearerToken(value string) (string, bool) {
	parts := strings.Fields(value)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

func unauthorized(w http.ResponseWriter) {
	writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
}

func WithUser(ctx context.Context, u *userdomain.User) context.Context {
	return context.WithValue(ctx, userKey, u)
}

func UserFromContext(ctx context.Context) (*userdomain.User, bool) {
	u, ok := ctx.Value(userKey).(*userdomain.User)
	if !ok || u == nil || u.UUID == "" {
		return nil, false
	}
	return u, true
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
