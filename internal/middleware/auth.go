package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/AnshRaj112/journal-backend/internal/apperr"
	"github.com/AnshRaj112/journal-backend/internal/respond"
	"github.com/AnshRaj112/journal-backend/internal/services"
)

type ctxKey int

const identityKey ctxKey = iota

// TokenVerifier resolves a bearer token to an identity.
type TokenVerifier interface {
	Verify(token string) (*services.Identity, error)
}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id *services.Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFrom returns the authenticated caller, or nil.
func IdentityFrom(ctx context.Context) *services.Identity {
	id, _ := ctx.Value(identityKey).(*services.Identity)
	return id
}

// extractBearerToken returns the token from "Bearer <token>", or "".
func extractBearerToken(header string) string {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || scheme != "Bearer" {
		return ""
	}
	return strings.TrimSpace(token)
}

// Authenticator rejects requests without a valid bearer token and attaches
// the verified identity to the request context.
func Authenticator(tokens TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r.Header.Get("Authorization"))
			if token == "" {
				respond.Error(w, r, apperr.Unauthorized("missing token"), "")
				return
			}
			id, err := tokens.Verify(token)
			if err != nil {
				zerolog.Ctx(r.Context()).Debug().Err(err).Msg("token rejected")
				respond.Error(w, r, apperr.Unauthorized("invalid or expired token"), "")
				return
			}

			ctx := WithIdentity(r.Context(), id)
			zerolog.Ctx(ctx).UpdateContext(func(c zerolog.Context) zerolog.Context {
				return c.Str("user_id", id.ID)
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
