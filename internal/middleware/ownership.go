package middleware

import (
	"context"

	"github.com/AnshRaj112/journal-backend/internal/apperr"
)

// RequireOwner checks that the claimed owner id is the authenticated
// caller. claimedOwner must already be validated and in canonical form, so
// that a malformed id is never reported as a permission failure.
func RequireOwner(ctx context.Context, claimedOwner string) error {
	id := IdentityFrom(ctx)
	if id == nil || id.ID == "" {
		return apperr.Unauthorized("unauthenticated")
	}
	if claimedOwner != id.ID {
		return apperr.Forbidden("owner mismatch")
	}
	return nil
}
