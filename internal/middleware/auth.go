package middleware

import (
	"context"
	"strings"

	"connectrpc.com/connect"

	"github.com/sharetab/sharetab/internal/auth"
	"github.com/sharetab/sharetab/internal/identity"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

// partyKey is the context key for storing the authenticated party ID.
const partyKey contextKey = "party"

// Party extracts the authenticated party ID from the context.
// Returns empty string if not found.
func Party(ctx context.Context) identity.PartyID {
	p, _ := ctx.Value(partyKey).(identity.PartyID)
	return p
}

// RequireAuth returns an interceptor that validates JWT tokens and requires
// authentication. It extracts the token from the Authorization header,
// validates it, and adds the party ID to the request context.
func RequireAuth(jwtManager *auth.JWTManager) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			authHeader := req.Header().Get("Authorization")
			if authHeader == "" {
				return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrInvalidToken)
			}

			party, err := jwtManager.Validate(parts[1])
			if err != nil {
				return nil, connect.NewError(connect.CodeUnauthenticated, err)
			}

			ctx = context.WithValue(ctx, partyKey, party)
			return next(ctx, req)
		}
	}
}
