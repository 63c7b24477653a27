package agriassist

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

type contextKey string

const contextKeyUserID contextKey = "userId"

// GetUserIDFromContext retrieves the authenticated user's id set by
// Middleware.RequireUser. Empty when the request is unauthenticated.
func GetUserIDFromContext(ctx context.Context) string {
	if v := ctx.Value(contextKeyUserID); v != nil {
		if userID, ok := v.(string); ok {
			return userID
		}
	}
	return ""
}

// SetUserIDInContext stores a user id in the context. Exposed for tests
// that call handlers directly.
func SetUserIDInContext(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, contextKeyUserID, userID)
}

// Middleware validates Bearer session tokens on protected routes.
type Middleware struct {
	Signer *SessionSigner

	// AuthHeader defaults to "Authorization".
	AuthHeader string
}

// RequireUser rejects requests without a valid session token and sets the
// user id into the request context for downstream handlers.
func (m *Middleware) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := m.authenticate(r)
		if err != nil {
			w.Header().Set("WWW-Authenticate", `Bearer realm="api"`)
			writeMessage(w, http.StatusUnauthorized, "Authentication required")
			return
		}
		next.ServeHTTP(w, r.WithContext(SetUserIDInContext(r.Context(), userID)))
	})
}

// authenticate extracts and verifies the Bearer token from the request.
func (m *Middleware) authenticate(r *http.Request) (string, error) {
	header := m.AuthHeader
	if header == "" {
		header = "Authorization"
	}

	authHeader := r.Header.Get(header)
	if authHeader == "" {
		return "", fmt.Errorf("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", fmt.Errorf("invalid authorization header format")
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", fmt.Errorf("empty token")
	}
	return m.Signer.VerifyToken(token)
}
