// FilePath: api/middleware/api.middleware.auth.go
package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/hydrosense/hub/internal/errors"
	"github.com/redis/go-redis/v9"
)

// SessionCookieName is the cookie set by the login frontend.
const SessionCookieName = "hydrosense_session"

type AuthConfig struct {
	SessionPrefix     string
	DeviceTokenSecret string
}

// AuthMiddleware authenticates requests with either a browser session token
// (resolved against the shared Redis session store) or an HS256 device token
// minted for IoT hardware. Session issuing itself lives in the external
// login service; this middleware only resolves tokens to a user.
type AuthMiddleware struct {
	sessions *redis.Client
	config   AuthConfig
}

// Principal is the authenticated caller. DeviceID is set only when the
// request authenticated with a device token.
type Principal struct {
	UserID   string `json:"user_id"`
	DeviceID string `json:"device_id,omitempty"`
}

type deviceClaims struct {
	DeviceID string `json:"device_id"`
	jwt.RegisteredClaims
}

type contextKey string

const principalKey contextKey = "principal"

func NewAuthMiddleware(sessions *redis.Client, config AuthConfig) *AuthMiddleware {
	if config.SessionPrefix == "" {
		config.SessionPrefix = "session:"
	}
	return &AuthMiddleware{
		sessions: sessions,
		config:   config,
	}
}

// Authenticate resolves the request credential and adds the principal to the
// request context
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractToken(r)
		if token == "" {
			handleError(w, errors.NewAuthError("no credentials provided", nil))
			return
		}

		// Browser sessions first; device tokens are the fallback.
		userID, err := m.sessions.Get(r.Context(), m.config.SessionPrefix+token).Result()
		if err == nil && userID != "" {
			ctx := WithPrincipal(r.Context(), &Principal{UserID: userID})
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}
		if err != nil && err != redis.Nil {
			handleError(w, errors.NewAuthError("session lookup failed", err))
			return
		}

		principal, err := m.parseDeviceToken(token)
		if err != nil {
			handleError(w, errors.NewAuthError("invalid credentials", err))
			return
		}

		ctx := WithPrincipal(r.Context(), principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *AuthMiddleware) parseDeviceToken(token string) (*Principal, error) {
	claims := &deviceClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(m.config.DeviceTokenSecret), nil
	})
	if err != nil {
		return nil, err
	}
	if !parsed.Valid || claims.Subject == "" || claims.DeviceID == "" {
		return nil, fmt.Errorf("incomplete device token claims")
	}

	return &Principal{UserID: claims.Subject, DeviceID: claims.DeviceID}, nil
}

// WithPrincipal stores the principal on a context. Exported for handler
// tests that bypass the middleware.
func WithPrincipal(ctx context.Context, principal *Principal) context.Context {
	return context.WithValue(ctx, principalKey, principal)
}

// PrincipalFrom retrieves the authenticated principal from a context
func PrincipalFrom(ctx context.Context) (*Principal, bool) {
	principal, ok := ctx.Value(principalKey).(*Principal)
	return principal, ok
}

// Helper functions

func extractToken(r *http.Request) string {
	bearerToken := r.Header.Get("Authorization")
	if parts := strings.Split(bearerToken, " "); len(parts) == 2 {
		return parts[1]
	}
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		return cookie.Value
	}
	return ""
}

func handleError(w http.ResponseWriter, err error) {
	if apiErr, ok := err.(*errors.APIError); ok {
		http.Error(w, apiErr.Message, apiErr.Code)
		return
	}
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}
