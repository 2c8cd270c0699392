package middleware

import (
	"context"
	"strings"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/gofiber/fiber/v2"
)

const (
	// UserIDLocalKey is the key used to store the authenticated user's ID in
	// Fiber's context locals.
	UserIDLocalKey = "user_id"

	bearerPrefix = "Bearer "
)

// TokenClaims carries the claims this service reads from a verified token.
type TokenClaims struct {
	Subject string
}

// TokenVerifier validates a raw bearer token against the identity provider.
type TokenVerifier interface {
	Verify(ctx context.Context, rawToken string) (TokenClaims, error)
}

type oidcVerifier struct {
	verifier *oidc.IDTokenVerifier
}

// NewOIDCVerifier discovers the issuer's keys and returns a TokenVerifier
// that checks signature, issuer, expiry and audience.
func NewOIDCVerifier(ctx context.Context, issuerURL, audience string) (TokenVerifier, error) {
	provider, err := oidc.NewProvider(ctx, issuerURL)
	if err != nil {
		return nil, err
	}
	return &oidcVerifier{
		verifier: provider.Verifier(&oidc.Config{ClientID: audience}),
	}, nil
}

func (v *oidcVerifier) Verify(ctx context.Context, rawToken string) (TokenClaims, error) {
	token, err := v.verifier.Verify(ctx, rawToken)
	if err != nil {
		return TokenClaims{}, err
	}
	return TokenClaims{Subject: token.Subject}, nil
}

// RequireAuth rejects requests without a valid bearer token. On success the
// token subject is stored under UserIDLocalKey.
func RequireAuth(v TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := bearerToken(c)
		if raw == "" {
			return writeAuthRequired(c)
		}
		claims, err := v.Verify(c.UserContext(), raw)
		if err != nil || claims.Subject == "" {
			return writeAuthRequired(c)
		}
		c.Locals(UserIDLocalKey, claims.Subject)
		return c.Next()
	}
}

// OptionalAuth stores the token subject when a valid bearer token is present
// and lets the request through either way. An invalid token is treated as
// anonymous, not rejected.
func OptionalAuth(v TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if raw := bearerToken(c); raw != "" {
			if claims, err := v.Verify(c.UserContext(), raw); err == nil && claims.Subject != "" {
				c.Locals(UserIDLocalKey, claims.Subject)
			}
		}
		return c.Next()
	}
}

// UserIDFromCtx extracts the user ID previously stored by RequireAuth or
// OptionalAuth. Empty means anonymous.
func UserIDFromCtx(c *fiber.Ctx) string {
	if v := c.Locals(UserIDLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func bearerToken(c *fiber.Ctx) string {
	h := c.Get(fiber.HeaderAuthorization)
	if len(h) <= len(bearerPrefix) || !strings.EqualFold(h[:len(bearerPrefix)], bearerPrefix) {
		return ""
	}
	return strings.TrimSpace(h[len(bearerPrefix):])
}

// writeAuthRequired mirrors the standardized error envelope. The handler
// package owns the full error taxonomy; this middleware only ever emits 401.
func writeAuthRequired(c *fiber.Ctx) error {
	requestID := ""
	if v, ok := c.Locals(RequestIDLocalKey).(string); ok {
		requestID = v
	}
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"request_id": requestID,
		"error": fiber.Map{
			"code":    "AUTH_REQUIRED",
			"message": "authentication required",
		},
	})
}
