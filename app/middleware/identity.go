package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// IdentityMiddleware extracts the caller identity from bearer tokens
// issued by the auth provider. Tokens are optional everywhere: a missing
// or invalid token means anonymous, never a rejection.
type IdentityMiddleware struct {
	secretKey []byte
}

// NewIdentityMiddleware creates a new identity middleware. An empty
// secret disables verification and every caller is anonymous.
func NewIdentityMiddleware(secretKey string) *IdentityMiddleware {
	return &IdentityMiddleware{secretKey: []byte(secretKey)}
}

// OptionalIdentity validates the bearer token if present and stores the
// subject UUID in the request context
func (m *IdentityMiddleware) OptionalIdentity() fiber.Handler {
	return func(c fiber.Ctx) error {
		if len(m.secretKey) == 0 {
			return c.Next()
		}

		authHeader := c.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return c.Next()
		}
		raw := strings.TrimPrefix(authHeader, "Bearer ")
		if raw == "" {
			return c.Next()
		}

		token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return m.secretKey, nil
		}, jwt.WithValidMethods([]string{"HS256"}))
		if err != nil || !token.Valid {
			return c.Next()
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return c.Next()
		}
		sub, err := claims.GetSubject()
		if err != nil || sub == "" {
			return c.Next()
		}
		uid, err := uuid.Parse(sub)
		if err != nil {
			return c.Next()
		}

		c.Locals("user_id", uid)
		return c.Next()
	}
}

// GetUserIDFromContext extracts the authenticated user id, if any
func GetUserIDFromContext(c fiber.Ctx) (uuid.UUID, bool) {
	uid, ok := c.Locals("user_id").(uuid.UUID)
	return uid, ok
}
