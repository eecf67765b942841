package middleware

import (
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"notehub/internal/auth"
)

const (
	// UserIDLocalKey is the key under which the authenticated user id is stored in Fiber's context locals.
	UserIDLocalKey = "user_id"

	tokenLocalKey = "jwt"
)

// TokenVerifier checks bearer tokens. *auth.TokenManager satisfies it.
type TokenVerifier interface {
	KeyFunc(token *jwt.Token) (any, error)
	Validate(claims *auth.Claims) error
}

// Auth rejects requests without a valid bearer token with 401.
func Auth(tokens TokenVerifier) fiber.Handler {
	return bearer(tokens, func(*fiber.Ctx, error) error {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid or expired token")
	})
}

// OptionalAuth records the user id when a valid bearer token is present and lets every request through.
func OptionalAuth(tokens TokenVerifier) fiber.Handler {
	return bearer(tokens, func(c *fiber.Ctx, _ error) error {
		return c.Next()
	})
}

func bearer(tokens TokenVerifier, onError fiber.ErrorHandler) fiber.Handler {
	return jwtware.New(jwtware.Config{
		KeyFunc:    tokens.KeyFunc,
		Claims:     &auth.Claims{},
		ContextKey: tokenLocalKey,
		SuccessHandler: func(c *fiber.Ctx) error {
			var claims *auth.Claims
			if token, ok := c.Locals(tokenLocalKey).(*jwt.Token); ok {
				claims, _ = token.Claims.(*auth.Claims)
			}
			if err := tokens.Validate(claims); err != nil {
				return onError(c, err)
			}
			c.Locals(UserIDLocalKey, claims.UserID())
			return c.Next()
		},
		ErrorHandler: onError,
	})
}

// GetUserID returns the authenticated user id, or "" for anonymous requests.
func GetUserID(c *fiber.Ctx) string {
	id, _ := c.Locals(UserIDLocalKey).(string)
	return id
}
