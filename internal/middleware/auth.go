package middleware

import (
	"net/http"
	"storefront-backend/internal/auth"

	"github.com/labstack/echo/v4"
)

const (
	TokenHeader  = "token"
	accountIDKey = "account_id"
)

const (
	msgLoginAgain      = "Not Authorized, Login Again"
	msgAdminLoginAgain = "Not Authorized Login Again"
	msgInvalidToken    = "Invalid Token"
)

// AccountAuth rejects requests without a valid account token and stores the
// account id for AccountID.
func AccountAuth(tokens *auth.TokenManager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := c.Request().Header.Get(TokenHeader)
			if raw == "" {
				return unauthorized(c, msgLoginAgain)
			}

			claims, err := tokens.Parse(raw)
			if err != nil || claims.Subject == "" {
				return unauthorized(c, msgInvalidToken)
			}

			c.Set(accountIDKey, claims.Subject)
			return next(c)
		}
	}
}

// AdminAuth only admits tokens issued to the configured administrator email.
func AdminAuth(tokens *auth.TokenManager, adminEmail string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := c.Request().Header.Get(TokenHeader)
			if raw == "" {
				return unauthorized(c, msgAdminLoginAgain)
			}

			claims, err := tokens.Parse(raw)
			if err != nil || adminEmail == "" || claims.Email != adminEmail {
				return unauthorized(c, msgAdminLoginAgain)
			}

			return next(c)
		}
	}
}

// AccountID returns the id stored by AccountAuth, or "" outside of it.
func AccountID(c echo.Context) string {
	id, _ := c.Get(accountIDKey).(string)
	return id
}

func unauthorized(c echo.Context, message string) error {
	return c.JSON(http.StatusUnauthorized, map[string]interface{}{
		"success": false,
		"message": message,
	})
}
