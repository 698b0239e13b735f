package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// Authentication happens upstream; the gateway forwards the verified
// identity in headers. This middleware only binds that identity to the
// request context and enforces role gates.

const (
	headerUserID   = "X-User-Id"
	headerUserRole = "X-User-Role"

	principalContextKey = "principal"
)

const (
	RoleBorrower = "borrower"
	RoleReviewer = "reviewer"
)

type Principal struct {
	UserID string
	Role   string
}

// PrincipalFrom returns the principal bound by Authenticated, if any.
func PrincipalFrom(c echo.Context) (Principal, bool) {
	p, ok := c.Get(principalContextKey).(Principal)
	return p, ok
}

// Authenticated rejects requests without a forwarded identity.
func Authenticated() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID := strings.TrimSpace(c.Request().Header.Get(headerUserID))
			if !reHex32.MatchString(userID) {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing or invalid " + headerUserID})
			}
			role := strings.TrimSpace(c.Request().Header.Get(headerUserRole))
			if role == "" {
				role = RoleBorrower
			}
			c.Set(principalContextKey, Principal{UserID: userID, Role: role})
			return next(c)
		}
	}
}

// RequireRole gates a route on the principal's role.
func RequireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, ok := PrincipalFrom(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing principal"})
			}
			if p.Role != role {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "role " + role + " required"})
			}
			return next(c)
		}
	}
}
