package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/helpdesk-hq/helpdesk-api/internal/core/domain"
)

// RequireRoles enforces role-based access control. It must run after Session:
// a request without a loaded agent is unauthenticated (401), one whose agent
// role is outside roles is forbidden (403).
func RequireRoles(roles ...domain.Role) echo.MiddlewareFunc {
	required := append([]domain.Role(nil), roles...)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			agent, ok := CurrentAgent(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}
			if !domain.Allowed(agent.Role, required) {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
