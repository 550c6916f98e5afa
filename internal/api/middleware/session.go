package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/helpdesk-hq/helpdesk-api/internal/core/domain"
	"github.com/helpdesk-hq/helpdesk-api/internal/core/ports"
)

// SessionCookie is the cookie carrying the agent session token.
const SessionCookie = "access_token"

// Context keys set by Session.
const (
	AgentKey = "agent"
	RoleKey  = "role"
)

// AgentLookup fetches the public view of an agent by id.
type AgentLookup interface {
	Get(ctx context.Context, id string) (*domain.AgentView, error)
}

// Session verifies the session token and loads the agent it was issued for.
// The token comes from the access_token cookie, or from an
// "Authorization: Bearer" header when no cookie is present.
func Session(verifier ports.SessionVerifier, agents AgentLookup) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := sessionToken(c)
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing session token")
			}

			agentID, err := verifier.Verify(token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid session token")
			}

			agent, err := agents.Get(c.Request().Context(), agentID)
			if err != nil {
				if errors.Is(err, domain.ErrMalformedID) {
					return echo.NewHTTPError(http.StatusUnauthorized, "invalid session token")
				}
				return err
			}
			// Token outlived its agent.
			if agent == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid session token")
			}

			c.Set(AgentKey, agent)
			c.Set(RoleKey, agent.Role)

			return next(c)
		}
	}
}

// CurrentAgent returns the agent loaded by Session, if any.
func CurrentAgent(c echo.Context) (*domain.AgentView, bool) {
	agent, ok := c.Get(AgentKey).(*domain.AgentView)
	return agent, ok && agent != nil
}

func sessionToken(c echo.Context) string {
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	parts := strings.SplitN(c.Request().Header.Get(echo.HeaderAuthorization), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
