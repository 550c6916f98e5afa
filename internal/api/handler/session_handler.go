package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/helpdesk-hq/helpdesk-api/internal/api/metrics"
	"github.com/helpdesk-hq/helpdesk-api/internal/api/middleware"
	"github.com/helpdesk-hq/helpdesk-api/internal/core/domain"
	"github.com/helpdesk-hq/helpdesk-api/internal/core/ports"
)

// SessionHandler signs agents in and out.
type SessionHandler struct {
	agents       ports.AgentService
	secureCookie bool
}

func NewSessionHandler(agents ports.AgentService, secureCookie bool) *SessionHandler {
	return &SessionHandler{agents: agents, secureCookie: secureCookie}
}

// SignIn authenticates an agent and sets the session cookie.
//
// @Summary      Agent sign-in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signinRequest  true  "Agent credentials"
// @Success      201   {object}  agentResponse
// @Failure      400   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Failure      429   {object}  map[string]string
// @Router       /agent/auth/signin [post]
func (h *SessionHandler) SignIn(c echo.Context) error {
	var req signinRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	agent, session, err := h.agents.Authenticate(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.SigninAttemptsTotal.WithLabelValues(signinResult(err)).Inc()
		return err
	}
	metrics.SigninAttemptsTotal.WithLabelValues("success").Inc()

	c.SetCookie(h.cookie(session.Token, session.ExpiresAt))
	return c.JSON(http.StatusCreated, toAgentResponse(agent))
}

// SignOut clears the session cookie. The token itself stays valid until it
// expires.
//
// @Summary      Agent sign-out
// @Tags         auth
// @Success      204
// @Router       /agent/auth/signout [post]
func (h *SessionHandler) SignOut(c echo.Context) error {
	cookie := h.cookie("", time.Unix(0, 0))
	cookie.MaxAge = -1
	c.SetCookie(cookie)
	return c.NoContent(http.StatusNoContent)
}

func (h *SessionHandler) cookie(value string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	}
}

func signinResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, domain.ErrTooManyAttempts):
		return "throttled"
	default:
		return "error"
	}
}
