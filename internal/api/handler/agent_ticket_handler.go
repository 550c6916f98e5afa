package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/helpdesk-hq/helpdesk-api/internal/api/metrics"
	"github.com/helpdesk-hq/helpdesk-api/internal/api/middleware"
	"github.com/helpdesk-hq/helpdesk-api/internal/core/domain"
	"github.com/helpdesk-hq/helpdesk-api/internal/core/ports"
)

// AgentTicketHandler serves the ticket routes behind the agent session.
type AgentTicketHandler struct {
	tickets ports.TicketService
}

func NewAgentTicketHandler(tickets ports.TicketService) *AgentTicketHandler {
	return &AgentTicketHandler{tickets: tickets}
}

// List handles GET /agent/tickets.
//
// @Summary      List all tickets
// @Tags         agent-tickets
// @Produce      json
// @Security     CookieAuth
// @Param        status      query     string  false  "not_answered, closed, pending or answered"
// @Param        department  query     string  false  "technical, marketing, sales or support"
// @Param        user_id     query     string  false  "External user id"
// @Success      200         {array}   ticketSummaryResponse
// @Failure      400         {object}  map[string]string
// @Failure      401         {object}  map[string]string
// @Router       /agent/tickets [get]
func (h *AgentTicketHandler) List(c echo.Context) error {
	var q ticketFilterQuery
	if err := bindAndValidate(c, &q); err != nil {
		return err
	}

	tickets, err := h.tickets.ListAll(c.Request().Context(), toTicketFilter(q))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTicketSummaryResponses(tickets))
}

// Get handles GET /agent/tickets/:id.
//
// @Summary      Get a ticket with its thread
// @Tags         agent-tickets
// @Produce      json
// @Security     CookieAuth
// @Param        id   path      string  true  "Ticket id"
// @Success      200  {object}  ticketResponse
// @Failure      401  {object}  map[string]string
// @Router       /agent/tickets/{id} [get]
func (h *AgentTicketHandler) Get(c echo.Context) error {
	return getTicket(c, h.tickets)
}

// Reply handles PUT /agent/tickets/:id. The message is attributed to the
// signed-in agent.
//
// @Summary      Reply to a ticket
// @Tags         agent-tickets
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        id    path      string               true  "Ticket id"
// @Param        body  body      agentMessageRequest  true  "Message"
// @Success      200   {object}  appendedMessageResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /agent/tickets/{id} [put]
func (h *AgentTicketHandler) Reply(c echo.Context) error {
	agent, ok := middleware.CurrentAgent(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	var req agentMessageRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	return appendMessage(c, h.tickets, req.Content, domain.OwnerAgent, agent.ID)
}

// ChangeStatus handles PATCH /agent/tickets/:id.
//
// @Summary      Change a ticket status
// @Tags         agent-tickets
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        id    path      string         true  "Ticket id"
// @Param        body  body      statusRequest  true  "New status"
// @Success      200   {object}  statusResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /agent/tickets/{id} [patch]
func (h *AgentTicketHandler) ChangeStatus(c echo.Context) error {
	var req statusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	changed, err := h.tickets.ChangeStatus(c.Request().Context(), c.Param("id"), domain.TicketStatus(req.Status))
	if err != nil {
		return err
	}
	if changed == nil {
		return c.NoContent(http.StatusOK)
	}
	metrics.TicketStatusChangesTotal.WithLabelValues(string(changed.Status)).Inc()

	return c.JSON(http.StatusOK, statusResponse{ID: changed.TicketID, Status: string(changed.Status)})
}
