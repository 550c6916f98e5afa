package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/helpdesk-hq/helpdesk-api/internal/api/metrics"
	"github.com/helpdesk-hq/helpdesk-api/internal/core/domain"
	"github.com/helpdesk-hq/helpdesk-api/internal/core/ports"
)

// TicketHandler serves the unauthenticated, user-facing ticket routes.
type TicketHandler struct {
	tickets ports.TicketService
}

func NewTicketHandler(tickets ports.TicketService) *TicketHandler {
	return &TicketHandler{tickets: tickets}
}

// List handles GET /tickets?user_id=.
//
// @Summary      List a user's tickets
// @Tags         tickets
// @Produce      json
// @Param        user_id  query     string  false  "External user id"
// @Success      200      {array}   ticketSummaryResponse
// @Router       /tickets [get]
func (h *TicketHandler) List(c echo.Context) error {
	tickets, err := h.tickets.ListForUser(c.Request().Context(), c.QueryParam("user_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTicketSummaryResponses(tickets))
}

// Create handles PUT /tickets.
//
// @Summary      Open a ticket
// @Tags         tickets
// @Accept       json
// @Produce      json
// @Param        body  body      createTicketRequest  true  "Ticket and first message"
// @Success      200   {object}  ticketResponse
// @Failure      400   {object}  map[string]string
// @Router       /tickets [put]
func (h *TicketHandler) Create(c echo.Context) error {
	var req createTicketRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	ticket, err := h.tickets.Create(c.Request().Context(), toCreateTicketInput(req))
	if err != nil {
		return err
	}
	metrics.TicketsCreatedTotal.WithLabelValues(string(ticket.Department)).Inc()

	return c.JSON(http.StatusOK, toTicketResponse(ticket))
}

// Get handles GET /tickets/:id.
//
// @Summary      Get a ticket with its thread
// @Tags         tickets
// @Produce      json
// @Param        id   path      string  true  "Ticket id"
// @Success      200  {object}  ticketResponse
// @Failure      500  {object}  map[string]string
// @Router       /tickets/{id} [get]
func (h *TicketHandler) Get(c echo.Context) error {
	return getTicket(c, h.tickets)
}

// AppendMessage handles PUT /tickets/:id.
//
// @Summary      Add a user message
// @Tags         tickets
// @Accept       json
// @Produce      json
// @Param        id    path      string              true  "Ticket id"
// @Param        body  body      userMessageRequest  true  "Message"
// @Success      200   {object}  appendedMessageResponse
// @Failure      400   {object}  map[string]string
// @Router       /tickets/{id} [put]
func (h *TicketHandler) AppendMessage(c echo.Context) error {
	var req userMessageRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	return appendMessage(c, h.tickets, req.Content, domain.OwnerUser, req.UserID)
}

// Rate handles POST /tickets/:id/rate.
//
// @Summary      Rate a ticket
// @Tags         tickets
// @Accept       json
// @Produce      json
// @Param        id    path      string       true  "Ticket id"
// @Param        body  body      rateRequest  true  "Rate from 1 to 5"
// @Success      201   {object}  rateResponse
// @Failure      400   {object}  map[string]string
// @Router       /tickets/{id}/rate [post]
func (h *TicketHandler) Rate(c echo.Context) error {
	var req rateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	rated, err := h.tickets.Rate(c.Request().Context(), c.Param("id"), int(req.Rate))
	if err != nil {
		return err
	}
	if rated == nil {
		return c.NoContent(http.StatusCreated)
	}
	metrics.TicketRatingsTotal.WithLabelValues(strconv.Itoa(rated.Rate)).Inc()

	return c.JSON(http.StatusCreated, rateResponse{ID: rated.TicketID, Rate: rated.Rate})
}

// getTicket and appendMessage are shared by the user and agent surfaces.

func getTicket(c echo.Context, tickets ports.TicketService) error {
	ticket, err := tickets.GetDetails(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	if ticket == nil {
		return c.NoContent(http.StatusOK)
	}
	return c.JSON(http.StatusOK, toTicketResponse(ticket))
}

func appendMessage(c echo.Context, tickets ports.TicketService, content string, owner domain.OwnerType, ownerID string) error {
	appended, err := tickets.AppendMessage(c.Request().Context(), c.Param("id"), content, owner, ownerID)
	if err != nil {
		return err
	}
	if appended == nil {
		return c.NoContent(http.StatusOK)
	}
	metrics.MessagesAppendedTotal.WithLabelValues(string(owner)).Inc()

	return c.JSON(http.StatusOK, toAppendedMessageResponse(appended))
}
