package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/helpdesk-hq/helpdesk-api/internal/core/ports"
)

// MemberHandler exposes the agent directory to admins.
type MemberHandler struct {
	agents ports.AgentService
}

func NewMemberHandler(agents ports.AgentService) *MemberHandler {
	return &MemberHandler{agents: agents}
}

// List handles GET /agent/members.
//
// @Summary      List agents
// @Tags         members
// @Produce      json
// @Security     CookieAuth
// @Success      200  {array}   agentResponse
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /agent/members [get]
func (h *MemberHandler) List(c echo.Context) error {
	agents, err := h.agents.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAgentResponses(agents))
}

// Get handles GET /agent/members/:member_id. An unknown id yields an empty
// body.
//
// @Summary      Get an agent
// @Tags         members
// @Produce      json
// @Security     CookieAuth
// @Param        member_id  path      string  true  "Agent id"
// @Success      200        {object}  agentResponse
// @Failure      401        {object}  map[string]string
// @Failure      403        {object}  map[string]string
// @Router       /agent/members/{member_id} [get]
func (h *MemberHandler) Get(c echo.Context) error {
	agent, err := h.agents.Get(c.Request().Context(), c.Param("member_id"))
	if err != nil {
		return err
	}
	if agent == nil {
		return c.NoContent(http.StatusOK)
	}
	return c.JSON(http.StatusOK, toAgentResponse(agent))
}

// Create handles PUT /agent/members.
//
// @Summary      Create an agent
// @Tags         members
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        body  body      createMemberRequest  true  "New agent"
// @Success      200   {object}  agentResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /agent/members [put]
func (h *MemberHandler) Create(c echo.Context) error {
	var req createMemberRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	agent, err := h.agents.Create(c.Request().Context(), toCreateAgentInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAgentResponse(agent))
}

// Update handles PATCH /agent/members/:member_id.
//
// @Summary      Update an agent
// @Tags         members
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        member_id  path      string               true  "Agent id"
// @Param        body       body      updateMemberRequest  true  "Fields to change"
// @Success      200        {object}  agentResponse
// @Failure      400        {object}  map[string]string
// @Failure      401        {object}  map[string]string
// @Failure      403        {object}  map[string]string
// @Failure      409        {object}  map[string]string
// @Router       /agent/members/{member_id} [patch]
func (h *MemberHandler) Update(c echo.Context) error {
	var req updateMemberRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	agent, err := h.agents.Update(c.Request().Context(), c.Param("member_id"), toUpdateAgentInput(req))
	if err != nil {
		return err
	}
	if agent == nil {
		return c.NoContent(http.StatusOK)
	}
	return c.JSON(http.StatusOK, toAgentResponse(agent))
}

// Delete handles DELETE /agent/members/:member_id.
//
// @Summary      Delete an agent
// @Tags         members
// @Produce      json
// @Security     CookieAuth
// @Param        member_id  path      string  true  "Agent id"
// @Success      200        {object}  deleteResponse
// @Failure      401        {object}  map[string]string
// @Failure      403        {object}  map[string]string
// @Router       /agent/members/{member_id} [delete]
func (h *MemberHandler) Delete(c echo.Context) error {
	n, err := h.agents.Delete(c.Request().Context(), c.Param("member_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, deleteResponse{DeletedCount: n})
}
