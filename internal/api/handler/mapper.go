package handler

import (
	"github.com/helpdesk-hq/helpdesk-api/internal/core/domain"
	"github.com/helpdesk-hq/helpdesk-api/internal/core/ports"
)

// --- Request → Service input ---

func toCreateAgentInput(req createMemberRequest) ports.CreateAgentInput {
	return ports.CreateAgentInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     domain.Role(req.Role),
	}
}

func toUpdateAgentInput(req updateMemberRequest) ports.UpdateAgentInput {
	in := ports.UpdateAgentInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	}
	if req.Role != nil {
		role := domain.Role(*req.Role)
		in.Role = &role
	}
	return in
}

func toCreateTicketInput(req createTicketRequest) ports.CreateTicketInput {
	return ports.CreateTicketInput{
		Title:      req.Title,
		Department: domain.Department(req.Department),
		Message:    req.Message,
		UserID:     req.UserID,
	}
}

func toTicketFilter(q ticketFilterQuery) domain.TicketFilter {
	return domain.TicketFilter{
		Status:     domain.TicketStatus(q.Status),
		Department: domain.Department(q.Department),
		UserID:     q.UserID,
	}
}

// --- Service result → HTTP response ---

func toAgentResponse(a *domain.AgentView) agentResponse {
	return agentResponse{
		ID:        a.ID,
		Name:      a.Name,
		Email:     a.Email,
		Role:      string(a.Role),
		CreatedAt: a.CreatedAt.UTC(),
		UpdatedAt: a.UpdatedAt.UTC(),
	}
}

func toAgentResponses(agents []domain.AgentView) []agentResponse {
	out := make([]agentResponse, 0, len(agents))
	for i := range agents {
		out = append(out, toAgentResponse(&agents[i]))
	}
	return out
}

func toMessageResponse(m domain.Message) messageResponse {
	return messageResponse{
		ID:        m.ID,
		Content:   m.Content,
		OwnerType: string(m.OwnerType),
		OwnerID:   m.OwnerID,
		CreatedAt: m.CreatedAt.UTC(),
	}
}

func toTicketResponse(t *domain.Ticket) ticketResponse {
	msgs := make([]messageResponse, 0, len(t.Messages))
	for _, m := range t.Messages {
		msgs = append(msgs, toMessageResponse(m))
	}
	return ticketResponse{
		ID:         t.ID,
		Title:      t.Title,
		Department: string(t.Department),
		Status:     string(t.Status),
		Rate:       t.Rate,
		UserID:     t.UserID,
		Messages:   msgs,
		CreatedAt:  t.CreatedAt.UTC(),
		UpdatedAt:  t.UpdatedAt.UTC(),
	}
}

func toTicketSummaryResponses(tickets []domain.TicketSummary) []ticketSummaryResponse {
	out := make([]ticketSummaryResponse, 0, len(tickets))
	for _, t := range tickets {
		out = append(out, ticketSummaryResponse{
			ID:         t.ID,
			Title:      t.Title,
			Department: string(t.Department),
			Status:     string(t.Status),
			Rate:       t.Rate,
			UserID:     t.UserID,
			CreatedAt:  t.CreatedAt.UTC(),
			UpdatedAt:  t.UpdatedAt.UTC(),
		})
	}
	return out
}

func toAppendedMessageResponse(a *domain.AppendedMessage) appendedMessageResponse {
	return appendedMessageResponse{
		ID:       a.TicketID,
		Messages: []messageResponse{toMessageResponse(a.Message)},
	}
}
