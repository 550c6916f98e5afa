package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/helpdesk-hq/helpdesk-api/internal/api/middleware"
	"github.com/helpdesk-hq/helpdesk-api/internal/core/domain"
)

func TestAgentTicketHandler_List_Filters(t *testing.T) {
	stub := &stubTicketService{
		listAllFn: func(_ context.Context, f domain.TicketFilter) ([]domain.TicketSummary, error) {
			if f.Status != domain.StatusPending || f.Department != domain.DepartmentTechnical || f.UserID != "u1" {
				t.Fatalf("unexpected filter: %+v", f)
			}
			return []domain.TicketSummary{{ID: ticketID, Title: "T", UserID: "u1", Status: f.Status}}, nil
		},
	}
	c, rec := newContext(http.MethodGet, "/agent/tickets?status=pending&department=technical&user_id=u1", "")

	if err := NewAgentTicketHandler(stub).List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp []ticketSummaryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 1 || resp[0].UserID != "u1" {
		t.Fatalf("unexpected body: %+v", resp)
	}
}

func TestAgentTicketHandler_List_InvalidFilter(t *testing.T) {
	c, _ := newContext(http.MethodGet, "/agent/tickets?status=reopened", "")
	expectHTTPError(t, NewAgentTicketHandler(&stubTicketService{}).List(c), http.StatusBadRequest)
}

func TestAgentTicketHandler_Reply_AttributesToAgent(t *testing.T) {
	stub := &stubTicketService{
		appendFn: func(_ context.Context, id, content string, owner domain.OwnerType, ownerID string) (*domain.AppendedMessage, error) {
			if owner != domain.OwnerAgent || ownerID != agentID {
				t.Fatalf("reply attributed to %s/%s", owner, ownerID)
			}
			return &domain.AppendedMessage{
				TicketID: id,
				Message:  domain.Message{ID: "65f1c0ffee00000000000103", Content: content, OwnerType: owner, OwnerID: ownerID},
			}, nil
		},
	}
	c, rec := newContext(http.MethodPut, "/agent/tickets/"+ticketID, `{"content":"on it"}`)
	withParam(c, "id", ticketID)
	c.Set(middleware.AgentKey, &domain.AgentView{ID: agentID, Role: domain.RoleOperator})

	if err := NewAgentTicketHandler(stub).Reply(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAgentTicketHandler_Reply_WithoutSession(t *testing.T) {
	c, _ := newContext(http.MethodPut, "/agent/tickets/"+ticketID, `{"content":"on it"}`)
	withParam(c, "id", ticketID)

	expectHTTPError(t, NewAgentTicketHandler(&stubTicketService{}).Reply(c), http.StatusUnauthorized)
}

func TestAgentTicketHandler_ChangeStatus(t *testing.T) {
	stub := &stubTicketService{
		changeStatusFn: func(_ context.Context, id string, status domain.TicketStatus) (*domain.TicketStatusChange, error) {
			return &domain.TicketStatusChange{TicketID: id, Status: status}, nil
		},
	}
	c, rec := newContext(http.MethodPatch, "/agent/tickets/"+ticketID, `{"status":"closed"}`)
	withParam(c, "id", ticketID)

	if err := NewAgentTicketHandler(stub).ChangeStatus(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp statusResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.ID != ticketID || resp.Status != "closed" {
		t.Fatalf("unexpected body: %+v", resp)
	}
}

func TestAgentTicketHandler_ChangeStatus_UnknownStatus(t *testing.T) {
	c, _ := newContext(http.MethodPatch, "/agent/tickets/"+ticketID, `{"status":"escalated"}`)
	withParam(c, "id", ticketID)

	expectHTTPError(t, NewAgentTicketHandler(&stubTicketService{}).ChangeStatus(c), http.StatusBadRequest)
}
