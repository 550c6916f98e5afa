package handler

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/helpdesk-hq/helpdesk-api/internal/core/domain"
	"github.com/helpdesk-hq/helpdesk-api/internal/core/ports"
)

const (
	ticketID = "65f1c0ffee00000000000001"
	agentID  = "65f1c0ffee0000000000abcd"
)

func newContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func withParam(c echo.Context, name, value string) echo.Context {
	c.SetParamNames(name)
	c.SetParamValues(value)
	return c
}

func expectHTTPError(t *testing.T, err error, code int) {
	t.Helper()
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected HTTP %d error, got %v", code, err)
	}
	if he.Code != code {
		t.Fatalf("expected HTTP %d, got %d (%v)", code, he.Code, he.Message)
	}
}

type stubAgentService struct {
	authenticateFn func(ctx context.Context, email, password string) (*domain.AgentView, *ports.Session, error)
	getFn          func(ctx context.Context, id string) (*domain.AgentView, error)
	listFn         func(ctx context.Context) ([]domain.AgentView, error)
	createFn       func(ctx context.Context, in ports.CreateAgentInput) (*domain.AgentView, error)
	updateFn       func(ctx context.Context, id string, in ports.UpdateAgentInput) (*domain.AgentView, error)
	deleteFn       func(ctx context.Context, id string) (int64, error)
}

func (s *stubAgentService) Authenticate(ctx context.Context, email, password string) (*domain.AgentView, *ports.Session, error) {
	return s.authenticateFn(ctx, email, password)
}

func (s *stubAgentService) Get(ctx context.Context, id string) (*domain.AgentView, error) {
	return s.getFn(ctx, id)
}

func (s *stubAgentService) List(ctx context.Context) ([]domain.AgentView, error) {
	return s.listFn(ctx)
}

func (s *stubAgentService) Create(ctx context.Context, in ports.CreateAgentInput) (*domain.AgentView, error) {
	return s.createFn(ctx, in)
}

func (s *stubAgentService) Update(ctx context.Context, id string, in ports.UpdateAgentInput) (*domain.AgentView, error) {
	return s.updateFn(ctx, id, in)
}

func (s *stubAgentService) Delete(ctx context.Context, id string) (int64, error) {
	return s.deleteFn(ctx, id)
}

type stubTicketService struct {
	listAllFn      func(ctx context.Context, filter domain.TicketFilter) ([]domain.TicketSummary, error)
	listForUserFn  func(ctx context.Context, userID string) ([]domain.TicketSummary, error)
	getDetailsFn   func(ctx context.Context, id string) (*domain.Ticket, error)
	createFn       func(ctx context.Context, in ports.CreateTicketInput) (*domain.Ticket, error)
	appendFn       func(ctx context.Context, id, content string, ownerType domain.OwnerType, ownerID string) (*domain.AppendedMessage, error)
	rateFn         func(ctx context.Context, id string, rate int) (*domain.TicketRate, error)
	changeStatusFn func(ctx context.Context, id string, status domain.TicketStatus) (*domain.TicketStatusChange, error)
}

func (s *stubTicketService) ListAll(ctx context.Context, filter domain.TicketFilter) ([]domain.TicketSummary, error) {
	return s.listAllFn(ctx, filter)
}

func (s *stubTicketService) ListForUser(ctx context.Context, userID string) ([]domain.TicketSummary, error) {
	return s.listForUserFn(ctx, userID)
}

func (s *stubTicketService) GetDetails(ctx context.Context, id string) (*domain.Ticket, error) {
	return s.getDetailsFn(ctx, id)
}

func (s *stubTicketService) Create(ctx context.Context, in ports.CreateTicketInput) (*domain.Ticket, error) {
	return s.createFn(ctx, in)
}

func (s *stubTicketService) AppendMessage(ctx context.Context, id, content string, ownerType domain.OwnerType, ownerID string) (*domain.AppendedMessage, error) {
	return s.appendFn(ctx, id, content, ownerType, ownerID)
}

func (s *stubTicketService) Rate(ctx context.Context, id string, rate int) (*domain.TicketRate, error) {
	return s.rateFn(ctx, id, rate)
}

func (s *stubTicketService) ChangeStatus(ctx context.Context, id string, status domain.TicketStatus) (*domain.TicketStatusChange, error) {
	return s.changeStatusFn(ctx, id, status)
}
