package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/helpdesk-hq/helpdesk-api/internal/api/middleware"
	"github.com/helpdesk-hq/helpdesk-api/internal/core/domain"
	"github.com/helpdesk-hq/helpdesk-api/internal/core/ports"
	"github.com/helpdesk-hq/helpdesk-api/internal/core/service"
	"github.com/helpdesk-hq/helpdesk-api/internal/infrastructure/http/handlers"
)

const (
	adminID    = "65f1c0ffee0000000000aaaa"
	operatorID = "65f1c0ffee0000000000bbbb"
)

// fakeAgents knows two agents and rejects every sign-in.
type fakeAgents struct{}

func (fakeAgents) Authenticate(context.Context, string, string) (*domain.AgentView, *ports.Session, error) {
	return nil, nil, domain.ErrInvalidCredentials
}

func (fakeAgents) Get(_ context.Context, id string) (*domain.AgentView, error) {
	switch id {
	case adminID:
		return &domain.AgentView{ID: id, Name: "Ada", Email: "ada@example.com", Role: domain.RoleAdmin}, nil
	case operatorID:
		return &domain.AgentView{ID: id, Name: "Olga", Email: "olga@example.com", Role: domain.RoleOperator}, nil
	}
	return nil, nil
}

func (fakeAgents) List(context.Context) ([]domain.AgentView, error) {
	return []domain.AgentView{}, nil
}

func (fakeAgents) Create(context.Context, ports.CreateAgentInput) (*domain.AgentView, error) {
	return nil, domain.ErrDuplicateEmail
}

func (fakeAgents) Update(context.Context, string, ports.UpdateAgentInput) (*domain.AgentView, error) {
	return nil, nil
}

func (fakeAgents) Delete(context.Context, string) (int64, error) { return 0, nil }

// fakeTickets returns empty results everywhere and rejects malformed ids.
type fakeTickets struct{}

func (fakeTickets) ListAll(context.Context, domain.TicketFilter) ([]domain.TicketSummary, error) {
	return []domain.TicketSummary{}, nil
}

func (fakeTickets) ListForUser(context.Context, string) ([]domain.TicketSummary, error) {
	return []domain.TicketSummary{}, nil
}

func (fakeTickets) GetDetails(_ context.Context, id string) (*domain.Ticket, error) {
	if len(id) != 24 {
		return nil, domain.ErrMalformedID
	}
	return nil, nil
}

func (fakeTickets) Create(context.Context, ports.CreateTicketInput) (*domain.Ticket, error) {
	return nil, domain.ErrValidation
}

func (fakeTickets) AppendMessage(context.Context, string, string, domain.OwnerType, string) (*domain.AppendedMessage, error) {
	return nil, nil
}

func (fakeTickets) Rate(context.Context, string, int) (*domain.TicketRate, error) { return nil, nil }

func (fakeTickets) ChangeStatus(context.Context, string, domain.TicketStatus) (*domain.TicketStatusChange, error) {
	return nil, nil
}

func newTestRouter(t *testing.T) (http.Handler, *service.SessionManager) {
	t.Helper()
	sessions := service.NewSessionManager("router-test-secret", time.Hour)
	reg := prometheus.NewRegistry()

	e := NewRouter(Dependencies{
		Agents:   fakeAgents{},
		Tickets:  fakeTickets{},
		Sessions: sessions,
		Health: map[string]handlers.Pinger{
			"mongodb": func(context.Context) error { return nil },
		},
		Logger:     zerolog.New(io.Discard),
		Registerer: reg,
		Gatherer:   reg,
	})
	return e, sessions
}

func sessionCookie(t *testing.T, sessions *service.SessionManager, agentID string) *http.Cookie {
	t.Helper()
	s, err := sessions.Issue(agentID)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return &http.Cookie{Name: middleware.SessionCookie, Value: s.Token}
}

func TestRouter_Authorization(t *testing.T) {
	router, sessions := newTestRouter(t)

	cases := []struct {
		name   string
		method string
		path   string
		agent  string
		code   int
	}{
		{"tickets without session", http.MethodGet, "/agent/tickets", "", http.StatusUnauthorized},
		{"tickets as operator", http.MethodGet, "/agent/tickets", operatorID, http.StatusOK},
		{"members without session", http.MethodGet, "/agent/members", "", http.StatusUnauthorized},
		{"members as operator", http.MethodGet, "/agent/members", operatorID, http.StatusForbidden},
		{"members as admin", http.MethodGet, "/agent/members", adminID, http.StatusOK},
		{"delete member as operator", http.MethodDelete, "/agent/members/" + adminID, operatorID, http.StatusForbidden},
		{"session of deleted agent", http.MethodGet, "/agent/members", "65f1c0ffee0000000000cccc", http.StatusUnauthorized},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			if tc.agent != "" {
				req.AddCookie(sessionCookie(t, sessions, tc.agent))
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d: %s", tc.code, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestRouter_SignInFailureIs422(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/agent/auth/signin",
		strings.NewReader(`{"email_address":"ada@example.com","password":"wrong-password"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Error != "The email or password is incorrect" {
		t.Fatalf("unexpected message %q", resp.Error)
	}
}

func TestRouter_UserSurface(t *testing.T) {
	router, _ := newTestRouter(t)

	cases := []struct {
		name   string
		method string
		path   string
		body   string
		code   int
	}{
		{"list without user id", http.MethodGet, "/tickets", "", http.StatusOK},
		{"unknown ticket", http.MethodGet, "/tickets/65f1c0ffee00000000000001", "", http.StatusOK},
		{"malformed ticket id", http.MethodGet, "/tickets/not-an-id", "", malformedIDStatus},
		{"rate unknown ticket", http.MethodPost, "/tickets/65f1c0ffee00000000000001/rate", `{"rate":4}`, http.StatusCreated},
		{"rate out of range", http.MethodPost, "/tickets/65f1c0ffee00000000000001/rate", `{"rate":9}`, http.StatusBadRequest},
		{"liveness", http.MethodGet, "/health", "", http.StatusOK},
		{"readiness", http.MethodGet, "/health/ready", "", http.StatusOK},
		{"metrics", http.MethodGet, "/metrics", "", http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var body io.Reader
			if tc.body != "" {
				body = strings.NewReader(tc.body)
			}
			req := httptest.NewRequest(tc.method, tc.path, body)
			if tc.body != "" {
				req.Header.Set("Content-Type", "application/json")
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d: %s", tc.code, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestRouter_RequestIDHeader(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Header().Get("X-Request-Id") == "" {
		t.Fatalf("expected a request id header")
	}
}
