package ports

import (
	"context"
	"time"

	"github.com/helpdesk-hq/helpdesk-api/internal/core/domain"
)

// CreateAgentInput is the DTO for a new agent. Password is plaintext.
type CreateAgentInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
}

// UpdateAgentInput is a partial update; nil fields are left untouched.
type UpdateAgentInput struct {
	Name     *string
	Email    *string
	Password *string
	Role     *domain.Role
}

// Session is an issued session token and its expiry.
type Session struct {
	Token     string
	ExpiresAt time.Time
}

// AgentService is the agent directory and authentication entry point.
type AgentService interface {
	Authenticate(ctx context.Context, email, password string) (*domain.AgentView, *Session, error)
	Get(ctx context.Context, id string) (*domain.AgentView, error)
	List(ctx context.Context) ([]domain.AgentView, error)
	Create(ctx context.Context, input CreateAgentInput) (*domain.AgentView, error)
	Update(ctx context.Context, id string, input UpdateAgentInput) (*domain.AgentView, error)
	Delete(ctx context.Context, id string) (int64, error)
}

// SessionVerifier resolves a session token to the agent id it was issued for.
type SessionVerifier interface {
	Verify(token string) (string, error)
}
