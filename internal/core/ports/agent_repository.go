package ports

import (
	"context"

	"github.com/helpdesk-hq/helpdesk-api/internal/core/domain"
)

// AgentRepository defines persistence for agent accounts.
//
// Every method except FindCredentialsByEmail must exclude the password hash
// at the query level. A well-formed id that matches nothing yields (nil, nil).
type AgentRepository interface {
	FindCredentialsByEmail(ctx context.Context, email string) (*domain.AgentCredentials, error)
	FindByID(ctx context.Context, id string) (*domain.AgentView, error)
	List(ctx context.Context) ([]domain.AgentView, error)
	// Create returns domain.ErrDuplicateEmail when the email is taken.
	Create(ctx context.Context, agent domain.NewAgent) (*domain.AgentView, error)
	Update(ctx context.Context, id string, changes domain.AgentChanges) (*domain.AgentView, error)
	Delete(ctx context.Context, id string) (int64, error)
}
