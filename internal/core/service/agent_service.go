package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/helpdesk-hq/helpdesk-api/internal/core/domain"
	"github.com/helpdesk-hq/helpdesk-api/internal/core/ports"
)

// SigninLimiter abstracts the sign-in attempt counter (Redis). Attempt counts
// the attempt and reports whether it may proceed in one atomic step.
type SigninLimiter interface {
	Attempt(ctx context.Context, email string) (bool, error)
	Reset(ctx context.Context, email string) error
}

// AgentService implements the agent directory and sign-in.
type AgentService struct {
	repo    ports.AgentRepository
	hasher  *PasswordHasher
	tokens  *SessionManager
	limiter SigninLimiter
	log     zerolog.Logger
}

// NewAgentService wires the directory. limiter may be nil, in which case
// sign-in attempts are not throttled.
func NewAgentService(
	repo ports.AgentRepository,
	hasher *PasswordHasher,
	tokens *SessionManager,
	limiter SigninLimiter,
	log zerolog.Logger,
) *AgentService {
	return &AgentService{
		repo:    repo,
		hasher:  hasher,
		tokens:  tokens,
		limiter: limiter,
		log:     log,
	}
}

// Authenticate checks email and password and issues a session. Unknown email
// and wrong password fail with the same domain.ErrInvalidCredentials.
func (s *AgentService) Authenticate(ctx context.Context, email, password string) (*domain.AgentView, *ports.Session, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, nil, domain.ErrInvalidCredentials
	}

	// Counted before the password is compared; a blocked attempt never reaches
	// the store.
	if s.limiter != nil {
		ok, err := s.limiter.Attempt(ctx, email)
		if err != nil {
			s.log.Warn().Err(err).Msg("sign-in limiter unavailable, continuing")
		} else if !ok {
			return nil, nil, domain.ErrTooManyAttempts
		}
	}

	creds, err := s.repo.FindCredentialsByEmail(ctx, email)
	if err != nil {
		return nil, nil, fmt.Errorf("authenticate: %w", err)
	}
	if creds == nil || !s.hasher.Verify(password, creds.PasswordHash) {
		s.log.Info().Str("email", email).Msg("sign-in rejected")
		return nil, nil, domain.ErrInvalidCredentials
	}

	session, err := s.tokens.Issue(creds.Agent.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("authenticate: issue session: %w", err)
	}

	if s.limiter != nil {
		if err := s.limiter.Reset(ctx, email); err != nil {
			s.log.Warn().Err(err).Msg("failed to reset sign-in counter")
		}
	}

	agent := creds.Agent
	s.log.Info().Str("agent_id", agent.ID).Str("role", string(agent.Role)).Msg("agent signed in")
	return &agent, session, nil
}

// Get returns the agent or nil when no agent has that id.
func (s *AgentService) Get(ctx context.Context, id string) (*domain.AgentView, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *AgentService) List(ctx context.Context) ([]domain.AgentView, error) {
	return s.repo.List(ctx)
}

// Create hashes the password and persists the agent.
func (s *AgentService) Create(ctx context.Context, in ports.CreateAgentInput) (*domain.AgentView, error) {
	email := normalizeEmail(in.Email)
	name := strings.TrimSpace(in.Name)
	if name == "" || email == "" || in.Password == "" || !in.Role.Valid() {
		return nil, domain.ErrValidation
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("create agent: hash password: %w", err)
	}

	created, err := s.repo.Create(ctx, domain.NewAgent{
		Name:         name,
		Email:        email,
		Role:         in.Role,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("agent_id", created.ID).Str("role", string(created.Role)).Msg("agent created")
	return created, nil
}

// Update applies a partial change. A new password is re-hashed before it
// reaches the store. Returns nil when the agent does not exist.
func (s *AgentService) Update(ctx context.Context, id string, in ports.UpdateAgentInput) (*domain.AgentView, error) {
	changes := domain.AgentChanges{UpdatedAt: time.Now().UTC()}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrValidation
		}
		changes.Name = &name
	}
	if in.Email != nil {
		email := normalizeEmail(*in.Email)
		if email == "" {
			return nil, domain.ErrValidation
		}
		changes.Email = &email
	}
	if in.Role != nil {
		if !in.Role.Valid() {
			return nil, domain.ErrValidation
		}
		role := *in.Role
		changes.Role = &role
	}
	if in.Password != nil {
		if *in.Password == "" {
			return nil, domain.ErrValidation
		}
		hash, err := s.hasher.Hash(*in.Password)
		if err != nil {
			return nil, fmt.Errorf("update agent: hash password: %w", err)
		}
		changes.PasswordHash = &hash
	}

	if changes.Empty() {
		return s.repo.FindByID(ctx, id)
	}

	updated, err := s.repo.Update(ctx, id, changes)
	if err != nil {
		return nil, err
	}
	if updated != nil {
		s.log.Info().Str("agent_id", updated.ID).Bool("password_changed", changes.PasswordHash != nil).Msg("agent updated")
	}
	return updated, nil
}

// Delete removes the agent and reports how many documents were deleted.
func (s *AgentService) Delete(ctx context.Context, id string) (int64, error) {
	n, err := s.repo.Delete(ctx, id)
	if err != nil {
		return 0, err
	}
	s.log.Info().Str("agent_id", id).Int64("deleted_count", n).Msg("agent deleted")
	return n, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
