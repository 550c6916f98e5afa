package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/helpdesk-hq/helpdesk-api/internal/core/domain"
	"github.com/helpdesk-hq/helpdesk-api/internal/core/ports"
)

type TicketService struct {
	repo   ports.TicketRepository
	logger zerolog.Logger
	now    func() time.Time
}

func NewTicketService(repo ports.TicketRepository, logger zerolog.Logger) *TicketService {
	return &TicketService{repo: repo, logger: logger, now: time.Now}
}

// ListAll returns every ticket matching filter, without message bodies.
func (s *TicketService) ListAll(ctx context.Context, filter domain.TicketFilter) ([]domain.TicketSummary, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, domain.ErrValidation
	}
	if filter.Department != "" && !filter.Department.Valid() {
		return nil, domain.ErrValidation
	}
	return s.repo.List(ctx, filter)
}

// ListForUser returns the tickets opened by userID. A blank user id matches
// nothing.
func (s *TicketService) ListForUser(ctx context.Context, userID string) ([]domain.TicketSummary, error) {
	if strings.TrimSpace(userID) == "" {
		return []domain.TicketSummary{}, nil
	}
	return s.repo.ListByUser(ctx, userID)
}

// GetDetails returns the ticket with its full thread, or nil when absent.
func (s *TicketService) GetDetails(ctx context.Context, id string) (*domain.Ticket, error) {
	return s.repo.FindByID(ctx, id)
}

// Create opens a ticket whose thread starts with the user's message.
func (s *TicketService) Create(ctx context.Context, in ports.CreateTicketInput) (*domain.Ticket, error) {
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.UserID) == "" ||
		!in.Department.Valid() || !validContent(in.Message) {
		return nil, domain.ErrValidation
	}

	now := s.now().UTC()
	ticket := &domain.Ticket{
		Title:      in.Title,
		Department: in.Department,
		Status:     domain.StatusNotAnswered,
		UserID:     in.UserID,
		Messages: []domain.Message{{
			Content:   in.Message,
			OwnerType: domain.OwnerUser,
			OwnerID:   in.UserID,
			CreatedAt: now,
		}},
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.repo.Create(ctx, ticket)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create ticket")
		return nil, err
	}

	s.logger.Info().Str("ticket_id", created.ID).Str("department", string(created.Department)).Msg("ticket created")
	return created, nil
}

// AppendMessage adds one message to the ticket thread. The result holds only
// the appended message; nil means the ticket does not exist.
func (s *TicketService) AppendMessage(ctx context.Context, id, content string, ownerType domain.OwnerType, ownerID string) (*domain.AppendedMessage, error) {
	if !validContent(content) || !ownerType.Valid() || strings.TrimSpace(ownerID) == "" {
		return nil, domain.ErrValidation
	}

	appended, err := s.repo.AppendMessage(ctx, id, domain.Message{
		Content:   content,
		OwnerType: ownerType,
		OwnerID:   ownerID,
		CreatedAt: s.now().UTC(),
	})
	if err != nil {
		return nil, err
	}
	if appended != nil {
		s.logger.Info().
			Str("ticket_id", appended.TicketID).
			Str("message_id", appended.Message.ID).
			Str("owner_type", string(ownerType)).
			Msg("message appended")
	}
	return appended, nil
}

// Rate sets the ticket rate. Any ticket can be rated regardless of status.
func (s *TicketService) Rate(ctx context.Context, id string, rate int) (*domain.TicketRate, error) {
	if rate < domain.MinRate || rate > domain.MaxRate {
		return nil, domain.ErrValidation
	}
	return s.repo.SetRate(ctx, id, rate)
}

// ChangeStatus sets the status. Every status is reachable from every other.
func (s *TicketService) ChangeStatus(ctx context.Context, id string, status domain.TicketStatus) (*domain.TicketStatusChange, error) {
	if !status.Valid() {
		return nil, domain.ErrValidation
	}
	changed, err := s.repo.SetStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	if changed != nil {
		s.logger.Info().Str("ticket_id", changed.TicketID).Str("status", string(status)).Msg("ticket status changed")
	}
	return changed, nil
}

func validContent(content string) bool {
	return strings.TrimSpace(content) != "" && len([]rune(content)) <= domain.MaxMessageLength
}
