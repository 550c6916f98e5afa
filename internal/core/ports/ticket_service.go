package ports

import (
	"context"

	"github.com/helpdesk-hq/helpdesk-api/internal/core/domain"
)

// CreateTicketInput carries the data a user submits when opening a ticket.
type CreateTicketInput struct {
	Title      string
	Department domain.Department
	Message    string
	UserID     string
}

// TicketService defines ticket use cases for both the user and agent surfaces.
type TicketService interface {
	ListAll(ctx context.Context, filter domain.TicketFilter) ([]domain.TicketSummary, error)
	ListForUser(ctx context.Context, userID string) ([]domain.TicketSummary, error)
	GetDetails(ctx context.Context, id string) (*domain.Ticket, error)
	Create(ctx context.Context, input CreateTicketInput) (*domain.Ticket, error)
	AppendMessage(ctx context.Context, id, content string, ownerType domain.OwnerType, ownerID string) (*domain.AppendedMessage, error)
	Rate(ctx context.Context, id string, rate int) (*domain.TicketRate, error)
	ChangeStatus(ctx context.Context, id string, status domain.TicketStatus) (*domain.TicketStatusChange, error)
}
