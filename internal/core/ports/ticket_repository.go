package ports

import (
	"context"

	"github.com/helpdesk-hq/helpdesk-api/internal/core/domain"
)

// TicketRepository defines persistence for tickets and their embedded threads.
//
// Lookups by a well-formed id that matches nothing return a nil result and a
// nil error. An id that is not in the store's native format fails with
// domain.ErrMalformedID.
type TicketRepository interface {
	Create(ctx context.Context, t *domain.Ticket) (*domain.Ticket, error)
	// List returns summaries without message bodies.
	List(ctx context.Context, filter domain.TicketFilter) ([]domain.TicketSummary, error)
	// ListByUser returns summaries without message bodies or the user id.
	ListByUser(ctx context.Context, userID string) ([]domain.TicketSummary, error)
	FindByID(ctx context.Context, id string) (*domain.Ticket, error)
	// AppendMessage pushes msg onto the thread in a single atomic update and
	// returns only the element that ended up last.
	AppendMessage(ctx context.Context, id string, msg domain.Message) (*domain.AppendedMessage, error)
	SetRate(ctx context.Context, id string, rate int) (*domain.TicketRate, error)
	SetStatus(ctx context.Context, id string, status domain.TicketStatus) (*domain.TicketStatusChange, error)
}
