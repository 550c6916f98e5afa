package domain

import (
	"errors"
	"time"
)

// Department routes a ticket to a support team.
type Department string

const (
	DepartmentTechnical Department = "technical"
	DepartmentMarketing Department = "marketing"
	DepartmentSales     Department = "sales"
	DepartmentSupport   Department = "support"
)

func (d Department) Valid() bool {
	switch d {
	case DepartmentTechnical, DepartmentMarketing, DepartmentSales, DepartmentSupport:
		return true
	}
	return false
}

// TicketStatus is the answer state of a ticket. Any status may follow any
// other; there is no transition table.
type TicketStatus string

const (
	StatusNotAnswered TicketStatus = "not_answered"
	StatusClosed      TicketStatus = "closed"
	StatusPending     TicketStatus = "pending"
	StatusAnswered    TicketStatus = "answered"
)

func (s TicketStatus) Valid() bool {
	switch s {
	case StatusNotAnswered, StatusClosed, StatusPending, StatusAnswered:
		return true
	}
	return false
}

// OwnerType tags who wrote a message. OwnerID is interpreted accordingly.
type OwnerType string

const (
	OwnerUser  OwnerType = "user"
	OwnerAgent OwnerType = "agent"
)

func (o OwnerType) Valid() bool {
	return o == OwnerUser || o == OwnerAgent
}

const (
	MinRate          = 1
	MaxRate          = 5
	MaxMessageLength = 512
	MaxTitleLength   = 128
)

var (
	ErrValidation  = errors.New("validation failed")
	ErrMalformedID = errors.New("malformed identifier")
)

// Message is one immutable entry of a ticket thread.
type Message struct {
	ID        string
	Content   string
	OwnerType OwnerType
	OwnerID   string
	CreatedAt time.Time
}

// Ticket is the aggregate root; Messages are kept in append order.
type Ticket struct {
	ID         string
	Title      string
	Department Department
	Status     TicketStatus
	Rate       *int
	UserID     string
	Messages   []Message
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TicketSummary is a ticket without its thread. UserID is empty on the
// per-user listing.
type TicketSummary struct {
	ID         string
	Title      string
	Department Department
	Status     TicketStatus
	Rate       *int
	UserID     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// AppendedMessage is the narrow result of an append: the ticket id and the
// message that was just pushed, never the rest of the thread.
type AppendedMessage struct {
	TicketID string
	Message  Message
}

// TicketRate is the result of rating a ticket.
type TicketRate struct {
	TicketID string
	Rate     int
}

// TicketStatusChange is the result of changing a ticket status.
type TicketStatusChange struct {
	TicketID string
	Status   TicketStatus
}

// TicketFilter narrows the agent-side listing. Zero values are ignored.
type TicketFilter struct {
	Status     TicketStatus
	Department Department
	UserID     string
}
