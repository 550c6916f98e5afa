package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// --- Session ---

type signinRequest struct {
	Email    string `json:"email_address" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=64"`
}

// --- Members ---

type agentResponse struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email_address"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type createMemberRequest struct {
	Name     string `json:"name" validate:"required,max=128"`
	Email    string `json:"email_address" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=64"`
	Role     string `json:"role" validate:"required,oneof=admin operator"`
}

type updateMemberRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=128"`
	Email    *string `json:"email_address" validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=8,max=64"`
	Role     *string `json:"role" validate:"omitempty,oneof=admin operator"`
}

type deleteResponse struct {
	DeletedCount int64 `json:"deleted_count"`
}

// --- Tickets ---

type messageResponse struct {
	ID        string    `json:"_id"`
	Content   string    `json:"content"`
	OwnerType string    `json:"owner_type"`
	OwnerID   string    `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
}

type ticketResponse struct {
	ID         string            `json:"_id"`
	Title      string            `json:"title"`
	Department string            `json:"department"`
	Status     string            `json:"status"`
	Rate       *int              `json:"rate,omitempty"`
	UserID     string            `json:"user_id"`
	Messages   []messageResponse `json:"messages"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

type ticketSummaryResponse struct {
	ID         string    `json:"_id"`
	Title      string    `json:"title"`
	Department string    `json:"department"`
	Status     string    `json:"status"`
	Rate       *int      `json:"rate,omitempty"`
	UserID     string    `json:"user_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// appendedMessageResponse holds the ticket id and only the message just
// appended.
type appendedMessageResponse struct {
	ID       string            `json:"_id"`
	Messages []messageResponse `json:"messages"`
}

type createTicketRequest struct {
	Title      string `json:"title" validate:"required,max=128"`
	Department string `json:"department" validate:"required,oneof=technical marketing sales support"`
	Message    string `json:"message" validate:"required,max=512"`
	UserID     string `json:"user_id" validate:"required"`
}

type userMessageRequest struct {
	Content string `json:"content" validate:"required,max=512"`
	UserID  string `json:"user_id" validate:"required"`
}

type agentMessageRequest struct {
	Content string `json:"content" validate:"required,max=512"`
}

type rateRequest struct {
	Rate flexInt `json:"rate" validate:"required,gte=1,lte=5" swaggertype:"integer"`
}

// flexInt is an int that also decodes from a quoted integer, so form-style
// clients may send "rate":"5".
type flexInt int

func (n *flexInt) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		v, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return fmt.Errorf("not an integer: %q", s)
		}
		*n = flexInt(v)
		return nil
	}
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	var v int
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*n = flexInt(v)
	return nil
}

type rateResponse struct {
	ID   string `json:"_id"`
	Rate int    `json:"rate"`
}

type statusRequest struct {
	Status string `json:"status" validate:"required,oneof=not_answered closed pending answered"`
}

type statusResponse struct {
	ID     string `json:"_id"`
	Status string `json:"status"`
}

type ticketFilterQuery struct {
	Status     string `query:"status" validate:"omitempty,oneof=not_answered closed pending answered"`
	Department string `query:"department" validate:"omitempty,oneof=technical marketing sales support"`
	UserID     string `query:"user_id"`
}
