package mongo

import (
	"errors"
	"fmt"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/helpdesk-hq/helpdesk-api/internal/core/domain"
)

func TestParseID(t *testing.T) {
	oid := primitive.NewObjectID()

	got, err := parseID(oid.Hex())
	if err != nil {
		t.Fatalf("valid id rejected: %v", err)
	}
	if got != oid {
		t.Fatalf("expected %s, got %s", oid.Hex(), got.Hex())
	}

	for _, bad := range []string{"", "1", "not-an-object-id", oid.Hex() + "00"} {
		if _, err := parseID(bad); !errors.Is(err, domain.ErrMalformedID) {
			t.Fatalf("parseID(%q): expected ErrMalformedID, got %v", bad, err)
		}
	}
}

func TestIsNoDocuments(t *testing.T) {
	if !isNoDocuments(fmt.Errorf("find: %w", mongo.ErrNoDocuments)) {
		t.Fatalf("wrapped ErrNoDocuments not detected")
	}
	if isNoDocuments(errors.New("boom")) {
		t.Fatalf("unrelated error detected as no documents")
	}
}

func TestTicketDocToDomain_PreservesThreadOrder(t *testing.T) {
	first := newMessageDoc(domain.Message{Content: "hi", OwnerType: domain.OwnerUser, OwnerID: "u1"})
	second := newMessageDoc(domain.Message{Content: "hello", OwnerType: domain.OwnerAgent, OwnerID: "a1"})

	doc := ticketDoc{
		ID:         primitive.NewObjectID(),
		Title:      "T",
		Department: "sales",
		Status:     "not_answered",
		UserID:     "u1",
		Messages:   []messageDoc{first, second},
	}

	ticket := doc.toDomain()
	if ticket.ID != doc.ID.Hex() || ticket.Department != domain.DepartmentSales || ticket.Status != domain.StatusNotAnswered {
		t.Fatalf("unexpected ticket: %+v", ticket)
	}
	if len(ticket.Messages) != 2 || ticket.Messages[0].Content != "hi" || ticket.Messages[1].Content != "hello" {
		t.Fatalf("thread not preserved: %+v", ticket.Messages)
	}
	if ticket.Messages[0].ID == ticket.Messages[1].ID {
		t.Fatalf("messages must get distinct ids")
	}
	if ticket.Messages[1].OwnerType != domain.OwnerAgent || ticket.Messages[1].OwnerID != "a1" {
		t.Fatalf("owner not preserved: %+v", ticket.Messages[1])
	}
}

func TestAgentViewDoc_HasNoPasswordField(t *testing.T) {
	view := agentViewDoc{ID: primitive.NewObjectID(), Name: "n", Email: "e@example.com", Role: "admin"}.toDomain()
	if view.Role != domain.RoleAdmin || view.Email != "e@example.com" {
		t.Fatalf("unexpected view: %+v", view)
	}
	if _, ok := publicAgentProjection["password_hash"]; !ok {
		t.Fatalf("public projection must exclude password_hash")
	}
}
