package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/helpdesk-hq/helpdesk-api/internal/core/domain"
)

const collectionTickets = "tickets"

var (
	summaryProjection     = bson.M{"messages": 0}
	userSummaryProjection = bson.M{"messages": 0, "user_id": 0}
	lastMessageProjection = bson.M{"_id": 1, "messages": bson.M{"$slice": -1}}
	rateProjection        = bson.M{"_id": 1, "rate": 1}
	statusProjection      = bson.M{"_id": 1, "status": 1}
	creationOrder         = bson.D{{Key: "_id", Value: 1}}
)

type TicketRepository struct {
	col *mongo.Collection
}

func NewTicketRepository(db *mongo.Database) *TicketRepository {
	return &TicketRepository{col: db.Collection(collectionTickets)}
}

type messageDoc struct {
	ID        primitive.ObjectID `bson:"_id"`
	Content   string             `bson:"content"`
	OwnerType string             `bson:"owner_type"`
	OwnerID   string             `bson:"owner_id"`
	CreatedAt time.Time          `bson:"created_at"`
}

type ticketDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Title      string             `bson:"title"`
	Department string             `bson:"department"`
	Status     string             `bson:"status"`
	Rate       *int               `bson:"rate,omitempty"`
	UserID     string             `bson:"user_id"`
	Messages   []messageDoc       `bson:"messages"`
	CreatedAt  time.Time          `bson:"created_at"`
	UpdatedAt  time.Time          `bson:"updated_at"`
}

type ticketSummaryDoc struct {
	ID         primitive.ObjectID `bson:"_id"`
	Title      string             `bson:"title"`
	Department string             `bson:"department"`
	Status     string             `bson:"status"`
	Rate       *int               `bson:"rate,omitempty"`
	UserID     string             `bson:"user_id,omitempty"`
	CreatedAt  time.Time          `bson:"created_at"`
	UpdatedAt  time.Time          `bson:"updated_at"`
}

type lastMessageDoc struct {
	ID       primitive.ObjectID `bson:"_id"`
	Messages []messageDoc       `bson:"messages"`
}

type rateDoc struct {
	ID   primitive.ObjectID `bson:"_id"`
	Rate int                `bson:"rate"`
}

type statusDoc struct {
	ID     primitive.ObjectID `bson:"_id"`
	Status string             `bson:"status"`
}

func (m messageDoc) toDomain() domain.Message {
	return domain.Message{
		ID:        m.ID.Hex(),
		Content:   m.Content,
		OwnerType: domain.OwnerType(m.OwnerType),
		OwnerID:   m.OwnerID,
		CreatedAt: m.CreatedAt,
	}
}

func newMessageDoc(m domain.Message) messageDoc {
	return messageDoc{
		ID:        primitive.NewObjectID(),
		Content:   m.Content,
		OwnerType: string(m.OwnerType),
		OwnerID:   m.OwnerID,
		CreatedAt: m.CreatedAt.UTC(),
	}
}

func (d ticketDoc) toDomain() *domain.Ticket {
	msgs := make([]domain.Message, 0, len(d.Messages))
	for _, m := range d.Messages {
		msgs = append(msgs, m.toDomain())
	}
	return &domain.Ticket{
		ID:         d.ID.Hex(),
		Title:      d.Title,
		Department: domain.Department(d.Department),
		Status:     domain.TicketStatus(d.Status),
		Rate:       d.Rate,
		UserID:     d.UserID,
		Messages:   msgs,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}

func (d ticketSummaryDoc) toDomain() domain.TicketSummary {
	return domain.TicketSummary{
		ID:         d.ID.Hex(),
		Title:      d.Title,
		Department: domain.Department(d.Department),
		Status:     domain.TicketStatus(d.Status),
		Rate:       d.Rate,
		UserID:     d.UserID,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}

// Create inserts a new ticket document and returns it with generated ids.
func (r *TicketRepository) Create(ctx context.Context, t *domain.Ticket) (*domain.Ticket, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := ticketDoc{
		Title:      t.Title,
		Department: string(t.Department),
		Status:     string(t.Status),
		Rate:       t.Rate,
		UserID:     t.UserID,
		Messages:   make([]messageDoc, 0, len(t.Messages)),
		CreatedAt:  t.CreatedAt.UTC(),
		UpdatedAt:  t.UpdatedAt.UTC(),
	}
	for _, m := range t.Messages {
		doc.Messages = append(doc.Messages, newMessageDoc(m))
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert ticket: %w", err)
	}
	doc.ID, _ = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

// List returns ticket summaries matching the filter, oldest first.
func (r *TicketRepository) List(ctx context.Context, filter domain.TicketFilter) ([]domain.TicketSummary, error) {
	query := bson.M{}
	if filter.Status != "" {
		query["status"] = string(filter.Status)
	}
	if filter.Department != "" {
		query["department"] = string(filter.Department)
	}
	if filter.UserID != "" {
		query["user_id"] = filter.UserID
	}
	return r.findSummaries(ctx, query, summaryProjection)
}

// ListByUser returns the user's tickets without message bodies or user_id.
func (r *TicketRepository) ListByUser(ctx context.Context, userID string) ([]domain.TicketSummary, error) {
	return r.findSummaries(ctx, bson.M{"user_id": userID}, userSummaryProjection)
}

func (r *TicketRepository) findSummaries(ctx context.Context, query, projection bson.M) ([]domain.TicketSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetProjection(projection).SetSort(creationOrder)
	cursor, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []ticketSummaryDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode tickets: %w", err)
	}

	out := make([]domain.TicketSummary, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

// FindByID returns the full ticket including its thread, or nil when absent.
func (r *TicketRepository) FindByID(ctx context.Context, id string) (*domain.Ticket, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc ticketDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if isNoDocuments(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("find ticket: %w", err)
	}
	return doc.toDomain(), nil
}

// AppendMessage pushes one message and reads back the tail of the thread in
// the same findAndModify, so concurrent appends cannot overwrite each other.
func (r *TicketRepository) AppendMessage(ctx context.Context, id string, msg domain.Message) (*domain.AppendedMessage, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{
		"$push": bson.M{"messages": newMessageDoc(msg)},
		"$set":  bson.M{"updated_at": msg.CreatedAt.UTC()},
	}
	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(lastMessageProjection)

	var doc lastMessageDoc
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&doc); err != nil {
		if isNoDocuments(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("append message: %w", err)
	}
	if len(doc.Messages) == 0 {
		return nil, errors.New("append message: thread empty after push")
	}

	return &domain.AppendedMessage{
		TicketID: doc.ID.Hex(),
		Message:  doc.Messages[len(doc.Messages)-1].toDomain(),
	}, nil
}

// SetRate updates only the rate (and updated_at).
func (r *TicketRepository) SetRate(ctx context.Context, id string, rate int) (*domain.TicketRate, error) {
	var doc rateDoc
	found, err := r.setField(ctx, id, "rate", rate, rateProjection, &doc)
	if err != nil || !found {
		return nil, err
	}
	return &domain.TicketRate{TicketID: doc.ID.Hex(), Rate: doc.Rate}, nil
}

// SetStatus updates only the status (and updated_at).
func (r *TicketRepository) SetStatus(ctx context.Context, id string, status domain.TicketStatus) (*domain.TicketStatusChange, error) {
	var doc statusDoc
	found, err := r.setField(ctx, id, "status", string(status), statusProjection, &doc)
	if err != nil || !found {
		return nil, err
	}
	return &domain.TicketStatusChange{TicketID: doc.ID.Hex(), Status: domain.TicketStatus(doc.Status)}, nil
}

func (r *TicketRepository) setField(ctx context.Context, id, field string, value any, projection bson.M, out any) (bool, error) {
	oid, err := parseID(id)
	if err != nil {
		return false, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{field: value, "updated_at": time.Now().UTC()}}
	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(projection)

	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(out); err != nil {
		if isNoDocuments(err) {
			return false, nil
		}
		return false, fmt.Errorf("set ticket %s: %w", field, err)
	}
	return true, nil
}

// EnsureIndexes creates the lookup indexes on the tickets collection.
func (r *TicketRepository) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "department", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
		{Keys: bson.D{{Key: "messages.owner_type", Value: 1}}},
		{Keys: bson.D{{Key: "messages.owner_id", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
