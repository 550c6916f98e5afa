package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/helpdesk-hq/helpdesk-api/internal/core/domain"
)

const agentCollection = "agents"

// publicAgentProjection keeps the password hash out of every read except the
// sign-in lookup.
var publicAgentProjection = bson.M{"password_hash": 0}

type AgentRepository struct {
	coll *mongo.Collection
}

func NewAgentRepository(db *mongo.Database) *AgentRepository {
	return &AgentRepository{coll: db.Collection(agentCollection)}
}

// agentDoc is the full stored document; only written and read for sign-in.
type agentDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"name"`
	Email        string             `bson:"email_address"`
	Role         string             `bson:"role"`
	PasswordHash string             `bson:"password_hash"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

// agentViewDoc has no field the hash could be decoded into.
type agentViewDoc struct {
	ID        primitive.ObjectID `bson:"_id"`
	Name      string             `bson:"name"`
	Email     string             `bson:"email_address"`
	Role      string             `bson:"role"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func (d agentViewDoc) toDomain() domain.AgentView {
	return domain.AgentView{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		Email:     d.Email,
		Role:      domain.Role(d.Role),
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func (r *AgentRepository) FindCredentialsByEmail(ctx context.Context, email string) (*domain.AgentCredentials, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc agentDoc
	if err := r.coll.FindOne(ctx, bson.M{"email_address": email}).Decode(&doc); err != nil {
		if isNoDocuments(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("find agent credentials: %w", err)
	}

	view := agentViewDoc{
		ID:        doc.ID,
		Name:      doc.Name,
		Email:     doc.Email,
		Role:      doc.Role,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
	return &domain.AgentCredentials{Agent: view.toDomain(), PasswordHash: doc.PasswordHash}, nil
}

func (r *AgentRepository) FindByID(ctx context.Context, id string) (*domain.AgentView, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc agentViewDoc
	opts := options.FindOne().SetProjection(publicAgentProjection)
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}, opts).Decode(&doc); err != nil {
		if isNoDocuments(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("find agent: %w", err)
	}

	view := doc.toDomain()
	return &view, nil
}

func (r *AgentRepository) List(ctx context.Context) ([]domain.AgentView, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetProjection(publicAgentProjection).
		SetSort(bson.D{{Key: "_id", Value: 1}})

	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list agents: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []agentViewDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode agents: %w", err)
	}

	agents := make([]domain.AgentView, 0, len(docs))
	for _, d := range docs {
		agents = append(agents, d.toDomain())
	}
	return agents, nil
}

func (r *AgentRepository) Create(ctx context.Context, agent domain.NewAgent) (*domain.AgentView, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := agentDoc{
		Name:         agent.Name,
		Email:        agent.Email,
		Role:         string(agent.Role),
		PasswordHash: agent.PasswordHash,
		CreatedAt:    agent.CreatedAt,
		UpdatedAt:    agent.CreatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("insert agent: %w", err)
	}

	oid, _ := res.InsertedID.(primitive.ObjectID)
	view := agentViewDoc{
		ID:        oid,
		Name:      doc.Name,
		Email:     doc.Email,
		Role:      doc.Role,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}.toDomain()
	return &view, nil
}

// Update applies the non-nil changes and returns the updated agent, or nil
// when no agent has that id.
func (r *AgentRepository) Update(ctx context.Context, id string, changes domain.AgentChanges) (*domain.AgentView, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	set := bson.M{"updated_at": changes.UpdatedAt}
	if changes.Name != nil {
		set["name"] = *changes.Name
	}
	if changes.Email != nil {
		set["email_address"] = *changes.Email
	}
	if changes.Role != nil {
		set["role"] = string(*changes.Role)
	}
	if changes.PasswordHash != nil {
		set["password_hash"] = *changes.PasswordHash
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(publicAgentProjection)

	var doc agentViewDoc
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&doc)
	if err != nil {
		if isNoDocuments(err) {
			return nil, nil
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("update agent: %w", err)
	}

	view := doc.toDomain()
	return &view, nil
}

func (r *AgentRepository) Delete(ctx context.Context, id string) (int64, error) {
	oid, err := parseID(id)
	if err != nil {
		return 0, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return 0, fmt.Errorf("delete agent: %w", err)
	}
	return res.DeletedCount, nil
}

// EnsureIndexes enforces email uniqueness at the store.
func (r *AgentRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email_address", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
