package params

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store fetches parameter documents from the MongoDB parameter collection.
type Store struct {
	client     *mongo.Client
	database   string
	collection string
}

// NewStore connects to MongoDB and pings it so authentication problems
// surface before any document fetch.
func NewStore(ctx context.Context, uri, database, collection string) (*Store, error) {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to parameter store: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping parameter store: %w", err)
	}

	return &Store{client: client, database: database, collection: collection}, nil
}

// Close disconnects the underlying client.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Document fetches a parameter document by its hex ObjectID.
func (s *Store) Document(ctx context.Context, id string) (map[string]any, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid parameter document id %q: %w", id, err)
	}

	log.Debug().Str("collection", s.collection).Str("id", id).Msg("params: fetching parameter document")

	var doc bson.M
	coll := s.client.Database(s.database).Collection(s.collection)
	if err := coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to fetch parameter document %s: %w", id, err)
	}
	return normalize(doc), nil
}

// Load fetches and validates both schema parameter documents.
func (s *Store) Load(ctx context.Context, bcID, pdID string) (Schema, error) {
	bcDoc, err := s.Document(ctx, bcID)
	if err != nil {
		return Schema{}, err
	}
	pdDoc, err := s.Document(ctx, pdID)
	if err != nil {
		return Schema{}, err
	}

	bc, err := BCFromDocument(bcDoc)
	if err != nil {
		return Schema{}, fmt.Errorf("invalid BC parameter document %s: %w", bcID, err)
	}
	pd, err := PDFromDocument(pdDoc)
	if err != nil {
		return Schema{}, fmt.Errorf("invalid PD parameter document %s: %w", pdID, err)
	}
	return Schema{BC: bc, PD: pd}, nil
}

// normalize converts nested bson documents to plain maps so the schema
// parsers stay driver-agnostic.
func normalize(doc bson.M) map[string]any {
	out := make(map[string]any, len(doc))
	for k, v := range doc {
		switch t := v.(type) {
		case bson.M:
			out[k] = normalize(t)
		case bson.D:
			out[k] = normalize(t.Map())
		default:
			out[k] = v
		}
	}
	return out
}
