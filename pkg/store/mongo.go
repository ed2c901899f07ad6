package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	apperrors "github.com/yanqirenshi/padgen/pkg/errors"
)

const (
	mongoDatabase   = "padgen"
	mongoCollection = "diagrams"
)

// MongoStore persists diagrams in a MongoDB collection keyed by diagram ID.
type MongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// NewMongoStore connects to MongoDB at uri and verifies the connection with
// a ping before returning.
func NewMongoStore(ctx context.Context, uri string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeStore, err, "connect to %s", uri)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, apperrors.Wrap(apperrors.ErrCodeStore, err, "ping %s", uri)
	}

	return &MongoStore{
		client:     client,
		collection: client.Database(mongoDatabase).Collection(mongoCollection),
	}, nil
}

// Put saves a diagram, replacing any existing record with the same ID.
func (s *MongoStore) Put(ctx context.Context, d *Diagram) error {
	_, err := s.collection.ReplaceOne(
		ctx,
		bson.M{"_id": d.ID},
		d,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeStore, err, "save diagram %s", d.ID)
	}
	return nil
}

// Get retrieves a diagram by ID.
func (s *MongoStore) Get(ctx context.Context, id string) (*Diagram, error) {
	var d Diagram
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.Wrap(apperrors.ErrCodeNotFound, ErrNotFound, "diagram %s", id)
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeStore, err, "load diagram %s", id)
	}
	return &d, nil
}

// Delete removes a diagram.
func (s *MongoStore) Delete(ctx context.Context, id string) error {
	if _, err := s.collection.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeStore, err, "delete diagram %s", id)
	}
	return nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Ensure MongoStore implements Store.
var _ Store = (*MongoStore)(nil)
