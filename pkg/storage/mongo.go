package storage

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/hypergraph/pkg/errors"
	"github.com/matzehuels/hypergraph/pkg/hypergraph"
)

// MongoConfig configures a [MongoStore].
type MongoConfig struct {
	URI        string
	Database   string
	Collection string
}

const (
	defaultMongoDatabase   = "hypergraph"
	defaultMongoCollection = "documents"
)

// MongoStore keeps documents in a MongoDB collection keyed by name.
// Documents are stored decoded, so only the persisted form round-trips;
// unknown JSON fields are dropped on Put.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// record is the stored shape of one document.
type record struct {
	Name      string          `bson:"_id"`
	Document  hypergraph.File `bson:"document"`
	UpdatedAt time.Time       `bson:"updated_at"`
}

// newRecord decodes raw into its stored shape. The decoded form must still
// load as a document, so shapes that only survive as raw JSON are rejected.
func newRecord(name string, raw []byte) (record, error) {
	var f hypergraph.File
	if err := json.Unmarshal(raw, &f); err != nil {
		return record{}, errors.Wrap(errors.ErrCodeInvalidDocument, err, "decode document %q", name)
	}
	if _, _, err := hypergraph.FromFile(f); err != nil {
		return record{}, errors.Wrap(errors.ErrCodeInvalidDocument, err, "document %q", name)
	}
	return record{Name: name, Document: f, UpdatedAt: time.Now().UTC()}, nil
}

// NewMongoStore connects to MongoDB and verifies the connection.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.Database == "" {
		cfg.Database = defaultMongoDatabase
	}
	if cfg.Collection == "" {
		cfg.Collection = defaultMongoCollection
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "connect mongo")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "ping mongo")
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

// List returns document names sorted ascending.
func (s *MongoStore) List(ctx context.Context) ([]string, error) {
	opts := options.Find().
		SetProjection(bson.M{"_id": 1, "updated_at": 1}).
		SetSort(bson.D{{Key: "_id", Value: 1}})
	cur, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "list documents")
	}
	var infos []Info
	if err := cur.All(ctx, &infos); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "list documents")
	}
	names := make([]string, len(infos))
	for i, info := range infos {
		names[i] = info.Name
	}
	return names, nil
}

// Get loads name and returns it re-encoded as JSON.
func (s *MongoStore) Get(ctx context.Context, name string) ([]byte, error) {
	if err := errors.ValidateDocumentName(name); err != nil {
		return nil, err
	}
	var rec record
	err := s.coll.FindOne(ctx, bson.M{"_id": name}).Decode(&rec)
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return nil, errors.New(errors.ErrCodeNotFound, "document %q not found", name)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "get document %q", name)
	}
	data, err := json.MarshalIndent(rec.Document, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode document %q", name)
	}
	return data, nil
}

// Put decodes raw and upserts it under name.
func (s *MongoStore) Put(ctx context.Context, name string, raw []byte) error {
	if err := errors.ValidateDocumentName(name); err != nil {
		return err
	}
	rec, err := newRecord(name, raw)
	if err != nil {
		return err
	}
	_, err = s.coll.ReplaceOne(ctx, bson.M{"_id": name}, rec, options.Replace().SetUpsert(true))
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "put document %q", name)
	}
	return nil
}

// Delete removes name.
func (s *MongoStore) Delete(ctx context.Context, name string) error {
	if err := errors.ValidateDocumentName(name); err != nil {
		return err
	}
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": name}); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "delete document %q", name)
	}
	return nil
}

// Close disconnects the client.
func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
