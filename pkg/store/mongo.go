package store

import (
	"context"
	"slices"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/roshansamantaray/CogniCrypt-DOC-LLM/pkg/errors"
	"github.com/roshansamantaray/CogniCrypt-DOC-LLM/pkg/rule"
)

// MongoStore persists universes in a MongoDB collection, one document per
// universe keyed by name.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// MongoOptions configures a MongoDB-backed store.
type MongoOptions struct {
	URI        string // defaults to mongodb://localhost:27017
	Database   string // defaults to "crysldoc"
	Collection string // defaults to "universes"
}

// NewMongoStore connects to MongoDB and verifies the connection with a short
// ping before returning.
func NewMongoStore(ctx context.Context, opts MongoOptions) (*MongoStore, error) {
	uri := opts.URI
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}
	db := opts.Database
	if db == "" {
		db = "crysldoc"
	}
	coll := opts.Collection
	if coll == "" {
		coll = "universes"
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "connect %s", uri)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "ping %s", uri)
	}

	return &MongoStore{
		client: client,
		coll:   client.Database(db).Collection(coll),
	}, nil
}

// Put upserts a universe document keyed by its name.
func (s *MongoStore) Put(ctx context.Context, u *rule.Universe) error {
	if err := errors.ValidateUniverseName(u.Name); err != nil {
		return err
	}
	if err := u.Validate(); err != nil {
		return err
	}

	_, err := s.coll.ReplaceOne(ctx,
		bson.M{"name": u.Name},
		u,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "store universe %q", u.Name)
	}
	return nil
}

// Get returns the universe stored under name.
func (s *MongoStore) Get(ctx context.Context, name string) (*rule.Universe, error) {
	var u rule.Universe
	err := s.coll.FindOne(ctx, bson.M{"name": name}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, errors.New(errors.ErrCodeUniverseNotFound, "universe %q not found", name)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "load universe %q", name)
	}
	return &u, nil
}

// List returns the stored universe names in sorted order.
func (s *MongoStore) List(ctx context.Context) ([]string, error) {
	raw, err := s.coll.Distinct(ctx, "name", bson.M{})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "list universes")
	}

	names := make([]string, 0, len(raw))
	for _, v := range raw {
		if name, ok := v.(string); ok {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names, nil
}

// Delete removes the universe stored under name.
func (s *MongoStore) Delete(ctx context.Context, name string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"name": name})
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "delete universe %q", name)
	}
	if res.DeletedCount == 0 {
		return errors.New(errors.ErrCodeUniverseNotFound, "universe %q not found", name)
	}
	return nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
