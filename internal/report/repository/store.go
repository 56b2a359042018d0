package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when a read or a filtered write matches nothing.
// Mutations against a missing or already soft-deleted document surface it to
// the caller instead of resurrecting the document.
var ErrNotFound = errors.New("document not found")

// Store is the raw document-store handle a versioned collection wraps. The
// mongo adapter is the production implementation; MemStore backs tests and
// database-free local runs.
type Store interface {
	Find(ctx context.Context, filter bson.M, out any) error
	FindOne(ctx context.Context, filter bson.M, out any) error
	Aggregate(ctx context.Context, pipeline []bson.M, out any) error
	InsertOne(ctx context.Context, doc any) (primitive.ObjectID, error)
	InsertMany(ctx context.Context, docs []any) ([]primitive.ObjectID, error)
	FindOneAndReplace(ctx context.Context, filter bson.M, replacement, out any) error
	UpdateOne(ctx context.Context, filter, update bson.M) (int64, error)
	DeleteOne(ctx context.Context, filter bson.M) (int64, error)
	CountDocuments(ctx context.Context, filter bson.M) (int64, error)
}

// Database hands out one Store per named collection.
type Database interface {
	Collection(name string) Store
}

type mongoStore struct {
	coll *mongo.Collection
}

func NewMongoStore(coll *mongo.Collection) Store {
	return &mongoStore{coll: coll}
}

type mongoDatabase struct {
	db *mongo.Database
}

func NewMongoDatabase(db *mongo.Database) Database {
	return &mongoDatabase{db: db}
}

func (d *mongoDatabase) Collection(name string) Store {
	return NewMongoStore(d.db.Collection(name))
}

func (s *mongoStore) Find(ctx context.Context, filter bson.M, out any) error {
	cursor, err := s.coll.Find(ctx, filter)
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)
	return cursor.All(ctx, out)
}

func (s *mongoStore) FindOne(ctx context.Context, filter bson.M, out any) error {
	err := s.coll.FindOne(ctx, filter).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}

func (s *mongoStore) Aggregate(ctx context.Context, pipeline []bson.M, out any) error {
	cursor, err := s.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)
	return cursor.All(ctx, out)
}

func (s *mongoStore) InsertOne(ctx context.Context, doc any) (primitive.ObjectID, error) {
	res, err := s.coll.InsertOne(ctx, doc)
	if err != nil {
		return primitive.NilObjectID, err
	}
	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("store assigned a non object id key")
	}
	return id, nil
}

func (s *mongoStore) InsertMany(ctx context.Context, docs []any) ([]primitive.ObjectID, error) {
	res, err := s.coll.InsertMany(ctx, docs)
	if err != nil {
		return nil, err
	}
	ids := make([]primitive.ObjectID, 0, len(res.InsertedIDs))
	for _, raw := range res.InsertedIDs {
		id, ok := raw.(primitive.ObjectID)
		if !ok {
			return nil, errors.New("store assigned a non object id key")
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *mongoStore) FindOneAndReplace(ctx context.Context, filter bson.M, replacement, out any) error {
	opts := options.FindOneAndReplace().SetReturnDocument(options.After)
	err := s.coll.FindOneAndReplace(ctx, filter, replacement, opts).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}

func (s *mongoStore) UpdateOne(ctx context.Context, filter, update bson.M) (int64, error) {
	res, err := s.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

func (s *mongoStore) DeleteOne(ctx context.Context, filter bson.M) (int64, error) {
	res, err := s.coll.DeleteOne(ctx, filter)
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (s *mongoStore) CountDocuments(ctx context.Context, filter bson.M) (int64, error) {
	return s.coll.CountDocuments(ctx, filter)
}
