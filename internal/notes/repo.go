package notes

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Store is the storage collaborator used by the Service.
type Store interface {
	Insert(ctx context.Context, n *Note) (primitive.ObjectID, error)
	FindAll(ctx context.Context) ([]*Note, error)
}

type Repo struct {
	coll *mongo.Collection
}

// NewRepo binds a Repo to the named collection. A nil database yields a Repo
// whose operations fail with ErrDatabaseUnavailable.
func NewRepo(db *mongo.Database, collection string) *Repo {
	if db == nil {
		return &Repo{}
	}
	return &Repo{coll: db.Collection(collection)}
}

// EnsureIndexes creates the createdAt index used for time-ordered reads
func (r *Repo) EnsureIndexes(ctx context.Context) error {
	if r.coll == nil {
		return ErrDatabaseUnavailable
	}

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "createdAt", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("create indexes: %w", err)
	}
	return nil
}

// Insert stores n and sets n.ID to the identifier assigned on insertion
func (r *Repo) Insert(ctx context.Context, n *Note) (primitive.ObjectID, error) {
	if r.coll == nil {
		return primitive.NilObjectID, ErrDatabaseUnavailable
	}

	res, err := r.coll.InsertOne(ctx, n)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("insert note: %w", unavailable(err))
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("insert note: unexpected id type %T", res.InsertedID)
	}
	n.ID = id
	return id, nil
}

// FindAll returns every note in the collection, unfiltered and unsorted
func (r *Repo) FindAll(ctx context.Context) ([]*Note, error) {
	if r.coll == nil {
		return nil, ErrDatabaseUnavailable
	}

	cursor, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("find notes: %w", unavailable(err))
	}
	defer cursor.Close(ctx)

	var notes []*Note
	if err := cursor.All(ctx, &notes); err != nil {
		return nil, fmt.Errorf("decode notes: %w", unavailable(err))
	}
	if notes == nil {
		notes = []*Note{}
	}
	return notes, nil
}

// Ping checks the connection behind the Repo
func (r *Repo) Ping(ctx context.Context) error {
	if r.coll == nil {
		return ErrDatabaseUnavailable
	}
	if err := r.coll.Database().Client().Ping(ctx, nil); err != nil {
		return fmt.Errorf("ping: %w", unavailable(err))
	}
	return nil
}

func unavailable(err error) error {
	if errors.Is(err, mongo.ErrClientDisconnected) {
		return fmt.Errorf("%w: %w", ErrDatabaseUnavailable, err)
	}
	return err
}
