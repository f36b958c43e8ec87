package notes

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeStore is an in-memory Store.
type fakeStore struct {
	mu        sync.Mutex
	notes     []Note
	insertErr error
	findErr   error
}

func (f *fakeStore) Insert(ctx context.Context, n *Note) (primitive.ObjectID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return primitive.NilObjectID, f.insertErr
	}
	n.ID = primitive.NewObjectID()
	f.notes = append(f.notes, *n)
	return n.ID, nil
}

func (f *fakeStore) FindAll(ctx context.Context) ([]*Note, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	out := make([]*Note, 0, len(f.notes))
	for i := range f.notes {
		n := f.notes[i]
		out = append(out, &n)
	}
	return out, nil
}

func (f *fakeStore) len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.notes)
}
