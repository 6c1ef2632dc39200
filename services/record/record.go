package record

import (
	"context"
	"errors"
	"fmt"

	"acadport/utils"

	"cloud.google.com/go/firestore"
	"github.com/fatih/structs"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var ErrNotFound = errors.New("record not found")

// SnapshotIterator yields the complete record set every time the collection changes.
// The first call to Next returns the current contents.
type SnapshotIterator interface {
	Next() ([]Record, error)
	Stop()
}

// Store is the document-store boundary for a user's records. Writes never return the
// written record; the change becomes visible through Subscribe.
type Store interface {
	// Subscribe opens a live query over the user's records ordered by createdAt, newest first.
	Subscribe(ctx context.Context, userID string) SnapshotIterator
	// Create adds a record. createdAt and updatedAt are assigned by the store.
	Create(ctx context.Context, userID string, fields Fields) error
	// Update overwrites the editable fields and updatedAt of an existing record.
	// Returns an error wrapping ErrNotFound if the record is gone.
	Update(ctx context.Context, userID string, id string, fields Fields) error
	// Delete removes a record. Returns an error wrapping ErrNotFound if the record is gone.
	Delete(ctx context.Context, userID string, id string) error
}

const (
	userCollection      = "users"
	recordSubCollection = "achievements"
	createdAtField      = "createdAt"
	updatedAtField      = "updatedAt"
)

type service struct {
	DB *firestore.Client
}

var _ Store = (*service)(nil)

func NewService(db *firestore.Client) Store {
	return &service{
		DB: db,
	}
}

func (s *service) collection(userID string) *firestore.CollectionRef {
	return s.DB.Collection(userCollection).Doc(userID).Collection(recordSubCollection)
}

func (s *service) Subscribe(ctx context.Context, userID string) SnapshotIterator {
	iter := s.collection(userID).
		OrderBy(createdAtField, firestore.Desc).
		Snapshots(ctx)
	return &snapshotIterator{iter: iter}
}

func (s *service) Create(ctx context.Context, userID string, fields Fields) error {
	data := structs.Map(fields)
	data[createdAtField] = firestore.ServerTimestamp
	data[updatedAtField] = firestore.ServerTimestamp

	_, _, err := s.collection(userID).Add(ctx, data)
	if err != nil {
		return err
	}
	return nil
}

func (s *service) Update(ctx context.Context, userID string, id string, fields Fields) error {
	updates := make([]firestore.Update, 0, len(structs.Names(fields))+1)
	for path, value := range structs.Map(fields) {
		updates = append(updates, firestore.Update{Path: path, Value: value})
	}
	updates = append(updates, firestore.Update{Path: updatedAtField, Value: firestore.ServerTimestamp})

	_, err := s.collection(userID).Doc(id).Update(ctx, updates)
	if status.Code(err) == codes.NotFound {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return err
}

func (s *service) Delete(ctx context.Context, userID string, id string) error {
	_, err := s.collection(userID).Doc(id).Delete(ctx, firestore.Exists)
	if status.Code(err) == codes.NotFound {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return err
}

type snapshotIterator struct {
	iter *firestore.QuerySnapshotIterator
}

func (it *snapshotIterator) Next() ([]Record, error) {
	snap, err := it.iter.Next()
	if err != nil {
		return nil, err
	}
	docs, err := snap.Documents.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot documents: %w", err)
	}
	return utils.GetAllToStructs(docs, func(r *Record, id string) {
		r.ID = id
	})
}

func (it *snapshotIterator) Stop() {
	it.iter.Stop()
}
