package utils

import (
	"fmt"

	"cloud.google.com/go/firestore"
)

func ToPointer[T any](value T) *T {
	return &value
}

// GetAllToStructs decodes every document into a T. withID, when set, receives the
// document ID for types that do not store their ID inside the document.
func GetAllToStructs[T any](docs []*firestore.DocumentSnapshot, withID func(*T, string)) ([]T, error) {
	result := make([]T, len(docs))
	for i, doc := range docs {
		var item T
		if err := doc.DataTo(&item); err != nil {
			return nil, fmt.Errorf("failed to convert doc %s: %w", doc.Ref.ID, err)
		}
		if withID != nil {
			withID(&item, doc.Ref.ID)
		}
		result[i] = item
	}
	return result, nil
}
