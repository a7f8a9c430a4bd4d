package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for repository layer
var (
	ErrNotFound  = RepositoryError("not found")
	ErrInvalidID = RepositoryError("invalid identifier")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// Document is the untyped shape a document takes inside the store.
type Document = bson.M

// DocumentStore is a collection-agnostic view of the document database.
// Callers validate documents before handing them over; the store does not.
type DocumentStore interface {
	// CreateDocument inserts one document and returns its store-assigned id.
	CreateDocument(ctx context.Context, collection string, document any) (string, error)
	// GetDocuments returns up to limit documents matching filter. A nil or empty
	// filter matches everything; limit <= 0 means no cap.
	GetDocuments(ctx context.Context, collection string, filter Document, limit int64) ([]Document, error)
	FindDocument(ctx context.Context, collection string, id primitive.ObjectID) (Document, error)
	// ReplaceFields sets every key of set and removes every key in unset.
	ReplaceFields(ctx context.Context, collection string, id primitive.ObjectID, set Document, unset []string) error
	DeleteDocument(ctx context.Context, collection string, id primitive.ObjectID) error

	// Name of the underlying database.
	Name() string
	ListCollectionNames(ctx context.Context) ([]string, error)
}

// ParseID converts the transport form of an identifier into an ObjectID.
func ParseID(s string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q is not a 24-character hex id", ErrInvalidID, s)
	}
	return id, nil
}

// FormatID is the inverse of ParseID.
func FormatID(id primitive.ObjectID) string {
	return id.Hex()
}
