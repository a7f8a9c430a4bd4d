// internal/repository/mongo/document_store.go
package mongo

import (
	"alcyxob/fitness-notes/internal/repository"
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongoDocumentStore implements repository.DocumentStore
type mongoDocumentStore struct {
	db *mongo.Database
}

// NewMongoDocumentStore creates a DocumentStore backed by a single database.
// The driver client is safe for concurrent use, so one store serves every request.
func NewMongoDocumentStore(db *mongo.Database) repository.DocumentStore {
	return &mongoDocumentStore{db: db}
}

// CreateDocument inserts a document. The driver assigns an ObjectID when the
// document carries no _id.
func (s *mongoDocumentStore) CreateDocument(ctx context.Context, collection string, document any) (string, error) {
	result, err := s.db.Collection(collection).InsertOne(ctx, document)
	if err != nil {
		return "", err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted id type %T", result.InsertedID)
	}
	return repository.FormatID(insertedID), nil
}

// GetDocuments retrieves documents in natural store order.
func (s *mongoDocumentStore) GetDocuments(ctx context.Context, collection string, filter repository.Document, limit int64) ([]repository.Document, error) {
	if filter == nil {
		filter = bson.M{}
	}
	findOptions := options.Find()
	if limit > 0 {
		findOptions.SetLimit(limit)
	}

	cursor, err := s.db.Collection(collection).Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	docs := []repository.Document{}
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return docs, nil
}

// FindDocument retrieves a single document by its ID.
func (s *mongoDocumentStore) FindDocument(ctx context.Context, collection string, id primitive.ObjectID) (repository.Document, error) {
	var doc repository.Document
	err := s.db.Collection(collection).FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return doc, nil
}

// ReplaceFields overwrites the given fields of a document in one update.
func (s *mongoDocumentStore) ReplaceFields(ctx context.Context, collection string, id primitive.ObjectID, set repository.Document, unset []string) error {
	update := bson.M{"$set": set}
	if len(unset) > 0 {
		fields := bson.M{}
		for _, key := range unset {
			fields[key] = ""
		}
		update["$unset"] = fields
	}

	result, err := s.db.Collection(collection).UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// DeleteDocument removes at most one document.
func (s *mongoDocumentStore) DeleteDocument(ctx context.Context, collection string, id primitive.ObjectID) error {
	result, err := s.db.Collection(collection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (s *mongoDocumentStore) Name() string {
	return s.db.Name()
}

func (s *mongoDocumentStore) ListCollectionNames(ctx context.Context) ([]string, error) {
	return s.db.ListCollectionNames(ctx, bson.D{})
}
