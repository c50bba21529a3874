// Package repositories holds the MongoDB-backed stores for every collection.
package repositories

import (
	"context"
	"errors"
	"fmt"

	"societyhub-be/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// store wraps a collection with the lookups every repository shares.
type store[T any] struct {
	coll *mongo.Collection
	noun string
}

func newStore[T any](db *mongo.Database, name, noun string) store[T] {
	return store[T]{coll: db.Collection(name), noun: noun}
}

func (s store[T]) insert(ctx context.Context, doc *T) (primitive.ObjectID, error) {
	res, err := s.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, models.ErrConflict("%s already exists", s.noun)
		}
		return primitive.NilObjectID, fmt.Errorf("insert %s: %w", s.noun, err)
	}
	id, _ := res.InsertedID.(primitive.ObjectID)
	return id, nil
}

func (s store[T]) findOne(ctx context.Context, filter interface{}) (*T, error) {
	var doc T
	err := s.coll.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrNotFound("%s not found", s.noun)
		}
		return nil, fmt.Errorf("find %s: %w", s.noun, err)
	}
	return &doc, nil
}

func (s store[T]) findByID(ctx context.Context, id primitive.ObjectID) (*T, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

func (s store[T]) find(ctx context.Context, filter interface{}, sort bson.D) ([]T, error) {
	cursor, err := s.coll.Find(ctx, filter, options.Find().SetSort(sort))
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.noun, err)
	}
	defer cursor.Close(ctx)

	docs := []T{}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.noun, err)
	}
	return docs, nil
}

// updateByID applies update and returns the document as it is afterwards.
func (s store[T]) updateByID(ctx context.Context, id primitive.ObjectID, update interface{}) (*T, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc T
	err := s.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrNotFound("%s not found", s.noun)
		}
		return nil, fmt.Errorf("update %s: %w", s.noun, err)
	}
	return &doc, nil
}

func (s store[T]) deleteByID(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete %s: %w", s.noun, err)
	}
	if res.DeletedCount == 0 {
		return models.ErrNotFound("%s not found", s.noun)
	}
	return nil
}
