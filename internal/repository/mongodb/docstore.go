package mongodb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/securefront/workforce-backend-go/internal/pkg/apperror"
	"github.com/securefront/workforce-backend-go/internal/pkg/docstore"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DocumentStore maps each logical collection onto a MongoDB collection and
// uses the document id as _id.
type DocumentStore struct {
	db *mongo.Database
}

func NewDocumentStore(client *mongo.Client, dbName string) *DocumentStore {
	return &DocumentStore{db: client.Database(dbName)}
}

func (s *DocumentStore) Get(ctx context.Context, collection, id string) (docstore.Document, error) {
	raw, err := s.db.Collection(collection).FindOne(ctx, bson.M{"_id": id}).Raw()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, docstore.ErrNotFound
		}
		return nil, apperror.Storage("get "+collection, err)
	}
	return fromRaw(raw)
}

func (s *DocumentStore) Put(ctx context.Context, collection string, doc docstore.Document) (docstore.Document, error) {
	stored, err := docstore.PrepareInsert(doc)
	if err != nil {
		return nil, err
	}

	insert := bson.M{"_id": stored.ID()}
	for k, v := range stored {
		insert[k] = v
	}
	if _, err := s.db.Collection(collection).InsertOne(ctx, insert); err != nil {
		return nil, apperror.Storage("put "+collection, err)
	}
	return stored, nil
}

func (s *DocumentStore) Update(ctx context.Context, collection, id string, partial docstore.Document) (docstore.Document, error) {
	changes, err := docstore.PrepareUpdate(partial)
	if err != nil {
		return nil, err
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	raw, err := s.db.Collection(collection).FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M(changes)},
		opts,
	).Raw()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, docstore.ErrNotFound
		}
		return nil, apperror.Storage("update "+collection, err)
	}
	return fromRaw(raw)
}

func (s *DocumentStore) QueryByField(ctx context.Context, collection, field string, value any) ([]docstore.Document, error) {
	want, err := docstore.NormalizeValue(value)
	if err != nil {
		return nil, err
	}
	return s.find(ctx, collection, bson.M{field: want})
}

func (s *DocumentStore) List(ctx context.Context, collection string) ([]docstore.Document, error) {
	return s.find(ctx, collection, bson.M{})
}

func (s *DocumentStore) Delete(ctx context.Context, collection, id string) error {
	res, err := s.db.Collection(collection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return apperror.Storage("delete "+collection, err)
	}
	if res.DeletedCount == 0 {
		return docstore.ErrNotFound
	}
	return nil
}

func (s *DocumentStore) find(ctx context.Context, collection string, filter bson.M) ([]docstore.Document, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := s.db.Collection(collection).Find(ctx, filter, opts)
	if err != nil {
		return nil, apperror.Storage("query "+collection, err)
	}
	defer cursor.Close(ctx)

	var docs []docstore.Document
	for cursor.Next(ctx) {
		doc, err := fromRaw(cursor.Current)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	if err := cursor.Err(); err != nil {
		return nil, apperror.Storage("query "+collection, err)
	}
	return docs, nil
}

// fromRaw goes through relaxed extended JSON so nested values come back as
// plain maps and slices instead of driver types.
func fromRaw(raw bson.Raw) (docstore.Document, error) {
	ext, err := bson.MarshalExtJSON(raw, false, false)
	if err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	doc := docstore.Document{}
	if err := json.Unmarshal(ext, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	delete(doc, "_id")
	return doc, nil
}
