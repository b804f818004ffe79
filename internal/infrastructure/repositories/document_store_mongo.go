package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"scrapemyuni.backend/internal/domain/entities"
	domainerrors "scrapemyuni.backend/internal/domain/errors"
	"scrapemyuni.backend/internal/domain/repositories"
	"scrapemyuni.backend/pkg/utils"
)

// MongoDocumentStore implements the document store on MongoDB. The
// identifier is kept in _id as a string.
type MongoDocumentStore struct {
	db *mongo.Database
}

var _ repositories.DocumentStore = (*MongoDocumentStore)(nil)

// NewMongoDocumentStore creates a new mongo backed document store
func NewMongoDocumentStore(db *mongo.Database) *MongoDocumentStore {
	return &MongoDocumentStore{db: db}
}

func (s *MongoDocumentStore) Get(ctx context.Context, collection, id string) (*entities.Document, error) {
	var raw bson.M
	err := s.db.Collection(collection).FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&raw)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find document: %w", err)
	}
	return fromBSON(raw), nil
}

func (s *MongoDocumentStore) Find(ctx context.Context, collection string, q repositories.Query) ([]*entities.Document, error) {
	filter, opts, err := buildMongoQuery(q)
	if err != nil {
		return nil, err
	}

	cursor, err := s.db.Collection(collection).Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []bson.M
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode documents: %w", err)
	}

	docs := make([]*entities.Document, 0, len(rows))
	for _, row := range rows {
		docs = append(docs, fromBSON(row))
	}
	return docs, nil
}

func (s *MongoDocumentStore) Add(ctx context.Context, collection string, fields map[string]interface{}) (string, error) {
	id := utils.NewDocumentID()
	doc := toBSON(fields)
	doc["_id"] = id
	if _, err := s.db.Collection(collection).InsertOne(ctx, doc); err != nil {
		return "", fmt.Errorf("failed to insert document: %w", err)
	}
	return id, nil
}

func (s *MongoDocumentStore) Set(ctx context.Context, collection, id string, fields map[string]interface{}) error {
	doc := toBSON(fields)
	doc["_id"] = id
	_, err := s.db.Collection(collection).ReplaceOne(ctx,
		bson.D{{Key: "_id", Value: id}}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to set document: %w", err)
	}
	return nil
}

func (s *MongoDocumentStore) Update(ctx context.Context, collection, id string, fields map[string]interface{}) error {
	for key := range fields {
		if _, err := splitFieldPath(key); err != nil {
			return err
		}
	}
	// $set understands dotted paths natively
	res, err := s.db.Collection(collection).UpdateOne(ctx,
		bson.D{{Key: "_id", Value: id}},
		bson.D{{Key: "$set", Value: toBSON(fields)}})
	if err != nil {
		return fmt.Errorf("failed to update document: %w", err)
	}
	if res.MatchedCount == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (s *MongoDocumentStore) Delete(ctx context.Context, collection, id string) error {
	if _, err := s.db.Collection(collection).DeleteOne(ctx, bson.D{{Key: "_id", Value: id}}); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	return nil
}

func (s *MongoDocumentStore) Ping(ctx context.Context) error {
	return s.db.Client().Ping(ctx, nil)
}

// buildMongoQuery translates a store query. Ordering on a field adds an
// $exists predicate so documents lacking it are left out.
func buildMongoQuery(q repositories.Query) (bson.D, *options.FindOptionsBuilder, error) {
	filter := bson.D{}
	for _, f := range q.Filters {
		if _, err := splitFieldPath(f.Field); err != nil {
			return nil, nil, err
		}
		filter = append(filter, bson.E{Key: f.Field, Value: normalizeScalar(f.Value)})
	}

	opts := options.Find()
	if q.OrderBy != nil {
		if _, err := splitFieldPath(q.OrderBy.Field); err != nil {
			return nil, nil, err
		}
		direction := 1
		if q.OrderBy.Descending {
			direction = -1
		}
		filter = append(filter, bson.E{Key: q.OrderBy.Field, Value: bson.D{{Key: "$exists", Value: true}, {Key: "$ne", Value: nil}}})
		opts.SetSort(bson.D{{Key: q.OrderBy.Field, Value: direction}, {Key: "_id", Value: 1}})
	} else {
		opts.SetSort(bson.D{{Key: "_id", Value: 1}})
	}
	if q.Limit > 0 {
		opts.SetLimit(int64(q.Limit))
	}
	if q.Offset > 0 {
		opts.SetSkip(int64(q.Offset))
	}
	return filter, opts, nil
}

func toBSON(fields map[string]interface{}) bson.M {
	doc := make(bson.M, len(fields))
	for k, v := range fields {
		if k == "id" {
			continue
		}
		doc[k] = v
	}
	return doc
}

func fromBSON(raw bson.M) *entities.Document {
	id := fmt.Sprint(raw["_id"])
	fields := make(map[string]interface{}, len(raw))
	for k, v := range raw {
		if k == "_id" {
			continue
		}
		fields[k] = normalizeBSON(v)
	}
	return &entities.Document{ID: id, Fields: fields}
}

// normalizeBSON converts driver specific values to the plain JSON shapes
// the rest of the code expects.
func normalizeBSON(v interface{}) interface{} {
	switch t := v.(type) {
	case bson.M:
		out := make(map[string]interface{}, len(t))
		for k, val := range t {
			out[k] = normalizeBSON(val)
		}
		return out
	case map[string]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, val := range t {
			out[k] = normalizeBSON(val)
		}
		return out
	case bson.D:
		out := make(map[string]interface{}, len(t))
		for _, e := range t {
			out[e.Key] = normalizeBSON(e.Value)
		}
		return out
	case bson.A:
		out := make([]interface{}, len(t))
		for i, val := range t {
			out[i] = normalizeBSON(val)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, val := range t {
			out[i] = normalizeBSON(val)
		}
		return out
	case bson.DateTime:
		return t.Time().UTC().Format(time.RFC3339Nano)
	case time.Time:
		return t.UTC().Format(time.RFC3339Nano)
	case int32:
		return float64(t)
	case int64:
		return float64(t)
	}
	return v
}
