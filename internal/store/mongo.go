package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"five-whys-api-server/internal/errs"
)

// MongoStore implements Store on a MongoDB database. Documents are stored
// flat with the derived key as _id.
type MongoStore struct {
	DB *mongo.Database
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{DB: db}
}

func (s *MongoStore) GetCollection(ctx context.Context, name string) ([]Document, error) {
	cursor, err := s.DB.Collection(name).Find(ctx, bson.M{})
	if err != nil {
		return nil, errs.Store(err, "failed to query collection "+name)
	}
	defer cursor.Close(ctx)

	var docs []Document
	for cursor.Next(ctx) {
		var raw bson.M
		if err := cursor.Decode(&raw); err != nil {
			return nil, errs.Store(err, "failed to decode document in "+name)
		}
		docs = append(docs, fromBSON(raw))
	}
	if err := cursor.Err(); err != nil {
		return nil, errs.Store(err, "cursor error reading "+name)
	}
	return docs, nil
}

func (s *MongoStore) SetDocument(ctx context.Context, collection, key string, fields map[string]string, merge bool) error {
	coll := s.DB.Collection(collection)
	if merge {
		_, err := coll.UpdateOne(ctx, bson.M{"_id": key}, bson.M{"$set": toBSON(fields)}, options.Update().SetUpsert(true))
		if err != nil {
			return errs.Store(err, "failed to merge document "+key)
		}
		return nil
	}

	replacement := toBSON(fields)
	replacement["_id"] = key
	_, err := coll.ReplaceOne(ctx, bson.M{"_id": key}, replacement, options.Replace().SetUpsert(true))
	if err != nil {
		return errs.Store(err, "failed to set document "+key)
	}
	return nil
}

func (s *MongoStore) UpdateDocument(ctx context.Context, collection, key string, fields map[string]string) error {
	result, err := s.DB.Collection(collection).UpdateOne(ctx, bson.M{"_id": key}, bson.M{"$set": toBSON(fields)})
	if err != nil {
		return errs.Store(err, "failed to update document "+key)
	}
	if result.MatchedCount == 0 {
		return errs.NotFoundf("document %s not found in %s", key, collection)
	}
	return nil
}

func (s *MongoStore) InsertDocuments(ctx context.Context, collection string, docs []Document) error {
	if len(docs) == 0 {
		return nil
	}
	toInsert := make([]interface{}, 0, len(docs))
	for _, d := range docs {
		raw := toBSON(d.Fields)
		raw["_id"] = d.Key
		toInsert = append(toInsert, raw)
	}
	// Ordered insert: a failure aborts at the offending document, leaving
	// earlier ones written. Callers roll those back via DeleteDocuments.
	_, err := s.DB.Collection(collection).InsertMany(ctx, toInsert)
	if err != nil {
		return errs.Store(err, fmt.Sprintf("batch insert of %d documents failed", len(docs)))
	}
	return nil
}

func (s *MongoStore) DeleteDocuments(ctx context.Context, collection string, keys []string) error {
	if len(keys) == 0 {
		return nil
	}
	_, err := s.DB.Collection(collection).DeleteMany(ctx, bson.M{"_id": bson.M{"$in": keys}})
	if err != nil {
		return errs.Store(err, fmt.Sprintf("batch delete of %d documents failed", len(keys)))
	}
	return nil
}

func toBSON(fields map[string]string) bson.M {
	m := make(bson.M, len(fields))
	for k, v := range fields {
		m[k] = v
	}
	return m
}

// fromBSON flattens a raw document. Non-string values can only come from
// hand edits in the console; they are stringified rather than dropped.
func fromBSON(raw bson.M) Document {
	doc := Document{Fields: make(map[string]string, len(raw))}
	for k, v := range raw {
		if k == "_id" {
			doc.Key = fmt.Sprint(v)
			continue
		}
		if s, ok := v.(string); ok {
			doc.Fields[k] = s
		} else {
			doc.Fields[k] = fmt.Sprint(v)
		}
	}
	return doc
}
