package settings

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const mongoCollection = "user_settings"

type mongoDocument struct {
	Key      string `bson:"_id"`
	Settings `bson:",inline"`
}

// MongoStore keeps one document per user, keyed by _id.
type MongoStore struct {
	coll *mongo.Collection
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{coll: db.Collection(mongoCollection)}
}

func (s *MongoStore) Get(ctx context.Context, key string) (Settings, error) {
	var doc mongoDocument
	err := s.coll.FindOne(ctx, bson.D{{Key: "_id", Value: key}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Settings{}, ErrNotFound
	}
	if err != nil {
		return Settings{}, err
	}
	return doc.Settings, nil
}

func (s *MongoStore) Save(ctx context.Context, key string, v Settings) error {
	_, err := s.coll.ReplaceOne(ctx,
		bson.D{{Key: "_id", Value: key}},
		mongoDocument{Key: key, Settings: v},
		options.Replace().SetUpsert(true),
	)
	return err
}
