package storage

import (
	"context"
	"crypto/tls"
	"log"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore backs DocumentStore with a MongoDB database. Document keys map to
// the _id field, so inserts rely on the collection's primary index for
// duplicate detection.
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

func NewMongoStore(ctx context.Context, mongoURI, dbName string) (*MongoStore, error) {
	tlsCfg := &tls.Config{
		MinVersion: tls.VersionTLS12,
		MaxVersion: tls.VersionTLS12,
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI).SetTLSConfig(tlsCfg))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	db := client.Database(dbName)

	// Best-effort indexes for the equality queries the connection list uses.
	_, _ = db.Collection(ConnectionsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "from_user_id", Value: 1}}},
		{Keys: bson.D{{Key: "to_user_id", Value: 1}}},
	})

	log.Printf("MongoDB connected: db=%s", dbName)
	return &MongoStore{client: client, db: db}, nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *MongoStore) Put(ctx context.Context, collection, key string, doc interface{}, merge bool) error {
	col := s.db.Collection(collection)

	if merge {
		_, err := col.UpdateOne(
			ctx,
			bson.M{"_id": key},
			bson.M{"$set": doc},
			options.Update().SetUpsert(true),
		)
		return err
	}

	_, err := col.InsertOne(ctx, doc)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateKey
	}
	return err
}

func (s *MongoStore) Get(ctx context.Context, collection, key string, dest interface{}) error {
	err := s.db.Collection(collection).FindOne(ctx, bson.M{"_id": key}).Decode(dest)
	if err == mongo.ErrNoDocuments {
		return ErrNotFound
	}
	return err
}

func (s *MongoStore) Delete(ctx context.Context, collection, key string) error {
	_, err := s.db.Collection(collection).DeleteOne(ctx, bson.M{"_id": key})
	return err
}

func (s *MongoStore) ListAll(ctx context.Context, collection string, dest interface{}) error {
	cur, err := s.db.Collection(collection).Find(ctx, bson.M{})
	if err != nil {
		return err
	}
	return cur.All(ctx, dest)
}

func (s *MongoStore) QueryEquals(ctx context.Context, collection, field string, value interface{}, dest interface{}) error {
	cur, err := s.db.Collection(collection).Find(ctx, bson.M{field: value})
	if err != nil {
		return err
	}
	return cur.All(ctx, dest)
}
