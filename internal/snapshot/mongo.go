package snapshot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// snapshotTTL bounds how long an untouched snapshot survives in Mongo.
const snapshotTTL = 90 * 24 * time.Hour

type snapshotDocument struct {
	Key       string    `bson:"_id"`
	Data      []byte    `bson:"data"`
	UpdatedAt time.Time `bson:"updated_at"`
}

type MongoStore struct {
	collection *mongo.Collection
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{
		collection: db.Collection("cart_snapshots"),
	}
}

// MongoSettings tunes the client behind ConnectMongoDB. Zero fields take the defaults.
type MongoSettings struct {
	ConnectTimeout time.Duration
	SelectTimeout  time.Duration
	MaxPoolSize    uint64
	MinPoolSize    uint64
}

func (s MongoSettings) withDefaults() MongoSettings {
	if s.ConnectTimeout <= 0 {
		s.ConnectTimeout = 10 * time.Second
	}
	if s.SelectTimeout <= 0 {
		s.SelectTimeout = 5 * time.Second
	}
	if s.MaxPoolSize == 0 {
		s.MaxPoolSize = 20
	}
	if s.MinPoolSize > s.MaxPoolSize {
		s.MinPoolSize = s.MaxPoolSize
	}
	return s
}

func clientOptions(uri string, settings MongoSettings) *options.ClientOptions {
	settings = settings.withDefaults()
	return options.Client().
		ApplyURI(uri).
		SetAppName("kolor-storefront").
		SetConnectTimeout(settings.ConnectTimeout).
		SetServerSelectionTimeout(settings.SelectTimeout).
		SetMaxPoolSize(settings.MaxPoolSize).
		SetMinPoolSize(settings.MinPoolSize)
}

// ConnectMongoDB dials and pings the snapshot database.
func ConnectMongoDB(ctx context.Context, uri, database string, settings MongoSettings) (*mongo.Database, error) {
	client, err := mongo.Connect(ctx, clientOptions(uri, settings))
	if err != nil {
		return nil, fmt.Errorf("connect snapshot mongo: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping snapshot mongo: %w", err)
	}

	return client.Database(database), nil
}

func (m *MongoStore) Load(ctx context.Context, key string) ([]byte, error) {
	var doc snapshotDocument
	err := m.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}
	return doc.Data, nil
}

func (m *MongoStore) Save(ctx context.Context, key string, data []byte) error {
	doc := snapshotDocument{Key: key, Data: data, UpdatedAt: time.Now()}
	opts := options.Replace().SetUpsert(true)

	_, err := m.collection.ReplaceOne(ctx, bson.M{"_id": key}, doc, opts)
	if err != nil {
		return fmt.Errorf("failed to upsert snapshot: %w", err)
	}
	return nil
}

func (m *MongoStore) Delete(ctx context.Context, key string) error {
	if _, err := m.collection.DeleteOne(ctx, bson.M{"_id": key}); err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	return nil
}

func (m *MongoStore) CreateIndexes(ctx context.Context) error {
	index := mongo.IndexModel{
		Keys:    bson.D{{Key: "updated_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(int32(snapshotTTL.Seconds())),
	}

	if _, err := m.collection.Indexes().CreateOne(ctx, index); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}
