package storage

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Mongo implements Store on a Mongo collection with one document per key:
// {_id: <key>, value: <string>}.
type Mongo struct {
	col     *mongo.Collection
	timeout time.Duration
}

type kvDoc struct {
	Key   string `bson:"_id"`
	Value string `bson:"value"`
}

func NewMongo(col *mongo.Collection, timeout time.Duration) *Mongo {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Mongo{col: col, timeout: timeout}
}

// ConnectMongo establishes a client connection and verifies it with a ping.
func ConnectMongo(ctx context.Context, uri string, timeout time.Duration) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}
	return client, nil
}

func (m *Mongo) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), m.timeout)
}

func (m *Mongo) Get(key string) (string, error) {
	ctx, cancel := m.ctx()
	defer cancel()
	var doc kvDoc
	if err := m.col.FindOne(ctx, bson.M{"_id": key}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return "", ErrNotFound
		}
		return "", err
	}
	return doc.Value, nil
}

func (m *Mongo) Set(key, value string) error {
	ctx, cancel := m.ctx()
	defer cancel()
	opts := options.Update().SetUpsert(true)
	_, err := m.col.UpdateOne(ctx, bson.M{"_id": key}, bson.M{"$set": bson.M{"value": value}}, opts)
	return err
}

func (m *Mongo) Remove(key string) error {
	ctx, cancel := m.ctx()
	defer cancel()
	_, err := m.col.DeleteOne(ctx, bson.M{"_id": key})
	return err
}
