package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"

	"hotelapi/internal/config"
)

var mongoConnect = mongo.Connect

// Mongo bundles the client with the database the repositories use.
type Mongo struct {
	Client *mongo.Client
	DB     *mongo.Database
}

// Ping checks the primary is reachable.
func (m *Mongo) Ping(ctx context.Context) error {
	return m.Client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client.
func (m *Mongo) Close(ctx context.Context) error {
	return m.Client.Disconnect(ctx)
}

// MongoDatabaseName returns the database named in the URI path, falling back to c.Database.
func MongoDatabaseName(c config.MongoConfig) (string, error) {
	cs, err := connstring.ParseAndValidate(c.URI)
	if err != nil {
		return "", fmt.Errorf("parse mongodb uri: %w", err)
	}
	if cs.Database != "" {
		return cs.Database, nil
	}
	if c.Database == "" {
		return "", fmt.Errorf("mongodb database name is required")
	}
	return c.Database, nil
}

// NewMongo creates a MongoDB client. The driver connects in the background,
// so an unreachable server surfaces on the first operation or through Verify.
func NewMongo(ctx context.Context, c config.MongoConfig) (*Mongo, error) {
	name, err := MongoDatabaseName(c)
	if err != nil {
		return nil, err
	}

	opts := options.Client().ApplyURI(c.URI)
	if c.MaxPoolSize > 0 {
		opts.SetMaxPoolSize(uint64(c.MaxPoolSize))
	}

	client, err := mongoConnect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	return &Mongo{Client: client, DB: client.Database(name)}, nil
}
