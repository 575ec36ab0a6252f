package db

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
)

// MongoClient manages the connection to MongoDB
type MongoClient struct {
	client *mongo.Client
}

// NewMongoClient connects to MongoDB and pings the primary
func NewMongoClient(ctx context.Context, uri string) (*MongoClient, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &MongoClient{client: client}, nil
}

// Close disconnects from MongoDB
func (c *MongoClient) Close(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}

// Database returns a handle to the named database
func (c *MongoClient) Database(name string) *mongo.Database {
	return c.client.Database(name)
}

// ParseMongoDatabaseName returns the database named in the URI path
func ParseMongoDatabaseName(uri string) (string, error) {
	cs, err := connstring.ParseAndValidate(uri)
	if err != nil {
		return "", fmt.Errorf("invalid MongoDB URI: %w", err)
	}
	if cs.Database == "" {
		return "", fmt.Errorf("no database name in URI")
	}
	return cs.Database, nil
}
