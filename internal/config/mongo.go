package config

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const defaultDBName = "forum"

// NewMongo connects to MongoDB, pings it and makes sure the indexes the
// repositories rely on exist. The database name is taken from the URI path.
func NewMongo(ctx context.Context, cfg *Config) (*mongo.Client, *mongo.Database, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURL))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := client.Database(databaseFromURI(cfg.MongoURL))

	if err := ensureIndexes(ctx, db); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, err
	}

	return client, db, nil
}

func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	commentIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "topic_id", Value: 1}, {Key: "created_at", Value: 1}},
			Options: options.Index().SetName("topic_created_asc"),
		},
		{
			Keys:    bson.D{{Key: "topic_id", Value: 1}, {Key: "parent_comment_id", Value: 1}},
			Options: options.Index().SetName("topic_parent"),
		},
	}
	if _, err := db.Collection("comments").Indexes().CreateMany(ctx, commentIndexes); err != nil {
		return fmt.Errorf("mongo ensure comment indexes: %w", err)
	}

	topicIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetName("slug_unique").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "space", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("space_created_desc"),
		},
	}
	if _, err := db.Collection("topics").Indexes().CreateMany(ctx, topicIndexes); err != nil {
		return fmt.Errorf("mongo ensure topic indexes: %w", err)
	}

	userIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName("email_unique").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetName("username_unique").SetUnique(true),
		},
	}
	if _, err := db.Collection("users").Indexes().CreateMany(ctx, userIndexes); err != nil {
		return fmt.Errorf("mongo ensure user indexes: %w", err)
	}

	return nil
}

func databaseFromURI(uri string) string {
	u, err := url.Parse(uri)
	if err == nil {
		if name := strings.Trim(u.Path, "/"); name != "" {
			return name
		}
	}
	return defaultDBName
}
