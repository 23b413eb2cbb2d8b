package client

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// StatsProvider defines the read-only operations consumed from a MongoDB
// deployment: discovery listings used once at startup and the per-cycle
// collection statistics fetch.
type StatsProvider interface {
	ListDatabases(ctx context.Context) ([]DatabaseInfo, error)
	ListCollections(ctx context.Context, database string) ([]CollectionInfo, error)
	ListIndexes(ctx context.Context, database, collection string) ([]IndexInfo, error)
	FetchStats(ctx context.Context, database, collection string, opts FetchOptions) (*CollStats, error)
}

// ClientConfig holds configuration for MongoClient.
type ClientConfig struct {
	URI            string
	DisplayURI     string // URI with credentials removed, for headers and logs
	AppName        string
	ConnectTimeout time.Duration
}

// MongoClient implements StatsProvider on the official MongoDB Go driver.
type MongoClient struct {
	client *mongo.Client
	config ClientConfig
}

// NewMongoClient constructs a MongoClient from the given config. The driver
// connects lazily; call Ping to verify the deployment is reachable.
// Returns an error if URI is empty or cannot be parsed by the driver.
func NewMongoClient(cfg ClientConfig) (*MongoClient, error) {
	if cfg.URI == "" {
		return nil, fmt.Errorf("URI is required")
	}
	if cfg.ConnectTimeout <= 0 {
		cfg.ConnectTimeout = 10 * time.Second
	}
	if cfg.AppName == "" {
		cfg.AppName = "mongocacheview"
	}
	if cfg.DisplayURI == "" {
		cfg.DisplayURI = cfg.URI
	}

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetAppName(cfg.AppName).
		SetConnectTimeout(cfg.ConnectTimeout).
		SetServerSelectionTimeout(cfg.ConnectTimeout)

	c, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	return &MongoClient{client: c, config: cfg}, nil
}

// DisplayURI returns the credential-free URI of the deployment.
func (c *MongoClient) DisplayURI() string {
	return c.config.DisplayURI
}

// Ping checks connectivity, preferring the primary, bounded by ConnectTimeout.
func (c *MongoClient) Ping(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, c.config.ConnectTimeout)
	defer cancel()

	if err := c.client.Ping(pingCtx, readpref.PrimaryPreferred()); err != nil {
		return fmt.Errorf("Ping: %w", err)
	}
	return nil
}

// Close disconnects the underlying driver client.
func (c *MongoClient) Close(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}
