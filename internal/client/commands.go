package client

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// ListDatabases lists database names via listDatabases with nameOnly.
func (c *MongoClient) ListDatabases(ctx context.Context) ([]DatabaseInfo, error) {
	names, err := c.client.ListDatabaseNames(ctx, bson.D{}, options.ListDatabases().SetNameOnly(true))
	if err != nil {
		return nil, fmt.Errorf("ListDatabases: %w", err)
	}

	result := make([]DatabaseInfo, 0, len(names))
	for _, n := range names {
		result = append(result, DatabaseInfo{Name: n})
	}
	return result, nil
}

// ListCollections lists the collections (and views) of a database.
func (c *MongoClient) ListCollections(ctx context.Context, database string) ([]CollectionInfo, error) {
	cur, err := c.client.Database(database).ListCollections(ctx, bson.D{}, options.ListCollections().SetNameOnly(true))
	if err != nil {
		return nil, fmt.Errorf("ListCollections %s: %w", database, err)
	}

	var result []CollectionInfo
	if err := cur.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("ListCollections %s decode: %w", database, err)
	}
	return result, nil
}

// ListIndexes lists the indexes of a collection.
func (c *MongoClient) ListIndexes(ctx context.Context, database, collection string) ([]IndexInfo, error) {
	cur, err := c.client.Database(database).Collection(collection).Indexes().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("ListIndexes %s.%s: %w", database, collection, err)
	}

	var result []IndexInfo
	if err := cur.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("ListIndexes %s.%s decode: %w", database, collection, err)
	}
	return result, nil
}

// FetchStats runs collStats for one collection. With IndexDetails set, the
// per-index engine statistics are embedded in the same response.
func (c *MongoClient) FetchStats(ctx context.Context, database, collection string, opts FetchOptions) (*CollStats, error) {
	raw, err := c.client.Database(database).RunCommand(ctx, collStatsCommand(collection, opts)).Raw()
	if err != nil {
		return nil, fmt.Errorf("FetchStats %s.%s: %w", database, collection, err)
	}

	stats, err := decodeCollStats(raw)
	if err != nil {
		return nil, fmt.Errorf("FetchStats %s.%s decode: %w", database, collection, err)
	}
	return stats, nil
}

// collStatsCommand builds the collStats command document.
func collStatsCommand(collection string, opts FetchOptions) bson.D {
	cmd := bson.D{{Key: "collStats", Value: collection}}
	if opts.Scale > 0 {
		cmd = append(cmd, bson.E{Key: "scale", Value: opts.Scale})
	}
	if opts.IndexDetails {
		cmd = append(cmd, bson.E{Key: "indexDetails", Value: true})
	}
	return cmd
}

// decodeCollStats unmarshals a raw collStats response.
func decodeCollStats(raw bson.Raw) (*CollStats, error) {
	var stats CollStats
	if err := bson.Unmarshal(raw, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
