package engine

import (
	"context"
	"fmt"
	"slices"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/filipemansano-mongodb/MongoCacheView/internal/client"
	"github.com/filipemansano-mongodb/MongoCacheView/internal/model"
)

const systemCollectionPrefix = "system."

// CatalogPolicy decides which databases are monitored.
type CatalogPolicy struct {
	ExcludedDatabases []string
	ExcludedPrefix    string
	// IncludedDatabases, when non-empty, restricts monitoring to these names.
	IncludedDatabases []string
}

// AllowDatabase reports whether the named database is monitored.
func (p CatalogPolicy) AllowDatabase(name string) bool {
	if slices.Contains(p.ExcludedDatabases, name) {
		return false
	}
	if p.ExcludedPrefix != "" && strings.HasPrefix(name, p.ExcludedPrefix) {
		return false
	}
	if len(p.IncludedDatabases) > 0 && !slices.Contains(p.IncludedDatabases, name) {
		return false
	}
	return true
}

// AllowCollection reports whether a listCollections entry is a user collection.
func AllowCollection(c client.CollectionInfo) bool {
	return c.Type == "collection" && !strings.HasPrefix(c.Name, systemCollectionPrefix)
}

// BuildCatalog discovers every monitored collection and its indexes once.
// Any listing failure aborts construction with ErrDiscovery.
func BuildCatalog(ctx context.Context, p client.StatsProvider, policy CatalogPolicy, logger log.FieldLogger) (*model.Catalog, error) {
	dbs, err := p.ListDatabases(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDiscovery, err)
	}

	cat := &model.Catalog{}
	for _, db := range dbs {
		if !policy.AllowDatabase(db.Name) {
			logger.WithField("db", db.Name).Debug("skipping excluded database")
			continue
		}

		colls, err := p.ListCollections(ctx, db.Name)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDiscovery, err)
		}

		for _, coll := range colls {
			if !AllowCollection(coll) {
				continue
			}

			indexes, err := p.ListIndexes(ctx, db.Name, coll.Name)
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrDiscovery, err)
			}

			entity := model.CollectionEntity{
				Database:   db.Name,
				Collection: coll.Name,
				Indexes:    make([]model.IndexEntity, 0, len(indexes)),
			}
			for _, ix := range indexes {
				entity.Indexes = append(entity.Indexes, model.IndexEntity{Name: ix.Name})
			}
			cat.Collections = append(cat.Collections, entity)
		}
	}

	logger.WithFields(log.Fields{
		"collections": cat.Len(),
		"entities":    cat.EntityCount(),
	}).Info("catalog built")
	return cat, nil
}
