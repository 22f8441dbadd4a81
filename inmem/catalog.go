package inmem

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/splunk-releases/releases"
	"golang.org/x/sync/singleflight"
)

const buildKey = "catalog"

// CatalogCache holds the last successfully built catalog. At most one build
// runs at a time, callers arriving during a build wait for its result.
type CatalogCache struct {
	Source releases.CatalogSource

	snapshot *releases.Snapshot
	mutex    sync.RWMutex
	builds   singleflight.Group
}

var _ releases.CatalogStore = (*CatalogCache)(nil)

func NewCatalogCache(source releases.CatalogSource) *CatalogCache {
	return &CatalogCache{Source: source}
}

// Catalog returns the cached snapshot, building one when there is none or
// force is set. A forced call joins a build that is already in flight.
// A failed build keeps the previous snapshot.
func (c *CatalogCache) Catalog(ctx context.Context, force bool) (releases.Snapshot, error) {
	if !force {
		c.mutex.RLock()
		snapshot := c.snapshot
		c.mutex.RUnlock()
		if snapshot != nil {
			return *snapshot, nil
		}
	}

	// the build outlives a single caller, others may be waiting on it.
	buildCtx := context.WithoutCancel(ctx)
	resultCh := c.builds.DoChan(buildKey, func() (interface{}, error) {
		return c.build(buildCtx)
	})
	select {
	case <-ctx.Done():
		return releases.Snapshot{}, ctx.Err()
	case result := <-resultCh:
		if result.Err != nil {
			return releases.Snapshot{}, result.Err
		}
		return result.Val.(releases.Snapshot), nil
	}
}

// Current returns the cached snapshot without building one.
func (c *CatalogCache) Current() (releases.Snapshot, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	if c.snapshot == nil {
		return releases.Snapshot{}, false
	}
	return *c.snapshot, true
}

func (c *CatalogCache) build(ctx context.Context) (releases.Snapshot, error) {
	id := uuid.New().String()
	log := logrus.WithField("snapshot", id)
	log.Infoln("Building release catalog.")

	catalog, err := c.Source.Build(ctx)
	if err != nil {
		log.WithError(err).Errorln("Release catalog build failed.")
		return releases.Snapshot{}, fmt.Errorf("build catalog: %w", err)
	}

	snapshot := releases.Snapshot{Id: id, Releases: catalog}
	c.mutex.Lock()
	c.snapshot = &snapshot
	c.mutex.Unlock()

	log.WithField("releases", len(catalog)).Infoln("Release catalog built.")
	return snapshot, nil
}
