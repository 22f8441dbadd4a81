package mock

import (
	"context"

	"github.com/splunk-releases/releases"
)

type CatalogSource struct {
	BuildFn func(ctx context.Context) (releases.Catalog, error)
}

func (s CatalogSource) Build(ctx context.Context) (releases.Catalog, error) {
	return s.BuildFn(ctx)
}

type CatalogStore struct {
	CatalogFn func(ctx context.Context, force bool) (releases.Snapshot, error)
}

func (s CatalogStore) Catalog(ctx context.Context, force bool) (releases.Snapshot, error) {
	return s.CatalogFn(ctx, force)
}

// StaticCatalog returns a store always serving catalog.
func StaticCatalog(catalog releases.Catalog) CatalogStore {
	return CatalogStore{
		CatalogFn: func(ctx context.Context, force bool) (releases.Snapshot, error) {
			return releases.Snapshot{Id: "static", Releases: catalog}, nil
		},
	}
}
