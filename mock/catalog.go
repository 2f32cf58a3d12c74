package mock

import (
	"context"

	"github.com/fwojciec/docindex"
)

var _ docindex.Catalog = (*Catalog)(nil)

// Catalog is a mock implementation of docindex.Catalog.
type Catalog struct {
	FindEntryFn   func(ctx context.Context, url string) (*docindex.CatalogEntry, error)
	UpsertEntryFn func(ctx context.Context, e *docindex.CatalogEntry) error
	FacetsFn      func(ctx context.Context, field string) ([]docindex.Facet, error)
}

func (c *Catalog) FindEntry(ctx context.Context, url string) (*docindex.CatalogEntry, error) {
	return c.FindEntryFn(ctx, url)
}

func (c *Catalog) UpsertEntry(ctx context.Context, e *docindex.CatalogEntry) error {
	return c.UpsertEntryFn(ctx, e)
}

func (c *Catalog) Facets(ctx context.Context, field string) ([]docindex.Facet, error) {
	return c.FacetsFn(ctx, field)
}
