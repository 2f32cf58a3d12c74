package main

import (
	"fmt"

	"github.com/fwojciec/docindex"
)

// Run executes the facets command.
func (c *FacetsCmd) Run(deps *Dependencies) error {
	if deps.Catalog == nil {
		err := docindex.Errorf(docindex.EINVALID, "catalog required: pass --catalog or set it in the config file")
		fmt.Fprintf(deps.Stderr, "error: %s\n", docindex.ErrorMessage(err))
		return err
	}

	facets, err := deps.Catalog.Facets(deps.Ctx, c.Field)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docindex.ErrorMessage(err))
		return err
	}

	if len(facets) == 0 {
		fmt.Fprintln(deps.Stdout, "No entries found. Use 'docindex build --catalog' to record some.")
		return nil
	}

	for _, f := range facets {
		fmt.Fprintf(deps.Stdout, "%6d  %s\n", f.Count, f.Value)
	}
	return nil
}
