package main

import (
	"fmt"
	"path/filepath"

	"github.com/fwojciec/docindex"
	"github.com/fwojciec/docindex/bloom"
	"github.com/fwojciec/docindex/charmap"
	"github.com/fwojciec/docindex/etree"
	"github.com/fwojciec/docindex/fs"
	"github.com/fwojciec/docindex/goquery"
	"github.com/fwojciec/docindex/index"
	docjson "github.com/fwojciec/docindex/json"
	docslog "github.com/fwojciec/docindex/slog"
	"golang.org/x/time/rate"
)

// Sizing of the duplicate content filter.
const (
	duplicateCapacity = 100_000
	duplicateFPRate   = 0.001
)

// maxPathWidth bounds paths printed in progress lines.
const maxPathWidth = 100

// Run executes the build command.
func (c *BuildCmd) Run(deps *Dependencies) error {
	cfg := deps.Config

	format := firstNonEmpty(c.Format, cfg.Format)
	encoder, err := newEncoder(format)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docindex.ErrorMessage(err))
		return err
	}

	prefix := firstNonEmpty(c.Prefix, cfg.Prefix, fs.WebRoot(filepath.Clean(c.InDir)))

	store := fs.NewRecordStore(c.OutDir, encoder)
	store.Overwrite = c.Overwrite
	if err := store.Open(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docindex.ErrorMessage(err))
		return err
	}

	ix := newIndexer(deps, fs.NewSource(c.InDir, cfg.Extensions...), prefix)
	ix.Store = docslog.NewLoggingRecordStore(store, deps.Logger)
	ix.Catalog = deps.Catalog
	duplicates := bloom.NewFilter(duplicateCapacity, duplicateFPRate)
	ix.Duplicates = duplicates
	ix.Concurrency = cfg.Concurrency
	if c.Concurrency > 0 {
		ix.Concurrency = c.Concurrency
	}
	perSecond := cfg.Rate
	if c.Rate > 0 {
		perSecond = c.Rate
	}
	if perSecond > 0 {
		ix.Limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
	}

	progress := func(event index.ProgressEvent) {
		switch event.Type {
		case index.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "  Found %d files\n", event.Total)
		case index.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", index.TruncatePath(event.Path, maxPathWidth), event.Error)
		}
	}

	deps.Logger.Info("build", "in", c.InDir, "out", c.OutDir, "prefix", prefix, "format", format)

	result, err := ix.Run(deps.Ctx, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error indexing: %v\n", err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "  Indexed %d files (%s)\n", result.Indexed, index.FormatBytes(result.Bytes))
	if result.Unchanged > 0 {
		fmt.Fprintf(deps.Stdout, "  Unchanged %d files\n", result.Unchanged)
	}
	if result.Failed > 0 {
		fmt.Fprintf(deps.Stdout, "  Failed %d files\n", result.Failed)
	}
	if result.Untitled > 0 || result.Unclassified > 0 || result.Duplicates > 0 {
		fmt.Fprintf(deps.Stdout, "  %d without title, %d unclassified, %d duplicates\n",
			result.Untitled, result.Unclassified, result.Duplicates)
	}

	deps.Logger.Info("build finished",
		"indexed", result.Indexed,
		"unchanged", result.Unchanged,
		"skipped", result.Skipped,
		"failed", result.Failed,
		"distinct", duplicates.EstimatedCount(),
	)
	return nil
}

// newIndexer wires the extractors and classifier shared by build and extract.
func newIndexer(deps *Dependencies, source docindex.Source, prefix string) *index.Indexer {
	html := docslog.NewLoggingExtractor(goquery.NewExtractor(), deps.Logger)
	text := docslog.NewLoggingExtractor(charmap.NewExtractor(), deps.Logger)

	return &index.Indexer{
		Source: source,
		Extractors: map[string]docindex.Extractor{
			".html": html,
			".htm":  html,
			".txt":  text,
		},
		Classifier: docslog.NewLoggingClassifier(deps.Config.NewClassifier(), deps.Logger),
		URL: func(file *docindex.File) string {
			return fs.URLFromPath(file.Path, prefix)
		},
		Logger: deps.Logger,
	}
}

// newEncoder returns the record encoder for an output format.
func newEncoder(format string) (docindex.Encoder, error) {
	switch format {
	case "json":
		return docjson.NewEncoder(), nil
	case "xml":
		return etree.NewEncoder(), nil
	default:
		return nil, docindex.Errorf(docindex.EINVALID, "unsupported format %q (use json or xml)", format)
	}
}
