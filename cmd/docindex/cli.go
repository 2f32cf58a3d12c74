package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/docindex"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	Logger  *slog.Logger
	Config  *Config
	Catalog docindex.Catalog
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config    string `type:"existingfile" help:"YAML configuration file"`
	LogFile   string `short:"l" default:"docindex.log" help:"Log file, truncated on every run"`
	Verbosity int    `short:"v" default:"2" help:"Log verbosity from 1 (debug) to 5 (quiet)"`

	Build    BuildCmd    `cmd:"" help:"Index a documentation tree into an output directory"`
	Classify ClassifyCmd `cmd:"" help:"Show the product, release and book inferred from paths"`
	Extract  ExtractCmd  `cmd:"" help:"Print the record for a single document"`
	Facets   FacetsCmd   `cmd:"" help:"Count catalog entries by product, release or book"`
}

// BuildCmd is the "build" subcommand.
type BuildCmd struct {
	InDir       string  `arg:"" type:"existingdir" help:"Documentation root directory"`
	OutDir      string  `arg:"" help:"Output directory, must not exist"`
	Prefix      string  `help:"Web root prefix trimmed from paths to form URLs (default: input directory)"`
	Format      string  `short:"f" help:"Output format: json or xml"`
	Concurrency int     `short:"c" help:"Files processed concurrently"`
	Rate        float64 `help:"Maximum files dispatched per second, 0 for unlimited"`
	Catalog     string  `help:"SQLite catalog for incremental runs"`
	Overwrite   bool    `help:"Replace an existing output directory"`
}

// ClassifyCmd is the "classify" subcommand.
type ClassifyCmd struct {
	Paths []string `arg:"" help:"Paths to classify"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	File   string `arg:"" type:"existingfile" help:"HTML or text document"`
	Prefix string `help:"Web root prefix trimmed from the path to form the URL"`
	Format string `short:"f" help:"Output format: json or xml"`
}

// FacetsCmd is the "facets" subcommand.
type FacetsCmd struct {
	Catalog string `help:"SQLite catalog written by build"`
	Field   string `enum:"product,release,booktitle" default:"product" help:"Field to count: product, release or booktitle"`
}
