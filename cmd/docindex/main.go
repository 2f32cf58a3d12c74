package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/docindex"
	"github.com/fwojciec/docindex/sqlite"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// LogOutput receives log records instead of the --log-file path.
	// Set before calling Run().
	LogOutput io.Writer

	// SQLite database backing the catalog, when one is used.
	DB *sqlite.DB

	logFile *os.File
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	var err error
	if m.DB != nil {
		err = m.DB.Close()
		m.DB = nil
	}
	if m.logFile != nil {
		if closeErr := m.logFile.Close(); err == nil {
			err = closeErr
		}
		m.logFile = nil
	}
	return err
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("docindex"),
		kong.Description("Build search index records from a documentation tree."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'docindex --help' to see available commands")
	}

	if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	if cli.Verbosity < 1 || cli.Verbosity > 5 {
		return docindex.Errorf(docindex.EINVALID, "verbosity must be between 1 and 5, got %d", cli.Verbosity)
	}

	cfg := DefaultConfig()
	if cli.Config != "" {
		if cfg, err = LoadConfig(cli.Config); err != nil {
			fmt.Fprintf(stderr, "error: %s\n", docindex.ErrorMessage(err))
			return err
		}
	}
	deps.Config = cfg
	defer m.Close()

	logOutput := m.LogOutput
	if logOutput == nil {
		f, err := os.Create(cli.LogFile)
		if err != nil {
			return fmt.Errorf("failed to open log file %q: %w", cli.LogFile, err)
		}
		m.logFile = f
		logOutput = f
	}
	deps.Logger = slog.New(slog.NewTextHandler(logOutput, &slog.HandlerOptions{
		Level: LogLevel(cli.Verbosity),
	}))

	// Open the catalog only for commands that use one.
	var catalogPath string
	switch strings.Fields(kongCtx.Command())[0] {
	case "build":
		catalogPath = firstNonEmpty(cli.Build.Catalog, cfg.Catalog)
	case "facets":
		catalogPath = firstNonEmpty(cli.Facets.Catalog, cfg.Catalog)
	}
	if catalogPath != "" {
		m.DB = sqlite.NewDB(catalogPath)
		if err := m.DB.Open(); err != nil {
			return fmt.Errorf("failed to open catalog at %q: %w", catalogPath, err)
		}
		deps.Catalog = sqlite.NewCatalog(m.DB)
	}

	return kongCtx.Run(deps)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
