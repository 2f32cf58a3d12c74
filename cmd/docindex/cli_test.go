package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/docindex"
	main "github.com/fwojciec/docindex/cmd/docindex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runResult captures everything a single CLI invocation wrote.
type runResult struct {
	stdout string
	stderr string
	logs   string
	err    error
}

// run executes the CLI with logs captured in memory.
func run(t *testing.T, args ...string) runResult {
	t.Helper()

	m := main.NewMain()
	logs := &bytes.Buffer{}
	m.LogOutput = logs

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	err := m.Run(context.Background(), args, stdout, stderr)

	return runResult{stdout: stdout.String(), stderr: stderr.String(), logs: logs.String(), err: err}
}

// writeFile creates a file under root, including parent directories.
func writeFile(t *testing.T, root, rel, content string) string {
	t.Helper()

	p := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	return p
}

func TestCLI_HelpShowsAllCommands(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	parser, err := kong.New(cli,
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	require.NoError(t, err)

	_, _ = parser.Parse([]string{"--help"})

	helpOutput := stdout.String()
	for _, cmd := range []string{"build", "classify", "extract", "facets"} {
		assert.Contains(t, helpOutput, cmd, "Help should mention %s command", cmd)
	}
}

func TestMain_Run_Help(t *testing.T) {
	t.Parallel()

	res := run(t, "--help")

	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Usage:")
	assert.Contains(t, res.stdout, "Flags:")
	assert.Contains(t, res.stdout, "build")
	assert.Contains(t, res.stdout, "--verbosity")
}

func TestMain_Run_NoArgs(t *testing.T) {
	t.Parallel()

	res := run(t)

	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "no command specified")
	assert.Contains(t, res.stdout, "Usage:")
}

func TestMain_Run_RejectsVerbosityOutOfRange(t *testing.T) {
	t.Parallel()

	for _, v := range []string{"0", "6"} {
		res := run(t, "-v", v, "classify", "/x/index.html")

		require.Error(t, res.err)
		assert.Equal(t, docindex.EINVALID, docindex.ErrorCode(res.err))
	}
}

func TestMain_Run_WritesLogFile(t *testing.T) {
	t.Parallel()

	logFile := filepath.Join(t.TempDir(), "run.log")
	m := main.NewMain()

	err := m.Run(context.Background(),
		[]string{"--log-file", logFile, "classify", "/var/www/other/index.html"},
		&bytes.Buffer{}, &bytes.Buffer{})
	require.NoError(t, err)

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "level=WARN")
	assert.Contains(t, string(data), "no product from path")
}

func TestMain_Run_VerbosityFiltersLogs(t *testing.T) {
	t.Parallel()

	quiet := run(t, "-v", "4", "classify", "/var/www/other/index.html")
	require.NoError(t, quiet.err)
	assert.Empty(t, quiet.logs)

	debug := run(t, "-v", "1", "classify", "/var/www/HDPDocuments/HDP2/HDP-2.3.0/bk_security/index.html")
	require.NoError(t, debug.err)
	assert.Contains(t, debug.logs, "level=DEBUG")
}
