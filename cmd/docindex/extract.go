package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fwojciec/docindex"
	"github.com/fwojciec/docindex/fs"
)

// Run executes the extract command, printing the record the build command
// would write for the file.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	encoder, err := newEncoder(firstNonEmpty(c.Format, deps.Config.Format))
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docindex.ErrorMessage(err))
		return err
	}

	info, err := os.Stat(c.File)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}
	file := &docindex.File{
		Path:    c.File,
		RelPath: filepath.ToSlash(filepath.Base(c.File)),
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}

	prefix := firstNonEmpty(c.Prefix, deps.Config.Prefix, fs.WebRoot(filepath.Dir(c.File)))
	ix := newIndexer(deps, fs.NewSource(filepath.Dir(c.File)), prefix)

	rec, err := ix.Record(file)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docindex.ErrorMessage(err))
		return err
	}
	return encoder.Encode(deps.Stdout, rec)
}
