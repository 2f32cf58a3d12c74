package main

import (
	"encoding/json"

	"github.com/fwojciec/docindex"
	docslog "github.com/fwojciec/docindex/slog"
)

// classification is one line of classify output.
type classification struct {
	Path   string          `json:"path"`
	Rule   string          `json:"rule,omitempty"`
	Fields docindex.Fields `json:"fields"`
}

// Run executes the classify command. Each path is printed as one JSON line.
func (c *ClassifyCmd) Run(deps *Dependencies) error {
	classifier := deps.Config.NewClassifier()
	logged := docslog.NewLoggingClassifier(classifier, deps.Logger)

	enc := json.NewEncoder(deps.Stdout)
	enc.SetEscapeHTML(false)
	for _, path := range c.Paths {
		line := classification{
			Path:   path,
			Rule:   classifier.RuleFor(path),
			Fields: logged.Classify(path),
		}
		if err := enc.Encode(line); err != nil {
			return err
		}
	}
	return nil
}
