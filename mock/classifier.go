package mock

import "github.com/fwojciec/docindex"

var _ docindex.Classifier = (*Classifier)(nil)

// Classifier is a mock implementation of docindex.Classifier.
type Classifier struct {
	ClassifyFn func(path string) docindex.Fields
}

func (c *Classifier) Classify(path string) docindex.Fields {
	return c.ClassifyFn(path)
}
