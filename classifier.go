package docindex

// Classifier infers product, release, and book title from a document path.
type Classifier interface {
	// Classify returns the product, release, and booktitle fields for path.
	// A path that no rule recognizes yields empty Fields, never an error.
	Classify(path string) Fields
}
