package main

import (
	"fmt"
	"os"
	"slices"

	"github.com/fwojciec/docindex"
	"github.com/fwojciec/docindex/fs"
	docregexp "github.com/fwojciec/docindex/regexp"
	"gopkg.in/yaml.v3"
)

// Config holds settings that can be kept in a YAML file. Command-line flags
// take precedence over file values.
type Config struct {
	Prefix      string   `yaml:"prefix"`
	Extensions  []string `yaml:"extensions"`
	Concurrency int      `yaml:"concurrency"`
	Rate        float64  `yaml:"rate"`
	Format      string   `yaml:"format"`
	Catalog     string   `yaml:"catalog"`

	// Products are tried before the built-in product aliases.
	Products []docindex.ProductAlias `yaml:"products"`

	// Books add to or replace the built-in book titles, keyed by slug.
	Books map[string]string `yaml:"books"`
}

// DefaultConfig returns the configuration used without a config file.
func DefaultConfig() *Config {
	return &Config{
		Extensions: slices.Clone(fs.DefaultExtensions),
		Format:     "json",
	}
}

// LoadConfig reads a YAML config file over DefaultConfig.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, docindex.Errorf(docindex.EINVALID, "parse config %s: %v", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate returns EINVALID if a value is out of range.
func (c *Config) Validate() error {
	switch c.Format {
	case "json", "xml":
	default:
		return docindex.Errorf(docindex.EINVALID, "unsupported format %q (use json or xml)", c.Format)
	}
	if c.Concurrency < 0 {
		return docindex.Errorf(docindex.EINVALID, "concurrency must be >= 0")
	}
	if c.Rate < 0 {
		return docindex.Errorf(docindex.EINVALID, "rate must be >= 0")
	}
	for i, ext := range c.Extensions {
		if len(ext) < 2 || ext[0] != '.' {
			return docindex.Errorf(docindex.EINVALID, "extensions[%d]: %q must start with a dot", i, ext)
		}
	}
	for i, p := range c.Products {
		if p.Prefix == "" || p.Name == "" {
			return docindex.Errorf(docindex.EINVALID, "products[%d]: prefix and name are required", i)
		}
	}
	return nil
}

// NewClassifier returns a path classifier extended with the configured
// products and books.
func (c *Config) NewClassifier() *docregexp.Classifier {
	return docregexp.NewClassifier(
		docregexp.WithProductAliases(c.Products),
		docregexp.WithBookTitles(c.Books),
	)
}
