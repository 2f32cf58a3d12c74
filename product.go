package docindex

import "strings"

// ProductAlias maps a product abbreviation prefix to its display name.
type ProductAlias struct {
	Prefix string `yaml:"prefix"`
	Name   string `yaml:"name"`
}

// DefaultProductAliases is evaluated in order, so HDP-Win must precede HDP.
var DefaultProductAliases = []ProductAlias{
	{Prefix: "HDP-Win", Name: "Data Platform for Windows"},
	{Prefix: "HDP", Name: "Data Platform"},
	{Prefix: "HDF", Name: "DataFlow"},
	{Prefix: "SS", Name: "SmartSense"},
	{Prefix: "Cldbrk", Name: "Cloudbreak"},
}

// ProductName returns the display name of the first alias whose prefix
// starts abbrev. Unmatched abbreviations are returned unchanged.
func ProductName(aliases []ProductAlias, abbrev string) string {
	for _, a := range aliases {
		if strings.HasPrefix(abbrev, a.Prefix) {
			return a.Name
		}
	}
	return abbrev
}

// BookTitle returns the display title for a book slug.
// Unmatched slugs are returned unchanged.
func BookTitle(titles map[string]string, slug string) string {
	if title, ok := titles[slug]; ok {
		return title
	}
	return slug
}
