// Package regexp classifies documentation paths into product, release and
// book using an ordered list of regular expression rules.
package regexp

import (
	"maps"
	"regexp"
	"strings"

	"github.com/fwojciec/docindex"
)

// Ensure Classifier implements docindex.Classifier at compile time.
var _ docindex.Classifier = (*Classifier)(nil)

// Path fragments shared by the rules.
const (
	// bookSegment matches a book directory, with an optional ds_ or bk_ prefix.
	bookSegment = `/(?:ds_|bk_)?(?P<b>[^/]+)/`

	// indexSegment matches a document directly inside a release directory.
	indexSegment = `/[^/]+(?:\.html?|\.txt)\z`
)

// Rule recognizes one historical documentation path convention.
type Rule struct {
	Name    string
	Pattern *regexp.Regexp

	// Handle derives raw product, release and booktitle values from a match.
	// Values are normalized by the Classifier afterwards.
	Handle func(m Match) docindex.Fields
}

// Match gives access to the named groups of a rule match.
type Match struct {
	re     *regexp.Regexp
	groups []string
}

// Group returns the text captured by the named group, or "" if the group
// does not exist or did not participate in the match.
func (m Match) Group(name string) string {
	i := m.re.SubexpIndex(name)
	if i < 0 || i >= len(m.groups) {
		return ""
	}
	return m.groups[i]
}

// DefaultRules returns the path rules in evaluation order. Families with a
// fixed product come before the generic std_path family because a path can
// satisfy both, and the specific reading is the right one.
func DefaultRules() []Rule {
	return []Rule{
		// HDPDocuments/HDP2/HDP-2.3-yj/bk_hadoop-ha/
		{
			Name:    "hdp_23_yj_path",
			Pattern: regexp.MustCompile(`HDPDocuments/HDP2/HDP-2\.3-yj` + bookSegment),
			Handle: func(m Match) docindex.Fields {
				return docindex.Fields{
					docindex.FieldProduct:   "HDP",
					docindex.FieldRelease:   "2.3.0.0-yj",
					docindex.FieldBookTitle: m.Group("b"),
				}
			},
		},
		// HDPDocuments/HDP2/HDP-2.2.4-Win/bk_Clust_Plan_Gd_Win/
		{
			Name:    "win_new_path",
			Pattern: regexp.MustCompile(`HDPDocuments/[^/]+/HDP-(?P<r>[.\w]+)-Win` + bookSegment),
			Handle:  fixedProductBook("HDP-Win"),
		},
		// HDPDocuments/HDP1/HDP-Win-1.1/bk_cluster-planning-guide/
		{
			Name:    "win_old_path",
			Pattern: regexp.MustCompile(`HDPDocuments/[^/]+/HDP-Win-(?P<r>[.\w]+)` + bookSegment),
			Handle:  fixedProductBook("HDP-Win"),
		},
		// HDPDocuments/Ambari-1.5.0.0/bk_ambari_security/
		{
			Name:    "ambari_path",
			Pattern: regexp.MustCompile(`HDPDocuments/Ambari-(?P<r>[.\w]+)` + bookSegment),
			Handle:  fixedProductBook("Ambari"),
		},
		// HDPDocuments/SS1/SmartSense-1.2.2/bk_smartsense_admin/
		{
			Name:    "std_path",
			Pattern: regexp.MustCompile(`HDPDocuments/[^/]+/(?P<p>\w+)-(?P<r>[.\w]+)` + bookSegment),
			Handle: func(m Match) docindex.Fields {
				return docindex.Fields{
					docindex.FieldProduct:   m.Group("p"),
					docindex.FieldRelease:   m.Group("r"),
					docindex.FieldBookTitle: m.Group("b"),
				}
			},
		},
		// HDPDocuments/HDP2/HDP-2.1.15-Win/index.html
		{
			Name:    "win_new_index",
			Pattern: regexp.MustCompile(`HDPDocuments/[^/]+/HDP-(?P<r>[.\w]+)-Win` + indexSegment),
			Handle:  fixedProductIndex("HDP-Win"),
		},
		// HDPDocuments/HDP1/HDP-Win-1.3.0/index.html
		{
			Name:    "win_old_index",
			Pattern: regexp.MustCompile(`HDPDocuments/[^/]+/HDP-Win-(?P<r>[.\w]+)` + indexSegment),
			Handle:  fixedProductIndex("HDP-Win"),
		},
		// HDPDocuments/Ambari-1.7.0.0/index.html
		{
			Name:    "ambari_path_index",
			Pattern: regexp.MustCompile(`HDPDocuments/Ambari-(?P<r>[.\w]+)` + indexSegment),
			Handle:  fixedProductIndex("Ambari"),
		},
		// HDPDocuments/Ambari/Ambari-2.2.2.0/index.html
		{
			Name:    "std_path_index",
			Pattern: regexp.MustCompile(`HDPDocuments/[^/]+/(?P<p>\w+)-(?P<r>[.\w]+)` + indexSegment),
			Handle: func(m Match) docindex.Fields {
				return docindex.Fields{
					docindex.FieldProduct: m.Group("p"),
					docindex.FieldRelease: m.Group("r"),
				}
			},
		},
		// HDPDocuments/SS1/index.html
		{
			Name:    "product_index",
			Pattern: regexp.MustCompile(`HDPDocuments/(?P<p>[a-zA-Z]+)[^/]*` + indexSegment),
			Handle: func(m Match) docindex.Fields {
				return docindex.Fields{docindex.FieldProduct: m.Group("p")}
			},
		},
	}
}

func fixedProductBook(product string) func(Match) docindex.Fields {
	return func(m Match) docindex.Fields {
		return docindex.Fields{
			docindex.FieldProduct:   product,
			docindex.FieldRelease:   m.Group("r"),
			docindex.FieldBookTitle: m.Group("b"),
		}
	}
}

func fixedProductIndex(product string) func(Match) docindex.Fields {
	return func(m Match) docindex.Fields {
		return docindex.Fields{
			docindex.FieldProduct: product,
			docindex.FieldRelease: m.Group("r"),
		}
	}
}

// Classifier tries each rule in order and commits to the first that matches.
type Classifier struct {
	rules    []Rule
	products []docindex.ProductAlias
	books    map[string]string
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithRules replaces the default rules.
func WithRules(rules []Rule) Option {
	return func(c *Classifier) {
		c.rules = rules
	}
}

// WithProductAliases adds product aliases that are tried before the defaults.
func WithProductAliases(aliases []docindex.ProductAlias) Option {
	return func(c *Classifier) {
		c.products = append(append([]docindex.ProductAlias{}, aliases...), c.products...)
	}
}

// WithBookTitles adds book titles, replacing defaults for the same slug.
func WithBookTitles(titles map[string]string) Option {
	return func(c *Classifier) {
		maps.Copy(c.books, titles)
	}
}

// NewClassifier creates a Classifier with the default rules and tables.
func NewClassifier(opts ...Option) *Classifier {
	c := &Classifier{
		rules:    DefaultRules(),
		products: docindex.DefaultProductAliases,
		books:    maps.Clone(docindex.DefaultBookTitles),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify returns the normalized product, release and booktitle for path.
// Backslash separators are treated as slashes.
// A path no rule recognizes yields empty Fields.
func (c *Classifier) Classify(path string) docindex.Fields {
	_, fields := c.classify(path)
	return fields
}

// RuleFor returns the name of the rule that classifies path, or "" if none does.
func (c *Classifier) RuleFor(path string) string {
	name, _ := c.classify(path)
	return name
}

func (c *Classifier) classify(path string) (string, docindex.Fields) {
	path = strings.ReplaceAll(path, `\`, "/")
	for _, rule := range c.rules {
		groups := rule.Pattern.FindStringSubmatch(path)
		if groups == nil {
			continue
		}
		fields := rule.Handle(Match{re: rule.Pattern, groups: groups})
		return rule.Name, c.normalize(fields)
	}
	return "", docindex.Fields{}
}

// normalize pads releases to four components and maps product
// abbreviations and book slugs to display names.
func (c *Classifier) normalize(fields docindex.Fields) docindex.Fields {
	if v, ok := fields[docindex.FieldProduct]; ok {
		fields[docindex.FieldProduct] = docindex.ProductName(c.products, v)
	}
	if v, ok := fields[docindex.FieldRelease]; ok {
		fields[docindex.FieldRelease] = docindex.StandardizeRelease(v)
	}
	if v, ok := fields[docindex.FieldBookTitle]; ok {
		fields[docindex.FieldBookTitle] = docindex.BookTitle(c.books, v)
	}
	return fields
}
