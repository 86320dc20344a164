// Package goquery implements symbol and link extraction from CUDA API
// reference pages using goquery.
package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/apitrail"
	"golang.org/x/net/html"
)

// DefaultMinStructural is the number of symbols below which structural
// extraction is treated as suspiciously empty and regex matching is merged in.
const DefaultMinStructural = 10

// Ensure Extractor implements apitrail.SymbolExtractor at compile time.
var _ apitrail.SymbolExtractor = (*Extractor)(nil)

// Extractor extracts API symbol names from documentation. It reads names
// out of the anchors of the markup first and falls back to pattern
// matching over the raw text when that yields too few names.
type Extractor struct {
	detector      *Detector
	minStructural int
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithMinStructural sets the structural result size accepted without the
// regex fallback. Defaults to DefaultMinStructural.
func WithMinStructural(n int) Option {
	return func(e *Extractor) {
		e.minStructural = n
	}
}

// NewExtractor creates a new Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{
		detector:      NewDetector(),
		minStructural: DefaultMinStructural,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// selectors lists, per layout, the elements whose text names a symbol.
// Anchors into group pages or onto member fragments are common to all.
var selectors = map[apitrail.Layout][]string{
	apitrail.LayoutDoxygen: {
		"a[href*='group__']",
		"a[href*='#']",
		".member_name a",
		"dt.description a",
	},
	apitrail.LayoutSphinx: {
		"a[href*='group__']",
		"a[href*='#']",
		"span.sig-name",
		"code.descname",
	},
	apitrail.LayoutUnknown: {
		"a[href*='group__']",
		"a[href*='#']",
	},
}

// Extract returns the distinct symbols of family documented in document.
func (e *Extractor) Extract(document string, family apitrail.Family) (*apitrail.SymbolSet, error) {
	if strings.TrimSpace(document) == "" {
		return nil, apitrail.Errorf(apitrail.EEXTRACT, "empty %s document", family)
	}

	set := apitrail.NewSymbolSet(e.structural(document, family)...)
	if set.Len() < e.minStructural {
		set = set.Union(apitrail.NewSymbolSet(MatchPatterns(document, family)...))
	}

	if set.Len() == 0 {
		return nil, apitrail.Errorf(apitrail.EEXTRACT, "no %s API symbols recognised in document (%d bytes)", family, len(document))
	}
	return set, nil
}

// structural reads symbol names from name-bearing elements of the markup.
func (e *Extractor) structural(document string, family apitrail.Family) []string {
	node, err := html.Parse(strings.NewReader(document))
	if err != nil {
		return nil
	}
	doc := goquery.NewDocumentFromNode(node)
	nameRe := exactNameRegexp(family)

	var names []string
	for _, selector := range selectors[e.detector.detectDocument(doc)] {
		doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
			text := strings.TrimSpace(sel.Text())
			if nameRe.MatchString(text) {
				names = append(names, text)
			}
		})
	}
	return names
}

// namePattern is the symbol grammar: the family prefix, an upper-case
// letter, then identifier characters.
func namePattern(family apitrail.Family) string {
	return regexp.QuoteMeta(family.Prefix()) + `[A-Z][A-Za-z0-9_]*`
}

func exactNameRegexp(family apitrail.Family) *regexp.Regexp {
	return regexp.MustCompile(`^` + namePattern(family) + `$`)
}

// MatchPatterns finds symbol names in raw text: call sites ("name("),
// element text (">name<"), quoted strings and lines holding only a name.
// Names are returned in match order and may repeat.
func MatchPatterns(text string, family apitrail.Family) []string {
	name := namePattern(family)
	patterns := []*regexp.Regexp{
		regexp.MustCompile(`\b(` + name + `)\s*\(`),
		regexp.MustCompile(`>\s*(` + name + `)\s*<`),
		regexp.MustCompile(`"(` + name + `)"`),
		regexp.MustCompile(`(?m)^\s*(` + name + `)\s*$`),
	}

	var names []string
	for _, re := range patterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			names = append(names, m[1])
		}
	}
	return names
}
