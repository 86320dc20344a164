package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/apitrail"
)

var _ apitrail.LayoutDetector = (*Detector)(nil)

// Detector identifies the generator of an API reference page from meta
// tags and structural markers. CUDA toolkit references are Doxygen output;
// newer releases wrap it in a Sphinx theme.
type Detector struct{}

// NewDetector creates a new Detector.
func NewDetector() *Detector {
	return &Detector{}
}

// Detect analyzes HTML and returns the identified layout.
func (d *Detector) Detect(html string) apitrail.Layout {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return apitrail.LayoutUnknown
	}
	return d.detectDocument(doc)
}

func (d *Detector) detectDocument(doc *goquery.Document) apitrail.Layout {
	// Meta generator tags are the most reliable signal when present
	if layout := d.detectFromMetaGenerator(doc); layout != apitrail.LayoutUnknown {
		return layout
	}

	if d.hasSelector(doc, ".wy-nav-side") ||
		d.hasSelector(doc, ".toctree-wrapper") ||
		d.hasSelector(doc, "span.sig-name") {
		return apitrail.LayoutSphinx
	}

	if d.hasSelector(doc, ".member_name") ||
		d.hasSelector(doc, "div.memitem") ||
		d.hasSelector(doc, "a[href*='group__']") {
		return apitrail.LayoutDoxygen
	}

	return apitrail.LayoutUnknown
}

// detectFromMetaGenerator checks the meta generator tag.
func (d *Detector) detectFromMetaGenerator(doc *goquery.Document) apitrail.Layout {
	generator := ""
	doc.Find("meta[name='generator']").Each(func(_ int, s *goquery.Selection) {
		if content, exists := s.Attr("content"); exists {
			generator = strings.ToLower(content)
		}
	})

	switch {
	case generator == "":
		return apitrail.LayoutUnknown
	case strings.Contains(generator, "sphinx"):
		return apitrail.LayoutSphinx
	case strings.Contains(generator, "doxygen"):
		return apitrail.LayoutDoxygen
	}
	return apitrail.LayoutUnknown
}

// hasSelector checks if the document contains at least one element matching the selector.
func (d *Detector) hasSelector(doc *goquery.Document, selector string) bool {
	return doc.Find(selector).Length() > 0
}
