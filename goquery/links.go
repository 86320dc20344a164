package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/apitrail"
)

var _ apitrail.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor finds the API group pages ("modules") linked from a
// reference index page.
type LinkExtractor struct{}

// NewLinkExtractor creates a new LinkExtractor.
func NewLinkExtractor() *LinkExtractor {
	return &LinkExtractor{}
}

// GroupLinks returns the distinct hrefs containing "group__" in document
// order. Fragments are stripped so that member anchors collapse onto
// their page.
func (x *LinkExtractor) GroupLinks(html string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, apitrail.Errorf(apitrail.EINVALID, "failed to parse HTML: %v", err)
	}

	seen := make(map[string]bool)
	var links []string
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		href = strings.TrimSpace(href)
		if i := strings.IndexByte(href, '#'); i >= 0 {
			href = href[:i]
		}
		if href == "" || !strings.Contains(href, "group__") || isNonHTTPLink(href) {
			return
		}
		if seen[href] {
			return
		}
		seen[href] = true
		links = append(links, href)
	})
	return links, nil
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
