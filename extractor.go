package apitrail

// SymbolExtractor turns a release document into the set of API symbols it
// documents.
type SymbolExtractor interface {
	// Extract returns the distinct symbols of family found in document.
	// Returns EEXTRACT if no symbol can be recognised at all, so that a
	// broken or changed document is never mistaken for an empty API.
	Extract(document string, family Family) (*SymbolSet, error)
}

// LinkExtractor finds links to API group pages in an index document.
type LinkExtractor interface {
	// GroupLinks returns the hrefs of group pages in document order,
	// without duplicates.
	GroupLinks(html string) ([]string, error)
}
