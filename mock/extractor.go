package mock

import "github.com/fwojciec/apitrail"

var _ apitrail.SymbolExtractor = (*SymbolExtractor)(nil)

// SymbolExtractor is a mock implementation of apitrail.SymbolExtractor.
type SymbolExtractor struct {
	ExtractFn func(document string, family apitrail.Family) (*apitrail.SymbolSet, error)
}

func (e *SymbolExtractor) Extract(document string, family apitrail.Family) (*apitrail.SymbolSet, error) {
	return e.ExtractFn(document, family)
}

var _ apitrail.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor is a mock implementation of apitrail.LinkExtractor.
type LinkExtractor struct {
	GroupLinksFn func(html string) ([]string, error)
}

func (e *LinkExtractor) GroupLinks(html string) ([]string, error) {
	return e.GroupLinksFn(html)
}
