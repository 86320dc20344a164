package http

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/apitrail"
	"github.com/fwojciec/apitrail/bloom"
)

// Documentation locations.
const (
	DefaultArchiveBase = "https://docs.nvidia.com/cuda/archive"
	DefaultLatestBase  = "https://docs.nvidia.com/cuda"
)

// DefaultMaxGroupPages caps the number of group pages followed per release.
const DefaultMaxGroupPages = 20

// deprecatedPage lists deprecated runtime functions that the module
// index does not always link to.
const deprecatedPage = "group__CUDART__HIGHLEVEL.html"

// Ensure DocumentSource implements apitrail.DocumentSource at compile time.
var _ apitrail.DocumentSource = (*DocumentSource)(nil)

// DocumentSource assembles the API reference of a release from the NVIDIA
// documentation archive. It loads the family's index page, follows the
// group pages linked from it and, for the runtime family, adds the page of
// deprecated functions. The pages are joined into a single document.
//
// A page that does not exist is skipped; any other failure fails the whole
// fetch so that a partial document is never returned.
//
// When Extractor is set, a candidate index whose assembled document holds
// no symbols is passed over for the next candidate.
type DocumentSource struct {
	Fetcher       apitrail.Fetcher
	Links         apitrail.LinkExtractor
	Extractor     apitrail.SymbolExtractor
	RateLimiter   apitrail.DomainLimiter
	ArchiveBase   string
	LatestBase    string
	MaxGroupPages int
	RetryDelays   []time.Duration
	Logf          LogFunc
}

// NewDocumentSource returns a DocumentSource reading docs.nvidia.com.
func NewDocumentSource(fetcher apitrail.Fetcher, links apitrail.LinkExtractor) *DocumentSource {
	return &DocumentSource{
		Fetcher:       fetcher,
		Links:         links,
		ArchiveBase:   DefaultArchiveBase,
		LatestBase:    DefaultLatestBase,
		MaxGroupPages: DefaultMaxGroupPages,
		RetryDelays:   DefaultRetryDelays(),
	}
}

// Fetch returns the documentation of family at release.
// Returns ENOTFOUND if no index page exists for the release and EEXTRACT if
// every index found yields a document without symbols.
func (s *DocumentSource) Fetch(ctx context.Context, release apitrail.Release, family apitrail.Family) (string, error) {
	var rejected error
	for _, indexURL := range s.IndexURLs(release, family) {
		seen := bloom.NewFilter(uint(max(s.MaxGroupPages, 0))+8, 0.0001)
		seen.Add(indexURL)

		index, err := s.get(ctx, indexURL)
		if apitrail.ErrorCode(err) == apitrail.ENOTFOUND {
			continue
		}
		if err != nil {
			return "", err
		}

		pages := []string{index}
		base := indexURL[:strings.LastIndex(indexURL, "/")+1]

		links, err := s.Links.GroupLinks(index)
		if err != nil {
			return "", err
		}
		if s.MaxGroupPages >= 0 && len(links) > s.MaxGroupPages {
			links = links[:s.MaxGroupPages]
		}
		if family == apitrail.FamilyRuntime {
			links = append(links, deprecatedPage)
		}

		for _, link := range links {
			pageURL, err := resolve(base, link)
			if err != nil || !seen.Visit(pageURL) {
				continue
			}
			page, err := s.get(ctx, pageURL)
			if apitrail.ErrorCode(err) == apitrail.ENOTFOUND {
				continue
			}
			if err != nil {
				return "", err
			}
			pages = append(pages, page)
		}

		doc := strings.Join(pages, "\n")
		if s.Extractor != nil {
			if _, err := s.Extractor.Extract(doc, family); err != nil {
				if apitrail.ErrorCode(err) != apitrail.EEXTRACT {
					return "", err
				}
				rejected = err
				continue
			}
		}
		return doc, nil
	}

	if rejected != nil {
		return "", rejected
	}
	return "", apitrail.Errorf(apitrail.ENOTFOUND, "no %s API documentation found for CUDA %s", family, release)
}

// IndexURLs lists the candidate index pages of a release in the order they
// are tried. The current documentation root is only a candidate for the
// latest release, which may not be archived yet.
func (s *DocumentSource) IndexURLs(release apitrail.Release, family apitrail.Family) []string {
	archive := strings.TrimSuffix(s.ArchiveBase, "/") + "/" + release.Version + "/" + family.DocPath()
	urls := []string{
		archive + "/index.html",
		archive + "/cuda-runtime-api/index.html",
	}
	if release.Latest {
		urls = append(urls, strings.TrimSuffix(s.LatestBase, "/")+"/"+family.DocPath()+"/index.html")
	}
	return urls
}

func (s *DocumentSource) get(ctx context.Context, rawURL string) (string, error) {
	if s.RateLimiter != nil {
		u, err := url.Parse(rawURL)
		if err != nil {
			return "", apitrail.Errorf(apitrail.EINVALID, "invalid URL %q: %v", rawURL, err)
		}
		if err := s.RateLimiter.Wait(ctx, u.Host); err != nil {
			return "", err
		}
	}
	body, err := FetchWithRetryDelays(ctx, rawURL, s.Fetcher.Fetch, s.Logf, s.RetryDelays)
	if errors.Is(err, context.DeadlineExceeded) {
		return "", apitrail.Errorf(apitrail.ETIMEOUT, "timed out fetching %s", rawURL)
	}
	return body, err
}

// resolve resolves href against the directory of the index page. Absolute
// links are returned unchanged.
func resolve(base, href string) (string, error) {
	b, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	ref, err := url.Parse(href)
	if err != nil {
		return "", err
	}
	resolved := b.ResolveReference(ref)
	resolved.Fragment = ""
	return resolved.String(), nil
}
