// Package goquery extracts chart candidates from IMDb chart pages using
// goquery CSS selectors.
package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/toplist"
)

var _ toplist.ChartExtractor = (*Extractor)(nil)

// titlePathRe matches an IMDb title ID inside a title link.
var titlePathRe = regexp.MustCompile(`/title/(tt\d+)/`)

// Tier extracts candidates for one known page layout.
// Implementations must not modify the document.
type Tier interface {
	// Layout returns the layout this tier recognizes.
	Layout() toplist.Layout

	// Candidates returns the candidates found in doc in document order.
	// Duplicates are allowed.
	Candidates(doc *goquery.Document) []toplist.Candidate
}

// Extractor runs tiers in priority order and returns the first tier with at
// least one unique candidate. The last tier's result is final regardless of
// count.
//
// Extractor holds no mutable state and is safe for concurrent use.
type Extractor struct {
	tiers []Tier
}

// NewExtractor creates an Extractor with the tiers for the current IMDb
// layout, the legacy layout and the generic title-link fallback.
func NewExtractor() *Extractor {
	return NewExtractorWithTiers(
		NewNewLayoutTier(),
		NewOldLayoutTier(),
		NewGenericTier(),
	)
}

// NewExtractorWithTiers creates an Extractor that tries tiers in the given order.
func NewExtractorWithTiers(tiers ...Tier) *Extractor {
	return &Extractor{tiers: tiers}
}

// ExtractChart parses html and extracts the chart.
func (e *Extractor) ExtractChart(html string) (*toplist.Chart, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, toplist.Errorf(toplist.EINVALID, "failed to parse HTML: %v", err)
	}
	candidates, layout := e.Extract(doc)
	return &toplist.Chart{Candidates: candidates, Layout: layout}, nil
}

// Extract runs the tiers over an already parsed document.
// Each tier's output is deduplicated before deciding whether it is empty.
// When no tier yields anything the result is empty and tagged
// toplist.LayoutGeneric.
func (e *Extractor) Extract(doc *goquery.Document) ([]toplist.Candidate, toplist.Layout) {
	candidates := []toplist.Candidate{}
	layout := toplist.LayoutGeneric
	for _, tier := range e.tiers {
		candidates = toplist.Dedupe(tier.Candidates(doc))
		layout = tier.Layout()
		if len(candidates) > 0 {
			break
		}
	}
	return candidates, layout
}

// titleID returns the IMDb ID in href, or "" if href is not a title link.
func titleID(re *regexp.Regexp, href string) string {
	m := re.FindStringSubmatch(href)
	if m == nil {
		return ""
	}
	return m[1]
}
