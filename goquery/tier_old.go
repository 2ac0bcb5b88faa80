package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/toplist"
)

var _ Tier = (*OldLayoutTier)(nil)

// OldLayoutTier extracts candidates from the legacy table-based chart, where
// titles are links inside td.titleColumn cells.
type OldLayoutTier struct{}

// NewOldLayoutTier creates a new OldLayoutTier.
func NewOldLayoutTier() *OldLayoutTier {
	return &OldLayoutTier{}
}

// Layout returns toplist.LayoutOld.
func (t *OldLayoutTier) Layout() toplist.Layout {
	return toplist.LayoutOld
}

// Candidates returns one candidate per title-column link with a title href.
func (t *OldLayoutTier) Candidates(doc *goquery.Document) []toplist.Candidate {
	var candidates []toplist.Candidate
	doc.Find("td.titleColumn a").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		id := titleID(titlePathRe, href)
		if id == "" {
			return
		}

		candidates = append(candidates, toplist.Candidate{
			Name: strings.TrimSpace(a.Text()),
			ID:   id,
		})
	})
	return candidates
}
