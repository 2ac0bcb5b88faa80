package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/toplist"
)

var _ Tier = (*NewLayoutTier)(nil)

// NewLayoutTier extracts candidates from the current IMDb chart layout,
// where every entry is an li.ipc-metadata-list-summary-item whose first link
// wraps the title heading.
type NewLayoutTier struct{}

// NewNewLayoutTier creates a new NewLayoutTier.
func NewNewLayoutTier() *NewLayoutTier {
	return &NewLayoutTier{}
}

// Layout returns toplist.LayoutNew.
func (t *NewLayoutTier) Layout() toplist.Layout {
	return toplist.LayoutNew
}

// Candidates returns one candidate per summary item with a title link and a
// heading. Items without either, or whose link is not a title link, are skipped.
func (t *NewLayoutTier) Candidates(doc *goquery.Document) []toplist.Candidate {
	var candidates []toplist.Candidate
	doc.Find("li.ipc-metadata-list-summary-item").Each(func(_ int, li *goquery.Selection) {
		a := li.Find("a[href]").First()
		if a.Length() == 0 {
			return
		}

		heading := a.Find("h3, span").First()
		if heading.Length() == 0 {
			return
		}

		href, _ := a.Attr("href")
		id := titleID(titlePathRe, href)
		if id == "" {
			return
		}

		candidates = append(candidates, toplist.Candidate{
			Name: strings.TrimSpace(heading.Text()),
			ID:   id,
		})
	})
	return candidates
}
