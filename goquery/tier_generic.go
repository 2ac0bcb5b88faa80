package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/toplist"
)

var _ Tier = (*GenericTier)(nil)

// genericTitleRe only accepts root-relative title links.
var genericTitleRe = regexp.MustCompile(`^/title/(tt\d+)`)

// GenericTier is the last-resort tier: any link whose href starts with
// /title/tt<digits> and which has visible text.
type GenericTier struct{}

// NewGenericTier creates a new GenericTier.
func NewGenericTier() *GenericTier {
	return &GenericTier{}
}

// Layout returns toplist.LayoutGeneric.
func (t *GenericTier) Layout() toplist.Layout {
	return toplist.LayoutGeneric
}

// Candidates returns one candidate per matching link. Links with empty text
// (poster images, icons) are skipped so that they cannot claim an ID ahead
// of the titled link.
func (t *GenericTier) Candidates(doc *goquery.Document) []toplist.Candidate {
	var candidates []toplist.Candidate
	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		id := titleID(genericTitleRe, href)
		if id == "" {
			return
		}

		name := strings.TrimSpace(a.Text())
		if name == "" {
			return
		}

		candidates = append(candidates, toplist.Candidate{Name: name, ID: id})
	})
	return candidates
}
