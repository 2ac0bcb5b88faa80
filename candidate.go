package toplist

// Candidate is a movie found on a chart page.
// ID is an IMDb title ID ("tt" followed by digits) and is never empty.
type Candidate struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// Layout identifies which page layout produced a set of candidates.
type Layout string

// Known chart page layouts, in order of preference.
const (
	LayoutNew     Layout = "new_layout"
	LayoutOld     Layout = "old_layout"
	LayoutGeneric Layout = "generic"
)

// Valid reports whether l is one of the known layouts.
func (l Layout) Valid() bool {
	switch l {
	case LayoutNew, LayoutOld, LayoutGeneric:
		return true
	}
	return false
}

// Chart holds the deduplicated candidates of a chart page and the layout
// that matched.
type Chart struct {
	Candidates []Candidate
	Layout     Layout
}

// ChartExtractor extracts chart candidates from raw HTML.
type ChartExtractor interface {
	// ExtractChart parses the markup and returns the candidates of the first
	// layout that yields any. A page without recognizable structure is not an
	// error: it returns an empty chart tagged LayoutGeneric.
	ExtractChart(html string) (*Chart, error)
}

// Dedupe returns candidates unique by ID. The first occurrence of an ID wins
// and keeps its position; later occurrences are dropped.
func Dedupe(candidates []Candidate) []Candidate {
	seen := make(map[string]struct{}, len(candidates))
	out := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if _, ok := seen[c.ID]; ok {
			continue
		}
		seen[c.ID] = struct{}{}
		out = append(out, c)
	}
	return out
}
