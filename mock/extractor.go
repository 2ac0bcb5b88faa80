package mock

import "github.com/fwojciec/toplist"

var _ toplist.ChartExtractor = (*ChartExtractor)(nil)

// ChartExtractor is a mock implementation of toplist.ChartExtractor.
type ChartExtractor struct {
	ExtractChartFn func(html string) (*toplist.Chart, error)
}

func (e *ChartExtractor) ExtractChart(html string) (*toplist.Chart, error) {
	return e.ExtractChartFn(html)
}
