package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/toplist"
)

// Ensure LoggingChartExtractor implements toplist.ChartExtractor.
var _ toplist.ChartExtractor = (*LoggingChartExtractor)(nil)

// LoggingChartExtractor wraps a ChartExtractor and logs which layout matched.
type LoggingChartExtractor struct {
	next   toplist.ChartExtractor
	logger *slog.Logger
}

// NewLoggingChartExtractor creates a new LoggingChartExtractor.
func NewLoggingChartExtractor(next toplist.ChartExtractor, logger *slog.Logger) *LoggingChartExtractor {
	return &LoggingChartExtractor{next: next, logger: logger}
}

// ExtractChart delegates to the wrapped extractor and logs the result.
func (e *LoggingChartExtractor) ExtractChart(html string) (chart *toplist.Chart, err error) {
	defer func(begin time.Time) {
		attrs := []any{"duration", time.Since(begin)}
		if chart != nil {
			attrs = append(attrs, "layout", string(chart.Layout), "count", len(chart.Candidates))
		}
		if err != nil {
			attrs = append(attrs, "err", err)
		}
		e.logger.Info("chart extraction", attrs...)
	}(time.Now())
	return e.next.ExtractChart(html)
}
