package salesreport

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Parse metrics. The numeric-fallback counter exists because the engine
// silently coerces malformed numbers to zero; operators watching for
// corrupted exports need that visible somewhere.
var (
	metricReportsParsed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "appsales_reports_parsed_total",
		Help: "Number of sales reports parsed successfully",
	})

	metricParseFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "appsales_parse_failures_total",
		Help: "Number of sales reports rejected for structural failures",
	})

	metricRowsDecoded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "appsales_rows_decoded_total",
		Help: "Number of data rows decoded into retained transactions",
	})

	metricRowsDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "appsales_rows_dropped_total",
		Help: "Number of data rows dropped for missing country or currency",
	})

	metricReturnsSkipped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "appsales_returns_skipped_total",
		Help: "Number of return rows discarded after decoding",
	})

	metricNumericFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "appsales_numeric_fallbacks_total",
		Help: "Number of malformed numeric fields coerced to zero",
	})
)

// observe publishes one parse's statistics to the counters.
func (s *ParseStats) observe() {
	metricReportsParsed.Inc()
	metricRowsDecoded.Add(float64(s.RowsDecoded))
	metricRowsDropped.Add(float64(s.RowsDropped))
	metricReturnsSkipped.Add(float64(s.ReturnsSkipped))
	metricNumericFallbacks.Add(float64(s.NumericFallbacks))
}
