package salesreport

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	apperrors "appsalescli/internal/errors"
	"appsalescli/pkg/contracts/domain"
)

// minReportLines is the minimum number of non-blank lines a report must
// have before parsing is attempted: preamble plus header plus at least one
// row of data.
const minReportLines = 5

// ParseStats reports how a parse degraded, if at all. Per-row issues never
// abort a parse, so the counts here are the only record of them.
type ParseStats struct {
	// RowsSeen is the number of lines in the data region.
	RowsSeen int `json:"rows_seen"`
	// RowsDecoded is the number of retained sale transactions.
	RowsDecoded int `json:"rows_decoded"`
	// RowsDropped counts rows missing the country of sale or currency.
	RowsDropped int `json:"rows_dropped"`
	// ReturnsSkipped counts decoded rows discarded as returns.
	ReturnsSkipped int `json:"returns_skipped"`
	// NumericFallbacks counts malformed numeric fields coerced to zero.
	NumericFallbacks int `json:"numeric_fallbacks"`
	// Warnings holds human-readable notes about missing metadata.
	Warnings []string `json:"warnings,omitempty"`
}

// Parser converts one raw sales report into a ParsedReport.
type Parser struct {
	logger *slog.Logger
}

// NewParser creates a parser. A nil logger falls back to slog.Default().
func NewParser(logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{logger: logger}
}

// Parse runs the full pipeline over one report: delimiter detection,
// metadata extraction, region location, row decoding, and the three
// aggregation passes. The input is a single UTF-8 text blob covering one
// reporting period.
//
// Structural failures (too few lines, no transaction header) return an
// error and no report. Everything else degrades gracefully and is counted
// in the returned ParseStats.
func (p *Parser) Parse(ctx context.Context, text string) (*domain.ParsedReport, *ParseStats, error) {
	delimiter := DetectDelimiter(text)
	lines := NonBlankLines(text)

	if len(lines) < minReportLines {
		metricParseFailures.Inc()
		return nil, nil, apperrors.NewParsingError(
			fmt.Sprintf("the report has only %d non-blank lines; a valid report has at least %d", len(lines), minReportLines), nil)
	}

	metadata := ExtractMetadata(lines, delimiter)

	headerIdx := FindHeaderLine(lines)
	if headerIdx < 0 {
		metricParseFailures.Inc()
		return nil, nil, apperrors.NewParsingError(
			fmt.Sprintf("no transaction header found in the first %d lines of the report", headerScanWindow), nil)
	}

	summaryIdx := FindSummaryStart(lines, delimiter)
	if summaryIdx <= headerIdx {
		// A summary-shaped line above the header is preamble noise, not a
		// region boundary.
		summaryIdx = len(lines)
	}

	decoder := newRowDecoder(strings.Split(lines[headerIdx], delimiter))
	stats := &ParseStats{Warnings: MetadataWarnings(metadata)}

	transactions := make([]domain.Transaction, 0, summaryIdx-headerIdx-1)
	for _, line := range lines[headerIdx+1 : summaryIdx] {
		stats.RowsSeen++

		tx, ok := decoder.Decode(strings.Split(line, delimiter))
		if !ok {
			stats.RowsDropped++
			continue
		}
		if !tx.IsSale() {
			stats.ReturnsSkipped++
			continue
		}
		transactions = append(transactions, tx)
	}
	stats.RowsDecoded = len(transactions)
	stats.NumericFallbacks = decoder.fallbacks

	summary, err := buildSummary(ctx, transactions)
	if err != nil {
		return nil, nil, err
	}

	report := &domain.ParsedReport{
		Metadata:     metadata,
		Transactions: transactions,
		Summary:      summary,
	}

	stats.observe()

	p.logger.InfoContext(ctx, "sales report parsed",
		slog.String("vendor", metadata.VendorName),
		slog.Int("transactions", stats.RowsDecoded),
		slog.Int("rows_dropped", stats.RowsDropped),
		slog.Int("returns_skipped", stats.ReturnsSkipped),
		slog.Int("numeric_fallbacks", stats.NumericFallbacks))

	for _, warning := range stats.Warnings {
		p.logger.WarnContext(ctx, "report metadata incomplete", slog.String("warning", warning))
	}

	return report, stats, nil
}
