package exporter

import (
	"encoding/csv"
	"io"
	"log/slog"

	apperrors "appsalescli/internal/errors"
	"appsalescli/pkg/contracts/domain"
)

// WriteOptions configures delimited-text export behavior
type WriteOptions struct {
	// Comma is the field delimiter; zero value means ','.
	Comma rune
	// BOMPrefix prepends a UTF-8 BOM so Excel opens the file correctly.
	BOMPrefix bool
}

// CSVWriter renders report views as delimited text
type CSVWriter struct {
	logger *slog.Logger
}

// NewCSVWriter creates a new CSV writer instance
func NewCSVWriter(logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{logger: logger}
}

// WriteTransactions writes the full retained transaction list in original
// file order.
func (w *CSVWriter) WriteTransactions(out io.Writer, report *domain.ParsedReport, options WriteOptions) error {
	headers := []string{
		"Transaction Date", "Settlement Date", "SKU", "Title", "Developer Name",
		"Product Type Identifier", "Country of Sale", "Region of Sale",
		"Quantity", "Partner Share", "Extended Partner Share",
		"Partner Share Currency", "Customer Price", "Customer Currency",
	}

	records := make([][]string, 0, len(report.Transactions))
	for _, tx := range report.Transactions {
		records = append(records, []string{
			tx.TransactionDate,
			tx.SettlementDate,
			tx.SKU,
			tx.Title,
			tx.DeveloperName,
			tx.ProductTypeIdentifier,
			tx.CountryOfSale,
			tx.RegionOfSale,
			formatQuantity(tx.Quantity),
			formatAmount(tx.PartnerShare),
			formatAmount(tx.ExtendedPartnerShare),
			tx.PartnerShareCurrency,
			formatAmount(tx.CustomerPrice),
			tx.CustomerCurrency,
		})
	}

	return w.write(out, headers, records, options)
}

// WriteCountryBreakdown writes the (country, currency) aggregate view.
func (w *CSVWriter) WriteCountryBreakdown(out io.Writer, report *domain.ParsedReport, options WriteOptions) error {
	headers := []string{"Country of Sale", "Currency", "Quantity", "Proceeds"}

	records := make([][]string, 0, len(report.Summary.ByCountry))
	for _, entry := range report.Summary.ByCountry {
		records = append(records, []string{
			entry.CountryOfSale,
			entry.Currency,
			formatQuantity(entry.Quantity),
			formatAmount(entry.Proceeds),
		})
	}

	return w.write(out, headers, records, options)
}

// WriteProductBreakdown writes the per-SKU aggregate view, one row per
// (product, currency) pair. The total quantity covers all currencies of
// the product and repeats on each of its rows. An empty product breakdown
// produces a header-only file.
func (w *CSVWriter) WriteProductBreakdown(out io.Writer, report *domain.ParsedReport, options WriteOptions) error {
	headers := []string{"SKU", "Title", "Total Quantity", "Currency", "Proceeds"}

	var records [][]string
	for _, product := range report.Summary.ByProduct {
		for _, proceeds := range product.Proceeds {
			records = append(records, []string{
				product.SKU,
				product.Title,
				formatQuantity(product.Quantity),
				proceeds.Currency,
				formatAmount(proceeds.Amount),
			})
		}
	}

	return w.write(out, headers, records, options)
}

// WriteCurrencySummary writes the per-currency aggregate view.
func (w *CSVWriter) WriteCurrencySummary(out io.Writer, report *domain.ParsedReport, options WriteOptions) error {
	headers := []string{"Currency", "Total Quantity", "Total Proceeds"}

	records := make([][]string, 0, len(report.Summary.ByCurrency))
	for _, entry := range report.Summary.ByCurrency {
		records = append(records, []string{
			entry.Currency,
			formatQuantity(entry.TotalQuantity),
			formatAmount(entry.TotalProceeds),
		})
	}

	return w.write(out, headers, records, options)
}

// write emits one table with the configured delimiter and optional BOM
func (w *CSVWriter) write(out io.Writer, headers []string, records [][]string, options WriteOptions) error {
	if options.BOMPrefix {
		if _, err := out.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return apperrors.NewExportError("failed to write BOM", err)
		}
	}

	writer := csv.NewWriter(out)
	if options.Comma != 0 {
		writer.Comma = options.Comma
	}
	defer writer.Flush()

	if err := writer.Write(headers); err != nil {
		return apperrors.NewExportError("failed to write header row", err)
	}
	for i, record := range records {
		if err := writer.Write(record); err != nil {
			return apperrors.NewExportError("failed to write record", err).WithContext("row", i)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return apperrors.NewExportError("failed to flush output", err)
	}
	return nil
}
