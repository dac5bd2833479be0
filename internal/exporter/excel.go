package exporter

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/xuri/excelize/v2"

	apperrors "appsalescli/internal/errors"
	"appsalescli/pkg/contracts/domain"
)

// Sheet names in the exported workbook
const (
	sheetOverview   = "Overview"
	sheetSales      = "Transactions"
	sheetCountries  = "By Country"
	sheetProducts   = "By Product"
	sheetCurrencies = "By Currency"
)

// ExcelWriter renders a parsed report as a multi-sheet Excel workbook
type ExcelWriter struct {
	logger *slog.Logger
}

// NewExcelWriter creates a new Excel writer instance
func NewExcelWriter(logger *slog.Logger) *ExcelWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExcelWriter{logger: logger}
}

// Write builds the workbook and streams it to out.
func (w *ExcelWriter) Write(out io.Writer, report *domain.ParsedReport) error {
	f, err := w.build(report)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(out); err != nil {
		return apperrors.NewExportError("failed to write Excel workbook", err)
	}
	return nil
}

// WriteFile builds the workbook and saves it at path.
func (w *ExcelWriter) WriteFile(path string, report *domain.ParsedReport) error {
	f, err := w.build(report)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return apperrors.NewExportError("failed to save Excel workbook", err).WithContext("path", path)
	}

	w.logger.Info("Excel export written",
		slog.String("path", path),
		slog.Int("transactions", len(report.Transactions)))
	return nil
}

// build assembles the workbook: an overview sheet with the report
// metadata, the transaction list, and one sheet per aggregate view.
func (w *ExcelWriter) build(report *domain.ParsedReport) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := w.writeOverview(f, report); err != nil {
		f.Close()
		return nil, err
	}
	if err := w.writeTransactions(f, report); err != nil {
		f.Close()
		return nil, err
	}
	if err := w.writeCountries(f, report); err != nil {
		f.Close()
		return nil, err
	}
	if err := w.writeProducts(f, report); err != nil {
		f.Close()
		return nil, err
	}
	if err := w.writeCurrencies(f, report); err != nil {
		f.Close()
		return nil, err
	}

	// The default sheet excelize creates is replaced by Overview.
	index, err := f.GetSheetIndex(sheetOverview)
	if err == nil {
		f.SetActiveSheet(index)
	}

	return f, nil
}

func (w *ExcelWriter) writeOverview(f *excelize.File, report *domain.ParsedReport) error {
	defaultSheet := f.GetSheetName(f.GetActiveSheetIndex())
	if err := f.SetSheetName(defaultSheet, sheetOverview); err != nil {
		return apperrors.NewExportError("failed to create overview sheet", err)
	}

	rows := [][]interface{}{
		{"Vendor Name", report.Metadata.VendorName},
		{"Start Date", report.Metadata.StartDate},
		{"End Date", report.Metadata.EndDate},
		{"Total Transactions", report.Summary.TotalTransactions},
	}
	return w.writeRows(f, sheetOverview, rows, 1)
}

func (w *ExcelWriter) writeTransactions(f *excelize.File, report *domain.ParsedReport) error {
	if _, err := f.NewSheet(sheetSales); err != nil {
		return apperrors.NewExportError("failed to create transactions sheet", err)
	}

	rows := [][]interface{}{{
		"Transaction Date", "Settlement Date", "SKU", "Title", "Developer Name",
		"Country of Sale", "Region of Sale", "Quantity", "Partner Share",
		"Extended Partner Share", "Partner Share Currency", "Customer Price", "Customer Currency",
	}}
	for _, tx := range report.Transactions {
		rows = append(rows, []interface{}{
			tx.TransactionDate, tx.SettlementDate, tx.SKU, tx.Title, tx.DeveloperName,
			tx.CountryOfSale, tx.RegionOfSale, tx.Quantity, tx.PartnerShare,
			tx.ExtendedPartnerShare, tx.PartnerShareCurrency, tx.CustomerPrice, tx.CustomerCurrency,
		})
	}
	return w.writeRows(f, sheetSales, rows, 1)
}

func (w *ExcelWriter) writeCountries(f *excelize.File, report *domain.ParsedReport) error {
	if _, err := f.NewSheet(sheetCountries); err != nil {
		return apperrors.NewExportError("failed to create country sheet", err)
	}

	rows := [][]interface{}{{"Country of Sale", "Currency", "Quantity", "Proceeds"}}
	for _, entry := range report.Summary.ByCountry {
		rows = append(rows, []interface{}{entry.CountryOfSale, entry.Currency, entry.Quantity, entry.Proceeds})
	}
	return w.writeRows(f, sheetCountries, rows, 1)
}

func (w *ExcelWriter) writeProducts(f *excelize.File, report *domain.ParsedReport) error {
	if _, err := f.NewSheet(sheetProducts); err != nil {
		return apperrors.NewExportError("failed to create product sheet", err)
	}

	rows := [][]interface{}{{"SKU", "Title", "Total Quantity", "Proceeds"}}
	for _, product := range report.Summary.ByProduct {
		rows = append(rows, []interface{}{
			product.SKU, product.Title, product.Quantity, formatProceeds(product.Proceeds),
		})
	}
	return w.writeRows(f, sheetProducts, rows, 1)
}

func (w *ExcelWriter) writeCurrencies(f *excelize.File, report *domain.ParsedReport) error {
	if _, err := f.NewSheet(sheetCurrencies); err != nil {
		return apperrors.NewExportError("failed to create currency sheet", err)
	}

	rows := [][]interface{}{{"Currency", "Total Quantity", "Total Proceeds"}}
	for _, entry := range report.Summary.ByCurrency {
		rows = append(rows, []interface{}{entry.Currency, entry.TotalQuantity, entry.TotalProceeds})
	}
	return w.writeRows(f, sheetCurrencies, rows, 1)
}

// writeRows writes rows starting at the given 1-based row number
func (w *ExcelWriter) writeRows(f *excelize.File, sheet string, rows [][]interface{}, start int) error {
	for i, row := range rows {
		cell := fmt.Sprintf("A%d", start+i)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return apperrors.NewExportError("failed to write worksheet row", err).WithContext("sheet", sheet)
		}
	}
	return nil
}
