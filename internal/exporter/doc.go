// Package exporter renders a parsed sales report as delimited text or as
// an Excel workbook. Exporters are read-only consumers of the report
// model: they never mutate it, they tolerate an empty product breakdown,
// and they format every amount with the currency code stored on the
// aggregate itself rather than a global currency.
package exporter
