package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"appsalescli/internal/config"
	"appsalescli/internal/exporter"
	"appsalescli/internal/infrastructure"
	"appsalescli/internal/salesreport"
	"appsalescli/internal/validation"
)

func main() {
	inFile := flag.String("in", "", "input sales report file (tab- or comma-delimited)")
	outDir := flag.String("out", "", "output directory for exports (defaults to data/exports)")
	format := flag.String("format", "csv", "export format: csv, xlsx, or both")
	summaryOnly := flag.Bool("summary", false, "print the aggregated summary as JSON and skip exports")
	flag.Parse()

	if *inFile == "" {
		fmt.Fprintln(os.Stderr, "usage: reportparse -in <report file> [-out <dir>] [-format csv|xlsx|both] [-summary]")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		cfg = &config.Config{
			Logging: config.LoggingConfig{
				Level:  "info",
				Output: "console",
			},
		}
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}

	paths := config.NewPaths(cfg.Paths)
	if *outDir == "" {
		*outDir = paths.ExportsDir
	}

	content, err := os.ReadFile(*inFile)
	if err != nil {
		logger.Error("Failed to read report file", slog.String("path", *inFile), slog.String("error", err.Error()))
		os.Exit(1)
	}
	text := string(content)
	delimiter := salesreport.DetectDelimiter(text)

	// Surface structural problems before parsing so the user sees every
	// issue at once rather than the first fatal one.
	result := validation.NewReportValidator(logger).Validate(text, delimiter)
	for _, warning := range result.Warnings {
		logger.Warn("validation warning", slog.String("warning", warning))
	}
	if !result.Valid {
		for _, msg := range result.Errors {
			logger.Error("validation error", slog.String("error", msg))
		}
		os.Exit(1)
	}

	ctx := context.Background()
	report, stats, err := salesreport.NewParser(logger).Parse(ctx, text)
	if err != nil {
		logger.Error("Failed to parse report", slog.String("path", *inFile), slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("Report parsed",
		slog.String("vendor", report.Metadata.VendorName),
		slog.String("period", report.Metadata.StartDate+" - "+report.Metadata.EndDate),
		slog.Int("transactions", report.Summary.TotalTransactions),
		slog.Int("rows_dropped", stats.RowsDropped),
		slog.Int("returns_skipped", stats.ReturnsSkipped),
		slog.Int("numeric_fallbacks", stats.NumericFallbacks))

	if *summaryOnly {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(report.Summary); err != nil {
			logger.Error("Failed to encode summary", slog.String("error", err.Error()))
			os.Exit(1)
		}
		return
	}

	if err := os.MkdirAll(*outDir, 0755); err != nil {
		logger.Error("Failed to create output directory", slog.String("dir", *outDir), slog.String("error", err.Error()))
		os.Exit(1)
	}

	base := strings.TrimSuffix(filepath.Base(*inFile), filepath.Ext(*inFile))

	if *format == "csv" || *format == "both" {
		csvWriter := exporter.NewCSVWriter(logger)
		views := []struct {
			suffix string
			write  func(f *os.File) error
		}{
			{"transactions", func(f *os.File) error {
				return csvWriter.WriteTransactions(f, report, exporter.WriteOptions{})
			}},
			{"by-country", func(f *os.File) error {
				return csvWriter.WriteCountryBreakdown(f, report, exporter.WriteOptions{})
			}},
			{"by-product", func(f *os.File) error {
				return csvWriter.WriteProductBreakdown(f, report, exporter.WriteOptions{})
			}},
			{"by-currency", func(f *os.File) error {
				return csvWriter.WriteCurrencySummary(f, report, exporter.WriteOptions{})
			}},
		}
		for _, view := range views {
			path := filepath.Join(*outDir, fmt.Sprintf("%s-%s.csv", base, view.suffix))
			if err := writeCSV(path, view.write); err != nil {
				logger.Error("CSV export failed", slog.String("path", path), slog.String("error", err.Error()))
				os.Exit(1)
			}
			logger.Info("CSV export written", slog.String("path", path))
		}
	}

	if *format == "xlsx" || *format == "both" {
		path := filepath.Join(*outDir, base+".xlsx")
		if err := exporter.NewExcelWriter(logger).WriteFile(path, report); err != nil {
			logger.Error("Excel export failed", slog.String("path", path), slog.String("error", err.Error()))
			os.Exit(1)
		}
	}
}

func writeCSV(path string, write func(f *os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
