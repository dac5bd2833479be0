package validation

import (
	"fmt"
	"log/slog"
	"strings"

	"appsalescli/internal/salesreport"
)

// requiredColumns are the header columns a report must carry before the
// engine can aggregate it. Their absence is fatal for the upload.
var requiredColumns = []string{
	"Country of Sale",
	"Partner Share Currency",
	"Quantity",
	"Extended Partner Share",
}

// minReportLines mirrors the engine's structural minimum.
const minReportLines = 5

// Result is the outcome of validating one report upload. Errors are fatal;
// warnings are informational and parsing proceeds despite them. All text
// is written for a non-technical user.
type Result struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// ReportValidator performs structural checks on raw report text before it
// is handed to the parser.
type ReportValidator struct {
	logger *slog.Logger
}

// NewReportValidator creates a new report validator
func NewReportValidator(logger *slog.Logger) *ReportValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportValidator{logger: logger}
}

// Validate checks that the text looks like a parseable sales report: long
// enough, carrying a transaction header, and with every required column
// present. Missing metadata is reported as warnings only.
func (v *ReportValidator) Validate(text string, delimiter string) Result {
	var result Result

	lines := salesreport.NonBlankLines(text)
	if len(lines) < minReportLines {
		result.Errors = append(result.Errors,
			fmt.Sprintf("the file is too short to be a sales report: it has %d non-blank lines, at least %d are expected", len(lines), minReportLines))
		return result
	}

	headerIdx := salesreport.FindHeaderLine(lines)
	if headerIdx < 0 {
		result.Errors = append(result.Errors,
			"no transaction header line was found; the file does not look like an App Store sales report")
		return result
	}

	header := make(map[string]bool)
	for _, name := range strings.Split(lines[headerIdx], delimiter) {
		header[strings.TrimSpace(name)] = true
	}
	for _, column := range requiredColumns {
		if !header[column] {
			result.Errors = append(result.Errors,
				fmt.Sprintf("the report is missing the required column %q", column))
		}
	}
	if len(result.Errors) > 0 {
		v.logger.Warn("report failed validation",
			slog.Int("errors", len(result.Errors)))
		return result
	}

	metadata := salesreport.ExtractMetadata(lines, delimiter)
	result.Warnings = salesreport.MetadataWarnings(metadata)

	result.Valid = true
	return result
}
