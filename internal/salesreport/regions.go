package salesreport

import (
	"strings"
)

// Apple exports carry no explicit section markers; the transaction header
// and the trailing per-country summary are located by content shape alone.
const (
	// headerScanWindow bounds the forward scan for the transaction header,
	// which always sits near the top of the file.
	headerScanWindow = 10

	// maxSummaryHeaderFields distinguishes the narrow summary header from
	// the wide transaction header, which shares the Country of Sale text.
	maxSummaryHeaderFields = 5
)

// Substrings that identify the transaction header line.
const (
	headerMarkerDate    = "Transaction Date"
	headerMarkerCountry = "Country of Sale"
)

// FindHeaderLine scans at most the first ten lines and returns the index of
// the first line containing both transaction-header markers, or -1 when no
// such line exists. A missing header is fatal: without the column order the
// data region cannot be decoded.
func FindHeaderLine(lines []string) int {
	for i := 0; i < len(lines) && i < headerScanWindow; i++ {
		if strings.Contains(lines[i], headerMarkerDate) && strings.Contains(lines[i], headerMarkerCountry) {
			return i
		}
	}
	return -1
}

// FindSummaryStart scans backward from the end of the file for the line
// that opens the trailing summary region: trimmed text starting with the
// Country Of Sale label and no more than five delimited fields. The
// backward scan matters because duplicate header-looking lines can appear
// earlier in the file. When no summary header exists the data region runs
// to the end of the file, so len(lines) is returned.
func FindSummaryStart(lines []string, delimiter string) int {
	for i := len(lines) - 1; i >= 0; i-- {
		trimmed := strings.TrimSpace(lines[i])
		if !strings.HasPrefix(trimmed, "Country Of Sale") && !strings.HasPrefix(trimmed, "Country of Sale") {
			continue
		}
		if len(strings.Split(lines[i], delimiter)) <= maxSummaryHeaderFields {
			return i
		}
	}
	return len(lines)
}
