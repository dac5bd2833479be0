package salesreport

import (
	"strings"
)

// Delimiters the detector can return. Apple financial exports are normally
// tab-separated but comma-separated variants exist in the wild.
const (
	DelimiterTab   = "\t"
	DelimiterComma = ","
)

// delimiterScanWindow is the number of physical lines inspected when
// guessing the delimiter.
const delimiterScanWindow = 5

// DetectDelimiter inspects a short prefix of the raw text and decides
// whether the file is tab- or comma-delimited. Tabs win only on a strict
// majority; everything else, including empty input, falls back to comma.
func DetectDelimiter(text string) string {
	lines := strings.Split(text, "\n")
	if len(lines) > delimiterScanWindow {
		lines = lines[:delimiterScanWindow]
	}

	var tabs, commas int
	for _, line := range lines {
		tabs += strings.Count(line, "\t")
		commas += strings.Count(line, ",")
	}

	if tabs > commas {
		return DelimiterTab
	}
	return DelimiterComma
}

// NonBlankLines splits the raw text into lines, normalizes Windows line
// endings, and drops blank lines. All region scans operate on this
// filtered view.
func NonBlankLines(text string) []string {
	raw := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
