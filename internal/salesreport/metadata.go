package salesreport

import (
	"strings"

	"appsalescli/pkg/contracts/domain"
)

// Metadata keys recognized in the report preamble. Matching is
// case-sensitive; any other key/value line is ignored.
const (
	metadataKeyVendor    = "Vendor Name"
	metadataKeyStartDate = "Start Date"
	metadataKeyEndDate   = "End Date"
)

// metadataScanWindow is the number of leading lines searched for metadata.
const metadataScanWindow = 5

// ExtractMetadata scans the first lines of the report for known key/value
// pairs. Missing keys leave the corresponding field empty; that is a
// warning for the caller, never a parse failure.
func ExtractMetadata(lines []string, delimiter string) domain.ReportMetadata {
	var md domain.ReportMetadata

	for i := 0; i < len(lines) && i < metadataScanWindow; i++ {
		fields := strings.Split(lines[i], delimiter)
		if len(fields) < 2 {
			continue
		}

		key := strings.TrimSpace(fields[0])
		value := strings.TrimSpace(fields[1])

		switch key {
		case metadataKeyVendor:
			md.VendorName = value
		case metadataKeyStartDate:
			md.StartDate = value
		case metadataKeyEndDate:
			md.EndDate = value
		}
	}

	return md
}

// MetadataWarnings returns human-readable warnings for metadata fields the
// preamble did not provide.
func MetadataWarnings(md domain.ReportMetadata) []string {
	var warnings []string
	if md.VendorName == "" {
		warnings = append(warnings, "vendor name is missing from the report header")
	}
	if md.StartDate == "" {
		warnings = append(warnings, "reporting period start date is missing from the report header")
	}
	if md.EndDate == "" {
		warnings = append(warnings, "reporting period end date is missing from the report header")
	}
	return warnings
}
