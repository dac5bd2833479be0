package salesreport

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"appsalescli/pkg/contracts/domain"
)

func TestExtractMetadata(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  domain.ReportMetadata
	}{
		{
			name: "full preamble",
			lines: []string{
				"Vendor Name\tAcme Inc",
				"Start Date\t01/01/2024",
				"End Date\t01/31/2024",
			},
			want: domain.ReportMetadata{
				VendorName: "Acme Inc",
				StartDate:  "01/01/2024",
				EndDate:    "01/31/2024",
			},
		},
		{
			name: "keys are case sensitive",
			lines: []string{
				"vendor name\tAcme Inc",
				"START DATE\t01/01/2024",
			},
			want: domain.ReportMetadata{},
		},
		{
			name: "values are trimmed",
			lines: []string{
				"Vendor Name\t  Acme Inc  ",
			},
			want: domain.ReportMetadata{VendorName: "Acme Inc"},
		},
		{
			name: "unknown keys are ignored",
			lines: []string{
				"Report Type\tSales",
				"Vendor Name\tAcme Inc",
			},
			want: domain.ReportMetadata{VendorName: "Acme Inc"},
		},
		{
			name: "keys beyond the scan window are ignored",
			lines: []string{
				"1", "2", "3", "4", "5",
				"Vendor Name\tAcme Inc",
			},
			want: domain.ReportMetadata{},
		},
		{
			name:  "single-field lines are skipped",
			lines: []string{"Vendor Name", "Start Date\t01/01/2024"},
			want:  domain.ReportMetadata{StartDate: "01/01/2024"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractMetadata(tt.lines, DelimiterTab))
		})
	}
}

func TestMetadataWarnings(t *testing.T) {
	t.Run("complete metadata yields no warnings", func(t *testing.T) {
		md := domain.ReportMetadata{VendorName: "Acme Inc", StartDate: "01/01/2024", EndDate: "01/31/2024"}
		assert.Empty(t, MetadataWarnings(md))
	})

	t.Run("one warning per missing field", func(t *testing.T) {
		warnings := MetadataWarnings(domain.ReportMetadata{})
		assert.Len(t, warnings, 3)
	})
}
