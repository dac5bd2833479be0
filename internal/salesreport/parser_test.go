package salesreport

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"appsalescli/pkg/contracts/domain"
)

const sampleReport = `Vendor Name	Acme Inc
Start Date	01/01/2024
End Date	01/31/2024
Transaction Date	Settlement Date	SKU	Title	Developer Name	Product Type Identifier	Country of Sale	Region of Sale	Sale or Return	Quantity	Partner Share	Extended Partner Share	Partner Share Currency	Customer Price	Customer Currency
01/02/2024	01/05/2024	APP1	My App	Acme Inc	IAP	US	Americas	S	1	0.70	0.70	USD	0.99	USD
01/03/2024	01/05/2024	APP1	My App	Acme Inc	IAP	US	Americas	S	2	0.70	1.40	USD	0.99	USD
01/04/2024	01/05/2024	APP1	My App	Acme Inc	IAP	DE	Europe	R	1	0.60	0.60	EUR	0.89	EUR
01/05/2024	01/05/2024	APP2	Another App	Acme Inc	IAP		Europe	S	1	0.60	0.60	EUR	0.89	EUR
01/06/2024	01/08/2024	APP2	Another App	Acme Inc	IAP	DE	Europe	S	1	0.60	0.60	EUR	0.89	EUR
Country Of Sale	Quantity	Extended Partner Share
US	3	2.10
DE	1	0.60
`

func TestParserParse(t *testing.T) {
	parser := NewParser(nil)

	report, stats, err := parser.Parse(context.Background(), sampleReport)
	require.NoError(t, err)
	require.NotNil(t, report)
	require.NotNil(t, stats)

	t.Run("metadata", func(t *testing.T) {
		assert.Equal(t, domain.ReportMetadata{
			VendorName: "Acme Inc",
			StartDate:  "01/01/2024",
			EndDate:    "01/31/2024",
		}, report.Metadata)
		assert.Empty(t, stats.Warnings)
	})

	t.Run("row accounting", func(t *testing.T) {
		assert.Equal(t, 5, stats.RowsSeen)
		assert.Equal(t, 3, stats.RowsDecoded)
		assert.Equal(t, 1, stats.RowsDropped)
		assert.Equal(t, 1, stats.ReturnsSkipped)
		assert.Zero(t, stats.NumericFallbacks)
	})

	t.Run("only retained sales reach the transaction list", func(t *testing.T) {
		require.Len(t, report.Transactions, 3)
		for _, tx := range report.Transactions {
			assert.True(t, tx.IsSale())
			assert.NotEmpty(t, tx.CountryOfSale)
		}
	})

	t.Run("country breakdown", func(t *testing.T) {
		require.Len(t, report.Summary.ByCountry, 2)
		assert.Equal(t, domain.CountryBreakdown{CountryOfSale: "DE", Currency: "EUR", Quantity: 1, Proceeds: 0.60}, report.Summary.ByCountry[0])
		assert.Equal(t, domain.CountryBreakdown{CountryOfSale: "US", Currency: "USD", Quantity: 3, Proceeds: 2.10}, report.Summary.ByCountry[1])
	})

	t.Run("product breakdown", func(t *testing.T) {
		require.Len(t, report.Summary.ByProduct, 2)
		assert.Equal(t, "Another App", report.Summary.ByProduct[0].Title)
		assert.Equal(t, "My App", report.Summary.ByProduct[1].Title)
		assert.Equal(t, int64(3), report.Summary.ByProduct[1].Quantity)
	})

	t.Run("currency summary", func(t *testing.T) {
		require.Len(t, report.Summary.ByCurrency, 2)
		assert.Equal(t, domain.CurrencySummary{Currency: "EUR", TotalQuantity: 1, TotalProceeds: 0.60}, report.Summary.ByCurrency[0])
		assert.Equal(t, domain.CurrencySummary{Currency: "USD", TotalQuantity: 3, TotalProceeds: 2.10}, report.Summary.ByCurrency[1])
	})

	t.Run("trailing summary region is not decoded as data", func(t *testing.T) {
		assert.Equal(t, 3, report.Summary.TotalTransactions)
	})
}

func TestParserParseIsDeterministic(t *testing.T) {
	parser := NewParser(nil)

	first, _, err := parser.Parse(context.Background(), sampleReport)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		again, _, err := parser.Parse(context.Background(), sampleReport)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestParserParseCommaDelimited(t *testing.T) {
	text := strings.ReplaceAll(sampleReport, "\t", ",")

	report, stats, err := NewParser(nil).Parse(context.Background(), text)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.RowsDecoded)
	assert.Equal(t, "Acme Inc", report.Metadata.VendorName)
}

func TestParserParseWindowsLineEndings(t *testing.T) {
	text := strings.ReplaceAll(sampleReport, "\n", "\r\n")

	report, _, err := NewParser(nil).Parse(context.Background(), text)
	require.NoError(t, err)
	assert.Equal(t, 3, report.Summary.TotalTransactions)
}

func TestParserParseBlankLinesIgnored(t *testing.T) {
	text := strings.ReplaceAll(sampleReport, "\nTransaction Date", "\n\n   \nTransaction Date")

	report, _, err := NewParser(nil).Parse(context.Background(), text)
	require.NoError(t, err)
	assert.Equal(t, 3, report.Summary.TotalTransactions)
}

func TestParserParseNoSummarySection(t *testing.T) {
	// Cut the file just before the trailing summary; the data region then
	// runs to the end of the file.
	idx := strings.Index(sampleReport, "Country Of Sale")
	require.Positive(t, idx)

	report, stats, err := NewParser(nil).Parse(context.Background(), sampleReport[:idx])
	require.NoError(t, err)
	assert.Equal(t, 5, stats.RowsSeen)
	assert.Equal(t, 3, report.Summary.TotalTransactions)
}

func TestParserParseMissingMetadataWarns(t *testing.T) {
	text := `Transaction Date	SKU	Title	Country of Sale	Sale or Return	Quantity	Extended Partner Share	Partner Share Currency
01/02/2024	APP1	My App	US	S	1	0.70	USD
01/03/2024	APP1	My App	US	S	1	0.70	USD
01/04/2024	APP1	My App	US	S	1	0.70	USD
01/05/2024	APP1	My App	US	S	1	0.70	USD
`

	report, stats, err := NewParser(nil).Parse(context.Background(), text)
	require.NoError(t, err)
	assert.Len(t, stats.Warnings, 3)
	assert.Empty(t, report.Metadata.VendorName)
	assert.Equal(t, 4, report.Summary.TotalTransactions)
}

func TestParserParseErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{
			name: "empty input",
			text: "",
		},
		{
			name: "too few non-blank lines",
			text: "Vendor Name\tAcme Inc\nStart Date\t01/01/2024\nEnd Date\t01/31/2024\n",
		},
		{
			name: "no transaction header",
			text: "a\tb\nc\td\ne\tf\ng\th\ni\tj\nk\tl\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, stats, err := NewParser(nil).Parse(context.Background(), tt.text)
			require.Error(t, err)
			assert.Nil(t, report)
			assert.Nil(t, stats)
		})
	}
}
