package exporter

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"appsalescli/pkg/contracts/domain"
)

func sampleParsedReport() *domain.ParsedReport {
	return &domain.ParsedReport{
		Metadata: domain.ReportMetadata{
			VendorName: "Acme Inc",
			StartDate:  "01/01/2024",
			EndDate:    "01/31/2024",
		},
		Transactions: []domain.Transaction{
			{
				TransactionDate:      "01/02/2024",
				SKU:                  "APP1",
				Title:                "My App",
				CountryOfSale:        "US",
				SaleOrReturn:         "S",
				Quantity:             3,
				ExtendedPartnerShare: 2.10,
				PartnerShareCurrency: "USD",
			},
		},
		Summary: domain.ReportSummary{
			ByCountry: []domain.CountryBreakdown{
				{CountryOfSale: "DE", Currency: "EUR", Quantity: 1, Proceeds: 0.60},
				{CountryOfSale: "US", Currency: "USD", Quantity: 3, Proceeds: 2.10},
			},
			ByProduct: []domain.ProductBreakdown{
				{
					SKU:      "APP1",
					Title:    "My App",
					Quantity: 4,
					Proceeds: []domain.CurrencyProceeds{
						{Currency: "USD", Amount: 2.10},
						{Currency: "EUR", Amount: 0.60},
					},
				},
			},
			ByCurrency: []domain.CurrencySummary{
				{Currency: "EUR", TotalQuantity: 1, TotalProceeds: 0.60},
				{Currency: "USD", TotalQuantity: 3, TotalProceeds: 2.10},
			},
			TotalTransactions: 4,
		},
	}
}

func parseCSV(t *testing.T, data []byte) [][]string {
	t.Helper()
	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	return records
}

func TestCSVWriterWriteTransactions(t *testing.T) {
	var buf bytes.Buffer
	writer := NewCSVWriter(nil)

	err := writer.WriteTransactions(&buf, sampleParsedReport(), WriteOptions{})
	require.NoError(t, err)

	records := parseCSV(t, buf.Bytes())
	require.Len(t, records, 2)
	assert.Equal(t, "Transaction Date", records[0][0])
	assert.Contains(t, records[1], "APP1")
	assert.Contains(t, records[1], "2.10")
}

func TestCSVWriterWriteCountryBreakdown(t *testing.T) {
	var buf bytes.Buffer
	writer := NewCSVWriter(nil)

	err := writer.WriteCountryBreakdown(&buf, sampleParsedReport(), WriteOptions{})
	require.NoError(t, err)

	records := parseCSV(t, buf.Bytes())
	require.Len(t, records, 3)
	assert.Equal(t, []string{"Country of Sale", "Currency", "Quantity", "Proceeds"}, records[0])
	assert.Equal(t, []string{"DE", "EUR", "1", "0.60"}, records[1])
	assert.Equal(t, []string{"US", "USD", "3", "2.10"}, records[2])
}

func TestCSVWriterWriteProductBreakdown(t *testing.T) {
	t.Run("one row per product and currency", func(t *testing.T) {
		var buf bytes.Buffer
		writer := NewCSVWriter(nil)

		err := writer.WriteProductBreakdown(&buf, sampleParsedReport(), WriteOptions{})
		require.NoError(t, err)

		records := parseCSV(t, buf.Bytes())
		require.Len(t, records, 3)
		assert.Equal(t, []string{"APP1", "My App", "4", "USD", "2.10"}, records[1])
		assert.Equal(t, []string{"APP1", "My App", "4", "EUR", "0.60"}, records[2])
	})

	t.Run("empty breakdown writes header only", func(t *testing.T) {
		var buf bytes.Buffer
		writer := NewCSVWriter(nil)

		err := writer.WriteProductBreakdown(&buf, &domain.ParsedReport{}, WriteOptions{})
		require.NoError(t, err)

		records := parseCSV(t, buf.Bytes())
		require.Len(t, records, 1)
	})
}

func TestCSVWriterWriteCurrencySummary(t *testing.T) {
	var buf bytes.Buffer
	writer := NewCSVWriter(nil)

	err := writer.WriteCurrencySummary(&buf, sampleParsedReport(), WriteOptions{})
	require.NoError(t, err)

	records := parseCSV(t, buf.Bytes())
	require.Len(t, records, 3)
	assert.Equal(t, []string{"EUR", "1", "0.60"}, records[1])
	assert.Equal(t, []string{"USD", "3", "2.10"}, records[2])
}

func TestCSVWriterOptions(t *testing.T) {
	t.Run("BOM prefix", func(t *testing.T) {
		var buf bytes.Buffer
		writer := NewCSVWriter(nil)

		err := writer.WriteCurrencySummary(&buf, sampleParsedReport(), WriteOptions{BOMPrefix: true})
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte{0xEF, 0xBB, 0xBF}))
	})

	t.Run("custom delimiter", func(t *testing.T) {
		var buf bytes.Buffer
		writer := NewCSVWriter(nil)

		err := writer.WriteCurrencySummary(&buf, sampleParsedReport(), WriteOptions{Comma: ';'})
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(buf.String(), "Currency;Total Quantity;Total Proceeds"))
	})
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "1.40", formatAmount(1.4))
	assert.Equal(t, "0.00", formatAmount(0))
	assert.Equal(t, "3", formatQuantity(3))
	assert.Equal(t, "", formatProceeds(nil))
	assert.Equal(t, "USD 2.10; EUR 0.60", formatProceeds([]domain.CurrencyProceeds{
		{Currency: "USD", Amount: 2.10},
		{Currency: "EUR", Amount: 0.60},
	}))
}
