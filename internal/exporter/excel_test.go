package exporter

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExcelWriterWrite(t *testing.T) {
	var buf bytes.Buffer
	writer := NewExcelWriter(nil)

	err := writer.Write(&buf, sampleParsedReport())
	require.NoError(t, err)

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t,
		[]string{"Overview", "Transactions", "By Country", "By Product", "By Currency"},
		f.GetSheetList())

	t.Run("overview carries the metadata", func(t *testing.T) {
		vendor, err := f.GetCellValue("Overview", "B1")
		require.NoError(t, err)
		assert.Equal(t, "Acme Inc", vendor)
	})

	t.Run("country sheet rows", func(t *testing.T) {
		rows, err := f.GetRows("By Country")
		require.NoError(t, err)
		require.Len(t, rows, 3)
		assert.Equal(t, "DE", rows[1][0])
		assert.Equal(t, "US", rows[2][0])
	})

	t.Run("product sheet folds currencies into one cell", func(t *testing.T) {
		rows, err := f.GetRows("By Product")
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "USD 2.10; EUR 0.60", rows[1][3])
	})
}
