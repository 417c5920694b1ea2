package curve

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// writeWorkbook builds a term-structure workbook fixture with rows rates in
// the published range and returns its path.
func writeWorkbook(t *testing.T, sheet string, rows int) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	_, err := f.NewSheet(sheet)
	require.NoError(t, err)

	for i := 0; i < rows; i++ {
		cell := fmt.Sprintf("C%d", 11+i)
		require.NoError(t, f.SetCellValue(sheet, cell, rate(i)))
	}

	path := filepath.Join(t.TempDir(), "fixture_Term_Structures.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

// rate produces a deterministic, realistic-looking spot rate for row i.
func rate(i int) float64 {
	return 0.03 + float64(i)*0.0001
}

func TestReadSpotRange(t *testing.T) {
	path := writeWorkbook(t, SpotSheet, RateRowCount)

	t.Run("limit 60 returns 60 values in row order", func(t *testing.T) {
		rates, err := ReadSpotRange(path, SpotSheet, 60)
		require.NoError(t, err)
		require.Len(t, rates, 60)
		for i, v := range rates {
			assert.InDelta(t, rate(i), v, 1e-9, "row %d", i)
		}
	})

	t.Run("limit 30 returns prefix of limit 60", func(t *testing.T) {
		sixty, err := ReadSpotRange(path, SpotSheet, 60)
		require.NoError(t, err)
		thirty, err := ReadSpotRange(path, SpotSheet, 30)
		require.NoError(t, err)
		assert.Equal(t, sixty[:30], thirty)
	})

	t.Run("full range", func(t *testing.T) {
		rates, err := ReadSpotRange(path, SpotSheet, MaxPoints)
		require.NoError(t, err)
		assert.Len(t, rates, RateRowCount)
	})
}

func TestReadSpotRangeLimitBounds(t *testing.T) {
	path := writeWorkbook(t, SpotSheet, RateRowCount)

	for _, limit := range []int{0, 29, 151, -1} {
		_, err := ReadSpotRange(path, SpotSheet, limit)
		assert.ErrorIs(t, err, ErrPointLimit, "limit %d", limit)
	}
}

func TestReadSpotRangeSheetNotFound(t *testing.T) {
	path := writeWorkbook(t, "RFR_spot_with_VA", RateRowCount)

	_, err := ReadSpotRange(path, SpotSheet, 60)
	assert.ErrorIs(t, err, ErrSheetNotFound)
}

func TestReadSpotRangeShortSheet(t *testing.T) {
	path := writeWorkbook(t, SpotSheet, 40)

	_, err := ReadSpotRange(path, SpotSheet, 60)
	assert.ErrorIs(t, err, ErrCellRange)

	// The populated prefix still reads fine.
	rates, err := ReadSpotRange(path, SpotSheet, 40)
	require.NoError(t, err)
	assert.Len(t, rates, 40)
}

func TestReadSpotRangeNonNumericCell(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	_, err := f.NewSheet(SpotSheet)
	require.NoError(t, err)
	for i := 0; i < 30; i++ {
		require.NoError(t, f.SetCellValue(SpotSheet, fmt.Sprintf("C%d", 11+i), rate(i)))
	}
	require.NoError(t, f.SetCellValue(SpotSheet, "C25", "n/a"))

	path := filepath.Join(t.TempDir(), "bad_Term_Structures.xlsx")
	require.NoError(t, f.SaveAs(path))

	_, err = ReadSpotRange(path, SpotSheet, 30)
	assert.ErrorIs(t, err, ErrCellRange)
}

func TestReadSpotRangeMissingFile(t *testing.T) {
	_, err := ReadSpotRange(filepath.Join(t.TempDir(), "absent.xlsx"), SpotSheet, 60)
	assert.Error(t, err)
}

func TestNewSelection(t *testing.T) {
	sel := NewSelection("20230331", "/tmp/EIOPA_RFR_20230331_Term_Structures.xlsx", []float64{0.03, 0.031})

	assert.Equal(t, "31-03-2023", sel.Label)
	assert.Equal(t, "/tmp/EIOPA_RFR_20230331_Term_Structures.xlsx", sel.SourcePath)
	assert.Equal(t, []float64{0.03, 0.031}, sel.Rates)
}
