package curve

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Layout of the published term-structure workbook. The spot curve without
// volatility adjustment lives in a single column on a fixed sheet; rows 11
// through 160 hold projection years 1 through 150. These offsets are part of
// the publisher's file format and have to be revisited if it changes.
const (
	// SpotSheet is the worksheet holding the spot curve without VA.
	SpotSheet = "RFR_spot_no_VA"

	rateColumn   = "C"
	firstRateRow = 11

	// RateRowCount is the number of projection years in the published range.
	RateRowCount = 150

	// MinPoints and MaxPoints bound the caller-chosen number of points.
	MinPoints = 30
	MaxPoints = 150
)

var (
	// ErrSheetNotFound is returned when the workbook has no sheet with the
	// requested name.
	ErrSheetNotFound = errors.New("sheet not found")

	// ErrCellRange is returned when a cell in the fixed range is empty or
	// not numeric, including sheets with fewer rows than requested.
	ErrCellRange = errors.New("malformed cell range")

	// ErrPointLimit is returned when the requested point count is outside
	// [MinPoints, MaxPoints].
	ErrPointLimit = errors.New("point limit out of range")
)

// ReadSpotRange opens the workbook at filePath and reads the first limit
// rates from the fixed spot-curve range on the named sheet, in row order.
// Values are the raw decimals from the workbook; percentage formatting is a
// presentation concern.
func ReadSpotRange(filePath, sheetName string, limit int) ([]float64, error) {
	if limit < MinPoints || limit > MaxPoints {
		return nil, fmt.Errorf("%w: %d not in [%d,%d]", ErrPointLimit, limit, MinPoints, MaxPoints)
	}

	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", filePath, err)
	}
	defer f.Close()

	idx, err := f.GetSheetIndex(sheetName)
	if err != nil {
		return nil, fmt.Errorf("lookup sheet %q: %w", sheetName, err)
	}
	if idx < 0 {
		return nil, fmt.Errorf("%w: %q in %s", ErrSheetNotFound, sheetName, filePath)
	}

	rates := make([]float64, 0, limit)
	for row := firstRateRow; row < firstRateRow+limit; row++ {
		cell := rateColumn + strconv.Itoa(row)
		raw, err := f.GetCellValue(sheetName, cell)
		if err != nil {
			return nil, fmt.Errorf("read cell %s: %w", cell, err)
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			return nil, fmt.Errorf("%w: empty cell %s on %q", ErrCellRange, cell, sheetName)
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: non-numeric cell %s (%q)", ErrCellRange, cell, raw)
		}
		rates = append(rates, v)
	}

	return rates, nil
}
