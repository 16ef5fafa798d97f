package dataset

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/angas/solara-go/convert"
	"github.com/angas/solara-go/types/maybe"
	"github.com/xuri/excelize/v2"
)

var ErrUnreadable = errors.New("unreadable spreadsheet")

var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"2/1/2006",
	"2006/01/02",
	"02-01-2006",
	time.RFC3339,
	"2006-01-02 15:04:05",
}

func ParseFile(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open spreadsheet: %w", err)
	}
	defer f.Close()

	ds, err := Parse(f, filepath.Base(path))
	if err != nil {
		return nil, err
	}
	if fi, err := f.Stat(); err == nil {
		ds.Size = fi.Size()
	}
	return ds, nil
}

// Parse reads the first sheet of an XLSX workbook. The first row is the
// header, every other row a daily record. Gaps in the readings are
// interpolated before the dataset is returned.
func Parse(r io.Reader, name string) (ds *Dataset, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			ds = nil
			err = fmt.Errorf("%w: %v", ErrUnreadable, rec)
		}
	}()

	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreadable, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("%w: workbook has no sheets", ErrUnreadable)
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%w: reading rows: %w", ErrUnreadable, err)
	}

	return FromRows(rows, name)
}

// FromRows builds a dataset from raw cell text, header first.
func FromRows(rows [][]string, name string) (*Dataset, error) {
	var header []string
	if len(rows) > 0 {
		header = rows[0]
	}

	cols, err := DetectColumns(header)
	if err != nil {
		return nil, err
	}

	ds := &Dataset{
		Name:     name,
		LoadedAt: time.Now(),
		Header:   header,
		Columns:  cols,
	}

	for _, row := range trimEmptyRows(rows[1:]) {
		rec := Record{
			Date:  strings.TrimSpace(cell(row, cols.Date)),
			UV:    reading(cell(row, cols.UV)),
			O3:    reading(cell(row, cols.O3)),
			PP:    reading(cell(row, cols.PP)),
			Extra: map[string]string{},
		}
		rec.When = parseDate(rec.Date)

		for i, h := range header {
			if i == cols.Date || i == cols.UV || i == cols.O3 || i == cols.PP || h == "" {
				continue
			}
			if v := cell(row, i); v != "" {
				rec.Extra[h] = v
			}
		}

		ds.Records = append(ds.Records, rec)
	}

	for _, v := range Variables {
		cells := ds.Column(v)
		Interpolate(cells)
		ds.setColumn(v, cells)
	}

	return ds, nil
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func reading(str string) Cell {
	f, ok := convert.ParseReading(str)
	if !ok {
		return maybe.None[float64]()
	}
	return maybe.Some(f)
}

// parseDate understands Excel serial dates and the usual text layouts.
func parseDate(str string) time.Time {
	if str == "" {
		return time.Time{}
	}
	if serial, err := strconv.ParseFloat(str, 64); err == nil {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return time.Time{}
		}
		return t
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, str); err == nil {
			return t
		}
	}
	return time.Time{}
}

func trimEmptyRows(rows [][]string) [][]string {
	end := len(rows)
	for end > 0 && isEmptyRow(rows[end-1]) {
		end--
	}
	return rows[:end]
}

func isEmptyRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
