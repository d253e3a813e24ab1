package imports

import (
	"bytes"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/lease"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

// maxXLSRows bounds ReadAllCells on legacy workbooks.
const maxXLSRows = 100000

// Excel serials outside this window are not treated as dates.
const (
	minDateSerial = 1
	maxDateSerial = 2958465
)

// SupportedExtension reports whether filename is a workbook we can read.
func SupportedExtension(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xls":
		return true
	}
	return false
}

// ReadWorkbook decodes the first sheet of an .xlsx or .xls file. The first
// row is the header; date columns come back as time.Time where the cell
// holds a date serial.
func ReadWorkbook(r io.Reader, filename string) (lease.ImportTable, error) {
	var table lease.ImportTable
	data, err := io.ReadAll(r)
	if err != nil {
		return table, err
	}

	var rows [][]string
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xls":
		rows, err = readXLS(data)
	case ".xlsx":
		rows, err = readXLSX(data)
	default:
		return table, domain.InvalidField("file", "must be an .xlsx or .xls workbook")
	}
	if err != nil {
		return table, domain.InvalidField("file", err.Error())
	}
	if len(rows) == 0 {
		return table, domain.InvalidField("file", "worksheet is empty")
	}

	table.Header = make([]string, len(rows[0]))
	dateCol := make([]bool, len(rows[0]))
	for i, h := range rows[0] {
		table.Header[i] = strings.TrimSpace(h)
		if f, ok := lease.FieldByColumn(table.Header[i]); ok && f.Kind == lease.KindDate {
			dateCol[i] = true
		}
	}
	for _, raw := range rows[1:] {
		cells := make([]any, len(raw))
		for i, v := range raw {
			if i < len(dateCol) && dateCol[i] {
				cells[i] = dateCell(v)
				continue
			}
			cells[i] = v
		}
		table.Rows = append(table.Rows, cells)
	}
	return table, nil
}

func readXLSX(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, errNoSheet
	}
	return f.GetRows(sheet, excelize.Options{RawCellValue: true})
}

func readXLS(data []byte) ([][]string, error) {
	wb, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, err
	}
	if wb.NumSheets() == 0 {
		return nil, errNoSheet
	}
	return wb.ReadAllCells(maxXLSRows), nil
}

// dateCell turns a serial or an RFC 3339 stamp into a time.Time. Anything
// else is left for the date normalizer.
func dateCell(v string) any {
	s := strings.TrimSpace(v)
	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		if serial >= minDateSerial && serial <= maxDateSerial {
			if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
				return t
			}
		}
		return v
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	return v
}
