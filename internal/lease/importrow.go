package lease

import (
	"math"
	"strings"
	"time"

	"rentdesk-backend/internal/domain"
)

// ImportTable is a decoded spreadsheet: a header row of canonical column
// names and data rows of mixed-type cells. Date cells should already be
// time.Time where the source format allows it.
type ImportTable struct {
	Header []string
	Rows   [][]any
}

// ImportResult summarizes a bulk import.
type ImportResult struct {
	Inserted int          `json:"inserted"`
	Skipped  []SkippedRow `json:"skipped"`
}

// SkippedRow is a data row that was not inserted. Row is 1-based and counts
// data rows only.
type SkippedRow struct {
	Row      int    `json:"row"`
	SiteCode string `json:"site_code"`
	Reason   string `json:"reason"`
}

const (
	SkipExisting  = "site already exists"
	SkipBlankSite = "missing site code"
)

// ValidateHeader checks every mandatory column is present. It reports all
// missing columns at once.
func ValidateHeader(header []string) error {
	have := make(map[string]bool, len(header))
	for _, h := range header {
		have[strings.TrimSpace(h)] = true
	}
	var missing []string
	for _, col := range RequiredColumns() {
		if !have[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return &domain.MissingColumns{Columns: missing}
	}
	return nil
}

// ImportRow is the insert derived from one data row. Invalid names the
// first numeric column whose cell did not clean; such a row is not inserted.
type ImportRow struct {
	SiteCode    string
	Assignments []Assignment
	Invalid     string
}

// SkipInvalid is the skip reason for a row with an unusable amount.
func SkipInvalid(column string) string {
	return "invalid " + column
}

// BuildImportRow maps the populated cells of a data row to assignments.
// Missing cells are left out, so the insert shape varies row to row.
// Columns outside the persisted vocabulary are reported in ignored.
func BuildImportRow(header []string, cells []any) (row ImportRow, ignored []string) {
	for i, name := range header {
		name = strings.TrimSpace(name)
		f, known := FieldByColumn(name)
		if !known || f.Transient {
			if name != "" {
				ignored = append(ignored, name)
			}
			continue
		}
		if i >= len(cells) || missingCell(cells[i]) {
			continue
		}
		v, ok := importValue(f, cells[i])
		if !ok && row.Invalid == "" {
			row.Invalid = f.Column
		}
		if f.Column == ColSite {
			row.SiteCode = strings.TrimSpace(asText(v))
			v = row.SiteCode
		}
		row.Assignments = append(row.Assignments, Assignment{Column: Column{Name: f.Column}, Value: v})
	}
	return row, ignored
}

// importValue cleans a cell. Dates that do not parse are kept as text; a
// numeric cell that does not clean (text, negative) reports ok false.
func importValue(f Field, v any) (any, bool) {
	switch f.Kind {
	case KindDate:
		if t, ok := v.(time.Time); ok {
			return FormatStorage(dateOf(t)), true
		}
		if d, err := NormalizeInputDate(asText(v)); err == nil {
			return FormatStorage(d), true
		}
		return asText(v), true
	case KindInt:
		if n, err := CleanInt(v); err == nil {
			return n, true
		}
		return asText(v), false
	case KindDecimal:
		if d, err := CleanDecimal(v); err == nil {
			if f.Column == ColHikePercentage {
				d = NormalizeHike(d)
			}
			return d, true
		}
		return asText(v), false
	}
	return asText(v), true
}

func missingCell(v any) bool {
	switch c := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(c) == ""
	case float64:
		return math.IsNaN(c)
	}
	return false
}
