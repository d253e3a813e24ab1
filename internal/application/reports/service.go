package reports

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"rentdesk-backend/internal/lease"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"
)

type Service struct {
	Store lease.Store
	Now   func() time.Time
}

// Report is a built report ready for JSON or spreadsheet output.
type Report struct {
	Type    lease.ReportType  `json:"type"`
	Columns []string          `json:"columns"`
	Rows    []lease.ReportRow `json:"rows"`
	Count   int               `json:"count"`
}

// Run validates the query, reads matching rows and builds the report.
// The report type is checked before the date range.
func (s *Service) Run(ctx context.Context, reportType, from, to, leasePeriod string) (Report, error) {
	t, err := lease.ParseReportType(reportType)
	if err != nil {
		return Report{}, err
	}
	filter, err := lease.NewReportFilter(from, to, leasePeriod)
	if err != nil {
		return Report{}, err
	}
	rows, err := s.Store.FilterRows(ctx, filter)
	if err != nil {
		log.Error().Err(err).Str("report", string(t)).Msg("report query failed")
		return Report{}, err
	}
	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}
	built, err := lease.BuildReport(t, rows, lease.Today(now))
	if err != nil {
		return Report{}, err
	}
	return Report{Type: t, Columns: t.Columns(), Rows: built, Count: len(built)}, nil
}

// Filename is the download name for r.
func Filename(r Report) string {
	name := strings.ToLower(strings.Join(strings.Fields(string(r.Type)), "_"))
	return name + ".xlsx"
}

// Export writes r as a single-sheet workbook with a header row.
func Export(w io.Writer, r Report) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := sheetName(r.Type)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}
	header := r.Columns
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	for i, row := range r.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := row.Values()
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("row %d: %w", i+1, err)
		}
	}
	_, err := f.WriteTo(w)
	return err
}

// Sheet names are capped at 31 characters.
func sheetName(t lease.ReportType) string {
	name := string(t)
	if len(name) > 31 {
		name = name[:31]
	}
	return name
}
