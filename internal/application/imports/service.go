package imports

import (
	"context"
	"errors"
	"io"

	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/lease"

	"github.com/rs/zerolog/log"
)

var errNoSheet = errors.New("no worksheet found")

// Service inserts spreadsheet rows for sites that do not exist yet. Existing
// sites are never modified.
type Service struct {
	Store lease.Store
}

// ImportWorkbook reads filename's first sheet and imports it.
func (s *Service) ImportWorkbook(ctx context.Context, r io.Reader, filename string) (lease.ImportResult, error) {
	table, err := ReadWorkbook(r, filename)
	if err != nil {
		return lease.ImportResult{}, err
	}
	return s.Import(ctx, table)
}

// Import processes rows in order. A failed lookup or insert stops the import
// with *domain.PartialImportError; rows before it stay committed.
func (s *Service) Import(ctx context.Context, table lease.ImportTable) (lease.ImportResult, error) {
	res := lease.ImportResult{Skipped: []lease.SkippedRow{}}
	if err := lease.ValidateHeader(table.Header); err != nil {
		return res, err
	}

	warned := false
	for i, cells := range table.Rows {
		rowNo := i + 1
		row, ignored := lease.BuildImportRow(table.Header, cells)
		if len(ignored) > 0 && !warned {
			log.Warn().Strs("columns", ignored).Msg("import ignores columns outside the lease vocabulary")
			warned = true
		}
		if len(row.Assignments) == 0 {
			continue
		}
		if row.SiteCode == "" {
			res.Skipped = append(res.Skipped, lease.SkippedRow{Row: rowNo, Reason: lease.SkipBlankSite})
			continue
		}
		if row.Invalid != "" {
			log.Debug().Int("row", rowNo).Str("site", row.SiteCode).Str("column", row.Invalid).Msg("import skips row with invalid amount")
			res.Skipped = append(res.Skipped, lease.SkippedRow{Row: rowNo, SiteCode: row.SiteCode, Reason: lease.SkipInvalid(row.Invalid)})
			continue
		}

		exists, err := s.Store.Exists(ctx, row.SiteCode)
		if err != nil {
			return res, stopped(res, rowNo, row.SiteCode, err)
		}
		if exists {
			log.Debug().Int("row", rowNo).Str("site", row.SiteCode).Msg("import skips existing site")
			res.Skipped = append(res.Skipped, lease.SkippedRow{Row: rowNo, SiteCode: row.SiteCode, Reason: lease.SkipExisting})
			continue
		}
		if err := s.Store.Insert(ctx, row.Assignments); err != nil {
			return res, stopped(res, rowNo, row.SiteCode, err)
		}
		res.Inserted++
	}
	log.Info().Int("inserted", res.Inserted).Int("skipped", len(res.Skipped)).Msg("import finished")
	return res, nil
}

func stopped(res lease.ImportResult, rowNo int, site string, err error) error {
	log.Error().Err(err).Int("row", rowNo).Str("site", site).Int("inserted", res.Inserted).Msg("import stopped")
	return &domain.PartialImportError{Inserted: res.Inserted, Row: rowNo, SiteCode: site, Err: err}
}
