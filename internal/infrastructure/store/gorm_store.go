package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/lease"

	"gorm.io/gorm"
)

// GormLeaseStore reads and writes RENTDETAILS through raw statements. The
// legacy column names ("ASST.MANAGER", "HIKE %") are quoted by the lease
// vocabulary because gorm's own quoting splits names on dots.
type GormLeaseStore struct {
	DB *gorm.DB
}

var _ lease.Store = (*GormLeaseStore)(nil)

var (
	siteCol      = lease.Column{Name: lease.ColSite}.Quoted()
	agreementCol = lease.Column{Name: lease.ColAgreementDate}.Quoted()
	leaseCol     = lease.Column{Name: lease.ColLeasePeriod}.Quoted()
)

func (s *GormLeaseStore) FindRow(ctx context.Context, siteCode string) (lease.Row, error) {
	q := fmt.Sprintf("SELECT * FROM %s WHERE %s = ? LIMIT 1", lease.Table, siteCol)
	rows, err := s.query(ctx, q, siteCode)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, domain.ErrRecordNotFound
	}
	return rows[0], nil
}

func (s *GormLeaseStore) ListSummaryRows(ctx context.Context, limit int) ([]lease.Row, error) {
	cols := make([]string, len(lease.SummaryColumns))
	for i, c := range lease.SummaryColumns {
		cols[i] = lease.Column{Name: c}.Quoted()
	}
	q := fmt.Sprintf("SELECT %s FROM %s ORDER BY ENTRY_NO LIMIT ?", strings.Join(cols, ", "), lease.Table)
	return s.query(ctx, q, limit)
}

func (s *GormLeaseStore) Exists(ctx context.Context, siteCode string) (bool, error) {
	var n int64
	q := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE %s = ?", lease.Table, siteCol)
	if err := s.DB.WithContext(ctx).Raw(q, siteCode).Scan(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *GormLeaseStore) Insert(ctx context.Context, set []lease.Assignment) error {
	if len(set) == 0 {
		return domain.ErrNoFieldsToUpdate
	}
	cols := make([]string, len(set))
	marks := make([]string, len(set))
	args := make([]any, len(set))
	for i, a := range set {
		cols[i] = a.Column.Quoted()
		marks[i] = "?"
		args[i] = a.Value
	}
	q := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", lease.Table, strings.Join(cols, ", "), strings.Join(marks, ", "))
	err := s.DB.WithContext(ctx).Exec(q, args...).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return &domain.DuplicateSiteError{SiteCode: siteOf(set)}
	}
	return err
}

func (s *GormLeaseStore) Update(ctx context.Context, siteCode string, set []lease.Assignment) (int64, error) {
	if len(set) == 0 {
		return 0, domain.ErrNoFieldsToUpdate
	}
	assigns := make([]string, len(set))
	args := make([]any, 0, len(set)+1)
	for i, a := range set {
		assigns[i] = a.Column.Quoted() + " = ?"
		args = append(args, a.Value)
	}
	args = append(args, siteCode)
	q := fmt.Sprintf("UPDATE %s SET %s WHERE %s = ?", lease.Table, strings.Join(assigns, ", "), siteCol)
	res := s.DB.WithContext(ctx).Exec(q, args...)
	return res.RowsAffected, res.Error
}

func (s *GormLeaseStore) FilterRows(ctx context.Context, f lease.ReportFilter) ([]lease.Row, error) {
	q := fmt.Sprintf("SELECT * FROM %s WHERE %s BETWEEN ? AND ?", lease.Table, agreementCol)
	args := []any{lease.FormatStorage(f.From), lease.FormatStorage(f.To)}
	if f.LeasePeriod != nil {
		q += fmt.Sprintf(" AND %s = ?", leaseCol)
		args = append(args, *f.LeasePeriod)
	}
	q += " ORDER BY " + siteCol
	return s.query(ctx, q, args...)
}

// query runs a raw SELECT and returns ordered rows. The cursor is drained
// and closed before returning.
func (s *GormLeaseStore) query(ctx context.Context, q string, args ...any) ([]lease.Row, error) {
	rows, err := s.DB.WithContext(ctx).Raw(q, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRows(rows)
}

func scanRows(rows *sql.Rows) ([]lease.Row, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	var out []lease.Row
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		row := make(lease.Row, len(cols))
		for i, c := range cols {
			row[i] = lease.Cell{Column: c, Value: normalize(vals[i])}
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// normalize detaches driver buffers and widens floats.
func normalize(v any) any {
	switch t := v.(type) {
	case []byte:
		return string(t)
	case float32:
		return float64(t)
	case int32:
		return int64(t)
	}
	return v
}

func siteOf(set []lease.Assignment) string {
	for _, a := range set {
		if a.Column.Name == lease.ColSite {
			return fmt.Sprint(a.Value)
		}
	}
	return ""
}
