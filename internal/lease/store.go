package lease

import "context"

// Store is the row source behind the engine. Implementations return
// domain.ErrRecordNotFound for an absent site and domain.ErrDuplicateSiteCode
// when the unique key rejects an insert.
type Store interface {
	FindRow(ctx context.Context, siteCode string) (Row, error)
	ListSummaryRows(ctx context.Context, limit int) ([]Row, error)
	Exists(ctx context.Context, siteCode string) (bool, error)
	Insert(ctx context.Context, set []Assignment) error
	// Update returns the number of rows matched by siteCode.
	Update(ctx context.Context, siteCode string, set []Assignment) (int64, error)
	FilterRows(ctx context.Context, f ReportFilter) ([]Row, error)
}
