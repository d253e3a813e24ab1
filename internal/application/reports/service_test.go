package reports

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"rentdesk-backend/internal/config"
	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/infrastructure/database"
	"rentdesk-backend/internal/infrastructure/store"
	"rentdesk-backend/internal/lease"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func newService(t *testing.T) *Service {
	t.Helper()
	db, err := database.Open(&config.Config{DBDriver: "sqlite", DatabaseURL: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	st := &store.GormLeaseStore{DB: db}
	ctx := context.Background()
	require.NoError(t, st.Insert(ctx, site("S1", "2020-01-01", 9, "10000")))
	require.NoError(t, st.Insert(ctx, site("S2", "2020-07-15", 5, "20000")))
	require.NoError(t, st.Insert(ctx, site("S3", "2022-03-01", 9, "30000")))
	return &Service{Store: st, Now: func() time.Time { return time.Date(2024, 6, 20, 15, 0, 0, 0, time.UTC) }}
}

func site(code, agreement string, leasePeriod int64, rent string) []lease.Assignment {
	col := func(name string) lease.Column { return lease.Column{Name: name} }
	return []lease.Assignment{
		{Column: col(lease.ColSite), Value: code},
		{Column: col(lease.ColStoreName), Value: "Store " + code},
		{Column: col(lease.ColRegion), Value: "Chennai"},
		{Column: col(lease.ColDiv), Value: "South"},
		{Column: col(lease.ColAgreementDate), Value: agreement},
		{Column: col(lease.ColAgreementValidUpto), Value: "2029-12-31"},
		{Column: col(lease.ColLeasePeriod), Value: leasePeriod},
		{Column: col(lease.ColPresentRent), Value: decimal.RequireFromString(rent)},
		{Column: col(lease.ColHikePercentage), Value: decimal.NewFromInt(5)},
		{Column: col(lease.ColHikeYear), Value: int64(2)},
		{Column: col(lease.ColOwnerName1), Value: "Owner " + code},
		{Column: col(lease.ColTDSPercentage), Value: decimal.NewFromInt(10)},
		{Column: col(lease.ColStatus), Value: "ACTIVE"},
		{Column: col("MANAGER"), Value: "M"},
		{Column: col("ASST.MANAGER"), Value: "AM"},
		{Column: col("EXECUTIVE"), Value: "E"},
		{Column: col("D.O.O"), Value: "2019-04-01"},
		{Column: col("SQ.FT"), Value: int64(1200)},
		{Column: col(lease.ColRentPositionDate), Value: "2023-06-15"},
		{Column: col("RENT EFFECTIVE DATE"), Value: agreement},
		{Column: col("RENT_FREE_PERIOD_DAYS"), Value: int64(30)},
		{Column: col("RENT EFFECTIVE AMOUNT"), Value: decimal.RequireFromString(rent)},
		{Column: col("RENT DEPOSIT"), Value: decimal.NewFromInt(100000)},
		{Column: col("GST_NUMBER"), Value: "33ABCDE1234F1Z5"},
		{Column: col("PAN_NUMBER"), Value: "ABCDE1234F"},
		{Column: col("MATURE"), Value: "NO"},
	}
}

func TestRun_HikeReport(t *testing.T) {
	s := newService(t)
	rep, err := s.Run(context.Background(), "Hike Report", "01-01-2020", "2020-12-31", "")
	require.NoError(t, err)
	require.Equal(t, 2, rep.Count)
	assert.Equal(t, lease.ReportHike.Columns(), rep.Columns)

	first := rep.Rows[0].(lease.HikeRow)
	assert.Equal(t, "S1", first.SiteID)
	assert.Equal(t, "31-12-2021", first.LastHike)
	assert.Equal(t, "31-12-2022", first.NextHike)
	assert.Equal(t, 10500.0, first.Amount)
}

func TestRun_LeasePeriodFilter(t *testing.T) {
	s := newService(t)
	rep, err := s.Run(context.Background(), "Lease Period Report", "2019-01-01", "2023-01-01", "9")
	require.NoError(t, err)
	require.Equal(t, 2, rep.Count)
	assert.Equal(t, "S1", rep.Rows[0].(lease.LeasePeriodRow).SiteID)
	assert.Equal(t, "S3", rep.Rows[1].(lease.LeasePeriodRow).SiteID)
}

func TestRun_OwnerWiseStampsToday(t *testing.T) {
	s := newService(t)
	rep, err := s.Run(context.Background(), "Owner Wise Report", "2020-01-01", "2020-01-31", "")
	require.NoError(t, err)
	require.Equal(t, 1, rep.Count)
	row := rep.Rows[0].(lease.OwnerRow)
	assert.Equal(t, "20-06-2024", row.CurrentDate)
	require.NotNil(t, row.AgreementValidUpto)
	assert.Equal(t, "31-12-2029", *row.AgreementValidUpto)
}

func TestRun_Rejects(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	_, err := s.Run(ctx, "Weekly Report", "2020-01-01", "2020-12-31", "")
	assert.ErrorIs(t, err, domain.ErrUnknownReportType)

	// Type is checked before dates.
	_, err = s.Run(ctx, "Weekly Report", "garbage", "", "")
	assert.ErrorIs(t, err, domain.ErrUnknownReportType)

	_, err = s.Run(ctx, "Rent Report", "2021-01-01", "2020-01-01", "")
	assert.ErrorIs(t, err, domain.ErrInvalidDateRange)

	_, err = s.Run(ctx, "Rent Report", "2020-01-01", "2021-01-01", "nine")
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "lease_period", verr.Field)
}

func TestRun_EmptyRange(t *testing.T) {
	s := newService(t)
	rep, err := s.Run(context.Background(), "ALL SITES DATA REPORTS", "2010-01-01", "2010-12-31", "")
	require.NoError(t, err)
	assert.Equal(t, 0, rep.Count)
	assert.Empty(t, rep.Rows)
}

func TestExport_WritesWorkbook(t *testing.T) {
	s := newService(t)
	rep, err := s.Run(context.Background(), "Rent Report", "2020-01-01", "2020-12-31", "")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, rep))
	assert.Equal(t, "rent_report.xlsx", Filename(rep))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	assert.Equal(t, "Rent Report", f.GetSheetName(0))
	rows, err := f.GetRows("Rent Report")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, lease.ReportRent.Columns(), rows[0])
	assert.Equal(t, "S1", rows[1][0])
	assert.Equal(t, "9000", rows[1][3])
}
