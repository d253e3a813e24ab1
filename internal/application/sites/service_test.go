package sites

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"rentdesk-backend/internal/config"
	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/infrastructure/database"
	"rentdesk-backend/internal/infrastructure/store"
	"rentdesk-backend/internal/lease"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 6, 20, 10, 30, 0, 0, time.UTC)

func newService(t *testing.T) *Service {
	t.Helper()
	db, err := database.Open(&config.Config{DBDriver: "sqlite", DatabaseURL: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return &Service{Store: &store.GormLeaseStore{DB: db}, Now: func() time.Time { return fixedNow }}
}

func payload(site string) map[string]any {
	return map[string]any{
		"site_id": site, "store_name": "Anna Nagar", "region": "Chennai", "div": "South",
		"manager": "M", "asst_manager": "AM", "executive": "E", "doo": "01-04-2019", "sqft": "1200",
		"agreement_date": "2020-01-01", "rent_position_date": "15/06/2023", "rent_effective_date": "2020-02-01",
		"lease_period": 9, "rent_free_period_days": 30, "rent_effective_amount": "40,000",
		"present_rent": "₹45,000", "hike_percentage": 0.15, "hike_year": 3, "rent_deposit": "2,00,000",
		"owner_name1": "R. Kumar", "gst_number": "33ABCDE1234F1Z5", "pan_number": "ABCDE1234F",
		"tds_percentage": "10%", "mature": "NO", "status": "ACTIVE",
	}
}

func input(t *testing.T, m map[string]any) lease.SiteInput {
	t.Helper()
	raw, err := json.Marshal(m)
	require.NoError(t, err)
	var in lease.SiteInput
	require.NoError(t, json.Unmarshal(raw, &in))
	return in
}

func TestService_CreateAndGet(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	code, err := s.Create(ctx, input(t, payload("S101")))
	require.NoError(t, err)
	assert.Equal(t, "S101", code)

	rec, err := s.Get(ctx, " S101 ")
	require.NoError(t, err)
	assert.Equal(t, "S101", rec.Site)
	assert.Equal(t, "S101", rec.SiteID)
	require.NotNil(t, rec.PresentRent)
	assert.Equal(t, 45000.0, *rec.PresentRent)
	require.NotNil(t, rec.HikePercentage)
	assert.Equal(t, 15.0, *rec.HikePercentage)
	require.NotNil(t, rec.RentPositionDate)
	assert.Equal(t, "15-06-2023", *rec.RentPositionDate)
	assert.Equal(t, "1 Years, 0 Months, 5 Days", rec.CurrentDate1)
	assert.Nil(t, rec.AgreementValidUpto)
}

func TestService_CreateRejects(t *testing.T) {
	s := newService(t)
	ctx := context.Background()
	_, err := s.Create(ctx, input(t, payload("S1")))
	require.NoError(t, err)

	_, err = s.Create(ctx, input(t, payload("S1")))
	assert.ErrorIs(t, err, domain.ErrDuplicateSiteCode)
	assert.Equal(t, "Site ID S1 already exists", err.Error())

	m := payload("S2")
	delete(m, "status")
	_, err = s.Create(ctx, input(t, m))
	assert.ErrorIs(t, err, domain.ErrMissingRequiredField)

	m = payload("S2")
	m["pan_number"] = "12345"
	_, err = s.Create(ctx, input(t, m))
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "pan_number", verr.Field)

	_, err = s.Create(ctx, input(t, payload("TOO LONG CODE")))
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "site_id", verr.Field)

	ok, err := s.Store.Exists(ctx, "S2")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestService_Update(t *testing.T) {
	s := newService(t)
	ctx := context.Background()
	_, err := s.Create(ctx, input(t, payload("S1")))
	require.NoError(t, err)

	res, err := s.Update(ctx, "S1", input(t, map[string]any{
		"asst_manager":    "Priya",
		"sqft":            "abc",
		"hike_percentage": "0.2",
		"current_date":    "01-01-2024",
		"site_id":         "S9",
	}))
	require.NoError(t, err)
	assert.Equal(t, []string{"asst_manager", "hike_percentage"}, res.Updated)
	require.Len(t, res.Dropped, 1)
	assert.Equal(t, "sqft", res.Dropped[0].Field)

	rec, err := s.Get(ctx, "S1")
	require.NoError(t, err)
	require.NotNil(t, rec.AsstManager)
	assert.Equal(t, "Priya", *rec.AsstManager)
	require.NotNil(t, rec.HikePercentage)
	assert.Equal(t, 20.0, *rec.HikePercentage)
	require.NotNil(t, rec.Sqft)
	assert.Equal(t, int64(1200), *rec.Sqft)

	// Rewriting the same value still matches the row.
	_, err = s.Update(ctx, "S1", input(t, map[string]any{"asst_manager": "Priya"}))
	assert.NoError(t, err)
}

func TestService_UpdateErrors(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	_, err := s.Update(ctx, "S404", input(t, map[string]any{"region": "Madurai"}))
	assert.ErrorIs(t, err, domain.ErrRecordNotFound)

	_, err = s.Update(ctx, "S404", input(t, map[string]any{"current_date1": "x", "sqft": "n/a"}))
	assert.ErrorIs(t, err, domain.ErrNoFieldsToUpdate)

	_, err = s.Update(ctx, "  ", input(t, map[string]any{"region": "Madurai"}))
	assert.ErrorIs(t, err, domain.ErrMissingRequiredField)
}

func TestService_GetNotFound(t *testing.T) {
	s := newService(t)
	_, err := s.Get(context.Background(), "S404")
	assert.ErrorIs(t, err, domain.ErrRecordNotFound)
}

func TestService_List(t *testing.T) {
	s := newService(t)
	ctx := context.Background()
	for _, code := range []string{"S1", "S2", "S3"} {
		_, err := s.Create(ctx, input(t, payload(code)))
		require.NoError(t, err)
	}
	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "S1", list[0].SiteID)
	require.NotNil(t, list[2].HikePercentage)
	assert.Equal(t, 15.0, *list[2].HikePercentage)
}

type failingStore struct {
	lease.Store
	err error
}

func (f failingStore) FindRow(context.Context, string) (lease.Row, error)     { return nil, f.err }
func (f failingStore) ListSummaryRows(context.Context, int) ([]lease.Row, error) { return nil, f.err }

func TestService_StorageFault(t *testing.T) {
	boom := errors.New("connection reset")
	s := &Service{Store: failingStore{err: boom}}
	_, err := s.Get(context.Background(), "S1")
	assert.ErrorIs(t, err, boom)
	_, err = s.List(context.Background())
	assert.ErrorIs(t, err, boom)
}
