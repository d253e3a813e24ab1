package lease

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"rentdesk-backend/internal/domain"
)

// ReportType selects a report shape. The values are the labels the UI sends.
type ReportType string

const (
	ReportHike        ReportType = "Hike Report"
	ReportRent        ReportType = "Rent Report"
	ReportOwnerWise   ReportType = "Owner Wise Report"
	ReportNegotiation ReportType = "Negotiation Report"
	ReportLeasePeriod ReportType = "Lease Period Report"
	ReportAllSites    ReportType = "ALL SITES DATA REPORTS"
)

// ReportTypes lists every report in menu order.
func ReportTypes() []ReportType {
	return []ReportType{ReportHike, ReportRent, ReportOwnerWise, ReportNegotiation, ReportLeasePeriod, ReportAllSites}
}

// ParseReportType rejects labels outside the fixed set.
func ParseReportType(s string) (ReportType, error) {
	t := ReportType(strings.TrimSpace(s))
	if _, ok := reports[t]; !ok {
		return "", &domain.ValidationError{Kind: domain.ErrUnknownReportType, Field: "type"}
	}
	return t, nil
}

// HikeCycleDays is the fixed length of a hike period. Hike dates are counted
// in whole cycles from the agreement date, not calendar years.
const HikeCycleDays = 365

// ReportFilter is an inclusive agreement-date window with an optional lease
// period match.
type ReportFilter struct {
	From        time.Time
	To          time.Time
	LeasePeriod *int64
}

// NewReportFilter parses the raw query values. Dates go through the date
// normalizer; from must not be after to.
func NewReportFilter(from, to, leasePeriod string) (ReportFilter, error) {
	var f ReportFilter
	var err error
	if f.From, err = ParseDate(from); err != nil {
		return f, &domain.ValidationError{Kind: domain.ErrInvalidDateRange, Field: "from_date", Reason: "unparsable date"}
	}
	if f.To, err = ParseDate(to); err != nil {
		return f, &domain.ValidationError{Kind: domain.ErrInvalidDateRange, Field: "to_date", Reason: "unparsable date"}
	}
	if f.From.After(f.To) {
		return f, &domain.ValidationError{Kind: domain.ErrInvalidDateRange, Field: "from_date", Reason: "after to_date"}
	}
	if lp := strings.TrimSpace(leasePeriod); lp != "" {
		n, err := strconv.ParseInt(lp, 10, 64)
		if err != nil {
			return f, domain.InvalidField("lease_period", "not a whole number")
		}
		f.LeasePeriod = &n
	}
	return f, nil
}

// ReportRow is one line of a report. Values follow the report's Columns.
type ReportRow interface {
	Values() []any
}

type reportDef struct {
	columns []string
	build   func(v map[string]any, today time.Time) ReportRow
}

var reports = map[ReportType]reportDef{
	ReportHike: {
		columns: []string{"site_id", "owner_name", "present_rent", "hike_percentage", "hike_year", "last_hike", "next_hike", "amount"},
		build:   hikeRow,
	},
	ReportRent: {
		columns: []string{"site_id", "present_rent", "tds_percentage", "net", "jan_2023", "feb_2023", "mar_2023", "apr_2023"},
		build:   rentRow,
	},
	ReportOwnerWise: {
		columns: []string{"site_id", "owner_name", "current_date", "agreement_date", "agreement_valid_upto"},
		build:   ownerRow,
	},
	ReportNegotiation: {
		columns: []string{"site_id", "old_hike_percentage", "new_hike_percentage", "old_lease_period", "new_lease_period", "old_present_rent", "new_present_rent"},
		build:   negotiationRow,
	},
	ReportLeasePeriod: {
		columns: []string{"site_id", "lease_period", "hike_percentage", "present_rent", "agreement_valid_upto"},
		build:   leasePeriodRow,
	},
	ReportAllSites: {
		columns: []string{"site_id", "store_name", "region", "div", "status", "present_rent", "lease_period", "hike_percentage"},
		build:   allSitesRow,
	},
}

// Columns returns the field names of t's rows, in order.
func (t ReportType) Columns() []string {
	return append([]string(nil), reports[t].columns...)
}

// BuildReport projects filtered rows into report t. Stored values are read,
// never modified.
func BuildReport(t ReportType, rows []Row, today time.Time) ([]ReportRow, error) {
	def, ok := reports[t]
	if !ok {
		return nil, &domain.ValidationError{Kind: domain.ErrUnknownReportType, Field: "type"}
	}
	today = dateOf(today)
	out := make([]ReportRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, def.build(r.Map(), today))
	}
	return out, nil
}

type HikeRow struct {
	SiteID         string  `json:"site_id"`
	OwnerName      *string `json:"owner_name"`
	PresentRent    float64 `json:"present_rent"`
	HikePercentage float64 `json:"hike_percentage"`
	HikeYear       int64   `json:"hike_year"`
	LastHike       string  `json:"last_hike"`
	NextHike       string  `json:"next_hike"`
	Amount         float64 `json:"amount"`
}

func (r HikeRow) Values() []any {
	return []any{r.SiteID, deref(r.OwnerName), r.PresentRent, r.HikePercentage, r.HikeYear, r.LastHike, r.NextHike, r.Amount}
}

func hikeRow(v map[string]any, _ time.Time) ReportRow {
	rent := amountOf(v[ColPresentRent])
	hike := hikeOf(v[ColHikePercentage])
	cycles := intOf(v[ColHikeYear])
	row := HikeRow{
		SiteID:         asText(v[ColSite]),
		OwnerName:      projectText(v[ColOwnerName1]),
		PresentRent:    money(rent),
		HikePercentage: money(hike),
		HikeYear:       cycles,
		Amount:         money(rent.Mul(decimal.NewFromInt(1).Add(hike.Div(hundred)))),
	}
	if agreed, err := ParseDate(v[ColAgreementDate]); err == nil {
		row.LastHike = FormatDisplay(agreed.AddDate(0, 0, int(cycles*HikeCycleDays)))
		row.NextHike = FormatDisplay(agreed.AddDate(0, 0, int((cycles+1)*HikeCycleDays)))
	}
	return row
}

type RentRow struct {
	SiteID        string  `json:"site_id"`
	PresentRent   float64 `json:"present_rent"`
	TDSPercentage float64 `json:"tds_percentage"`
	Net           float64 `json:"net"`
	Jan2023       float64 `json:"jan_2023"`
	Feb2023       float64 `json:"feb_2023"`
	Mar2023       float64 `json:"mar_2023"`
	Apr2023       float64 `json:"apr_2023"`
}

func (r RentRow) Values() []any {
	return []any{r.SiteID, r.PresentRent, r.TDSPercentage, r.Net, r.Jan2023, r.Feb2023, r.Mar2023, r.Apr2023}
}

func rentRow(v map[string]any, _ time.Time) ReportRow {
	rent := amountOf(v[ColPresentRent])
	tds := amountOf(v[ColTDSPercentage])
	present := money(rent)
	return RentRow{
		SiteID:        asText(v[ColSite]),
		PresentRent:   present,
		TDSPercentage: money(tds),
		Net:           money(rent.Mul(decimal.NewFromInt(1).Sub(tds.Div(hundred)))),
		Jan2023:       present,
		Feb2023:       present,
		Mar2023:       present,
		Apr2023:       present,
	}
}

type OwnerRow struct {
	SiteID             string  `json:"site_id"`
	OwnerName          *string `json:"owner_name"`
	CurrentDate        string  `json:"current_date"`
	AgreementDate      *string `json:"agreement_date"`
	AgreementValidUpto *string `json:"agreement_valid_upto"`
}

func (r OwnerRow) Values() []any {
	return []any{r.SiteID, deref(r.OwnerName), r.CurrentDate, deref(r.AgreementDate), deref(r.AgreementValidUpto)}
}

func ownerRow(v map[string]any, today time.Time) ReportRow {
	agreed, _ := projectDate(v[ColAgreementDate])
	validUpto, _ := projectDate(v[ColAgreementValidUpto])
	return OwnerRow{
		SiteID:             asText(v[ColSite]),
		OwnerName:          projectText(v[ColOwnerName1]),
		CurrentDate:        FormatDisplay(today),
		AgreementDate:      agreed,
		AgreementValidUpto: validUpto,
	}
}

// NegotiationRow pairs current terms with a fixed illustrative proposal:
// two more hike points, one more lease year and ten percent more rent.
type NegotiationRow struct {
	SiteID            string  `json:"site_id"`
	OldHikePercentage float64 `json:"old_hike_percentage"`
	NewHikePercentage float64 `json:"new_hike_percentage"`
	OldLeasePeriod    int64   `json:"old_lease_period"`
	NewLeasePeriod    int64   `json:"new_lease_period"`
	OldPresentRent    float64 `json:"old_present_rent"`
	NewPresentRent    float64 `json:"new_present_rent"`
}

func (r NegotiationRow) Values() []any {
	return []any{r.SiteID, r.OldHikePercentage, r.NewHikePercentage, r.OldLeasePeriod, r.NewLeasePeriod, r.OldPresentRent, r.NewPresentRent}
}

var (
	negotiationHikeStep  = decimal.NewFromInt(2)
	negotiationRentRatio = decimal.RequireFromString("1.1")
)

func negotiationRow(v map[string]any, _ time.Time) ReportRow {
	hike := hikeOf(v[ColHikePercentage])
	rent := amountOf(v[ColPresentRent])
	period := intOf(v[ColLeasePeriod])
	return NegotiationRow{
		SiteID:            asText(v[ColSite]),
		OldHikePercentage: money(hike),
		NewHikePercentage: money(hike.Add(negotiationHikeStep)),
		OldLeasePeriod:    period,
		NewLeasePeriod:    period + 1,
		OldPresentRent:    money(rent),
		NewPresentRent:    money(rent.Mul(negotiationRentRatio)),
	}
}

type LeasePeriodRow struct {
	SiteID             string  `json:"site_id"`
	LeasePeriod        int64   `json:"lease_period"`
	HikePercentage     float64 `json:"hike_percentage"`
	PresentRent        float64 `json:"present_rent"`
	AgreementValidUpto *string `json:"agreement_valid_upto"`
}

func (r LeasePeriodRow) Values() []any {
	return []any{r.SiteID, r.LeasePeriod, r.HikePercentage, r.PresentRent, deref(r.AgreementValidUpto)}
}

func leasePeriodRow(v map[string]any, _ time.Time) ReportRow {
	validUpto, _ := projectDate(v[ColAgreementValidUpto])
	return LeasePeriodRow{
		SiteID:             asText(v[ColSite]),
		LeasePeriod:        intOf(v[ColLeasePeriod]),
		HikePercentage:     money(hikeOf(v[ColHikePercentage])),
		PresentRent:        money(amountOf(v[ColPresentRent])),
		AgreementValidUpto: validUpto,
	}
}

type AllSitesRow struct {
	SiteID         string  `json:"site_id"`
	StoreName      *string `json:"store_name"`
	Region         *string `json:"region"`
	Div            *string `json:"div"`
	Status         *string `json:"status"`
	PresentRent    float64 `json:"present_rent"`
	LeasePeriod    int64   `json:"lease_period"`
	HikePercentage float64 `json:"hike_percentage"`
}

func (r AllSitesRow) Values() []any {
	return []any{r.SiteID, deref(r.StoreName), deref(r.Region), deref(r.Div), deref(r.Status), r.PresentRent, r.LeasePeriod, r.HikePercentage}
}

func allSitesRow(v map[string]any, _ time.Time) ReportRow {
	return AllSitesRow{
		SiteID:         asText(v[ColSite]),
		StoreName:      projectText(v[ColStoreName]),
		Region:         projectText(v[ColRegion]),
		Div:            projectText(v[ColDiv]),
		Status:         projectText(v[ColStatus]),
		PresentRent:    money(amountOf(v[ColPresentRent])),
		LeasePeriod:    intOf(v[ColLeasePeriod]),
		HikePercentage: money(hikeOf(v[ColHikePercentage])),
	}
}

func intOf(v any) int64 {
	if n := projectInt(v); n != nil {
		return *n
	}
	return 0
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
