package lease

import (
	"encoding/json"
)

// Row is one stored record as ordered column/value pairs.
type Row []Cell

// Cell is a single column of a Row.
type Cell struct {
	Column string
	Value  any
}

// Get returns the value stored under column.
func (r Row) Get(column string) (any, bool) {
	for _, c := range r {
		if c.Column == column {
			return c.Value, true
		}
	}
	return nil, false
}

// Map indexes the row by column name.
func (r Row) Map() map[string]any {
	m := make(map[string]any, len(r))
	for _, c := range r {
		m[c.Column] = c.Value
	}
	return m
}

// ExternalRecord is a lease record keyed by external field names. Nil
// pointers are NULL in storage. CurrentDate, CurrentDate1 and ValidityDate
// are recomputed on every projection.
type ExternalRecord struct {
	Site                string   `json:"site"`
	SiteID              string   `json:"site_id"`
	StoreName           *string  `json:"store_name"`
	Region              *string  `json:"region"`
	Div                 *string  `json:"div"`
	Manager             *string  `json:"manager"`
	AsstManager         *string  `json:"asst_manager"`
	Executive           *string  `json:"executive"`
	Doo                 *string  `json:"doo"`
	Sqft                *int64   `json:"sqft"`
	AgreementDate       *string  `json:"agreement_date"`
	RentPositionDate    *string  `json:"rent_position_date"`
	RentEffectiveDate   *string  `json:"rent_effective_date"`
	AgreementValidUpto  *string  `json:"agreement_valid_upto"`
	CurrentDate         string   `json:"current_date"`
	LeasePeriod         *int64   `json:"lease_period"`
	RentFreePeriodDays  *int64   `json:"rent_free_period_days"`
	RentEffectiveAmount *float64 `json:"rent_effective_amount"`
	PresentRent         *float64 `json:"present_rent"`
	HikePercentage      *float64 `json:"hike_percentage"`
	HikeYear            *int64   `json:"hike_year"`
	RentDeposit         *float64 `json:"rent_deposit"`
	OwnerName1          *string  `json:"owner_name1"`
	OwnerName2          *string  `json:"owner_name2"`
	OwnerName3          *string  `json:"owner_name3"`
	OwnerName4          *string  `json:"owner_name4"`
	OwnerName5          *string  `json:"owner_name5"`
	OwnerName6          *string  `json:"owner_name6"`
	OwnerMobile         *string  `json:"owner_mobile"`
	CurrentDate1        string   `json:"current_date1"`
	ValidityDate        string   `json:"validity_date"`
	GSTNumber           *string  `json:"gst_number"`
	PANNumber           *string  `json:"pan_number"`
	TDSPercentage       *float64 `json:"tds_percentage"`
	Mature              *string  `json:"mature"`
	Status              *string  `json:"status"`
	Remarks             *string  `json:"remarks"`

	// Extra carries columns the vocabulary does not know (ENTRY_NO and the
	// like) under their lowercased names.
	Extra map[string]any `json:"-"`
}

// MarshalJSON flattens Extra next to the named fields. Named fields win on
// a key clash.
func (r ExternalRecord) MarshalJSON() ([]byte, error) {
	type plain ExternalRecord
	base, err := json.Marshal(plain(r))
	if err != nil || len(r.Extra) == 0 {
		return base, err
	}
	merged := make(map[string]json.RawMessage, 40+len(r.Extra))
	if err := json.Unmarshal(base, &merged); err != nil {
		return nil, err
	}
	for k, v := range r.Extra {
		if _, taken := merged[k]; taken {
			continue
		}
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		merged[k] = raw
	}
	return json.Marshal(merged)
}

func (r *ExternalRecord) textSlot(column string) **string {
	switch column {
	case ColStoreName:
		return &r.StoreName
	case ColRegion:
		return &r.Region
	case ColDiv:
		return &r.Div
	case "MANAGER":
		return &r.Manager
	case "ASST.MANAGER":
		return &r.AsstManager
	case "EXECUTIVE":
		return &r.Executive
	case "D.O.O":
		return &r.Doo
	case ColAgreementDate:
		return &r.AgreementDate
	case ColRentPositionDate:
		return &r.RentPositionDate
	case "RENT EFFECTIVE DATE":
		return &r.RentEffectiveDate
	case ColAgreementValidUpto:
		return &r.AgreementValidUpto
	case ColOwnerName1:
		return &r.OwnerName1
	case "OWNER NAME-2":
		return &r.OwnerName2
	case "OWNER NAME-3":
		return &r.OwnerName3
	case "OWNER NAME-4":
		return &r.OwnerName4
	case "OWNER NAME-5":
		return &r.OwnerName5
	case "OWNER NAME-6":
		return &r.OwnerName6
	case "OWNER MOBILE NUMBER":
		return &r.OwnerMobile
	case "GST_NUMBER":
		return &r.GSTNumber
	case "PAN_NUMBER":
		return &r.PANNumber
	case "MATURE":
		return &r.Mature
	case ColStatus:
		return &r.Status
	case "REMARKS":
		return &r.Remarks
	}
	return nil
}

func (r *ExternalRecord) intSlot(column string) **int64 {
	switch column {
	case "SQ.FT":
		return &r.Sqft
	case ColLeasePeriod:
		return &r.LeasePeriod
	case "RENT_FREE_PERIOD_DAYS":
		return &r.RentFreePeriodDays
	case ColHikeYear:
		return &r.HikeYear
	}
	return nil
}

func (r *ExternalRecord) amountSlot(column string) **float64 {
	switch column {
	case "RENT EFFECTIVE AMOUNT":
		return &r.RentEffectiveAmount
	case ColPresentRent:
		return &r.PresentRent
	case "RENT DEPOSIT":
		return &r.RentDeposit
	case ColTDSPercentage:
		return &r.TDSPercentage
	}
	return nil
}

// SummaryRecord is the list-mode projection.
type SummaryRecord struct {
	SiteID         string   `json:"site_id"`
	StoreName      *string  `json:"store_name"`
	Region         *string  `json:"region"`
	Div            *string  `json:"div"`
	PresentRent    *float64 `json:"present_rent"`
	LeasePeriod    *int64   `json:"lease_period"`
	HikePercentage *float64 `json:"hike_percentage"`
	Status         *string  `json:"status"`
}

// SummaryColumns are the columns list mode selects, in order.
var SummaryColumns = []string{
	ColSite, ColStoreName, ColRegion, ColDiv, ColPresentRent, ColLeasePeriod, ColHikePercentage, ColStatus,
}

// SummaryLimit caps list mode.
const SummaryLimit = 100
