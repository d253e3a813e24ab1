package lease

import (
	"strings"
)

// Kind is the storage type of a lease column.
type Kind int

const (
	KindText Kind = iota
	KindInt
	KindDecimal
	KindDate
)

// Table is the legacy relation holding one row per site.
const Table = "RENTDETAILS"

// Canonical names the projector and report engine look up directly.
const (
	ColSite               = "SITE"
	ColStoreName          = "STORE NAME"
	ColRegion             = "REGION"
	ColDiv                = "DIV"
	ColAgreementDate      = "AGREEMENT DATE"
	ColRentPositionDate   = "RENT POSITION DATE"
	ColAgreementValidUpto = "AGREEMENT VALID UPTO"
	ColCurrentDate        = "CURRENT DATE"
	ColLeasePeriod        = "LEASE PERIOD"
	ColPresentRent        = "PRESENT RENT"
	ColHikePercentage     = "HIKE %"
	ColHikeYear           = "HIKE YEAR"
	ColOwnerName1         = "OWNER NAME-1"
	ColTDSPercentage      = "TDS_PERCENTAGE"
	ColStatus             = "STATUS"
)

// Field describes one persisted attribute and its external name.
type Field struct {
	Column   string // storage-side name, exactly as in RENTDETAILS
	External string // name used in projected records
	Input    string // name accepted on inbound payloads
	Kind     Kind
	Required bool // mandatory on insert and in import headers
	// Transient fields are recomputed on every read and never written.
	Transient bool
}

var fields = []Field{
	{Column: ColSite, External: "site", Input: "site_id", Required: true},
	{Column: ColStoreName, External: "store_name", Required: true},
	{Column: ColRegion, External: "region", Required: true},
	{Column: ColDiv, External: "div", Required: true},
	{Column: "MANAGER", External: "manager", Required: true},
	{Column: "ASST.MANAGER", External: "asst_manager", Required: true},
	{Column: "EXECUTIVE", External: "executive", Required: true},
	{Column: "D.O.O", External: "doo", Kind: KindDate, Required: true},
	{Column: "SQ.FT", External: "sqft", Kind: KindInt, Required: true},
	{Column: ColAgreementDate, External: "agreement_date", Kind: KindDate, Required: true},
	{Column: ColRentPositionDate, External: "rent_position_date", Kind: KindDate, Required: true},
	{Column: "RENT EFFECTIVE DATE", External: "rent_effective_date", Kind: KindDate, Required: true},
	{Column: ColAgreementValidUpto, External: "agreement_valid_upto", Kind: KindDate},
	{Column: ColCurrentDate, External: "current_date", Kind: KindDate, Transient: true},
	{Column: ColLeasePeriod, External: "lease_period", Kind: KindInt, Required: true},
	{Column: "RENT_FREE_PERIOD_DAYS", External: "rent_free_period_days", Kind: KindInt, Required: true},
	{Column: "RENT EFFECTIVE AMOUNT", External: "rent_effective_amount", Kind: KindDecimal, Required: true},
	{Column: ColPresentRent, External: "present_rent", Kind: KindDecimal, Required: true},
	{Column: ColHikePercentage, External: "hike_percentage", Kind: KindDecimal, Required: true},
	{Column: ColHikeYear, External: "hike_year", Kind: KindInt, Required: true},
	{Column: "RENT DEPOSIT", External: "rent_deposit", Kind: KindDecimal, Required: true},
	{Column: ColOwnerName1, External: "owner_name1", Required: true},
	{Column: "OWNER NAME-2", External: "owner_name2"},
	{Column: "OWNER NAME-3", External: "owner_name3"},
	{Column: "OWNER NAME-4", External: "owner_name4"},
	{Column: "OWNER NAME-5", External: "owner_name5"},
	{Column: "OWNER NAME-6", External: "owner_name6"},
	{Column: "OWNER MOBILE NUMBER", External: "owner_mobile"},
	{Column: "CURRENT DATE 1", External: "current_date1", Transient: true},
	{Column: "VALIDITY DATE", External: "validity_date", Transient: true},
	{Column: "GST_NUMBER", External: "gst_number", Required: true},
	{Column: "PAN_NUMBER", External: "pan_number", Required: true},
	{Column: ColTDSPercentage, External: "tds_percentage", Kind: KindDecimal, Required: true},
	{Column: "MATURE", External: "mature", Required: true},
	{Column: ColStatus, External: "status", Required: true},
	{Column: "REMARKS", External: "remarks"},
}

var (
	byColumn = make(map[string]Field, len(fields))
	byInput  = make(map[string]Field, len(fields))
)

func init() {
	for i := range fields {
		f := &fields[i]
		if f.Input == "" {
			f.Input = f.External
		}
		byColumn[f.Column] = *f
		if !f.Transient {
			byInput[f.Input] = *f
		}
	}
}

// Fields returns the vocabulary in storage order.
func Fields() []Field {
	out := make([]Field, len(fields))
	copy(out, fields)
	return out
}

// FieldByColumn looks up a canonical column name.
func FieldByColumn(column string) (Field, bool) {
	f, ok := byColumn[column]
	return f, ok
}

// ToExternal maps a canonical column name to its external name. Unknown
// columns fall back to their lowercased name.
func ToExternal(column string) string {
	if f, ok := byColumn[column]; ok {
		return f.External
	}
	return strings.ToLower(column)
}

// ToCanonical maps an inbound external name to its storage column. Unknown
// and transient names report false; callers reject them.
func ToCanonical(external string) (Column, bool) {
	f, ok := byInput[external]
	if !ok {
		return Column{}, false
	}
	return Column{Name: f.Column}, true
}

// RequiredColumns lists the columns every insert and import header must carry.
func RequiredColumns() []string {
	var out []string
	for _, f := range fields {
		if f.Required {
			out = append(out, f.Column)
		}
	}
	return out
}

// Column is a storage identifier.
type Column struct {
	Name string
}

// reserved holds bare words MySQL refuses as identifiers in this schema.
var reserved = map[string]bool{
	"DIV": true,
}

// Quoted returns the identifier ready to embed in SQL. Names with spaces,
// punctuation or reserved words are backtick-quoted.
func (c Column) Quoted() string {
	if !needsQuoting(c.Name) {
		return c.Name
	}
	return "`" + strings.ReplaceAll(c.Name, "`", "``") + "`"
}

func (c Column) String() string {
	return c.Name
}

func needsQuoting(name string) bool {
	if name == "" || reserved[strings.ToUpper(name)] {
		return true
	}
	for i, r := range name {
		switch {
		case r == '_':
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return true
		}
	}
	return false
}
