package lease

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"rentdesk-backend/internal/domain"
)

// Supplied is one inbound field. Present is false when the key was absent;
// a JSON null is Present with a nil Value.
type Supplied struct {
	Value   any
	Present bool
}

// Set reports whether the field carries a usable value.
func (s Supplied) Set() bool {
	return s.Present && s.Value != nil
}

// Supply wraps a value as a present field.
func Supply(v any) Supplied {
	return Supplied{Value: v, Present: true}
}

// SiteInput is an inbound insert or partial update keyed by external names.
// CurrentDate, CurrentDate1 and ValidityDate are accepted for compatibility
// and never written.
type SiteInput struct {
	SiteID              Supplied `json:"site_id"`
	StoreName           Supplied `json:"store_name"`
	Region              Supplied `json:"region"`
	Div                 Supplied `json:"div"`
	Manager             Supplied `json:"manager"`
	AsstManager         Supplied `json:"asst_manager"`
	Executive           Supplied `json:"executive"`
	Doo                 Supplied `json:"doo"`
	Sqft                Supplied `json:"sqft"`
	AgreementDate       Supplied `json:"agreement_date"`
	RentPositionDate    Supplied `json:"rent_position_date"`
	RentEffectiveDate   Supplied `json:"rent_effective_date"`
	AgreementValidUpto  Supplied `json:"agreement_valid_upto"`
	CurrentDate         Supplied `json:"current_date"`
	LeasePeriod         Supplied `json:"lease_period"`
	RentFreePeriodDays  Supplied `json:"rent_free_period_days"`
	RentEffectiveAmount Supplied `json:"rent_effective_amount"`
	PresentRent         Supplied `json:"present_rent"`
	HikePercentage      Supplied `json:"hike_percentage"`
	HikeYear            Supplied `json:"hike_year"`
	RentDeposit         Supplied `json:"rent_deposit"`
	OwnerName1          Supplied `json:"owner_name1"`
	OwnerName2          Supplied `json:"owner_name2"`
	OwnerName3          Supplied `json:"owner_name3"`
	OwnerName4          Supplied `json:"owner_name4"`
	OwnerName5          Supplied `json:"owner_name5"`
	OwnerName6          Supplied `json:"owner_name6"`
	OwnerMobile         Supplied `json:"owner_mobile"`
	CurrentDate1        Supplied `json:"current_date1"`
	ValidityDate        Supplied `json:"validity_date"`
	GSTNumber           Supplied `json:"gst_number"`
	PANNumber           Supplied `json:"pan_number"`
	TDSPercentage       Supplied `json:"tds_percentage"`
	Mature              Supplied `json:"mature"`
	Status              Supplied `json:"status"`
	Remarks             Supplied `json:"remarks"`
}

// UnmarshalJSON records which keys were sent. Numbers keep their literal
// form so "12.0" and 12.0 clean the same way. Unknown keys are ignored.
func (in *SiteInput) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for key, msg := range raw {
		slot := in.Field(key)
		if slot == nil {
			continue
		}
		dec := json.NewDecoder(bytes.NewReader(msg))
		dec.UseNumber()
		var v any
		if err := dec.Decode(&v); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*slot = Supply(v)
	}
	return nil
}

// Field returns the slot for an inbound name, or nil when unknown.
func (in *SiteInput) Field(name string) *Supplied {
	switch name {
	case "site_id":
		return &in.SiteID
	case "store_name":
		return &in.StoreName
	case "region":
		return &in.Region
	case "div":
		return &in.Div
	case "manager":
		return &in.Manager
	case "asst_manager":
		return &in.AsstManager
	case "executive":
		return &in.Executive
	case "doo":
		return &in.Doo
	case "sqft":
		return &in.Sqft
	case "agreement_date":
		return &in.AgreementDate
	case "rent_position_date":
		return &in.RentPositionDate
	case "rent_effective_date":
		return &in.RentEffectiveDate
	case "agreement_valid_upto":
		return &in.AgreementValidUpto
	case "current_date":
		return &in.CurrentDate
	case "lease_period":
		return &in.LeasePeriod
	case "rent_free_period_days":
		return &in.RentFreePeriodDays
	case "rent_effective_amount":
		return &in.RentEffectiveAmount
	case "present_rent":
		return &in.PresentRent
	case "hike_percentage":
		return &in.HikePercentage
	case "hike_year":
		return &in.HikeYear
	case "rent_deposit":
		return &in.RentDeposit
	case "owner_name1":
		return &in.OwnerName1
	case "owner_name2":
		return &in.OwnerName2
	case "owner_name3":
		return &in.OwnerName3
	case "owner_name4":
		return &in.OwnerName4
	case "owner_name5":
		return &in.OwnerName5
	case "owner_name6":
		return &in.OwnerName6
	case "owner_mobile":
		return &in.OwnerMobile
	case "current_date1":
		return &in.CurrentDate1
	case "validity_date":
		return &in.ValidityDate
	case "gst_number":
		return &in.GSTNumber
	case "pan_number":
		return &in.PANNumber
	case "tds_percentage":
		return &in.TDSPercentage
	case "mature":
		return &in.Mature
	case "status":
		return &in.Status
	case "remarks":
		return &in.Remarks
	}
	return nil
}

// Assignment is one column write. Value is a string, int64, decimal or a
// YYYY-MM-DD date string.
type Assignment struct {
	Column Column
	Value  any
}

// UpdateSet is the sparse result of reconciling a partial update.
type UpdateSet struct {
	Assignments []Assignment
	// Dropped lists supplied fields whose value could not be cleaned.
	Dropped []DroppedField
}

// DroppedField names a field left out of an update.
type DroppedField struct {
	Field  string
	Reason string
}

// Columns returns the assigned column names in order.
func (u UpdateSet) Columns() []string {
	out := make([]string, len(u.Assignments))
	for i, a := range u.Assignments {
		out[i] = a.Column.Name
	}
	return out
}

// ReconcileUpdate cleans a partial update into storage assignments. Fields
// that fail cleanup are dropped rather than failing the update; the site
// code and transient fields are never assigned.
func ReconcileUpdate(in SiteInput) (UpdateSet, error) {
	var set UpdateSet
	for _, f := range fields {
		if f.Transient || f.Column == ColSite {
			continue
		}
		s := in.Field(f.Input)
		if s == nil || !s.Set() {
			continue
		}
		v, err := cleanUpdateValue(f, s.Value)
		if err != nil {
			set.Dropped = append(set.Dropped, DroppedField{Field: f.Input, Reason: err.Error()})
			continue
		}
		col, _ := ToCanonical(f.Input)
		set.Assignments = append(set.Assignments, Assignment{Column: col, Value: v})
	}
	if len(set.Assignments) == 0 {
		return set, domain.ErrNoFieldsToUpdate
	}
	return set, nil
}

// ReconcileInsert validates a full record and returns every column to write.
// Mandatory fields must be present and non-null; any supplied field that
// fails cleanup rejects the insert.
func ReconcileInsert(in SiteInput) ([]Assignment, error) {
	var out []Assignment
	for _, f := range fields {
		if f.Transient {
			continue
		}
		s := in.Field(f.Input)
		if s == nil || !s.Set() {
			if f.Required {
				return nil, domain.MissingField(f.Input)
			}
			continue
		}
		if !f.Required && blank(s.Value) {
			continue
		}
		v, err := cleanUpdateValue(f, s.Value)
		if err != nil {
			return nil, domain.InvalidField(f.Input, err.Error())
		}
		if f.Column == ColSite {
			code := strings.TrimSpace(v.(string))
			if code == "" {
				return nil, domain.MissingField(f.Input)
			}
			v = code
		}
		out = append(out, Assignment{Column: Column{Name: f.Column}, Value: v})
	}
	return out, nil
}

func cleanUpdateValue(f Field, v any) (any, error) {
	switch f.Kind {
	case KindInt:
		n, err := CleanInt(v)
		if err != nil {
			return nil, fmt.Errorf("not a whole number: %v", v)
		}
		return n, nil
	case KindDecimal:
		d, err := CleanDecimal(v)
		if err != nil {
			return nil, fmt.Errorf("not an amount: %v", v)
		}
		if f.Column == ColHikePercentage {
			d = NormalizeHike(d)
		}
		return d, nil
	case KindDate:
		d, err := inputDate(v)
		if err != nil {
			return nil, err
		}
		return FormatStorage(d), nil
	}
	return asText(v), nil
}

func inputDate(v any) (time.Time, error) {
	switch t := v.(type) {
	case string:
		return NormalizeInputDate(t)
	case []byte:
		return NormalizeInputDate(string(t))
	}
	return ParseDate(v)
}

func blank(v any) bool {
	s, ok := v.(string)
	return ok && strings.TrimSpace(s) == ""
}
