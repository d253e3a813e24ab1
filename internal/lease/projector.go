package lease

import (
	"time"
)

// Project turns a stored row into its external record as seen on today.
// Stored values for the transient columns are ignored and recomputed.
func Project(row Row, today time.Time) ExternalRecord {
	today = dateOf(today)
	rec := ExternalRecord{CurrentDate: FormatDisplay(today)}
	var rentPosition, validUpto *time.Time

	for _, cell := range row {
		f, known := FieldByColumn(cell.Column)
		if !known {
			if rec.Extra == nil {
				rec.Extra = make(map[string]any)
			}
			rec.Extra[ToExternal(cell.Column)] = cell.Value
			continue
		}
		if f.Transient {
			continue
		}
		switch {
		case f.Column == ColSite:
			rec.Site = asText(cell.Value)
			rec.SiteID = rec.Site
		case f.Column == ColHikePercentage:
			if cell.Value != nil {
				hike, _ := hikeOf(cell.Value).Float64()
				rec.HikePercentage = &hike
			}
		case f.Kind == KindDate:
			text, parsed := projectDate(cell.Value)
			*rec.textSlot(f.Column) = text
			switch f.Column {
			case ColRentPositionDate:
				rentPosition = parsed
			case ColAgreementValidUpto:
				validUpto = parsed
			}
		case f.Kind == KindInt:
			if slot := rec.intSlot(f.Column); slot != nil {
				*slot = projectInt(cell.Value)
			}
		case f.Kind == KindDecimal:
			if slot := rec.amountSlot(f.Column); slot != nil {
				*slot = projectAmount(cell.Value)
			}
		default:
			if slot := rec.textSlot(f.Column); slot != nil {
				*slot = projectText(cell.Value)
			}
		}
	}

	if rentPosition != nil {
		rec.CurrentDate1 = Between(today, *rentPosition).String()
	}
	if validUpto != nil {
		rec.ValidityDate = Between(*validUpto, today).String()
	}
	return rec
}

// ProjectSummary maps a list-mode row. No derived fields are computed.
func ProjectSummary(row Row) SummaryRecord {
	var s SummaryRecord
	for _, cell := range row {
		switch cell.Column {
		case ColSite:
			s.SiteID = asText(cell.Value)
		case ColStoreName:
			s.StoreName = projectText(cell.Value)
		case ColRegion:
			s.Region = projectText(cell.Value)
		case ColDiv:
			s.Div = projectText(cell.Value)
		case ColPresentRent:
			s.PresentRent = projectAmount(cell.Value)
		case ColLeasePeriod:
			s.LeasePeriod = projectInt(cell.Value)
		case ColHikePercentage:
			s.HikePercentage = projectAmount(cell.Value)
		case ColStatus:
			s.Status = projectText(cell.Value)
		}
	}
	return s
}

// projectDate renders a stored date for display. An unparsable value is
// passed through as text; a NULL stays nil.
func projectDate(v any) (*string, *time.Time) {
	if v == nil {
		return nil, nil
	}
	d, err := ParseDate(v)
	if err != nil {
		raw := asText(v)
		return &raw, nil
	}
	out := FormatDisplay(d)
	return &out, &d
}

func projectText(v any) *string {
	if v == nil {
		return nil
	}
	s := asText(v)
	return &s
}

func projectInt(v any) *int64 {
	if v == nil {
		return nil
	}
	d, err := toDecimal(v)
	if err != nil {
		return nil
	}
	n := d.Truncate(0).IntPart()
	return &n
}

func projectAmount(v any) *float64 {
	if v == nil {
		return nil
	}
	d, err := toDecimal(v)
	if err != nil {
		return nil
	}
	f, _ := d.Float64()
	return &f
}
