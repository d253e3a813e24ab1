package lease

import (
	"database/sql"
	"fmt"
	"strings"
	"time"
)

const (
	// DisplayLayout renders dates in projected records and report rows.
	DisplayLayout = "02-01-2006"
	// StorageLayout is how dates are written to and queried from the store.
	StorageLayout = "2006-01-02"
)

// dateLayouts is tried in order; the first full match wins. "01-02-2024"
// therefore reads as 1 February, and "03/04/2024" as 3 April.
var dateLayouts = []string{
	"2006-1-2",  // YYYY-MM-DD
	"2-1-2006",  // DD-MM-YYYY
	"2/1/2006",  // DD/MM/YYYY
	"1/2/2006",  // MM/DD/YYYY
}

// UnparsableError reports a value no supported date representation matched.
type UnparsableError struct {
	Raw any
}

func (e *UnparsableError) Error() string {
	return fmt.Sprintf("unparsable date: %v", e.Raw)
}

// ParseDate reduces a native date, date-time or string to a calendar date
// (midnight UTC). Anything else yields *UnparsableError.
func ParseDate(v any) (time.Time, error) {
	switch t := v.(type) {
	case time.Time:
		if t.IsZero() {
			return time.Time{}, &UnparsableError{Raw: v}
		}
		return dateOf(t), nil
	case *time.Time:
		if t == nil {
			return time.Time{}, &UnparsableError{Raw: v}
		}
		return ParseDate(*t)
	case sql.NullTime:
		if !t.Valid {
			return time.Time{}, &UnparsableError{Raw: v}
		}
		return ParseDate(t.Time)
	case []byte:
		return ParseDate(string(t))
	case string:
		return parseDateString(t)
	}
	return time.Time{}, &UnparsableError{Raw: v}
}

func parseDateString(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if d, ok := tryLayouts(s, dateLayouts); ok {
		return d, nil
	}
	// Storage drivers sometimes hand back "2024-01-15 00:00:00"; the date is
	// the leading ten characters.
	if len(s) > 10 {
		if d, ok := tryLayouts(s[:10], dateLayouts); ok {
			return d, nil
		}
	}
	return time.Time{}, &UnparsableError{Raw: raw}
}

// NormalizeInputDate is the update-path pass. It inspects the separator and
// segment lengths to tell YYYY-MM-DD from DD-MM-YYYY, then falls back to the
// generic layouts plus YYYY/MM/DD. Any string ParseDate accepts resolves to
// the same date here.
func NormalizeInputDate(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, &UnparsableError{Raw: raw}
	}
	if parts := strings.Split(s, "-"); len(parts) == 3 {
		switch {
		case len(parts[0]) == 4 && isDigits(parts[0]):
			if d, ok := tryLayouts(s, []string{"2006-1-2"}); ok {
				return d, nil
			}
		case len(parts[2]) == 4 && isDigits(parts[2]):
			if d, ok := tryLayouts(s, []string{"2-1-2006"}); ok {
				return d, nil
			}
		}
	}
	if d, ok := tryLayouts(s, dateLayouts); ok {
		return d, nil
	}
	if d, ok := tryLayouts(s, []string{"2006/1/2"}); ok {
		return d, nil
	}
	return time.Time{}, &UnparsableError{Raw: raw}
}

// FormatDisplay renders d as DD-MM-YYYY.
func FormatDisplay(d time.Time) string {
	return d.Format(DisplayLayout)
}

// FormatStorage renders d as YYYY-MM-DD.
func FormatStorage(d time.Time) string {
	return d.Format(StorageLayout)
}

// Today returns the calendar date of now in its own location.
func Today(now time.Time) time.Time {
	return dateOf(now)
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func tryLayouts(s string, layouts []string) (time.Time, bool) {
	for _, layout := range layouts {
		if d, err := time.Parse(layout, s); err == nil {
			return dateOf(d), true
		}
	}
	return time.Time{}, false
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
