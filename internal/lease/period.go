package lease

import (
	"fmt"
	"time"
)

// Period is a calendar-aware year/month/day magnitude.
type Period struct {
	Years  int
	Months int
	Days   int
}

func (p Period) String() string {
	return fmt.Sprintf("%d Years, %d Months, %d Days", p.Years, p.Months, p.Days)
}

// Between decomposes a-b into whole months (counted on the calendar, with
// day-of-month clipping) plus remaining days. The sign is discarded.
func Between(a, b time.Time) Period {
	a, b = dateOf(a), dateOf(b)
	months := (a.Year()-b.Year())*12 + int(a.Month()-b.Month())
	shifted := addMonths(b, months)
	if a.After(b) {
		for shifted.After(a) {
			months--
			shifted = addMonths(b, months)
		}
	} else {
		for shifted.Before(a) {
			months++
			shifted = addMonths(b, months)
		}
	}
	days := int(a.Sub(shifted).Hours() / 24)
	if months < 0 {
		months = -months
	}
	if days < 0 {
		days = -days
	}
	return Period{Years: months / 12, Months: months % 12, Days: days}
}

// addMonths moves t by n months, clipping the day to the target month's end
// (31 January + 1 month is 28 or 29 February).
func addMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	total := int(m) - 1 + n
	y += total / 12
	total %= 12
	if total < 0 {
		total += 12
		y--
	}
	target := time.Month(total + 1)
	if last := daysIn(y, target); d > last {
		d = last
	}
	return time.Date(y, target, d, 0, 0, 0, 0, time.UTC)
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
