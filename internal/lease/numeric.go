package lease

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var errNotNumeric = errors.New("not a number")

var hundred = decimal.NewFromInt(100)

// decorations are stripped from amounts typed by hand or pasted from sheets.
var decorations = strings.NewReplacer("₹", "", "Rs.", "", "Rs", "", ",", "", "%", "", " ", "")

// CleanDecimal coerces a decorated amount ("₹12,500.50", "15%") or a native
// number to a decimal. Negative amounts are rejected.
func CleanDecimal(v any) (decimal.Decimal, error) {
	d, err := toDecimal(v)
	if err != nil {
		return decimal.Zero, err
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("negative amount %s", d)
	}
	return d, nil
}

// CleanInt coerces via float-then-truncate so "12.0" reads as 12.
func CleanInt(v any) (int64, error) {
	d, err := CleanDecimal(v)
	if err != nil {
		return 0, err
	}
	return d.Truncate(0).IntPart(), nil
}

func toDecimal(v any) (decimal.Decimal, error) {
	switch n := v.(type) {
	case nil:
		return decimal.Zero, errNotNumeric
	case decimal.Decimal:
		return n, nil
	case int:
		return decimal.NewFromInt(int64(n)), nil
	case int32:
		return decimal.NewFromInt32(n), nil
	case int64:
		return decimal.NewFromInt(n), nil
	case uint:
		return decimal.NewFromInt(int64(n)), nil
	case uint32:
		return decimal.NewFromInt(int64(n)), nil
	case uint64:
		if n > math.MaxInt64 {
			return decimal.Zero, errNotNumeric
		}
		return decimal.NewFromInt(int64(n)), nil
	case float32:
		return floatDecimal(float64(n))
	case float64:
		return floatDecimal(n)
	case json.Number:
		return decimalFromString(n.String())
	case []byte:
		return decimalFromString(string(n))
	case string:
		return decimalFromString(n)
	}
	return decimal.Zero, errNotNumeric
}

func floatDecimal(f float64) (decimal.Decimal, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero, errNotNumeric
	}
	return decimal.NewFromFloat(f), nil
}

func decimalFromString(s string) (decimal.Decimal, error) {
	s = decorations.Replace(strings.TrimSpace(s))
	if s == "" {
		return decimal.Zero, errNotNumeric
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, errNotNumeric
	}
	return d, nil
}

// NormalizeHike turns a fractional hike (0.15) into a percentage (15).
// Exactly 1 is already a percentage.
func NormalizeHike(d decimal.Decimal) decimal.Decimal {
	if d.LessThan(decimal.NewFromInt(1)) {
		return d.Mul(hundred)
	}
	return d
}

// hikeOf reads a stored hike percentage; anything non-numeric counts as 0.
func hikeOf(v any) decimal.Decimal {
	d, err := toDecimal(v)
	if err != nil {
		return decimal.Zero
	}
	return NormalizeHike(d)
}

// amountOf reads a stored amount for report math; anything non-numeric is 0.
func amountOf(v any) decimal.Decimal {
	d, err := toDecimal(v)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// money rounds to paise and hands back a JSON-friendly number.
func money(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}

func asText(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case []byte:
		return string(s)
	case json.Number:
		return s.String()
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case decimal.Decimal:
		return s.String()
	}
	return fmt.Sprint(v)
}
