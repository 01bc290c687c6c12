package meta

import (
	"strconv"
	"strings"
)

// String renders the rational the way most EXIF readers print it. A zero
// denominator is printed as stored, e.g. "0/0".
func (r Rational) String() string {
	if r.Den != 0 && r.Num%r.Den == 0 {
		return strconv.FormatInt(r.Num/r.Den, 10)
	}
	return strconv.FormatInt(r.Num, 10) + "/" + strconv.FormatInt(r.Den, 10)
}

// Float returns the rational as a float64. A zero denominator yields 0.
func (r Rational) Float() float64 {
	if r.Den == 0 {
		return 0
	}
	return float64(r.Num) / float64(r.Den)
}

// FormatValue renders an Entry value as spreadsheet text.
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []byte:
		return DecodeText(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	case Rational:
		return val.String()
	case []int64:
		parts := make([]string, len(val))
		for i, n := range val {
			parts[i] = strconv.FormatInt(n, 10)
		}
		return strings.Join(parts, ", ")
	case []float64:
		parts := make([]string, len(val))
		for i, f := range val {
			parts[i] = strconv.FormatFloat(f, 'g', -1, 64)
		}
		return strings.Join(parts, ", ")
	case []Rational:
		parts := make([]string, len(val))
		for i, r := range val {
			parts[i] = r.String()
		}
		return strings.Join(parts, ", ")
	case GPS:
		parts := make([]string, len(val.Entries))
		for i, e := range val.Entries {
			parts[i] = e.Name + "=" + FormatValue(e.Value)
		}
		return strings.Join(parts, "; ")
	default:
		return ""
	}
}
