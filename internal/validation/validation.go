package validation

import "strings"

// Violations maps field name to an error code suitable for i18n on the
// client ("required", "must_be_positive", ...).
type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// Basic validators
func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
	}
}

func PositiveFloat(field string, val float64, v Violations) {
	if val <= 0 {
		v[field] = "must_be_positive"
	}
}

func PositiveInt(field string, val int, v Violations) {
	if val <= 0 {
		v[field] = "must_be_positive"
	}
}

func RangeFloat(field string, val, minVal, maxVal float64, v Violations) {
	if val < minVal || val > maxVal {
		v[field] = "out_of_range"
	}
}

// ISODate checks yyyy-mm-dd shape without pulling in time parsing at every
// call site; services re-parse where arithmetic is needed.
func ISODate(field, value string, v Violations) {
	s := strings.TrimSpace(value)
	if len(s) != 10 || s[4] != '-' || s[7] != '-' {
		v[field] = "invalid_date"
		return
	}
	for i, c := range s {
		if i == 4 || i == 7 {
			continue
		}
		if c < '0' || c > '9' {
			v[field] = "invalid_date"
			return
		}
	}
}
