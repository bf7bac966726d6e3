package record

import (
	"math"
	"strconv"
	"strings"
)

// Kind identifies which variant a Value holds.
type Kind uint8

const (
	KindMissing Kind = iota
	KindString
	KindNumber
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	default:
		return "missing"
	}
}

// Value is a scalar cell value: a string, a number, or absent.
// The zero Value is missing. Numbers parsed from text keep that text
// so identifiers like "007" render unchanged.
type Value struct {
	kind Kind
	str  string
	num  float64
	raw  string
}

// Missing returns an absent value.
func Missing() Value { return Value{} }

// String returns a string value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Number returns a numeric value. NaN is treated as missing.
func Number(f float64) Value {
	if math.IsNaN(f) {
		return Value{}
	}
	return Value{kind: KindNumber, num: f}
}

// Kind returns the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsMissing reports whether v is absent.
func (v Value) IsMissing() bool { return v.kind == KindMissing }

// String renders v as text. Numbers read by Parse render as their source
// text; other numbers use the shortest representation ("3", "2.5").
// Missing values render as the empty string.
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		if v.raw != "" {
			return v.raw
		}
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	default:
		return ""
	}
}

// Float returns v as a number. Strings are parsed after trimming spaces.
// ok is false for missing values and non-numeric strings.
func (v Value) Float() (f float64, ok bool) {
	switch v.kind {
	case KindNumber:
		return v.num, true
	case KindString:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.str), 64)
		if err != nil || math.IsNaN(f) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// Equal reports whether two values have the same kind and content.
// Numbers must agree on both value and rendered text, so "01" and "1"
// differ.
func (v Value) Equal(o Value) bool {
	return v.kind == o.kind && v.num == o.num && v.String() == o.String()
}

// Parse infers a value from cell text. Surrounding whitespace is trimmed
// first and never kept. Cells listed in na (and the empty string) are
// missing, finite numeric text becomes a number that still renders as the
// trimmed text, and anything else becomes the trimmed string.
func Parse(s string, na ...string) Value {
	t := strings.TrimSpace(s)
	if t == "" {
		return Missing()
	}
	for _, m := range na {
		if t == m {
			return Missing()
		}
	}
	if f, err := strconv.ParseFloat(t, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		v := Number(f)
		v.raw = t
		return v
	}
	return String(t)
}
