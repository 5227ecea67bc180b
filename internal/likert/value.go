package likert

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Kind discriminates the raw encodings a response value may arrive in.
type Kind string

const (
	KindNumber  Kind = "number"
	KindLabel   Kind = "label"
	KindBool    Kind = "bool"
	KindMissing Kind = "missing"
)

// RawValue is a response value as received, before normalization.
// Exactly one of the payload fields is meaningful, selected by Kind.
type RawValue struct {
	Kind   Kind
	Number float64
	Label  string
	Bool   bool
}

// Number wraps a numeric raw value.
func Number(v float64) RawValue {
	return RawValue{Kind: KindNumber, Number: v}
}

// Label wraps a textual raw value.
func Label(s string) RawValue {
	return RawValue{Kind: KindLabel, Label: s}
}

// Bool wraps a boolean raw value.
func Bool(b bool) RawValue {
	return RawValue{Kind: KindBool, Bool: b}
}

// Missing returns the explicit missing-value marker.
func Missing() RawValue {
	return RawValue{Kind: KindMissing}
}

// FromAny coerces a decoded JSON value into a RawValue. Numeric strings
// are treated as numbers so that loosely encoded exports still round-trip.
func FromAny(v any) RawValue {
	switch t := v.(type) {
	case nil:
		return Missing()
	case bool:
		return Bool(t)
	case float64:
		return Number(t)
	case int:
		return Number(float64(t))
	case int64:
		return Number(float64(t))
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return Missing()
		}
		if n, err := strconv.ParseFloat(s, 64); err == nil {
			return Number(n)
		}
		return Label(s)
	default:
		return Missing()
	}
}

func (v RawValue) String() string {
	switch v.Kind {
	case KindNumber:
		return strconv.FormatFloat(v.Number, 'g', -1, 64)
	case KindLabel:
		return v.Label
	case KindBool:
		return strconv.FormatBool(v.Bool)
	default:
		return "(missing)"
	}
}

// Response is one answered item in its canonical form. All variant
// encodings are folded into this shape at the system boundary so the
// scoring stages never see raw transport records.
type Response struct {
	ItemID    string
	Value     RawValue
	TraitHint string // explicit domain tag from the source record, if any
	Text      string // item wording, used only for keyword fallback
	Reversed  bool
	Timestamp time.Time
}

func (r Response) String() string {
	return fmt.Sprintf("%s=%s", r.ItemID, r.Value)
}
