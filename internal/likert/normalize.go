package likert

import (
	"math"
	"strings"
)

// DefaultScale is the standard five-point agreement scale.
const DefaultScale = 5

// Ordinal is a normalized response on a 1..Scale ordinal scale.
// Imputed marks values that were substituted for an unreadable or
// missing answer; downstream stages must not count them as genuine
// responses without checking this flag.
type Ordinal struct {
	Score   int
	Scale   int
	Imputed bool
}

// labelScores maps recognized answer labels to positions on a
// five-point scale. Lookups are case-insensitive.
var labelScores = map[string]int{
	// Agreement scale.
	"strongly disagree":          1,
	"disagree":                   2,
	"somewhat disagree":          2,
	"neutral":                    3,
	"neither agree nor disagree": 3,
	"somewhat agree":             4,
	"agree":                      4,
	"strongly agree":             5,

	// Frequency scale.
	"never":      1,
	"rarely":     2,
	"sometimes":  3,
	"often":      4,
	"very often": 5,
	"always":     5,

	// Binary answers map to the scale extremes.
	"no":  1,
	"yes": 5,
}

// Normalize converts a raw response value to an ordinal score on a
// 1..scale scale, applying reverse keying when the item is negatively
// worded. Unrecognized or missing values fail soft to the scale
// midpoint with Imputed set; they never silently pass as real answers.
func Normalize(v RawValue, reversed bool, scale int) Ordinal {
	if scale < 2 {
		scale = DefaultScale
	}

	score, ok := ordinal(v, scale)
	if !ok {
		return Ordinal{Score: midpoint(scale), Scale: scale, Imputed: true}
	}

	if reversed {
		score = scale + 1 - score
	}
	return Ordinal{Score: score, Scale: scale}
}

func ordinal(v RawValue, scale int) (int, bool) {
	switch v.Kind {
	case KindNumber:
		if math.IsNaN(v.Number) || math.IsInf(v.Number, 0) {
			return 0, false
		}
		n := int(math.Round(v.Number))
		if n < 1 {
			n = 1
		}
		if n > scale {
			n = scale
		}
		return n, true

	case KindLabel:
		s, ok := labelScores[strings.ToLower(strings.TrimSpace(v.Label))]
		if !ok {
			return 0, false
		}
		return rescale(s, scale), true

	case KindBool:
		if v.Bool {
			return scale, true
		}
		return 1, true

	default:
		return 0, false
	}
}

// rescale maps a five-point label position onto an arbitrary scale,
// preserving the endpoints.
func rescale(s, scale int) int {
	if scale == DefaultScale {
		return s
	}
	pos := float64(s-1) / float64(DefaultScale-1)
	return 1 + int(math.Round(pos*float64(scale-1)))
}

func midpoint(scale int) int {
	return (scale + 1) / 2
}

// Unit rescales an ordinal score to the 0..100 range.
func (o Ordinal) Unit() float64 {
	if o.Scale < 2 {
		return 0
	}
	return float64(o.Score-1) / float64(o.Scale-1) * 100
}
