// Package archetype maps a finished score vector onto named prototypes
// using weighted threshold criteria. All thresholds are static battery
// configuration; classification is fully deterministic.
package archetype

import (
	"fmt"
	"math"
	"sort"

	"github.com/abhisek/mindframe/internal/battery"
)

// ClosenessMargin is the fit-score gap (on the 0..100 fit scale) under
// which the top two archetypes are reported as a hybrid rather than a
// single type.
const ClosenessMargin = 15.0

// penaltySpan is the miss distance, in normalized score points, at
// which a missed criterion forfeits its full weight. Smaller misses
// forfeit proportionally less, so near-misses degrade smoothly instead
// of cliff-edging to zero.
const penaltySpan = 50.0

// Fit is one archetype's evaluated match against a score vector.
type Fit struct {
	Name             string
	Label            string
	FitScore         float64 // 0..100
	MatchedCriteria  []string
	MeetsAllCriteria bool
}

// Result is the outcome of evaluating one classifier set.
type Result struct {
	Set            string
	Fits           []Fit // sorted by fit score, descending
	PrimaryType    string
	SecondaryType  string
	IsHybrid       bool
	Interpretation string
}

// Classify evaluates every archetype in the set against the score
// vector. There is always a primary type: when nothing crosses its
// thresholds the best-fitting candidate is still returned, flagged via
// MeetsAllCriteria=false, since an explicitly low-confidence best guess
// is more useful than no answer.
func Classify(set battery.ClassifierSet, scores map[string]float64) Result {
	fits := make([]Fit, 0, len(set.Archetypes))
	for _, a := range set.Archetypes {
		fits = append(fits, evaluate(a, scores))
	}

	sort.SliceStable(fits, func(i, j int) bool {
		if fits[i].FitScore != fits[j].FitScore {
			return fits[i].FitScore > fits[j].FitScore
		}
		return fits[i].Name < fits[j].Name
	})

	res := Result{
		Set:         set.Name,
		Fits:        fits,
		PrimaryType: fits[0].Name,
	}

	if len(fits) > 1 {
		res.SecondaryType = fits[1].Name
		res.IsHybrid = fits[0].FitScore-fits[1].FitScore < ClosenessMargin
	}

	res.Interpretation = interpret(set, res)
	return res
}

// evaluate scores one archetype. Satisfied criteria contribute their
// full weight; missed criteria subtract a penalty proportional to the
// miss distance, capped at the criterion's own weight so one extreme
// miss cannot erase credit earned elsewhere. Criteria whose domain has
// no score contribute nothing either way but block MeetsAllCriteria.
func evaluate(a battery.Archetype, scores map[string]float64) Fit {
	fit := Fit{
		Name:             a.Name,
		Label:            a.Label,
		MeetsAllCriteria: true,
	}

	total := 0.0
	for _, c := range a.Criteria {
		value, ok := scores[c.Domain]
		if !ok {
			fit.MeetsAllCriteria = false
			continue
		}
		if satisfied(c, value) {
			total += c.Weight
			fit.MatchedCriteria = append(fit.MatchedCriteria, criterionLabel(c))
			continue
		}
		fit.MeetsAllCriteria = false
		miss := math.Abs(value - c.Threshold)
		penalty := c.Weight * math.Min(1, miss/penaltySpan)
		total -= penalty
	}

	fit.FitScore = clamp(total, 0, 100)
	return fit
}

func satisfied(c battery.Criterion, value float64) bool {
	if c.Direction == battery.AtMost {
		return value <= c.Threshold
	}
	return value >= c.Threshold
}

func criterionLabel(c battery.Criterion) string {
	op := ">="
	if c.Direction == battery.AtMost {
		op = "<="
	}
	return fmt.Sprintf("%s %s %.0f", c.Domain, op, c.Threshold)
}

// interpret picks the narrative for the result: the primary archetype's
// interpretation, or a blended framing when the top two are too close to
// call.
func interpret(set battery.ClassifierSet, res Result) string {
	primary := find(set, res.PrimaryType)
	if primary == nil {
		return ""
	}
	if !res.IsHybrid || res.SecondaryType == "" {
		return primary.Interpretation
	}
	secondary := find(set, res.SecondaryType)
	if secondary == nil {
		return primary.Interpretation
	}
	return fmt.Sprintf("Blend of %s and %s: the two profiles fit almost equally well, so traits of both apply. %s Also: %s",
		label(primary), label(secondary), primary.Interpretation, secondary.Interpretation)
}

func find(set battery.ClassifierSet, name string) *battery.Archetype {
	for i := range set.Archetypes {
		if set.Archetypes[i].Name == name {
			return &set.Archetypes[i]
		}
	}
	return nil
}

func label(a *battery.Archetype) string {
	if a.Label != "" {
		return a.Label
	}
	return a.Name
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
