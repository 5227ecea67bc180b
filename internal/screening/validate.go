// Package screening gates clinically framed domain scores behind
// multi-indicator triangulation. A single elevated number is too noisy
// to support a screening claim; a pattern is only marked valid when at
// least two of three independent evidence families corroborate it. This
// gate is the system's core protection against false positives and must
// hold regardless of how extreme any single indicator is.
package screening

import (
	"github.com/abhisek/mindframe/internal/battery"
	"github.com/abhisek/mindframe/internal/scoring"
)

// Family names one independent evidence source.
type Family string

const (
	// FamilyBehavioral: the domain's own accumulated indicator score.
	FamilyBehavioral Family = "behavioral"
	// FamilyStructural: related functional sub-domains showing low
	// performance.
	FamilyStructural Family = "structural"
	// FamilyImpact: items explicitly about difficulty or impairment
	// endorsed at a high level.
	FamilyImpact Family = "selfReportedImpact"
)

// Tier is the recommendation attached to a validation outcome.
type Tier string

const (
	TierClinicalAssessment Tier = "clinical_assessment"
	TierMonitor            Tier = "monitor"
	TierNoIndication       Tier = "no_indication"
)

// Evidence packages everything one rule's indicators inspect.
type Evidence struct {
	Rule          battery.ScreeningRule
	Domain        scoring.DomainScore
	DomainPresent bool
	Structural    map[string]scoring.DomainScore
	ImpactScores  []int
}

// Indicator tests one evidence family. Implementations are pure.
type Indicator interface {
	Family() Family
	Met(ev *Evidence) bool
}

// DefaultIndicators returns the three evidence families in report order.
func DefaultIndicators() []Indicator {
	return []Indicator{
		&BehavioralIndicator{},
		&StructuralIndicator{},
		&ImpactIndicator{},
	}
}

// BehavioralIndicator fires when the screening domain's own score
// crosses the configured threshold.
type BehavioralIndicator struct{}

func (i *BehavioralIndicator) Family() Family { return FamilyBehavioral }

func (i *BehavioralIndicator) Met(ev *Evidence) bool {
	return ev.DomainPresent && ev.Domain.Normalized >= ev.Rule.BehavioralThreshold
}

// StructuralIndicator fires when enough related functional sub-domains
// score below the low-performance cutoff. Sub-domains without data do
// not count either way.
type StructuralIndicator struct{}

func (i *StructuralIndicator) Family() Family { return FamilyStructural }

func (i *StructuralIndicator) Met(ev *Evidence) bool {
	low := 0
	for _, name := range ev.Rule.StructuralDomains {
		s, ok := ev.Structural[name]
		if !ok {
			continue
		}
		if s.Normalized < ev.Rule.StructuralCutoff {
			low++
		}
	}
	return low >= ev.Rule.StructuralMin
}

// ImpactIndicator fires when enough impact-flagged items are endorsed at
// or above the configured ordinal score.
type ImpactIndicator struct{}

func (i *ImpactIndicator) Family() Family { return FamilyImpact }

func (i *ImpactIndicator) Met(ev *Evidence) bool {
	elevated := 0
	for _, s := range ev.ImpactScores {
		if s >= ev.Rule.ImpactScore {
			elevated++
		}
	}
	return elevated >= ev.Rule.ImpactMin
}

// Result is the validation outcome for one screening domain.
type Result struct {
	Domain         string
	IndicatorsMet  map[Family]bool
	ValidatedCount int
	Valid          bool
	Confidence     float64
	Tier           Tier
}

// Validate runs the default indicators over the evidence. Disagreement
// between families is expected and resolved by the count rule, never
// treated as an error.
func Validate(ev *Evidence) Result {
	return ValidateWith(DefaultIndicators(), ev)
}

// ValidateWith runs a custom indicator list, counting met families.
// Validity requires at least two independent families to agree.
func ValidateWith(indicators []Indicator, ev *Evidence) Result {
	res := Result{
		Domain:        ev.Rule.Domain,
		IndicatorsMet: make(map[Family]bool, len(indicators)),
	}
	for _, ind := range indicators {
		met := ind.Met(ev)
		res.IndicatorsMet[ind.Family()] = met
		if met {
			res.ValidatedCount++
		}
	}

	res.Valid = res.ValidatedCount >= 2
	if len(indicators) > 0 {
		res.Confidence = float64(res.ValidatedCount) / float64(len(indicators))
	}

	switch {
	case res.Valid:
		res.Tier = TierClinicalAssessment
	case res.ValidatedCount == 1:
		res.Tier = TierMonitor
	default:
		res.Tier = TierNoIndication
	}
	return res
}

// GatherEvidence assembles the evidence for one rule from an
// accumulation pass. Impact items are drawn from the rule's own domain
// and its structural sub-domains.
func GatherEvidence(rule battery.ScreeningRule, acc *scoring.Accumulation) *Evidence {
	ev := &Evidence{
		Rule:       rule,
		Structural: make(map[string]scoring.DomainScore, len(rule.StructuralDomains)),
	}
	if s, ok := acc.DomainScore(rule.Domain); ok {
		ev.Domain = s
		ev.DomainPresent = true
	}
	for _, name := range rule.StructuralDomains {
		if s, ok := acc.DomainScore(name); ok {
			ev.Structural[name] = s
		}
	}
	domains := append([]string{rule.Domain}, rule.StructuralDomains...)
	ev.ImpactScores = acc.ImpactScores(domains...)
	return ev
}
