package scoring

import (
	"math"

	"github.com/abhisek/mindframe/internal/battery"
)

// DomainScore is the finished, immutable score for one domain. It is
// only constructed for domains with at least one genuine contribution.
type DomainScore struct {
	Domain       string
	Class        battery.DomainClass
	RawTotal     int
	ItemCount    int
	ImputedCount int
	Average      float64
	Normalized   float64 // 0..100
	Scores       []int   // per-item ordinal scores
	Provenance   map[Provenance]int
}

// Rounded returns the normalized score rounded to the nearest integer,
// the form surfaced in reports.
func (s DomainScore) Rounded() int {
	return int(math.Round(s.Normalized))
}

// DomainScore finalizes one domain's accumulation. The second return is
// false when the domain is absent or has only imputed values; such
// domains must be reported as insufficient data, never scored.
func (a *Accumulation) DomainScore(name string) (DomainScore, bool) {
	t, ok := a.Domains[name]
	if !ok {
		return DomainScore{}, false
	}
	norm, ok := t.Normalized()
	if !ok {
		return DomainScore{}, false
	}
	avg, _ := t.Average()
	return DomainScore{
		Domain:       t.Domain,
		Class:        t.Class,
		RawTotal:     t.RawTotal,
		ItemCount:    t.ItemCount,
		ImputedCount: t.ImputedCount,
		Average:      avg,
		Normalized:   norm,
		Scores:       t.Scores(),
		Provenance:   t.ProvenanceCounts(),
	}, true
}

// NormalizedScores finalizes every scorable domain, keyed by name.
// Domains without genuine data are simply not present.
func (a *Accumulation) NormalizedScores() map[string]DomainScore {
	out := make(map[string]DomainScore, len(a.Domains))
	for name := range a.Domains {
		if s, ok := a.DomainScore(name); ok {
			out[name] = s
		}
	}
	return out
}

// ImpactScores returns the genuine ordinal scores of impact-flagged
// items across the given domains. The screening validator uses these as
// its self-reported impact evidence family.
func (a *Accumulation) ImpactScores(domains ...string) []int {
	var out []int
	for _, name := range domains {
		t, ok := a.Domains[name]
		if !ok {
			continue
		}
		for _, c := range t.Contributions {
			if c.Impact && !c.Ordinal.Imputed {
				out = append(out, c.Ordinal.Score)
			}
		}
	}
	return out
}
