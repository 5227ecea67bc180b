// Package scoring accumulates normalized responses into per-domain
// totals. Attribution follows a strict precedence: an explicit trait tag
// on the response wins, then the battery's item→domain map, then keyword
// matching against the item text as a last-resort degraded path. Every
// contribution records which path attributed it so downstream consumers
// can audit how a score was assembled.
package scoring

import (
	"github.com/abhisek/mindframe/internal/battery"
	"github.com/abhisek/mindframe/internal/likert"
)

// Provenance identifies the attribution path for one contribution.
type Provenance string

const (
	ProvenanceTrait   Provenance = "trait"
	ProvenanceMap     Provenance = "domainMap"
	ProvenanceKeyword Provenance = "keywordFallback"
)

// Contribution is one response's share of a domain total.
type Contribution struct {
	ItemID  string
	Ordinal likert.Ordinal
	Source  Provenance
	Impact  bool
}

// DomainTotal is the running accumulation for one domain. Imputed values
// are kept visible in Contributions but never counted in RawTotal or
// ItemCount, so they cannot quietly inflate a score or its confidence.
type DomainTotal struct {
	Domain        string
	Class         battery.DomainClass
	Scale         int
	RawTotal      int
	ItemCount     int
	ImputedCount  int
	Contributions []Contribution
}

// Scores returns the genuine (non-imputed) ordinal scores.
func (t *DomainTotal) Scores() []int {
	out := make([]int, 0, t.ItemCount)
	for _, c := range t.Contributions {
		if !c.Ordinal.Imputed {
			out = append(out, c.Ordinal.Score)
		}
	}
	return out
}

// Average returns the mean ordinal score. The second return is false
// when the domain has no genuine contributions; callers must treat that
// as absent data, never as a neutral midpoint.
func (t *DomainTotal) Average() (float64, bool) {
	if t.ItemCount == 0 {
		return 0, false
	}
	return float64(t.RawTotal) / float64(t.ItemCount), true
}

// Normalized returns the domain score rescaled to 0..100, or false when
// the domain has no data.
func (t *DomainTotal) Normalized() (float64, bool) {
	avg, ok := t.Average()
	if !ok {
		return 0, false
	}
	return (avg - 1) / float64(t.Scale-1) * 100, true
}

// Accumulation is the result of one accumulation pass over a session's
// responses.
type Accumulation struct {
	Domains      map[string]*DomainTotal
	Unattributed []string // item IDs that matched no attribution path
}

// Accumulate resolves each response to a domain and folds its normalized
// score into that domain's total. Responses that resolve nowhere are
// dropped and reported in Unattributed rather than guessed into a
// domain.
func Accumulate(responses []likert.Response, bat *battery.Battery) *Accumulation {
	acc := &Accumulation{Domains: make(map[string]*DomainTotal)}

	for _, r := range responses {
		domain, source := resolve(r, bat)
		if domain == nil {
			acc.Unattributed = append(acc.Unattributed, r.ItemID)
			continue
		}

		reversed := r.Reversed
		impact := false
		if it := bat.ItemByID(r.ItemID); it != nil {
			// Battery metadata is authoritative over whatever the
			// transport record claimed.
			reversed = it.Reversed
			impact = it.Impact
		}

		ord := likert.Normalize(r.Value, reversed, domain.Scale)

		t := acc.Domains[domain.Name]
		if t == nil {
			t = &DomainTotal{
				Domain: domain.Name,
				Class:  domain.Class,
				Scale:  domain.Scale,
			}
			acc.Domains[domain.Name] = t
		}

		t.Contributions = append(t.Contributions, Contribution{
			ItemID:  r.ItemID,
			Ordinal: ord,
			Source:  source,
			Impact:  impact,
		})
		if ord.Imputed {
			t.ImputedCount++
			continue
		}
		t.RawTotal += ord.Score
		t.ItemCount++
	}

	return acc
}

// resolve picks the response's domain. Structured metadata always wins;
// keyword matching only runs when no tag and no map entry exist.
func resolve(r likert.Response, bat *battery.Battery) (*battery.Domain, Provenance) {
	if r.TraitHint != "" {
		if d := bat.DomainByName(r.TraitHint); d != nil {
			return d, ProvenanceTrait
		}
	}
	if it := bat.ItemByID(r.ItemID); it != nil {
		return bat.DomainByName(it.Domain), ProvenanceMap
	}
	if d := bat.MatchKeywords(r.Text); d != nil {
		return d, ProvenanceKeyword
	}
	return nil, ""
}

// ProvenanceCounts tallies contributions per attribution path for one
// domain, imputed values included since they are part of the audit
// trail.
func (t *DomainTotal) ProvenanceCounts() map[Provenance]int {
	counts := make(map[Provenance]int)
	for _, c := range t.Contributions {
		counts[c.Source]++
	}
	return counts
}
