// Package battery holds the declarative configuration a scoring run
// consumes: instruments (item→domain maps with reverse keying), domain
// reliability coefficients, screening triangulation rules, and archetype
// criteria. Batteries are data, not code — they load from YAML and are
// never mutated after Build.
package battery

import (
	"fmt"
	"strings"
)

// DomainClass selects the confidence policy applied to a domain.
type DomainClass string

const (
	// ClassTrait marks continuous trait domains scored with the
	// standard-error-of-measurement model.
	ClassTrait DomainClass = "trait"
	// ClassScreening marks clinically framed domains scored with the
	// stricter weighted-composite confidence model.
	ClassScreening DomainClass = "screening"
	// ClassBinary marks yes/no checklist domains (a two-point scale
	// scored under the screening policy).
	ClassBinary DomainClass = "binary"
)

// Domain is one scorable dimension.
type Domain struct {
	Name        string
	Class       DomainClass
	Scale       int      // ordinal scale size; 5 unless configured
	Reliability float64  // internal-consistency coefficient, trait domains only
	Keywords    []string // fallback attribution patterns, lowercase
}

// Item is one questionnaire item bound to a domain.
type Item struct {
	ID       string
	Domain   string
	Text     string
	Reversed bool
	Impact   bool // item asks directly about functional difficulty/impairment
}

// ScreeningRule defines the three evidence families for one clinically
// framed domain. A screening claim is only valid when at least two
// families corroborate it.
type ScreeningRule struct {
	Domain              string
	BehavioralThreshold float64  // normalized score the domain itself must reach
	StructuralDomains   []string // related functional sub-domains
	StructuralCutoff    float64  // normalized score counted as low performance
	StructuralMin       int      // sub-domains below cutoff required; default 2
	ImpactScore         int      // ordinal score counting an impact item as elevated; default 4
	ImpactMin           int      // elevated impact items required; default 2
}

// Direction orients an archetype criterion threshold.
type Direction string

const (
	AtLeast Direction = "atLeast"
	AtMost  Direction = "atMost"
)

// Criterion is one weighted threshold test against a domain score.
type Criterion struct {
	Domain    string
	Direction Direction
	Threshold float64
	Weight    float64
}

// Archetype is a named prototype matched by weighted criteria.
type Archetype struct {
	Name           string
	Label          string
	Interpretation string
	Criteria       []Criterion
}

// ClassifierSet is one family of mutually exclusive archetypes
// (temperament, interpersonal style, and so on).
type ClassifierSet struct {
	Name       string
	Archetypes []Archetype
}

// Battery is a fully resolved, immutable configuration bundle.
type Battery struct {
	Name        string
	Version     string
	Domains     []Domain
	Items       []Item
	Screenings  []ScreeningRule
	Classifiers []ClassifierSet

	itemsByID     map[string]*Item
	domainsByName map[string]*Domain
}

// Build validates cross-references, applies defaults, and precomputes
// lookup indexes. It must be called exactly once before use.
func (b *Battery) Build() error {
	b.domainsByName = make(map[string]*Domain, len(b.Domains))
	for i := range b.Domains {
		d := &b.Domains[i]
		if d.Name == "" {
			return fmt.Errorf("domain %d: missing name", i)
		}
		if _, dup := b.domainsByName[d.Name]; dup {
			return fmt.Errorf("duplicate domain %q", d.Name)
		}
		if d.Scale == 0 {
			if d.Class == ClassBinary {
				d.Scale = 2
			} else {
				d.Scale = 5
			}
		}
		if d.Scale < 2 {
			return fmt.Errorf("domain %q: scale %d too small", d.Name, d.Scale)
		}
		switch d.Class {
		case ClassTrait:
			if d.Reliability <= 0 || d.Reliability >= 1 {
				return fmt.Errorf("domain %q: trait reliability %.2f outside (0,1)", d.Name, d.Reliability)
			}
		case ClassScreening, ClassBinary:
			// Reliability unused under the screening policy.
		default:
			return fmt.Errorf("domain %q: unknown class %q", d.Name, d.Class)
		}
		for j, kw := range d.Keywords {
			d.Keywords[j] = strings.ToLower(kw)
		}
		b.domainsByName[d.Name] = d
	}

	b.itemsByID = make(map[string]*Item, len(b.Items))
	for i := range b.Items {
		it := &b.Items[i]
		if it.ID == "" {
			return fmt.Errorf("item %d: missing id", i)
		}
		if _, dup := b.itemsByID[it.ID]; dup {
			return fmt.Errorf("duplicate item %q", it.ID)
		}
		if _, ok := b.domainsByName[it.Domain]; !ok {
			return fmt.Errorf("item %q: unknown domain %q", it.ID, it.Domain)
		}
		b.itemsByID[it.ID] = it
	}

	for i := range b.Screenings {
		r := &b.Screenings[i]
		if _, ok := b.domainsByName[r.Domain]; !ok {
			return fmt.Errorf("screening rule %d: unknown domain %q", i, r.Domain)
		}
		for _, sd := range r.StructuralDomains {
			if _, ok := b.domainsByName[sd]; !ok {
				return fmt.Errorf("screening rule for %q: unknown structural domain %q", r.Domain, sd)
			}
		}
		if r.StructuralMin == 0 {
			r.StructuralMin = 2
		}
		if r.ImpactScore == 0 {
			r.ImpactScore = 4
		}
		if r.ImpactMin == 0 {
			r.ImpactMin = 2
		}
	}

	for _, set := range b.Classifiers {
		if set.Name == "" {
			return fmt.Errorf("classifier set: missing name")
		}
		if len(set.Archetypes) < 2 {
			return fmt.Errorf("classifier set %q: needs at least two archetypes", set.Name)
		}
		for _, a := range set.Archetypes {
			if len(a.Criteria) == 0 {
				return fmt.Errorf("archetype %q: no criteria", a.Name)
			}
			total := 0.0
			for _, c := range a.Criteria {
				if _, ok := b.domainsByName[c.Domain]; !ok {
					return fmt.Errorf("archetype %q: unknown domain %q", a.Name, c.Domain)
				}
				if c.Direction != AtLeast && c.Direction != AtMost {
					return fmt.Errorf("archetype %q: unknown direction %q", a.Name, c.Direction)
				}
				if c.Weight <= 0 {
					return fmt.Errorf("archetype %q: non-positive weight on %q", a.Name, c.Domain)
				}
				total += c.Weight
			}
			if total < 99.5 || total > 100.5 {
				return fmt.Errorf("archetype %q: criterion weights sum to %.1f, want 100", a.Name, total)
			}
		}
	}

	return nil
}

// ItemByID returns the item bound to id, or nil when unmapped.
func (b *Battery) ItemByID(id string) *Item {
	return b.itemsByID[id]
}

// DomainByName returns the named domain, or nil.
func (b *Battery) DomainByName(name string) *Domain {
	return b.domainsByName[name]
}

// MatchKeywords returns the first domain whose keyword list matches the
// item text, or nil. This is the degraded attribution path; callers must
// record that the match came from keywords rather than metadata.
func (b *Battery) MatchKeywords(text string) *Domain {
	if text == "" {
		return nil
	}
	lower := strings.ToLower(text)
	for i := range b.Domains {
		d := &b.Domains[i]
		for _, kw := range d.Keywords {
			if strings.Contains(lower, kw) {
				return d
			}
		}
	}
	return nil
}
