package profile

import (
	"github.com/abhisek/mindframe/internal/archetype"
	"github.com/abhisek/mindframe/internal/battery"
	"github.com/abhisek/mindframe/internal/confidence"
	"github.com/abhisek/mindframe/internal/screening"
	"github.com/abhisek/mindframe/internal/scoring"
)

// Status distinguishes a scored domain from one with no usable data.
// The two must never be conflated: a domain without data is absent, not
// a low (or neutral) score.
type Status string

const (
	StatusScored           Status = "scored"
	StatusInsufficientData Status = "insufficient_data"
)

// DomainReport is the per-domain slice of the output contract.
// Score and Interval are only meaningful when Status is scored.
type DomainReport struct {
	Domain       string                     `json:"domain"`
	Class        battery.DomainClass        `json:"class"`
	Status       Status                     `json:"status"`
	Score        int                        `json:"score,omitempty"`
	Interval     *confidence.Interval       `json:"interval,omitempty"`
	Level        confidence.Level           `json:"level"`
	Disclosure   confidence.Status          `json:"disclosure,omitempty"` // non-trait domains only
	ItemCount    int                        `json:"itemCount"`
	ImputedCount int                        `json:"imputedCount,omitempty"`
	Provenance   map[scoring.Provenance]int `json:"provenance,omitempty"`
}

// Report is the full structured output of one scoring run. It is a pure
// function of the response set and the battery; rescoring the same
// inputs yields an identical report.
type Report struct {
	Battery           string                  `json:"battery"`
	BatteryVersion    string                  `json:"batteryVersion"`
	Domains           map[string]DomainReport `json:"domains"`
	Screenings        []screening.Result      `json:"screenings,omitempty"`
	Classifications   []archetype.Result      `json:"classifications,omitempty"`
	UnattributedItems []string                `json:"unattributedItems,omitempty"`
}

// ScoredDomains returns the normalized scores of every scored domain,
// the vector the classifiers consume.
func (r *Report) ScoredDomains() map[string]float64 {
	out := make(map[string]float64, len(r.Domains))
	for name, d := range r.Domains {
		if d.Status == StatusScored {
			out[name] = float64(d.Score)
		}
	}
	return out
}

// Screening returns the validation result for a domain, or nil.
func (r *Report) Screening(domain string) *screening.Result {
	for i := range r.Screenings {
		if r.Screenings[i].Domain == domain {
			return &r.Screenings[i]
		}
	}
	return nil
}

// Classification returns the result for a classifier set, or nil.
func (r *Report) Classification(set string) *archetype.Result {
	for i := range r.Classifications {
		if r.Classifications[i].Set == set {
			return &r.Classifications[i]
		}
	}
	return nil
}
