// Package profile composes the scoring stages into one request-scoped
// pipeline: normalize → accumulate → estimate confidence → validate
// screenings → classify. Each invocation recomputes everything from the
// full response set; nothing is carried between calls, which keeps the
// report a pure function of its inputs.
package profile

import (
	"github.com/abhisek/mindframe/internal/archetype"
	"github.com/abhisek/mindframe/internal/battery"
	"github.com/abhisek/mindframe/internal/confidence"
	"github.com/abhisek/mindframe/internal/likert"
	"github.com/abhisek/mindframe/internal/screening"
	"github.com/abhisek/mindframe/internal/scoring"
)

// Service scores sessions against one battery. It holds no per-session
// state, so a single Service can score any number of sessions
// concurrently.
type Service struct {
	bat *battery.Battery
}

// NewService creates a scoring service for the battery.
func NewService(bat *battery.Battery) *Service {
	return &Service{bat: bat}
}

// Battery returns the battery this service scores against.
func (s *Service) Battery() *battery.Battery {
	return s.bat
}

// Score runs the full pipeline over a session's responses. The report
// covers every domain the battery defines: domains without genuine data
// are marked insufficient rather than omitted or defaulted, so the
// consumer can tell "no data" apart from "scored low".
func (s *Service) Score(responses []likert.Response) *Report {
	acc := scoring.Accumulate(responses, s.bat)

	report := &Report{
		Battery:           s.bat.Name,
		BatteryVersion:    s.bat.Version,
		Domains:           make(map[string]DomainReport, len(s.bat.Domains)),
		UnattributedItems: acc.Unattributed,
	}

	for i := range s.bat.Domains {
		d := &s.bat.Domains[i]
		report.Domains[d.Name] = s.domainReport(d, acc)
	}

	for _, rule := range s.bat.Screenings {
		ev := screening.GatherEvidence(rule, acc)
		report.Screenings = append(report.Screenings, screening.Validate(ev))
	}

	scores := report.ScoredDomains()
	for _, set := range s.bat.Classifiers {
		report.Classifications = append(report.Classifications, archetype.Classify(set, scores))
	}

	return report
}

// domainReport builds the per-domain output, selecting the confidence
// policy by domain class.
func (s *Service) domainReport(d *battery.Domain, acc *scoring.Accumulation) DomainReport {
	ds, ok := acc.DomainScore(d.Name)
	if !ok {
		dr := DomainReport{
			Domain: d.Name,
			Class:  d.Class,
			Status: StatusInsufficientData,
			Level:  confidence.LevelInsufficient,
		}
		if t := acc.Domains[d.Name]; t != nil {
			dr.ImputedCount = t.ImputedCount
			dr.Provenance = t.ProvenanceCounts()
		}
		if d.Class != battery.ClassTrait {
			dr.Disclosure = confidence.StatusHide
		}
		return dr
	}

	dr := DomainReport{
		Domain:       d.Name,
		Class:        d.Class,
		Status:       StatusScored,
		Score:        ds.Rounded(),
		ItemCount:    ds.ItemCount,
		ImputedCount: ds.ImputedCount,
		Provenance:   ds.Provenance,
	}

	switch d.Class {
	case battery.ClassTrait:
		iv := confidence.Trait(ds.Normalized, ds.Scores, d.Reliability)
		dr.Interval = &iv
		dr.Level = iv.Level
	default:
		sc := confidence.Screening(ds.Normalized, ds.Scores)
		dr.Interval = &sc.Interval
		dr.Level = sc.Level
		dr.Disclosure = sc.Status
	}

	return dr
}
