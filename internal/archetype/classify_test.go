package archetype

import (
	"math"
	"testing"

	"github.com/abhisek/mindframe/internal/battery"
)

func twoTypeSet() battery.ClassifierSet {
	return battery.ClassifierSet{
		Name: "test",
		Archetypes: []battery.Archetype{
			{
				Name:  "steady",
				Label: "Steady",
				Criteria: []battery.Criterion{
					{Domain: "calm", Direction: battery.AtLeast, Threshold: 60, Weight: 60},
					{Domain: "order", Direction: battery.AtLeast, Threshold: 50, Weight: 40},
				},
			},
			{
				Name:  "volatile",
				Label: "Volatile",
				Criteria: []battery.Criterion{
					{Domain: "calm", Direction: battery.AtMost, Threshold: 40, Weight: 60},
					{Domain: "order", Direction: battery.AtMost, Threshold: 50, Weight: 40},
				},
			},
		},
	}
}

func TestClassify_FullMatch(t *testing.T) {
	res := Classify(twoTypeSet(), map[string]float64{"calm": 80, "order": 70})

	if res.PrimaryType != "steady" {
		t.Fatalf("primary = %q, want steady", res.PrimaryType)
	}
	top := res.Fits[0]
	if top.FitScore != 100 {
		t.Errorf("fit = %.1f, want 100", top.FitScore)
	}
	if !top.MeetsAllCriteria {
		t.Error("full match should meet all criteria")
	}
	if len(top.MatchedCriteria) != 2 {
		t.Errorf("matched = %v, want 2 entries", top.MatchedCriteria)
	}
}

func TestClassify_NearMissPenalizedProportionally(t *testing.T) {
	// calm=55 misses the ≥60 threshold by 5: penalty 60×(5/50) = 6.
	res := Classify(twoTypeSet(), map[string]float64{"calm": 55, "order": 70})

	var steady Fit
	for _, f := range res.Fits {
		if f.Name == "steady" {
			steady = f
		}
	}
	want := 40.0 - 6.0 // order weight minus calm penalty
	if math.Abs(steady.FitScore-want) > 1e-9 {
		t.Errorf("near-miss fit = %.1f, want %.1f", steady.FitScore, want)
	}
	if steady.MeetsAllCriteria {
		t.Error("near miss should not report MeetsAllCriteria")
	}
}

func TestClassify_PenaltyCappedAtWeight(t *testing.T) {
	// calm=0 misses ≥60 by 60 points; the penalty caps at the
	// criterion's weight rather than scaling without bound.
	res := Classify(twoTypeSet(), map[string]float64{"calm": 0, "order": 70})

	var steady Fit
	for _, f := range res.Fits {
		if f.Name == "steady" {
			steady = f
		}
	}
	// 40 (order met) − 60 (capped calm penalty) → −20, clamped to 0.
	if steady.FitScore != 0 {
		t.Errorf("fit = %.1f, want 0 after clamping", steady.FitScore)
	}
}

func TestClassify_NoMatchStillReturnsBestFit(t *testing.T) {
	// Middle-of-the-road scores satisfy neither archetype fully.
	res := Classify(twoTypeSet(), map[string]float64{"calm": 50, "order": 50})

	if res.PrimaryType == "" {
		t.Fatal("no primary type returned")
	}
	top := res.Fits[0]
	if top.MeetsAllCriteria {
		t.Error("partial match flagged as full criteria match")
	}
}

func TestClassify_MissingDomainSkippedNotPenalized(t *testing.T) {
	// order is absent: it neither adds nor subtracts, and blocks a full
	// criteria match.
	res := Classify(twoTypeSet(), map[string]float64{"calm": 80})

	var steady Fit
	for _, f := range res.Fits {
		if f.Name == "steady" {
			steady = f
		}
	}
	if steady.FitScore != 60 {
		t.Errorf("fit = %.1f, want 60 (calm weight only)", steady.FitScore)
	}
	if steady.MeetsAllCriteria {
		t.Error("missing domain should block MeetsAllCriteria")
	}
}

func TestClassify_HybridBoundary(t *testing.T) {
	// Criterion weights are arranged so the fits land exactly at 80/66
	// (gap 14) and then 80/60 (gap 20) around the closeness margin.
	closeSet := battery.ClassifierSet{
		Name: "close",
		Archetypes: []battery.Archetype{
			{Name: "top", Criteria: []battery.Criterion{
				{Domain: "x", Direction: battery.AtLeast, Threshold: 50, Weight: 80},
				{Domain: "missing", Direction: battery.AtLeast, Threshold: 50, Weight: 20},
			}},
			{Name: "second", Criteria: []battery.Criterion{
				{Domain: "x", Direction: battery.AtLeast, Threshold: 50, Weight: 66},
				{Domain: "missing", Direction: battery.AtLeast, Threshold: 50, Weight: 34},
			}},
		},
	}
	scores := map[string]float64{"x": 70}

	res := Classify(closeSet, scores)
	if res.Fits[0].FitScore != 80 || res.Fits[1].FitScore != 66 {
		t.Fatalf("fits = %.0f/%.0f, want 80/66", res.Fits[0].FitScore, res.Fits[1].FitScore)
	}
	// Gap of 14 is inside the closeness margin.
	if !res.IsHybrid {
		t.Error("gap 14 should be hybrid")
	}

	farSet := closeSet
	farSet.Archetypes[1].Criteria[0].Weight = 60
	farSet.Archetypes[1].Criteria[1].Weight = 40
	res = Classify(farSet, scores)
	if res.Fits[0].FitScore != 80 || res.Fits[1].FitScore != 60 {
		t.Fatalf("fits = %.0f/%.0f, want 80/60", res.Fits[0].FitScore, res.Fits[1].FitScore)
	}
	// Gap of 20 is outside the margin.
	if res.IsHybrid {
		t.Error("gap 20 should not be hybrid")
	}
}

func TestClassify_HybridInterpretationBlends(t *testing.T) {
	set := twoTypeSet()
	set.Archetypes[0].Interpretation = "Steady narrative."
	set.Archetypes[1].Interpretation = "Volatile narrative."

	// Scores satisfying neither fully, landing both fits close together.
	res := Classify(set, map[string]float64{"calm": 50, "order": 50})
	if !res.IsHybrid {
		t.Fatal("tied fits should be hybrid")
	}
	if res.Interpretation == "Steady narrative." || res.Interpretation == "Volatile narrative." {
		t.Error("hybrid result should blend both interpretations")
	}
}

func TestClassify_Deterministic(t *testing.T) {
	scores := map[string]float64{"calm": 55, "order": 48}
	first := Classify(twoTypeSet(), scores)
	for i := 0; i < 10; i++ {
		again := Classify(twoTypeSet(), scores)
		if again.PrimaryType != first.PrimaryType || again.IsHybrid != first.IsHybrid {
			t.Fatal("classification is not deterministic")
		}
		if again.Fits[0].FitScore != first.Fits[0].FitScore {
			t.Fatal("fit scores vary across runs")
		}
	}
}

func TestClassify_BuiltinSets(t *testing.T) {
	b := battery.MustBuiltin()
	scores := map[string]float64{
		"openness": 75, "conscientiousness": 40, "extraversion": 70,
		"agreeableness": 55, "neuroticism": 35, "honesty_humility": 72,
	}

	for _, set := range b.Classifiers {
		res := Classify(set, scores)
		if res.PrimaryType == "" {
			t.Errorf("set %s: no primary type", set.Name)
		}
		if len(res.Fits) != len(set.Archetypes) {
			t.Errorf("set %s: %d fits for %d archetypes", set.Name, len(res.Fits), len(set.Archetypes))
		}
		for i := 1; i < len(res.Fits); i++ {
			if res.Fits[i].FitScore > res.Fits[i-1].FitScore {
				t.Errorf("set %s: fits not sorted descending", set.Name)
			}
		}
	}
}
