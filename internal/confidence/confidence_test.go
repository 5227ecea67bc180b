package confidence

import (
	"math"
	"testing"
)

func identical(score, n int) []int {
	xs := make([]int, n)
	for i := range xs {
		xs[i] = score
	}
	return xs
}

func TestTrait_MarginShrinksWithSampleSize(t *testing.T) {
	prev := math.Inf(1)
	for _, n := range []int{3, 6, 8, 10, 15, 20} {
		iv := Trait(70, identical(4, n), 0.90)
		if iv.Margin > prev {
			t.Errorf("margin grew from %.2f to %.2f at n=%d", prev, iv.Margin, n)
		}
		prev = iv.Margin
	}
}

func TestTrait_LevelMonotonicInSampleSize(t *testing.T) {
	// Fixed score and variance: the level must be non-decreasing as the
	// item count grows.
	prev := -1
	for n := 1; n <= 20; n++ {
		iv := Trait(70, identical(4, n), 0.90)
		if iv.Level.Rank() < prev {
			t.Errorf("level rank dropped to %d at n=%d", iv.Level.Rank(), n)
		}
		prev = iv.Level.Rank()
	}
}

func TestTrait_LevelBreakpoints(t *testing.T) {
	// reliability 0.90 → SEM 4.743; at n=15 margin = 1.96×4.743 ≈ 9.30.
	tests := []struct {
		n    int
		want Level
	}{
		{4, LevelInsufficient},
		{5, LevelLow},
		{10, LevelModerate}, // margin ≈ 10.69 ≤ 12 and n ≥ 8
		{15, LevelModerate}, // margin ≈ 9.30 > 8, stays moderate
	}

	for _, tt := range tests {
		iv := Trait(70, identical(4, tt.n), 0.90)
		if iv.Level != tt.want {
			t.Errorf("n=%d: level = %q (margin %.2f), want %q", tt.n, iv.Level, iv.Margin, tt.want)
		}
	}
}

func TestTrait_HighNeedsTightReliability(t *testing.T) {
	// reliability 0.95 → SEM 3.354; n=15 margin ≈ 6.57 ≤ 8 → high.
	iv := Trait(70, identical(4, 15), 0.95)
	if iv.Level != LevelHigh {
		t.Errorf("level = %q (margin %.2f), want high", iv.Level, iv.Margin)
	}
}

func TestTrait_VarianceWidensMargin(t *testing.T) {
	consistent := Trait(60, identical(4, 10), 0.90)
	scattered := Trait(60, []int{1, 5, 1, 5, 1, 5, 1, 5, 1, 5}, 0.90)

	if scattered.Margin <= consistent.Margin {
		t.Errorf("scattered margin %.2f not wider than consistent %.2f", scattered.Margin, consistent.Margin)
	}
	if scattered.VarianceFactor <= 1.0 {
		t.Errorf("variance factor = %.2f, want > 1 for scattered responses", scattered.VarianceFactor)
	}
}

func TestTrait_IntervalContainsScoreAndClamps(t *testing.T) {
	for _, score := range []float64{0, 3, 50, 97, 100} {
		iv := Trait(score, identical(3, 6), 0.88)
		if iv.Lower > score || iv.Upper < score {
			t.Errorf("score %.0f outside [%.2f, %.2f]", score, iv.Lower, iv.Upper)
		}
		if iv.Lower < 0 || iv.Upper > 100 {
			t.Errorf("interval [%.2f, %.2f] not clamped", iv.Lower, iv.Upper)
		}
	}
}

func TestLevel_Percent(t *testing.T) {
	tests := []struct {
		level Level
		want  int
	}{
		{LevelHigh, 95},
		{LevelModerate, 85},
		{LevelLow, 70},
		{LevelInsufficient, 50},
	}
	for _, tt := range tests {
		if got := tt.level.Percent(); got != tt.want {
			t.Errorf("%s.Percent() = %d, want %d", tt.level, got, tt.want)
		}
	}
}

func TestScreening_ThreeItemsLowTwelveItemsHigh(t *testing.T) {
	// Fixed ambiguous score and high spread; only the item count varies.
	three := Screening(50, []int{1, 3, 5})
	twelve := Screening(50, []int{1, 3, 5, 1, 3, 5, 1, 3, 5, 1, 3, 5})

	if three.Level != LevelLow {
		t.Errorf("3 items: level = %q (overall %.2f), want low", three.Level, three.Overall)
	}
	if twelve.Level != LevelHigh {
		t.Errorf("12 items: level = %q (overall %.2f), want high", twelve.Level, twelve.Overall)
	}
}

func TestScreening_LevelMonotonicInSampleSize(t *testing.T) {
	prev := -1
	for n := 1; n <= 15; n++ {
		sc := Screening(85, identical(4, n))
		if sc.Level.Rank() < prev {
			t.Errorf("level rank dropped at n=%d", n)
		}
		prev = sc.Level.Rank()
	}
}

func TestScreening_AmbiguousBandPenalized(t *testing.T) {
	ambiguous := Screening(50, identical(3, 10))
	decisive := Screening(85, identical(4, 10))

	if ambiguous.Score != 0.7 {
		t.Errorf("ambiguous score component = %.2f, want 0.7", ambiguous.Score)
	}
	if decisive.Score != 1.0 {
		t.Errorf("decisive score component = %.2f, want 1.0", decisive.Score)
	}
	if ambiguous.Overall >= decisive.Overall {
		t.Errorf("ambiguous overall %.2f not below decisive %.2f", ambiguous.Overall, decisive.Overall)
	}
}

func TestScreening_Composite(t *testing.T) {
	// 10 items, extreme score, no spread: overall = 0.5+0.3+0.2 = 1.0,
	// margin = base margin.
	sc := Screening(85, identical(4, 10))
	if sc.Overall != 1.0 {
		t.Errorf("overall = %.2f, want 1.0", sc.Overall)
	}
	if sc.Margin != 12.0 {
		t.Errorf("margin = %.2f, want 12", sc.Margin)
	}
	if sc.Status != StatusReport {
		t.Errorf("status = %q, want report", sc.Status)
	}
}

func TestScreening_StatusMapping(t *testing.T) {
	if sc := Screening(85, identical(4, 10)); sc.Status != StatusReport {
		t.Errorf("10 decisive items: status %q (overall %.2f), want report", sc.Status, sc.Overall)
	}
	if sc := Screening(85, identical(4, 5)); sc.Overall != 0.8 || sc.Status != StatusReport {
		t.Errorf("5 decisive items: overall %.2f status %q, want 0.80/report", sc.Overall, sc.Status)
	}
	if sc := Screening(85, identical(4, 3)); sc.Status != StatusCaveat {
		t.Errorf("3 decisive items: status %q (overall %.2f), want report_with_caveat", sc.Status, sc.Overall)
	}
	if sc := Screening(50, []int{1, 5, 1}); sc.Status != StatusMention {
		t.Errorf("3 scattered ambiguous items: status %q, want mention_insufficient", sc.Status)
	}
	if sc := Screening(50, nil); sc.Status != StatusHide || sc.Level != LevelInsufficient {
		t.Errorf("no items: status %q level %q, want hide/insufficient", sc.Status, sc.Level)
	}
}
