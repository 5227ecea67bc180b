package likert

import "testing"

func TestNormalize_Labels(t *testing.T) {
	tests := []struct {
		label string
		want  int
	}{
		{"Strongly Disagree", 1},
		{"disagree", 2},
		{"Neutral", 3},
		{"Agree", 4},
		{"Strongly Agree", 5},
		{"Never", 1},
		{"rarely", 2},
		{"Sometimes", 3},
		{"often", 4},
		{"Very Often", 5},
		{"always", 5},
		{"No", 1},
		{"yes", 5},
	}

	for _, tt := range tests {
		got := Normalize(Label(tt.label), false, 5)
		if got.Score != tt.want {
			t.Errorf("Normalize(%q) = %d, want %d", tt.label, got.Score, tt.want)
		}
		if got.Imputed {
			t.Errorf("Normalize(%q) unexpectedly imputed", tt.label)
		}
	}
}

func TestNormalize_NumericClamping(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{1, 1},
		{3, 3},
		{5, 5},
		{0, 1},
		{-2, 1},
		{6, 5},
		{100, 5},
		{4.4, 4},
		{4.6, 5},
	}

	for _, tt := range tests {
		got := Normalize(Number(tt.in), false, 5)
		if got.Score != tt.want {
			t.Errorf("Normalize(%v) = %d, want %d", tt.in, got.Score, tt.want)
		}
	}
}

func TestNormalize_Bool(t *testing.T) {
	if got := Normalize(Bool(true), false, 5); got.Score != 5 {
		t.Errorf("yes = %d, want 5", got.Score)
	}
	if got := Normalize(Bool(false), false, 5); got.Score != 1 {
		t.Errorf("no = %d, want 1", got.Score)
	}
	if got := Normalize(Bool(true), false, 2); got.Score != 2 {
		t.Errorf("binary yes = %d, want 2", got.Score)
	}
}

func TestNormalize_ReverseRoundTrip(t *testing.T) {
	// Reverse-keyed value v must equal the forward scoring of 6-v.
	for v := 1; v <= 5; v++ {
		rev := Normalize(Number(float64(v)), true, 5)
		fwd := Normalize(Number(float64(6-v)), false, 5)
		if rev.Score != fwd.Score {
			t.Errorf("reverse(%d) = %d, forward(%d) = %d; want equal", v, rev.Score, 6-v, fwd.Score)
		}
	}
}

func TestNormalize_UnknownImputesToMidpoint(t *testing.T) {
	tests := []RawValue{
		Label("banana"),
		Missing(),
		{Kind: KindNumber, Number: nan()},
	}

	for _, v := range tests {
		got := Normalize(v, false, 5)
		if !got.Imputed {
			t.Errorf("Normalize(%v) not flagged imputed", v)
		}
		if got.Score != 3 {
			t.Errorf("Normalize(%v) = %d, want midpoint 3", v, got.Score)
		}
	}
}

func TestNormalize_ImputedIgnoresReverseKey(t *testing.T) {
	// An imputed midpoint stays at the midpoint on an odd scale either way.
	got := Normalize(Missing(), true, 5)
	if got.Score != 3 || !got.Imputed {
		t.Errorf("got %+v, want imputed midpoint 3", got)
	}
}

func TestFromAny(t *testing.T) {
	tests := []struct {
		in   any
		want Kind
	}{
		{4.0, KindNumber},
		{7, KindNumber},
		{"Agree", KindLabel},
		{"4", KindNumber},
		{" ", KindMissing},
		{true, KindBool},
		{nil, KindMissing},
		{[]string{"x"}, KindMissing},
	}

	for _, tt := range tests {
		got := FromAny(tt.in)
		if got.Kind != tt.want {
			t.Errorf("FromAny(%v).Kind = %q, want %q", tt.in, got.Kind, tt.want)
		}
	}
}

func TestOrdinal_Unit(t *testing.T) {
	tests := []struct {
		score int
		want  float64
	}{
		{1, 0},
		{3, 50},
		{5, 100},
	}

	for _, tt := range tests {
		o := Ordinal{Score: tt.score, Scale: 5}
		if got := o.Unit(); got != tt.want {
			t.Errorf("Unit(%d) = %v, want %v", tt.score, got, tt.want)
		}
	}
}

func nan() float64 {
	var zero float64
	return zero / zero
}
