package likert

import (
	"strings"
	"testing"
	"time"
)

func TestDecodeJSON(t *testing.T) {
	input := `[
		{"itemId": "o1", "value": 4, "trait": "openness"},
		{"item": "o2", "answer": "Agree", "domain": "openness", "reversed": true},
		{"id": "att1", "value": true, "text": "I lose focus easily."},
		{"itemId": "n1", "value": "3", "answeredAt": "2026-03-14T09:26:53Z"},
		{"itemId": "n2", "value": null}
	]`

	got, err := DecodeJSON(strings.NewReader(input))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 5 {
		t.Fatalf("decoded %d records, want 5", len(got))
	}

	want := []Response{
		{ItemID: "o1", Value: Number(4), TraitHint: "openness"},
		{ItemID: "o2", Value: Label("Agree"), TraitHint: "openness", Reversed: true},
		{ItemID: "att1", Value: Bool(true), Text: "I lose focus easily."},
		{ItemID: "n1", Value: Number(3),
			Timestamp: time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)},
		{ItemID: "n2", Value: Missing()},
	}
	for i := range want {
		if !got[i].Timestamp.Equal(want[i].Timestamp) {
			t.Errorf("record %d timestamp = %v, want %v", i, got[i].Timestamp, want[i].Timestamp)
		}
		got[i].Timestamp = want[i].Timestamp
		if got[i] != want[i] {
			t.Errorf("record %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestDecodeJSON_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"not an array", `{"itemId": "o1"}`},
		{"missing identifier", `[{"value": 3}]`},
		{"bad timestamp", `[{"itemId": "o1", "value": 3, "answeredAt": "yesterday"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeJSON(strings.NewReader(tt.input)); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}
