package likert

import (
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// record is the transport shape of one answer in a JSON export.
// Alternate key spellings from common export formats are accepted.
type record struct {
	ItemID     string `json:"itemId"`
	Item       string `json:"item"`
	ID         string `json:"id"`
	Value      any    `json:"value"`
	Answer     any    `json:"answer"`
	Trait      string `json:"trait"`
	Domain     string `json:"domain"`
	Text       string `json:"text"`
	Reversed   bool   `json:"reversed"`
	AnsweredAt string `json:"answeredAt"`
}

// DecodeJSON reads a JSON array of answer records into canonical
// responses. Records without any item identifier are rejected; every
// other oddity is folded into a RawValue and left for normalization.
func DecodeJSON(r io.Reader) ([]Response, error) {
	var records []record
	dec := json.NewDecoder(r)
	if err := dec.Decode(&records); err != nil {
		return nil, fmt.Errorf("decode responses: %w", err)
	}

	out := make([]Response, 0, len(records))
	for i, rec := range records {
		id := firstNonEmpty(rec.ItemID, rec.Item, rec.ID)
		if id == "" {
			return nil, fmt.Errorf("record %d: missing item identifier", i)
		}

		value := rec.Value
		if value == nil {
			value = rec.Answer
		}

		resp := Response{
			ItemID:    id,
			Value:     FromAny(value),
			TraitHint: firstNonEmpty(rec.Trait, rec.Domain),
			Text:      rec.Text,
			Reversed:  rec.Reversed,
		}
		if rec.AnsweredAt != "" {
			t, err := time.Parse(time.RFC3339, rec.AnsweredAt)
			if err != nil {
				return nil, fmt.Errorf("record %d (%s): answeredAt: %w", i, id, err)
			}
			resp.Timestamp = t
		}
		out = append(out, resp)
	}
	return out, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
