package stripper

import (
	"quizprep/internal/records"
)

// FieldExplanation is the field rewritten by the stripper.
const FieldExplanation = "explanation"

// Strip returns copies of data whose explanation field holds the extracted
// text. Every other field is passed through unchanged. The first record
// without a string explanation aborts the call and no records are returned.
func Strip(data []records.Record, ex Extractor) ([]records.Record, error) {
	out := make([]records.Record, len(data))
	for i, rec := range data {
		fragment, err := rec.String(FieldExplanation)
		if err != nil {
			return nil, records.AtIndex(err, i)
		}
		text, err := ex.Extract(fragment)
		if err != nil {
			return nil, &records.FieldError{Index: i, Field: FieldExplanation, Err: err}
		}
		stripped := rec.Clone()
		if err := stripped.SetString(FieldExplanation, text); err != nil {
			return nil, records.AtIndex(err, i)
		}
		out[i] = stripped
	}
	return out, nil
}
