package joiner

import (
	"fmt"

	"quizprep/internal/records"
)

type index struct {
	byID     map[int]Explanation
	position map[int]int
}

// buildIndex indexes explanations by id. When an id repeats, the first
// explanation wins and the repeat is reported as a Duplicate.
func buildIndex(explanations []records.Record) (*index, []Duplicate, error) {
	idx := &index{
		byID:     make(map[int]Explanation, len(explanations)),
		position: make(map[int]int, len(explanations)),
	}
	var dups []Duplicate
	for i, rec := range explanations {
		id, err := rec.Int(FieldID)
		if err != nil {
			return nil, nil, records.AtIndex(err, i)
		}
		text, err := rec.String(FieldExplanation)
		if err != nil {
			return nil, nil, records.AtIndex(err, i)
		}
		if first, ok := idx.position[id]; ok {
			dups = append(dups, Duplicate{ID: id, Index: i, First: first})
			continue
		}
		idx.byID[id] = Explanation{ID: id, Explanation: text}
		idx.position[id] = i
	}
	return idx, dups, nil
}

func (idx *index) lookup(id int) (Explanation, bool) {
	e, ok := idx.byID[id]
	return e, ok
}

// Join pairs every question with its explanation. The result has exactly one
// entry per question, in question order. The explanations are indexed once;
// errors name the collection and record that failed.
func Join(questions, explanations []records.Record) ([]JoinedQuestion, Stats, error) {
	idx, dups, err := buildIndex(explanations)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("explanations: %w", err)
	}
	joined, stats, err := joinIndexed(questions, idx)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("questions: %w", err)
	}
	stats.Explanations = len(explanations)
	stats.DistinctIDs = len(idx.byID)
	stats.Duplicates = dups
	return joined, stats, nil
}

func joinIndexed(questions []records.Record, idx *index) ([]JoinedQuestion, Stats, error) {
	stats := Stats{Questions: len(questions)}
	joined := make([]JoinedQuestion, 0, len(questions))
	for i, rec := range questions {
		q, err := joinQuestion(rec, idx)
		if err != nil {
			return nil, Stats{}, records.AtIndex(err, i)
		}
		if q.Explanation != nil {
			stats.Matched++
		} else {
			stats.Unmatched++
		}
		joined = append(joined, q)
	}
	return joined, stats, nil
}

func joinQuestion(rec records.Record, idx *index) (JoinedQuestion, error) {
	var (
		q   JoinedQuestion
		err error
	)
	if q.QuestionID, err = rec.Int(FieldQuestionID); err != nil {
		return q, err
	}
	if q.BookSectionID, err = rec.Int(FieldBookSectionID); err != nil {
		return q, err
	}
	if q.Category, err = rec.Int(FieldCategory); err != nil {
		return q, err
	}
	if q.Question, err = rec.Require(FieldQuestion); err != nil {
		return q, err
	}
	if q.Year, err = rec.Require(FieldYear); err != nil {
		return q, err
	}
	if q.Choices, err = rec.Require(FieldChoices); err != nil {
		return q, err
	}
	if q.Correct, err = rec.Require(FieldCorrect); err != nil {
		return q, err
	}
	if e, ok := idx.lookup(q.BookSectionID); ok {
		q.Explanation = &e
	}
	return q, nil
}
