package joiner

import "encoding/json"

// Field names read from the input collections.
const (
	FieldID            = "id"
	FieldExplanation   = "explanation"
	FieldQuestionID    = "question_id"
	FieldBookSectionID = "book_section_id"
	FieldCategory      = "category"
	FieldQuestion      = "question"
	FieldYear          = "year"
	FieldChoices       = "choices"
	FieldCorrect       = "correct"
)

// Explanation is an indexed explanation embedded in a joined question.
type Explanation struct {
	ID          int    `json:"id"`
	Explanation string `json:"explanation"`
}

// JoinedQuestion is a question with integer identifiers and its explanation,
// or a null explanation when none matched. The question, year, choices and
// correct values are carried through as raw JSON.
type JoinedQuestion struct {
	QuestionID    int             `json:"question_id"`
	BookSectionID int             `json:"book_section_id"`
	Category      int             `json:"category"`
	Question      json.RawMessage `json:"question"`
	Year          json.RawMessage `json:"year"`
	Choices       json.RawMessage `json:"choices"`
	Correct       json.RawMessage `json:"correct"`
	Explanation   *Explanation    `json:"explanation"`
}

// Duplicate records an explanation id that appeared more than once. The
// first occurrence is kept.
type Duplicate struct {
	ID    int
	Index int
	First int
}

// Stats summarizes a join.
type Stats struct {
	Questions    int
	Matched      int
	Unmatched    int
	Explanations int
	DistinctIDs  int
	Duplicates   []Duplicate
}
