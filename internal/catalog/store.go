package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"quizprep/internal/joiner"
)

// ErrNotFound is returned when a requested question does not exist.
var ErrNotFound = errors.New("question not found")

// Store manages the question catalog backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the catalog database and applies migrations.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("ensure catalog directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// Pragmas are per connection.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string { return s.path }

// Replace removes the current bank and inserts questions in order. Position is
// the zero-based index in questions. Explanations are stored once per id.
func (s *Store) Replace(ctx context.Context, questions []joiner.JoinedQuestion) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, "DELETE FROM questions"); err != nil {
		return fmt.Errorf("clear questions: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM explanations"); err != nil {
		return fmt.Errorf("clear explanations: %w", err)
	}

	insertExplanation, err := tx.PrepareContext(ctx, "INSERT OR IGNORE INTO explanations (id, body) VALUES (?, ?)")
	if err != nil {
		return fmt.Errorf("prepare explanation insert: %w", err)
	}
	defer insertExplanation.Close()

	insertQuestion, err := tx.PrepareContext(ctx, `INSERT INTO questions (
            position, question_id, book_section_id, category,
            question_json, year_json, choices_json, correct_json, explanation_id
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare question insert: %w", err)
	}
	defer insertQuestion.Close()

	for i, q := range questions {
		var explanationID sql.NullInt64
		if q.Explanation != nil {
			if _, err := insertExplanation.ExecContext(ctx, q.Explanation.ID, q.Explanation.Explanation); err != nil {
				return fmt.Errorf("insert explanation %d: %w", q.Explanation.ID, err)
			}
			explanationID = sql.NullInt64{Int64: int64(q.Explanation.ID), Valid: true}
		}
		if _, err := insertQuestion.ExecContext(ctx,
			i,
			q.QuestionID,
			q.BookSectionID,
			q.Category,
			rawText(q.Question),
			rawText(q.Year),
			rawText(q.Choices),
			rawText(q.Correct),
			explanationID,
		); err != nil {
			return fmt.Errorf("insert question at %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace: %w", err)
	}
	return nil
}

// Count returns the number of stored questions and distinct explanations.
func (s *Store) Count(ctx context.Context) (questions, explanations int, err error) {
	row := s.db.QueryRowContext(ctx, "SELECT (SELECT COUNT(1) FROM questions), (SELECT COUNT(1) FROM explanations)")
	if err := row.Scan(&questions, &explanations); err != nil {
		return 0, 0, fmt.Errorf("count catalog: %w", err)
	}
	return questions, explanations, nil
}

// Question returns the question stored at position.
func (s *Store) Question(ctx context.Context, position int) (*joiner.JoinedQuestion, error) {
	row := s.db.QueryRowContext(ctx, `SELECT q.question_id, q.book_section_id, q.category,
            q.question_json, q.year_json, q.choices_json, q.correct_json,
            e.id, e.body
        FROM questions q LEFT JOIN explanations e ON e.id = q.explanation_id
        WHERE q.position = ?`, position)

	var (
		q           joiner.JoinedQuestion
		question    string
		year        string
		choices     string
		correct     string
		explanation sql.NullInt64
		body        sql.NullString
	)
	err := row.Scan(&q.QuestionID, &q.BookSectionID, &q.Category, &question, &year, &choices, &correct, &explanation, &body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("position %d: %w", position, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get question: %w", err)
	}
	q.Question = json.RawMessage(question)
	q.Year = json.RawMessage(year)
	q.Choices = json.RawMessage(choices)
	q.Correct = json.RawMessage(correct)
	if explanation.Valid {
		q.Explanation = &joiner.Explanation{ID: int(explanation.Int64), Explanation: body.String}
	}
	return &q, nil
}

func rawText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return "null"
	}
	return string(raw)
}
