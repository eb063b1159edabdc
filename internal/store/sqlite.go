package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/rcliao/yournote/internal/model"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db   *sql.DB
	path string
	ids  *idSource
}

// NewSQLiteStore opens or creates a SQLite database at the given path.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &SQLiteStore{
		db:   db,
		path: dbPath,
		ids:  newIDSource(),
	}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

// DB exposes the handle for packages that keep their own tables in the same
// file.
func (s *SQLiteStore) DB() *sql.DB { return s.db }

// Path is the database file path.
func (s *SQLiteStore) Path() string { return s.path }

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS notes (
		id          TEXT PRIMARY KEY,
		title       TEXT NOT NULL,
		content     TEXT NOT NULL DEFAULT '',
		created     TEXT NOT NULL,
		last_edited TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_notes_title ON notes(title);

	CREATE TABLE IF NOT EXISTS exams (
		id             TEXT PRIMARY KEY,
		title          TEXT NOT NULL,
		source_note_id TEXT NOT NULL,
		source_note    TEXT NOT NULL,
		question_type  TEXT NOT NULL,
		date_created   TEXT NOT NULL,
		questions      TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_exams_note ON exams(source_note_id);

	CREATE TABLE IF NOT EXISTS exam_results (
		id              TEXT PRIMARY KEY,
		exam_id         TEXT NOT NULL,
		exam_title      TEXT NOT NULL,
		date_taken      TEXT NOT NULL,
		score           INTEGER NOT NULL,
		total_questions INTEGER NOT NULL,
		percentage      REAL NOT NULL,
		results         TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_results_exam ON exam_results(exam_id);
	`
	_, err := s.db.Exec(schema)
	return err
}

const noteColumns = `id, title, content, created, last_edited`

func (s *SQLiteStore) AddNote(ctx context.Context, title, content string) (*model.Note, error) {
	if title == "" {
		title = model.DefaultNoteTitle
	}
	now := time.Now().UTC()
	n := &model.Note{
		ID:         s.ids.next(),
		Title:      title,
		Content:    content,
		Created:    now,
		LastEdited: now,
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO notes (`+noteColumns+`) VALUES (?, ?, ?, ?, ?)`,
		n.ID, n.Title, n.Content, formatTime(n.Created), formatTime(n.LastEdited))
	if err != nil {
		return nil, fmt.Errorf("insert note: %w", err)
	}
	return n, nil
}

func (s *SQLiteStore) GetNote(ctx context.Context, id string) (*model.Note, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+noteColumns+` FROM notes WHERE id = ?`, id)
	n, err := scanNote(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("note %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (s *SQLiteStore) UpdateNote(ctx context.Context, p UpdateNoteParams) (*model.Note, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	n, err := scanNote(tx.QueryRowContext(ctx, `SELECT `+noteColumns+` FROM notes WHERE id = ?`, p.ID))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("note %s: %w", p.ID, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	if p.Title != nil {
		n.Title = *p.Title
	}
	if p.Content != nil {
		n.Content = *p.Content
	}
	n.LastEdited = time.Now().UTC()

	_, err = tx.ExecContext(ctx,
		`UPDATE notes SET title = ?, content = ?, last_edited = ? WHERE id = ?`,
		n.Title, n.Content, formatTime(n.LastEdited), n.ID)
	if err != nil {
		return nil, fmt.Errorf("update note: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &n, nil
}

func (s *SQLiteStore) ListNotes(ctx context.Context) ([]model.Note, error) {
	return s.queryNotes(ctx, `SELECT `+noteColumns+` FROM notes ORDER BY created, id`)
}

func (s *SQLiteStore) FindNotesByTitle(ctx context.Context, title string) ([]model.Note, error) {
	return s.queryNotes(ctx, `SELECT `+noteColumns+` FROM notes WHERE title = ? ORDER BY created, id`, title)
}

func (s *SQLiteStore) RestoreNote(ctx context.Context, n model.Note) (bool, error) {
	if n.ID == "" {
		return false, fmt.Errorf("restore note: empty id")
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO notes (`+noteColumns+`) VALUES (?, ?, ?, ?, ?)`,
		n.ID, n.Title, n.Content, formatTime(n.Created), formatTime(n.LastEdited))
	if err != nil {
		return false, fmt.Errorf("restore note: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

func (s *SQLiteStore) queryNotes(ctx context.Context, query string, args ...interface{}) ([]model.Note, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []model.Note
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

func (s *SQLiteStore) SaveExam(ctx context.Context, e *model.Exam) error {
	if e.ID == "" {
		e.ID = s.ids.next()
	}
	questions, err := json.Marshal(e.Questions)
	if err != nil {
		return fmt.Errorf("encode questions: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO exams (id, title, source_note_id, source_note, question_type, date_created, questions)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Title, e.SourceNoteID, e.SourceNote, string(e.QuestionType), formatTime(e.DateCreated), string(questions))
	if err != nil {
		return fmt.Errorf("insert exam: %w", err)
	}
	return nil
}

const examColumns = `id, title, source_note_id, source_note, question_type, date_created, questions`

func (s *SQLiteStore) GetExam(ctx context.Context, id string) (*model.Exam, error) {
	e, err := scanExam(s.db.QueryRowContext(ctx, `SELECT `+examColumns+` FROM exams WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("exam %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *SQLiteStore) ListExams(ctx context.Context) ([]model.Exam, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+examColumns+` FROM exams ORDER BY date_created, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var exams []model.Exam
	for rows.Next() {
		e, err := scanExam(rows)
		if err != nil {
			return nil, err
		}
		exams = append(exams, e)
	}
	return exams, rows.Err()
}

func (s *SQLiteStore) AppendResult(ctx context.Context, r *model.ExamResult) error {
	if r.ID == "" {
		r.ID = s.ids.next()
	}
	results, err := json.Marshal(r.Results)
	if err != nil {
		return fmt.Errorf("encode results: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO exam_results (id, exam_id, exam_title, date_taken, score, total_questions, percentage, results)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.ExamID, r.ExamTitle, formatTime(r.DateTaken), r.Score, r.TotalQuestions, r.Percentage, string(results))
	if err != nil {
		return fmt.Errorf("insert result: %w", err)
	}
	return nil
}

func (s *SQLiteStore) ListResults(ctx context.Context, examID string) ([]model.ExamResult, error) {
	query := `SELECT id, exam_id, exam_title, date_taken, score, total_questions, percentage, results
	          FROM exam_results`
	var args []interface{}
	if examID != "" {
		query += ` WHERE exam_id = ?`
		args = append(args, examID)
	}
	query += ` ORDER BY date_taken, id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.ExamResult
	for rows.Next() {
		var r model.ExamResult
		var dateTaken, results string
		if err := rows.Scan(&r.ID, &r.ExamID, &r.ExamTitle, &dateTaken, &r.Score,
			&r.TotalQuestions, &r.Percentage, &results); err != nil {
			return nil, err
		}
		if r.DateTaken, err = parseTime(dateTaken); err != nil {
			return nil, fmt.Errorf("result %s date_taken: %w", r.ID, err)
		}
		if err := json.Unmarshal([]byte(results), &r.Results); err != nil {
			return nil, fmt.Errorf("decode results of %s: %w", r.ID, err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanNote(row scanner) (model.Note, error) {
	var n model.Note
	var created, edited string
	if err := row.Scan(&n.ID, &n.Title, &n.Content, &created, &edited); err != nil {
		return n, err
	}
	var err error
	if n.Created, err = parseTime(created); err != nil {
		return n, fmt.Errorf("note %s created: %w", n.ID, err)
	}
	if n.LastEdited, err = parseTime(edited); err != nil {
		return n, fmt.Errorf("note %s last_edited: %w", n.ID, err)
	}
	return n, nil
}

func scanExam(row scanner) (model.Exam, error) {
	var e model.Exam
	var qtype, created, questions string
	if err := row.Scan(&e.ID, &e.Title, &e.SourceNoteID, &e.SourceNote, &qtype, &created, &questions); err != nil {
		return e, err
	}
	e.QuestionType = model.QuestionKind(qtype)
	var err error
	if e.DateCreated, err = parseTime(created); err != nil {
		return e, fmt.Errorf("exam %s date_created: %w", e.ID, err)
	}
	if err := json.Unmarshal([]byte(questions), &e.Questions); err != nil {
		return e, fmt.Errorf("decode questions of %s: %w", e.ID, err)
	}
	return e, nil
}

// timeLayout is fixed-width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}
