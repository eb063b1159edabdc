// Package store provides the note, exam and result storage interfaces with
// in-memory and SQLite implementations.
package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/rcliao/yournote/internal/model"
)

var (
	// ErrNotFound is returned when no record matches an id or title.
	ErrNotFound = errors.New("not found")
	// ErrAmbiguousTitle is returned when a title matches more than one note.
	ErrAmbiguousTitle = errors.New("ambiguous note title")
)

// UpdateNoteParams holds parameters for editing a note. Nil fields are left
// unchanged.
type UpdateNoteParams struct {
	ID      string
	Title   *string
	Content *string
}

// NoteStore holds study notes. Notes are never deleted.
type NoteStore interface {
	// AddNote creates a note; an empty title becomes model.DefaultNoteTitle.
	AddNote(ctx context.Context, title, content string) (*model.Note, error)

	// GetNote returns the note with id, or ErrNotFound.
	GetNote(ctx context.Context, id string) (*model.Note, error)

	// UpdateNote edits a note and refreshes its last-edited time.
	UpdateNote(ctx context.Context, p UpdateNoteParams) (*model.Note, error)

	// ListNotes returns every note in creation order.
	ListNotes(ctx context.Context) ([]model.Note, error)

	// SearchNotes returns notes whose title or content contains query,
	// case-insensitively, in creation order.
	SearchNotes(ctx context.Context, query string) ([]model.Note, error)

	// FindNotesByTitle returns every note titled exactly title.
	FindNotesByTitle(ctx context.Context, title string) ([]model.Note, error)

	// RestoreNote inserts n as-is, keeping its id and timestamps. It reports
	// false when a note with that id already exists.
	RestoreNote(ctx context.Context, n model.Note) (bool, error)
}

// ExamStore holds generated exams.
type ExamStore interface {
	// SaveExam stores e, assigning e.ID when empty.
	SaveExam(ctx context.Context, e *model.Exam) error
	GetExam(ctx context.Context, id string) (*model.Exam, error)
	// ListExams returns every exam, oldest first.
	ListExams(ctx context.Context) ([]model.Exam, error)
}

// ResultStore is the append-only exam result history.
type ResultStore interface {
	// AppendResult stores r, assigning r.ID when empty.
	AppendResult(ctx context.Context, r *model.ExamResult) error
	// ListResults returns results for examID, or all results when examID is
	// empty, oldest first.
	ListResults(ctx context.Context, examID string) ([]model.ExamResult, error)
}

// Store combines the three stores.
type Store interface {
	NoteStore
	ExamStore
	ResultStore

	// Close closes the store.
	Close() error
}

// ResolveNote finds a note by id, falling back to an exact title match.
// A title shared by several notes yields ErrAmbiguousTitle.
func ResolveNote(ctx context.Context, s NoteStore, ref string) (*model.Note, error) {
	n, err := s.GetNote(ctx, ref)
	if err == nil {
		return n, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	matches, err := s.FindNotesByTitle(ctx, ref)
	if err != nil {
		return nil, err
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("note %q: %w", ref, ErrNotFound)
	case 1:
		return &matches[0], nil
	default:
		return nil, fmt.Errorf("%w: %q matches %d notes, use an id", ErrAmbiguousTitle, ref, len(matches))
	}
}

// idSource hands out monotonic ULIDs.
type idSource struct {
	mu      sync.Mutex
	entropy io.Reader
}

func newIDSource() *idSource {
	return &idSource{
		entropy: ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0),
	}
}

func (g *idSource) next() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), g.entropy).String()
}
