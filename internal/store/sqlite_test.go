package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rcliao/yournote/internal/model"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dir := t.TempDir()
	s, err := NewSQLiteStore(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// stores returns one fresh instance of each implementation.
func stores(t *testing.T) map[string]Store {
	t.Helper()
	return map[string]Store{
		"memory": NewMemoryStore(),
		"sqlite": newTestStore(t),
	}
}

func TestAddAndGetNote(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			n, err := s.AddNote(ctx, "Biology", "Cells divide by mitosis.")
			if err != nil {
				t.Fatalf("add: %v", err)
			}
			if n.ID == "" {
				t.Fatal("expected non-empty ID")
			}

			got, err := s.GetNote(ctx, n.ID)
			if err != nil {
				t.Fatalf("get: %v", err)
			}
			if got.Title != "Biology" || got.Content != "Cells divide by mitosis." {
				t.Errorf("got %q/%q", got.Title, got.Content)
			}
			if !got.Created.Equal(got.LastEdited) {
				t.Errorf("new note: created %v != last edited %v", got.Created, got.LastEdited)
			}

			untitled, _ := s.AddNote(ctx, "", "")
			if untitled.Title != model.DefaultNoteTitle {
				t.Errorf("expected default title, got %q", untitled.Title)
			}
			if untitled.ID == n.ID {
				t.Error("ids must be unique")
			}
		})
	}
}

func TestGetNoteNotFound(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.GetNote(context.Background(), "nope")
			if !errors.Is(err, ErrNotFound) {
				t.Fatalf("expected ErrNotFound, got %v", err)
			}
		})
	}
}

func TestUpdateNote(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			n, _ := s.AddNote(ctx, "Draft", "v1")
			time.Sleep(2 * time.Millisecond)

			content := "v2"
			updated, err := s.UpdateNote(ctx, UpdateNoteParams{ID: n.ID, Content: &content})
			if err != nil {
				t.Fatalf("update: %v", err)
			}
			if updated.Title != "Draft" {
				t.Errorf("title changed to %q", updated.Title)
			}
			if updated.Content != "v2" {
				t.Errorf("expected v2, got %q", updated.Content)
			}
			if !updated.LastEdited.After(n.LastEdited) {
				t.Error("expected last_edited to advance")
			}

			got, _ := s.GetNote(ctx, n.ID)
			if got.Content != "v2" || got.ID != n.ID {
				t.Errorf("update not persisted: %+v", got)
			}

			title := "Final"
			if _, err := s.UpdateNote(ctx, UpdateNoteParams{ID: "missing", Title: &title}); !errors.Is(err, ErrNotFound) {
				t.Errorf("expected ErrNotFound, got %v", err)
			}
		})
	}
}

func TestListNotesCreationOrder(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			for _, title := range []string{"first", "second", "third"} {
				if _, err := s.AddNote(ctx, title, ""); err != nil {
					t.Fatal(err)
				}
			}
			notes, err := s.ListNotes(ctx)
			if err != nil {
				t.Fatal(err)
			}
			if len(notes) != 3 {
				t.Fatalf("expected 3 notes, got %d", len(notes))
			}
			for i, want := range []string{"first", "second", "third"} {
				if notes[i].Title != want {
					t.Errorf("notes[%d] = %q, want %q", i, notes[i].Title, want)
				}
			}
		})
	}
}

func TestResolveNote(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			a, _ := s.AddNote(ctx, "Chemistry", "atoms")
			s.AddNote(ctx, "Shared", "one")
			s.AddNote(ctx, "Shared", "two")

			got, err := ResolveNote(ctx, s, a.ID)
			if err != nil || got.ID != a.ID {
				t.Fatalf("resolve by id: %v %v", got, err)
			}
			got, err = ResolveNote(ctx, s, "Chemistry")
			if err != nil || got.ID != a.ID {
				t.Fatalf("resolve by title: %v %v", got, err)
			}
			if _, err := ResolveNote(ctx, s, "Shared"); !errors.Is(err, ErrAmbiguousTitle) {
				t.Errorf("expected ErrAmbiguousTitle, got %v", err)
			}
			if _, err := ResolveNote(ctx, s, "Physics"); !errors.Is(err, ErrNotFound) {
				t.Errorf("expected ErrNotFound, got %v", err)
			}
		})
	}
}

func TestExamsAndResults(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			n, _ := s.AddNote(ctx, "Cells", "The mitochondria is the powerhouse of the cell.")

			e := &model.Exam{
				Title:        "Exam on Cells",
				SourceNoteID: n.ID,
				SourceNote:   n.Title,
				QuestionType: model.MultipleChoice,
				DateCreated:  time.Now().UTC(),
				Questions: []model.Question{
					{Kind: model.MultipleChoice, Question: "Powerhouse?", Options: []string{"Mitochondria", "Nucleus"}, Answer: "Mitochondria"},
				},
			}
			if err := s.SaveExam(ctx, e); err != nil {
				t.Fatalf("save exam: %v", err)
			}
			if e.ID == "" {
				t.Fatal("expected exam id to be assigned")
			}

			got, err := s.GetExam(ctx, e.ID)
			if err != nil {
				t.Fatalf("get exam: %v", err)
			}
			if got.SourceNoteID != n.ID || len(got.Questions) != 1 || got.Questions[0].Options[0] != "Mitochondria" {
				t.Errorf("exam not round-tripped: %+v", got)
			}
			if _, err := s.GetExam(ctx, "missing"); !errors.Is(err, ErrNotFound) {
				t.Errorf("expected ErrNotFound, got %v", err)
			}

			exams, _ := s.ListExams(ctx)
			if len(exams) != 1 {
				t.Fatalf("expected 1 exam, got %d", len(exams))
			}

			for _, score := range []int{1, 0} {
				r := &model.ExamResult{
					ExamID: e.ID, ExamTitle: e.Title, DateTaken: time.Now().UTC(),
					Score: score, TotalQuestions: 1, Percentage: float64(score) * 100,
					Results: []model.AnswerResult{{Question: "Powerhouse?", UserAnswer: "x", CorrectAnswer: "Mitochondria", IsCorrect: score == 1}},
				}
				if err := s.AppendResult(ctx, r); err != nil {
					t.Fatalf("append result: %v", err)
				}
				time.Sleep(time.Millisecond)
			}
			s.AppendResult(ctx, &model.ExamResult{ExamID: "other", DateTaken: time.Now().UTC()})

			results, _ := s.ListResults(ctx, e.ID)
			if len(results) != 2 {
				t.Fatalf("expected 2 results, got %d", len(results))
			}
			if results[0].Score != 1 || !results[0].Results[0].IsCorrect {
				t.Errorf("results out of order or not round-tripped: %+v", results[0])
			}
			all, _ := s.ListResults(ctx, "")
			if len(all) != 3 {
				t.Errorf("expected 3 results overall, got %d", len(all))
			}
		})
	}
}

func TestPersistsAcrossReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "notes.db")
	ctx := context.Background()

	s1, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	n, _ := s1.AddNote(ctx, "Kept", "still here")
	s1.Close()

	s2, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	defer s2.Close()
	got, err := s2.GetNote(ctx, n.ID)
	if err != nil {
		t.Fatalf("get after reopen: %v", err)
	}
	if got.Content != "still here" {
		t.Errorf("expected content to persist, got %q", got.Content)
	}
}

func TestDBPathCreation(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "sub", "dir", "test.db")
	s, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	s.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("expected db file to be created")
	}
}

func TestExamReadsAreCopies(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			e := &model.Exam{
				Title:       "Exam on Geo",
				DateCreated: time.Now(),
				Questions: []model.Question{
					{Kind: model.MultipleChoice, Question: "Capital?", Options: []string{"Paris", "Rome"}, Answer: "Paris"},
				},
			}
			if err := s.SaveExam(ctx, e); err != nil {
				t.Fatal(err)
			}

			got, err := s.GetExam(ctx, e.ID)
			if err != nil {
				t.Fatal(err)
			}
			got.Questions[0].Answer = "Rome"
			got.Questions[0].Options[0] = "Berlin"

			list, _ := s.ListExams(ctx)
			list[0].Questions[0].Question = "changed"

			again, _ := s.GetExam(ctx, e.ID)
			q := again.Questions[0]
			if q.Answer != "Paris" || q.Options[0] != "Paris" || q.Question != "Capital?" {
				t.Errorf("stored exam was mutated through a read: %+v", q)
			}
		})
	}
}

func TestCorruptTimestampIsAnError(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	n, err := s.AddNote(ctx, "Biology", "cells")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.DB().ExecContext(ctx, `UPDATE notes SET created = 'yesterday' WHERE id = ?`, n.ID); err != nil {
		t.Fatal(err)
	}

	if _, err := s.GetNote(ctx, n.ID); err == nil {
		t.Error("GetNote: expected an error for a corrupt timestamp")
	}
	if _, err := s.ListNotes(ctx); err == nil {
		t.Error("ListNotes: expected an error for a corrupt timestamp")
	}

	e := &model.Exam{Title: "Exam", DateCreated: time.Now()}
	if err := s.SaveExam(ctx, e); err != nil {
		t.Fatal(err)
	}
	if _, err := s.DB().ExecContext(ctx, `UPDATE exams SET date_created = '' WHERE id = ?`, e.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := s.GetExam(ctx, e.ID); err == nil {
		t.Error("GetExam: expected an error for a corrupt timestamp")
	}
}
