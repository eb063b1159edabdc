package store

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/rcliao/yournote/internal/model"
)

// MemoryStore implements Store in process memory. It lives as long as the
// session that owns it.
type MemoryStore struct {
	mu      sync.RWMutex
	ids     *idSource
	notes   []*model.Note
	byID    map[string]*model.Note
	exams   []*model.Exam
	results []model.ExamResult
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		ids:  newIDSource(),
		byID: map[string]*model.Note{},
	}
}

func (s *MemoryStore) AddNote(ctx context.Context, title, content string) (*model.Note, error) {
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

	s.mu.Lock()
	defer s.mu.Unlock()
	s.notes = append(s.notes, n)
	s.byID[n.ID] = n

	out := *n
	return &out, nil
}

func (s *MemoryStore) GetNote(ctx context.Context, id string) (*model.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n, ok := s.byID[id]
	if !ok {
		return nil, fmt.Errorf("note %s: %w", id, ErrNotFound)
	}
	out := *n
	return &out, nil
}

func (s *MemoryStore) UpdateNote(ctx context.Context, p UpdateNoteParams) (*model.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.byID[p.ID]
	if !ok {
		return nil, fmt.Errorf("note %s: %w", p.ID, ErrNotFound)
	}
	if p.Title != nil {
		n.Title = *p.Title
	}
	if p.Content != nil {
		n.Content = *p.Content
	}
	n.LastEdited = time.Now().UTC()
	out := *n
	return &out, nil
}

func (s *MemoryStore) ListNotes(ctx context.Context) ([]model.Note, error) {
	return s.filter(func(*model.Note) bool { return true }), nil
}

func (s *MemoryStore) SearchNotes(ctx context.Context, query string) ([]model.Note, error) {
	q := strings.ToLower(query)
	return s.filter(func(n *model.Note) bool { return noteMatches(n, q) }), nil
}

func (s *MemoryStore) FindNotesByTitle(ctx context.Context, title string) ([]model.Note, error) {
	return s.filter(func(n *model.Note) bool { return n.Title == title }), nil
}

func (s *MemoryStore) RestoreNote(ctx context.Context, n model.Note) (bool, error) {
	if n.ID == "" {
		return false, fmt.Errorf("restore note: empty id")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[n.ID]; ok {
		return false, nil
	}
	stored := n
	s.notes = append(s.notes, &stored)
	s.byID[n.ID] = &stored
	return true, nil
}

func (s *MemoryStore) filter(keep func(*model.Note) bool) []model.Note {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.Note
	for _, n := range s.notes {
		if keep(n) {
			out = append(out, *n)
		}
	}
	slices.SortStableFunc(out, func(a, b model.Note) int {
		if c := a.Created.Compare(b.Created); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return out
}

func (s *MemoryStore) SaveExam(ctx context.Context, e *model.Exam) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e.ID == "" {
		e.ID = s.ids.next()
	}
	stored := cloneExam(e)
	s.exams = append(s.exams, &stored)
	return nil
}

func (s *MemoryStore) GetExam(ctx context.Context, id string) (*model.Exam, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.exams {
		if e.ID == id {
			out := cloneExam(e)
			return &out, nil
		}
	}
	return nil, fmt.Errorf("exam %s: %w", id, ErrNotFound)
}

func (s *MemoryStore) ListExams(ctx context.Context) ([]model.Exam, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Exam, 0, len(s.exams))
	for _, e := range s.exams {
		out = append(out, cloneExam(e))
	}
	return out, nil
}

func (s *MemoryStore) AppendResult(ctx context.Context, r *model.ExamResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r.ID == "" {
		r.ID = s.ids.next()
	}
	stored := *r
	stored.Results = append([]model.AnswerResult(nil), r.Results...)
	s.results = append(s.results, stored)
	return nil
}

func (s *MemoryStore) ListResults(ctx context.Context, examID string) ([]model.ExamResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.ExamResult
	for _, r := range s.results {
		if examID == "" || r.ExamID == examID {
			r.Results = append([]model.AnswerResult(nil), r.Results...)
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *MemoryStore) Close() error { return nil }

// cloneExam copies e deeply enough that callers cannot reach stored
// questions or their options.
func cloneExam(e *model.Exam) model.Exam {
	out := *e
	out.Questions = make([]model.Question, len(e.Questions))
	for i, q := range e.Questions {
		q.Options = append([]string(nil), q.Options...)
		out.Questions[i] = q
	}
	return out
}
