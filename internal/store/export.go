package store

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/rcliao/yournote/internal/model"
)

// ExportNotes writes every note as an indented JSON array.
func ExportNotes(ctx context.Context, s NoteStore, w io.Writer) (int, error) {
	notes, err := s.ListNotes(ctx)
	if err != nil {
		return 0, err
	}
	if notes == nil {
		notes = []model.Note{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	if err := enc.Encode(notes); err != nil {
		return 0, fmt.Errorf("encode notes: %w", err)
	}
	return len(notes), nil
}

// ImportResult counts what ImportNotes did.
type ImportResult struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

// ImportNotes reads a JSON array written by ExportNotes. Notes keep their
// ids; ones already present are skipped. Notes without an id are added as
// new notes.
func ImportNotes(ctx context.Context, s NoteStore, r io.Reader) (*ImportResult, error) {
	var notes []model.Note
	if err := json.NewDecoder(r).Decode(&notes); err != nil {
		return nil, fmt.Errorf("decode notes: %w", err)
	}

	res := &ImportResult{}
	for _, n := range notes {
		if n.ID == "" {
			if _, err := s.AddNote(ctx, n.Title, n.Content); err != nil {
				return res, err
			}
			res.Imported++
			continue
		}
		if n.Title == "" {
			n.Title = model.DefaultNoteTitle
		}
		ok, err := s.RestoreNote(ctx, n)
		if err != nil {
			return res, err
		}
		if ok {
			res.Imported++
		} else {
			res.Skipped++
		}
	}
	return res, nil
}
