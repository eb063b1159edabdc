package store

import (
	"context"
	"strings"

	"github.com/rcliao/yournote/internal/model"
)

// noteMatches reports whether query is a case-insensitive substring of the
// note's title or content. lowerQuery must already be lower-cased.
func noteMatches(n *model.Note, lowerQuery string) bool {
	return strings.Contains(strings.ToLower(n.Title), lowerQuery) ||
		strings.Contains(strings.ToLower(n.Content), lowerQuery)
}

// SearchNotes matches query as a literal substring of title or content.
// Case folding happens in Go because SQLite's LIKE folds ASCII only.
func (s *SQLiteStore) SearchNotes(ctx context.Context, query string) ([]model.Note, error) {
	notes, err := s.ListNotes(ctx)
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(query)
	var out []model.Note
	for i := range notes {
		if noteMatches(&notes[i], q) {
			out = append(out, notes[i])
		}
	}
	return out, nil
}
