package store

import (
	"context"
	"os"
)

// Stats holds store statistics.
type Stats struct {
	DBPath            string  `json:"db_path,omitempty"`
	DBSizeBytes       int64   `json:"db_size_bytes,omitempty"`
	Notes             int     `json:"notes"`
	Exams             int     `json:"exams"`
	Results           int     `json:"results"`
	AveragePercentage float64 `json:"average_percentage"`
	BestPercentage    float64 `json:"best_percentage"`
}

// CollectStats counts the records in s. dbPath, when set, adds the file
// size.
func CollectStats(ctx context.Context, s Store, dbPath string) (*Stats, error) {
	st := &Stats{DBPath: dbPath}

	if dbPath != "" {
		if info, err := os.Stat(dbPath); err == nil {
			st.DBSizeBytes = info.Size()
		}
	}

	notes, err := s.ListNotes(ctx)
	if err != nil {
		return st, err
	}
	st.Notes = len(notes)

	exams, err := s.ListExams(ctx)
	if err != nil {
		return st, err
	}
	st.Exams = len(exams)

	results, err := s.ListResults(ctx, "")
	if err != nil {
		return st, err
	}
	st.Results = len(results)

	var sum float64
	for _, r := range results {
		sum += r.Percentage
		if r.Percentage > st.BestPercentage {
			st.BestPercentage = r.Percentage
		}
	}
	if len(results) > 0 {
		st.AveragePercentage = sum / float64(len(results))
	}

	return st, nil
}
