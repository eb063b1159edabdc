package store

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/rcliao/yournote/internal/model"
)

const mlBasics = `Machine Learning Overview:
1. Definition: Machine learning is a subset of AI that enables systems to learn and improve from experience.

Key Types of Machine Learning:
- Supervised Learning: Model learns from labeled training data
  * Examples: Classification, Regression
- Unsupervised Learning: Model finds patterns in unlabeled data
  * Examples: Clustering, Dimensionality Reduction
- Reinforcement Learning: Agent learns by interacting with environment

Common Algorithms:
* Linear Regression
* Decision Trees
* Neural Networks
* Support Vector Machines
* K-Means Clustering`

const pythonCheatsheet = `Python Essentials:
1. Data Types
- Integers: whole numbers (int)
- Floats: decimal numbers (float)
- Strings: text data (str)
- Lists: ordered, mutable collections []
- Dictionaries: key-value pairs {}

2. Basic Operations
* Arithmetic: +, -, *, /, //, %
* Comparison: ==, !=, <, >, <=, >=
* Logical: and, or, not

3. Control Flow
- if-elif-else statements
- for loops
- while loops
- list comprehensions

4. Functions
def function_name(parameters):
    # function body
    return value`

const day = 24 * time.Hour

// SampleNotes returns the two starter notes with timestamps relative to now
// and ids derived from their creation time.
func SampleNotes(now time.Time) []model.Note {
	notes := []model.Note{
		{
			Title:      "Machine Learning Basics",
			Content:    mlBasics,
			Created:    now.Add(-5 * day),
			LastEdited: now.Add(-2 * day),
		},
		{
			Title:      "Python Programming Cheatsheet",
			Content:    pythonCheatsheet,
			Created:    now.Add(-10 * day),
			LastEdited: now.Add(-3 * day),
		},
	}
	for i := range notes {
		notes[i].ID = ulid.MustNew(ulid.Timestamp(notes[i].Created), ulid.DefaultEntropy()).String()
	}
	return notes
}

// Seed adds the sample notes whose titles are not taken yet and returns how
// many were added.
func Seed(ctx context.Context, s NoteStore) (int, error) {
	added := 0
	for _, n := range SampleNotes(time.Now().UTC()) {
		existing, err := s.FindNotesByTitle(ctx, n.Title)
		if err != nil {
			return added, err
		}
		if len(existing) > 0 {
			continue
		}
		ok, err := s.RestoreNote(ctx, n)
		if err != nil {
			return added, err
		}
		if ok {
			added++
		}
	}
	return added, nil
}
