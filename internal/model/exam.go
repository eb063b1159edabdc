package model

import (
	"fmt"
	"time"
)

// QuestionKind tags the shape of a question.
type QuestionKind string

const (
	MultipleChoice QuestionKind = "multiple_choice"
	TrueFalse      QuestionKind = "true_false"
	ShortAnswer    QuestionKind = "short_answer"
)

// ParseQuestionKind accepts the tag or its display label ("True/False").
func ParseQuestionKind(s string) (QuestionKind, error) {
	switch s {
	case "multiple_choice", "Multiple Choice", "mc":
		return MultipleChoice, nil
	case "true_false", "True/False", "tf":
		return TrueFalse, nil
	case "short_answer", "Short Answer", "short":
		return ShortAnswer, nil
	}
	return "", fmt.Errorf("unknown question type %q (valid: multiple_choice, true_false, short_answer)", s)
}

// Label is the human-readable name of the kind.
func (k QuestionKind) Label() string {
	switch k {
	case MultipleChoice:
		return "Multiple Choice"
	case TrueFalse:
		return "True/False"
	case ShortAnswer:
		return "Short Answer"
	}
	return string(k)
}

// Question is a single exam question. Options is only set for
// MultipleChoice.
type Question struct {
	Kind        QuestionKind `json:"kind"`
	Question    string       `json:"question"`
	Options     []string     `json:"options,omitempty"`
	Answer      string       `json:"answer"`
	Explanation string       `json:"explanation"`
}

// Exam is a generated set of questions over one note.
//
// SourceNoteID is the stable reference; SourceNote is the note title at
// generation time, kept for display.
type Exam struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	SourceNoteID string       `json:"source_note_id"`
	SourceNote   string       `json:"source_note"`
	QuestionType QuestionKind `json:"question_type"`
	DateCreated  time.Time    `json:"date_created"`
	Questions    []Question   `json:"questions"`
}

// AnswerResult is the graded outcome of one question.
type AnswerResult struct {
	Question      string `json:"question"`
	UserAnswer    string `json:"user_answer"`
	CorrectAnswer string `json:"correct_answer"`
	IsCorrect     bool   `json:"is_correct"`
	Explanation   string `json:"explanation"`
}

// ExamResult is one graded attempt. Results are append-only.
type ExamResult struct {
	ID             string         `json:"id"`
	ExamID         string         `json:"exam_id"`
	ExamTitle      string         `json:"exam_title"`
	DateTaken      time.Time      `json:"date_taken"`
	Score          int            `json:"score"`
	TotalQuestions int            `json:"total_questions"`
	Percentage     float64        `json:"percentage"`
	Results        []AnswerResult `json:"results"`
}
