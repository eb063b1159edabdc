// Package exam generates exams from notes and grades attempts.
package exam

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/rcliao/yournote/internal/failure"
	"github.com/rcliao/yournote/internal/llm"
	"github.com/rcliao/yournote/internal/model"
)

const (
	MinQuestions     = 3
	MaxQuestions     = 20
	DefaultQuestions = 5
)

// MsgEmptyNote is returned when the source note has no content.
const MsgEmptyNote = "Selected note has no content. Please add content to your notes first."

const systemTmpl = `You are an education expert. Generate %d %s questions based on the following notes.
For each question:
1. Create a clear, concise question
2. Provide answer options if multiple choice
3. Include the correct answer
4. Explain why the answer is correct

Format the response as a JSON array with objects containing:
- question: The question text
- options: Array of options (for multiple choice)
- answer: The correct answer
- explanation: Brief explanation of the correct answer`

const promptTmpl = "Generate an exam based on these notes:\n\n%s"

// GenerateParams holds parameters for generating an exam.
type GenerateParams struct {
	Note  *model.Note
	Title string
	Count int
	Type  model.QuestionKind
}

// Generator asks the model for exam questions.
type Generator struct {
	gateway *llm.Gateway
	logger  *slog.Logger
}

// NewGenerator builds a generator. A nil logger means slog.Default().
func NewGenerator(gateway *llm.Gateway, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{gateway: gateway, logger: logger}
}

// Generate returns a new, unsaved exam over p.Note.
func (g *Generator) Generate(ctx context.Context, p GenerateParams) (*model.Exam, error) {
	if p.Note == nil {
		return nil, fmt.Errorf("no source note")
	}
	if p.Count < MinQuestions || p.Count > MaxQuestions {
		return nil, fmt.Errorf("question count must be between %d and %d, got %d", MinQuestions, MaxQuestions, p.Count)
	}
	kind, err := model.ParseQuestionKind(string(p.Type))
	if err != nil {
		return nil, err
	}
	p.Type = kind
	if strings.TrimSpace(p.Note.Content) == "" {
		return nil, failure.New(failure.EmptyInput, MsgEmptyNote)
	}

	system := fmt.Sprintf(systemTmpl, p.Count, p.Type)
	resp, err := g.gateway.AskPlain(ctx, fmt.Sprintf(promptTmpl, p.Note.Content), system)
	if err != nil {
		return nil, err
	}

	questions, err := ParseQuestions(resp)
	if err != nil {
		g.logger.Warn("exam response not parseable", "note", p.Note.ID, "err", err)
		return nil, err
	}
	if len(questions) != p.Count {
		g.logger.Debug("question count differs from request", "want", p.Count, "got", len(questions))
	}

	title := strings.TrimSpace(p.Title)
	if title == "" {
		title = "Exam on " + p.Note.Title
	}

	return &model.Exam{
		Title:        title,
		SourceNoteID: p.Note.ID,
		SourceNote:   p.Note.Title,
		QuestionType: p.Type,
		DateCreated:  time.Now().UTC(),
		Questions:    questions,
	}, nil
}

// Widget returns the fixed choices offered for q, or nil when the answer is
// free text.
func Widget(q model.Question) []string {
	switch q.Kind {
	case model.MultipleChoice:
		return q.Options
	case model.TrueFalse:
		return []string{"True", "False"}
	}
	return nil
}

// Grade scores answers against e. answers[i] belongs to e.Questions[i];
// a missing answer counts as empty. Comparison is case-insensitive but
// otherwise exact: surrounding whitespace is significant.
func Grade(e *model.Exam, answers []string) *model.ExamResult {
	res := &model.ExamResult{
		ExamID:         e.ID,
		ExamTitle:      e.Title,
		DateTaken:      time.Now().UTC(),
		TotalQuestions: len(e.Questions),
		Results:        make([]model.AnswerResult, 0, len(e.Questions)),
	}

	for i, q := range e.Questions {
		var answer string
		if i < len(answers) {
			answer = answers[i]
		}
		correct := strings.ToLower(answer) == strings.ToLower(q.Answer)
		if correct {
			res.Score++
		}
		res.Results = append(res.Results, model.AnswerResult{
			Question:      q.Question,
			UserAnswer:    answer,
			CorrectAnswer: q.Answer,
			IsCorrect:     correct,
			Explanation:   q.Explanation,
		})
	}

	if res.TotalQuestions > 0 {
		res.Percentage = float64(res.Score) / float64(res.TotalQuestions) * 100
	}
	return res
}
