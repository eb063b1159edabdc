package exam

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/yournote/internal/failure"
	"github.com/rcliao/yournote/internal/llm/llmtest"
	"github.com/rcliao/yournote/internal/model"
)

func TestParseQuestionsJSONFence(t *testing.T) {
	resp := "Here is your exam:\n```json\n[{\"question\":\"Q1\",\"answer\":\"A1\",\"explanation\":\"E1\"}]\n```\nGood luck!"

	got, err := ParseQuestions(resp)
	require.NoError(t, err)
	assert.Equal(t, []model.Question{
		{Kind: model.ShortAnswer, Question: "Q1", Answer: "A1", Explanation: "E1"},
	}, got)
}

func TestParseQuestionsFallbacks(t *testing.T) {
	tests := []struct {
		name string
		resp string
		want int
	}{
		{"plain fence", "```\n[{\"question\":\"a\"},{\"question\":\"b\"}]\n```", 2},
		{"raw json", `[{"question":"a"}]`, 1},
		{"wrapped object", `{"questions":[{"question":"a"},{"question":"b"},{"question":"c"}]}`, 3},
		{"json fence wins", "```\nnot json\n```\n```json\n[{\"question\":\"a\"}]\n```", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseQuestions(tt.resp)
			require.NoError(t, err)
			assert.Len(t, got, tt.want)
		})
	}
}

func TestParseQuestionsFailure(t *testing.T) {
	resp := "I'm sorry, I can't produce an exam for that."
	_, err := ParseQuestions(resp)
	require.Error(t, err)

	assert.ErrorIs(t, err, failure.ErrParse)

	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, resp, pe.RawResponse)

	var record map[string]string
	b, _ := json.Marshal(pe)
	require.NoError(t, json.Unmarshal(b, &record))
	assert.Len(t, record, 2)
	assert.Contains(t, record, "error")
	assert.Equal(t, resp, record["raw_response"])
}

func TestParseQuestionsRejectsTrailingAndEmpty(t *testing.T) {
	tests := []struct {
		name string
		resp string
	}{
		{"trailing prose", `[{"question":"a","answer":"b"}] Let me know if you need more!`},
		{"two values", `[{"question":"a"}] [{"question":"b"}]`},
		{"wrapped with trailing prose", `{"questions":[{"question":"a"}]} hope this helps`},
		{"null", "null"},
		{"empty list", "[]"},
		{"empty wrapped list", `{"questions":[]}`},
		{"empty fenced list", "```json\n[]\n```"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseQuestions(tt.resp)
			require.Error(t, err)
			assert.Nil(t, got)
			assert.ErrorIs(t, err, failure.ErrParse)

			var pe *ParseError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, tt.resp, pe.RawResponse)
		})
	}

	got, err := ParseQuestions("[{\"question\":\"a\"}]\n\n")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestParseQuestionsClassifiesKinds(t *testing.T) {
	resp := `[
		{"question":"Capital of France?","options":["Paris","Rome"],"answer":"Paris","explanation":"x"},
		{"question":"The sun is a star?","answer":true},
		{"question":"Name the powerhouse of the cell.","answer":"mitochondria"},
		{"question":"2+2","answer":4}
	]`
	got, err := ParseQuestions(resp)
	require.NoError(t, err)
	require.Len(t, got, 4)

	assert.Equal(t, model.MultipleChoice, got[0].Kind)
	assert.Equal(t, []string{"Paris", "Rome"}, got[0].Options)
	assert.Equal(t, model.TrueFalse, got[1].Kind)
	assert.Equal(t, "True", got[1].Answer)
	assert.Equal(t, model.ShortAnswer, got[2].Kind)
	assert.Equal(t, "4", got[3].Answer)
}

func TestWidget(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, Widget(model.Question{Kind: model.MultipleChoice, Options: []string{"a", "b"}}))
	assert.Equal(t, []string{"True", "False"}, Widget(model.Question{Kind: model.TrueFalse}))
	assert.Nil(t, Widget(model.Question{Kind: model.ShortAnswer}))
}

func TestGrade(t *testing.T) {
	e := &model.Exam{
		ID:    "exam-1",
		Title: "Geography",
		Questions: []model.Question{
			{Question: "Capital of France", Answer: "paris"},
			{Question: "Capital of France again", Answer: " paris"},
			{Question: "Capital of Italy", Answer: "Rome"},
		},
	}

	res := Grade(e, []string{"Paris", "Paris ", "Milan"})
	assert.Equal(t, "exam-1", res.ExamID)
	assert.Equal(t, 3, res.TotalQuestions)
	assert.True(t, res.Results[0].IsCorrect)
	assert.False(t, res.Results[1].IsCorrect, "surrounding whitespace is significant")
	assert.False(t, res.Results[2].IsCorrect)
	assert.Equal(t, 1, res.Score)
	assert.InDelta(t, 100*float64(res.Score)/float64(res.TotalQuestions), res.Percentage, 1e-9)
}

func TestGradeMissingAnswersAndEmptyExam(t *testing.T) {
	e := &model.Exam{Questions: []model.Question{{Answer: "x"}, {Answer: ""}}}
	res := Grade(e, []string{"X"})
	assert.Equal(t, 2, res.Score) // the missing answer matches the empty one
	assert.Equal(t, 100.0, res.Percentage)

	empty := Grade(&model.Exam{}, nil)
	assert.Equal(t, 0, empty.TotalQuestions)
	assert.Equal(t, 0.0, empty.Percentage)
}

func TestGenerateMitochondria(t *testing.T) {
	note := &model.Note{ID: "01NOTE", Title: "Cell Biology", Content: "The mitochondria is the powerhouse of the cell."}
	fake := &llmtest.Fake{Reply: "```json\n" + `[
		{"question":"What is the powerhouse of the cell?","options":["Nucleus","Mitochondria","Ribosome"],"answer":"Mitochondria","explanation":"It produces ATP."},
		{"question":"Where is ATP mostly made?","options":["Mitochondria","Golgi"],"answer":"Mitochondria","explanation":"Cellular respiration."},
		{"question":"Mitochondria are found in?","options":["Animal cells","Viruses"],"answer":"Animal cells","explanation":"Eukaryotes."}
	]` + "\n```"}

	g := NewGenerator(fake.Gateway(), nil)
	e, err := g.Generate(context.Background(), GenerateParams{Note: note, Count: 3, Type: model.MultipleChoice})
	require.NoError(t, err)

	assert.Len(t, e.Questions, 3)
	assert.Equal(t, "Cell Biology", e.SourceNote)
	assert.Equal(t, "01NOTE", e.SourceNoteID)
	assert.Equal(t, "Exam on Cell Biology", e.Title)
	assert.Equal(t, model.MultipleChoice, e.QuestionType)

	assert.Contains(t, fake.System(), "Generate 3 multiple_choice questions")
	assert.Equal(t, "Generate an exam based on these notes:\n\nThe mitochondria is the powerhouse of the cell.", fake.User())

	// renaming the note later does not change what the exam recorded
	note.Title = "Renamed"
	assert.Equal(t, "Cell Biology", e.SourceNote)
}

func TestGenerateValidation(t *testing.T) {
	fake := &llmtest.Fake{Reply: "[]"}
	g := NewGenerator(fake.Gateway(), nil)
	note := &model.Note{Title: "n", Content: "content"}

	_, err := g.Generate(context.Background(), GenerateParams{Note: note, Count: 2, Type: model.TrueFalse})
	assert.Error(t, err)
	_, err = g.Generate(context.Background(), GenerateParams{Note: note, Count: 21, Type: model.TrueFalse})
	assert.Error(t, err)
	_, err = g.Generate(context.Background(), GenerateParams{Note: note, Count: 5, Type: "essay"})
	assert.Error(t, err)

	_, err = g.Generate(context.Background(), GenerateParams{Note: &model.Note{Title: "blank"}, Count: 5, Type: model.TrueFalse})
	require.Error(t, err)
	assert.ErrorIs(t, err, failure.ErrEmptyInput)
	assert.Equal(t, MsgEmptyNote, err.Error())

	assert.Equal(t, 0, fake.Calls())
}

func TestGenerateCustomTitleAndParseFailure(t *testing.T) {
	note := &model.Note{ID: "n1", Title: "Physics", Content: "F = ma"}

	fake := &llmtest.Fake{Reply: `[{"question":"Is F = ma?","answer":"True"}]`}
	e, err := NewGenerator(fake.Gateway(), nil).Generate(context.Background(),
		GenerateParams{Note: note, Title: "Quiz 1", Count: 3, Type: model.TrueFalse})
	require.NoError(t, err)
	assert.Equal(t, "Quiz 1", e.Title)

	bad := &llmtest.Fake{Reply: "no json here"}
	_, err = NewGenerator(bad.Gateway(), nil).Generate(context.Background(),
		GenerateParams{Note: note, Count: 3, Type: model.TrueFalse})
	assert.ErrorIs(t, err, failure.ErrParse)
}

func TestGenerateNormalizesQuestionType(t *testing.T) {
	note := &model.Note{ID: "n1", Title: "Geo", Content: "Paris is the capital of France."}
	fake := &llmtest.Fake{Reply: `[{"question":"Capital of France?","options":["Paris","Rome"],"answer":"Paris"}]`}

	e, err := NewGenerator(fake.Gateway(), nil).Generate(context.Background(),
		GenerateParams{Note: note, Count: 3, Type: "Multiple Choice"})
	require.NoError(t, err)
	assert.Equal(t, model.MultipleChoice, e.QuestionType)
	assert.Contains(t, fake.System(), "3 multiple_choice questions")
	assert.NotContains(t, fake.System(), "Multiple Choice")

	e, err = NewGenerator(fake.Gateway(), nil).Generate(context.Background(),
		GenerateParams{Note: note, Count: 3, Type: "tf"})
	require.NoError(t, err)
	assert.Equal(t, model.TrueFalse, e.QuestionType)
}
