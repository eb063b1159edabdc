package study

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/yournote/internal/failure"
	"github.com/rcliao/yournote/internal/llm"
	"github.com/rcliao/yournote/internal/llm/llmtest"
)

const notes = "Cells make energy in the mitochondria."

func TestSummary(t *testing.T) {
	fake := &llmtest.Fake{Reply: "summary"}
	tools := NewTools(fake.Gateway())

	out, err := tools.Summary(context.Background(), notes, "")
	require.NoError(t, err)
	assert.Equal(t, "summary", out)
	assert.Equal(t, notes, fake.User())
	assert.True(t, strings.HasPrefix(fake.System(), "You are a study assistant. Generate a comprehensive summary"))

	_, err = tools.Summary(context.Background(), notes, "energy")
	require.NoError(t, err)
	assert.Contains(t, fake.System(), "specifically about 'energy'")
}

func TestAnalyze(t *testing.T) {
	fake := &llmtest.Fake{Reply: "gaps"}
	out, err := NewTools(fake.Gateway()).Analyze(context.Background(), notes)
	require.NoError(t, err)
	assert.Equal(t, "gaps", out)
	assert.True(t, strings.HasPrefix(fake.System(), "You are an educational analyst."))
}

func TestEmptyContent(t *testing.T) {
	fake := &llmtest.Fake{Reply: "x"}
	tools := NewTools(fake.Gateway())

	_, err := tools.Summary(context.Background(), "  \n", "")
	assert.ErrorIs(t, err, failure.ErrEmptyInput)
	_, err = tools.Generate(context.Background(), Flashcards, "", "")
	assert.ErrorIs(t, err, failure.ErrEmptyInput)

	var errs int
	for _, err := range tools.AnalyzeStream(context.Background(), "", nil) {
		if err != nil {
			errs++
			assert.Equal(t, MsgEmptyNote, err.Error())
		}
	}
	assert.Equal(t, 1, errs)
	assert.Equal(t, 0, fake.Calls())
}

func TestGenerateMaterials(t *testing.T) {
	tests := []struct {
		material Material
		topic    string
		want     string
	}{
		{Flashcards, "", "Create 5-10 flashcards from the notes provided."},
		{Quiz, "", "Create 5-10 flashcards from the notes provided."},
		{Flashcards, "ATP", "important details about ATP."},
		{MindMap, "", "Create a text-based mind map from the provided notes."},
		{MindMap, "ATP", "# ATP\n- Main Concept 1"},
		{StudyGuide, "", "Create a comprehensive study guide"},
		{StudyGuide, "ATP", "Key definitions and concepts related to ATP"},
		{Diagram, "", "Create a Mermaid diagram based on the provided notes."},
	}
	for _, tt := range tests {
		t.Run(string(tt.material)+"/"+tt.topic, func(t *testing.T) {
			fake := &llmtest.Fake{Reply: "material"}
			out, err := NewTools(fake.Gateway()).Generate(context.Background(), tt.material, notes, tt.topic)
			require.NoError(t, err)
			assert.Equal(t, "material", out)
			assert.Contains(t, fake.System(), tt.want)
			assert.NotContains(t, fake.System(), "{topic}")
		})
	}
}

func TestParseMaterial(t *testing.T) {
	for in, want := range map[string]Material{
		"Flashcards":     Flashcards,
		"Quiz Questions": Quiz,
		"Mind Map":       MindMap,
		"study guide":    StudyGuide,
		"diagram":        Diagram,
	} {
		got, err := ParseMaterial(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := ParseMaterial("poster")
	assert.Error(t, err)
}

func TestWrapMermaid(t *testing.T) {
	resp := "Intro text.\n```mermaid\ngraph TD\n  A-->B\n```\nOutro."
	want := "Intro text.\n\nHere's a diagram based on your notes:\n\n```mermaid\ngraph TD\n  A-->B\n```\n\nOutro."
	assert.Equal(t, want, WrapMermaid(resp))

	assert.Equal(t, "no diagram", WrapMermaid("no diagram"))
	assert.Equal(t, "```mermaid\nunterminated", WrapMermaid("```mermaid\nunterminated"))
}

func TestGenerateDiagramWraps(t *testing.T) {
	fake := &llmtest.Fake{Reply: "```mermaid\nflowchart LR\n  X-->Y\n```"}
	out, err := NewTools(fake.Gateway()).Generate(context.Background(), Diagram, notes, "")
	require.NoError(t, err)
	assert.Contains(t, out, "Here's a diagram based on your notes:")
}

func TestSummaryStream(t *testing.T) {
	fake := &llmtest.Fake{Chunks: []string{"part one", ", part two"}}
	var res llm.StreamResult
	var b strings.Builder
	for c, err := range NewTools(fake.Gateway()).SummaryStream(context.Background(), notes, "", &res) {
		require.NoError(t, err)
		b.WriteString(c)
	}
	assert.Equal(t, "part one, part two", b.String())
	assert.Equal(t, "part one, part two", res.Text)
}

func TestScope(t *testing.T) {
	content := "intro\n# Glycolysis\nsplits glucose\n# Krebs cycle\nmakes NADH"

	got, err := Scope(content, "krebs")
	require.NoError(t, err)
	assert.Equal(t, "# Krebs cycle\nmakes NADH", got)

	got, err = Scope(content, "")
	require.NoError(t, err)
	assert.Equal(t, content, got)

	_, err = Scope(content, "calvin")
	assert.Error(t, err)
}
