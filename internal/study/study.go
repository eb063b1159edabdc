// Package study generates summaries, analyses and study materials from a
// note's content.
package study

import (
	"context"
	"fmt"
	"iter"
	"strings"

	"github.com/rcliao/yournote/internal/failure"
	"github.com/rcliao/yournote/internal/llm"
	"github.com/rcliao/yournote/internal/sections"
)

// MsgEmptyNote is returned when there is nothing to work from.
const MsgEmptyNote = "Add content to your note to use these tools."

// Material is a kind of generated study material.
type Material string

const (
	Flashcards Material = "flashcards"
	Quiz       Material = "quiz"
	MindMap    Material = "mindmap"
	StudyGuide Material = "guide"
	Diagram    Material = "diagram"
)

// Materials lists every material in menu order.
var Materials = []Material{Flashcards, Quiz, MindMap, StudyGuide, Diagram}

// ParseMaterial accepts a material name or its menu label ("Study Guide").
func ParseMaterial(s string) (Material, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "flashcards", "flashcard":
		return Flashcards, nil
	case "quiz", "quiz questions":
		return Quiz, nil
	case "mindmap", "mind map", "mind-map":
		return MindMap, nil
	case "guide", "study guide", "study-guide":
		return StudyGuide, nil
	case "diagram":
		return Diagram, nil
	}
	return "", fmt.Errorf("unknown material %q (valid: flashcards, quiz, mindmap, guide, diagram)", s)
}

// Tools runs the study prompts through a gateway.
type Tools struct {
	gateway *llm.Gateway
}

func NewTools(gateway *llm.Gateway) *Tools {
	return &Tools{gateway: gateway}
}

func checkContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return failure.New(failure.EmptyInput, MsgEmptyNote)
	}
	return nil
}

// Summary summarizes content, focused on topic when it is set.
func (t *Tools) Summary(ctx context.Context, content, topic string) (string, error) {
	if err := checkContent(content); err != nil {
		return "", err
	}
	return t.gateway.Ask(ctx, content, pick(summarySystem, topicSummarySystem, topic))
}

// SummaryStream is Summary delivered chunk by chunk.
func (t *Tools) SummaryStream(ctx context.Context, content, topic string, res *llm.StreamResult) iter.Seq2[string, error] {
	if err := checkContent(content); err != nil {
		return failed(err)
	}
	return t.gateway.AskStream(ctx, content, pick(summarySystem, topicSummarySystem, topic), res)
}

// Analyze looks for gaps and organization problems in content.
func (t *Tools) Analyze(ctx context.Context, content string) (string, error) {
	if err := checkContent(content); err != nil {
		return "", err
	}
	return t.gateway.Ask(ctx, content, analyzeSystem)
}

// AnalyzeStream is Analyze delivered chunk by chunk.
func (t *Tools) AnalyzeStream(ctx context.Context, content string, res *llm.StreamResult) iter.Seq2[string, error] {
	if err := checkContent(content); err != nil {
		return failed(err)
	}
	return t.gateway.AskStream(ctx, content, analyzeSystem, res)
}

// Generate produces study material of kind m. Quiz questions use the
// flashcard format. Diagrams have their Mermaid block re-wrapped.
func (t *Tools) Generate(ctx context.Context, m Material, content, topic string) (string, error) {
	if err := checkContent(content); err != nil {
		return "", err
	}

	var system string
	switch m {
	case Flashcards, Quiz:
		system = pick(flashcardsSystem, topicFlashcardsSystem, topic)
	case MindMap:
		system = pick(mindMapSystem, topicMindMapSystem, topic)
	case StudyGuide:
		system = pick(studyGuideSystem, topicStudyGuideSystem, topic)
	case Diagram:
		system = pick(diagramSystem, topicDiagramSystem, topic)
	default:
		return "", fmt.Errorf("unknown material %q", m)
	}

	out, err := t.gateway.Ask(ctx, content, system)
	if err != nil {
		return "", err
	}
	if m == Diagram {
		out = WrapMermaid(out)
	}
	return out, nil
}

// WrapMermaid isolates the first ```mermaid block of response under a
// short lead-in, keeping the text before and after it. Responses without
// a complete block are returned unchanged.
func WrapMermaid(response string) string {
	const open = "```mermaid"
	start := strings.Index(response, open)
	if start < 0 {
		return response
	}
	end := strings.Index(response[start+len(open):], "```")
	if end < 0 {
		return response
	}
	end += start + len(open)

	code := strings.TrimSpace(response[start+len(open) : end])
	var b strings.Builder
	b.WriteString(strings.TrimSpace(response[:start]))
	b.WriteString("\n\nHere's a diagram based on your notes:\n\n")
	b.WriteString("```mermaid\n" + code + "\n```\n\n")
	b.WriteString(strings.TrimSpace(response[end+3:]))
	return b.String()
}

// Scope narrows content to the section whose title matches query. An empty
// query keeps the whole note.
func Scope(content, query string) (string, error) {
	if strings.TrimSpace(query) == "" {
		return content, nil
	}
	s, ok := sections.Find(content, query)
	if !ok {
		return "", fmt.Errorf("section %q not found (have: %s)", query, strings.Join(sections.Titles(content), ", "))
	}
	return s.Text, nil
}

func failed(err error) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		yield("", err)
	}
}
