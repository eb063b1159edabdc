package sections

import (
	"strings"
	"testing"
)

const note = `Some opening words.

# Photosynthesis
Plants turn light into sugar.

## Light reactions
Happen in the thylakoid.

` + "```" + `
# not a heading
` + "```" + `

## Calvin cycle
Fixes carbon.`

func TestSplit_EmptyInput(t *testing.T) {
	if got := Split(""); got != nil {
		t.Errorf("expected nil, got %v", got)
	}
}

func TestSplit_Headings(t *testing.T) {
	got := Split(note)
	want := []struct {
		title string
		level int
	}{
		{IntroTitle, 0},
		{"Photosynthesis", 1},
		{"Light reactions", 2},
		{"Calvin cycle", 2},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d sections, got %d: %v", len(want), len(got), Titles(note))
	}
	for i, w := range want {
		if got[i].Title != w.title || got[i].Level != w.level {
			t.Errorf("section %d = %q/%d, want %q/%d", i, got[i].Title, got[i].Level, w.title, w.level)
		}
	}

	if got[0].StartLine != 1 || got[0].EndLine != 2 {
		t.Errorf("intro lines = %d-%d", got[0].StartLine, got[0].EndLine)
	}
	if !strings.Contains(got[2].Text, "# not a heading") {
		t.Errorf("fenced line should stay in its section, got %q", got[2].Text)
	}
	if !strings.HasPrefix(got[3].Text, "## Calvin cycle") {
		t.Errorf("section text should keep its heading, got %q", got[3].Text)
	}
}

func TestSplit_NoIntroWhenHeadingFirst(t *testing.T) {
	got := Split("# Title\nbody")
	if len(got) != 1 || got[0].Title != "Title" {
		t.Fatalf("unexpected sections %+v", got)
	}
}

func TestSplit_NotHeadings(t *testing.T) {
	for _, text := range []string{"#hashtag", "####### seven", "#"} {
		got := Split(text)
		if len(got) != 1 || got[0].Title != IntroTitle {
			t.Errorf("%q: expected a single intro section, got %+v", text, got)
		}
	}
}

func TestFind(t *testing.T) {
	tests := []struct {
		query string
		want  string
		ok    bool
	}{
		{"calvin", "Calvin cycle", true},
		{"LIGHT", "Light reactions", true},
		{"intro", IntroTitle, true},
		{"respiration", "", false},
	}
	for _, tt := range tests {
		s, ok := Find(note, tt.query)
		if ok != tt.ok || s.Title != tt.want {
			t.Errorf("Find(%q) = %q,%v want %q,%v", tt.query, s.Title, ok, tt.want, tt.ok)
		}
	}
}
