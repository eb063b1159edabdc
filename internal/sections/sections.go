// Package sections splits markdown notes on their headings.
package sections

import (
	"strings"
)

// IntroTitle names the text before the first heading.
const IntroTitle = "Introduction"

// Section is a heading and the lines under it, up to the next heading.
type Section struct {
	Title     string `json:"title"`
	Level     int    `json:"level"`
	Text      string `json:"text"`
	StartLine int    `json:"start_line"`
	EndLine   int    `json:"end_line"`
}

// Split returns the sections of text in order. Text before the first
// heading becomes an IntroTitle section with level 0; blank sections are
// dropped. Heading lines inside ``` fences are not headings.
func Split(text string) []Section {
	lines := strings.Split(text, "\n")
	var out []Section

	current := Section{Title: IntroTitle, StartLine: 1}
	var body []string

	flush := func(endLine int) {
		current.EndLine = endLine
		current.Text = strings.TrimSpace(strings.Join(body, "\n"))
		if current.Text != "" {
			out = append(out, current)
		}
		body = nil
	}

	inFence := false
	for i, line := range lines {
		lineNum := i + 1
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "```") {
			inFence = !inFence
		}
		if !inFence {
			if level, title, ok := heading(trimmed); ok {
				flush(lineNum - 1)
				current = Section{Title: title, Level: level, StartLine: lineNum}
			}
		}
		body = append(body, line)
	}
	flush(len(lines))

	return out
}

// heading parses "## Title". A heading needs 1 to 6 '#' then a space.
func heading(line string) (int, string, bool) {
	level := 0
	for level < len(line) && line[level] == '#' {
		level++
	}
	if level == 0 || level > 6 || level >= len(line) || line[level] != ' ' {
		return 0, "", false
	}
	title := strings.TrimSpace(line[level:])
	if title == "" {
		return 0, "", false
	}
	return level, title, true
}

// Find returns the first section whose title contains query,
// case-insensitively.
func Find(text, query string) (Section, bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	for _, s := range Split(text) {
		if strings.Contains(strings.ToLower(s.Title), q) {
			return s, true
		}
	}
	return Section{}, false
}

// Titles lists the section titles of text.
func Titles(text string) []string {
	var out []string
	for _, s := range Split(text) {
		out = append(out, s.Title)
	}
	return out
}
