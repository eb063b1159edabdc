// Package importer turns PDF and markdown files into note bodies.
package importer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/gen2brain/go-fitz"

	"github.com/rcliao/yournote/internal/failure"
)

// Document is an imported file ready to become a note.
type Document struct {
	Path    string `json:"path"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Pages   int    `json:"pages,omitempty"`
}

// FromFile imports path based on its extension.
func FromFile(ctx context.Context, path string) (*Document, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return FromPDF(ctx, path)
	case ".md", ".markdown", ".txt":
		return FromMarkdown(path)
	}
	return nil, fmt.Errorf("unsupported file type %q (want .pdf, .md, .markdown or .txt)", filepath.Ext(path))
}

// FromPDF extracts the text of every page, pages separated by a blank line.
func FromPDF(ctx context.Context, path string) (*Document, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	var pages []string
	// Page numbers are zero indexed in fitz.
	for n := 0; n < doc.NumPage(); n++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		text, err := doc.Text(n)
		if err != nil {
			return nil, fmt.Errorf("extract text from page %d: %w", n, err)
		}
		if t := strings.TrimSpace(text); t != "" {
			pages = append(pages, t)
		}
	}

	content := strings.Join(pages, "\n\n")
	if content == "" {
		return nil, failure.New(failure.EmptyInput, fmt.Sprintf("%s has no extractable text", filepath.Base(path)))
	}
	return &Document{
		Path:    path,
		Title:   baseTitle(path),
		Content: content,
		Pages:   doc.NumPage(),
	}, nil
}

// FromMarkdown reads a text file. The title is its first "# " heading, or
// the file name.
func FromMarkdown(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	content := strings.TrimSpace(string(data))

	title := baseTitle(path)
	for _, line := range strings.Split(content, "\n") {
		if h, ok := strings.CutPrefix(strings.TrimSpace(line), "# "); ok && strings.TrimSpace(h) != "" {
			title = strings.TrimSpace(h)
			break
		}
	}
	return &Document{Path: path, Title: title, Content: content}, nil
}

// Glob expands a pattern that may contain "**", returning sorted paths.
// A pattern without meta characters is returned as-is when the file
// exists.
func Glob(pattern string) ([]string, error) {
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, fmt.Errorf("bad pattern %q: %w", pattern, err)
	}
	sort.Strings(matches)
	return matches, nil
}

func baseTitle(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
