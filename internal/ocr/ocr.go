// Package ocr extracts plain text from whiteboard snapshots.
package ocr

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os/exec"
	"regexp"
	"strings"

	"github.com/rcliao/yournote/internal/failure"
	"github.com/rcliao/yournote/internal/imaging"
)

// Messages returned for the two empty-input outcomes.
const (
	MsgNoContent = "No content detected on whiteboard."
	MsgNoText    = "Content detected but no text could be recognized. Try writing more clearly or drawing simpler diagrams."
)

// Engine recognises text in a single-channel raster.
type Engine interface {
	Recognize(ctx context.Context, img *image.Gray) (string, error)
}

// Tesseract runs the tesseract binary, feeding it PNG on stdin.
type Tesseract struct {
	Path     string
	Language string
}

// NewTesseract returns an engine for the binary at path ("tesseract" when
// empty) and language ("eng" when empty).
func NewTesseract(path, language string) *Tesseract {
	if path == "" {
		path = "tesseract"
	}
	if language == "" {
		language = "eng"
	}
	return &Tesseract{Path: path, Language: language}
}

func (t *Tesseract) Recognize(ctx context.Context, img *image.Gray) (string, error) {
	var in bytes.Buffer
	if err := png.Encode(&in, img); err != nil {
		return "", fmt.Errorf("encode png: %w", err)
	}

	var out, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, t.Path, "stdin", "stdout", "-l", t.Language)
	cmd.Stdin = &in
	cmd.Stdout = &out
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("%s: %w: %s", t.Path, err, msg)
		}
		return "", fmt.Errorf("%s: %w", t.Path, err)
	}
	return out.String(), nil
}

// Extractor runs the blank check, preprocessing and recognition.
type Extractor struct {
	engine Engine
	logger *slog.Logger
}

// NewExtractor wraps engine. A nil logger means slog.Default().
func NewExtractor(engine Engine, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{engine: engine, logger: logger}
}

var spaceRe = regexp.MustCompile(`\s+`)

// Extract returns the recognised text with whitespace runs collapsed.
//
// A blank canvas fails with MsgNoContent before the engine is called; an
// empty recognition fails with MsgNoText. Both are failure.EmptyInput. An
// engine error is failure.Upstream.
func (e *Extractor) Extract(ctx context.Context, img *image.RGBA) (string, error) {
	if imaging.IsBlank(img) {
		return "", failure.New(failure.EmptyInput, MsgNoContent)
	}

	processed := imaging.Preprocess(img)
	text, err := e.engine.Recognize(ctx, processed)
	if err != nil {
		e.logger.Warn("ocr failed", "err", err)
		return "", failure.Wrap(failure.Upstream, "Error during OCR processing: "+err.Error(), err)
	}

	text = strings.TrimSpace(spaceRe.ReplaceAllString(text, " "))
	if text == "" {
		return "", failure.New(failure.EmptyInput, MsgNoText)
	}
	e.logger.Debug("ocr", "chars", len(text))
	return text, nil
}
