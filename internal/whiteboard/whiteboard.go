// Package whiteboard turns a canvas snapshot into an AI analysis in one of
// three modes.
package whiteboard

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"strings"

	"github.com/rcliao/yournote/internal/imaging"
	"github.com/rcliao/yournote/internal/llm"
	"github.com/rcliao/yournote/internal/ocr"
)

// Mode selects the analysis path.
type Mode string

const (
	General Mode = "general"
	Math    Mode = "math"
	Diagram Mode = "diagram"
)

// Modes lists the valid modes in display order.
var Modes = []Mode{General, Math, Diagram}

// ParseMode accepts a mode name or its label ("Mathematical Content").
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "general", "general notes":
		return General, nil
	case "math", "mathematical content":
		return Math, nil
	case "diagram", "diagram/drawing", "drawing":
		return Diagram, nil
	}
	return "", fmt.Errorf("unknown whiteboard mode %q (valid: general, math, diagram)", s)
}

// Label is the display name of the mode.
func (m Mode) Label() string {
	switch m {
	case General:
		return "General Notes"
	case Math:
		return "Mathematical Content"
	case Diagram:
		return "Diagram/Drawing"
	}
	return string(m)
}

const (
	generalSystem = `You are an educational assistant. Analyze the following content extracted from a whiteboard:
1. Summarize the main points
2. Identify key concepts
3. Suggest areas for clarification if needed
4. Organize the information in a structured way
Please compensate for any OCR errors by inferring the most likely intended meaning.`

	mathSystem = `You are a mathematics tutor. Analyze the following content extracted from a whiteboard:
1. Identify mathematical concepts, equations, or formulas
2. Explain the mathematical meaning
3. Correct any errors in the mathematical notation
4. Provide the proper LaTeX representation if applicable

Note that OCR often struggles with mathematical symbols, so please use context to infer the most likely intended mathematics.`

	mathPrompt = "This is content from a mathematical whiteboard. The OCR extracted the following text (which may have errors with math symbols): %s\n\nPlease interpret the mathematical content, correct any notation errors, and explain the concepts."

	diagramSystem = `You are a visual content analyst. The user has drawn a diagram or illustration on a whiteboard.
Without seeing the actual image, please:
1. Ask them specific questions about what they've drawn to better understand it
2. Provide some general tips for creating effective diagrams for study purposes
3. Suggest how they might expand or improve their diagram`

	diagramPrompt = "I've drawn a diagram/illustration on my study app whiteboard. Based on the type of diagrams commonly used in study notes, what questions should I ask myself to make sure this visualization is effective? What elements might I consider adding?"

	describeSystem = "You are a helpful educational assistant specializing in visual learning aids."
	describePrompt = "I've drawn this diagram on my whiteboard: %s. Can you analyze this diagram, explain what concepts it relates to, and suggest any improvements or extensions?"
)

// Result is the outcome of one analysis. Processed holds the preprocessed
// raster as PNG for the math and diagram modes. Warning carries an OCR
// message that did not stop the analysis.
type Result struct {
	Mode      Mode   `json:"mode"`
	OCRText   string `json:"ocr_text,omitempty"`
	Processed []byte `json:"-"`
	Analysis  string `json:"analysis,omitempty"`
	Warning   string `json:"warning,omitempty"`
}

// Analyzer drives preprocessing, OCR and the completion gateway.
type Analyzer struct {
	gateway   *llm.Gateway
	extractor *ocr.Extractor
	logger    *slog.Logger
}

// NewAnalyzer builds an analyzer. A nil logger means slog.Default().
func NewAnalyzer(gateway *llm.Gateway, extractor *ocr.Extractor, logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{gateway: gateway, extractor: extractor, logger: logger}
}

// Analyze runs mode over img.
//
// General stops on any OCR failure, returning the partial result and the
// error. Math treats OCR as best-effort and always asks the model. Diagram
// never runs OCR.
func (a *Analyzer) Analyze(ctx context.Context, img *image.RGBA, mode Mode) (*Result, error) {
	res := &Result{Mode: mode}
	a.logger.Debug("analyze whiteboard", "mode", mode, "size", img.Bounds().Size())

	switch mode {
	case General:
		text, err := a.extractor.Extract(ctx, img)
		if err != nil {
			res.Warning = err.Error()
			return res, err
		}
		res.OCRText = text
		analysis, err := a.gateway.Ask(ctx, text, generalSystem)
		if err != nil {
			return res, err
		}
		res.Analysis = analysis

	case Math:
		text, err := a.extractor.Extract(ctx, img)
		if err != nil {
			res.Warning = err.Error()
			text = err.Error()
		} else {
			res.OCRText = text
		}
		if err := a.attachProcessed(res, img); err != nil {
			return res, err
		}
		analysis, err := a.gateway.Ask(ctx, fmt.Sprintf(mathPrompt, text), mathSystem)
		if err != nil {
			return res, err
		}
		res.Analysis = analysis

	case Diagram:
		if err := a.attachProcessed(res, img); err != nil {
			return res, err
		}
		analysis, err := a.gateway.Ask(ctx, diagramPrompt, diagramSystem)
		if err != nil {
			return res, err
		}
		res.Analysis = analysis

	default:
		return nil, fmt.Errorf("unknown whiteboard mode %q", mode)
	}

	return res, nil
}

func (a *Analyzer) attachProcessed(res *Result, img *image.RGBA) error {
	data, err := imaging.EncodePNG(imaging.Preprocess(img))
	if err != nil {
		return err
	}
	res.Processed = data
	return nil
}

// Describe asks for feedback on a diagram from the user's own description.
func (a *Analyzer) Describe(ctx context.Context, description string) (string, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return "", fmt.Errorf("diagram description is empty")
	}
	return a.gateway.Ask(ctx, fmt.Sprintf(describePrompt, description), describeSystem)
}
