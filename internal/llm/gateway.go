package llm

import (
	"context"
	"iter"
	"log/slog"
	"strings"
	"time"

	"github.com/rcliao/yournote/internal/failure"
	"github.com/rcliao/yournote/internal/mathfmt"
	"github.com/rcliao/yournote/internal/model"
)

// DefaultSystem is used when a caller passes an empty instruction.
const DefaultSystem = "You are a helpful AI assistant. Provide clear and accurate responses to questions."

// ErrorPrefix starts the message of every upstream failure.
const ErrorPrefix = "Error getting AI response: "

// Gateway sends one system+user exchange per call and applies the
// math-notation rules to the answer.
type Gateway struct {
	completer   Completer
	model       string
	temperature float64
	maxTokens   int
	logger      *slog.Logger
}

// NewGateway wraps completer. A nil logger means slog.Default().
func NewGateway(completer Completer, model string, temperature float64, maxTokens int, logger *slog.Logger) *Gateway {
	if logger == nil {
		logger = slog.Default()
	}
	return &Gateway{
		completer:   completer,
		model:       model,
		temperature: temperature,
		maxTokens:   maxTokens,
		logger:      logger,
	}
}

func (g *Gateway) request(prompt, system string) ChatRequest {
	if system == "" {
		system = DefaultSystem
	}
	return ChatRequest{
		Model: g.model,
		Messages: []model.ChatMessage{
			{Role: model.RoleSystem, Content: system},
			{Role: model.RoleUser, Content: prompt},
		},
		Temperature: g.temperature,
		MaxTokens:   g.maxTokens,
	}
}

func upstream(err error) error {
	return failure.Wrap(failure.Upstream, ErrorPrefix+err.Error(), err)
}

// Ask returns the completion for prompt. Math-related prompts get the LaTeX
// instruction appended to system and the answer post-processed.
func (g *Gateway) Ask(ctx context.Context, prompt, system string) (string, error) {
	if system == "" {
		system = DefaultSystem
	}
	isMath := mathfmt.IsMathRelated(prompt)
	if isMath {
		system += mathfmt.SystemHint
	}

	start := time.Now()
	resp, err := g.completer.Complete(ctx, g.request(prompt, system))
	if err != nil {
		g.logger.Warn("completion failed", "model", g.model, "err", err)
		return "", upstream(err)
	}
	g.logger.Debug("completion", "model", g.model, "math", isMath, "chars", len(resp), "elapsed", time.Since(start))

	return mathfmt.Process(resp, prompt), nil
}

// AskPlain returns the completion untouched. Callers that parse the answer
// as data use it.
func (g *Gateway) AskPlain(ctx context.Context, prompt, system string) (string, error) {
	resp, err := g.completer.Complete(ctx, g.request(prompt, system))
	if err != nil {
		g.logger.Warn("completion failed", "model", g.model, "err", err)
		return "", upstream(err)
	}
	return resp, nil
}

// StreamResult receives the post-processed full text once a stream from
// AskStream has been drained.
type StreamResult struct {
	Text string
	Math bool
}

// AskStream yields raw chunks as they arrive. After the last chunk of a
// math-related answer it yields mathfmt.StreamHint. When result is non-nil
// it is filled with the post-processed full text at the end of a successful
// stream. An upstream failure is yielded once as a classified error.
func (g *Gateway) AskStream(ctx context.Context, prompt, system string, result *StreamResult) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		if system == "" {
			system = DefaultSystem
		}
		isMath := mathfmt.IsMathRelated(prompt)
		if isMath {
			system += mathfmt.SystemHint
		}

		var full strings.Builder
		for chunk, err := range g.completer.Stream(ctx, g.request(prompt, system)) {
			if err != nil {
				g.logger.Warn("completion stream failed", "model", g.model, "err", err)
				yield("", upstream(err))
				return
			}
			full.WriteString(chunk)
			if !yield(chunk, nil) {
				return
			}
		}

		if result != nil {
			result.Math = isMath
			result.Text = mathfmt.Process(full.String(), prompt)
		}
		if isMath {
			yield(mathfmt.StreamHint, nil)
		}
	}
}
