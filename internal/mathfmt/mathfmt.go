// Package mathfmt rewrites spoken math symbol names in model output into
// LaTeX markup.
package mathfmt

import "strings"

// Banner is prepended to every processed math response.
const Banner = "This response contains mathematical notation. Viewing it with LaTeX rendering enabled:\n\n"

// StreamHint is emitted after a streamed math response.
const StreamHint = "\n\n*Note: This response contains mathematical notation. Best viewed with LaTeX rendering enabled.*"

// SystemHint is appended to the system message for math prompts.
const SystemHint = " If the user asks about mathematical concepts, display equations and symbols using LaTeX for proper formatting."

// Keywords mark a prompt as math-related. Matching is by substring, so
// "pi" also matches "pipeline".
var Keywords = []string{
	"math", "equation", "formula", "symbol", "pi", "π", "sigma", "integral",
	"derivative", "calculus", "algebra", "theta", "alpha", "beta", "gamma",
}

// Symbol maps a spoken name or glyph to its markup.
type Symbol struct {
	Name  string
	Latex string
}

// Symbols is applied in order.
var Symbols = []Symbol{
	{"pi", `$\pi$`},
	{"π", `$\pi$`},
	{"theta", `$\theta$`},
	{"θ", `$\theta$`},
	{"sigma", `$\sigma$`},
	{"Σ", `$\Sigma$`},
	{"delta", `$\delta$`},
	{"Δ", `$\Delta$`},
	{"alpha", `$\alpha$`},
	{"β", `$\beta$`},
	{"gamma", `$\gamma$`},
	{"lambda", `$\lambda$`},
	{"μ", `$\mu$`},
	{"square root", `$\sqrt{x}$`},
	{"infinity", `$\infty$`},
}

// IsMathRelated reports whether prompt contains any keyword,
// case-insensitively.
func IsMathRelated(prompt string) bool {
	lower := strings.ToLower(prompt)
	for _, k := range Keywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}

// Replace substitutes every symbol that is preceded by a space and followed
// by a space, comma or period. Symbols at the very start or end of text, or
// followed by other punctuation, are not touched.
func Replace(text string) string {
	for _, s := range Symbols {
		text = strings.ReplaceAll(text, " "+s.Name+" ", " "+s.Latex+" ")
		text = strings.ReplaceAll(text, " "+s.Name+",", " "+s.Latex+",")
		text = strings.ReplaceAll(text, " "+s.Name+".", " "+s.Latex+".")
	}
	return text
}

// Process post-processes response for prompt: math prompts get symbol markup
// and the banner, anything else is returned unchanged.
func Process(response, prompt string) string {
	if !IsMathRelated(prompt) {
		return response
	}
	return Banner + Replace(response)
}
