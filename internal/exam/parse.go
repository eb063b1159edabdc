package exam

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rcliao/yournote/internal/failure"
	"github.com/rcliao/yournote/internal/model"
)

// ParseError reports a model response that is not a JSON question list.
// It serializes to the {error, raw_response} record shown to the user.
type ParseError struct {
	Reason      string `json:"error"`
	RawResponse string `json:"raw_response"`
	err         error
}

func (e *ParseError) Error() string { return e.Reason }

func (e *ParseError) Unwrap() error { return e.err }

// Is makes errors.Is(err, failure.ErrParse) hold.
func (e *ParseError) Is(target error) bool {
	return failure.KindOf(target) == failure.Parse
}

type rawQuestion struct {
	Question    any `json:"question"`
	Options     any `json:"options"`
	Answer      any `json:"answer"`
	Explanation any `json:"explanation"`
}

// extractJSON picks the text to decode: the first ```json block, else the
// body of the first fenced block, else the whole response.
func extractJSON(response string) string {
	if _, after, ok := strings.Cut(response, "```json"); ok {
		block, _, _ := strings.Cut(after, "```")
		return strings.TrimSpace(block)
	}
	if _, after, ok := strings.Cut(response, "```"); ok {
		block, _, _ := strings.Cut(after, "```")
		return strings.TrimSpace(block)
	}
	return response
}

// ParseQuestions decodes a model response into typed questions. Each
// question's kind is fixed here: an options array makes it multiple choice,
// otherwise a question ending in "?" is true/false, otherwise short answer.
func ParseQuestions(response string) ([]model.Question, error) {
	text := extractJSON(response)

	raws, err := decode(text)
	if err != nil {
		return nil, &ParseError{
			Reason:      "Failed to parse AI response as JSON",
			RawResponse: response,
			err:         err,
		}
	}
	if len(raws) == 0 {
		return nil, &ParseError{
			Reason:      "AI response contained no questions",
			RawResponse: response,
		}
	}

	questions := make([]model.Question, 0, len(raws))
	for _, r := range raws {
		q := model.Question{
			Question:    stringify(r.Question),
			Answer:      stringify(r.Answer),
			Explanation: stringify(r.Explanation),
		}
		switch {
		case isList(r.Options):
			q.Kind = model.MultipleChoice
			for _, o := range r.Options.([]any) {
				q.Options = append(q.Options, stringify(o))
			}
		case strings.HasSuffix(strings.TrimSpace(q.Question), "?"):
			q.Kind = model.TrueFalse
		default:
			q.Kind = model.ShortAnswer
		}
		questions = append(questions, q)
	}
	return questions, nil
}

func decode(text string) ([]rawQuestion, error) {
	var raws []rawQuestion
	err := decodeOne(text, &raws)
	if err == nil {
		return raws, nil
	}

	// Some models wrap the list: {"questions": [...]}.
	var wrapped struct {
		Questions []rawQuestion `json:"questions"`
	}
	if werr := decodeOne(text, &wrapped); werr == nil && wrapped.Questions != nil {
		return wrapped.Questions, nil
	}
	return nil, err
}

// decodeOne decodes exactly one JSON value from text. Trailing
// non-whitespace is an error, as it is for json.Unmarshal.
func decodeOne(text string, v any) error {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if _, err := dec.Token(); err != io.EOF {
		return errors.New("unexpected data after the JSON value")
	}
	return nil
}

func isList(v any) bool {
	_, ok := v.([]any)
	return ok
}

// stringify renders JSON scalars the way they read: true becomes "True",
// numbers keep their literal form.
func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		if t {
			return "True"
		}
		return "False"
	case json.Number:
		return t.String()
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	}
}
