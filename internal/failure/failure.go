// Package failure classifies the ways a study interaction can fail.
//
// Every call into an external collaborator (completion API, OCR engine) or
// into a parser of model output reports one of three kinds, so callers can
// branch with errors.Is instead of matching message text.
package failure

import "errors"

// Kind is the failure class of an Error.
type Kind int

const (
	// Upstream covers network, auth and quota failures of an external service.
	Upstream Kind = iota + 1
	// Parse covers model output that could not be decoded.
	Parse
	// EmptyInput covers blank canvases, empty notes and similar short-circuits
	// taken before any external call.
	EmptyInput
)

func (k Kind) String() string {
	switch k {
	case Upstream:
		return "upstream"
	case Parse:
		return "parse"
	case EmptyInput:
		return "empty input"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is matching by kind.
var (
	ErrUpstream   = &Error{Kind: Upstream, Msg: "upstream failure"}
	ErrParse      = &Error{Kind: Parse, Msg: "parse failure"}
	ErrEmptyInput = &Error{Kind: EmptyInput, Msg: "empty input"}
)

// Error is a classified failure. Msg is the user-facing text.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// New returns a classified error with the given message.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Wrap returns a classified error carrying cause.
func Wrap(kind Kind, msg string, cause error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: cause}
}

// KindOf returns the kind of the first *Error in err's chain, or 0.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return 0
}
