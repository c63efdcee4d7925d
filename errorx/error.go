package errorx

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

// StashkitError is the error shared across Stashkit Go services. It carries a
// gRPC-style type, a human readable message, optional structured details and
// the stack captured at creation time.
type StashkitError struct {
	Type    ErrorType       `json:"type"`
	Message string          `json:"message"`
	Details []StashkitError `json:"details,omitempty"`

	stack Callers
}

var _ error = (*StashkitError)(nil)

func (e StashkitError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Type.String(), e.Message)
}

// WithDetails appends the given errors to the details and returns the error
// for chaining. Stacks of the details are not retained.
func (e *StashkitError) WithDetails(details ...*StashkitError) *StashkitError {
	for _, d := range details {
		if d == nil {
			continue
		}
		detail := *d
		detail.stack = nil
		e.Details = append(e.Details, detail)
	}

	return e
}

// StackTrace returns the stack captured when the error was created. It is nil
// for errors built from a plain struct literal.
func (e StashkitError) StackTrace() Callers {
	return e.stack
}

// Format implements the fmt.Formatter interface. The plus flag on the v verb
// appends the captured stack to the message.
func (e StashkitError) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			io.WriteString(s, e.Error())
			if len(e.stack) > 0 {
				io.WriteString(s, "\n")
				e.stack.writeTrace(s)
			}
			return
		}
		fallthrough
	case 's':
		io.WriteString(s, e.Error())
	case 'q':
		fmt.Fprintf(s, "%q", e.Error())
	default:
		io.WriteString(s, e.Error())
	}
}

func newWithStack(t ErrorType, msg string) *StashkitError {
	return &StashkitError{
		Type:    t,
		Message: msg,
		stack:   callers(2),
	}
}

// NewStashkitErrorFromMessage parses a message in the "[TYPE] message" wire
// format back into a typed error. Per-item failures of a bulk result are
// reported in this format, so callers can recover the original error type.
func NewStashkitErrorFromMessage(msg string) (*StashkitError, error) {
	r, _ := regexp.Compile(`\[(.*?)\] (.*)`)
	m := r.FindStringSubmatch(msg)
	if m == nil || len(m) < 2 {
		return nil, fmt.Errorf("%q is not a valid error type", msg)
	}

	eT, err := ParseErrorType(m[1])
	if err != nil {
		return nil, err
	}

	if len(m) >= 3 {
		msg = m[2]
	}

	return &StashkitError{
		Type:    eT,
		Message: msg,
	}, nil
}

func IsStashkitError(e error) (*StashkitError, bool) {
	e = errors.Cause(e)
	switch mE := e.(type) {
	case *StashkitError:
		if mE == nil || mE.Type == ErrorTypeUnspecified {
			return nil, false
		}
		return mE, true
	case StashkitError:
		if mE.Type == ErrorTypeUnspecified {
			return nil, false
		}
		return &mE, true
	default:
		return nil, false
	}
}

func NewEnumOutOfRangeError(actual string, expectedOneOf []string, enumName string) *StashkitError {
	return newWithStack(
		ErrorTypeOutOfRange,
		fmt.Sprintf("%q is not a valid %s. Possible values: [%s]", actual, enumName, strings.Join(expectedOneOf, ", ")),
	)
}
