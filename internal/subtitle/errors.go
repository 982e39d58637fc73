package subtitle

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported subtitle format")
	ErrUnknownFormat     = errors.New("could not determine subtitle format")
)

// ParseError reports input that does not conform to its subtitle format.
// Line is 1-based, zero when the error is not tied to a line.
type ParseError struct {
	Format Format
	Line   int
	Err    error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse %s: line %d: %v", e.Format, e.Line, e.Err)
	}
	return fmt.Sprintf("parse %s: %v", e.Format, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// EncodeError reports a document that cannot be serialized. Node is the
// offending node index, or -1 when the failure concerns the whole document.
type EncodeError struct {
	Format Format
	Node   int
	Err    error
}

func (e *EncodeError) Error() string {
	if e.Node >= 0 {
		return fmt.Sprintf("encode %s: node %d: %v", e.Format, e.Node, e.Err)
	}
	return fmt.Sprintf("encode %s: %v", e.Format, e.Err)
}

func (e *EncodeError) Unwrap() error {
	return e.Err
}

func parseErrorf(format Format, line int, msg string, args ...any) error {
	return &ParseError{Format: format, Line: line, Err: fmt.Errorf(msg, args...)}
}
