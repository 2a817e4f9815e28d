package svgdoc

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingData is returned for a <path> element without "d" attribute.
	ErrMissingData = errors.New("missing d attribute")
	// ErrNotSVG is returned when the document root is not an <svg> element.
	ErrNotSVG = errors.New("invalid svg document")
	// ErrUnknownElement is returned in StrictErrorMode for an element
	// which is neither <svg> nor <path>.
	ErrUnknownElement = errors.New("cannot process svg element")
)

// ParseError locates an error in the source document.
type ParseError struct {
	Line    int
	Element string // local name, empty for XML syntax errors
	ID      string // id attribute of the element, if any
	Err     error
}

func (e *ParseError) Error() string {
	switch {
	case e.Element == "":
		return fmt.Sprintf("svgdoc: line %d: %v", e.Line, e.Err)
	case e.ID == "":
		return fmt.Sprintf("svgdoc: line %d: <%s>: %v", e.Line, e.Element, e.Err)
	default:
		return fmt.Sprintf("svgdoc: line %d: <%s id=%q>: %v", e.Line, e.Element, e.ID, e.Err)
	}
}

func (e *ParseError) Unwrap() error { return e.Err }

// IOError is returned when a document can't be read or written.
type IOError struct {
	Op   string // "read" or "write"
	Path string
	Err  error
}

func (e *IOError) Error() string { return e.Op + " " + e.Path + ": " + e.Err.Error() }

func (e *IOError) Unwrap() error { return e.Err }
