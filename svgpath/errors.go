package svgpath

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownCommand is returned for a letter which is not an SVG path command.
	ErrUnknownCommand = errors.New("unknown path command")
	// ErrExpectedCommand is returned when the data starts with something else than a command.
	ErrExpectedCommand = errors.New("expected a path command")
	// ErrInvalidFlag is returned for an arc flag other than 0 or 1.
	ErrInvalidFlag = errors.New("invalid arc flag")
	// ErrInvalidNumber is returned for a coordinate which overflows a float64.
	ErrInvalidNumber = errors.New("invalid number")
)

// ParseError reports malformed path data.
type ParseError struct {
	Offset int // byte offset in the path data
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("svgpath: offset %d: %v", e.Offset, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// MissingOperandError is returned when a command is not followed
// by the number of coordinates it requires.
type MissingOperandError struct {
	Command   byte
	Want, Got int
}

func (e *MissingOperandError) Error() string {
	return fmt.Sprintf("command %c needs %d operands, got %d", e.Command, e.Want, e.Got)
}
