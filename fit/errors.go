package fit

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidGeometry is matched by every error reporting that
	// the document extent cannot be used to build a Mapper.
	ErrInvalidGeometry = errors.New("cannot get size")
	// ErrInvalidTarget is returned for a negative, infinite or NaN target dimension.
	ErrInvalidTarget = errors.New("invalid target size")
)

// Reason tells why an extent could not be finalized.
type Reason uint8

const (
	// RelativeCommands is used when a relative move or line was observed.
	RelativeCommands Reason = iota + 1
	// NoPoints is used when no absolute point was observed.
	NoPoints
)

func (r Reason) String() string {
	switch r {
	case RelativeCommands:
		return "path data uses relative commands"
	case NoPoints:
		return "no absolute point"
	default:
		return "<unknown Reason>"
	}
}

// InvalidGeometryError is returned when the document uses
// relative coordinates or has no point at all.
type InvalidGeometryError struct {
	Reason    Reason
	Relatives int // number of relative commands observed
}

func (e *InvalidGeometryError) Error() string {
	if e.Reason == RelativeCommands {
		return fmt.Sprintf("%s: %s (%d)", ErrInvalidGeometry, e.Reason, e.Relatives)
	}
	return fmt.Sprintf("%s: %s", ErrInvalidGeometry, e.Reason)
}

func (e *InvalidGeometryError) Is(target error) bool { return target == ErrInvalidGeometry }

// DegenerateGeometryError is returned when the extent has a zero
// (or non finite) width or height, so that no scale can be derived.
type DegenerateGeometryError struct {
	XLength, YLength float64
}

func (e *DegenerateGeometryError) Error() string {
	return fmt.Sprintf("%s: degenerate extent %g x %g", ErrInvalidGeometry, e.XLength, e.YLength)
}

func (e *DegenerateGeometryError) Is(target error) bool { return target == ErrInvalidGeometry }

// UnsupportedCommandError is returned by Rewrite for a curve, arc
// or shorthand command.
type UnsupportedCommandError struct {
	Command byte
	Index   int // position of the command in its path
}

func (e *UnsupportedCommandError) Error() string {
	return fmt.Sprintf("unsupported path command %c (operation %d)", e.Command, e.Index)
}
