package svgpath

import (
	"fmt"
	"math"

	"github.com/tdewolff/parse/v2/strconv"
)

// operands gives the number of arguments of each command,
// indexed by its lower case letter.
var operands = map[byte]int{
	'm': 2,
	'l': 2,
	'z': 0,
	'h': 1,
	'v': 1,
	'c': 6,
	's': 4,
	'q': 4,
	't': 2,
	'a': 7,
}

// Parse reads the content of a path "d" attribute.
// The curve, arc and shorthand commands are checked and
// returned as Unsupported operations.
// Empty data is a valid, empty path.
func Parse(data string) (Path, error) {
	l := lexer{data: []byte(data)}
	var p Path
	for {
		l.skipSeparators()
		if l.pos >= len(l.data) {
			return p, nil
		}
		start := l.pos
		cmd := l.data[l.pos]
		n, ok := operands[lower(cmd)]
		if !ok {
			if isNumberStart(cmd) {
				return nil, &ParseError{Offset: start, Err: ErrExpectedCommand}
			}
			return nil, &ParseError{Offset: start, Err: fmt.Errorf("%w %q", ErrUnknownCommand, cmd)}
		}
		l.pos++
		if n == 0 {
			p = append(p, Close{})
			continue
		}
		// a command may be followed by several groups of operands
		for first := true; ; first = false {
			args, err := l.args(cmd, n)
			if err != nil {
				return nil, &ParseError{Offset: start, Err: err}
			}
			p = append(p, newOperation(cmd, args, first))
			l.skipSeparators()
			if l.pos >= len(l.data) || !isNumberStart(l.data[l.pos]) {
				break
			}
		}
	}
}

// newOperation builds the operation for one group of operands.
// The groups following the first one of a move are implicit lines.
func newOperation(cmd byte, args []float64, first bool) Operation {
	pos := Absolute
	if cmd >= 'a' {
		pos = Relative
	}
	switch lower(cmd) {
	case 'm':
		if first {
			return MoveTo{Position: pos, Point: Point{args[0], args[1]}}
		}
		return LineTo{Position: pos, Point: Point{args[0], args[1]}}
	case 'l':
		return LineTo{Position: pos, Point: Point{args[0], args[1]}}
	default:
		return Unsupported{Command: cmd, Args: args}
	}
}

type lexer struct {
	data []byte
	pos  int
}

func lower(c byte) byte { return c | 0x20 }

func isSeparator(c byte) bool {
	return c == ' ' || c == ',' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

func isNumberStart(c byte) bool {
	return '0' <= c && c <= '9' || c == '.' || c == '-' || c == '+'
}

func (l *lexer) skipSeparators() {
	for l.pos < len(l.data) && isSeparator(l.data[l.pos]) {
		l.pos++
	}
}

// args reads the n operands of one occurrence of cmd.
func (l *lexer) args(cmd byte, n int) ([]float64, error) {
	args := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		var (
			f   float64
			ok  bool
			err error
		)
		if lower(cmd) == 'a' && (i == 3 || i == 4) {
			f, ok, err = l.flag()
		} else {
			f, ok, err = l.number()
		}
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, &MissingOperandError{Command: cmd, Want: n, Got: i}
		}
		args = append(args, f)
	}
	return args, nil
}

func (l *lexer) number() (float64, bool, error) {
	l.skipSeparators()
	f, n := strconv.ParseFloat(l.data[l.pos:])
	if n == 0 {
		return 0, false, nil
	}
	if math.IsInf(f, 0) {
		return 0, false, fmt.Errorf("%w %q", ErrInvalidNumber, l.data[l.pos:l.pos+n])
	}
	l.pos += n
	return f, true, nil
}

// flag reads an arc flag, which is a single digit
// and may be glued to the next operand.
func (l *lexer) flag() (float64, bool, error) {
	l.skipSeparators()
	if l.pos >= len(l.data) {
		return 0, false, nil
	}
	switch l.data[l.pos] {
	case '0':
		l.pos++
		return 0, true, nil
	case '1':
		l.pos++
		return 1, true, nil
	}
	if isNumberStart(l.data[l.pos]) {
		return 0, false, fmt.Errorf("%w %q", ErrInvalidFlag, l.data[l.pos])
	}
	return 0, false, nil
}
