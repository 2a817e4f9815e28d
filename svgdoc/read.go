// Package svgdoc reads the path elements of SVG documents
// and writes the normalized ones.
//
// Only the root <svg> element and the <path> elements are interpreted.
// Paths nested in other elements (groups, links) are collected in
// document order, but the transforms and styles of their ancestors
// are not applied.
package svgdoc

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/benoitkugler/svgfit/internal/log"
	"github.com/benoitkugler/svgfit/svgpath"
	"golang.org/x/net/html/charset"
)

// ErrorMode tells how elements other than <svg> and <path> are handled.
type ErrorMode uint8

const (
	// IgnoreErrorMode silently skips unknown elements.
	IgnoreErrorMode ErrorMode = iota
	// WarnErrorMode logs a warning for each unknown element.
	WarnErrorMode
	// StrictErrorMode fails on the first unknown element.
	StrictErrorMode
)

func (m ErrorMode) String() string {
	switch m {
	case IgnoreErrorMode:
		return "ignore"
	case WarnErrorMode:
		return "warn"
	case StrictErrorMode:
		return "strict"
	default:
		return fmt.Sprintf("<unknown ErrorMode %d>", m)
	}
}

// ParseErrorMode is the inverse of ErrorMode.String.
func ParseErrorMode(s string) (ErrorMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "ignore":
		return IgnoreErrorMode, nil
	case "warn":
		return WarnErrorMode, nil
	case "strict":
		return StrictErrorMode, nil
	}
	return 0, fmt.Errorf("invalid error mode %q (expected ignore, warn or strict)", s)
}

// Options customizes Read.
type Options struct {
	ErrorMode ErrorMode
	Logger    *slog.Logger // nil to discard the warnings
}

// Path is a <path> element of the source document.
type Path struct {
	ID   string
	Line int
	Data string // raw "d" attribute
	Path svgpath.Path
}

// Document holds the data read from an SVG file.
type Document struct {
	ViewBox       string // root viewBox attribute, as found
	Width, Height string // root width and height attributes
	Paths         []Path
}

// PathData returns the parsed data of each path, in document order.
func (d *Document) PathData() []svgpath.Path {
	out := make([]svgpath.Path, len(d.Paths))
	for i, p := range d.Paths {
		out[i] = p.Path
	}
	return out
}

type cursor struct {
	doc     *Document
	opts    Options
	logger  *slog.Logger
	decoder *xml.Decoder
	line    int // of the current start element
	inSVG   bool
}

type elementFunc func(c *cursor, se xml.StartElement) error

var elementFuncs = map[string]elementFunc{
	"svg":  svgF,
	"path": pathF,
}

// Read reads the SVG document from the given reader,
// parsing the data of every <path> element.
func Read(r io.Reader, opts Options) (*Document, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Discard()
	}
	c := &cursor{doc: new(Document), opts: opts, logger: logger}
	c.decoder = xml.NewDecoder(r)
	c.decoder.CharsetReader = charset.NewReaderLabel
	seenTag := false
	for {
		t, err := c.decoder.Token()
		if err != nil {
			if err == io.EOF {
				if !seenTag {
					return nil, &ParseError{Line: c.position(), Err: ErrNotSVG}
				}
				break
			}
			return nil, &ParseError{Line: c.position(), Err: err}
		}
		se, ok := t.(xml.StartElement)
		if !ok {
			continue
		}
		c.line = c.position()
		if !seenTag && se.Name.Local != "svg" {
			return nil, c.errorf(se, "%w: root element is <%s>", ErrNotSVG, se.Name.Local)
		}
		seenTag = true
		if err := c.readStartElement(se); err != nil {
			return nil, err
		}
	}
	return c.doc, nil
}

// ReadFile reads the named SVG file.
func ReadFile(name string, opts Options) (*Document, error) {
	b, err := os.ReadFile(name)
	if err != nil {
		return nil, &IOError{Op: "read", Path: name, Err: err}
	}
	return Read(bytes.NewReader(b), opts)
}

func (c *cursor) position() int {
	line, _ := c.decoder.InputPos()
	return line
}

func (c *cursor) readStartElement(se xml.StartElement) error {
	df, ok := elementFuncs[se.Name.Local]
	if !ok {
		switch c.opts.ErrorMode {
		case StrictErrorMode:
			return c.errorf(se, "%w", ErrUnknownElement)
		case WarnErrorMode:
			c.logger.Warn("skipping svg element", "element", se.Name.Local, "line", c.line)
		}
		return nil
	}
	return df(c, se)
}

func (c *cursor) errorf(se xml.StartElement, format string, args ...interface{}) error {
	return &ParseError{Line: c.line, Element: se.Name.Local, ID: attr(se, "id"), Err: fmt.Errorf(format, args...)}
}

// attr returns the value of the named attribute, or an empty string.
func attr(se xml.StartElement, name string) string {
	v, _ := lookupAttr(se, name)
	return v
}

func lookupAttr(se xml.StartElement, name string) (string, bool) {
	for _, a := range se.Attr {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

func svgF(c *cursor, se xml.StartElement) error {
	if c.inSVG {
		return nil // nested svg: only the root frame is kept
	}
	c.inSVG = true
	c.doc.ViewBox = attr(se, "viewBox")
	c.doc.Width = attr(se, "width")
	c.doc.Height = attr(se, "height")
	return nil
}

func pathF(c *cursor, se xml.StartElement) error {
	data, ok := lookupAttr(se, "d")
	if !ok {
		return c.errorf(se, "%w", ErrMissingData)
	}
	p, err := svgpath.Parse(data)
	if err != nil {
		return c.errorf(se, "%w", err)
	}
	c.doc.Paths = append(c.doc.Paths, Path{ID: attr(se, "id"), Line: c.line, Data: data, Path: p})
	return nil
}
