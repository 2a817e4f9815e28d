// Command svgfit rescales the paths of an SVG document into a target
// box, rewriting every coordinate as absolute.
//
// Only move, line and close commands are supported: a curve or an arc
// aborts the run, as does any relative command, since the extent of
// the document can't be computed without resolving it.
//
// Usage:
//
//	svgfit -i in.svg -o out.svg [-w 1-255] [-l 1-255] [--preview out.png] [--pdf out.pdf]
//
// The exit code is 1 for usage, I/O and syntax errors, and 2 when the
// document geometry can't be normalized.
package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/benoitkugler/svgfit/fit"
	"github.com/benoitkugler/svgfit/internal/config"
	"github.com/benoitkugler/svgfit/internal/log"
	"github.com/benoitkugler/svgfit/svgdoc"
	"github.com/benoitkugler/svgfit/svgpdf"
	"github.com/benoitkugler/svgfit/svgraster"
)

const maxSide = 255

type usageError struct{ msg string }

func (e usageError) Error() string { return e.msg }

func main() {
	if err := run(os.Stderr, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "svgfit: %v\n", err)
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	if errors.Is(err, fit.ErrInvalidGeometry) {
		return 2
	}
	return 1
}

type options struct {
	input, output    string
	width, length    int
	config           string
	preview, pdf     string
	strict           bool
	widthSet, lenSet bool
}

func parseArgs(stderr io.Writer, args []string) (options, error) {
	var opts options
	fs := flag.NewFlagSet("svgfit", flag.ContinueOnError)
	fs.SetOutput(stderr)
	for _, name := range []string{"input", "i"} {
		fs.StringVar(&opts.input, name, "", "source SVG document (required)")
	}
	for _, name := range []string{"output", "o"} {
		fs.StringVar(&opts.output, name, "", "destination SVG document (required)")
	}
	for _, name := range []string{"width", "w"} {
		fs.IntVar(&opts.width, name, 0, "target frame width, 1-255 (default: extent width)")
	}
	for _, name := range []string{"length", "l"} {
		fs.IntVar(&opts.length, name, 0, "target frame height, 1-255 (default: extent height)")
	}
	fs.StringVar(&opts.config, "config", "", "YAML configuration file")
	fs.StringVar(&opts.preview, "preview", "", "also render the output as a PNG image")
	fs.StringVar(&opts.pdf, "pdf", "", "also render the output as a PDF proof, one unit per millimetre")
	fs.BoolVar(&opts.strict, "strict", false, "fail on elements other than <svg> and <path>")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if fs.NArg() > 0 {
		return opts, usageError{fmt.Sprintf("unexpected argument %q", fs.Arg(0))}
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "width", "w":
			opts.widthSet = true
		case "length", "l":
			opts.lenSet = true
		}
	})
	if opts.input == "" || opts.output == "" {
		return opts, usageError{"both --input and --output are required"}
	}
	if opts.widthSet && (opts.width < 1 || opts.width > maxSide) {
		return opts, usageError{fmt.Sprintf("--width must be between 1 and %d, got %d", maxSide, opts.width)}
	}
	if opts.lenSet && (opts.length < 1 || opts.length > maxSide) {
		return opts, usageError{fmt.Sprintf("--length must be between 1 and %d, got %d", maxSide, opts.length)}
	}
	return opts, nil
}

func run(stderr io.Writer, args []string) (err error) {
	opts, err := parseArgs(stderr, args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	cfg, err := config.Load(opts.config)
	if err != nil {
		return err
	}
	if opts.strict {
		cfg.Document.UnknownElements = svgdoc.StrictErrorMode.String()
	}
	mode, err := svgdoc.ParseErrorMode(cfg.Document.UnknownElements)
	if err != nil {
		return err
	}

	logOpts := cfg.LogOptions()
	logOpts.Stderr = stderr
	closer := log.Init(logOpts)
	defer func() { err = joinClose(err, closer, "log file") }()
	logger := log.WithComponent("cli")

	doc, err := svgdoc.ReadFile(opts.input, svgdoc.Options{ErrorMode: mode, Logger: log.WithOperation(logger, "read")})
	if err != nil {
		return err
	}
	logger.Debug("document read", slog.String("input", opts.input), slog.Int("paths", len(doc.Paths)), slog.String("viewBox", doc.ViewBox))

	target := fit.Target{Width: float64(opts.width), Height: float64(opts.length)}
	res, err := fit.Normalize(doc.PathData(), target)
	if err != nil {
		return err
	}
	logger.Info("paths normalized",
		slog.Int("paths", len(res.Paths)),
		slog.Float64("xLength", res.Mapper.XLength()),
		slog.Float64("yLength", res.Mapper.YLength()),
		slog.String("viewBox", res.Frame.ViewBox()),
	)

	// renderings are done in memory so that no file is written on failure
	var extras []extraFile
	if opts.preview != "" {
		var buf bytes.Buffer
		if err := svgraster.WritePNG(&buf, res.Frame, res.Paths, cfg.Preview.Scale); err != nil {
			return fmt.Errorf("rendering preview: %w", err)
		}
		extras = append(extras, extraFile{name: opts.preview, kind: "preview", data: buf.Bytes()})
	}
	if opts.pdf != "" {
		var buf bytes.Buffer
		if err := svgpdf.Render(&buf, res.Frame, res.Paths); err != nil {
			return fmt.Errorf("rendering PDF proof: %w", err)
		}
		extras = append(extras, extraFile{name: opts.pdf, kind: "pdf proof", data: buf.Bytes()})
	}

	out := svgdoc.NewOutput(res)
	out.Precision = cfg.Document.Precision
	if err := out.WriteFile(opts.output); err != nil {
		return err
	}
	logger.Info("document written", slog.String("output", opts.output))

	written := []string{opts.output}
	for _, f := range extras {
		if err := os.WriteFile(f.name, f.data, 0o644); err != nil {
			for _, name := range written {
				os.Remove(name)
			}
			return &svgdoc.IOError{Op: "write", Path: f.name, Err: err}
		}
		written = append(written, f.name)
		logger.Info(f.kind+" written", slog.String("file", f.name), slog.Int("bytes", len(f.data)))
	}
	return nil
}

// extraFile is an optional rendering of the output document.
type extraFile struct {
	name, kind string
	data       []byte
}

// joinClose closes c, adding its error to err.
func joinClose(err error, c io.Closer, what string) error {
	if cerr := c.Close(); cerr != nil {
		return errors.Join(err, fmt.Errorf("closing %s: %w", what, cerr))
	}
	return err
}
