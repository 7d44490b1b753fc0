// Package main is the command-line inspector for the typst-studio editing
// core. It loads files into buffers and reports their metrics, word
// boundaries, and bidirectional structure.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/Hillel-Nagid/typst-studio/internal/engine"
	"github.com/Hillel-Nagid/typst-studio/internal/engine/bidi"
	"github.com/Hillel-Nagid/typst-studio/internal/engine/buffer"
	"github.com/Hillel-Nagid/typst-studio/internal/engine/words"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		showVersion bool
		showRuns    bool
		showWords   bool
		readOnly    bool
	)

	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showRuns, "runs", false, "Print per-line bidirectional runs")
	flag.BoolVar(&showWords, "words", false, "Print per-line word boundaries")
	flag.BoolVar(&readOnly, "readonly", false, "Open files read-only")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "typst-studio - text engine inspector\n\n")
		fmt.Fprintf(os.Stderr, "Usage: typst-studio [options] [files...]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if showVersion {
		fmt.Printf("typst-studio %s (%s)\n", version, commit)
		return 0
	}

	if flag.NArg() == 0 {
		flag.Usage()
		return 2
	}

	e := engine.New()
	for _, path := range flag.Args() {
		var opts []buffer.Option
		if readOnly {
			opts = append(opts, buffer.WithReadOnly())
		}

		buf, err := e.OpenFile(path, opts...)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		report(buf, showRuns, showWords)
	}
	return 0
}

// report prints one buffer's metrics and, optionally, its per-line
// structure.
func report(buf *buffer.Buffer, showRuns, showWords bool) {
	m := buf.Metrics()
	fmt.Printf("%s: %d lines, %d chars, %d bytes, line ending %s\n",
		buf.Path(), m.Lines, m.Chars, m.Bytes, buf.LineEnding())

	if !showRuns && !showWords {
		return
	}

	for line := 0; line < buf.LenLines(); line++ {
		content := buf.Line(line)
		if content == "" {
			continue
		}

		if showRuns {
			p := bidi.New(content)
			fmt.Printf("  line %d [%s]:", line, p.BaseDirection())
			for _, r := range p.VisualRuns() {
				fmt.Printf(" %d-%d/%s@%d", r.Start, r.End, r.Direction, r.Level)
			}
			fmt.Println()
		}

		if showWords {
			f := words.NewFinder(content)
			fmt.Printf("  line %d words:", line)
			for _, b := range f.Boundaries() {
				fmt.Printf(" %d:%s", b.Position, b.Kind)
			}
			fmt.Println()
		}
	}
}
