package main

import (
	"context"
	"fmt"
	"io"
	"os"

	pflag "github.com/spf13/pflag"
	slogctx "github.com/veqryn/slog-context"
	"gitlab.com/tozd/go/errors"

	"github.com/spicery/rusty-ast/pkg/logging"
	"github.com/spicery/rusty-ast/pkg/parser"
	"github.com/spicery/rusty-ast/pkg/render"
)

// Version is injected at build time via ldflags.
var Version = "dev"

const usage = `rusty-ast - prints the syntax tree of Rust source code

This tool parses Rust source code and prints its functions, structs, enums,
statements and expressions as an indented outline or as a JSON document.
Constructs outside that set are shown as "Other" with their source text.

Usage:
  rusty-ast [options]

Options:
`

func main() {
	var showHelp, showVersion, spans bool
	var inputFile, code, outputFile, format, configFile, logLevel string
	var indent, trim int

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "%s\n", usage)
		pflag.PrintDefaults()
	}

	pflag.BoolVarP(&showHelp, "help", "h", false, "Show help")
	pflag.BoolVar(&showVersion, "version", false, "Show version")
	pflag.StringVarP(&inputFile, "input", "i", "", "Input file (defaults to stdin)")
	pflag.StringVarP(&code, "code", "c", "", "Rust source code to parse instead of reading a file")
	pflag.StringVarP(&outputFile, "output", "o", "", "Output file (defaults to stdout)")
	pflag.StringVarP(&format, "format", "f", "TEXT", "Output format (TEXT, JSON, YAML, ASCIITREE, DOT)")
	pflag.StringVar(&configFile, "config", "", "YAML file with option-* settings")
	pflag.IntVar(&indent, "indent", render.DefaultIndent, "Spaces per nesting level in TEXT output")
	pflag.IntVar(&trim, "trim", 0, "Trim Other text for display purposes")
	pflag.BoolVar(&spans, "spans", false, "Include source spans in JSON and YAML output")
	pflag.StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	pflag.Parse()

	if showHelp {
		pflag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("rusty-ast version %s\n", Version)
		os.Exit(0)
	}

	if len(pflag.Args()) > 0 {
		fmt.Fprintf(os.Stderr, "Error: Unexpected positional arguments. Use --input or --code instead.\n\n")
		pflag.Usage()
		os.Exit(1)
	}

	if inputFile != "" && code != "" {
		fmt.Fprintf(os.Stderr, "Error: --input and --code cannot be used together.\n")
		os.Exit(1)
	}

	level, err := logging.ParseLevel(logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	ctx := logging.Setup(context.Background(), os.Stderr, level, true)

	// Settings from the config file, overridden by explicit flags.
	options := render.DefaultOptions()
	if configFile != "" {
		options, err = render.LoadOptions(configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	if pflag.CommandLine.Changed("format") || options.Format == "" {
		options.Format = format
	}
	if pflag.CommandLine.Changed("indent") {
		options.Indent = indent
	}
	if pflag.CommandLine.Changed("trim") {
		options.TrimTokenOnOutput = trim
	}
	if pflag.CommandLine.Changed("spans") {
		options.IncludeSpans = spans
	}

	renderFunc, err := render.PickRenderer(options.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Determine input source.
	var source []byte
	switch {
	case code != "":
		source = []byte(code)
	case inputFile != "":
		source, err = os.ReadFile(inputFile) // #nosec G304 - CLI tool reads user-specified input files
	default:
		source, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
		os.Exit(1)
	}

	file, err := parser.Parse(source)
	if err != nil {
		var perr *parser.ParseError
		if errors.As(err, &perr) {
			perr.Report(os.Stderr)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
	slogctx.FromCtx(ctx).DebugContext(ctx, "parsed source", "bytes", len(source), "items", len(file.Items))

	// Determine output destination.
	var output io.Writer = os.Stdout
	if outputFile != "" {
		f, err := os.Create(outputFile) // #nosec G304 - CLI tool writes to user-specified output files
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating output file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		output = f
	}

	if err := renderFunc(file, output, options); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		os.Exit(1)
	}
}
