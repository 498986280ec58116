// Package scan parses every Rust source file below a directory and renders
// each one to its JSON document.
package scan

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	slogctx "github.com/veqryn/slog-context"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"

	"github.com/spicery/rusty-ast/pkg/parser"
	"github.com/spicery/rusty-ast/pkg/render"
	"github.com/spicery/rusty-ast/pkg/syntax"
)

const SourceExt = ".rs"

// Cargo build output; never contains hand-written sources.
const targetDir = "target"

type Options struct {
	// Concurrency bounds the number of files parsed at once. Zero means
	// one per CPU.
	Concurrency int
	Render      *render.Options
}

// Result describes one scanned file. Err is set when the file could not be
// read or parsed; File and JSON are then empty.
type Result struct {
	Path  string
	Bytes int64
	File  *syntax.File
	JSON  string
	Err   error
}

// Files lists the Rust sources below root in lexical order, skipping hidden
// directories and Cargo target directories.
func Files(root string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != root && (name == targetDir || strings.HasPrefix(name, ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) == SourceExt {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Errorf("scanning %s: %w", root, err)
	}
	return paths, nil
}

// Dir parses every file returned by Files. Per-file failures are recorded on
// the result; only cancellation or a failure to list root aborts the scan.
func Dir(ctx context.Context, root string, opts Options) ([]Result, error) {
	paths, err := Files(root)
	if err != nil {
		return nil, err
	}

	limit := opts.Concurrency
	if limit <= 0 {
		limit = runtime.NumCPU()
	}

	results := make([]Result, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = File(ctx, path, opts.Render)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.WithStack(err)
	}
	return results, nil
}

// File parses and renders a single source file with its own parser.
func File(ctx context.Context, path string, options *render.Options) Result {
	log := slogctx.FromCtx(ctx)
	result := Result{Path: path}

	source, err := os.ReadFile(path)
	if err != nil {
		result.Err = errors.Errorf("reading %s: %w", path, err)
		log.WarnContext(ctx, "skipping unreadable file", "path", path, "error", err)
		return result
	}
	result.Bytes = int64(len(source))

	file, err := parser.Parse(source)
	if err != nil {
		result.Err = errors.Errorf("parsing %s: %w", path, err)
		log.WarnContext(ctx, "skipping file with syntax errors", "path", path, "error", err)
		return result
	}
	result.File = file
	result.JSON = render.RenderJSON(file, options)
	log.DebugContext(ctx, "scanned file", "path", path, "items", len(file.Items))
	return result
}

// Failures counts results carrying an error.
func Failures(results []Result) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}
