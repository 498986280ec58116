package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v2"
	slogctx "github.com/veqryn/slog-context"
	"gitlab.com/tozd/go/errors"

	"github.com/spicery/rusty-ast/pkg/catalog"
	"github.com/spicery/rusty-ast/pkg/logging"
	"github.com/spicery/rusty-ast/pkg/scan"
)

// Version is injected at build time via ldflags.
var Version = "dev"

func main() {
	app := &cli.App{
		Name:    "rusty-ast-index",
		Usage:   "index the syntax trees of a Rust source tree into SQLite",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "db", Value: "rusty-ast.db", Usage: "catalog database file"},
			&cli.StringFlag{Name: "log-level", Value: "info", Usage: "log level (debug, info, warn, error)"},
		},
		Before: func(c *cli.Context) error {
			level, err := logging.ParseLevel(c.String("log-level"))
			if err != nil {
				return err
			}
			c.Context = logging.Setup(c.Context, os.Stderr, level, true)
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:      "index",
				Usage:     "parse every .rs file below DIR and record the results",
				ArgsUsage: "DIR",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "jobs", Aliases: []string{"j"}, Usage: "files parsed in parallel (default: one per CPU)"},
					&cli.BoolFlag{Name: "migrate", Usage: "upgrade an existing catalog to the current schema"},
				},
				Action: runIndex,
			},
			{
				Name:  "list",
				Usage: "list indexed items",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "kind", Usage: "only items of this kind (Function, Struct, Enum, Other)"},
					&cli.StringFlag{Name: "name", Usage: "only items whose name contains this text"},
				},
				Action: runList,
			},
			{
				Name:      "show",
				Usage:     "print the stored JSON document of an indexed file",
				ArgsUsage: "PATH",
				Action:    runShow,
			},
		},
	}

	if err := app.RunContext(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// openCatalog opens the catalog named by --db. A fresh database is migrated
// automatically; an outdated one only when allowMigrate is set.
func openCatalog(c *cli.Context, allowMigrate bool) (*catalog.Catalog, error) {
	path := c.String("db")
	_, err := os.Stat(path)
	fresh := errors.Is(err, os.ErrNotExist)

	cat, err := catalog.Open(path)
	if err != nil {
		return nil, err
	}
	if cat.UpToDate() {
		return cat, nil
	}
	if !fresh && !allowMigrate {
		cat.Close()
		return nil, errors.Errorf("catalog %s schema is not up to date, use index --migrate to update", path)
	}
	if err := cat.Migrate(); err != nil {
		cat.Close()
		return nil, err
	}
	slogctx.FromCtx(c.Context).InfoContext(c.Context, "catalog initialized", "db", path)
	return cat, nil
}

func runIndex(c *cli.Context) error {
	if c.NArg() != 1 {
		return errors.New("index expects exactly one DIR argument")
	}
	root := c.Args().First()

	cat, err := openCatalog(c, c.Bool("migrate"))
	if err != nil {
		return err
	}
	defer cat.Close()

	results, err := scan.Dir(c.Context, root, scan.Options{Concurrency: c.Int("jobs")})
	if err != nil {
		return err
	}
	run, err := cat.RecordRun(c.Context, root, results)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.App.Writer, "run %s: indexed %s (%s), %s\n",
		run.ID,
		pluralize(run.Files, "file"),
		humanize.Bytes(uint64(run.Bytes)),
		pluralize(run.Failures, "failure"),
	)
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(c.App.ErrWriter, "  %v\n", r.Err)
		}
	}
	return nil
}

func pluralize(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return humanize.Comma(int64(n)) + " " + word + "s"
}

func runList(c *cli.Context) error {
	cat, err := openCatalog(c, false)
	if err != nil {
		return err
	}
	defer cat.Close()

	items, err := cat.Items(c.Context, catalog.Filter{Kind: c.String("kind"), Name: c.String("name")})
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "KIND\tNAME\tLOCATION")
	for _, item := range items {
		fmt.Fprintf(w, "%s\t%s\t%s:%d\n", item.Kind, item.Name, item.Path, item.Line)
	}
	return w.Flush()
}

func runShow(c *cli.Context) error {
	if c.NArg() != 1 {
		return errors.New("show expects exactly one PATH argument")
	}
	cat, err := openCatalog(c, false)
	if err != nil {
		return err
	}
	defer cat.Close()

	file, err := cat.File(c.Context, c.Args().First())
	if err != nil {
		return err
	}
	if file.Error != "" {
		return errors.Errorf("%s was not indexed: %s", file.Path, file.Error)
	}
	fmt.Fprintln(c.App.Writer, file.JSON)
	return nil
}
