package catalog

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"

	"github.com/spicery/rusty-ast/pkg/parser"
	"github.com/spicery/rusty-ast/pkg/scan"
	"github.com/spicery/rusty-ast/pkg/syntax"
)

func openCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := Open(filepath.Join(t.TempDir(), "index.db"))
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, c.Close()) })
	assert.False(t, c.UpToDate())
	require.NoError(t, c.Migrate())
	assert.True(t, c.UpToDate())
	return c
}

func result(t *testing.T, path, source string) scan.Result {
	t.Helper()
	file, err := parser.ParseString(source)
	require.NoError(t, err)
	return scan.Result{Path: path, Bytes: int64(len(source)), File: file, JSON: "{}"}
}

func TestItemsOf(t *testing.T) {
	file, err := parser.ParseString("fn a() {}\n\nstruct B;\nenum C { X }\nuse std::fmt;")
	require.NoError(t, err)
	assert.Equal(t, []ItemRecord{
		{Path: "lib.rs", Position: 0, Kind: "Function", Name: "a", Line: 1},
		{Path: "lib.rs", Position: 1, Kind: "Struct", Name: "B", Line: 3},
		{Path: "lib.rs", Position: 2, Kind: "Enum", Name: "C", Line: 4},
		{Path: "lib.rs", Position: 3, Kind: "Other", Line: 5},
	}, ItemsOf("lib.rs", file))
	assert.Nil(t, ItemsOf("x.rs", nil))
	assert.Empty(t, ItemsOf("x.rs", &syntax.File{}))
}

func TestRecordRun(t *testing.T) {
	ctx := context.Background()
	c := openCatalog(t)

	results := []scan.Result{
		result(t, "src/a.rs", "fn add(a: i32, b: i32) -> i32 { a + b }\nstruct Point { x: f64 }"),
		{Path: "src/bad.rs", Bytes: 5, Err: errors.New("parsing src/bad.rs: 1:1: unexpected `fn (`")},
	}
	run, err := c.RecordRun(ctx, "src", results)
	require.NoError(t, err)
	assert.NotEmpty(t, run.ID)
	assert.Equal(t, 2, run.Files)
	assert.Equal(t, 1, run.Failures)

	items, err := c.Items(ctx, Filter{})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "add", items[0].Name)
	assert.Equal(t, "Point", items[1].Name)
	assert.Equal(t, run.ID, items[0].RunID)

	structs, err := c.Items(ctx, Filter{Kind: "Struct"})
	require.NoError(t, err)
	require.Len(t, structs, 1)
	assert.Equal(t, "Point", structs[0].Name)

	named, err := c.Items(ctx, Filter{Name: "dd"})
	require.NoError(t, err)
	require.Len(t, named, 1)

	bad, err := c.File(ctx, "src/bad.rs")
	require.NoError(t, err)
	assert.Contains(t, bad.Error, "unexpected")
	assert.Empty(t, bad.JSON)

	latest, err := c.LatestRun(ctx)
	require.NoError(t, err)
	assert.Equal(t, run.ID, latest.ID)
}

func TestRecordRunReplacesFiles(t *testing.T) {
	ctx := context.Background()
	c := openCatalog(t)

	_, err := c.RecordRun(ctx, ".", []scan.Result{result(t, "lib.rs", "fn a() {}\nfn b() {}")})
	require.NoError(t, err)
	second, err := c.RecordRun(ctx, ".", []scan.Result{result(t, "lib.rs", "enum E { V }")})
	require.NoError(t, err)

	items, err := c.Items(ctx, Filter{})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "E", items[0].Name)

	file, err := c.File(ctx, "lib.rs")
	require.NoError(t, err)
	assert.Equal(t, second.ID, file.RunID)
}

func TestNotFound(t *testing.T) {
	ctx := context.Background()
	c := openCatalog(t)

	_, err := c.File(ctx, "missing.rs")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = c.LatestRun(ctx)
	assert.ErrorIs(t, err, ErrNotFound)
}
