// Package catalog stores scan results in a SQLite database so that indexed
// items and rendered documents can be queried later.
package catalog

import (
	"context"
	"time"

	"github.com/rs/xid"
	slogctx "github.com/veqryn/slog-context"
	"gitlab.com/tozd/go/errors"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/spicery/rusty-ast/pkg/scan"
	"github.com/spicery/rusty-ast/pkg/syntax"
	"github.com/spicery/rusty-ast/pkg/walker"
)

var ErrNotFound = errors.Base("not found")

type Catalog struct {
	db *gorm.DB
}

// Open connects to the database at path, creating the file if needed. The
// schema is not touched; see UpToDate and Migrate.
func Open(path string) (*Catalog, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, errors.Errorf("opening catalog %s: %w", path, err)
	}
	return &Catalog{db: db}, nil
}

func (c *Catalog) Migrate() error {
	if err := migrate(c.db); err != nil {
		return errors.Errorf("migrating catalog: %w", err)
	}
	return nil
}

func (c *Catalog) UpToDate() bool {
	return checkMigration(c.db)
}

func (c *Catalog) Close() error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return errors.WithStack(err)
	}
	return errors.WithStack(sqlDB.Close())
}

// ItemsOf lists the top-level items of file for the catalog.
func ItemsOf(path string, file *syntax.File) []ItemRecord {
	if file == nil {
		return nil
	}
	records := make([]ItemRecord, 0, len(file.Items))
	for i, item := range file.Items {
		rec := ItemRecord{Path: path, Position: i, Line: item.Position().StartLine}
		switch it := item.(type) {
		case *syntax.Function:
			rec.Kind, rec.Name = walker.KindFunction.Tag(), it.Name
		case *syntax.Struct:
			rec.Kind, rec.Name = walker.KindStruct.Tag(), it.Name
		case *syntax.Enum:
			rec.Kind, rec.Name = walker.KindEnum.Tag(), it.Name
		default:
			rec.Kind = walker.KindOtherItem.Tag()
		}
		records = append(records, rec)
	}
	return records
}

// RecordRun stores results as a new run. Files indexed before are replaced.
func (c *Catalog) RecordRun(ctx context.Context, root string, results []scan.Result) (*Run, error) {
	run := &Run{
		ID:        xid.New().String(),
		Root:      root,
		StartedAt: time.Now().UTC(),
		Files:     len(results),
		Failures:  scan.Failures(results),
	}
	for _, r := range results {
		run.Bytes += r.Bytes
	}

	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(run).Error; err != nil {
			return errors.Errorf("saving run: %w", err)
		}
		for _, r := range results {
			file := SourceFile{Path: r.Path, RunID: run.ID, Bytes: r.Bytes, JSON: r.JSON}
			if r.Err != nil {
				file.Error = r.Err.Error()
			}
			if err := tx.Save(&file).Error; err != nil {
				return errors.Errorf("saving %s: %w", r.Path, err)
			}
			if err := tx.Where("path = ?", r.Path).Delete(&ItemRecord{}).Error; err != nil {
				return errors.Errorf("clearing items of %s: %w", r.Path, err)
			}
			records := ItemsOf(r.Path, r.File)
			if len(records) == 0 {
				continue
			}
			for i := range records {
				records[i].RunID = run.ID
			}
			if err := tx.Create(&records).Error; err != nil {
				return errors.Errorf("saving items of %s: %w", r.Path, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	slogctx.FromCtx(ctx).InfoContext(ctx, "recorded run", "run", run.ID, "files", run.Files, "failures", run.Failures)
	return run, nil
}

// Filter selects items. Empty fields match everything; Name matches any
// item whose name contains it.
type Filter struct {
	Kind  string
	Name  string
	RunID string
}

func (c *Catalog) Items(ctx context.Context, f Filter) ([]ItemRecord, error) {
	q := c.db.WithContext(ctx).Model(&ItemRecord{})
	if f.Kind != "" {
		q = q.Where("kind = ?", f.Kind)
	}
	if f.Name != "" {
		q = q.Where("name LIKE ?", "%"+f.Name+"%")
	}
	if f.RunID != "" {
		q = q.Where("run_id = ?", f.RunID)
	}
	var items []ItemRecord
	if err := q.Order("path").Order("position").Find(&items).Error; err != nil {
		return nil, errors.Errorf("listing items: %w", err)
	}
	return items, nil
}

func (c *Catalog) File(ctx context.Context, path string) (*SourceFile, error) {
	var file SourceFile
	err := c.db.WithContext(ctx).Where("path = ?", path).First(&file).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.WrapWith(err, ErrNotFound)
	} else if err != nil {
		return nil, errors.Errorf("loading %s: %w", path, err)
	}
	return &file, nil
}

// LatestRun returns the most recent run.
func (c *Catalog) LatestRun(ctx context.Context) (*Run, error) {
	var run Run
	err := c.db.WithContext(ctx).Order("started_at DESC").First(&run).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.WrapWith(err, ErrNotFound)
	} else if err != nil {
		return nil, errors.Errorf("loading latest run: %w", err)
	}
	return &run, nil
}
