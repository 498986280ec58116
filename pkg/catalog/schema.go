package catalog

import (
	"time"

	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Run is one invocation of the indexer over a directory tree.
type Run struct {
	ID        string `gorm:"primaryKey"`
	Root      string
	StartedAt time.Time `gorm:"index"`
	Files     int
	Failures  int
	Bytes     int64
}

// SourceFile holds the latest rendering of one source file. Error is set
// instead of JSON when the file could not be parsed.
type SourceFile struct {
	Path  string `gorm:"primaryKey"`
	RunID string `gorm:"index"`
	Bytes int64
	JSON  string
	Error string
}

// ItemRecord is a top-level item of an indexed file.
type ItemRecord struct {
	Path     string `gorm:"primaryKey"`
	Position int    `gorm:"primaryKey;autoIncrement:false"`
	RunID    string `gorm:"index"`
	Kind     string `gorm:"index"`
	Name     string `gorm:"index"`
	Line     int
}

func getMigrations() []*gormigrate.Migration {
	return []*gormigrate.Migration{
		{
			ID: "202610190001",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(
					&Run{},
					&SourceFile{},
					&ItemRecord{},
				)
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable(
					&ItemRecord{},
					&SourceFile{},
					&Run{},
				)
			},
		},
	}
}

func migrate(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, getMigrations())
	return m.Migrate()
}

// checkMigration reports whether the newest migration has been applied. A
// database without the migrations table is simply not up to date.
func checkMigration(db *gorm.DB) bool {
	var lastMigration string
	err := db.Session(&gorm.Session{Logger: db.Logger.LogMode(logger.Silent)}).
		Table(gormigrate.DefaultOptions.TableName).
		Select("id").
		Order("id DESC").
		Limit(1).
		Scan(&lastMigration).Error
	if err != nil {
		return false
	}
	migrations := getMigrations()
	return lastMigration == migrations[len(migrations)-1].ID
}
