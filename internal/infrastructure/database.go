package infrastructure

import (
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"storefront/internal/domain"
	"storefront/internal/infrastructure/schema"
	"storefront/pkg/logger"
)

// Database wraps the sqlite connection shared by the repositories
type Database struct {
	Db *gorm.DB
}

// NewDatabase opens the sqlite file at path and migrates the schema. Writes
// go through a single connection so conditional updates never interleave.
func NewDatabase(path string, log *logger.Logger) (*Database, error) {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000", path)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.New(log, gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access database handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	w := &Database{Db: db}
	if err := w.Migrate(); err != nil {
		w.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.WithField("path", path).Info("Connected to database")
	return w, nil
}

func (w *Database) Migrate() error {
	return w.Db.AutoMigrate(schema.All()...)
}

func (w *Database) Close() {
	sql, err := w.Db.DB()
	if err == nil {
		sql.Close()
	}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return err
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
}

// utc normalises instants before they are bound, since sqlite compares
// timestamps as text
func utc(t time.Time) time.Time {
	return t.UTC()
}
