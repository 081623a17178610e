package gormrepo

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	slowQueryThreshold = 200 * time.Millisecond
)

// Options selects the database engine and how to reach it.
type Options struct {
	Driver string
	// URL is the postgres connection string.
	URL string
	// Path is the sqlite database file (or a sqlite DSN such as ":memory:").
	Path   string
	Logger *logrus.Logger
}

// Open connects to the configured engine. Driver errors are translated by
// GORM so that unique violations surface as gorm.ErrDuplicatedKey.
func Open(opts Options) (*gorm.DB, error) {
	opts.Driver = strings.ToLower(strings.TrimSpace(opts.Driver))
	if opts.Driver == "" {
		opts.Driver = DriverSQLite
	}

	dialector, err := dialectorFor(opts)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         newLogger(opts.Logger),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s db: %w", opts.Driver, err)
	}

	if opts.Driver == DriverSQLite {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("sqlite handle: %w", err)
		}
		// in-memory databases live and die with their connection
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
	}

	return db, nil
}

// Close releases the connection pool behind db.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func dialectorFor(opts Options) (gorm.Dialector, error) {
	switch opts.Driver {
	case DriverPostgres:
		if strings.TrimSpace(opts.URL) == "" {
			return nil, fmt.Errorf("postgres driver requires a database url")
		}
		return postgres.Open(opts.URL), nil
	case DriverSQLite:
		path := strings.TrimSpace(opts.Path)
		if path == "" {
			return nil, fmt.Errorf("sqlite driver requires a database path")
		}
		if !isInMemory(path) {
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return nil, fmt.Errorf("create db dir: %w", err)
			}
		}
		return sqlite.Open(path), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", opts.Driver)
	}
}

func isInMemory(path string) bool {
	return path == ":memory:" || strings.HasPrefix(path, "file:")
}

func newLogger(log *logrus.Logger) gormlogger.Interface {
	if log == nil {
		return gormlogger.Discard
	}
	return gormlogger.New(log.WithField("component", "gorm"), gormlogger.Config{
		SlowThreshold:             slowQueryThreshold,
		LogLevel:                  gormlogger.Warn,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}
