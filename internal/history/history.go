// Package history is the [DOMAIN] history log: an opt-in, local-first
// analytics tap over the file transforms made through the CLI (stdin
// input and cache hits are not recorded). It is a read-only-to-the-engine
// side effect — skim's library API (skim.go) never touches it, and the CLI
// ignores a write failure here, with the same never-fatal-to-transformation
// posture as the result cache (spec §4.10).
//
// Grounded on db/sqlite.go's dual local-file/libsql-URL dialector
// selection from the teacher repo, with the local branch switched to
// glebarez/sqlite (pure Go, no cgo) and the libsql branch kept as-is
// (gorm.io/driver/sqlite's Config.DriverName/Conn override, the only way
// to hand gorm a libsql-backed *sql.DB).
package history

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	glebarez "github.com/glebarez/sqlite"
	libsql "github.com/tursodatabase/libsql-client-go/libsql"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Log wraps a gorm connection to the history database.
type Log struct {
	db *gorm.DB
}

// Open connects to dsn (a local file path or a libsql/http(s) URL),
// running migrations, and returns a Log. debug enables gorm's query
// logger, mirroring db.Connect's debug flag in the teacher repo.
func Open(dsn string, debug bool) (*Log, error) {
	if !isURL(dsn) {
		if dir := filepath.Dir(dsn); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create history directory: %w", err)
			}
		}
	}

	config := &gorm.Config{}
	if debug {
		config.Logger = logger.Default.LogMode(logger.Info)
	}

	var (
		dialector gorm.Dialector
		conn      *sql.DB
	)
	if isURL(dsn) {
		var (
			connector driver.Connector
			err       error
		)
		if token := os.Getenv("SKIM_LIBSQL_AUTH_TOKEN"); token != "" {
			connector, err = libsql.NewConnector(dsn, libsql.WithAuthToken(token))
		} else {
			connector, err = libsql.NewConnector(dsn)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to create libsql connector: %w", err)
		}
		conn = sql.OpenDB(connector)
		dialector = sqlite.New(sqlite.Config{DriverName: "libsql", Conn: conn, DSN: dsn})
	} else {
		dialector = glebarez.Open(dsn)
	}

	db, err := gorm.Open(dialector, config)
	if err != nil {
		if conn != nil {
			conn.Close()
		}
		return nil, fmt.Errorf("failed to connect to history database: %w", err)
	}

	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, fmt.Errorf("history migration failed: %w", err)
	}

	return &Log{db: db}, nil
}

// isURL reports whether dsn names a libsql/Turso remote rather than a
// local file path, mirroring db.Connect's isURL.
func isURL(dsn string) bool {
	return strings.HasPrefix(dsn, "http://") || strings.HasPrefix(dsn, "https://") || strings.HasPrefix(dsn, "libsql")
}

// Close releases the underlying database connection.
func (l *Log) Close() error {
	if l == nil || l.db == nil {
		return nil
	}
	sqlDB, err := l.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Record is the data Append persists for one successful CLI transform.
type Record struct {
	Path              string
	Language          string
	Mode              string
	OriginalBytes     int
	TransformedBytes  int
	OriginalLines     int
	TransformedLines  int
	DurationMS        float64
	ContentHash       string
	Warnings          []string
}

// Append inserts one history row. Errors are returned for the caller to
// log-and-ignore per this package's never-fatal posture; Append never
// panics and never blocks the transform it records.
func (l *Log) Append(r Record) error {
	var warnings datatypes.JSON
	if len(r.Warnings) > 0 {
		if encoded, err := json.Marshal(r.Warnings); err == nil {
			warnings = encoded
		}
	}

	entry := &Entry{
		Path:             r.Path,
		Language:         r.Language,
		Mode:             r.Mode,
		OriginalBytes:    r.OriginalBytes,
		TransformedBytes: r.TransformedBytes,
		OriginalLines:    r.OriginalLines,
		TransformedLines: r.TransformedLines,
		DurationMS:       r.DurationMS,
		ContentHash:      r.ContentHash,
		Warnings:         warnings,
		CreatedAt:        time.Now(),
	}
	return l.db.Create(entry).Error
}
