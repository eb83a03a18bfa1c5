package weewx

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"regexp"
	"time"

	_ "modernc.org/sqlite"
)

// DefaultPath is where weewx keeps its SQLite archive
const DefaultPath = "/var/lib/weewx/weewx.sdb"

var (
	// ErrArchiveMissing means the archive file does not exist
	ErrArchiveMissing = errors.New("weewx archive does not exist")

	// ErrArchiveUnreadable means the archive exists but could not be queried
	ErrArchiveUnreadable = errors.New("weewx archive unreadable")

	identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

// MissingError reports an archive file that does not exist. It matches
// ErrArchiveMissing with errors.Is.
type MissingError struct {
	Path string
}

func (e *MissingError) Error() string {
	return fmt.Sprintf("weewx DB file %s does not exist", e.Path)
}

func (e *MissingError) Is(target error) bool {
	return target == ErrArchiveMissing
}

// Measurement is one archive record. Value is nil when the sensor
// reported nothing for that interval.
type Measurement struct {
	Time  time.Time
	Value *float64
}

// Config describes where the measurements live
type Config struct {
	// Path is the SQLite database file
	Path string

	// Table is the archive table (default: archive)
	Table string

	// ValueColumn is the nullable measurement column (default: windSpeed)
	ValueColumn string

	// TimeColumn is the integer epoch timestamp column (default: dateTime)
	TimeColumn string
}

// DefaultConfig returns the layout of a stock weewx archive
func DefaultConfig() Config {
	return Config{
		Path:        DefaultPath,
		Table:       "archive",
		ValueColumn: "windSpeed",
		TimeColumn:  "dateTime",
	}
}

// Validate checks that the table and column names are plain identifiers
func (c Config) Validate() error {
	if c.Path == "" {
		return fmt.Errorf("database path is required")
	}
	for name, v := range map[string]string{"table": c.Table, "value column": c.ValueColumn, "time column": c.TimeColumn} {
		if !identifier.MatchString(v) {
			return fmt.Errorf("invalid %s name %q", name, v)
		}
	}
	return nil
}

// Archive reads measurements from a weewx SQLite archive. The database is
// opened read-only for every query, so the archive may appear, disappear or
// be replaced between cycles.
type Archive struct {
	cfg   Config
	query string
}

// NewArchive creates an archive reader
func NewArchive(cfg Config) (*Archive, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(
		`SELECT "%s", "%s" FROM "%s" WHERE "%s" BETWEEN ? AND ? ORDER BY "%s" DESC`,
		cfg.ValueColumn, cfg.TimeColumn, cfg.Table, cfg.TimeColumn, cfg.TimeColumn,
	)

	return &Archive{cfg: cfg, query: query}, nil
}

// Path returns the archive file location
func (a *Archive) Path() string {
	return a.cfg.Path
}

// Recent returns all records timestamped within [since, until], newest first
func (a *Archive) Recent(ctx context.Context, since, until time.Time) ([]Measurement, error) {
	if _, err := os.Stat(a.cfg.Path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &MissingError{Path: a.cfg.Path}
		}
		return nil, fmt.Errorf("%w: %w", ErrArchiveUnreadable, err)
	}

	db, err := sql.Open("sqlite", a.dsn())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrArchiveUnreadable, err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, a.query, since.Unix(), until.Unix())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrArchiveUnreadable, err)
	}
	defer rows.Close()

	var records []Measurement
	for rows.Next() {
		var (
			value sql.NullFloat64
			epoch int64
		)
		if err := rows.Scan(&value, &epoch); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrArchiveUnreadable, err)
		}

		m := Measurement{Time: time.Unix(epoch, 0)}
		if value.Valid {
			v := value.Float64
			m.Value = &v
		}
		records = append(records, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrArchiveUnreadable, err)
	}

	return records, nil
}

func (a *Archive) dsn() string {
	u := url.URL{Scheme: "file", Path: a.cfg.Path}
	q := url.Values{}
	q.Set("mode", "ro")
	q.Add("_pragma", "busy_timeout(5000)")
	u.RawQuery = q.Encode()
	return u.String()
}
