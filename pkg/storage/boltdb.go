package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/cuemby/meteowatch/pkg/escalation"
	"github.com/rs/zerolog"
	bolt "go.etcd.io/bbolt"
)

var (
	bucketState      = []byte(SectionName)
	keyRebootTimeout = []byte(KeyName)
)

// BoltStore keeps the escalation level in a BoltDB file
type BoltStore struct {
	db     *bolt.DB
	logger zerolog.Logger
}

// NewBoltStore opens (or creates) a BoltDB-backed store at path
func NewBoltStore(path string, logger zerolog.Logger) (*BoltStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("%w: failed to create directory: %w", escalation.ErrStore, err)
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open database: %w", escalation.ErrStore, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketState); err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", bucketState, err)
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %w", escalation.ErrStore, err)
	}

	return &BoltStore{db: db, logger: logger}, nil
}

// Read returns the stored level, or nil if none is stored or it is unusable
func (s *BoltStore) Read() (*escalation.Level, error) {
	var raw []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(bucketState).Get(keyRebootTimeout); v != nil {
			raw = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", escalation.ErrStore, err)
	}
	if raw == nil {
		return nil, nil
	}

	value, err := strconv.Atoi(string(raw))
	if err != nil || value < 0 {
		s.logger.Warn().Str("path", s.db.Path()).Str("value", string(raw)).Msg("Invalid reboot_timeout in escalation database")
		return nil, nil
	}

	level := escalation.Level(value)
	return &level, nil
}

// Write replaces the stored level
func (s *BoltStore) Write(level escalation.Level) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketState).Put(keyRebootTimeout, []byte(strconv.Itoa(int(level))))
	})
	if err != nil {
		return fmt.Errorf("%w: %w", escalation.ErrStore, err)
	}
	return nil
}

// Close closes the database
func (s *BoltStore) Close() error {
	return s.db.Close()
}
