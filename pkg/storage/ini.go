package storage

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/cuemby/meteowatch/pkg/escalation"
	"github.com/rs/zerolog"
	"gopkg.in/ini.v1"
)

// IniStore keeps the escalation level in a small INI file:
//
//	[meteowatch]
//	reboot_timeout = 30
type IniStore struct {
	path   string
	logger zerolog.Logger
}

// NewIniStore creates an INI-backed store at path
func NewIniStore(path string, logger zerolog.Logger) *IniStore {
	return &IniStore{
		path:   path,
		logger: logger,
	}
}

// Path returns the state file location
func (s *IniStore) Path() string {
	return s.path
}

// Read returns the stored level. A missing file, section or key is the
// normal "never failed" case and yields nil silently; unusable content
// yields nil with a warning.
func (s *IniStore) Read() (*escalation.Level, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: read %s: %w", escalation.ErrStore, s.path, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		s.logger.Warn().Str("path", s.path).Msg("Escalation state file is empty")
		return nil, nil
	}

	f, err := ini.Load(data)
	if err != nil {
		s.logger.Warn().Err(err).Str("path", s.path).Msg("Error reading escalation state file")
		return nil, nil
	}

	// Keys before any section header land in DEFAULT
	if len(f.Section(ini.DefaultSection).Keys()) > 0 {
		s.logger.Warn().Str("path", s.path).Msg("Error reading escalation state file: missing section header")
		return nil, nil
	}

	section, err := f.GetSection(SectionName)
	if err != nil || !section.HasKey(KeyName) {
		return nil, nil
	}

	raw := strings.TrimSpace(section.Key(KeyName).String())
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		s.logger.Warn().Str("path", s.path).Str("value", raw).Msg("Invalid reboot_timeout in escalation state file")
		return nil, nil
	}

	level := escalation.Level(value)
	return &level, nil
}

// Write replaces the file content with a single level
func (s *IniStore) Write(level escalation.Level) error {
	f := ini.Empty()
	section, err := f.NewSection(SectionName)
	if err != nil {
		return fmt.Errorf("%w: %w", escalation.ErrStore, err)
	}
	if _, err := section.NewKey(KeyName, strconv.Itoa(int(level))); err != nil {
		return fmt.Errorf("%w: %w", escalation.ErrStore, err)
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return fmt.Errorf("%w: encode state: %w", escalation.ErrStore, err)
	}

	if err := writeFileAtomic(s.path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("%w: %w", escalation.ErrStore, err)
	}
	return nil
}

// Close is a no-op; the file is only open while reading or writing
func (s *IniStore) Close() error {
	return nil
}
