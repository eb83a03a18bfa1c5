package storage

import (
	"fmt"

	"github.com/cuemby/meteowatch/pkg/escalation"
	"github.com/rs/zerolog"
)

// Backend selects how the escalation level is persisted
type Backend string

const (
	BackendINI  Backend = "ini"
	BackendBolt Backend = "bolt"
)

const (
	// SectionName is the section (INI) or bucket (bolt) holding the level
	SectionName = "meteowatch"

	// KeyName is the key holding the level
	KeyName = "reboot_timeout"
)

var (
	_ escalation.Store = (*IniStore)(nil)
	_ escalation.Store = (*BoltStore)(nil)
)

// Open creates the escalation store for the given backend
func Open(backend Backend, path string, logger zerolog.Logger) (escalation.Store, error) {
	switch backend {
	case BackendINI, "":
		return NewIniStore(path, logger), nil
	case BackendBolt:
		return NewBoltStore(path, logger)
	default:
		return nil, fmt.Errorf("unsupported state backend: %s", backend)
	}
}
