package prompt

import (
	"errors"
	"time"
)

// StorageKey is the key the prompt collection is persisted under.
// Its value is a bare JSON array of strings.
const StorageKey = "nev_saved_prompts"

// ExportFileName is the suggested file name for exported collections.
const ExportFileName = "nev_prompts_backup.json"

// Snapshot is the export/import document.
type Snapshot struct {
	Prompts    []string   `json:"prompts"`
	ExportedAt *time.Time `json:"exportedAt,omitempty"`
}

var (
	ErrStorageUnavailable = errors.New("prompt storage unavailable")
	ErrEmptyExport        = errors.New("no prompts to export")
	ErrMalformedImport    = errors.New("invalid prompts file")
)
