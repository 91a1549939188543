package prompt

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// importSchemaJSON describes an accepted import file: an object whose
// "prompts" field is an array of strings. Extra fields are tolerated.
const importSchemaJSON = `{
	"type": "object",
	"required": ["prompts"],
	"properties": {
		"prompts": {
			"type": "array",
			"items": {"type": "string"}
		},
		"exportedAt": {"type": "string"}
	}
}`

var importSchema = jsonschema.MustCompileString("prompts-import.json", importSchemaJSON)

// ParseImport decodes and validates an import file. Any failure is
// ErrMalformedImport and nothing is returned.
func ParseImport(raw []byte) (Snapshot, error) {
	raw = stripBOM(raw)

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrMalformedImport, err)
	}
	if err := importSchema.Validate(doc); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrMalformedImport, err)
	}

	var file struct {
		Prompts    []string `json:"prompts"`
		ExportedAt string   `json:"exportedAt"`
	}
	if err := json.Unmarshal(raw, &file); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrMalformedImport, err)
	}

	snap := Snapshot{Prompts: file.Prompts}
	if file.ExportedAt != "" {
		// The timestamp is informational; an unparseable one is dropped.
		if t, err := time.Parse(time.RFC3339Nano, file.ExportedAt); err == nil {
			snap.ExportedAt = &t
		}
	}
	return snap, nil
}

// EncodeExport renders snap as an indented export file. A non-zero
// exportedAt is written as an RFC 3339 UTC timestamp.
func EncodeExport(snap Snapshot, exportedAt time.Time) ([]byte, error) {
	out := Snapshot{Prompts: snap.Prompts}
	if out.Prompts == nil {
		out.Prompts = []string{}
	}
	if !exportedAt.IsZero() {
		t := exportedAt.UTC()
		out.ExportedAt = &t
	}
	return json.MarshalIndent(out, "", "  ")
}

func stripBOM(b []byte) []byte {
	bom := []byte{0xEF, 0xBB, 0xBF}
	if len(b) >= 3 && bytes.Equal(b[:3], bom) {
		return b[3:]
	}
	return b
}
