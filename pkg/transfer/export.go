// Package transfer implements the portable export document and the
// validating import flow built on top of it.
package transfer

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/aretw0/soundtracker/pkg/core"
)

const (
	// Version is the only document version this package writes.
	Version = 1
	// App tags documents produced by this application.
	App = "sound-tracker"

	timestampLayout = "2006-01-02T15:04:05.000Z"
	fileStampLayout = "2006-01-02T15-04-05"
)

// Document is the export file layout.
type Document struct {
	Version      int                    `json:"version"`
	ExportedAt   string                 `json:"exportedAt"`
	App          string                 `json:"app"`
	SelectedRows []core.Row             `json:"selectedRows"`
	CustomSounds []core.SoundDefinition `json:"customSounds"`
}

// Export builds the document for s, stamped with now in UTC.
func Export(s core.State, now time.Time) Document {
	s = s.Clone()
	return Document{
		Version:      Version,
		ExportedAt:   now.UTC().Format(timestampLayout),
		App:          App,
		SelectedRows: s.Rows,
		CustomSounds: s.CustomSounds,
	}
}

// Marshal encodes doc as two-space indented JSON with a trailing newline.
func Marshal(doc Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode export: %w", err)
	}
	return append(data, '\n'), nil
}

// FileName is the suggested download name, e.g.
// sound-tracker-export-2024-05-01T12-30-00.json.
func FileName(now time.Time) string {
	return fmt.Sprintf("%s-export-%s.json", App, now.UTC().Format(fileStampLayout))
}

// HasContent reports whether exporting s would carry anything.
func HasContent(s core.State) bool {
	return len(s.Rows) > 0 || len(s.CustomSounds) > 0
}
