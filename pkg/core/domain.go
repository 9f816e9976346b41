// Package core holds the selection and aggregation engine: the row model,
// the pure transitions applied to it and the per-axis totals derived from it.
package core

import (
	"fmt"
	"slices"
	"strings"
)

// Axis names one of the four independent classification dimensions.
// The value doubles as the JSON key of the matching row field.
type Axis string

const (
	AxisFrequency Axis = "freqBands"
	AxisStereo    Axis = "stereoPresences"
	AxisDepth     Axis = "depths"
	AxisShape     Axis = "shapes"
)

// Axes lists every axis in display order.
var Axes = []Axis{AxisFrequency, AxisStereo, AxisDepth, AxisShape}

var (
	frequencyBands  = []string{"low", "low-mid", "mid", "high"}
	stereoPresences = []string{"narrow", "medium", "wide"}
	depths          = []string{"front", "middle", "back"}
	shapes          = []string{"transient", "sustained"}
)

// Vocabulary returns the fixed values the aggregator counts for the axis.
// The returned slice is a copy.
func (a Axis) Vocabulary() []string {
	switch a {
	case AxisFrequency:
		return slices.Clone(frequencyBands)
	case AxisStereo:
		return slices.Clone(stereoPresences)
	case AxisDepth:
		return slices.Clone(depths)
	case AxisShape:
		return slices.Clone(shapes)
	}
	return nil
}

// Title is the human label used by renderers.
func (a Axis) Title() string {
	switch a {
	case AxisFrequency:
		return "Frequency"
	case AxisStereo:
		return "Stereo"
	case AxisDepth:
		return "Depth"
	case AxisShape:
		return "Shape"
	}
	return string(a)
}

// Valid reports whether a is one of the four known axes.
func (a Axis) Valid() bool {
	return slices.Contains(Axes, a)
}

// InVocabulary reports whether value belongs to the axis vocabulary.
func (a Axis) InVocabulary(value string) bool {
	return slices.Contains(a.Vocabulary(), value)
}

// ParseAxis accepts the row field name (e.g. "freqBands") or a short alias
// ("frequency", "freq", "stereo", "depth", "shape"), case-insensitively.
func ParseAxis(s string) (Axis, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "freqbands", "frequency", "freq":
		return AxisFrequency, nil
	case "stereopresences", "stereo":
		return AxisStereo, nil
	case "depths", "depth":
		return AxisDepth, nil
	case "shapes", "shape":
		return AxisShape, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAxis, s)
}

// SoundDefinition is a catalog entry: a display name plus the attribute sets
// copied into every row created from it.
type SoundDefinition struct {
	ID              string       `json:"id" yaml:"id"`
	Name            string       `json:"name" yaml:"name"`
	FreqBands       AttributeSet `json:"defaultFreqBands" yaml:"freqBands"`
	StereoPresences AttributeSet `json:"defaultStereoPresence" yaml:"stereoPresences"`
	Depths          AttributeSet `json:"defaultDepth" yaml:"depths"`
	Shapes          AttributeSet `json:"defaultShape" yaml:"shapes"`
}

// Defaults returns the default set for the given axis.
func (d SoundDefinition) Defaults(axis Axis) AttributeSet {
	switch axis {
	case AxisFrequency:
		return d.FreqBands
	case AxisStereo:
		return d.StereoPresences
	case AxisDepth:
		return d.Depths
	case AxisShape:
		return d.Shapes
	}
	return nil
}

// Clone returns a deep copy, so callers never alias the catalog's sets.
func (d SoundDefinition) Clone() SoundDefinition {
	return SoundDefinition{
		ID:              d.ID,
		Name:            d.Name,
		FreqBands:       d.FreqBands.Clone(),
		StereoPresences: d.StereoPresences.Clone(),
		Depths:          d.Depths.Clone(),
		Shapes:          d.Shapes.Clone(),
	}
}

// Row is a single selected sound with its per-axis tags.
// RowID is assigned once by AddRow and never changes.
type Row struct {
	RowID           string       `json:"rowId"`
	SoundID         string       `json:"soundId"`
	FreqBands       AttributeSet `json:"freqBands"`
	StereoPresences AttributeSet `json:"stereoPresences"`
	Depths          AttributeSet `json:"depths"`
	Shapes          AttributeSet `json:"shapes"`
	Label           string       `json:"label"`
}

// Set returns the row's attribute set for axis, or nil for an unknown axis.
func (r Row) Set(axis Axis) AttributeSet {
	switch axis {
	case AxisFrequency:
		return r.FreqBands
	case AxisStereo:
		return r.StereoPresences
	case AxisDepth:
		return r.Depths
	case AxisShape:
		return r.Shapes
	}
	return nil
}

// withSet returns a copy of r whose axis set is replaced by set.
func (r Row) withSet(axis Axis, set AttributeSet) Row {
	switch axis {
	case AxisFrequency:
		r.FreqBands = set
	case AxisStereo:
		r.StereoPresences = set
	case AxisDepth:
		r.Depths = set
	case AxisShape:
		r.Shapes = set
	}
	return r
}

// Clone returns a deep copy of the row.
func (r Row) Clone() Row {
	r.FreqBands = r.FreqBands.Clone()
	r.StereoPresences = r.StereoPresences.Clone()
	r.Depths = r.Depths.Clone()
	r.Shapes = r.Shapes.Clone()
	return r
}

// State is everything the engine owns: the ordered rows and the user's
// custom sound definitions. It is also the persisted snapshot.
type State struct {
	Rows         []Row             `json:"selectedRows"`
	CustomSounds []SoundDefinition `json:"customSounds"`
}

// Clone returns a deep copy with non-nil slices.
func (s State) Clone() State {
	return State{
		Rows:         CloneRows(s.Rows),
		CustomSounds: cloneDefinitions(s.CustomSounds),
	}
}

// CloneRows deep-copies rows. The result is never nil.
func CloneRows(rows []Row) []Row {
	out := make([]Row, len(rows))
	for i, r := range rows {
		out[i] = r.Clone()
	}
	return out
}

// UniqueRows keeps the first row of every rowId and drops later repeats.
// It reports how many rows were dropped. The result is never nil.
func UniqueRows(rows []Row) ([]Row, int) {
	seen := make(map[string]struct{}, len(rows))
	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		if _, dup := seen[r.RowID]; dup {
			continue
		}
		seen[r.RowID] = struct{}{}
		out = append(out, r.Clone())
	}
	return out, len(rows) - len(out)
}

func cloneDefinitions(defs []SoundDefinition) []SoundDefinition {
	out := make([]SoundDefinition, len(defs))
	for i, d := range defs {
		out[i] = d.Clone()
	}
	return out
}

// EventType represents the kind of change applied to the state.
type EventType string

const (
	EventRowAdd          EventType = "ROW_ADD"
	EventRowRemove       EventType = "ROW_REMOVE"
	EventRowLabel        EventType = "ROW_LABEL"
	EventRowToggle       EventType = "ROW_TOGGLE"
	EventRowsClear       EventType = "ROWS_CLEAR"
	EventStateReplace    EventType = "STATE_REPLACE"
	EventSoundRegister   EventType = "SOUND_REGISTER"
	EventSoundUnregister EventType = "SOUND_UNREGISTER"
	EventReload          EventType = "RELOAD"
)

// Event describes an accepted transition.
type Event struct {
	Type      EventType
	ID        string // row or sound ID, empty for bulk changes
	Timestamp int64  // Unix timestamp
}

// String implements lifecycle.Event.
func (e Event) String() string {
	if e.ID == "" {
		return string(e.Type)
	}
	return fmt.Sprintf("%s %s", e.Type, e.ID)
}
