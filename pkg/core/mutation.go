package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// IDGenerator produces row identifiers. Implementations must never repeat a
// value during the lifetime of a store.
type IDGenerator func() string

// AddRow appends a row seeded from the catalog defaults of soundID.
// An unresolved soundID leaves rows unchanged and reports false.
func AddRow(rows []Row, catalog Catalog, soundID string, newID IDGenerator) ([]Row, bool) {
	sound, ok := catalog.Resolve(soundID)
	if !ok {
		return rows, false
	}
	row := Row{
		RowID:           newID(),
		SoundID:         sound.ID,
		FreqBands:       sound.FreqBands.Clone(),
		StereoPresences: sound.StereoPresences.Clone(),
		Depths:          sound.Depths.Clone(),
		Shapes:          sound.Shapes.Clone(),
		Label:           "",
	}
	out := make([]Row, len(rows), len(rows)+1)
	copy(out, rows)
	return append(out, row), true
}

// RemoveRow filters out the row with rowID. Removing an unknown row is a no-op.
func RemoveRow(rows []Row, rowID string) ([]Row, bool) {
	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		if r.RowID != rowID {
			out = append(out, r)
		}
	}
	if len(out) == len(rows) {
		return rows, false
	}
	return out, true
}

// RelabelRow replaces the label of the matching row.
func RelabelRow(rows []Row, rowID, label string) ([]Row, bool) {
	return mapRow(rows, rowID, func(r Row) Row {
		r.Label = label
		return r
	})
}

// ToggleAttribute flips membership of value in the axis set of the matching
// row. Any string is accepted; the vocabulary is not enforced here.
func ToggleAttribute(rows []Row, rowID string, axis Axis, value string) ([]Row, bool) {
	if !axis.Valid() {
		return rows, false
	}
	return mapRow(rows, rowID, func(r Row) Row {
		return r.withSet(axis, r.Set(axis).Toggle(value))
	})
}

// ClearRows returns an empty collection. Callers confirm with the user first.
func ClearRows() []Row {
	return []Row{}
}

func mapRow(rows []Row, rowID string, fn func(Row) Row) ([]Row, bool) {
	idx := -1
	for i, r := range rows {
		if r.RowID == rowID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return rows, false
	}
	out := make([]Row, len(rows))
	copy(out, rows)
	out[idx] = fn(rows[idx])
	return out, true
}

// Env carries what transitions need besides the state itself. The zero
// value uses the shipped catalog and UUID row IDs.
type Env struct {
	Builtin *StaticCatalog
	NewID   IDGenerator
}

// Catalog returns the merged view of the built-in and custom definitions.
func (e Env) Catalog(s State) Catalog {
	return Merge(e.builtin(), s.CustomSounds)
}

func (e Env) builtin() *StaticCatalog {
	if e.Builtin == nil {
		return Builtin()
	}
	return e.Builtin
}

func (e Env) newID() IDGenerator {
	if e.NewID == nil {
		return uuid.NewString
	}
	return e.NewID
}

// Command is a pure state transition. Apply reports whether anything changed;
// an unchanged state is never persisted or broadcast.
type Command interface {
	Apply(s State, env Env) (State, bool, error)
	Event() Event
}

// AddSound appends a row for SoundID.
type AddSound struct{ SoundID string }

func (c AddSound) Apply(s State, env Env) (State, bool, error) {
	rows, ok := AddRow(s.Rows, env.Catalog(s), c.SoundID, env.newID())
	s.Rows = rows
	return s, ok, nil
}

func (c AddSound) Event() Event { return Event{Type: EventRowAdd, ID: c.SoundID} }

// RemoveRowCmd deletes a row.
type RemoveRowCmd struct{ RowID string }

func (c RemoveRowCmd) Apply(s State, _ Env) (State, bool, error) {
	rows, ok := RemoveRow(s.Rows, c.RowID)
	s.Rows = rows
	return s, ok, nil
}

func (c RemoveRowCmd) Event() Event { return Event{Type: EventRowRemove, ID: c.RowID} }

// RelabelRowCmd sets the free-form label of a row.
type RelabelRowCmd struct {
	RowID string
	Label string
}

func (c RelabelRowCmd) Apply(s State, _ Env) (State, bool, error) {
	rows, ok := RelabelRow(s.Rows, c.RowID, c.Label)
	s.Rows = rows
	return s, ok, nil
}

func (c RelabelRowCmd) Event() Event { return Event{Type: EventRowLabel, ID: c.RowID} }

// ToggleAttributeCmd flips one attribute value on one row.
type ToggleAttributeCmd struct {
	RowID string
	Axis  Axis
	Value string
}

func (c ToggleAttributeCmd) Apply(s State, _ Env) (State, bool, error) {
	if !c.Axis.Valid() {
		return s, false, fmt.Errorf("%w: %q", ErrUnknownAxis, c.Axis)
	}
	rows, ok := ToggleAttribute(s.Rows, c.RowID, c.Axis, c.Value)
	s.Rows = rows
	return s, ok, nil
}

func (c ToggleAttributeCmd) Event() Event { return Event{Type: EventRowToggle, ID: c.RowID} }

// ClearRowsCmd drops every row. Custom sounds are kept.
type ClearRowsCmd struct{}

func (ClearRowsCmd) Apply(s State, _ Env) (State, bool, error) {
	if len(s.Rows) == 0 {
		return s, false, nil
	}
	s.Rows = ClearRows()
	return s, true, nil
}

func (ClearRowsCmd) Event() Event { return Event{Type: EventRowsClear} }

// RegisterSound adds or replaces a custom definition.
type RegisterSound struct{ Sound SoundDefinition }

func (c RegisterSound) Apply(s State, env Env) (State, bool, error) {
	d := c.Sound.Clone()
	d.ID = strings.TrimSpace(d.ID)
	if d.ID == "" {
		return s, false, fmt.Errorf("%w: id is required", ErrInvalidSound)
	}
	if d.Name == "" {
		d.Name = d.ID
	}
	if env.builtin().Has(d.ID) {
		return s, false, fmt.Errorf("%w: %s", ErrBuiltinSound, d.ID)
	}
	out := make([]SoundDefinition, 0, len(s.CustomSounds)+1)
	replaced := false
	for _, existing := range s.CustomSounds {
		if existing.ID == d.ID {
			out = append(out, d)
			replaced = true
			continue
		}
		out = append(out, existing)
	}
	if !replaced {
		out = append(out, d)
	}
	s.CustomSounds = out
	return s, true, nil
}

func (c RegisterSound) Event() Event { return Event{Type: EventSoundRegister, ID: c.Sound.ID} }

// UnregisterSound removes a custom definition. Rows that reference it stay
// and fall back to their raw sound ID for display.
type UnregisterSound struct{ ID string }

func (c UnregisterSound) Apply(s State, _ Env) (State, bool, error) {
	out := make([]SoundDefinition, 0, len(s.CustomSounds))
	for _, d := range s.CustomSounds {
		if d.ID != c.ID {
			out = append(out, d)
		}
	}
	if len(out) == len(s.CustomSounds) {
		return s, false, nil
	}
	s.CustomSounds = out
	return s, true, nil
}

func (c UnregisterSound) Event() Event { return Event{Type: EventSoundUnregister, ID: c.ID} }

// ReplaceState swaps the rows wholesale, and the custom sounds too when
// CustomSounds is non-nil. Used by import. Only the first row of each rowId
// is kept.
type ReplaceState struct {
	Rows         []Row
	CustomSounds []SoundDefinition
}

func (c ReplaceState) Apply(s State, _ Env) (State, bool, error) {
	s.Rows, _ = UniqueRows(c.Rows)
	if c.CustomSounds != nil {
		s.CustomSounds = cloneDefinitions(c.CustomSounds)
	}
	return s, true, nil
}

func (ReplaceState) Event() Event { return Event{Type: EventStateReplace} }
