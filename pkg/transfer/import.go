package transfer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aretw0/soundtracker/pkg/core"
)

var (
	ErrInvalidJSON       = errors.New("could not import file: not valid JSON")
	ErrMalformedDocument = errors.New("invalid file: missing selectedRows array")
	ErrAbandoned         = errors.New("import abandoned")
	ErrAlreadySettled    = errors.New("import already settled")
)

// Phase is the position of an Import in its lifecycle.
type Phase int

const (
	Idle Phase = iota
	Parsing
	Rejected
	PartiallyValid
	Valid
	Applied
	Abandoned
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Parsing:
		return "parsing"
	case Rejected:
		return "rejected"
	case PartiallyValid:
		return "partially-valid"
	case Valid:
		return "valid"
	case Applied:
		return "applied"
	case Abandoned:
		return "abandoned"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// Target receives an accepted import. core.Service implements it.
type Target interface {
	Replace(ctx context.Context, rows []core.Row, customSounds []core.SoundDefinition) error
}

// Import is a parsed document waiting to be applied or abandoned.
type Import struct {
	phase        Phase
	rows         []core.Row
	customSounds []core.SoundDefinition
	err          error

	// Total is the number of entries in selectedRows.
	Total int
	// Dropped counts rows that failed validation or repeated an earlier rowId.
	Dropped int
	// DroppedSounds counts customSounds entries that failed validation.
	DroppedSounds int
}

// Phase returns the current phase.
func (i *Import) Phase() Phase { return i.phase }

// Err returns the rejection cause, if any.
func (i *Import) Err() error { return i.err }

// Rows returns a copy of the rows that passed validation.
func (i *Import) Rows() []core.Row { return core.CloneRows(i.rows) }

// CustomSounds returns the custom definitions carried by the document, or nil
// when the document has none and the current ones will be kept.
func (i *Import) CustomSounds() []core.SoundDefinition {
	if i.customSounds == nil {
		return nil
	}
	return core.State{CustomSounds: i.customSounds}.Clone().CustomSounds
}

// NeedsConfirmation is true when some rows will be skipped.
func (i *Import) NeedsConfirmation() bool { return i.phase == PartiallyValid }

// Parse validates data. A rejected document returns a non-nil Import in
// phase Rejected together with the error.
func Parse(data []byte) (*Import, error) {
	imp := &Import{phase: Parsing}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return imp.reject(fmt.Errorf("%w: %v", ErrInvalidJSON, err))
	}
	doc, ok := raw.(map[string]any)
	if !ok {
		return imp.reject(ErrMalformedDocument)
	}
	items, ok := doc["selectedRows"].([]any)
	if !ok {
		return imp.reject(ErrMalformedDocument)
	}

	imp.Total = len(items)
	imp.rows = make([]core.Row, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		row, ok := decodeRow(item)
		if !ok {
			imp.Dropped++
			continue
		}
		// rowId must stay unique; the first occurrence wins.
		if _, dup := seen[row.RowID]; dup {
			imp.Dropped++
			continue
		}
		seen[row.RowID] = struct{}{}
		imp.rows = append(imp.rows, row)
	}

	if sounds, ok := doc["customSounds"].([]any); ok {
		imp.customSounds = make([]core.SoundDefinition, 0, len(sounds))
		for _, item := range sounds {
			d, ok := decodeSound(item)
			if !ok {
				imp.DroppedSounds++
				continue
			}
			imp.customSounds = append(imp.customSounds, d)
		}
	}

	if imp.Dropped > 0 {
		imp.phase = PartiallyValid
	} else {
		imp.phase = Valid
	}
	return imp, nil
}

func (i *Import) reject(err error) (*Import, error) {
	i.phase = Rejected
	i.err = err
	return i, err
}

// decodeRow accepts an object with string rowId, string soundId and an array
// freqBands. The remaining fields are decoded leniently.
func decodeRow(item any) (core.Row, bool) {
	obj, ok := item.(map[string]any)
	if !ok {
		return core.Row{}, false
	}
	rowID, ok := obj["rowId"].(string)
	if !ok {
		return core.Row{}, false
	}
	soundID, ok := obj["soundId"].(string)
	if !ok {
		return core.Row{}, false
	}
	if _, ok := obj["freqBands"].([]any); !ok {
		return core.Row{}, false
	}
	label, _ := obj["label"].(string)
	return core.Row{
		RowID:           rowID,
		SoundID:         soundID,
		FreqBands:       core.ParseAttributeSet(obj["freqBands"]),
		StereoPresences: core.ParseAttributeSet(obj["stereoPresences"]),
		Depths:          core.ParseAttributeSet(obj["depths"]),
		Shapes:          core.ParseAttributeSet(obj["shapes"]),
		Label:           label,
	}, true
}

func decodeSound(item any) (core.SoundDefinition, bool) {
	obj, ok := item.(map[string]any)
	if !ok {
		return core.SoundDefinition{}, false
	}
	id, ok := obj["id"].(string)
	if !ok || id == "" {
		return core.SoundDefinition{}, false
	}
	name, _ := obj["name"].(string)
	if name == "" {
		name = id
	}
	return core.SoundDefinition{
		ID:              id,
		Name:            name,
		FreqBands:       core.ParseAttributeSet(obj["defaultFreqBands"]),
		StereoPresences: core.ParseAttributeSet(obj["defaultStereoPresence"]),
		Depths:          core.ParseAttributeSet(obj["defaultDepth"]),
		Shapes:          core.ParseAttributeSet(obj["defaultShape"]),
	}, true
}

// Apply replaces the target's rows (and custom sounds, when the document
// carried them) with the validated content.
func (i *Import) Apply(ctx context.Context, target Target) error {
	switch i.phase {
	case Valid, PartiallyValid:
	case Rejected:
		return i.err
	default:
		return fmt.Errorf("%w: %s", ErrAlreadySettled, i.phase)
	}
	if err := target.Replace(ctx, i.Rows(), i.CustomSounds()); err != nil {
		return fmt.Errorf("failed to apply import: %w", err)
	}
	i.phase = Applied
	return nil
}

// Abandon discards a pending import. The target is never touched.
func (i *Import) Abandon() error {
	switch i.phase {
	case Valid, PartiallyValid:
		i.phase = Abandoned
		return nil
	case Rejected:
		return i.err
	}
	return fmt.Errorf("%w: %s", ErrAlreadySettled, i.phase)
}

// Run drives an import end to end. confirm is asked only when rows were
// dropped; a nil confirm or a false answer abandons the import.
func Run(ctx context.Context, target Target, data []byte, confirm func(*Import) bool) (*Import, error) {
	imp, err := Parse(data)
	if err != nil {
		return imp, err
	}
	if imp.NeedsConfirmation() && (confirm == nil || !confirm(imp)) {
		if err := imp.Abandon(); err != nil {
			return imp, err
		}
		return imp, ErrAbandoned
	}
	return imp, imp.Apply(ctx, target)
}
