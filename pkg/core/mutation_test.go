package core_test

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/soundtracker/pkg/core"
)

// counterIDs returns a deterministic, never-repeating ID generator.
func counterIDs() core.IDGenerator {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("row-%d", n)
	}
}

func TestAddRow(t *testing.T) {
	catalog := core.Builtin()

	t.Run("Seeds From Defaults", func(t *testing.T) {
		rows, ok := core.AddRow(nil, catalog, "bass", counterIDs())
		require.True(t, ok)
		require.Len(t, rows, 1)

		row := rows[0]
		assert.Equal(t, "row-1", row.RowID)
		assert.Equal(t, "bass", row.SoundID)
		assert.Equal(t, "", row.Label)
		assert.Equal(t, core.AttributeSet{"low", "low-mid"}, row.FreqBands)
		assert.Equal(t, core.AttributeSet{"narrow", "wide"}, row.StereoPresences)
		assert.Equal(t, core.AttributeSet{"front"}, row.Depths)
		assert.Equal(t, core.AttributeSet{"transient", "sustained"}, row.Shapes)
	})

	t.Run("Unknown Sound Is A No-op", func(t *testing.T) {
		start, _ := core.AddRow(nil, catalog, "pad", counterIDs())
		rows, ok := core.AddRow(start, catalog, "nonexistent-id", counterIDs())
		assert.False(t, ok)
		assert.Equal(t, start, rows)
		assert.Len(t, rows, 1)
	})

	t.Run("Appends Preserving Order", func(t *testing.T) {
		ids := counterIDs()
		var rows []core.Row
		for _, id := range []string{"pad", "bass", "lead"} {
			rows, _ = core.AddRow(rows, catalog, id, ids)
		}
		require.Len(t, rows, 3)
		assert.Equal(t, "pad", rows[0].SoundID)
		assert.Equal(t, "bass", rows[1].SoundID)
		assert.Equal(t, "lead", rows[2].SoundID)
	})

	t.Run("Does Not Alias Definition Defaults", func(t *testing.T) {
		rows, _ := core.AddRow(nil, catalog, "bass", counterIDs())
		rows, _ = core.ToggleAttribute(rows, rows[0].RowID, core.AxisFrequency, "high")
		rows[0].FreqBands[0] = "mutated"

		def, ok := catalog.Resolve("bass")
		require.True(t, ok)
		assert.Equal(t, core.AttributeSet{"low", "low-mid"}, def.FreqBands)

		again, _ := core.AddRow(nil, catalog, "bass", counterIDs())
		assert.Equal(t, core.AttributeSet{"low", "low-mid"}, again[0].FreqBands)
	})
}

func TestRemoveRow(t *testing.T) {
	rows, _ := core.AddRow(nil, core.Builtin(), "bass", counterIDs())

	t.Run("Removes Match", func(t *testing.T) {
		out, ok := core.RemoveRow(rows, "row-1")
		assert.True(t, ok)
		assert.Empty(t, out)
		assert.Len(t, rows, 1, "input must not be modified")
	})

	t.Run("Unknown Row Is Idempotent", func(t *testing.T) {
		out, ok := core.RemoveRow(rows, "missing")
		assert.False(t, ok)
		assert.Equal(t, rows, out)
	})
}

func TestRelabelRow(t *testing.T) {
	rows, _ := core.AddRow(nil, core.Builtin(), "keys", counterIDs())

	out, ok := core.RelabelRow(rows, "row-1", "Rhodes")
	require.True(t, ok)
	assert.Equal(t, "Rhodes", out[0].Label)
	assert.Equal(t, "", rows[0].Label)

	out, ok = core.RelabelRow(out, "missing", "x")
	assert.False(t, ok)
	assert.Equal(t, "Rhodes", out[0].Label)
}

func TestToggleAttribute(t *testing.T) {
	rows, _ := core.AddRow(nil, core.Builtin(), "bass", counterIDs())

	t.Run("Inserts And Removes", func(t *testing.T) {
		on, ok := core.ToggleAttribute(rows, "row-1", core.AxisFrequency, "high")
		require.True(t, ok)
		assert.True(t, on[0].FreqBands.Has("high"))

		off, ok := core.ToggleAttribute(on, "row-1", core.AxisFrequency, "low")
		require.True(t, ok)
		assert.False(t, off[0].FreqBands.Has("low"))
	})

	t.Run("Is Its Own Inverse", func(t *testing.T) {
		for _, axis := range core.Axes {
			for _, value := range append(axis.Vocabulary(), "off-vocabulary") {
				once, _ := core.ToggleAttribute(rows, "row-1", axis, value)
				twice, _ := core.ToggleAttribute(once, "row-1", axis, value)
				assert.ElementsMatch(t, rows[0].Set(axis), twice[0].Set(axis), "axis %s value %s", axis, value)
			}
		}
	})

	t.Run("Accepts Off-Vocabulary Values", func(t *testing.T) {
		out, ok := core.ToggleAttribute(rows, "row-1", core.AxisDepth, "underwater")
		assert.True(t, ok)
		assert.True(t, out[0].Depths.Has("underwater"))
	})

	t.Run("Unmatched Row And Unknown Axis Are No-ops", func(t *testing.T) {
		out, ok := core.ToggleAttribute(rows, "missing", core.AxisShape, "transient")
		assert.False(t, ok)
		assert.Equal(t, rows, out)

		out, ok = core.ToggleAttribute(rows, "row-1", core.Axis("colour"), "red")
		assert.False(t, ok)
		assert.Equal(t, rows, out)
	})

	t.Run("Can Empty A Set", func(t *testing.T) {
		out, _ := core.ToggleAttribute(rows, "row-1", core.AxisDepth, "front")
		assert.NotNil(t, out[0].Depths)
		assert.Empty(t, out[0].Depths)
	})
}

func TestClearRows(t *testing.T) {
	out := core.ClearRows()
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestRowIDsStayUnique(t *testing.T) {
	catalog := core.Builtin()
	ids := counterIDs()
	rng := rand.New(rand.NewSource(42))
	sounds := []string{"bass", "pad", "lead", "nope", "strings"}

	var rows []core.Row
	for i := 0; i < 500; i++ {
		pick := func() string {
			if len(rows) == 0 {
				return "none"
			}
			return rows[rng.Intn(len(rows))].RowID
		}
		switch rng.Intn(4) {
		case 0:
			rows, _ = core.AddRow(rows, catalog, sounds[rng.Intn(len(sounds))], ids)
		case 1:
			rows, _ = core.RemoveRow(rows, pick())
		case 2:
			rows, _ = core.RelabelRow(rows, pick(), fmt.Sprintf("label %d", i))
		case 3:
			axis := core.Axes[rng.Intn(len(core.Axes))]
			vocab := axis.Vocabulary()
			rows, _ = core.ToggleAttribute(rows, pick(), axis, vocab[rng.Intn(len(vocab))])
		}

		seen := make(map[string]bool, len(rows))
		for _, r := range rows {
			require.False(t, seen[r.RowID], "duplicate row id %s after step %d", r.RowID, i)
			seen[r.RowID] = true
		}
	}
}

func TestRegisterSoundCommand(t *testing.T) {
	env := core.Env{Builtin: core.Builtin(), NewID: counterIDs()}
	vox := core.SoundDefinition{ID: "vox", Name: "Vocals", FreqBands: core.NewAttributeSet("mid")}

	t.Run("Adds Then Replaces", func(t *testing.T) {
		s, changed, err := core.RegisterSound{Sound: vox}.Apply(core.State{}, env)
		require.NoError(t, err)
		require.True(t, changed)
		require.Len(t, s.CustomSounds, 1)

		updated := vox
		updated.Name = "Lead Vocals"
		s, _, err = core.RegisterSound{Sound: updated}.Apply(s, env)
		require.NoError(t, err)
		require.Len(t, s.CustomSounds, 1)
		assert.Equal(t, "Lead Vocals", s.CustomSounds[0].Name)
	})

	t.Run("Rejects Built-in IDs", func(t *testing.T) {
		_, changed, err := core.RegisterSound{Sound: core.SoundDefinition{ID: "bass"}}.Apply(core.State{}, env)
		assert.ErrorIs(t, err, core.ErrBuiltinSound)
		assert.False(t, changed)
	})

	t.Run("Rejects Empty ID", func(t *testing.T) {
		_, _, err := core.RegisterSound{Sound: core.SoundDefinition{ID: "  "}}.Apply(core.State{}, env)
		assert.ErrorIs(t, err, core.ErrInvalidSound)
	})

	t.Run("Custom Sound Can Be Added As Row", func(t *testing.T) {
		s, _, err := core.RegisterSound{Sound: vox}.Apply(core.State{}, env)
		require.NoError(t, err)
		s, changed, err := core.AddSound{SoundID: "vox"}.Apply(s, env)
		require.NoError(t, err)
		require.True(t, changed)
		assert.Equal(t, core.AttributeSet{"mid"}, s.Rows[0].FreqBands)
	})

	t.Run("Unregister Keeps Rows", func(t *testing.T) {
		s, _, _ := core.RegisterSound{Sound: vox}.Apply(core.State{}, env)
		s, _, _ = core.AddSound{SoundID: "vox"}.Apply(s, env)
		s, changed, err := core.UnregisterSound{ID: "vox"}.Apply(s, env)
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Empty(t, s.CustomSounds)
		assert.Len(t, s.Rows, 1)
		assert.Equal(t, "vox", core.DisplayName(env.Catalog(s), s.Rows[0]))
	})
}

func TestToggleCommandRejectsUnknownAxis(t *testing.T) {
	_, changed, err := core.ToggleAttributeCmd{RowID: "x", Axis: "colour", Value: "red"}.Apply(core.State{}, core.Env{})
	assert.ErrorIs(t, err, core.ErrUnknownAxis)
	assert.False(t, changed)
}

func TestZeroEnvUsesDefaults(t *testing.T) {
	var env core.Env

	s, changed, err := core.AddSound{SoundID: "bass"}.Apply(core.State{}, env)
	require.NoError(t, err)
	require.True(t, changed)
	require.Len(t, s.Rows, 1)
	assert.NotEmpty(t, s.Rows[0].RowID)
	assert.Equal(t, core.AttributeSet{"low", "low-mid"}, s.Rows[0].FreqBands)

	_, _, err = core.RegisterSound{Sound: core.SoundDefinition{ID: "bass"}}.Apply(s, env)
	assert.ErrorIs(t, err, core.ErrBuiltinSound)
}
