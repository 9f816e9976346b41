package transfer_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/soundtracker/pkg/core"
	"github.com/aretw0/soundtracker/pkg/transfer"
)

func newService(t *testing.T) *core.Service {
	t.Helper()
	n := 0
	return core.NewService(nil, core.WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("row-%d", n)
	}))
}

var fixedNow = time.Date(2024, 5, 1, 12, 30, 0, 123_000_000, time.FixedZone("BRT", -3*3600))

func TestExport(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	svc.Add(ctx, "bass")

	doc := transfer.Export(svc.Snapshot(), fixedNow)
	assert.Equal(t, 1, doc.Version)
	assert.Equal(t, "sound-tracker", doc.App)
	assert.Equal(t, "2024-05-01T15:30:00.123Z", doc.ExportedAt)
	assert.Len(t, doc.SelectedRows, 1)
	assert.NotNil(t, doc.CustomSounds)

	data, err := transfer.Marshal(doc)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  \"version\": 1,")

	var generic map[string]any
	require.NoError(t, json.Unmarshal(data, &generic))
	assert.ElementsMatch(t, []string{"version", "exportedAt", "app", "selectedRows", "customSounds"}, keys(generic))
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "sound-tracker-export-2024-05-01T15-30-00.json", transfer.FileName(fixedNow))
}

func TestHasContent(t *testing.T) {
	assert.False(t, transfer.HasContent(core.State{}))
	assert.True(t, transfer.HasContent(core.State{CustomSounds: []core.SoundDefinition{{ID: "vox"}}}))
}

func TestRoundTrip(t *testing.T) {
	ctx := context.Background()
	src := newService(t)
	require.NoError(t, src.RegisterSound(ctx, core.SoundDefinition{ID: "vox", Name: "Vocals", Depths: core.NewAttributeSet("front")}))
	src.Add(ctx, "bass")
	src.Add(ctx, "vox")
	src.Relabel(ctx, "row-2", "Lead vocal")
	_, err := src.Toggle(ctx, "row-1", core.AxisShape, "sustained")
	require.NoError(t, err)

	data, err := transfer.Marshal(transfer.Export(src.Snapshot(), fixedNow))
	require.NoError(t, err)

	dst := newService(t)
	imp, err := transfer.Run(ctx, dst, data, nil)
	require.NoError(t, err)
	assert.Equal(t, transfer.Applied, imp.Phase())

	assert.Equal(t, src.Rows(), dst.Rows())
	assert.Equal(t, src.CustomSounds(), dst.CustomSounds())
	assert.Equal(t, src.Totals(), dst.Totals())
}

func TestParse(t *testing.T) {
	t.Run("Invalid JSON", func(t *testing.T) {
		imp, err := transfer.Parse([]byte("{nope"))
		assert.ErrorIs(t, err, transfer.ErrInvalidJSON)
		assert.Equal(t, transfer.Rejected, imp.Phase())
	})

	t.Run("Rows Not An Array", func(t *testing.T) {
		for _, doc := range []string{`{"selectedRows": "oops"}`, `{}`, `[]`, `null`} {
			imp, err := transfer.Parse([]byte(doc))
			assert.ErrorIs(t, err, transfer.ErrMalformedDocument, doc)
			assert.Equal(t, transfer.Rejected, imp.Phase(), doc)
		}
	})

	t.Run("Drops Invalid Rows", func(t *testing.T) {
		doc := `{"selectedRows": [
			{"rowId": "a", "soundId": "bass", "freqBands": ["low"]},
			{"rowId": 1, "soundId": "pad", "freqBands": []},
			{"rowId": "c", "soundId": "pad"},
			"junk",
			null
		]}`
		imp, err := transfer.Parse([]byte(doc))
		require.NoError(t, err)
		assert.Equal(t, transfer.PartiallyValid, imp.Phase())
		assert.True(t, imp.NeedsConfirmation())
		assert.Equal(t, 5, imp.Total)
		assert.Equal(t, 4, imp.Dropped)
		require.Len(t, imp.Rows(), 1)
		assert.Equal(t, "a", imp.Rows()[0].RowID)
		assert.Nil(t, imp.CustomSounds(), "absent customSounds keeps current ones")
	})

	t.Run("Duplicate Row IDs Are Dropped", func(t *testing.T) {
		doc := `{"selectedRows": [
			{"rowId": "a", "soundId": "bass", "freqBands": ["low"]},
			{"rowId": "a", "soundId": "pad", "freqBands": ["mid"]},
			{"rowId": "b", "soundId": "pad", "freqBands": ["mid"]}
		]}`
		imp, err := transfer.Parse([]byte(doc))
		require.NoError(t, err)
		assert.Equal(t, transfer.PartiallyValid, imp.Phase())
		assert.Equal(t, 3, imp.Total)
		assert.Equal(t, 1, imp.Dropped)
		rows := imp.Rows()
		require.Len(t, rows, 2)
		assert.Equal(t, "bass", rows[0].SoundID, "first occurrence wins")
		assert.Equal(t, "b", rows[1].RowID)
	})

	t.Run("Lenient Optional Fields", func(t *testing.T) {
		doc := `{"selectedRows": [{"rowId": "a", "soundId": "x", "freqBands": ["low", 3], "depths": "front", "label": 42, "extra": true}]}`
		imp, err := transfer.Parse([]byte(doc))
		require.NoError(t, err)
		assert.Equal(t, transfer.Valid, imp.Phase())
		row := imp.Rows()[0]
		assert.Equal(t, core.AttributeSet{"low"}, row.FreqBands)
		assert.Equal(t, core.AttributeSet{}, row.Depths)
		assert.Equal(t, "", row.Label)
	})

	t.Run("Validates Custom Sounds", func(t *testing.T) {
		doc := `{"selectedRows": [], "customSounds": [{"id": "vox", "defaultDepth": ["back"]}, {"name": "no id"}, 7]}`
		imp, err := transfer.Parse([]byte(doc))
		require.NoError(t, err)
		assert.Equal(t, transfer.Valid, imp.Phase())
		assert.Equal(t, 2, imp.DroppedSounds)
		sounds := imp.CustomSounds()
		require.Len(t, sounds, 1)
		assert.Equal(t, "vox", sounds[0].Name)
		assert.Equal(t, core.AttributeSet{"back"}, sounds[0].Depths)
	})
}

func TestRun(t *testing.T) {
	ctx := context.Background()
	partial := []byte(`{"selectedRows": [{"rowId": "r1", "soundId": "bass", "freqBands": ["low"]}, {"bad": true}]}`)

	t.Run("Rejected Leaves Store Unchanged", func(t *testing.T) {
		svc := newService(t)
		svc.Add(ctx, "pad")
		before := svc.Rows()

		_, err := transfer.Run(ctx, svc, []byte(`{"selectedRows": "oops"}`), nil)
		assert.ErrorIs(t, err, transfer.ErrMalformedDocument)
		assert.Equal(t, before, svc.Rows())
	})

	t.Run("Partial Import Confirmed", func(t *testing.T) {
		svc := newService(t)
		svc.Add(ctx, "pad")

		asked := false
		imp, err := transfer.Run(ctx, svc, partial, func(i *transfer.Import) bool {
			asked = true
			assert.Equal(t, 1, i.Dropped)
			return true
		})
		require.NoError(t, err)
		assert.True(t, asked)
		assert.Equal(t, transfer.Applied, imp.Phase())

		rows := svc.Rows()
		require.Len(t, rows, 1)
		assert.Equal(t, "r1", rows[0].RowID)
	})

	t.Run("Partial Import Declined", func(t *testing.T) {
		svc := newService(t)
		svc.Add(ctx, "pad")
		before := svc.Rows()

		imp, err := transfer.Run(ctx, svc, partial, func(*transfer.Import) bool { return false })
		assert.ErrorIs(t, err, transfer.ErrAbandoned)
		assert.Equal(t, transfer.Abandoned, imp.Phase())
		assert.Equal(t, before, svc.Rows())
	})

	t.Run("Duplicate Row IDs Keep Row Operations Single", func(t *testing.T) {
		svc := newService(t)
		dup := []byte(`{"selectedRows": [
			{"rowId": "a", "soundId": "bass", "freqBands": ["low"]},
			{"rowId": "a", "soundId": "pad", "freqBands": ["mid"]}
		]}`)

		imp, err := transfer.Run(ctx, svc, dup, func(i *transfer.Import) bool { return true })
		require.NoError(t, err)
		assert.Equal(t, 1, imp.Dropped)
		require.Len(t, svc.Rows(), 1)

		_, err = svc.Toggle(ctx, "a", core.AxisFrequency, "high")
		require.NoError(t, err)
		assert.Equal(t, core.AttributeSet{"low", "high"}, svc.Rows()[0].FreqBands)

		assert.True(t, svc.Remove(ctx, "a"))
		assert.Empty(t, svc.Rows())
	})

	t.Run("Duplicate Row IDs Need Confirmation", func(t *testing.T) {
		svc := newService(t)
		dup := []byte(`{"selectedRows": [
			{"rowId": "a", "soundId": "bass", "freqBands": ["low"]},
			{"rowId": "a", "soundId": "pad", "freqBands": ["mid"]}
		]}`)

		_, err := transfer.Run(ctx, svc, dup, nil)
		assert.ErrorIs(t, err, transfer.ErrAbandoned)
		assert.Empty(t, svc.Rows())
	})

	t.Run("Settled Imports Cannot Be Reused", func(t *testing.T) {
		svc := newService(t)
		imp, err := transfer.Parse([]byte(`{"selectedRows": []}`))
		require.NoError(t, err)
		require.NoError(t, imp.Apply(ctx, svc))
		assert.ErrorIs(t, imp.Apply(ctx, svc), transfer.ErrAlreadySettled)
		assert.ErrorIs(t, imp.Abandon(), transfer.ErrAlreadySettled)
	})
}
