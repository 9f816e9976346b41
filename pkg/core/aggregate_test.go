package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aretw0/soundtracker/pkg/core"
)

func TestAggregate(t *testing.T) {
	t.Run("Empty Rows Yield Zeroed Vocabulary", func(t *testing.T) {
		totals := core.Aggregate(nil)
		for _, axis := range core.Axes {
			counts := totals.For(axis)
			assert.Len(t, counts, len(axis.Vocabulary()))
			for _, v := range axis.Vocabulary() {
				n, ok := counts[v]
				assert.True(t, ok, "missing %s/%s", axis, v)
				assert.Zero(t, n)
			}
		}
	})

	t.Run("Multi-Valued Rows Count Once Per Value", func(t *testing.T) {
		rows := []core.Row{
			{RowID: "a", FreqBands: core.AttributeSet{"low", "mid", "high"}},
			{RowID: "b", FreqBands: core.AttributeSet{"mid"}, Shapes: core.AttributeSet{"sustained"}},
		}
		totals := core.Aggregate(rows)
		assert.Equal(t, core.Counts{"low": 1, "low-mid": 0, "mid": 2, "high": 1}, totals.Frequency)
		assert.Equal(t, core.Counts{"transient": 0, "sustained": 1}, totals.Shape)
	})

	t.Run("Off-Vocabulary Values Are Ignored", func(t *testing.T) {
		rows := []core.Row{{RowID: "a", Depths: core.AttributeSet{"underwater", "back"}}}
		totals := core.Aggregate(rows)
		assert.Equal(t, core.Counts{"front": 0, "middle": 0, "back": 1}, totals.Depth)
	})

	t.Run("Count Never Exceeds Row Count", func(t *testing.T) {
		var rows []core.Row
		for _, d := range core.Builtin().All() {
			rows, _ = core.AddRow(rows, core.Builtin(), d.ID, counterIDs())
		}
		totals := core.Aggregate(rows)
		for _, axis := range core.Axes {
			assert.LessOrEqual(t, totals.Max(axis), len(rows))
		}
	})
}

func TestTotalsOrdered(t *testing.T) {
	rows := []core.Row{{RowID: "a", StereoPresences: core.AttributeSet{"wide", "narrow"}}}
	ordered := core.Aggregate(rows).Ordered(core.AxisStereo)

	assert.Equal(t, []core.Count{
		{Value: "narrow", Count: 1},
		{Value: "medium", Count: 0},
		{Value: "wide", Count: 1},
	}, ordered)
	assert.Equal(t, 1, core.Aggregate(rows).Max(core.AxisStereo))
}
