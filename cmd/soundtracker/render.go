package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/aretw0/soundtracker/pkg/core"
)

const barWidth = 20

func formatSet(s core.AttributeSet) string {
	if len(s) == 0 {
		return "-"
	}
	return strings.Join(s, ",")
}

// bar scales count against max into at most width cells.
func bar(count, max, width int) string {
	if count <= 0 || max <= 0 || width <= 0 {
		return ""
	}
	n := count * width / max
	if n == 0 {
		n = 1
	}
	return strings.Repeat("█", n)
}

func renderRows(w io.Writer, rows []core.Row, catalog core.Catalog) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ROW\tSOUND\tLABEL\tFREQUENCY\tSTEREO\tDEPTH\tSHAPE")
	for _, row := range rows {
		label := row.Label
		if label == "" {
			label = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			row.RowID,
			core.DisplayName(catalog, row),
			label,
			formatSet(row.FreqBands),
			formatSet(row.StereoPresences),
			formatSet(row.Depths),
			formatSet(row.Shapes),
		)
	}
	return tw.Flush()
}

// renderTotals prints every axis in vocabulary order, one bar per value.
func renderTotals(w io.Writer, t core.Totals) error {
	tw := tabwriter.NewWriter(w, 0, 4, 1, ' ', 0)
	for i, axis := range core.Axes {
		if i > 0 {
			fmt.Fprintln(tw)
		}
		fmt.Fprintln(tw, axis.Title())
		max := t.Max(axis)
		for _, c := range t.Ordered(axis) {
			fmt.Fprintf(tw, "  %s\t%d\t%s\n", c.Value, c.Count, bar(c.Count, max, barWidth))
		}
	}
	return tw.Flush()
}

func renderCatalog(w io.Writer, defs []core.SoundDefinition, custom bool) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, d := range defs {
		origin := "builtin"
		if custom {
			origin = "custom"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			d.ID, d.Name, origin,
			formatSet(d.FreqBands),
			formatSet(d.StereoPresences),
			formatSet(d.Depths),
			formatSet(d.Shapes),
		)
	}
	return tw.Flush()
}
