package core

// Counts maps an axis value to the number of rows carrying it.
type Counts map[string]int

// Count is one entry of an ordered rendering.
type Count struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// Totals holds one Counts per axis. Each Counts has exactly the axis
// vocabulary as keys.
type Totals struct {
	Frequency Counts `json:"freqBands"`
	Stereo    Counts `json:"stereoPresences"`
	Depth     Counts `json:"depths"`
	Shape     Counts `json:"shapes"`
}

// Aggregate scans every row and counts each vocabulary value it carries.
// A row tagged with three frequency bands adds to three frequency counts.
// Values outside the vocabulary are not counted.
func Aggregate(rows []Row) Totals {
	t := Totals{
		Frequency: zeroCounts(AxisFrequency),
		Stereo:    zeroCounts(AxisStereo),
		Depth:     zeroCounts(AxisDepth),
		Shape:     zeroCounts(AxisShape),
	}
	for _, row := range rows {
		for _, axis := range Axes {
			counts := t.For(axis)
			for _, v := range row.Set(axis) {
				if _, ok := counts[v]; ok {
					counts[v]++
				}
			}
		}
	}
	return t
}

func zeroCounts(axis Axis) Counts {
	vocab := axis.Vocabulary()
	c := make(Counts, len(vocab))
	for _, v := range vocab {
		c[v] = 0
	}
	return c
}

// For returns the counts of one axis.
func (t Totals) For(axis Axis) Counts {
	switch axis {
	case AxisFrequency:
		return t.Frequency
	case AxisStereo:
		return t.Stereo
	case AxisDepth:
		return t.Depth
	case AxisShape:
		return t.Shape
	}
	return nil
}

// Ordered lists the axis counts in vocabulary order.
func (t Totals) Ordered(axis Axis) []Count {
	counts := t.For(axis)
	vocab := axis.Vocabulary()
	out := make([]Count, 0, len(vocab))
	for _, v := range vocab {
		out = append(out, Count{Value: v, Count: counts[v]})
	}
	return out
}

// Max returns the largest count across the axis, used to scale bars.
func (t Totals) Max(axis Axis) int {
	m := 0
	for _, n := range t.For(axis) {
		if n > m {
			m = n
		}
	}
	return m
}
