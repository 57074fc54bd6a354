package viewport

// Tick spacing is a lookup keyed by visible width: coarse intervals for
// wide windows, fine for narrow ones. Narrow (mobile) viewports fit
// fewer labels, so they get their own coarser table.

type tickRow struct {
	maxWidthKm float64
	distKm     float64
	eleM       float64
}

var tickTable = []tickRow{
	{2, 0.25, 25},
	{5, 0.5, 50},
	{10, 1, 50},
	{25, 2, 100},
	{50, 5, 100},
	{100, 10, 200},
	{250, 25, 250},
}

var tickTableNarrow = []tickRow{
	{2, 0.5, 50},
	{5, 1, 100},
	{10, 2, 100},
	{25, 5, 200},
	{50, 10, 200},
	{100, 20, 250},
	{250, 50, 500},
}

// tickIntervals returns the distance and elevation tick spacing for a
// window width. Widths past the table's end fall through to the last
// row's spacing doubled.
func tickIntervals(widthKm float64, narrow bool) (distKm, eleM float64) {
	table := tickTable
	if narrow {
		table = tickTableNarrow
	}
	for _, row := range table {
		if widthKm <= row.maxWidthKm {
			return row.distKm, row.eleM
		}
	}
	last := table[len(table)-1]
	return last.distKm * 2, last.eleM * 2
}
