package qr

// Run is a maximal sequence of adjacent dark modules; Start and End are
// inclusive indexes along the scanned row or column.
type Run struct {
	Start, End int
}

// Len is the number of modules in the run.
func (r Run) Len() int { return r.End - r.Start + 1 }

// RowRuns returns the runs of true values in row, in order.
func RowRuns(row []bool) []Run {
	var runs []Run
	start := -1
	for j, v := range row {
		switch {
		case v && start < 0:
			start = j
		case !v && start >= 0:
			runs = append(runs, Run{start, j - 1})
			start = -1
		}
	}
	if start >= 0 {
		runs = append(runs, Run{start, len(row) - 1})
	}
	return runs
}

// ColumnRuns returns the runs of dark modules in column col of g, top to bottom.
func ColumnRuns(g *Grid, col int) []Run {
	var runs []Run
	start := -1
	for i := 0; i < g.Rows(); i++ {
		v := g.At(i, col)
		switch {
		case v && start < 0:
			start = i
		case !v && start >= 0:
			runs = append(runs, Run{start, i - 1})
			start = -1
		}
	}
	if start >= 0 {
		runs = append(runs, Run{start, g.Rows() - 1})
	}
	return runs
}
