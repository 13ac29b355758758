package mesh

// FanFromTail triangulates a polygon with n corners by repeatedly taking the
// last three remaining corners as a triangle and removing the middle one,
// until three remain. It returns corner offsets into the polygon run, so the
// same reduction can be replayed on any stream parallel to the positions.
//
// The result is only correct for convex, consistently wound polygons.
// Polygons with fewer than three corners yield no triangles.
func FanFromTail(n int) [][3]int {
	if n < 3 {
		return nil
	}
	run := make([]int, n)
	for i := range run {
		run[i] = i
	}
	tris := make([][3]int, 0, n-2)
	for len(run) > 3 {
		k := len(run)
		tris = append(tris, [3]int{run[k-3], run[k-2], run[k-1]})
		run[k-2] = run[k-1]
		run = run[:k-1]
	}
	return append(tris, [3]int{run[0], run[1], run[2]})
}

// Run is a half-open range [Start, End) of a sentinel-delimited index stream.
type Run struct {
	Start, End int
}

// Len returns the number of indices in the run.
func (r Run) Len() int {
	return r.End - r.Start
}

// SplitRuns splits a sentinel-delimited index stream into runs of
// non-negative indices. Any negative value ends the current run; a stream
// without a trailing sentinel still yields its final run. Empty runs are
// dropped. Offsets refer to the input so parallel streams can be read at
// the same positions.
func SplitRuns(indices []int) []Run {
	var runs []Run
	start := 0
	for i, v := range indices {
		if v < 0 {
			if i > start {
				runs = append(runs, Run{start, i})
			}
			start = i + 1
		}
	}
	if start < len(indices) {
		runs = append(runs, Run{start, len(indices)})
	}
	return runs
}
