package remesh

// Options configures the remesh driver of §4.7.2.
type Options struct {
	// Iterations is the number of split/collapse/flip/smooth cycles to run.
	Iterations int
	// Method selects the smoothing pass run once per iteration.
	Method Smoothing
	// TargetSize, if non-zero, fixes the target edge length at
	// TargetSize/(4/3) instead of deriving it from the mesh's mean edge
	// length each iteration.
	TargetSize float64
}

// Remesh runs Options.Iterations cycles of split, collapse, flip, and
// one smoothing pass, recomputing connectivity between iterations.
// Grounded on original_source's free remesh function: target length is
// size/(4/3) when a TargetSize is given, otherwise the current mean
// edge length, recomputed every iteration.
func (tm *TriMesh) Remesh(opts Options) error {
	for i := 0; i < opts.Iterations; i++ {
		target := opts.TargetSize / fourThirds
		if opts.TargetSize == 0 {
			target = meanLength(tm.Lengths)
		}

		if err := tm.SplitEdges(target); err != nil {
			return err
		}
		if err := tm.CollapseEdges(target); err != nil {
			return err
		}
		if err := tm.FlipEdges(); err != nil {
			return err
		}
		tm.Refresh()
		tm.Smooth(opts.Method)
	}
	return nil
}

func meanLength(lengths []float64) float64 {
	if len(lengths) == 0 {
		return 0
	}
	var sum float64
	for _, l := range lengths {
		sum += l
	}
	return sum / float64(len(lengths))
}
