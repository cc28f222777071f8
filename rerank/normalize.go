package rerank

// DefaultDegenerateNorm is the normalized value assigned to every member of a
// degenerate set, one where all inputs are equal and min-max rescaling is
// undefined. The midpoint keeps such a signal neutral in the hybrid blend.
const DefaultDegenerateNorm = 0.5

// minMaxNormalize rescales values linearly into [0,1]. Empty input returns
// nil; a degenerate range maps every value to the given fallback.
func minMaxNormalize(values []float64, degenerate float64) []float64 {
	if len(values) == 0 {
		return nil
	}

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	out := make([]float64, len(values))
	if hi == lo {
		for i := range out {
			out[i] = degenerate
		}
		return out
	}
	for i, v := range values {
		out[i] = (v - lo) / (hi - lo)
	}
	return out
}
