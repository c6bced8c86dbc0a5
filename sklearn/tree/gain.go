package tree

// splitGain returns the gain of sending (gl, hl) left out of a node holding
// (g, h). ok is false when one of the hessian sums equals exactly -lambda,
// in which case the candidate must be skipped.
func splitGain(gl, hl, g, h, lambda float64) (gain float64, ok bool) {
	gr, hr := g-gl, h-hl
	if hl == -lambda || hr == -lambda || h == -lambda {
		return 0, false
	}
	return gl*gl/(hl+lambda) + gr*gr/(hr+lambda) - g*g/(h+lambda), true
}

// leafValue is the Newton step -G/(H+lambda).
func leafValue(g, h, lambda float64) float64 {
	return -g / (h + lambda)
}

// lossReduction is reported alongside each split and never gates it.
func lossReduction(gain, gamma float64) float64 {
	return 0.5*gain - gamma
}
