package curve

// LUT is a uniformly sampled curve for hot-path evaluation
// Index maps linearly to the input range [lo, hi]
type LUT struct {
	lo, hi  float64
	invStep float64
	samples []float64
}

// MinLUTSize is the smallest accepted sample count
const MinLUTSize = 2

// Bake samples the curve domain into size entries
// Sizes below MinLUTSize are raised to it
func (c *Curve) Bake(size int) *LUT {
	if size < MinLUTSize {
		size = MinLUTSize
	}
	lo, hi := c.Domain()

	l := &LUT{lo: lo, hi: hi, samples: make([]float64, size)}
	if hi > lo {
		l.invStep = float64(size-1) / (hi - lo)
	}
	for i := range l.samples {
		x := lo
		if size > 1 {
			x = lo + (hi-lo)*float64(i)/float64(size-1)
		}
		l.samples[i] = c.Evaluate(x)
	}
	return l
}

// Evaluate returns the linearly interpolated sample at x, clamped to the baked range
func (l *LUT) Evaluate(x float64) float64 {
	last := len(l.samples) - 1
	if x <= l.lo || l.invStep == 0 {
		return l.samples[0]
	}
	if x >= l.hi {
		return l.samples[last]
	}

	pos := (x - l.lo) * l.invStep
	idx := int(pos)
	if idx >= last {
		return l.samples[last]
	}
	frac := pos - float64(idx)

	v0 := l.samples[idx]
	v1 := l.samples[idx+1]
	return v0 + (v1-v0)*frac
}

// Size returns the sample count
func (l *LUT) Size() int {
	return len(l.samples)
}
