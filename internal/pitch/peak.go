package pitch

// FindPeriod locates the autocorrelation peak of the fundamental period in c
// and returns its lag, refined to sub-sample precision by parabolic
// interpolation. ok is false when c has fewer than two lags.
func FindPeriod(c []float64) (lag float64, ok bool) {
	size := len(c)
	if size < 2 {
		return 0, false
	}

	// Skip the zero-lag peak and its decay. A series that never stops
	// falling stops at the last lag that still has a right neighbour.
	d := 0
	for d < size-2 && c[d] > c[d+1] {
		d++
	}

	maxpos := d
	for i := d + 1; i < size; i++ {
		if c[i] > c[maxpos] {
			maxpos = i
		}
	}

	return interpolatePeak(c, maxpos), true
}

// interpolatePeak fits a parabola through c[t-1], c[t], c[t+1] and returns
// the vertex position. Peaks on either end of c are returned unrefined.
func interpolatePeak(c []float64, t int) float64 {
	if t <= 0 || t >= len(c)-1 {
		return float64(t)
	}

	x1, x2, x3 := c[t-1], c[t], c[t+1]
	a := (x1 + x3 - 2*x2) / 2
	b := (x3 - x1) / 2
	if a == 0 {
		return float64(t)
	}
	return float64(t) - b/(2*a)
}
