package falsify

import "math"

// Small statistical helpers shared by the analyses. The corpus this code
// lives in writes its means and correlations inline rather than pulling a
// numerics dependency; these match the population (not sample) conventions
// of the reference measurements.

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// stddev returns the population standard deviation.
func stddev(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	m := mean(xs)
	var sum float64
	for _, x := range xs {
		d := x - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(xs)))
}

// pearson returns the Pearson correlation coefficient of two equal-length
// series. When either series has zero variance the coefficient is undefined
// and NaN is returned; NaN propagates through averages and fails every
// threshold comparison, which is the conservative outcome for a
// falsification condition.
func pearson(xs, ys []float64) float64 {
	if len(xs) != len(ys) || len(xs) == 0 {
		return math.NaN()
	}
	mx, my := mean(xs), mean(ys)
	var sxy, sxx, syy float64
	for i := range xs {
		dx := xs[i] - mx
		dy := ys[i] - my
		sxy += dx * dy
		sxx += dx * dx
		syy += dy * dy
	}
	if sxx == 0 || syy == 0 {
		return math.NaN()
	}
	return sxy / math.Sqrt(sxx*syy)
}

// logLogSlope fits y = a + b·x by least squares over (log x, log y) and
// returns b, the empirical scaling exponent.
func logLogSlope(ns []int, ops []int) float64 {
	xs := make([]float64, len(ns))
	ys := make([]float64, len(ops))
	for i := range ns {
		xs[i] = math.Log(float64(ns[i]))
		ys[i] = math.Log(float64(ops[i]))
	}
	mx, my := mean(xs), mean(ys)
	var sxy, sxx float64
	for i := range xs {
		dx := xs[i] - mx
		sxy += dx * (ys[i] - my)
		sxx += dx * dx
	}
	if sxx == 0 {
		return math.NaN()
	}
	return sxy / sxx
}
