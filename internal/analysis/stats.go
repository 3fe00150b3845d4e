package analysis

import "math"

func mean(a []float64) float64 {
	if len(a) == 0 {
		return math.NaN()
	}
	var s float64
	for _, v := range a {
		s += v
	}
	return s / float64(len(a))
}

// sampleStd is the n-1 standard deviation; NaN below two values
func sampleStd(a []float64) float64 {
	if len(a) < 2 {
		return math.NaN()
	}
	m := mean(a)
	var s float64
	for _, v := range a {
		d := v - m
		s += d * d
	}
	return math.Sqrt(s / float64(len(a)-1))
}

func minMax(a []float64) (float64, float64) {
	if len(a) == 0 {
		return math.NaN(), math.NaN()
	}
	lo, hi := a[0], a[0]
	for _, v := range a[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}

// round2 rounds half to even at two decimals
func round2(v float64) float64 {
	return math.RoundToEven(v*100) / 100
}
