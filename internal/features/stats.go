package features

import "gonum.org/v1/gonum/stat"

// meanStd returns the sample mean and standard deviation. A single sample
// has no spread, so its deviation reads 0 rather than NaN, which would not
// survive JSON serialization.
func meanStd(xs []float64) (mean, std float64) {
	mean = stat.Mean(xs, nil)
	if len(xs) > 1 {
		std = stat.StdDev(xs, nil)
	}
	return mean, std
}

// variance returns the sample variance, 0 for fewer than two samples.
func variance(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	return stat.Variance(xs, nil)
}
