// Package stats holds the frequency checks used to sanity-check bounded draws.
package stats

import (
	"errors"
	"fmt"
	"math"
)

// ErrOutOfRange is returned when a draw falls outside [0, bound).
var ErrOutOfRange = errors.New("draw out of range")

// Histogram calls next n times and counts the results into bound buckets.
func Histogram(bound int32, n int, next func(bound int32) (int32, error)) ([]int, error) {
	if bound <= 0 {
		return nil, fmt.Errorf("histogram bound must be positive, got %d", bound)
	}
	counts := make([]int, bound)
	for i := 0; i < n; i++ {
		v, err := next(bound)
		if err != nil {
			return nil, err
		}
		if v < 0 || v >= bound {
			return nil, fmt.Errorf("%w: %d not in [0, %d)", ErrOutOfRange, v, bound)
		}
		counts[v]++
	}
	return counts, nil
}

// ChiSquare returns Pearson's statistic of counts against a uniform expectation.
func ChiSquare(counts []int) float64 {
	var total int
	for _, c := range counts {
		total += c
	}
	if total == 0 || len(counts) == 0 {
		return 0
	}
	expected := float64(total) / float64(len(counts))
	var sum float64
	for _, c := range counts {
		d := float64(c) - expected
		sum += d * d / expected
	}
	return sum
}

// Threshold is a loose upper bound for the chi-square statistic with
// len(counts)-1 degrees of freedom: the mean plus sigmas standard deviations.
func Threshold(buckets int, sigmas float64) float64 {
	df := float64(buckets - 1)
	return df + sigmas*math.Sqrt(2*df)
}

// Uniform reports whether counts is consistent with a uniform distribution,
// allowing 5 standard deviations of slack.
func Uniform(counts []int) bool {
	if len(counts) < 2 {
		return true
	}
	return ChiSquare(counts) <= Threshold(len(counts), 5)
}
