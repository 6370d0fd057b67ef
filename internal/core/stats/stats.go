// Package stats summarizes per-technician report values for display
package stats

import "math"

// Mean averages values. With positiveOnly, zero and negative entries (idle
// technicians, credit lines) are left out of both the sum and the count; no
// counted entries gives 0
func Mean(values []float64, positiveOnly bool) float64 {
	var (
		sum float64
		n   int
	)
	for _, v := range values {
		if positiveOnly && v <= 0 {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// StdDev is the population standard deviation of every value around mean.
// A nil mean uses Mean(values, true)
func StdDev(values []float64, mean *float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := Mean(values, true)
	if mean != nil {
		m = *mean
	}
	var ss float64
	for _, v := range values {
		d := v - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(values)))
}

// Summary is the legend line printed under a chart
type Summary struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Count  int     `json:"count"`
}

// Summarize computes the positive-only mean and the deviation around it
func Summarize(values []float64) Summary {
	m := Mean(values, true)
	return Summary{Mean: m, StdDev: StdDev(values, &m), Count: len(values)}
}
