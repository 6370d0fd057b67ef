package labor

import perr "laborreport/internal/platform/errors"

// AverageMode selects how per-order allocations combine into a report value
type AverageMode string

const (
	// AverageDecay keeps the first non-zero contribution as-is and then halves
	// after adding each later one, weighting recent orders more. Reports stored
	// by earlier versions were computed this way
	AverageDecay AverageMode = "decay"
	// AverageMean is the arithmetic mean of the non-zero contributions
	AverageMean AverageMode = "mean"
)

// ParseAverageMode accepts "decay" or "mean"; empty means decay
func ParseAverageMode(s string) (AverageMode, error) {
	switch AverageMode(s) {
	case "", AverageDecay:
		return AverageDecay, nil
	case AverageMean:
		return AverageMean, nil
	default:
		return "", perr.InvalidArgf("unknown average mode %q", s)
	}
}

// Accumulator merges per-order metrics into a running per-technician value.
// Zero contributions, and technicians off the roster, leave the values untouched
type Accumulator struct {
	mode   AverageMode
	values Metrics
	sums   map[string]float64
	counts map[string]int
}

// NewAccumulator starts every roster technician at zero
func NewAccumulator(mode AverageMode, roster Roster) *Accumulator {
	if mode == "" {
		mode = AverageDecay
	}
	return &Accumulator{
		mode:   mode,
		values: roster.Zero(),
		sums:   map[string]float64{},
		counts: map[string]int{},
	}
}

// Add merges one order's contribution
func (a *Accumulator) Add(m Metrics) {
	for tech, c := range m {
		if _, ok := a.values[tech]; !ok || c == 0 {
			continue
		}
		n := a.counts[tech]
		a.counts[tech] = n + 1
		a.sums[tech] += c
		switch {
		case a.mode == AverageMean:
			a.values[tech] = a.sums[tech] / float64(n+1)
		case n == 0:
			a.values[tech] = c
		default:
			a.values[tech] = (a.values[tech] + c) / 2
		}
	}
}

// Result returns a copy of the current values
func (a *Accumulator) Result() Metrics {
	out := make(Metrics, len(a.values))
	for k, v := range a.values {
		out[k] = v
	}
	return out
}
