package chart

import (
	"math"
	"sort"
	"strings"

	"laborreport/internal/core/stats"

	"github.com/mattn/go-runewidth"
)

const (
	barGlyph  = "█"
	minBarLen = 10
)

// Series is one report drawn in the chart
type Series struct {
	Label  string
	Values map[string]float64
}

// Bars draws horizontal grouped bars: one group per technician, one bar per
// series. The legend gives each series its positive-only average and the
// standard deviation around it
func Bars(series []Series, o Options) string {
	if len(series) == 0 {
		return ""
	}
	st := newStyles(o.NoColor)
	techs := technicians(series)

	nameW, valueW := 0, 0
	maxV := 0.0
	for _, t := range techs {
		nameW = max(nameW, runewidth.StringWidth(t))
	}
	for _, s := range series {
		for _, t := range techs {
			v := s.Values[t]
			valueW = max(valueW, runewidth.StringWidth(Number(v)))
			maxV = math.Max(maxV, v)
		}
	}
	barMax := max(o.width()-nameW-valueW-4, minBarLen)

	var b strings.Builder
	if o.Title != "" {
		b.WriteString(st.title(o.Title))
		if o.Unit != "" {
			b.WriteString(st.muted(" (" + o.Unit + ")"))
		}
		b.WriteByte('\n')
	}
	for i, s := range series {
		sum := stats.Summarize(valuesOf(s, techs))
		b.WriteString(st.series(i, "■ "+s.Label))
		b.WriteString(st.muted("  Avg: " + Number(sum.Mean) + "  Std: " + Number(sum.StdDev)))
		b.WriteByte('\n')
	}
	b.WriteByte('\n')

	for gi, t := range techs {
		if gi > 0 && len(series) > 1 {
			b.WriteByte('\n')
		}
		for i, s := range series {
			label := ""
			if i == 0 {
				label = t
			}
			v := s.Values[t]
			b.WriteString(padRight(label, nameW))
			b.WriteString(st.muted(" │ "))
			if n := barLen(v, maxV, barMax); n > 0 {
				b.WriteString(st.series(i, strings.Repeat(barGlyph, n)))
				b.WriteByte(' ')
			}
			b.WriteString(Number(v))
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// barLen scales v against maxV; any positive value gets at least one cell
func barLen(v, maxV float64, width int) int {
	if v <= 0 || maxV <= 0 {
		return 0
	}
	n := int(math.Round(v / maxV * float64(width)))
	return min(max(n, 1), width)
}

// technicians is the sorted union of every series' keys
func technicians(series []Series) []string {
	seen := map[string]struct{}{}
	for _, s := range series {
		for t := range s.Values {
			seen[t] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for t := range seen {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// valuesOf reads s in techs order; a technician missing from s counts as 0
func valuesOf(s Series, techs []string) []float64 {
	out := make([]float64, len(techs))
	for i, t := range techs {
		out[i] = s.Values[t]
	}
	return out
}
