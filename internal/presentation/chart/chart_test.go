package chart

import (
	"strings"
	"testing"

	"laborreport/internal/services/reports/domain"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lines(s string) []string { return strings.Split(strings.TrimRight(s, "\n"), "\n") }

func TestNumber(t *testing.T) {
	assert.Equal(t, "1,234.50", Number(1234.5))
	assert.Equal(t, "0.00", Number(0))
}

func TestBarsSingleSeries(t *testing.T) {
	out := Bars([]Series{{Label: "Jan", Values: map[string]float64{"Ron": 10, "April": 5, "Andy": 0}}},
		Options{Title: "Lost Time", Unit: "Hours", Width: 40, NoColor: true})
	ls := lines(out)
	require.Len(t, ls, 6)

	assert.Equal(t, "Lost Time (Hours)", ls[0])
	assert.Equal(t, "■ Jan  Avg: 7.50  Std: 4.79", ls[1])
	assert.Equal(t, "", ls[2])
	// barMax = 40 - name(5) - value(5) - 4
	assert.Equal(t, "Andy  │ 0.00", ls[3])
	assert.Equal(t, "April │ "+strings.Repeat(barGlyph, 13)+" 5.00", ls[4])
	assert.Equal(t, "Ron   │ "+strings.Repeat(barGlyph, 26)+" 10.00", ls[5])
	for _, l := range ls {
		assert.LessOrEqual(t, runewidth.StringWidth(l), 40, l)
	}
}

func TestBarsGroupsSeriesPerTechnician(t *testing.T) {
	out := Bars([]Series{
		{Label: "Jan", Values: map[string]float64{"Ron": 4}},
		{Label: "Feb", Values: map[string]float64{"Ron": 2, "April": 2}},
	}, Options{Width: 30, NoColor: true})
	ls := lines(out)

	assert.True(t, strings.HasPrefix(ls[0], "■ Jan"))
	assert.True(t, strings.HasPrefix(ls[1], "■ Feb"))
	// April is missing from Jan and drawn as zero
	assert.Equal(t, "April │ 0.00", ls[3])
	assert.True(t, strings.HasPrefix(ls[4], "      │ "+barGlyph))
	assert.Equal(t, "", ls[5])
	assert.True(t, strings.HasPrefix(ls[6], "Ron   │ "))
}

func TestBarsEmpty(t *testing.T) {
	assert.Empty(t, Bars(nil, Options{}))
}

func TestBarLen(t *testing.T) {
	assert.Equal(t, 0, barLen(0, 10, 20))
	assert.Equal(t, 0, barLen(-3, 10, 20))
	assert.Equal(t, 1, barLen(0.01, 10, 20))
	assert.Equal(t, 20, barLen(10, 10, 20))
	assert.Equal(t, 0, barLen(5, 0, 20))
}

func TestMetricsTable(t *testing.T) {
	out := MetricsTable(map[string]float64{"Ron": 1200, "April": 0}, Options{Unit: "Hours", NoColor: true})
	ls := lines(out)
	require.Len(t, ls, 6)
	assert.Equal(t, "Technician     Hours", ls[0])
	assert.Equal(t, "April           0.00", ls[2])
	assert.Equal(t, "Ron         1,200.00", ls[3])
	assert.Equal(t, "Total       1,200.00", ls[4])
	assert.Equal(t, "Avg         1,200.00", ls[5])
}

func TestReportTable(t *testing.T) {
	rows := []domain.Summary{{
		Name:        "2024-01-01:2024-02-01::Rental",
		NameParts:   domain.NameParts{Start: "2024-01-01", End: "2024-02-01", Label: "Rental"},
		Technicians: 3,
		Mean:        2.5,
	}}
	out := ReportTable(rows, Options{NoColor: true})
	ls := lines(out)
	require.Len(t, ls, 3)
	assert.Contains(t, ls[0], "Report Type")
	assert.Equal(t, "    0  2024-01-01  2024-02-01  Rental           3  2.50", ls[2])
}

func TestTypesTable(t *testing.T) {
	out := TypesTable(Options{NoColor: true})
	assert.Contains(t, out, "all-internals")
	assert.Contains(t, out, "all except Accurate - Lost Time")
	assert.Contains(t, out, "Parts per labor hour")
	assert.Len(t, lines(out), 2+len(domain.Types()))
}

func TestTerminalWidthFallsBack(t *testing.T) {
	assert.Equal(t, DefaultWidth, TerminalWidth(nil))
}
