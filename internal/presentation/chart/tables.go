package chart

import (
	"strconv"
	"strings"

	"laborreport/internal/core/labor"
	"laborreport/internal/core/stats"
	"laborreport/internal/services/reports/domain"

	"github.com/mattn/go-runewidth"
)

// table lays out rows in aligned columns; right marks right-aligned columns
type table struct {
	headers []string
	rows    [][]string
	right   map[int]bool
}

func (t table) render(st styles, title string) string {
	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, r := range t.rows {
		for i, c := range r {
			widths[i] = max(widths[i], runewidth.StringWidth(c))
		}
	}

	line := func(cells []string) string {
		parts := make([]string, len(cells))
		for i, c := range cells {
			if t.right[i] {
				parts[i] = padLeft(c, widths[i])
			} else {
				parts[i] = padRight(c, widths[i])
			}
		}
		return strings.TrimRight(strings.Join(parts, "  "), " ")
	}

	var b strings.Builder
	if title != "" {
		b.WriteString(st.title(title))
		b.WriteByte('\n')
	}
	b.WriteString(st.header(line(t.headers)))
	b.WriteByte('\n')
	total := 0
	for _, w := range widths {
		total += w
	}
	b.WriteString(st.muted(strings.Repeat("─", total+2*(len(widths)-1))))
	b.WriteByte('\n')
	for _, r := range t.rows {
		b.WriteString(line(r))
		b.WriteByte('\n')
	}
	return b.String()
}

// ReportTable lists stored reports with the index the CLI accepts in place of a name
func ReportTable(rows []domain.Summary, o Options) string {
	t := table{
		headers: []string{"Index", "Start Date", "End Date", "Report Type", "Techs", "Avg"},
		right:   map[int]bool{0: true, 4: true, 5: true},
	}
	for i, r := range rows {
		label := r.Label
		if label == "" {
			label = r.Name
		}
		t.rows = append(t.rows, []string{
			strconv.Itoa(i), r.Start, r.End, label, strconv.Itoa(r.Technicians), Number(r.Mean),
		})
	}
	return t.render(newStyles(o.NoColor), o.Title)
}

// MetricsTable lists one report's values by technician with a total and average footer
func MetricsTable(m map[string]float64, o Options) string {
	unit := o.Unit
	if unit == "" {
		unit = "Value"
	}
	t := table{headers: []string{"Technician", unit}, right: map[int]bool{1: true}}
	names := labor.Metrics(m).Technicians()

	var total float64
	values := make([]float64, 0, len(names))
	for _, n := range names {
		t.rows = append(t.rows, []string{n, Number(m[n])})
		total += m[n]
		values = append(values, m[n])
	}
	t.rows = append(t.rows, []string{"Total", Number(total)}, []string{"Avg", Number(stats.Mean(values, true))})
	return t.render(newStyles(o.NoColor), o.Title)
}

// TypesTable lists the report types the get command accepts
func TypesTable(o Options) string {
	t := table{headers: []string{"Key", "Label", "Item Tag", "Customers"}}
	for _, typ := range domain.Types() {
		p, _ := typ.Params()
		customers := strings.Join(p.Customers, ", ")
		switch {
		case customers == "":
			customers = "any"
		case p.Exclude:
			customers = "all except " + customers
		}
		tag := p.ItemTag
		if p.Proportional {
			tag += " (parts revenue by labor share)"
		}
		t.rows = append(t.rows, []string{string(typ), p.Label, tag, customers})
	}
	return t.render(newStyles(o.NoColor), o.Title)
}
