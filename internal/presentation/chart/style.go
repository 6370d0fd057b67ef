// Package chart renders stored reports as terminal bar charts and tables
package chart

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultWidth is used when the output is not a terminal
const DefaultWidth = 80

// Options controls rendering
type Options struct {
	Title string
	// Unit names the measured quantity, e.g. Hours
	Unit string
	// Width is the total line width; 0 asks the terminal
	Width int
	// NoColor renders plain text
	NoColor bool
}

// palette holds one colour per series, cycling when there are more series
var palette = []lipgloss.Color{"#5B9BD5", "#ED7D31", "#70AD47", "#FFC000", "#A77DC2", "#C97C7C"}

type styles struct {
	title  func(string) string
	header func(string) string
	muted  func(string) string
	series func(i int, s string) string
}

func newStyles(noColor bool) styles {
	if noColor {
		id := func(s string) string { return s }
		return styles{title: id, header: id, muted: id, series: func(_ int, s string) string { return s }}
	}
	title := lipgloss.NewStyle().Bold(true)
	header := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7CB97C"))
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	return styles{
		title:  func(s string) string { return title.Render(s) },
		header: func(s string) string { return header.Render(s) },
		muted:  func(s string) string { return muted.Render(s) },
		series: func(i int, s string) string {
			return lipgloss.NewStyle().Foreground(palette[i%len(palette)]).Render(s)
		},
	}
}

// TerminalWidth returns the width of f when it is a terminal, DefaultWidth otherwise
func TerminalWidth(f *os.File) int {
	if f == nil {
		return DefaultWidth
	}
	w, _, err := term.GetSize(int(f.Fd()))
	if err != nil || w <= 0 {
		return DefaultWidth
	}
	return w
}

func (o Options) width() int {
	if o.Width > 0 {
		return o.Width
	}
	return TerminalWidth(os.Stdout)
}

var printer = message.NewPrinter(language.English)

// Number formats v with two decimals and thousands separators
func Number(v float64) string { return printer.Sprintf("%.2f", v) }

// padRight pads s with spaces to w display cells
func padRight(s string, w int) string { return runewidth.FillRight(s, w) }

// padLeft right-aligns s in w display cells
func padLeft(s string, w int) string {
	if d := w - runewidth.StringWidth(s); d > 0 {
		return strings.Repeat(" ", d) + s
	}
	return s
}
