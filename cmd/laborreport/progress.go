package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/muesli/termenv"
)

const progressWidth = 30

// progressBar draws a single updating line on w
type progressBar struct {
	w     io.Writer
	model progress.Model
	task  string
	total int
	done  int
}

func newProgressBar(w io.Writer, noColor bool) *progressBar {
	opts := []progress.Option{progress.WithWidth(progressWidth)}
	if noColor {
		opts = append(opts, progress.WithFillCharacters('▮', '▯'), progress.WithColorProfile(termenv.Ascii))
	} else {
		opts = append(opts, progress.WithDefaultGradient())
	}
	return &progressBar{w: w, model: progress.New(opts...)}
}

func (p *progressBar) Start(task string, total int) {
	p.task, p.total, p.done = task, total, 0
	p.draw()
}

func (p *progressBar) Advance(n int) {
	p.done += n
	p.draw()
}

func (p *progressBar) Done() {
	p.draw()
	_, _ = io.WriteString(p.w, "\n")
}

// fraction is the completed share; an empty task counts as complete
func (p *progressBar) fraction() float64 {
	if p.total <= 0 {
		return 1
	}
	return min(float64(p.done)/float64(p.total), 1)
}

func (p *progressBar) draw() {
	_, _ = fmt.Fprintf(p.w, "\r%s %s %d/%d", p.task, p.model.ViewAs(p.fraction()), p.done, p.total)
}
