package main

import (
	"bufio"
	"io"
	"os"
	"strings"

	"laborreport/internal/platform/config"
	"laborreport/internal/platform/credentials"
	perr "laborreport/internal/platform/errors"
	"laborreport/internal/platform/logger"
	"laborreport/internal/presentation/chart"
	"laborreport/internal/services/reports/domain"
	reportsmod "laborreport/internal/services/reports/module"
	"laborreport/internal/services/reports/service"

	"golang.org/x/term"
)

// app carries the streams, options and seams shared by every command
type app struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer

	opts      reportsmod.Options
	noColor   bool
	logLevel  string
	logFormat string

	// newAPI builds the field-service client for a key; tests swap it for a fake
	newAPI func(opts reportsmod.Options, key string) domain.FieldService
	// askKey prompts for a missing API key
	askKey func() (string, error)
}

func newApp(in io.Reader, out, errOut io.Writer) *app {
	a := &app{in: in, out: out, errOut: errOut}
	a.newAPI = func(o reportsmod.Options, key string) domain.FieldService { return reportsmod.NewClient(o, key) }
	a.askKey = a.promptKey
	return a
}

// setup initialises logging and reads options; it runs before every command
func (a *app) setup() {
	lo := logger.FromEnv()
	if a.logLevel != "" {
		lo.Level = a.logLevel
	}
	if a.logFormat != "" {
		lo.Format = a.logFormat
	}
	lo.Writer = a.errOut
	logger.Init(lo)
	a.opts = reportsmod.FromConfig(config.New())
	a.noColor = a.noColor || a.opts.NoColor
}

func (a *app) chartOptions(title, unit string) chart.Options {
	o := chart.Options{Title: title, Unit: unit, NoColor: a.noColor}
	if f, ok := a.out.(*os.File); ok {
		o.Width = chart.TerminalWidth(f)
	} else {
		o.Width = chart.DefaultWidth
		o.NoColor = true
	}
	return o
}

// readOnly is the service over the store alone
func (a *app) readOnly(opts ...service.Option) *service.Svc {
	return reportsmod.NewService(a.opts, nil, opts...)
}

// online is the service with an authenticated API client
func (a *app) online(opts ...service.Option) (*service.Svc, error) {
	key, err := credentials.Ensure(a.opts.KeyFile, a.askKey)
	if err != nil {
		return nil, err
	}
	return reportsmod.NewService(a.opts, a.newAPI(a.opts, key), opts...), nil
}

// promptKey asks for the key without echo on a terminal, or reads a line otherwise
func (a *app) promptKey() (string, error) {
	_, _ = io.WriteString(a.errOut, "Enter your API key: ")
	if f, ok := a.in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		_, _ = io.WriteString(a.errOut, "\n")
		if err != nil {
			return "", perr.Wrap(err, perr.ErrorCodeIO, "read API key")
		}
		return checkKey(string(b))
	}
	line, err := bufio.NewReader(a.in).ReadString('\n')
	if err != nil && line == "" {
		return "", perr.Wrap(err, perr.ErrorCodeIO, "read API key")
	}
	return checkKey(line)
}

func checkKey(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", perr.InvalidArgf("no API key entered")
	}
	return s, nil
}
