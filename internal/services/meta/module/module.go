// Package module wires meta endpoints into the report view using a tiny module
package module

import (
	"net/http"
	"time"

	"laborreport/internal/modkit"
	phttp "laborreport/internal/platform/net/http"

	metahttp "laborreport/internal/services/meta/http"
)

// Module implements the modkit.Module interface
type Module struct {
	deps      modkit.Deps
	name      string
	prefix    string
	mws       []func(http.Handler) http.Handler
	checks    map[string]metahttp.Check
	startedAt time.Time
}

var _ modkit.Module = (*Module)(nil)

// New constructs a meta module; checks feed the readiness probe
func New(deps modkit.Deps, checks map[string]metahttp.Check, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)...)

	return &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		checks:    checks,
		startedAt: time.Now(),
	}
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r phttp.Router) {
	r.Route(m.prefix, func(rr phttp.Router) {
		rr.Use(m.mws...)
		metahttp.Register(rr, metahttp.Deps{
			ServiceName: "laborreport",
			StartedAt:   m.startedAt,
			Checks:      m.checks,
		})
	})
	m.deps.Logger(m.name).Debug().Str("prefix", m.prefix).Msg("routes mounted")
}

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return nil }

// Name implements the modkit.Module interface
func (m *Module) Name() string { return m.name }
