// Package module wires the reports service from config
package module

import (
	"net/http"

	"laborreport/internal/adapters/fieldservice"
	"laborreport/internal/modkit"
	phttp "laborreport/internal/platform/net/http"
	"laborreport/internal/services/reports/domain"
	reportshttp "laborreport/internal/services/reports/http"
	"laborreport/internal/services/reports/repo"
	"laborreport/internal/services/reports/service"
)

// NewClient builds the field-service client for o with apiKey
func NewClient(o Options, apiKey string) *fieldservice.Client {
	api := o.API
	api.APIKey = apiKey
	return fieldservice.NewClient(api)
}

// NewService builds the reports service over the file store of o. api may be nil for read-only use
func NewService(o Options, api domain.FieldService, opts ...service.Option) *service.Svc {
	return service.New(api, repo.NewFile(o.ReportFile), service.Config{
		ChunkSize: o.ChunkSize,
		Average:   o.Average,
	}, opts...)
}

// Module mounts the read-only report view
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string
	mws    []func(http.Handler) http.Handler
	svc    service.Service
}

var _ modkit.Module = (*Module)(nil)

// New constructs the reports module around svc
func New(deps modkit.Deps, svc service.Service, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("reports"), modkit.WithPrefix("/reports")}, opts...)...)
	return &Module{deps: deps, name: b.Name, prefix: b.Prefix, mws: b.Mw, svc: svc}
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r phttp.Router) {
	r.Route(m.prefix, func(rr phttp.Router) {
		rr.Use(m.mws...)
		reportshttp.Register(rr, m.svc)
	})
	m.deps.Logger(m.name).Debug().Str("prefix", m.prefix).Msg("routes mounted")
}

// Ports returns the reports service
func (m *Module) Ports() any { return m.svc }

// Name returns the module name
func (m *Module) Name() string { return m.name }
