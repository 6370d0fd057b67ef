// Package http provides the read-only http view of stored reports
package http

import (
	stdhttp "net/http"
	"net/url"

	phttp "laborreport/internal/platform/net/http"
	svc "laborreport/internal/services/reports/service"
)

// Register mounts report endpoints on the given router
func Register(r phttp.Router, s svc.Service) {
	h := &handlers{svc: s}

	// stored report summaries in name order
	r.Get("/", phttp.Call(h.list))

	// one report's per-technician values
	r.Get("/{name}", phttp.Call(h.get))

	// mean and deviation of one report
	r.Get("/{name}/summary", phttp.Call(h.summary))
}

type handlers struct{ svc svc.Service }

func (h *handlers) list(r *stdhttp.Request) (any, error) {
	return h.svc.List(r.Context())
}

func (h *handlers) get(r *stdhttp.Request) (any, error) {
	name, err := h.svc.Resolve(r.Context(), nameParam(r))
	if err != nil {
		return nil, err
	}
	m, err := h.svc.Get(r.Context(), name)
	if err != nil {
		return nil, err
	}
	return struct {
		Name    string             `json:"name"`
		Metrics map[string]float64 `json:"metrics"`
	}{Name: name, Metrics: m}, nil
}

func (h *handlers) summary(r *stdhttp.Request) (any, error) {
	name, err := h.svc.Resolve(r.Context(), nameParam(r))
	if err != nil {
		return nil, err
	}
	return h.svc.Summary(r.Context(), name)
}

// nameParam decodes the name segment; report names carry ':' and spaces
func nameParam(r *stdhttp.Request) string {
	raw := phttp.URLParam(r, "name")
	if s, err := url.PathUnescape(raw); err == nil {
		return s
	}
	return raw
}
