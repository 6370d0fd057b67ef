package modkit

import "net/http"

// Option mutates build configuration for a module
type Option func(*Built)

// Built is the configuration modules read after applying options
type Built struct {
	Name   string
	Prefix string
	Mw     []func(http.Handler) http.Handler
}

// WithName sets a module name used in logs
func WithName(name string) Option {
	return func(c *Built) { c.Name = name }
}

// WithPrefix mounts a module under a path prefix
func WithPrefix(prefix string) Option {
	return func(c *Built) { c.Prefix = prefix }
}

// WithMiddlewares attaches per module middleware in order
func WithMiddlewares(mw ...func(http.Handler) http.Handler) Option {
	return func(c *Built) { c.Mw = append(c.Mw, mw...) }
}

// Build applies opts in order; later options win
func Build(opts ...Option) Built {
	var c Built
	for _, o := range opts {
		o(&c)
	}
	if c.Prefix == "" {
		c.Prefix = "/"
	}
	return c
}
