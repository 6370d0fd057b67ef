// Package modkit provides module wiring and core deps
package modkit

import (
	phttp "laborreport/internal/platform/net/http"
)

// Module is the common surface for modules that mount routes and expose ports
type Module interface {
	// MountRoutes mounts HTTP routes under the provided router seam
	MountRoutes(r phttp.Router)
	// Ports returns the module's service port for cross wiring
	Ports() any
	// Name returns the module name
	Name() string
}
