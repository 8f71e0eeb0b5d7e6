// Package module holds the module contract and port lookup, apart from modkit so port types can import it
package module

import phttp "scopetrack/internal/platform/net/http"

// Module is a mountable unit with a port set other modules may depend on
type Module interface {
	MountRoutes(r phttp.Router)
	Ports() any
	Name() string
}
