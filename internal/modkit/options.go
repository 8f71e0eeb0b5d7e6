package modkit

import (
	"net/http"

	"scopetrack/internal/modkit/httpkit"
)

// Option adjusts a Base
type Option func(*Base)

// WithName names the module
func WithName(name string) Option { return func(b *Base) { b.name = name } }

// WithPrefix sets the mount path under /api/v1
func WithPrefix(prefix string) Option { return func(b *Base) { b.prefix = prefix } }

// WithMiddlewares appends module-only middleware, applied after the common stack
func WithMiddlewares(mw ...func(http.Handler) http.Handler) Option {
	return func(b *Base) { b.mw = append(b.mw, mw...) }
}

// WithRoutes registers extra routes next to the module's own
func WithRoutes(fn func(httpkit.Router)) Option {
	return func(b *Base) { b.register = append(b.register, fn) }
}
