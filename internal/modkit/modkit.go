// Package modkit is the wiring kit API modules are built from
//
// A module embeds Base for routing and naming and adds its own Ports, which other
// modules pull out with module.MustPortsOf during composition in the api package.
package modkit

import (
	"net/http"

	"scopetrack/internal/modkit/httpkit"
	"scopetrack/internal/modkit/module"
	str "scopetrack/internal/platform/strings"
)

// Module is what the api package mounts
type Module = module.Module

// Base implements MountRoutes, Name and Prefix from options
type Base struct {
	name     string
	prefix   string
	mw       []func(http.Handler) http.Handler
	register []func(httpkit.Router)
}

// NewBase applies opts over a module's own route registration
func NewBase(register func(httpkit.Router), opts ...Option) Base {
	b := Base{register: []func(httpkit.Router){register}}
	for _, o := range opts {
		o(&b)
	}
	return b
}

// MountRoutes mounts every registration under Prefix with the module middleware applied
func (b *Base) MountRoutes(r httpkit.Router) {
	r.Route(b.Prefix(), func(sub httpkit.Router) {
		if len(b.mw) > 0 {
			sub.Use(b.mw...)
		}
		for _, reg := range b.register {
			if reg != nil {
				reg(sub)
			}
		}
	})
}

// Name is the module name; an unnamed module panics
func (b *Base) Name() string { return str.MustString(b.name, "module name") }

// Prefix is the normalized mount path
func (b *Base) Prefix() string { return str.MustPrefix(b.prefix) }
