// Package api collects the HTTP routes of the host. Route modules register
// from init() and receive the running Host when the server applies them.
package api

import (
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"webworker.GO/core/registry"
	"webworker.GO/offload"
	"webworker.GO/site"
)

// Host is what route modules serve from.
type Host struct {
	Store   *site.Store
	Options offload.Options
	// Redis caches rendered pages for CacheTTL when both are set.
	Redis    *redis.Client
	CacheTTL time.Duration
}

// RouteFunc adds routes to e for h.
type RouteFunc func(e *echo.Echo, h *Host)

type namedRoute struct {
	name string
	fn   RouteFunc
}

var mu sync.Mutex

func routes() []namedRoute {
	if v, ok := registry.GlobalRegistry.GetGlobal(registry.KeyRegistryRoutes); ok && v != nil {
		return v.([]namedRoute)
	}
	return nil
}

// RegisterRoute adds a route module. Modules apply in registration order.
// Panics on a duplicate name or after ApplyRoutes.
func RegisterRoute(name string, fn RouteFunc) {
	mu.Lock()
	defer mu.Unlock()
	if registry.GlobalRegistry.IsLocked(registry.KeyRegistryRoutes) {
		panic("api: routes locked (register only during init)")
	}
	list := routes()
	for _, r := range list {
		if r.name == name {
			panic("api: duplicate route module " + name)
		}
	}
	list = append(list, namedRoute{name: name, fn: fn})
	registry.GlobalRegistry.SetGlobal(registry.KeyRegistryRoutes, list)
}

// RegisterGET registers a GET handler that needs nothing from the host.
func RegisterGET(path string, handler echo.HandlerFunc) {
	RegisterRoute("GET "+path, func(e *echo.Echo, _ *Host) {
		e.GET(path, handler)
	})
}

// UnregisterRoute removes a route module (for tests).
func UnregisterRoute(name string) {
	mu.Lock()
	defer mu.Unlock()
	registry.GlobalRegistry.UnlockForTesting(registry.KeyRegistryRoutes)
	var out []namedRoute
	for _, r := range routes() {
		if r.name != name {
			out = append(out, r)
		}
	}
	registry.GlobalRegistry.SetGlobal(registry.KeyRegistryRoutes, out)
}

// ApplyRoutes adds every registered module to e and locks the registry.
func ApplyRoutes(e *echo.Echo, h *Host) {
	for _, r := range routes() {
		r.fn(e, h)
	}
	if !registry.GlobalRegistry.IsLocked(registry.KeyRegistryRoutes) {
		registry.GlobalRegistry.Lock(registry.KeyRegistryRoutes)
	}
}
