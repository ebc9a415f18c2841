// internal/plugin/registry.go
//
// Explicit plugin registry.
//
// Context
// -------
// Plugins are compiled in, not discovered at install time: each plugin
// package calls plugin.Register(name, loader) in an init() function, and
// importing the package (usually with a blank import in main) is what
// makes it discoverable.  This replaces ecosystem-specific entry-point
// scanning with a registry the linker can see.
//
// Loaders run lazily, at bootstrap, so a registered-but-disabled plugin
// costs nothing beyond its init().
//
// Notes
// -----
//   - Oxford commas, two spaces after periods.

package plugin

import (
	"sort"
	"sync"

	"github.com/go-chi/chi/v5"
)

// Plugin is the contract a loader must produce.  Routes() may return nil
// when the plugin adds no endpoints.
type Plugin interface {
	Name() string
	Routes() chi.Router
}

// Loader constructs a plugin instance.  Errors propagate out of Bootstrap
// untouched.
type Loader func() (Plugin, error)

var (
	mu       sync.RWMutex
	registry = map[string]Loader{}
)

// Register is invoked from plugin init() functions.
func Register(name string, load Loader) {
	mu.Lock()
	registry[name] = load
	mu.Unlock()
}

// Registered returns every registered plugin name, sorted.
func Registered() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// loader returns the loader for name, or nil.
func loader(name string) Loader {
	mu.RLock()
	defer mu.RUnlock()
	return registry[name]
}
