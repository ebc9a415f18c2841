// internal/config/registry.go
//
// Process-wide wrapper cache, one instance per source path.
//
// Context
// -------
// Resolution is cheap but not free, and the settings tree is the single
// source of truth for the whole process, so the registry guarantees at
// most one *Wrapper per distinct source path for the process lifetime.
// First-time construction per path runs under a singleflight barrier:
// concurrently-initializing request handlers hitting an unseen path get
// the same parse, the same instance, never two.  Once a path's wrapper
// exists, lookups are lock-free sync.Map reads.
//
// A no-argument resolution additionally aliases its wrapper under a
// private default key, so later no-argument calls short-circuit without
// re-running the locator.  The empty path ("no file found, defaults
// only") is itself a valid cache key.
//
// The registry is an explicit object, not a package singleton, so tests
// can construct isolated registries with their own locators; `Default()`
// returns the shared process instance.
//
// Notes
// -----
//   - Oxford commas, two spaces after periods.

package config

import (
	"path/filepath"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/yanizio/packrat/internal/metrics"
)

// defaultKey aliases the wrapper produced by a no-argument resolution.
// NUL never appears in a real path, so it cannot collide.
const defaultKey = "\x00default"

// Wrapper pairs a resolved absolute source path with its settings tree.
// Path is "" when resolution fell back to pure defaults.  Immutable.
type Wrapper struct {
	Path     string
	Settings *Settings
}

// ConfiguredSection reports whether the named section was configured by
// file or environment, letting callers branch on optional-section
// presence without touching the tree shape.
func (w *Wrapper) ConfiguredSection(section string) bool {
	return w.Settings.Configured(section)
}

// Registry caches one Wrapper per resolved source path.
type Registry struct {
	locator *Locator
	sfg     singleflight.Group
	m       sync.Map // path string → *Wrapper
}

// NewRegistry returns an empty registry probing through loc.  A nil loc
// gets the platform-default locator.
func NewRegistry(loc *Locator) *Registry {
	if loc == nil {
		loc = &Locator{}
	}
	return &Registry{locator: loc}
}

// Resolve locates, loads, and caches the configuration for explicit (or
// for the candidate search when explicit is "").  Two calls with the same
// effective path return the identical wrapper.  Loader errors propagate
// unchanged and nothing is cached for the failed path.
func (r *Registry) Resolve(explicit string) (*Wrapper, error) {
	if explicit == "" {
		if v, ok := r.m.Load(defaultKey); ok {
			return v.(*Wrapper), nil
		}
	}

	path := r.locator.Locate(explicit)
	if path != "" {
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
	}

	if v, ok := r.m.Load(path); ok {
		w := v.(*Wrapper)
		if explicit == "" {
			r.m.Store(defaultKey, w)
		}
		return w, nil
	}

	v, err, _ := r.sfg.Do(path, func() (interface{}, error) {
		// Double-check after singleflight barrier.
		if v, ok := r.m.Load(path); ok {
			return v, nil
		}
		s, err := Load(path)
		if err != nil {
			metrics.ConfigLoadErrorsTotal.Inc()
			return nil, err
		}
		w := &Wrapper{Path: path, Settings: s}
		r.m.Store(path, w)
		metrics.ConfigLoadTotal.Inc()
		metrics.ActiveConfigs.Inc()
		return w, nil
	})
	if err != nil {
		return nil, err
	}

	w := v.(*Wrapper)
	if explicit == "" {
		r.m.Store(defaultKey, w)
	}
	return w, nil
}

//
// process-wide default registry
//

var std = NewRegistry(nil)

// Default returns the shared process registry.
func Default() *Registry { return std }
