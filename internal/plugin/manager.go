// internal/plugin/manager.go
//
// Plugin bootstrap honoring the plugins section.
//
// Context
// -------
// Bootstrap loads plugins out of the registry: when the plugins section
// was configured, only the names on its enabled list; otherwise every
// registered plugin.  A loader failure—or an enabled name nothing
// registered—aborts the whole bootstrap and surfaces to the caller.
// Nothing partial comes back.
//
// Notes
// -----
//   - Oxford commas, two spaces after periods.

package plugin

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/yanizio/packrat/internal/config"
	"github.com/yanizio/packrat/internal/metrics"
)

// Manager holds the loaded plugin set for the process.
type Manager struct {
	plugins []Plugin
	byName  map[string]Plugin
}

// Bootstrap loads the plugin set selected by s.
func Bootstrap(s *config.Settings) (*Manager, error) {
	names := Registered()
	if s != nil && s.Configured("plugins") {
		names = s.Plugins.Enabled
	}

	m := &Manager{byName: make(map[string]Plugin, len(names))}
	for _, name := range names {
		load := loader(name)
		if load == nil {
			metrics.PluginLoadErrorsTotal.Inc()
			return nil, fmt.Errorf("plugin %q is not registered", name)
		}
		p, err := load()
		if err != nil {
			metrics.PluginLoadErrorsTotal.Inc()
			return nil, fmt.Errorf("load plugin %q: %w", name, err)
		}
		m.plugins = append(m.plugins, p)
		m.byName[p.Name()] = p
		metrics.PluginLoadTotal.Inc()
		zap.S().Debugw("plugin loaded", "plugin", p.Name())
	}
	return m, nil
}

// All returns the loaded plugins in load order.
func (m *Manager) All() []Plugin {
	out := make([]Plugin, len(m.plugins))
	copy(out, m.plugins)
	return out
}

// Get returns the loaded plugin named name, or nil.
func (m *Manager) Get(name string) Plugin { return m.byName[name] }
