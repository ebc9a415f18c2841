// internal/plugin/manager_test.go
//
// Unit-tests for plugin bootstrap: enabled-list filtering and failure
// propagation.

package plugin

import (
	"errors"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/yanizio/packrat/internal/config"
)

type fakePlugin struct{ name string }

func (p *fakePlugin) Name() string       { return p.name }
func (p *fakePlugin) Routes() chi.Router { return nil }

// withRegistry swaps in an isolated registry for one test.
func withRegistry(t *testing.T, loaders map[string]Loader) {
	t.Helper()
	mu.Lock()
	saved := registry
	registry = loaders
	mu.Unlock()
	t.Cleanup(func() {
		mu.Lock()
		registry = saved
		mu.Unlock()
	})
}

func ok(name string) Loader {
	return func() (Plugin, error) { return &fakePlugin{name: name}, nil }
}

// settingsWithPlugins builds a tree whose plugins section was configured
// with the given enabled list.
func settingsWithPlugins(t *testing.T, enabled []string) *config.Settings {
	t.Helper()
	t.Setenv("PACKRAT_DATABASE_URL", "sqlite3://./x")
	t.Setenv("PACKRAT_SESSION_SECRET", "s")
	t.Setenv("PACKRAT_PLUGINS_ENABLED", strings.Join(enabled, ","))

	s, err := config.Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !s.Configured("plugins") {
		t.Fatalf("plugins section not configured")
	}
	return s
}

func TestBootstrapAllWhenUnconfigured(t *testing.T) {
	withRegistry(t, map[string]Loader{"alpha": ok("alpha"), "beta": ok("beta")})

	t.Setenv("PACKRAT_DATABASE_URL", "sqlite3://./x")
	t.Setenv("PACKRAT_SESSION_SECRET", "s")
	s, err := config.Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	m, err := Bootstrap(s)
	if err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}
	if got := len(m.All()); got != 2 {
		t.Fatalf("loaded %d plugins, want 2", got)
	}
	if m.Get("alpha") == nil || m.Get("beta") == nil {
		t.Fatalf("plugin lookup failed")
	}
}

func TestBootstrapHonorsEnabledList(t *testing.T) {
	withRegistry(t, map[string]Loader{"alpha": ok("alpha"), "beta": ok("beta")})

	m, err := Bootstrap(settingsWithPlugins(t, []string{"beta"}))
	if err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}
	if got := len(m.All()); got != 1 {
		t.Fatalf("loaded %d plugins, want 1", got)
	}
	if m.Get("beta") == nil || m.Get("alpha") != nil {
		t.Fatalf("enabled filtering wrong")
	}
}

func TestBootstrapUnknownEnabledName(t *testing.T) {
	withRegistry(t, map[string]Loader{"alpha": ok("alpha")})

	_, err := Bootstrap(settingsWithPlugins(t, []string{"gamma"}))
	if err == nil || !strings.Contains(err.Error(), "gamma") {
		t.Fatalf("err = %v, want unknown-plugin error naming gamma", err)
	}
}

func TestBootstrapLoaderFailurePropagates(t *testing.T) {
	boom := errors.New("boom")
	withRegistry(t, map[string]Loader{
		"alpha": ok("alpha"),
		"bad":   func() (Plugin, error) { return nil, boom },
	})

	t.Setenv("PACKRAT_DATABASE_URL", "sqlite3://./x")
	t.Setenv("PACKRAT_SESSION_SECRET", "s")
	s, err := config.Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	_, err = Bootstrap(s)
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped loader failure", err)
	}
}

func TestRegisteredSorted(t *testing.T) {
	withRegistry(t, map[string]Loader{"zeta": ok("zeta"), "alpha": ok("alpha")})
	got := Registered()
	if len(got) != 2 || got[0] != "alpha" || got[1] != "zeta" {
		t.Fatalf("Registered = %v", got)
	}
}
