// plugins/debug/debug.go
//
// Demo plugin that echoes the resolved configuration surface: source
// path, triggered sections, and the selected storage backend kind.
package debug

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yanizio/packrat/internal/config"
	"github.com/yanizio/packrat/internal/plugin"
	"github.com/yanizio/packrat/internal/storage"
)

func init() {
	plugin.Register("debug", func() (plugin.Plugin, error) {
		w, err := config.Default().Resolve("")
		if err != nil {
			return nil, err
		}
		return &debugPlugin{wrapper: w}, nil
	})
}

type debugPlugin struct {
	wrapper *config.Wrapper
}

func (p *debugPlugin) Name() string { return "debug" }

func (p *debugPlugin) Routes() chi.Router {
	// Mounted under /debug by main.
	r := chi.NewRouter()
	r.Get("/config", p.getConfig)
	return r
}

// getConfig writes a JSON blob with selected resolution facts.  Secrets
// stay out: only section presence and the backend tag are exposed.
func (p *debugPlugin) getConfig(w http.ResponseWriter, r *http.Request) {
	sections := map[string]bool{}
	for _, name := range []string{
		"github", "gitlab", "azuread", "google",
		"s3", "azure_blob", "gcs",
		"logging", "users", "worker", "plugins", "quotas", "profiling",
	} {
		sections[name] = p.wrapper.ConfiguredSection(name)
	}

	out := map[string]any{
		"source":   p.wrapper.Path,
		"sections": sections,
		"store":    storage.Select(p.wrapper.Settings).Kind,
	}

	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(out)
}
