// cmd/packratd/main.go
//
// Packrat – server entry point.
//
// Boot sequence
// -------------
//
//  1. Load env vars (site-wide file → .env fallback).
//
//  2. Install the Vault secret resolver when VAULT_ADDR is present, so
//     `vault:` references in the config resolve during load.
//
//  3. Resolve the configuration through the process registry (explicit
//     path from -config, else the candidate search).
//
//  4. Build the declarative logging config and apply it to Zap.
//
//  5. Open the database pool and probe it.
//
//  6. Select the storage backend descriptor and hand it to the store
//     subsystem (logged here; construction is out of scope).
//
//  7. Bootstrap plugins and mount their routes plus /metrics.
//
// Large comment blocks are framed by blank “//” lines; inline comments use
// a single “//”.
package main

import (
	"flag"
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yanizio/packrat/internal/config"
	"github.com/yanizio/packrat/internal/database"
	"github.com/yanizio/packrat/internal/logging"
	"github.com/yanizio/packrat/internal/plugin"
	"github.com/yanizio/packrat/internal/secrets"
	"github.com/yanizio/packrat/internal/storage"
	"github.com/yanizio/packrat/internal/worker"

	_ "github.com/yanizio/packrat/plugins/debug" // demo plugin
)

const (
	serverEnvPath = "/usr/local/etc/packrat/global.env"
	listenAddr    = ":8080"
)

// loadEnv prefers the site-wide env file; on dev it falls back to .env.
func loadEnv() {
	if _, err := os.Stat(serverEnvPath); err == nil {
		_ = godotenv.Load(serverEnvPath)
		return
	}
	_ = godotenv.Load()
}

func init() { loadEnv() }

func main() {
	configPath := flag.String("config", "", "explicit config file path")
	flag.Parse()

	//
	// ── 1.  Secret resolver (before the first resolution) ──────────────
	//
	if os.Getenv("VAULT_ADDR") != "" {
		cli, err := secrets.New()
		if err != nil {
			log.Fatalf("vault client: %v", err)
		}
		config.SetSecretResolver(cli)
	}

	//
	// ── 2.  Configuration resolution ───────────────────────────────────
	//
	wrapper, err := config.Default().Resolve(*configPath)
	if err != nil {
		log.Fatalf("resolve config: %v", err)
	}

	//
	// ── 3.  Logging ────────────────────────────────────────────────────
	//
	logCfg := logging.Build(wrapper.Settings, []string{"packrat"})
	logOut, err := logging.Apply(logCfg)
	if err != nil {
		log.Fatalf("start logger: %v", err)
	}
	logOut.Infow("config resolved", "source", wrapper.Path, "level", logCfg.Level)

	//
	// ── 4.  Database pool ──────────────────────────────────────────────
	//
	db, err := database.Open(wrapper.Settings.Database)
	if err != nil {
		logOut.Fatalw("connect database", "err", err)
	}
	defer db.Close()
	if err := database.Healthy(db); err != nil {
		logOut.Fatalw("database probe", "err", err)
	}
	logOut.Infow("database online")

	//
	// ── 5.  Storage backend selection ──────────────────────────────────
	//
	desc := storage.Select(wrapper.Settings)
	logOut.Infow("store selected", "kind", desc.Kind)

	runner := worker.FromSettings(wrapper.Settings)
	logOut.Infow("worker runner", "type", runner.Type)

	//
	// ── 6.  Plugins ────────────────────────────────────────────────────
	//
	manager, err := plugin.Bootstrap(wrapper.Settings)
	if err != nil {
		logOut.Fatalw("bootstrap plugins", "err", err)
	}

	//
	// ── 7.  Router: plugin routes + metrics ────────────────────────────
	//
	r := chi.NewRouter()
	r.Handle("/metrics", promhttp.Handler())
	for _, p := range manager.All() {
		if routes := p.Routes(); routes != nil {
			r.Mount("/"+p.Name(), routes)
			logOut.Infow("plugin mounted", "plugin", p.Name())
		}
	}

	logOut.Infow("listening", "addr", listenAddr)
	if err := http.ListenAndServe(listenAddr, r); err != nil {
		logOut.Fatalw("http server", "err", err)
	}
}
