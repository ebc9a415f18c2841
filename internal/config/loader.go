// internal/config/loader.go
//
// Settings construction from one located file plus env overrides.
//
// Context
// -------
// `Load()` builds one immutable `Settings` tree from two layers (highest
// precedence last):
//
//  1. The located `config.toml`, when a path was found.
//  2. Environment variables prefixed `PACKRAT_`, mapped per envmap.go
//     (e.g., `PACKRAT_DATABASE_URL → database.url`).
//
// Per-field precedence is therefore env > file > built-in default.  The
// defaults come from pre-seeding the target struct before unmarshal, so a
// field untouched by both layers keeps its default without any merge
// logic here.
//
// Optional sections trigger on presence of their key in the merged tree.
// A triggered pointer section is pre-seeded with its own in-section
// defaults first (GitLab's public URL, logging's INFO level, and so on),
// then overlaid, then stripped of `vault:` secret references (secrets.go),
// then validated.  Defaults never repair a located file:
// once a file parses badly or a triggered section fails validation,
// resolution aborts with a *Error—no partial tree escapes.
//
// Instrumentation
// ---------------
//   - DEBUG spans — file layer, env overlay, section trigger set.
//   - ERROR spans — parse, overlay, unmarshal, validation failures.
//   - Logs use the global sugared logger (`zap.S()`) so early boot issues
//     surface even before the file logger is installed.
//
// Notes
// -----
//   - Oxford commas, two spaces after periods.

package config

import (
	"context"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	koanf "github.com/knadh/koanf/v2"
	"go.uber.org/zap"
)

/*─────────────────────────────── loader ───────────────────────────────────*/

// Load parses the file at path (or starts from pure defaults when path is
// empty), overlays PACKRAT_ env vars, and validates the result.  The
// returned Settings is complete and immutable, or the error is a *Error.
func Load(path string) (*Settings, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			zap.S().Errorw("config file load failed", "file", path, "err", err)
			return nil, parseError(path, err)
		}
		zap.S().Debugw("config file loaded", "file", path)
	}

	// Env overrides: PACKRAT_LOCAL_STORE_REDIRECT_ENABLED →
	// local_store.redirect_enabled.  Unknown keys map to "" and are
	// dropped by Koanf.
	if err := k.Load(env.Provider(EnvPrefix, ".", envToKey), nil); err != nil {
		zap.S().Errorw("config env overlay failed", "err", err)
		return nil, &Error{Reason: "environment overlay failure", Err: err}
	}

	present := make(map[string]bool, len(sectionNames))
	for _, name := range sectionNames {
		if k.Exists(name) {
			present[name] = true
		}
	}
	zap.S().Debugw("config sections triggered", "sections", keys(present))

	s := defaultSettings()
	seedTriggered(s, present)

	if err := k.Unmarshal("", s); err != nil {
		zap.S().Errorw("config unmarshal failed", "file", path, "err", err)
		return nil, decodeError(path, err)
	}
	s.present = present

	// Level reaches the oneof rule upper-cased, so sources may spell it
	// however they like.
	if s.Logging != nil {
		s.Logging.Level = strings.ToUpper(s.Logging.Level)
	}

	// ChannelQuota is checked by key presence rather than a required tag:
	// an explicit zero quota is legal, but a bare [quotas] header is not.
	if present["quotas"] && !k.Exists("quotas.channel_quota") {
		zap.S().Errorw("config validation failed",
			"file", path, "section", "quotas", "field", "channel_quota")
		return nil, &Error{
			Path:    path,
			Section: "quotas",
			Field:   "channel_quota",
			Reason:  "required value missing",
		}
	}

	if err := resolveSecrets(context.Background(), s); err != nil {
		zap.S().Errorw("config secret resolution failed", "file", path, "err", err)
		return nil, &Error{Path: path, Reason: "secret resolution failure", Err: err}
	}

	if err := validateSettings(s); err != nil {
		zap.S().Errorw("config validation failed", "file", path, "err", err)
		return nil, err
	}
	return s, nil
}

/*──────────────────────────── helpers ─────────────────────────────────────*/

// seedTriggered allocates triggered pointer sections that carry their own
// in-section defaults, so a bare `[worker]` header still yields a fully
// populated section.  Sections whose zero value is their default are left
// for unmarshal to allocate.
func seedTriggered(s *Settings, present map[string]bool) {
	if present["cors"] {
		s.CORS = &CORS{
			AllowCredentials: true,
			AllowMethods:     []string{"*"},
			AllowHeaders:     []string{"*"},
		}
	}
	if present["gitlab"] {
		s.GitLab = &GitLab{URL: "https://gitlab.com"}
	}
	if present["logging"] {
		s.Logging = &Logging{Level: "INFO"}
	}
	if present["worker"] {
		s.Worker = &Worker{Type: "thread", RedisIP: "127.0.0.1", RedisPort: 6379}
	}
	if present["profiling"] {
		s.Profiling = &Profiling{IntervalSeconds: 0.001}
	}
}

func keys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
