// internal/config/envmap.go
//
// Environment-variable key mapping.
//
// Context
// -------
// Every field binds to exactly one env var: the `PACKRAT_` prefix, the
// section name, and the field name, upper-cased and joined with
// underscores.  `PACKRAT_DATABASE_URL` → `database.url`.  The wrinkle is
// that section names themselves contain underscores (`local_store`,
// `azure_blob`), so a naive split on "_" is ambiguous.  We match the
// section by trying known names longest-first, the same progressive
// matching the dotted-name convention implies.
//
// Variables that match no known section (including the reserved
// PACKRAT_CONFIG_FILE and PACKRAT_LOG_LEVEL) map to "", which tells Koanf
// to skip them.

package config

import (
	"sort"
	"strings"
)

// EnvPrefix is the fixed prefix shared by every Packrat env var.
const EnvPrefix = "PACKRAT_"

// EnvConfigFile names the env var holding an alternate config-file path.
const EnvConfigFile = EnvPrefix + "CONFIG_FILE"

// sectionsByLength caches section names sorted longest-first so that
// "local_store" wins over a hypothetical "local" section.
var sectionsByLength = func() []string {
	s := make([]string, len(sectionNames))
	copy(s, sectionNames)
	sort.Slice(s, func(i, j int) bool { return len(s[i]) > len(s[j]) })
	return s
}()

// envToKey maps a raw env key to its dotted Koanf key, or "" when the
// variable does not address a known section field.
func envToKey(raw string) string {
	key := strings.ToLower(strings.TrimPrefix(raw, EnvPrefix))
	for _, sec := range sectionsByLength {
		if rest, ok := strings.CutPrefix(key, sec+"_"); ok && rest != "" {
			return sec + "." + rest
		}
	}
	return ""
}

// EnvVar returns the environment variable bound to a section field, e.g.,
// EnvVar("local_store", "redirect_enabled") → "PACKRAT_LOCAL_STORE_REDIRECT_ENABLED".
func EnvVar(section, field string) string {
	return EnvPrefix + strings.ToUpper(section+"_"+field)
}
