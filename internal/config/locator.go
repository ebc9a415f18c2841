// internal/config/locator.go
//
// Candidate config-file discovery.
//
// Context
// -------
// Exactly one file feeds a resolution.  Candidates are probed in a fixed
// order—site config dirs, the user config dir, the explicitly supplied
// path, then the path named by PACKRAT_CONFIG_FILE—and the first existing
// regular file wins outright.  Later candidates are never consulted, never
// merged.  Older deployment notes described this list as a cumulative
// override chain; the implemented behavior is deliberately first-found-
// wins, matching what resolution has always actually done.
//
// Absence is not an error: an empty return means "defaults only", and the
// loader decides whether defaults alone validate.
//
// Notes
// -----
//   - Site and user dirs come from the XDG base-dir spec via adrg/xdg.
//   - Oxford commas, two spaces after periods.

package config

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// FileName is the fixed config-file name looked for in every directory
// candidate.
const FileName = "config.toml"

// appDir is the per-app subdirectory under each XDG config dir.
const appDir = "packrat"

// Locator probes the fixed candidate list.  The zero value uses the
// platform XDG dirs; tests point SiteDirs and UserDir at temp dirs to get
// a hermetic search.
type Locator struct {
	SiteDirs []string // defaults to xdg.ConfigDirs
	UserDir  string   // defaults to xdg.ConfigHome
	EnvVar   string   // defaults to EnvConfigFile
}

// candidates returns every path worth probing, in precedence order.  The
// explicit and env-supplied paths only join the list when they already
// exist as regular files, mirroring how directory candidates are probed.
func (l *Locator) candidates(explicit string) []string {
	siteDirs := l.SiteDirs
	if siteDirs == nil {
		siteDirs = xdg.ConfigDirs
	}
	userDir := l.UserDir
	if userDir == "" {
		userDir = xdg.ConfigHome
	}
	envVar := l.EnvVar
	if envVar == "" {
		envVar = EnvConfigFile
	}

	var out []string
	for _, d := range siteDirs {
		out = append(out, filepath.Join(d, appDir, FileName))
	}
	out = append(out, filepath.Join(userDir, appDir, FileName))

	for _, p := range []string{explicit, os.Getenv(envVar)} {
		if p != "" && isFile(p) {
			out = append(out, p)
		}
	}
	return out
}

// Locate returns the first existing candidate, or "" when none exists.
// Read-only filesystem probes; never fails.
func (l *Locator) Locate(explicit string) string {
	for _, p := range l.candidates(explicit) {
		if isFile(p) {
			return p
		}
	}
	return ""
}

// isFile reports whether p names an existing regular file.
func isFile(p string) bool {
	fi, err := os.Stat(p)
	return err == nil && fi.Mode().IsRegular()
}
