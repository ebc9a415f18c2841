// internal/config/template.go
//
// Starter config-file generation.
//
// Context
// -------
// `packratd init`-style tooling needs a config.toml to hand a new
// deployment.  Template() renders one with the caller's OAuth and
// database choices filled in.  The session secret is fresh random bytes
// on every call—deliberately never a package-level default, so two
// generated configs can never share a secret by accident.
//
// Notes
// -----
//   - Oxford commas, two spaces after periods.

package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
)

const githubTemplate = `[github]
client_id = %q
client_secret = %q

`

const baseTemplate = `[database]
url = %q

[session]
secret = %q
https_only = %v
`

// Template renders a starter configuration.  Empty databaseURL falls back
// to a local SQLite file.  The github section only appears when a
// credential was supplied: an empty [github] block would trigger the
// section and fail its required fields on first load.
func Template(clientID, clientSecret, databaseURL string, httpsOnly bool) string {
	if databaseURL == "" {
		databaseURL = "sqlite3://./packrat.sqlite"
	}
	out := ""
	if clientID != "" || clientSecret != "" {
		out = fmt.Sprintf(githubTemplate, clientID, clientSecret)
	}
	return out + fmt.Sprintf(baseTemplate, databaseURL, newSecret(), httpsOnly)
}

// WriteTemplate writes a starter configuration to path, refusing to
// clobber an existing file.
func WriteTemplate(path, clientID, clientSecret, databaseURL string, httpsOnly bool) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return fmt.Errorf("write config template: %w", err)
	}
	defer f.Close()

	_, err = f.WriteString(Template(clientID, clientSecret, databaseURL, httpsOnly))
	return err
}

// newSecret returns 32 random bytes, hex-encoded.
func newSecret() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic(err) // crypto/rand never fails on supported platforms
	}
	return hex.EncodeToString(b)
}
