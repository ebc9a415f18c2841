// internal/secrets/secrets.go
//
// Vault-backed secret resolver for Packrat.
//
// Context
// -------
//   - Provides a concurrency-safe wrapper around the HashiCorp Vault Go SDK
//     implementing config.SecretResolver.
//   - Adds simple KV-v2 helpers and per-key caching, so a reference used by
//     several sections costs one Vault round trip.
//   - References look like `vault:<mount>/<path>#<key>`; the scheme prefix
//     is config.SecretScheme.
//
// Public workflow
// ---------------
//  1. cli, err := secrets.New()                      // during boot.
//  2. config.SetSecretResolver(cli)                  // before Resolve.
//  3. val, err := cli.GetKV(ctx, path, key, ttl)     // during boot.
//
// The client is scoped to startup: it rides the token handed to New and
// never renews it.  Configuration resolution happens once per path at
// boot, so a token that outlives boot is all New asks for.  A process
// that needs Vault reads past startup needs its own renewing client.
//
// Build tags: none.
package secrets

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	vault "github.com/hashicorp/vault/api"

	"github.com/yanizio/packrat/internal/config"
)

// cacheTTL bounds how long a resolved key is reused without re-reading
// Vault.  Resolution happens once per config load, so staleness is a
// boot-time concern only.
const cacheTTL = 5 * time.Minute

// Client is safe for concurrent use.  Create once at startup.  Zero value
// is invalid.
type Client struct {
	api *vault.Client

	cacheMu sync.RWMutex
	cache   map[string]cached // canonical path#key → value + expiry.
}

type cached struct {
	val string
	exp time.Time
}

// New constructs a Vault client from the standard environment.
//
// Environment expectations
// ------------------------
//   - VAULT_ADDR   – scheme and host of the Vault server.
//   - VAULT_TOKEN  – token (falls back to ~/.vault-token).
func New() (*Client, error) {
	cfg := vault.DefaultConfig()
	if err := cfg.ReadEnvironment(); err != nil {
		return nil, fmt.Errorf("vault env cfg: %w", err)
	}

	apiCli, err := vault.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("vault api: %w", err)
	}

	if tok := os.Getenv("VAULT_TOKEN"); tok != "" {
		apiCli.SetToken(tok)
	}

	return &Client{
		api:   apiCli,
		cache: make(map[string]cached),
	}, nil
}

// Resolve implements config.SecretResolver for `vault:` references.
func (c *Client) Resolve(ctx context.Context, ref string) (string, error) {
	rest := strings.TrimPrefix(ref, config.SecretScheme)
	secretPath, key, ok := strings.Cut(rest, "#")
	if !ok {
		return "", fmt.Errorf("malformed secret reference %q: want vault:<mount>/<path>#<key>", ref)
	}
	return c.GetKV(ctx, secretPath, key, cacheTTL)
}

// GetKV fetches a single key from a KV-v2 secret.  If ttl > 0 the result
// is cached for that duration.  Subsequent callers within the TTL receive
// the cached copy.
func (c *Client) GetKV(ctx context.Context, secretPath, key string, ttl time.Duration) (string, error) {
	if secretPath == "" || key == "" {
		return "", errors.New("secret path and key must be non-empty")
	}

	canonical := secretPath + "#" + key

	if ttl > 0 {
		c.cacheMu.RLock()
		if cv, ok := c.cache[canonical]; ok && time.Now().Before(cv.exp) {
			c.cacheMu.RUnlock()
			return cv.val, nil
		}
		c.cacheMu.RUnlock()
	}

	mount, rel := splitMount(secretPath)
	sec, err := c.api.KVv2(mount).Get(ctx, rel)
	if err != nil {
		return "", fmt.Errorf("vault get %s: %w", secretPath, err)
	}

	raw, ok := sec.Data[key]
	if !ok {
		return "", fmt.Errorf("key %q not found in secret %q", key, secretPath)
	}

	sval, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("value at %s#%s is not a string", secretPath, key)
	}

	if ttl > 0 {
		c.cacheMu.Lock()
		c.cache[canonical] = cached{val: sval, exp: time.Now().Add(ttl)}
		c.cacheMu.Unlock()
	}

	return sval, nil
}

func splitMount(p string) (mount, rel string) {
	if p == "" {
		return "", ""
	}
	parts := strings.SplitN(p, "/", 2)
	mount = parts[0]
	if len(parts) == 2 {
		rel = parts[1]
	}
	return
}
